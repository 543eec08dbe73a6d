package handler

import (
	"strings"

	"recallbot/internal/domain"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// handleText handles all text messages based on state
func (h *Handler) handleText(c tele.Context) error {
	userID := c.Sender().ID
	text := strings.TrimSpace(c.Text())

	// Ignore commands (starting with /)
	if strings.HasPrefix(text, "/") {
		return nil
	}

	// Ensure user exists
	if err := h.authService.EnsureUserExists(userID); err != nil {
		h.logger.Error("Failed to ensure user exists", zap.Error(err))
		return nil
	}

	// Check authorization first
	authorized, err := h.authService.IsAuthorized(userID)
	if err != nil {
		h.logger.Error("Failed to check authorization", zap.Error(err))
		return c.Send("Произошла ошибка. Попробуйте позже.")
	}

	// If not authorized, check password
	if !authorized {
		if h.authService.CheckPassword(text) {
			// Correct password
			if err := h.authService.AuthorizeUser(userID); err != nil {
				h.logger.Error("Failed to authorize user", zap.Error(err))
				return c.Send("Произошла ошибка. Попробуйте позже.")
			}

			h.logger.Info("User authorized", zap.Int64("user_id", userID))
			h.ResetState(userID)
			return c.Send("✅ Доступ разрешён!\n\n"+mainMenuText, mainMenuMarkup())
		}

		// Wrong password
		return c.Send("Не подошло. Попробуй ещё раз:")
	}

	// User is authorized, handle based on state
	state := h.GetState(userID)

	switch state.State {
	case domain.StateWaitingWord:
		// User sent a word, now wait for its definition
		cancelMarkup := &tele.ReplyMarkup{}
		cancelMarkup.Inline(cancelMarkup.Row(btnCancel))

		h.SetState(userID, &domain.StateData{
			State:       domain.StateWaitingDefinition,
			CurrentWord: text,
		})

		return c.Send("Жду значение слова", cancelMarkup)

	case domain.StateWaitingDefinition:
		// User sent the definition, save the pair
		word := state.CurrentWord
		definition := text

		if word == "" || definition == "" {
			return c.Send("Слово и значение не могут быть пустыми.")
		}

		if err := h.wordRepo.SaveWord(userID, word, definition); err != nil {
			h.logger.Error("Failed to save word",
				zap.Error(err),
				zap.Int64("user_id", userID),
			)
			return c.Send("Не удалось сохранить слово. Попробуйте ещё раз.")
		}

		h.logger.Info("Word saved",
			zap.Int64("user_id", userID),
			zap.String("word", word),
		)

		// Reset to waiting for next word
		h.SetState(userID, &domain.StateData{State: domain.StateWaitingWord})

		return c.Send("✅ Сохранено!\n\nМожешь отправить следующее слово или вернуться в /start")

	case domain.StateStudying:
		// Mid-session the answer buttons do the talking
		return c.Send("Сейчас идёт сессия — отвечай кнопками под карточкой 🙂")

	default:
		// Idle state - treat the message as a new word
		cancelMarkup := &tele.ReplyMarkup{}
		cancelMarkup.Inline(cancelMarkup.Row(btnCancel))

		h.SetState(userID, &domain.StateData{
			State:       domain.StateWaitingDefinition,
			CurrentWord: text,
		})

		return c.Send("Жду значение слова", cancelMarkup)
	}
}

// handleAddWord starts the add-word flow from the menu button
func (h *Handler) handleAddWord(c tele.Context) error {
	userID := c.Sender().ID

	cancelMarkup := &tele.ReplyMarkup{}
	cancelMarkup.Inline(cancelMarkup.Row(btnCancel))

	h.SetState(userID, &domain.StateData{State: domain.StateWaitingWord})

	if c.Callback() != nil {
		if err := c.Edit("Отправь слово, которое хочешь выучить", cancelMarkup); err != nil {
			return h.handleEditError(err, c, userID)
		}
		return c.Respond()
	}
	return c.Send("Отправь слово, которое хочешь выучить", cancelMarkup)
}
