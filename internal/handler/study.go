package handler

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"recallbot/internal/domain"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// answer callback data: ans_<E|H|F>_<cardID>
const answerPrefix = "ans_"

func answerData(answer domain.Answer, cardID int64) string {
	return fmt.Sprintf("%s%s_%d", answerPrefix, answer, cardID)
}

// parseAnswerData extracts the answer and card id from callback data
func parseAnswerData(data string) (domain.Answer, int64, error) {
	rest := strings.TrimPrefix(data, answerPrefix)
	parts := strings.SplitN(rest, "_", 2)
	if len(parts) != 2 {
		return "", 0, fmt.Errorf("malformed answer data: %q", data)
	}

	cardID, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return "", 0, fmt.Errorf("malformed card id in %q: %w", data, err)
	}

	return domain.Answer(parts[0]), cardID, nil
}

// handleStudy starts a study session: allocates today's new cards and
// queues the due ones
func (h *Handler) handleStudy(c tele.Context) error {
	userID := c.Sender().ID

	lock := h.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	cards, err := h.sessionService.FetchSession(userID, time.Now())
	if err != nil {
		h.logger.Error("Failed to fetch study session",
			zap.Error(err),
			zap.Int64("user_id", userID),
		)
		return c.Respond(&tele.CallbackResponse{Text: "Ошибка при загрузке сессии"})
	}

	if len(cards) == 0 {
		h.ResetState(userID)
		return c.Respond(&tele.CallbackResponse{
			Text:      "На сегодня карточек нет. Отдыхай!",
			ShowAlert: true,
		})
	}

	h.SetState(userID, &domain.StateData{
		State:    domain.StateStudying,
		Queue:    cards,
		Position: 0,
	})

	h.logger.Info("Study session started",
		zap.Int64("user_id", userID),
		zap.Int("cards", len(cards)),
	)

	return h.showCard(c, userID)
}

// showCard presents the current card's word with a reveal button
func (h *Handler) showCard(c tele.Context, userID int64) error {
	state := h.GetState(userID)
	card := state.CurrentCard()
	if card == nil {
		return h.finishSession(c, userID)
	}

	text := fmt.Sprintf(
		"Карточка %d из %d\n\n❓ %s",
		state.Position+1, len(state.Queue), card.Word,
	)

	markup := &tele.ReplyMarkup{}
	markup.Inline(
		markup.Row(btnReveal),
		markup.Row(btnMainMenu),
	)

	if c.Callback() != nil {
		if err := c.Edit(text, markup); err != nil {
			if handleErr := h.handleEditError(err, c, userID); handleErr == nil {
				return nil
			}
			return c.Send(text, markup)
		}
		return c.Respond()
	}
	return c.Send(text, markup)
}

// handleReveal shows the definition and the answer buttons
func (h *Handler) handleReveal(c tele.Context) error {
	userID := c.Sender().ID

	state := h.GetState(userID)
	if state.State != domain.StateStudying {
		return c.Respond(&tele.CallbackResponse{Text: "Сессия уже закончилась"})
	}

	card := state.CurrentCard()
	if card == nil {
		return h.finishSession(c, userID)
	}

	text := fmt.Sprintf(
		"Карточка %d из %d\n\n❓ %s\n\n💡 %s\n\nНасколько легко вспомнилось?",
		state.Position+1, len(state.Queue), card.Word, card.Definition,
	)

	markup := &tele.ReplyMarkup{}
	markup.Inline(
		markup.Row(
			markup.Data("😎 Легко", answerData(domain.AnswerEasy, card.ID)),
			markup.Data("🤔 Сложно", answerData(domain.AnswerHard, card.ID)),
			markup.Data("😵 Забыл", answerData(domain.AnswerForgot, card.ID)),
		),
		markup.Row(btnMainMenu),
	)

	if err := c.Edit(text, markup); err != nil {
		if handleErr := h.handleEditError(err, c, userID); handleErr == nil {
			return nil
		}
		return c.Send(text, markup)
	}
	return c.Respond()
}

// handleAnswer records the answer for the current card and advances
// the queue
func (h *Handler) handleAnswer(c tele.Context, data string) error {
	userID := c.Sender().ID

	lock := h.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	answer, cardID, err := parseAnswerData(data)
	if err != nil {
		h.logger.Warn("Malformed answer callback",
			zap.String("data", data),
			zap.Int64("user_id", userID),
		)
		return c.Respond()
	}

	state := h.GetState(userID)
	if state.State != domain.StateStudying {
		return c.Respond(&tele.CallbackResponse{Text: "Сессия уже закончилась"})
	}

	// Stale button from an earlier card: just acknowledge
	if card := state.CurrentCard(); card == nil || card.ID != cardID {
		return c.Respond()
	}

	review, err := h.schedulerService.RecordAnswer(userID, cardID, answer, time.Now())
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrCardNotFound):
			h.logger.Warn("Answer for unknown card",
				zap.Int64("user_id", userID),
				zap.Int64("card_id", cardID),
			)
		case errors.Is(err, domain.ErrInvalidAnswer):
			h.logger.Warn("Invalid answer value",
				zap.Int64("user_id", userID),
				zap.String("answer", string(answer)),
			)
		default:
			h.logger.Error("Failed to record answer",
				zap.Error(err),
				zap.Int64("user_id", userID),
				zap.Int64("card_id", cardID),
			)
			return c.Respond(&tele.CallbackResponse{Text: "Ошибка при сохранении ответа"})
		}
		return c.Respond(&tele.CallbackResponse{Text: "Эту карточку не получилось засчитать"})
	}

	h.logger.Info("Card answered",
		zap.Int64("user_id", userID),
		zap.Int64("card_id", review.CardID),
		zap.String("answer", string(review.Answer)),
	)

	state.Position++
	h.SetState(userID, state)

	return h.showCard(c, userID)
}

// finishSession closes the study flow and returns to the menu
func (h *Handler) finishSession(c tele.Context, userID int64) error {
	state := h.GetState(userID)
	total := len(state.Queue)

	h.ResetState(userID)

	text := fmt.Sprintf("🎉 Сессия закончена! Карточек за сегодня: %d", total)

	if c.Callback() != nil {
		if err := c.Edit(text, mainMenuMarkup()); err != nil {
			if handleErr := h.handleEditError(err, c, userID); handleErr == nil {
				return nil
			}
			return c.Send(text, mainMenuMarkup())
		}
		return c.Respond()
	}
	return c.Send(text, mainMenuMarkup())
}
