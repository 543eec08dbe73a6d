package handler

import (
	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

const mainMenuText = "🏠 Главное меню\n\nУчи карточки, добавляй слова, следи за прогрессом:"

// handleStart handles /start: gate by password, then show the menu
func (h *Handler) handleStart(c tele.Context) error {
	userID := c.Sender().ID

	if err := h.authService.EnsureUserExists(userID); err != nil {
		h.logger.Error("Failed to ensure user exists", zap.Error(err))
		return c.Send("Произошла ошибка. Попробуйте позже.")
	}

	authorized, err := h.authService.IsAuthorized(userID)
	if err != nil {
		h.logger.Error("Failed to check authorization", zap.Error(err))
		return c.Send("Произошла ошибка. Попробуйте позже.")
	}

	h.logger.Info("User opened the menu",
		zap.Int64("user_id", userID),
		zap.String("username", c.Sender().Username),
		zap.Bool("authorized", authorized),
	)

	h.ResetState(userID)

	if !authorized {
		return c.Send("Привет! Я помогаю запоминать слова по карточкам.\nДоступ по паролю — вводи:")
	}

	return c.Send(mainMenuText, mainMenuMarkup())
}
