package handler

import (
	"fmt"
	"strings"
	"time"
	"unicode"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// cleanCallbackData removes all non-printable characters from callback data
func cleanCallbackData(data string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsPrint(r) {
			return r
		}
		return -1
	}, strings.TrimSpace(data))
}

// handleEditError handles errors from c.Edit() - if message is not modified, just acknowledge callback
// Otherwise, acknowledge callback and return error so caller can send new message
func (h *Handler) handleEditError(err error, c tele.Context, userID int64) error {
	if err == nil {
		return nil
	}

	errStr := err.Error()
	// If message is not modified, it was already edited by another callback
	if strings.Contains(errStr, "message is not modified") {
		h.logger.Debug("Message already modified by another callback, acknowledging",
			zap.Int64("user_id", userID),
			zap.String("callback_id", c.Callback().ID),
		)
		c.Respond()
		return nil
	}

	h.logger.Warn("Failed to edit message, sending new",
		zap.Error(err),
		zap.Int64("user_id", userID),
		zap.String("callback_id", c.Callback().ID),
	)
	if ackErr := c.Respond(); ackErr != nil {
		h.logger.Warn("Failed to acknowledge callback", zap.Error(ackErr))
	}
	return err
}

// handleCallback handles ALL callback queries
func (h *Handler) handleCallback(c tele.Context) error {
	callback := c.Callback()
	if callback == nil {
		h.logger.Warn("handleCallback: callback is nil")
		return nil
	}

	// Clean data from all non-printable characters
	data := cleanCallbackData(callback.Data)

	// Handle specific button callbacks by Unique first
	switch callback.Unique {
	case "study":
		return h.handleStudy(c)
	case "add_word":
		return h.handleAddWord(c)
	case "stats":
		return h.handleStats(c)
	case "reveal":
		return h.handleReveal(c)
	case "cancel":
		return h.handleCancel(c)
	case "main_menu":
		return h.handleStart(c)
	}

	// If Unique is empty, try to handle by Data
	if callback.Unique == "" {
		switch data {
		case "study":
			return h.handleStudy(c)
		case "add_word":
			return h.handleAddWord(c)
		case "stats":
			return h.handleStats(c)
		case "reveal":
			return h.handleReveal(c)
		case "cancel":
			return h.handleCancel(c)
		case "main_menu":
			return h.handleStart(c)
		}
	}

	// Handle by Data prefix (dynamic buttons)
	if strings.HasPrefix(data, answerPrefix) {
		return h.handleAnswer(c, data)
	}

	// If it's not handled, acknowledge it anyway
	h.logger.Warn("Unhandled callback in handleCallback",
		zap.String("data", data),
		zap.String("unique", callback.Unique),
	)
	return c.Respond()
}

// handleStats shows the user's study snapshot
func (h *Handler) handleStats(c tele.Context) error {
	userID := c.Sender().ID

	stats, err := h.statsService.GetStudyStats(userID, time.Now())
	if err != nil {
		h.logger.Error("Failed to get study stats",
			zap.Error(err),
			zap.Int64("user_id", userID),
		)
		return c.Respond(&tele.CallbackResponse{Text: "Ошибка при загрузке статистики"})
	}

	text := fmt.Sprintf(
		"📊 Твоя статистика\n\n"+
			"📖 Слов сохранено: %d\n"+
			"🗂 Карточек в работе: %d\n"+
			"⏰ К повторению сейчас: %d\n"+
			"🆕 Карточек за сегодня: %d\n"+
			"✅ Ответов за сегодня: %d",
		stats.TotalWords,
		stats.TotalCards,
		stats.DueNow,
		stats.CreatedToday,
		stats.ReviewedToday,
	)

	markup := &tele.ReplyMarkup{}
	markup.Inline(markup.Row(btnMainMenu))

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

// handleCancel aborts the current flow and returns to the menu
func (h *Handler) handleCancel(c tele.Context) error {
	userID := c.Sender().ID

	h.ResetState(userID)

	text := mainMenuText
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
