package telegram

import (
	"context"
	"fmt"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

func (h *Handler) handleStart() HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		msg := newMessage(chatID, welcomeMarkdownV2())
		msg.ReplyMarkup = buildModuleKeyboard(h.modules.Modules())
		return h.send(msg)
	}
}

func (h *Handler) handleHelp() HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		return h.send(newPlainMessage(chatID, helpText()))
	}
}

func (h *Handler) handleUnknown() HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		return h.send(newPlainMessage(chatID, msgUnknownCommand))
	}
}

// handleText answers free text. A digit or the text of an option answers the
// open question so the bot can be used without the keyboard.
func (h *Handler) handleText(text string) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		cq, exists := h.quizzes.Get(chatID)
		if !exists {
			return h.send(newPlainMessage(chatID, msgTextHint))
		}

		cq.mu.Lock()
		num, round := cq.number, cq.round
		cq.mu.Unlock()

		if round == nil {
			return h.send(newPlainMessage(chatID, msgNoActiveQuiz))
		}

		key, ok := h.matcher.Resolve(round.Question(), text)
		if !ok {
			return h.send(newPlainMessage(chatID, msgTextHint))
		}

		answered, err := h.answer(ctx, chatID, num, key)
		if err != nil {
			return err
		}
		if !answered {
			return h.send(newPlainMessage(chatID, msgNoActiveQuiz))
		}
		return nil
	}
}

func (h *Handler) handleModules() HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		msg := newPlainMessage(chatID, msgChooseModule)
		msg.ReplyMarkup = buildModuleKeyboard(h.modules.Modules())
		return h.send(msg)
	}
}

func (h *Handler) handleMode() HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		msg := newPlainMessage(chatID, msgChooseMode)
		msg.ReplyMarkup = buildModeKeyboard()
		return h.send(msg)
	}
}

func (h *Handler) handleQuiz() HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		return h.startQuiz(ctx, chatID)
	}
}

func (h *Handler) handleReview() HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		return h.send(newPlainMessage(chatID, h.toggleReview(chatID)))
	}
}

// toggleReview flips review mode and returns the confirmation text.
func (h *Handler) toggleReview(chatID int64) string {
	s := h.quiz(chatID).session

	on := !s.ReviewMode()
	s.SetReviewMode(on)

	if !on {
		return "已退出错题复习模式"
	}
	if len(s.WrongLog()) == 0 {
		return "已进入错题复习模式。错题本为空时仍从整个模块出题。"
	}
	return fmt.Sprintf("已进入错题复习模式，将从 %d 条错题中出题，下一题起生效。", len(s.WrongLog()))
}

func (h *Handler) handleStats() HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		cq, ok := h.quizzes.Get(chatID)
		if !ok {
			return h.send(newPlainMessage(chatID, msgNoActiveQuiz))
		}
		return h.send(newMessage(chatID, formatStatistics(cq.session.GetStatistics())))
	}
}

func (h *Handler) handleStop() HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		cq, ok := h.quizzes.Get(chatID)
		if !ok {
			return h.send(newPlainMessage(chatID, msgNoActiveQuiz))
		}
		stats := cq.session.GetStatistics()

		result, wrong, stopped, err := h.stopQuiz(ctx, chatID)
		if !stopped {
			return h.send(newPlainMessage(chatID, msgNoActiveQuiz))
		}
		if err != nil {
			// The run is over either way; report it and keep going.
			h.logger.Error("finish quiz session", zap.Int64("chat_id", chatID), zap.Error(err))
		}

		msg := newMessage(chatID, formatFinalResult(result, stats, wrong))
		msg.ReplyMarkup = buildResultKeyboard()
		return h.send(msg)
	}
}

func (h *Handler) handleExport() HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		cq, ok := h.quizzes.Get(chatID)
		if !ok || len(cq.session.WrongLog()) == 0 {
			return h.send(newPlainMessage(chatID, msgNoWrongAnswers))
		}

		book := cq.session.ExportWrongBook()
		data, err := book.Encode()
		if err != nil {
			return fmt.Errorf("encode wrong book: %w", err)
		}

		doc := tgbotapi.NewDocument(chatID, tgbotapi.FileBytes{
			Name:  fmt.Sprintf("wrong_book_%s.json", time.Now().Format("20060102_150405")),
			Bytes: data,
		})
		doc.Caption = fmt.Sprintf("共导出 %d 个不重复的错题", book.Metadata.TotalWrongItems)

		return h.send(doc)
	}
}

func (h *Handler) handleFavorite(word string) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		if h.historyService == nil {
			return h.send(newPlainMessage(chatID, msgHistoryDisabled))
		}

		if word == "" {
			if cq, ok := h.quizzes.Get(chatID); ok {
				cq.mu.Lock()
				word = cq.lastWord
				cq.mu.Unlock()
			}
		}
		if word == "" {
			return h.send(newPlainMessage(chatID, msgNoFavoriteWord))
		}

		on, err := h.historyService.ToggleFavorite(ctx, owner(chatID), word)
		if err != nil {
			return err
		}

		if on {
			return h.send(newPlainMessage(chatID, fmt.Sprintf("⭐ 已收藏: %s", word)))
		}
		return h.send(newPlainMessage(chatID, fmt.Sprintf("已取消收藏: %s", word)))
	}
}

func (h *Handler) handleHistory() HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		if h.historyService == nil {
			return h.send(newPlainMessage(chatID, msgHistoryDisabled))
		}

		results, err := h.historyService.Recent(ctx, owner(chatID), historyLimit)
		if err != nil {
			return err
		}

		favs, err := h.historyService.Favorites(ctx, owner(chatID))
		if err != nil {
			return err
		}

		return h.send(newMessage(chatID, formatHistory(results, favs)))
	}
}
