package telegram

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/aliskhannn/vocabulary-tester/internal/domain/entities"
)

func (h *Handler) handleCallback(ctx context.Context, cb *tgbotapi.CallbackQuery) {
	if cb.Message == nil {
		return
	}

	chatID := cb.Message.Chat.ID
	cd := decodeCallback(cb.Data)

	var (
		notice string
		err    error
	)

	switch cd.Action {
	case actionModule:
		err = h.handleModuleCallback(chatID, cd)
	case actionMode:
		err = h.handleModeCallback(chatID, cd)
	case actionQuiz:
		notice, err = h.handleQuizCallback(ctx, chatID, cd)
	case actionAnswer:
		notice, err = h.handleAnswerCallback(ctx, chatID, cd)
	default:
		h.logger.Warn("unknown callback", zap.String("data", cb.Data))
	}

	if err != nil {
		h.logger.Error("handle callback",
			zap.Int64("chat_id", chatID),
			zap.String("data", cb.Data),
			zap.Error(err),
		)
		h.sendError(chatID, msgInternalError)
	}

	// Remove the user's "clock".
	if _, err := h.bot.Request(tgbotapi.NewCallback(cb.ID, notice)); err != nil {
		h.logger.Debug("callback answer error", zap.Error(err))
	}
}

func (h *Handler) handleModuleCallback(chatID int64, cd callbackData) error {
	if len(cd.Params) != 1 {
		return nil
	}

	cq := h.quiz(chatID)
	cq.mu.Lock()
	err := cq.session.LoadModule(cd.Params[0])
	if err == nil {
		cq.active = false
		cq.round = nil
		cq.stopTimerLocked()
	}
	cq.mu.Unlock()

	if err != nil {
		return h.reportLoadError(chatID, cd.Params[0], err)
	}

	m, _ := cq.session.Module()
	msg := newMessage(chatID, md("已选择模块: ")+bold(m.Name)+"\n\n"+md(msgChooseMode))
	msg.ReplyMarkup = buildModeKeyboard()
	return h.send(msg)
}

func (h *Handler) handleModeCallback(chatID int64, cd callbackData) error {
	if len(cd.Params) != 1 {
		return nil
	}

	mode, err := entities.ParseMode(cd.Params[0])
	if err != nil {
		h.logger.Warn("invalid mode callback", zap.String("data", cd.Raw))
		return nil
	}

	if err := h.quiz(chatID).session.SetMode(mode); err != nil {
		return err
	}

	msg := newMessage(chatID, md("已选择模式: ")+bold(modeName(mode)))
	msg.ReplyMarkup = buildStartQuizKeyboard()
	return h.send(msg)
}

func (h *Handler) handleQuizCallback(ctx context.Context, chatID int64, cd callbackData) (string, error) {
	if len(cd.Params) != 1 {
		return "", nil
	}

	switch cd.Params[0] {
	case quizStart:
		return "", h.startQuiz(ctx, chatID)
	case quizStop:
		return "", h.handleStop()(ctx, chatID)
	case quizReview:
		return h.toggleReview(chatID), nil
	default:
		return "", nil
	}
}

func (h *Handler) handleAnswerCallback(ctx context.Context, chatID int64, cd callbackData) (string, error) {
	num, key, ok := parseAnswerCallback(cd)
	if !ok {
		h.logger.Warn("invalid answer callback", zap.String("data", cd.Raw))
		return "", nil
	}

	answered, err := h.answer(ctx, chatID, num, key)
	if err != nil {
		return "", err
	}
	if !answered {
		return msgStaleQuestion, nil
	}
	return "", nil
}
