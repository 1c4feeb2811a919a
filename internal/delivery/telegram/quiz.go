package telegram

import (
	"context"
	"errors"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/aliskhannn/vocabulary-tester/internal/domain/entities"
	"github.com/aliskhannn/vocabulary-tester/internal/service"
)

// chatQuiz is the quiz state of one chat.
type chatQuiz struct {
	session *service.Session

	mu       sync.Mutex
	active   bool
	round    *service.Round
	number   int // number of the open question, 0 before the first
	timer    *time.Timer
	lastWord string
}

func (q *chatQuiz) stopTimerLocked() {
	if q.timer != nil {
		q.timer.Stop()
		q.timer = nil
	}
}

// startQuiz starts a new run on the loaded module, loading the default
// module first when none is selected, and sends the first question.
func (h *Handler) startQuiz(ctx context.Context, chatID int64) error {
	cq := h.quiz(chatID)

	cq.mu.Lock()
	moduleID := h.opts.DefaultModule
	if m, ok := cq.session.Module(); ok {
		moduleID = m.ID
	}
	if !cq.active {
		if err := cq.session.LoadModule(moduleID); err != nil {
			cq.mu.Unlock()
			return h.reportLoadError(chatID, moduleID, err)
		}
		cq.active = true
		cq.number = 0
	}
	cq.mu.Unlock()

	m, _ := cq.session.Module()
	if err := h.send(newMessage(chatID, formatQuizStart(m, cq.session.Mode(), cq.session.ReviewMode(), h.opts.TimeLimit))); err != nil {
		return err
	}

	return h.askNext(ctx, chatID, cq)
}

// askNext sends the next question of the chat and arms the countdown.
func (h *Handler) askNext(ctx context.Context, chatID int64, cq *chatQuiz) error {
	cq.mu.Lock()
	defer cq.mu.Unlock()

	if !cq.active {
		return nil
	}
	cq.stopTimerLocked()

	round, err := cq.session.Ask()
	if err != nil {
		cq.round = nil
		if errors.Is(err, entities.ErrEmptyVocabulary) || errors.Is(err, entities.ErrNoModuleLoaded) {
			return h.send(newPlainMessage(chatID, msgNoQuestions))
		}
		return err
	}

	cq.number++
	cq.round = round
	cq.lastWord = round.Question().CorrectItem.Word

	msg := newMessage(chatID, formatQuestion(round.Question(), cq.number))
	msg.ReplyMarkup = buildAnswerKeyboard(round.Question(), cq.number)

	sent, err := h.sendMessage(msg)
	if err != nil {
		return err
	}
	h.messages.Replace(chatID, sent.MessageID)

	if h.opts.TimeLimit > 0 {
		num := cq.number
		cq.timer = time.AfterFunc(h.opts.TimeLimit, func() {
			h.onTimeout(ctx, chatID, cq, num)
		})
	}

	return nil
}

// answer scores a pressed option. It reports false when the press belongs to
// a question that is no longer open.
func (h *Handler) answer(ctx context.Context, chatID int64, num int, key entities.OptionKey) (bool, error) {
	cq, ok := h.quizzes.Get(chatID)
	if !ok {
		return false, nil
	}

	cq.mu.Lock()
	if !cq.active || cq.round == nil || num != cq.number {
		cq.mu.Unlock()
		return false, nil
	}
	q := cq.round.Question()
	outcome, scored := cq.round.Answer(key)
	if scored {
		cq.stopTimerLocked()
	}
	cq.mu.Unlock()

	if !scored {
		return false, nil
	}

	h.closeQuestion(chatID, q, num, outcome)
	return true, h.askNext(ctx, chatID, cq)
}

func (h *Handler) onTimeout(ctx context.Context, chatID int64, cq *chatQuiz, num int) {
	cq.mu.Lock()
	if !cq.active || cq.round == nil || num != cq.number {
		cq.mu.Unlock()
		return
	}
	q := cq.round.Question()
	outcome, scored := cq.round.Timeout()
	cq.timer = nil
	cq.mu.Unlock()

	if !scored {
		return
	}

	h.logger.Debug("question timed out", zap.Int64("chat_id", chatID), zap.Int("question", num))

	h.closeQuestion(chatID, q, num, outcome)
	if err := h.askNext(ctx, chatID, cq); err != nil {
		h.logger.Error("ask after timeout", zap.Int64("chat_id", chatID), zap.Error(err))
	}
}

// closeQuestion replaces the open question message with the scored version.
func (h *Handler) closeQuestion(chatID int64, q *entities.Question, num int, outcome entities.AnswerOutcome) {
	text := formatQuestion(q, num) + "\n\n" + formatOutcome(outcome)

	msg, ok := h.messages.Take(chatID)
	if !ok {
		_ = h.send(newMessage(chatID, text))
		return
	}

	edit := newEdit(chatID, msg.MessageID, text)
	_ = h.send(edit)
}

// stopQuiz ends the run of a chat and returns its result.
func (h *Handler) stopQuiz(ctx context.Context, chatID int64) (*entities.SessionResult, []entities.WrongRecord, bool, error) {
	cq, ok := h.quizzes.Get(chatID)
	if !ok {
		return nil, nil, false, nil
	}

	cq.mu.Lock()
	defer cq.mu.Unlock()

	if !cq.active {
		return nil, nil, false, nil
	}
	cq.stopTimerLocked()
	cq.active = false
	cq.round = nil

	if msg, ok := h.messages.Take(chatID); ok {
		_ = h.send(tgbotapi.NewEditMessageReplyMarkup(chatID, msg.MessageID, emptyKeyboard()))
	}

	wrong := cq.session.WrongLog()
	result, err := cq.session.Finish(ctx)
	return result, wrong, true, err
}

func (h *Handler) reportLoadError(chatID int64, moduleID string, err error) error {
	if errors.Is(err, entities.ErrModuleNotFound) {
		return h.send(newPlainMessage(chatID, msgUnknownModule))
	}
	h.logger.Error("load module", zap.String("module_id", moduleID), zap.Error(err))
	return h.send(newPlainMessage(chatID, msgModuleUnavailable))
}
