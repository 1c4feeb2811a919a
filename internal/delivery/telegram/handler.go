package telegram

import (
	"context"
	"strconv"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/aliskhannn/vocabulary-tester/internal/service"
	"github.com/aliskhannn/vocabulary-tester/internal/storage"
)

type Options struct {
	DefaultModule string
	TimeLimit     time.Duration // 0 disables the per-question countdown
}

type Handler struct {
	bot            Bot
	logger         *zap.Logger
	modules        ModuleCatalog
	historyService HistoryService
	newSession     SessionFactory
	opts           Options
	matcher        *service.AnswerMatcher

	quizzes  *storage.SessionStorage[*chatQuiz]
	messages *storage.MessageStorage
}

// NewHandler creates a handler. historyService may be nil when history is disabled.
func NewHandler(
	bot Bot,
	logger *zap.Logger,
	modules ModuleCatalog,
	historyService HistoryService,
	newSession SessionFactory,
	opts Options,
) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		bot:            bot,
		logger:         logger,
		modules:        modules,
		historyService: historyService,
		newSession:     newSession,
		opts:           opts,
		matcher:        service.NewAnswerMatcher(),
		quizzes:        storage.NewSessionStorage[*chatQuiz](),
		messages:       storage.NewMessageStorage(),
	}
}

func (h *Handler) Run(ctx context.Context) error {
	h.logger.Info("telegram handler started")
	defer h.logger.Info("telegram handler stopped")

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := h.bot.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			h.handleUpdate(ctx, update)
		}
	}
}

func (h *Handler) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	if update.CallbackQuery != nil {
		h.logger.Debug("callback received",
			zap.Int64("user_id", update.CallbackQuery.From.ID),
			zap.String("data", update.CallbackQuery.Data),
		)
		h.handleCallback(ctx, update.CallbackQuery)
		return
	}

	if update.Message == nil {
		h.logger.Debug("update without message and callback")
		return
	}

	h.logger.Debug("update received",
		zap.Int64("chat_id", update.Message.Chat.ID),
		zap.String("text", update.Message.Text),
	)

	chatID := update.Message.Chat.ID

	if !update.Message.IsCommand() {
		_ = h.withErrorHandling(h.handleText(update.Message.Text))(ctx, chatID)
		return
	}

	args := update.Message.CommandArguments()

	var fn HandlerFunc
	switch update.Message.Command() {
	case "start":
		fn = h.handleStart()
	case "help":
		fn = h.handleHelp()
	case "modules":
		fn = h.handleModules()
	case "mode":
		fn = h.handleMode()
	case "quiz":
		fn = h.handleQuiz()
	case "review":
		fn = h.handleReview()
	case "stats":
		fn = h.handleStats()
	case "stop":
		fn = h.handleStop()
	case "export":
		fn = h.handleExport()
	case "favorite":
		fn = h.handleFavorite(args)
	case "history":
		fn = h.handleHistory()
	default:
		fn = h.handleUnknown()
	}

	_ = h.withErrorHandling(fn)(ctx, chatID)
}

// quiz returns the quiz state of a chat, creating it on first use.
func (h *Handler) quiz(chatID int64) *chatQuiz {
	return h.quizzes.GetOrCreate(chatID, func() *chatQuiz {
		return &chatQuiz{session: h.newSession(chatID)}
	})
}

func (h *Handler) send(c tgbotapi.Chattable) error {
	if _, err := h.bot.Send(c); err != nil {
		h.logger.Error("failed to send telegram message", zap.Error(err))
		return err
	}
	return nil
}

func (h *Handler) sendMessage(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	msg, err := h.bot.Send(c)
	if err != nil {
		h.logger.Error("failed to send telegram message", zap.Error(err))
	}
	return msg, err
}

func (h *Handler) sendError(chatID int64, text string) {
	_ = h.send(newPlainMessage(chatID, text))
}

// owner is the history owner key of a chat.
func owner(chatID int64) string {
	return strconv.FormatInt(chatID, 10)
}
