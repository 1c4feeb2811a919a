package telegram

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/aliskhannn/vocabulary-tester/internal/domain/entities"
	"github.com/aliskhannn/vocabulary-tester/internal/service"
)

// Bot is the part of *tgbotapi.BotAPI the handler uses.
type Bot interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
}

type ModuleCatalog interface {
	Modules() []entities.Module
}

type HistoryService interface {
	Recent(ctx context.Context, owner string, limit int) ([]*entities.SessionResult, error)
	ToggleFavorite(ctx context.Context, owner, word string) (bool, error)
	Favorites(ctx context.Context, owner string) ([]*entities.Favorite, error)
}

// SessionFactory creates the quiz session of a chat.
type SessionFactory func(chatID int64) *service.Session
