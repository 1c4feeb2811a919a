package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os/signal"
	"syscall"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/aliskhannn/vocabulary-tester/internal/app"
	"github.com/aliskhannn/vocabulary-tester/internal/config"
	"github.com/aliskhannn/vocabulary-tester/internal/delivery/telegram"
	"github.com/aliskhannn/vocabulary-tester/internal/logger"
	"github.com/aliskhannn/vocabulary-tester/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	if err := cfg.RequireTelegramToken(); err != nil {
		log.Fatal(err)
	}

	lg, err := logger.New(cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = lg.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := app.New(ctx, cfg, lg)
	if err != nil {
		lg.Fatal("failed to initialize application", zap.Error(err))
	}
	defer a.Close()

	if err := a.Vocabulary.Preload(ctx); err != nil {
		lg.Fatal("failed to load vocabulary", zap.Error(err))
	}

	bot, err := tgbotapi.NewBotAPI(cfg.TelegramAPIToken)
	if err != nil {
		lg.Fatal("failed to create bot", zap.Error(err))
	}
	bot.Debug = cfg.Env != "production"

	commands := []tgbotapi.BotCommand{
		{Command: "start", Description: "开始使用"},
		{Command: "modules", Description: "选择词汇模块"},
		{Command: "mode", Description: "选择测试模式"},
		{Command: "quiz", Description: "开始测试"},
		{Command: "review", Description: "切换错题复习模式"},
		{Command: "stats", Description: "查看统计"},
		{Command: "stop", Description: "结束测试"},
		{Command: "export", Description: "导出错题本"},
		{Command: "favorite", Description: "收藏单词"},
		{Command: "history", Description: "测试记录"},
		{Command: "help", Description: "帮助"},
	}
	if _, err := bot.Request(tgbotapi.NewSetMyCommands(commands...)); err != nil {
		lg.Warn("failed to set bot commands", zap.Error(err))
	}

	lg.Info("authorized", zap.String("account", bot.Self.UserName))

	var history telegram.HistoryService
	if a.History != nil {
		history = a.History
	}

	handler := telegram.NewHandler(
		bot,
		lg.Named("telegram"),
		a.Vocabulary,
		history,
		func(chatID int64) *service.Session {
			return a.NewSession(fmt.Sprint(chatID), fmt.Sprintf("wrong_book_%d.json", chatID))
		},
		telegram.Options{
			DefaultModule: cfg.Preferences.DefaultModule,
			TimeLimit:     cfg.Preferences.TimeLimit(),
		},
	)

	if err := handler.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		lg.Error("telegram handler stopped", zap.Error(err))
	}

	lg.Info("shutdown signal received")
}
