package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/aliskhannn/vocabulary-tester/internal/app"
	"github.com/aliskhannn/vocabulary-tester/internal/config"
	"github.com/aliskhannn/vocabulary-tester/internal/delivery/cli"
	"github.com/aliskhannn/vocabulary-tester/internal/domain/entities"
	"github.com/aliskhannn/vocabulary-tester/internal/logger"
)

func main() {
	configDir := flag.String("config", "./config", "Directory with config.yaml")
	moduleFlag := flag.String("module", "", "Default module id")
	modeFlag := flag.String("mode", "", "Default test mode (chinese or english)")
	limitFlag := flag.Int("time-limit", -1, "Seconds per question, 0 disables the countdown")
	importFlag := flag.String("import", "", "Wrong book to import before the first question, implies -review")
	reviewFlag := flag.Bool("review", false, "Start in review mode")
	flag.Parse()

	cfg, err := config.LoadFrom(*configDir)
	if err != nil {
		log.Fatal(err)
	}
	if *moduleFlag != "" {
		cfg.Preferences.DefaultModule = *moduleFlag
	}
	if *modeFlag != "" {
		cfg.Preferences.DefaultMode = *modeFlag
	}
	if *limitFlag >= 0 {
		cfg.Preferences.TimeLimitSeconds = *limitFlag
	}

	mode, err := entities.ParseMode(cfg.Preferences.DefaultMode)
	if err != nil {
		log.Fatal(err)
	}

	// Keep the terminal clean unless logs were sent to a file.
	if cfg.LogFile == "" {
		cfg.Env = "production"
	}
	lg, err := logger.New(cfg)
	if err != nil {
		log.Fatal(err)
	}
	if cfg.LogFile == "" {
		lg = lg.WithOptions(zap.IncreaseLevel(zap.ErrorLevel))
	}
	defer func() { _ = lg.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := app.New(ctx, cfg, lg)
	if err != nil {
		log.Fatalf("初始化失败: %v", err)
	}
	defer a.Close()

	session := a.NewSession(localOwner(), "")
	if *reviewFlag || *importFlag != "" {
		session.SetReviewMode(true)
	}
	if *importFlag != "" {
		n, err := session.ImportWrongBook(*importFlag)
		if err != nil {
			log.Fatalf("导入错题本失败: %v", err)
		}
		fmt.Printf("成功导入 %d 道错题\n", n)
	}

	runner := cli.NewRunner(os.Stdin, os.Stdout, a.Vocabulary, session, cli.Options{
		DefaultModule: cfg.Preferences.DefaultModule,
		DefaultMode:   mode,
		TimeLimit:     cfg.Preferences.TimeLimit(),
	}, lg.Named("cli"))

	if err := runner.Run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "程序运行时发生错误: %v\n", err)
		os.Exit(1)
	}
}

func localOwner() string {
	if u := os.Getenv("USER"); u != "" {
		return u
	}
	return "local"
}
