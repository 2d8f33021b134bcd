package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	_ "time/tzdata"

	"github.com/escalopa/quran-reader/internal/adapter/aladhan"
	"github.com/escalopa/quran-reader/internal/adapter/badger"
	"github.com/escalopa/quran-reader/internal/adapter/equran"
	"github.com/escalopa/quran-reader/internal/adapter/formsubmit"
	"github.com/escalopa/quran-reader/internal/adapter/httpapi"
	"github.com/escalopa/quran-reader/internal/adapter/i18n"
	"github.com/escalopa/quran-reader/internal/adapter/redis"
	"github.com/escalopa/quran-reader/internal/adapter/telegram"
	"github.com/escalopa/quran-reader/internal/application"
	"github.com/escalopa/quran-reader/internal/config"
	"github.com/escalopa/quran-reader/internal/domain"
	"github.com/escalopa/quran-reader/internal/logger"
	"github.com/escalopa/quran-reader/internal/preferences"
	"github.com/escalopa/quran-reader/internal/progress"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "application error: %v\n", err)
		os.Exit(1)
	}
}

// storage is the preference backend and dialog state store of the chosen driver
type storage struct {
	backend domain.PreferenceBackend
	fsm     domain.FSMPort
	closer  io.Closer
}

func openStorage(ctx context.Context, cfg config.StorageConfig, log *slog.Logger) (*storage, error) {
	switch cfg.Driver {
	case "redis":
		client, err := redis.Connect(ctx, cfg.RedisURI)
		if err != nil {
			return nil, err
		}
		log.Info("redis connected")
		return &storage{backend: redis.NewSlots(client), fsm: redis.NewFSM(client), closer: client}, nil
	case "badger":
		slots, err := badger.Open(cfg.BadgerPath, log)
		if err != nil {
			return nil, err
		}
		return &storage{backend: slots, fsm: slots.FSM(), closer: slots}, nil
	case "memory":
		slots, err := badger.Open("", log)
		if err != nil {
			return nil, err
		}
		log.Warn("preferences are kept in memory and lost on restart")
		return &storage{backend: slots, fsm: slots.FSM(), closer: slots}, nil
	}
	return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
}

func run() error {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config.yaml"
	}
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		configPath = ""
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	log := logger.New(logger.Config{Environment: cfg.App.Environment, Level: cfg.App.LogLevel})
	log.Info("configuration loaded", "environment", cfg.App.Environment, "storage", cfg.Storage.Driver)

	i18nService, err := i18n.NewI18n(cfg.App.LocalesDir)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := openStorage(ctx, cfg.Storage, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := store.closer.Close(); err != nil {
			log.Error("close storage", "error", err)
		}
	}()

	service := application.NewReaderService(application.Deps{
		Content:  equran.NewClient(cfg.Content.BaseURL, cfg.Content.Timeout),
		Prayer:   aladhan.NewClient(cfg.Prayer.BaseURL, cfg.Prayer.Method, cfg.Prayer.Timeout),
		Feedback: formsubmit.NewClient(cfg.Feedback.BaseURL, cfg.Feedback.Recipient, cfg.Feedback.Timeout),
		FSM:      store.fsm,
		Registry: preferences.NewRegistry(store.backend, log),
		Log:      log,
	}, application.Config{
		Progress: progress.Config{
			Debounce:        cfg.Reading.Debounce,
			AutoScrollDelay: cfg.Reading.AutoScrollDelay,
		},
		TimerFlush:    cfg.Reading.TimerFlush,
		AyahsPerPage:  cfg.Reading.AyahsPerPage,
		IdleTimeout:   cfg.Reading.IdleTimeout,
		FeedbackEvery: cfg.Feedback.Every,
		FeedbackBurst: cfg.Feedback.Burst,
	})
	if err := service.Start(); err != nil {
		return err
	}
	// flushes reading time of every open view
	defer service.Stop()

	errChan := make(chan error, 2)

	if cfg.Telegram.Enabled {
		bot, err := telegram.NewBot(cfg.Telegram.Token, service, i18nService, log)
		if err != nil {
			return err
		}
		go func() {
			log.Info("starting telegram bot")
			if err := bot.Start(ctx); err != nil {
				errChan <- fmt.Errorf("telegram: %w", err)
			}
		}()
		defer func() {
			if err := bot.Stop(); err != nil {
				log.Error("stop telegram bot", "error", err)
			}
		}()
	}

	if cfg.HTTP.Enabled {
		server := httpapi.NewServer(service, log.With("component", "http"))
		go func() {
			if err := server.Run(ctx, cfg.HTTP.Addr); err != nil {
				errChan <- err
			}
		}()
	}

	select {
	case <-ctx.Done():
		log.Info("received shutdown signal")
	case err := <-errChan:
		log.Error("surface failed", "error", err)
		return err
	}

	log.Info("stopped")
	return nil
}
