package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"mask-compare/config"
	httpapi "mask-compare/internal/api/httpapi"
	"mask-compare/internal/api/telegram"
	app "mask-compare/internal/application"
	"mask-compare/internal/container"
	"mask-compare/internal/domain/port"
	"mask-compare/internal/infrastructure/progress"
	"mask-compare/internal/infrastructure/storage"
	"mask-compare/internal/infrastructure/vision"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load config", "err", err)
		os.Exit(1)
	}

	logger := config.NewLogger(cfg.LogLevel)
	slog.SetDefault(logger)
	gin.SetMode(gin.ReleaseMode)

	// Собираем сервисы движка
	appContainer := container.New(
		storage.NewFolderScanner().WithLogger(logger),
		vision.Default(),
		storage.NewLocalExportStore(),
		app.ComparisonOptions{Strict: cfg.StrictScores},
		logger,
	)

	var opts []httpapi.Option
	if cfg.TelegramEnabled() {
		api, err := telegram.NewBotAPI(cfg.TelegramToken)
		if err != nil {
			logger.Error("Failed to create telegram client", "err", err)
			os.Exit(1)
		}
		logger.Info("Telegram notifications enabled", "account", api.Self.UserName, "chat", cfg.TelegramChatID)

		tg := telegram.NewClient(api, cfg.TelegramChatID, cfg.TelegramProgressStep, logger)
		opts = append(opts,
			httpapi.WithRunSinks(func(runID string) (port.ProgressSink, func()) {
				// Отправка в Telegram идёт по сети, поэтому через очередь
				d := progress.NewDispatcher(tg.RunSink(runID), cfg.ProgressBuffer, logger)
				return d, func() { go d.Close() }
			}),
			httpapi.WithExportObservers(tg),
		)
	}

	server := httpapi.NewServer(appContainer, httpapi.NewProgressHub(logger), logger, opts...)
	srv := &http.Server{
		Addr:    cfg.Addr,
		Handler: server.Router(),
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("Mask comparison API available", "addr", cfg.Addr, "opencv", vision.Available())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server failed", "err", err)
			stop()
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Shutdown failed", "err", err)
	}
}
