package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/rewired-gh/synthtel/internal/catalog"
	"github.com/rewired-gh/synthtel/internal/config"
	"github.com/rewired-gh/synthtel/internal/generator"
	"github.com/rewired-gh/synthtel/internal/logger"
	"github.com/rewired-gh/synthtel/internal/server"
	"github.com/rewired-gh/synthtel/internal/telegram"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve synthetic telemetry over HTTP",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		defer logger.Sync()
		return serve(cfg)
	},
}

func serve(cfg *config.Config) error {
	gen := newGenerator(cfg)
	srv := server.New(gen, cfg.Server)

	var telegramClient *telegram.Client
	if cfg.Telegram.Enabled {
		var err error
		telegramClient, err = telegram.NewClient(cfg.Telegram.BotToken, cfg.Telegram.ChatID, cfg.Telegram.MaxRetries, cfg.Telegram.RetryDelayBase, gen)
		if err != nil {
			return fmt.Errorf("failed to initialize Telegram client: %w", err)
		}
		logger.Info("Telegram client initialized successfully")
	} else {
		logger.Debug("Telegram chat-ops disabled")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	if telegramClient != nil {
		telegramClient.ListenForCommands(ctx)
		if cfg.Telegram.DigestInterval > 0 {
			go runDigests(ctx, gen, telegramClient, cfg.Telegram)
		}
	}

	select {
	case err := <-errChan:
		return err
	case <-sigChan:
		logger.Info("Shutdown signal received, cleaning up...")
	}
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Warn("Server forced to shutdown: %v", err)
	}
	if err := <-errChan; err != nil {
		return err
	}
	logger.Info("Service stopped")
	return nil
}

// runDigests posts a scenario digest every interval until ctx is cancelled. Only the
// first failure of a streak and the recovery after it are reported to the chat.
func runDigests(ctx context.Context, gen *generator.Generator, client *telegram.Client, cfg config.TelegramConfig) {
	logger.Info("Posting %s digests for %s/%s every %v", cfg.DigestScenario, cfg.DigestService, cfg.DigestEnvironment, cfg.DigestInterval)

	ticker := time.NewTicker(cfg.DigestInterval)
	defer ticker.Stop()

	consecutiveFailures := 0
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			err := sendDigest(gen, client, cfg)
			if err != nil {
				consecutiveFailures++
				logger.Error("Digest failed: %v", err)
				if consecutiveFailures == 1 {
					if sendErr := client.SendError(err); sendErr != nil {
						logger.Warn("Failed to send error notification to Telegram: %v", sendErr)
					}
				}
				continue
			}
			if consecutiveFailures > 0 {
				if sendErr := client.SendRecovery(consecutiveFailures); sendErr != nil {
					logger.Warn("Failed to send recovery notification to Telegram: %v", sendErr)
				}
			}
			consecutiveFailures = 0
		}
	}
}

func sendDigest(gen *generator.Generator, client *telegram.Client, cfg config.TelegramConfig) error {
	kind, err := generator.ParseScenarioKind(cfg.DigestScenario)
	if err != nil {
		return err
	}
	env, err := catalog.ParseEnvironment(cfg.DigestEnvironment)
	if err != nil {
		return err
	}
	sc, err := gen.Scenario(kind, cfg.DigestService, env)
	if err != nil {
		return fmt.Errorf("failed to generate scenario: %w", err)
	}
	if err := client.SendScenario(sc); err != nil {
		return fmt.Errorf("failed to send digest: %w", err)
	}
	logger.Info("Sent %s digest %s", kind, sc.ID)
	return nil
}
