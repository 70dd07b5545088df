package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dmoraisb/maitred"
	"github.com/dmoraisb/maitred/internal/logging"
	httpadapter "github.com/dmoraisb/maitred/pkg/adapters/http"
	"github.com/dmoraisb/maitred/pkg/adapters/memory"
	redisadapter "github.com/dmoraisb/maitred/pkg/adapters/redis"
	"github.com/dmoraisb/maitred/pkg/kb"
	"github.com/dmoraisb/maitred/pkg/observability"
	"github.com/dmoraisb/maitred/pkg/ports"
	"github.com/dmoraisb/maitred/pkg/recognizer"
	"github.com/dmoraisb/maitred/pkg/speech"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/prometheus/client_golang/prometheus"
	backend "github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
)

// ServeConfig defines the server's configurable parameters, sourced
// from environment variables (loaded from .env for local runs).
type ServeConfig struct {
	Addr       string `split_words:"true" default:":8080"`
	RedisURL   string `envconfig:"REDIS_URL"`
	SessionTTL string `split_words:"true" default:"24h"`
	KBPath     string `envconfig:"KB_PATH"`
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the bot over HTTP",
	Long:  `Starts the JSON chat API. With REDIS_URL set, conversation state and turn locking use Redis so multiple replicas can share load; otherwise state is kept in memory.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := logging.New(slog.LevelInfo)

		if err := godotenv.Load(".env"); err != nil {
			logger.Debug("no .env file loaded", "err", err)
		}

		var cfg ServeConfig
		if err := envconfig.Process("maitred", &cfg); err != nil {
			return fmt.Errorf("process environment config: %w", err)
		}

		bot, cleanup, err := buildServerBot(cfg, logger)
		if err != nil {
			return err
		}
		defer cleanup()

		srv := &http.Server{
			Addr:    cfg.Addr,
			Handler: httpadapter.NewHandler(bot, httpadapter.WithLogger(logger)),
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		serverErrors := make(chan error, 1)
		go func() {
			logger.Info("listening", "addr", cfg.Addr)
			serverErrors <- srv.ListenAndServe()
		}()

		select {
		case err := <-serverErrors:
			if errors.Is(err, http.ErrServerClosed) {
				return nil
			}
			return err
		case <-ctx.Done():
			logger.Info("shutdown signal received")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				return fmt.Errorf("could not stop server gracefully: %w", err)
			}
			return nil
		}
	},
}

// buildServerBot wires the production-shaped bot: redis-backed state
// and locking when configured, prometheus metrics, configurable KB.
func buildServerBot(cfg ServeConfig, logger *slog.Logger) (*maitred.Bot, func(), error) {
	cleanup := func() {}

	var store ports.SessionStore = memory.NewStore()
	var opts []maitred.Option

	if cfg.RedisURL != "" {
		redisOpts, err := backend.ParseURL(cfg.RedisURL)
		if err != nil {
			return nil, nil, fmt.Errorf("parse REDIS_URL: %w", err)
		}
		client := backend.NewClient(redisOpts)
		if err := client.Ping(context.Background()).Err(); err != nil {
			return nil, nil, fmt.Errorf("connect to redis: %w", err)
		}

		ttl, err := time.ParseDuration(cfg.SessionTTL)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid SESSION_TTL %q: %w", cfg.SessionTTL, err)
		}

		rstore := redisadapter.NewFromClient(client, redisadapter.WithTTL(ttl))
		store = rstore
		opts = append(opts, maitred.WithLocker(redisadapter.NewLocker(client, "maitred:")))
		cleanup = func() { _ = rstore.Close() }
		logger.Info("using redis session store", "ttl", ttl)
	}

	answerer, err := loadKB(cfg.KBPath)
	if err != nil {
		return nil, nil, err
	}

	metrics := observability.NewMetrics(prometheus.DefaultRegisterer)

	opts = append(opts,
		maitred.WithRecognizer(recognizer.New()),
		maitred.WithKnowledgeBase(answerer),
		maitred.WithSpeech(speech.New()),
		maitred.WithHooks(metrics.Hooks()),
		maitred.WithLogger(logger),
	)

	bot, err := maitred.New(store, opts...)
	if err != nil {
		return nil, nil, err
	}
	return bot, cleanup, nil
}

func loadKB(path string) (*kb.Static, error) {
	if path == "" {
		return kb.NewDefault()
	}
	return kb.NewFromFile(path)
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
