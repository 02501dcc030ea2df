package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"wordled/internal/admin"
	"wordled/internal/broadcast"
	"wordled/internal/factory"
	"wordled/internal/server"
	"wordled/internal/services/round"
	redisstorage "wordled/internal/storage/redis"
)

type config struct {
	host             string
	port             int
	adminPort        int
	multicastGroup   string
	rotationInterval time.Duration
	wordsPath        string
	storageType      string
	redisURL         string
}

func main() {
	_ = godotenv.Load()

	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix("WORDLED")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	cmd := &cobra.Command{
		Use:          "wordled-server",
		Short:        "Multi-client Wordle game server",
		Args:         cobra.ExactArgs(0),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config{
				host:             v.GetString("host"),
				port:             v.GetInt("port"),
				adminPort:        v.GetInt("admin-port"),
				multicastGroup:   v.GetString("multicast"),
				rotationInterval: v.GetDuration("rotation-interval"),
				wordsPath:        v.GetString("words"),
				storageType:      v.GetString("storage"),
				redisURL:         v.GetString("redis-url"),
			}
			return run(cmd.Context(), cfg)
		},
	}

	fs := cmd.Flags()
	fs.String("host", "", "address to bind the game server to (env: WORDLED_HOST)")
	fs.IntP("port", "p", 9999, "game server port (env: WORDLED_PORT)")
	fs.Int("admin-port", 8080, "admin HTTP port, 0 to disable (env: WORDLED_ADMIN_PORT)")
	fs.String("multicast", "224.0.0.1:4446", "multicast group for share broadcasts, empty to disable (env: WORDLED_MULTICAST)")
	fs.Duration("rotation-interval", round.DefaultInterval, "secret word lifetime (env: WORDLED_ROTATION_INTERVAL)")
	fs.String("words", "data/words.txt", "path to the word list file (env: WORDLED_WORDS)")
	fs.String("storage", factory.StorageTypeMemory, "storage backend: memory or redis (env: WORDLED_STORAGE)")
	fs.String("redis-url", "", "Redis connection URL, required for redis storage (env: WORDLED_REDIS_URL)")

	fs.VisitAll(func(f *pflag.Flag) {
		_ = v.BindPFlag(f.Name, fs.Lookup(f.Name))
		_ = v.BindEnv(f.Name)
	})

	return cmd
}

func run(ctx context.Context, cfg config) error {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	factoryCfg := factory.Config{
		StorageType:      cfg.storageType,
		RotationInterval: cfg.rotationInterval,
		Logger:           logger,
	}
	if cfg.storageType == factory.StorageTypeRedis {
		if cfg.redisURL == "" {
			return fmt.Errorf("--redis-url required when storage is redis")
		}
		redisCfg := redisstorage.DefaultConfig()
		redisCfg.URL = cfg.redisURL
		factoryCfg.RedisConfig = &redisCfg
	}

	app, err := factory.New(factoryCfg)
	if err != nil {
		return fmt.Errorf("creating application: %w", err)
	}

	// The word list is authoritative from the file; storage keeps a copy
	// so the server can come up without the file present.
	if err := app.Dictionary.LoadFromFile(ctx, cfg.wordsPath); err != nil {
		logger.Warn("could not load word list from file",
			slog.String("path", cfg.wordsPath),
			slog.String("error", err.Error()))
		if err := app.Dictionary.LoadFromStorage(ctx); err != nil {
			return fmt.Errorf("loading word list: %w", err)
		}
	}
	logger.Info("word list loaded", slog.Int("words", app.Dictionary.WordCount()))

	// Seed the round counter from persisted share history, then perform
	// rotation zero: the startup pick of the first live word.
	if err := app.Round.Recover(ctx, app.Storage); err != nil {
		return fmt.Errorf("recovering round counter: %w", err)
	}
	if err := app.Round.Rotate(); err != nil {
		return fmt.Errorf("picking initial secret word: %w", err)
	}

	var publisher broadcast.Publisher = broadcast.NopPublisher{}
	if cfg.multicastGroup != "" {
		mc, err := broadcast.NewMulticastPublisher(cfg.multicastGroup, logger)
		if err != nil {
			return fmt.Errorf("opening multicast publisher: %w", err)
		}
		defer func() { _ = mc.Close() }()
		publisher = mc
	}

	serverCfg := server.DefaultConfig()
	serverCfg.Host = cfg.host
	serverCfg.Port = cfg.port
	gameServer := server.New(serverCfg, server.Deps{
		Accounts:   app.Accounts,
		Registry:   app.Registry,
		Round:      app.Round,
		Dictionary: app.Dictionary,
		Publisher:  publisher,
	}, logger)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		select {
		case <-sigCh:
			logger.Info("shutdown signal received")
			cancel()
		case <-ctx.Done():
		}
	}()

	// Rotation timer runs for the life of the process.
	go app.Round.Run(ctx)

	errCh := make(chan error, 2)
	go func() {
		errCh <- gameServer.Start(ctx)
	}()

	var adminServer *admin.Server
	if cfg.adminPort > 0 {
		adminCfg := admin.DefaultConfig()
		adminCfg.Host = cfg.host
		adminCfg.Port = cfg.adminPort
		adminServer = admin.NewServer(admin.Deps{
			Accounts: app.Accounts,
			Registry: app.Registry,
			Round:    app.Round,
		}, adminCfg, logger)
		go func() {
			errCh <- adminServer.Start()
		}()
	}

	select {
	case err := <-errCh:
		if err != nil {
			logger.Error("server error", slog.String("error", err.Error()))
			return err
		}
	case <-ctx.Done():
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), serverCfg.ShutdownTimeout)
	defer shutdownCancel()

	if err := gameServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", slog.String("error", err.Error()))
	}
	if adminServer != nil {
		if err := adminServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("admin shutdown error", slog.String("error", err.Error()))
		}
	}

	logger.Info("server stopped")
	return nil
}
