package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/MikeSquared-Agency/namepal/internal/anthropic"
	"github.com/MikeSquared-Agency/namepal/internal/api"
	"github.com/MikeSquared-Agency/namepal/internal/buildinfo"
	"github.com/MikeSquared-Agency/namepal/internal/config"
	"github.com/MikeSquared-Agency/namepal/internal/conversation"
	"github.com/MikeSquared-Agency/namepal/internal/dialogue"
	"github.com/MikeSquared-Agency/namepal/internal/hermes"
	"github.com/MikeSquared-Agency/namepal/internal/llm"
	"github.com/MikeSquared-Agency/namepal/internal/namegen"
	"github.com/MikeSquared-Agency/namepal/internal/openai"
	"github.com/MikeSquared-Agency/namepal/internal/store"
)

func main() {
	cfg := config.Load()
	setupLogging(cfg.LogLevel)

	version := buildinfo.Version()
	slog.Info("namepal starting", "port", cfg.Port, "version", version, "provider", cfg.Provider)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	chatLLM, generateLLM, ok := buildClients(cfg)
	if !ok {
		os.Exit(1)
	}

	// NATS/Hermes (optional, events are dropped without it)
	var hermesClient *hermes.Client
	if cfg.NatsURL != "" {
		var err error
		hermesClient, err = hermes.NewClient(cfg.NatsURL, cfg.NatsToken, slog.Default())
		if err != nil {
			slog.Error("failed to connect to NATS", "error", err)
			os.Exit(1)
		}
		slog.Info("NATS connected", "url", cfg.NatsURL)
	} else {
		slog.Warn("NATS_URL not set, running without events")
	}

	// Database (optional generation ledger)
	var db *store.Store
	if cfg.DatabaseURL != "" {
		var err error
		db, err = store.New(ctx, cfg.DatabaseURL)
		if err != nil {
			slog.Error("failed to connect to database", "error", err)
			os.Exit(1)
		}
		if err := db.Migrate(ctx); err != nil {
			slog.Error("failed to migrate database", "error", err)
			db.Close()
			os.Exit(1)
		}
		slog.Info("database connected")
	} else {
		slog.Warn("DATABASE_URL not set, generations are not recorded")
	}

	// Interface values stay nil when the backing client is absent.
	var turnEvents conversation.EventPublisher
	var genEvents namegen.EventPublisher
	if hermesClient != nil {
		turnEvents = hermesClient
		genEvents = hermesClient
	}
	var recorder namegen.Recorder
	if db != nil {
		recorder = db
	}

	chat := conversation.New(chatLLM, dialogue.GlobalRandom{}, turnEvents, conversation.Config{
		Retry: llm.RetryPolicy{
			MaxAttempts:    cfg.ModelMaxAttempts,
			Delay:          cfg.ModelRetryDelay,
			AttemptTimeout: cfg.ModelAttemptTimeout,
		},
		Deadline:    cfg.ChatDeadline,
		AnalyticsID: cfg.AnalyticsID,
	}, slog.Default())

	names := namegen.New(generateLLM, recorder, genEvents, namegen.Config{
		Model:       cfg.GenerateModel(),
		Timeout:     cfg.GenerateTimeout,
		AnalyticsID: cfg.AnalyticsID,
	}, slog.Default())

	srv := api.NewServer(cfg.Port, chat, names, api.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		Version:        version,
	}, slog.Default())

	g, gctx := errgroup.WithContext(ctx)
	serverDone := make(chan struct{})
	g.Go(func() error {
		defer close(serverDone)
		return srv.Start(gctx)
	})
	// Release NATS and the pool once the server has drained, whether it
	// stopped on a signal or failed to listen.
	g.Go(func() error {
		<-gctx.Done()
		<-serverDone
		if hermesClient != nil {
			hermesClient.Close()
			slog.Info("NATS closed")
		}
		if db != nil {
			db.Close()
			slog.Info("database closed")
		}
		return nil
	})

	slog.Info("namepal ready", "port", cfg.Port, "chat_model", cfg.ChatModel(), "generate_model", cfg.GenerateModel())

	if err := g.Wait(); err != nil {
		slog.Error("HTTP server error", "error", err)
		os.Exit(1)
	}
	slog.Info("namepal stopped")
}

// buildClients returns the chat and generation model clients for the
// configured provider.
func buildClients(cfg config.Config) (llm.Client, llm.Client, bool) {
	switch cfg.Provider {
	case config.ProviderAnthropic:
		if cfg.AnthropicAPIKey == "" {
			slog.Error("ANTHROPIC_API_KEY is required")
			return nil, nil, false
		}
		chat := anthropic.NewClient(cfg.AnthropicAPIKey, cfg.ChatModel())
		gen := anthropic.NewClient(cfg.AnthropicAPIKey, cfg.GenerateModel())
		slog.Info("anthropic clients ready", "chat_model", chat.Model(), "generate_model", gen.Model())
		return chat, gen, true
	case config.ProviderOpenAI:
		if cfg.OpenAIAPIKey == "" {
			slog.Error("OPENAI_API_KEY is required")
			return nil, nil, false
		}
		chat := openai.NewClient(cfg.OpenAIAPIKey, cfg.ChatModel(), cfg.OpenAIBaseURL)
		gen := openai.NewClient(cfg.OpenAIAPIKey, cfg.GenerateModel(), cfg.OpenAIBaseURL)
		slog.Info("openai clients ready", "chat_model", chat.Model(), "generate_model", gen.Model())
		return chat, gen, true
	default:
		slog.Error("unknown LLM_PROVIDER", "provider", cfg.Provider)
		return nil, nil, false
	}
}

func setupLogging(level string) {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: lvl})
	slog.SetDefault(slog.New(handler))
}
