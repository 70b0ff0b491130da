package main

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"daybook/internal/assistant"
	"daybook/internal/config"
	"daybook/internal/crypto"
	"daybook/internal/db"
	"daybook/internal/handlers"
	mw "daybook/internal/middleware"
	"daybook/internal/services"
	"daybook/internal/store"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	cfg := config.Load()

	if cfg.AccessPassphraseHash != "" && cfg.JWTSecret == "" {
		slog.Error("JWT_SECRET is required when ACCESS_PASSPHRASE_HASH is set")
		os.Exit(1)
	}

	dbConn, err := db.Open(cfg.DriverName(), cfg.DatabaseURL)
	if err != nil {
		slog.Error("failed to open db", slog.Any("err", err))
		os.Exit(1)
	}

	var codec store.EntryCodec
	if cfg.EncryptionKey != "" {
		key, err := crypto.ParseKey(cfg.EncryptionKey)
		if err != nil {
			slog.Error("invalid ENCRYPTION_KEY", slog.Any("err", err))
			os.Exit(1)
		}
		encSvc, err := services.NewEncryptionService(key)
		if err != nil {
			slog.Error("failed to init encryption", slog.Any("err", err))
			os.Exit(1)
		}
		codec = encSvc
	}
	st := store.New(dbConn, codec)

	var ai *assistant.Assistant
	if cfg.AIAvailable() {
		ai, err = assistant.New(cfg.OpenAIAPIKey, cfg.OpenAIModel, cfg.OpenAIBaseURL)
		if err != nil {
			slog.Warn("assistant disabled", slog.Any("err", err))
			ai = nil
		}
	} else {
		slog.Warn("OPENAI_API_KEY not set; entries will be saved without AI fields")
	}

	zapLogger, err := zap.NewProduction()
	if err != nil {
		slog.Error("failed to init request logger", slog.Any("err", err))
		os.Exit(1)
	}
	defer zapLogger.Sync()

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(mw.RequestLogger(zapLogger))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	entryHandler := handlers.NewEntryHandler(st, ai)
	statsHandler := handlers.NewStatsHandler(st, ai != nil)
	exportHandler := handlers.NewExportHandler(st)
	analyzeHandler := handlers.NewAnalyzeHandler(st, ai)
	chatHandler := handlers.NewChatHandler(ai)

	r.Route("/api", func(api chi.Router) {
		api.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(map[string]any{
				"status":       "ok",
				"ai_available": ai != nil,
			})
		})
		if cfg.AccessPassphraseHash != "" {
			authHandler := handlers.NewAuthHandler([]byte(cfg.AccessPassphraseHash), []byte(cfg.JWTSecret))
			api.Post("/auth/login", authHandler.Login)
		}
		api.Group(func(pr chi.Router) {
			if cfg.AccessPassphraseHash != "" {
				pr.Use(mw.NewAuthMiddleware([]byte(cfg.JWTSecret)).RequireAuth)
			}
			pr.Post("/entries", entryHandler.Create)
			pr.Get("/entries", entryHandler.List)
			pr.Get("/entries/page", entryHandler.Page)
			pr.Get("/entries/{id}", entryHandler.Get)
			pr.Put("/entries/{id}", entryHandler.Update)
			pr.Delete("/entries/{id}", entryHandler.Delete)
			pr.Get("/stats", statsHandler.Get)
			pr.Get("/export", exportHandler.Get)
			pr.Get("/analyze", analyzeHandler.Get)
			pr.Get("/prompts", handlers.Prompts)
			pr.Post("/chat", chatHandler.Chat)
		})
	})

	srv := &http.Server{Addr: ":" + cfg.Port, Handler: r}
	go func() {
		slog.Info("server starting", slog.String("addr", ":"+cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", slog.Any("err", err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	slog.Info("shutdown initiated")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = srv.Shutdown(ctx)
	_ = dbConn.Close()
	slog.Info("server stopped")
}
