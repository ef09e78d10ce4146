package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/ashstar-ai/mainframe/internal/config"
	"github.com/ashstar-ai/mainframe/internal/handler"
	"github.com/ashstar-ai/mainframe/internal/mail"
	"github.com/ashstar-ai/mainframe/internal/model/persona"
	"github.com/ashstar-ai/mainframe/internal/pkg/logger"
	"github.com/ashstar-ai/mainframe/internal/service/ai"
	authService "github.com/ashstar-ai/mainframe/internal/service/auth"
	chatService "github.com/ashstar-ai/mainframe/internal/service/chat"
	"github.com/ashstar-ai/mainframe/internal/store"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Printf("warning: failed to load .env file: %v", err)
		log.Println("continuing with system environment variables only")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logg, err := logger.New(cfg.Log.Mode)
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer logg.Sync()

	records, err := store.Open(cfg.DB)
	if err != nil {
		logg.Fatal("failed to open record store", "error", err.Error())
	}

	personaStore := persona.NewMemoryStore(persona.Seed())
	conversations := chatService.NewService(records)

	var mailer mail.Sender
	if cfg.Mail.Enabled() {
		mailer = mail.NewSMTPSender(cfg.Mail)
		logg.Info("mail relay configured", "host", cfg.Mail.Host)
	} else {
		logg.Info("mail relay not configured, welcome mail disabled")
	}
	auth := authService.NewService(records, mailer, logg.With("service", "auth"))

	// Build one provider per configured model name, in preference order. A
	// missing key leaves the list empty and every chat degrades to the
	// offline table, which keeps the endpoint answering.
	var providers []ai.Provider
	if cfg.AI.Enabled() {
		providers, err = ai.NewProviders(ctx, cfg.AI)
		if err != nil {
			logg.Warn("failed to initialize providers, continuing with simulation only", "error", err.Error())
			providers = nil
		} else {
			logg.Info("providers initialized", "count", len(providers), "order", cfg.AI.Models)
		}
	} else {
		logg.Warn("generation credentials not configured, simulation replies only")
	}

	resolver := ai.NewOrchestrator(providers, cfg.AI.FallbackDelay, cfg.AI.AttemptTimeout, logg.With("service", "fallback"))
	builder := ai.NewBuilder(personaStore)
	offline := ai.NewSelector(ai.DefaultOfflineTable())

	router := handler.NewRouter(handler.Deps{
		Personas:      personaStore,
		Conversations: conversations,
		Resolver:      resolver,
		Builder:       builder,
		Offline:       offline,
		Auth:          auth,
		Records:       records,
		Log:           logg.With("service", "chat"),
	})

	startServer(ctx, cfg.Server, router, logg)
}

func startServer(ctx context.Context, serverCfg config.ServerConfig, router http.Handler, logg *logger.Logger) {
	srv := &http.Server{
		Addr:              serverCfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	logg.Info("mainframe listening", "addr", serverCfg.Addr)
	if err := runServer(ctx, srv); err != nil {
		logg.Fatal("server error", "error", err.Error())
	}
}

func runServer(ctx context.Context, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		err := <-errCh
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
