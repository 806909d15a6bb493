package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/common-nighthawk/go-figure"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/tarotlabs/go-tarot-server/auth"
	"github.com/tarotlabs/go-tarot-server/internal/config"
	"github.com/tarotlabs/go-tarot-server/readings"
	"github.com/tarotlabs/go-tarot-server/server"
	"github.com/tarotlabs/go-tarot-server/server/sessionstore"
	"github.com/tarotlabs/go-tarot-server/token"
)

func main() {
	if err := run(); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
	log.Info().Msg("server stopped")
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	configureLogging(cfg)
	displayAppName(cfg.AppName)

	var provider auth.Provider
	if !cfg.DemoMode {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		oidcProvider, err := auth.NewOIDCProvider(ctx, auth.ProviderConfig{
			Issuer:                cfg.OIDCIssuer,
			ClientID:              cfg.OIDCClientID,
			ClientSecret:          cfg.OIDCClientSecret,
			RedirectURL:           cfg.OIDCRedirectURL,
			PostLogoutRedirectURL: cfg.BaseURL,
		})
		if err != nil {
			return err
		}
		provider = oidcProvider
	}

	tokens := token.NewManager(token.NewHMACSigner(cfg.JWTSecret), cfg.SessionTokenTTL)
	sessions := sessionstore.NewInMemoryStore(cfg.LoginSessionTTL)
	readingService := readings.NewService(readings.NewOpenAICompleter(cfg.OpenAIAPIKey))
	readingRepo := readings.NewInMemoryRepo()

	srv := &http.Server{
		Addr:    cfg.ListenAddr(),
		Handler: server.New(cfg, provider, sessions, tokens, readingService, readingRepo),
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", srv.Addr).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("server.ListenAndServe: %w", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case <-stop:
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server.Shutdown: %w", err)
	}
	return nil
}

func configureLogging(cfg *config.Config) {
	if cfg.IsProduction() {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
		return
	}
	zerolog.SetGlobalLevel(zerolog.DebugLevel)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
}

func displayAppName(appName string) {
	myFigure := figure.NewFigure(appName, "cybermedium", true)
	myFigure.Print()
	fmt.Println()
}
