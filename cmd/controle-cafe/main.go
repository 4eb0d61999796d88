package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/klabast/wb-services/controle-cafe/internal/app"
	"github.com/klabast/wb-services/controle-cafe/internal/cafe"
	"github.com/klabast/wb-services/controle-cafe/internal/commands"
	"github.com/klabast/wb-services/controle-cafe/internal/config"
	"github.com/klabast/wb-services/controle-cafe/internal/logger"
	"github.com/klabast/wb-services/controle-cafe/internal/store"
)

func main() {
	if len(os.Args) > 1 && os.Args[1] == "hash-password" {
		commands.HashPassword(os.Args[2:])
		return
	}

	configPath := flag.String("config", "", "Path to config file (default: ./config.yaml if present)")
	port := flag.Int("port", 8080, "Port to listen on (overrides server.port)")
	edit := flag.Bool("edit", true, "Enable edit mode (overrides server.edit_mode)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Flags only override the config when given explicitly
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "port":
			cfg.Server.Port = *port
		case "edit":
			cfg.Server.EditMode = *edit
		}
	})
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(&cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	kv, err := store.Open(cfg, log)
	if err != nil {
		log.Fatal("Failed to open store", zap.String("driver", cfg.Store.Driver), zap.Error(err))
	}
	defer kv.Close()

	state := cafe.Open(context.Background(), kv, log)

	var auth *app.Auth
	if cfg.Server.EditMode {
		auth, err = app.LoadAuth(cfg.Server.AuthFile, log)
		if err != nil {
			log.Fatal("Failed to load auth credentials", zap.Error(err))
		}
	}

	server := app.NewServer(state, auth, log, app.Options{
		EditMode: cfg.Server.EditMode,
		Calendar: cfg.Calendar,
	})
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      server.Handler(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("Starting Controle de Café",
			zap.String("mode", server.Mode()),
			zap.String("addr", fmt.Sprintf("http://localhost:%d", cfg.Server.Port)),
			zap.String("store", cfg.Store.Driver),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	log.Info("Shutting down", zap.String("signal", sig.String()))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Server shutdown failed", zap.Error(err))
	}
	log.Info("Server stopped")
}
