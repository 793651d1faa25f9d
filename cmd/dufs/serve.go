package main

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/chancat87/dufs/config"
	dufshttp "github.com/chancat87/dufs/http"
)

func runServe(cmd *cobra.Command, args []string) error {
	if len(args) > 0 {
		viper.Set("root", args[0])
	}

	cfg, err := config.Load(viper.GetViper())
	if err != nil {
		return err
	}

	handler := dufshttp.NewHandler(&dufshttp.HandlerConfig{
		Root:     cfg.Root,
		Readonly: cfg.Readonly,
		Auth:     cfg.Auth,
		CORS:     cfg.CORS,
	})

	// No read or write timeouts: uploads and archive downloads run for
	// as long as the client keeps the connection alive.
	server := &http.Server{
		Handler:     handler.Router(),
		IdleTimeout: 120 * time.Second,
	}

	ln, err := net.Listen("tcp", cfg.Addr())
	if err != nil {
		return fmt.Errorf("bind %s: %w", cfg.Addr(), err)
	}

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		slog.Info("shutting down server...")
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("server shutdown error", "err", err)
		}
	}()

	fmt.Fprintf(os.Stderr, "Files served on http://%s\n", ln.Addr())
	slog.Info("serving directory",
		"root", cfg.Root,
		"addr", cfg.Addr(),
		"readonly", cfg.Readonly,
		"auth", cfg.Auth != "",
	)

	if err := server.Serve(ln); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}
