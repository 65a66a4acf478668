package main

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

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/yourusername/chatwidget/internal/config"
	"github.com/yourusername/chatwidget/internal/logging"
	"github.com/yourusername/chatwidget/internal/server"
)

const shutdownTimeout = 5 * time.Second

var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	v := config.New()

	cmd := &cobra.Command{
		Use:          "chat-server",
		Short:        "Development chat server backing the widget",
		Long:         `Serves the chat transcript over HTTP. Messages live in memory and are lost on exit.`,
		Version:      version,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			configPath, _ := cmd.Flags().GetString("config")
			return run(cmd.Context(), v, configPath)
		},
	}
	cmd.CompletionOptions.DisableDefaultCmd = true

	flags := cmd.Flags()
	flags.StringP("config", "c", "", "config file path (default is ./config.yaml)")
	flags.StringP("addr", "a", "", "HTTP listen address")
	flags.String("auto-reply", "", "text the server answers every message with")
	flags.String("log-level", "", "log level: debug, info, warn or error")
	flags.String("log-file", "", "log to a rotating file instead of stderr")

	for key, name := range map[string]string{
		"server.addr":       "addr",
		"server.auto_reply": "auto-reply",
		"log.level":         "log-level",
		"log.file":          "log-file",
	} {
		if err := v.BindPFlag(key, flags.Lookup(name)); err != nil {
			panic(err)
		}
	}

	return cmd
}

func run(ctx context.Context, v *viper.Viper, configPath string) error {
	cfg, err := config.Load(v, configPath)
	if err != nil {
		return err
	}

	var logger *slog.Logger
	if cfg.Log.File != "" {
		if logger, err = logging.InitFile(cfg.Log); err != nil {
			return fmt.Errorf("init logging: %w", err)
		}
	} else {
		logger = logging.InitWriter(cfg.Log, os.Stderr)
	}

	srv := server.NewServer(server.Options{
		AutoReply:    cfg.Server.AutoReply,
		MaxBodyBytes: cfg.Server.MaxBodyBytes,
		Logger:       logger,
	})
	httpServer := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errChan := make(chan error, 1)
	go func() {
		logger.Info("Starting chat server", "addr", cfg.Server.Addr, "auto_reply", cfg.Server.AutoReply != "", "version", version)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- fmt.Errorf("http server error: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info("Shutdown signal received")
	case err := <-errChan:
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	logger.Info("Server stopped cleanly", "messages", srv.ChatManager().Len())
	return nil
}
