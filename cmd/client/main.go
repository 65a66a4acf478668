package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/yourusername/chatwidget/internal/client/connection"
	"github.com/yourusername/chatwidget/internal/client/ui"
	"github.com/yourusername/chatwidget/internal/config"
	"github.com/yourusername/chatwidget/internal/logging"
)

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
		Use:          "chat",
		Short:        "Terminal chat widget",
		Long:         `Loads the chat transcript from a chat server and lets you send messages to it.`,
		Version:      version,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			configPath, _ := cmd.Flags().GetString("config")
			title, _ := cmd.Flags().GetString("title")
			return run(v, configPath, title)
		},
	}
	cmd.CompletionOptions.DisableDefaultCmd = true

	flags := cmd.Flags()
	flags.StringP("config", "c", "", "config file path (default is ./config.yaml)")
	flags.String("title", "Chat", "title shown above the transcript")
	flags.StringP("server", "s", "", "chat server base URL")
	flags.Duration("timeout", 0, "per-request timeout")
	flags.String("log-level", "", "log level: debug, info, warn or error")
	flags.String("log-file", "", "log file path (default is ~/.chatwidget/logs/chatwidget.log)")

	bindFlag(v, "client.base_url", cmd, "server")
	bindFlag(v, "client.timeout", cmd, "timeout")
	bindFlag(v, "log.level", cmd, "log-level")
	bindFlag(v, "log.file", cmd, "log-file")

	return cmd
}

// bindFlag lets a flag override a config key only when it was set
func bindFlag(v *viper.Viper, key string, cmd *cobra.Command, name string) {
	if err := v.BindPFlag(key, cmd.Flags().Lookup(name)); err != nil {
		panic(err)
	}
}

func run(v *viper.Viper, configPath, title string) error {
	cfg, err := config.Load(v, configPath)
	if err != nil {
		return err
	}

	logger, err := logging.InitFile(cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: file logging disabled: %v\n", err)
	}
	logger.Info("widget starting", "server", cfg.Client.BaseURL, "version", version)

	client := connection.NewClient(cfg.Client.BaseURL, cfg.Client.Timeout, logger)
	model := ui.NewModel(client, ui.Options{
		Title:   title,
		Timeout: cfg.Client.Timeout,
		Logger:  logger,
	})

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		logger.Error("widget stopped with error", "err", err)
		return fmt.Errorf("run widget: %w", err)
	}

	logger.Info("widget stopped")
	return nil
}
