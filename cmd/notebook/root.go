package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"notebook/internal/notebook/config"
	"notebook/pkg/logger"
)

// Константы для сообщений об ошибках.
const (
	ErrLoadConfig           = "failed to load configuration"
	ErrInitLoggerWithConfig = "failed to initialize logger with configuration settings"
)

// cli хранит конфигурацию, загруженную перед выполнением команды.
type cli struct {
	cfg *config.Config
}

func newRootCmd() *cobra.Command {
	c := &cli{}

	root := &cobra.Command{
		Use:           "notebook",
		Short:         "Multi-tenant notes service",
		Long:          `notebook serves the notes HTTP API and manages its database schema.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return c.loadConfig(cmd)
		},
	}

	root.AddCommand(newServeCmd(c), newMigrateCmd(c))
	return root
}

// loadConfig читает конфигурацию и перенастраивает глобальный логгер.
func (c *cli) loadConfig(cmd *cobra.Command) error {
	ctx := cmd.Context()
	log := logger.Log(ctx)

	cfg, err := config.Load(ctx)
	if err != nil {
		log.Error(ctx, ErrLoadConfig, zap.Error(err))
		return err
	}

	finalLogger, err := logger.NewLogger(cfg.Logging.GetEnvironment(), cfg.Logging.Level)
	if err != nil {
		log.Error(ctx, ErrInitLoggerWithConfig, zap.Error(err))
		return err
	}
	logger.SetGlobalLogger(finalLogger)

	c.cfg = cfg
	return nil
}
