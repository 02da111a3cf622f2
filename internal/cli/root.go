package cli

import (
	"denizquiz/internal/config"
	"denizquiz/internal/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var envFile string

// Execute runs the CLI.
func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "denizquiz",
		Short:         "Quiz backend serving episodes, quizzes, scores and leaderboards",
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context(), envFile)
		},
	}

	cmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "optional dotenv file loaded before the environment")
	cmd.AddCommand(newServeCmd(&envFile))
	cmd.AddCommand(newEnsureIndexesCmd(&envFile))
	cmd.AddCommand(newWarmCacheCmd(&envFile))
	return cmd
}

func setup(envFile string) (*config.Config, *zap.Logger, error) {
	cfg, err := config.Load(envFile)
	if err != nil {
		return nil, nil, err
	}
	return cfg, logger.New(cfg.LogLevel, cfg.LogFile), nil
}
