package cli

import (
	"context"
	"denizquiz/internal/app"
	"denizquiz/internal/metrics"
	"denizquiz/internal/repository"
	"fmt"

	"github.com/spf13/cobra"
)

func newEnsureIndexesCmd(envFile *string) *cobra.Command {
	return &cobra.Command{
		Use:   "ensure-indexes",
		Short: "Create the score collection indexes and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			cfg, log, err := setup(*envFile)
			if err != nil {
				return err
			}
			defer log.Sync()

			client, err := app.ConnectMongo(ctx, cfg, log)
			if err != nil {
				return err
			}
			defer client.Disconnect(context.Background())

			return repository.EnsureIndexes(ctx, client.Database(cfg.DBName), log)
		},
	}
}

func newWarmCacheCmd(envFile *string) *cobra.Command {
	return &cobra.Command{
		Use:   "warm-cache",
		Short: "Fetch episodes and questions into the configured cache",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			cfg, log, err := setup(*envFile)
			if err != nil {
				return err
			}
			defer log.Sync()

			c, rdb, err := app.NewCache(ctx, cfg, log)
			if err != nil {
				return err
			}
			if rdb != nil {
				defer rdb.Close()
			}

			res, err := app.NewCatalog(cfg, c, log, metrics.Noop()).Refresh(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "cached %d episodes and %d questions\n", res.Episodes, res.Questions)
			return nil
		},
	}
}
