package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply schema migrations (or create indexes for mongo) and exit",
		Args:  cobra.NoArgs,
		RunE:  runMigrate,
	}
}

func runMigrate(cmd *cobra.Command, _ []string) error {
	cfg, logger, err := bootstrap()
	if err != nil {
		return err
	}
	defer syncLogger(logger)

	ctx := cmd.Context()
	st, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := st.close(ctx); err != nil {
			logger.Warn("failed to close store", zap.Error(err))
		}
	}()

	if err := st.migrate(ctx); err != nil {
		return fmt.Errorf("migrate %s: %w", st.driver, err)
	}
	logger.Info("migrations applied", zap.String("driver", st.driver))
	return nil
}
