package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"merchant-be/internal/config"
	"merchant-be/internal/database"
	"merchant-be/internal/logging"
)

func indexesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "indexes",
		Short: "Create the unique email indexes and exit",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := config.Load()
			logger := logging.New(os.Stderr, cfg.LogLevel)
			if cfg.MongoURI == "" {
				return fmt.Errorf("MONGO_URI is required")
			}

			client, db, err := database.NewConnection(cmd.Context(), cfg.MongoURI, cfg.MongoDBName)
			if err != nil {
				return fmt.Errorf("failed to connect to database: %w", err)
			}
			defer disconnect(client, logger)

			if err := database.EnsureIndexes(cmd.Context(), db); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "indexes ready on %s\n", cfg.MongoDBName)
			return nil
		},
	}
}
