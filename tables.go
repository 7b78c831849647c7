package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"cupidwave/config"
	"cupidwave/logger"
	"cupidwave/store"
)

func newCreateTablesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "create-tables",
		Short: "Create the DynamoDB tables and their indexes",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadToolConfig()
			if err != nil {
				return err
			}
			base, err := logger.New(cfg.Debug)
			if err != nil {
				return err
			}
			defer base.Sync() //nolint:errcheck

			awsCfg, err := store.LoadAWSConfig(cmd.Context(), cfg.AWS)
			if err != nil {
				return err
			}
			ds := store.NewDynamoService(store.NewDynamoClient(awsCfg, cfg.AWS), cfg.AWS.TablePrefix, logger.Named(base, "dynamo"))
			created, err := store.CreateTables(cmd.Context(), ds)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d table(s) created\n", len(created))
			return nil
		},
	}
}
