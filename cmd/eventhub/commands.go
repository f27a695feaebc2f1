package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/fx"

	"github.com/polkiloo/eventhub/internal/config"
	"github.com/polkiloo/eventhub/internal/di"
	"github.com/polkiloo/eventhub/internal/storage/postgres"
)

func newRootCommand() *cobra.Command {
	serve := newServeCommand()
	root := &cobra.Command{
		Use:                "eventhub",
		Short:              "Event ticketing order service",
		SilenceUsage:       true,
		DisableFlagParsing: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve.RunE(cmd, args)
		},
	}
	root.AddCommand(serve, newMigrateCommand())
	return root
}

func newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:                "serve [flags]",
		Short:              "Run the HTTP API and the session sweeper",
		DisableFlagParsing: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			app := fx.New(
				fx.Supply(config.Args(args)),
				di.Module(),
			)
			return run(cmd.Context(), app)
		},
	}
}

func newMigrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:                "migrate up|down [flags]",
		Short:              "Apply or roll back the embedded schema migrations",
		DisableFlagParsing: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return fmt.Errorf("migration direction required: %s or %s", postgres.MigrateUp, postgres.MigrateDown)
			}
			cfg, err := config.FromArgs(config.Args(args[1:]))
			if err != nil {
				return err
			}
			if err := postgres.Migrate(cfg.DatabaseURI, args[0]); err != nil {
				return err
			}
			fmt.Fprintf(os.Stdout, "migrations applied: %s\n", args[0])
			return nil
		},
	}
}
