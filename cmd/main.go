package main

import (
	"context"
	"errors"

	"go-clinic-booking/cmd/bootstrap"
	"go-clinic-booking/pkg/apperror"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		if errors.Is(err, apperror.ErrConfiguration) {
			logrus.Fatalf("Invalid configuration: %v", err)
		}
		logrus.Fatalf("clinicctl: %v", err)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "clinicctl",
		Short:         "Clinic booking store and API",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newServeCmd(), newInitSchemaCmd())
	return root
}

func newServeCmd() *cobra.Command {
	var skipSchema bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			app, err := bootstrap.New(ctx)
			if err != nil {
				return err
			}
			defer app.Close()

			if app.Config.App.InitSchemaOnStart && !skipSchema {
				if err := app.InitSchema(ctx); err != nil {
					return err
				}
			}

			if err := app.BuildServer(ctx); err != nil {
				return err
			}
			return app.Run()
		},
	}
	cmd.Flags().BoolVar(&skipSchema, "skip-schema", false, "do not create missing tables before serving")

	return cmd
}

func newInitSchemaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init-schema",
		Short: "Create missing tables and indexes, then exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			app, err := bootstrap.New(ctx)
			if err != nil {
				return err
			}
			defer app.Close()

			if err := app.InitSchema(ctx); err != nil {
				return err
			}
			app.Log.Info("Schema is up to date")
			return nil
		},
	}
}
