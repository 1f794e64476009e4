package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/dsse/forwardpriv/cmd/dsse/commands"
	"github.com/dsse/forwardpriv/internal/app"
	"github.com/dsse/forwardpriv/internal/config"
)

func getSystemCommands(version string) []*cli.Command {
	return []*cli.Command{
		{
			Name:  "server",
			Usage: "Start the HTTP API and metrics servers",
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return commands.RunServer(ctx, version)
			},
		},
		{
			Name:  "migrate",
			Usage: "Run database migrations",
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				return commands.RunMigrations(container.Logger(), cfg.DBDriver, cfg.DBConnectionString)
			},
		},
		{
			Name:  "clear-server",
			Usage: "Delete every index node and blob on the server",
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				indexUseCase, err := container.IndexUseCase()
				if err != nil {
					return err
				}
				blobUseCase, err := container.BlobUseCase()
				if err != nil {
					return err
				}

				return commands.RunClearServer(ctx, indexUseCase, blobUseCase, container.Logger())
			},
		},
	}
}
