package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/dsse/forwardpriv/cmd/dsse/commands"
	"github.com/dsse/forwardpriv/internal/app"
	"github.com/dsse/forwardpriv/internal/client/usecase"
	"github.com/dsse/forwardpriv/internal/config"
)

func getClientCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:      "upload",
			Usage:     "Encrypt and upload a file under a keyword",
			ArgsUsage: "<keyword> <path>",
			Action: func(ctx context.Context, cmd *cli.Command) error {
				if cmd.Args().Len() != 2 {
					return fmt.Errorf("usage: upload <keyword> <path>")
				}
				return withClientUseCase(ctx, func(useCase usecase.ClientUseCase, logger *slog.Logger) error {
					return commands.RunUpload(ctx, useCase, logger, os.Stdout, cmd.Args().Get(0), cmd.Args().Get(1))
				})
			},
		},
		{
			Name:      "search",
			Usage:     "Walk the chain for a keyword and print every recovered file",
			ArgsUsage: "<keyword>",
			Action: func(ctx context.Context, cmd *cli.Command) error {
				if cmd.Args().Len() != 1 {
					return fmt.Errorf("usage: search <keyword>")
				}
				return withClientUseCase(ctx, func(useCase usecase.ClientUseCase, logger *slog.Logger) error {
					return commands.RunSearch(ctx, useCase, logger, os.Stdout, cmd.Args().Get(0))
				})
			},
		},
		{
			Name:      "download",
			Usage:     "Fetch a file by id and decrypt it with a caller-supplied file key",
			ArgsUsage: "<file-id> <file-key-hex> <output-path>",
			Action: func(ctx context.Context, cmd *cli.Command) error {
				if cmd.Args().Len() != 3 {
					return fmt.Errorf("usage: download <file-id> <file-key-hex> <output-path>")
				}
				return withClientUseCase(ctx, func(useCase usecase.ClientUseCase, logger *slog.Logger) error {
					return commands.RunDownload(ctx, useCase, logger, cmd.Args().Get(0), cmd.Args().Get(1), cmd.Args().Get(2))
				})
			},
		},
		{
			Name:  "stats",
			Usage: "Print server-side index and blob storage usage",
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return withClientUseCase(ctx, func(useCase usecase.ClientUseCase, logger *slog.Logger) error {
					return commands.RunStats(ctx, useCase, os.Stdout)
				})
			},
		},
		{
			Name:  "list-keywords",
			Usage: "Print every keyword the client has local state for",
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return withClientUseCase(ctx, func(useCase usecase.ClientUseCase, logger *slog.Logger) error {
					return commands.RunListKeywords(useCase, os.Stdout)
				})
			},
		},
		{
			Name:  "clear-client",
			Usage: "Discard local chain-head state without touching the server",
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return withClientUseCase(ctx, func(useCase usecase.ClientUseCase, logger *slog.Logger) error {
					return commands.RunClearClient(useCase, logger)
				})
			},
		},
	}
}

// withClientUseCase builds a DI container, resolves the client use case,
// and ensures the container is shut down on every exit path.
func withClientUseCase(ctx context.Context, fn func(usecase.ClientUseCase, *slog.Logger) error) error {
	cfg := config.Load()
	container := app.NewContainer(cfg)
	defer func() { _ = container.Shutdown(ctx) }()

	clientUseCase, err := container.ClientUseCase()
	if err != nil {
		return fmt.Errorf("failed to initialize client use case: %w", err)
	}

	return fn(clientUseCase, container.Logger())
}
