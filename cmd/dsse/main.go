// Package main provides the entry point for the dsse CLI: a server
// command exposing the HTTP API, migrate and clear-server commands, and a
// set of client-side commands (upload, search, download, stats,
// list-keywords, clear-client) that drive the same protocol directly
// against the configured database and blob storage.
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/urfave/cli/v3"
)

const version = "1.0.0"

func main() {
	cmd := &cli.Command{
		Name:     "dsse",
		Usage:    "Dynamic searchable symmetric encryption with forward privacy",
		Version:  version,
		Commands: getCommands(),
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		slog.Error("application error", slog.Any("error", err))
		os.Exit(1)
	}
}

func getCommands() []*cli.Command {
	cmds := []*cli.Command{}
	cmds = append(cmds, getSystemCommands(version)...)
	cmds = append(cmds, getClientCommands()...)
	return cmds
}
