package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/farcloser/mimesis/version"
)

func main() {
	ctx := context.Background()

	appl := &cli.Command{
		Name:    version.Name(),
		Usage:   "Heuristic AI-generation scoring for media files",
		Version: version.Version() + " " + version.Commit(),
		Commands: []*cli.Command{
			analyzeCommand(),
			fetchCommand(),
			serveCommand(),
		},
	}

	if err := appl.Run(ctx, os.Args); err != nil {
		slog.Error("failed to run", "error", err)
		os.Exit(1)
	}
}
