//nolint:wrapcheck
package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/farcloser/mimesis"
	"github.com/farcloser/mimesis/internal/source"
)

var errFetchArgs = errors.New("expected exactly one argument: URL")

func fetchCommand() *cli.Command {
	return &cli.Command{
		Name:      "fetch",
		Usage:     "Fetch a remote image or video and score it",
		ArgsUsage: "<url>",
		Flags:     append(policyFlags(), outputFlags()...),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cmd.NArg() != 1 {
				return fmt.Errorf("%w: got %d", errFetchArgs, cmd.NArg())
			}

			opts, err := resolveOptions(cmd)
			if err != nil {
				return err
			}

			rawURL := cmd.Args().First()

			desc, err := source.DefaultFetcher().FromURL(ctx, rawURL)
			if err != nil {
				return fmt.Errorf("fetching %s: %w", rawURL, err)
			}

			result, err := mimesis.Analyze(ctx, desc, opts)
			if err != nil {
				return err
			}

			return outputResults([]analyzed{{path: rawURL, result: result}}, cmd.String("format"), cmd.Bool("debug"))
		},
	}
}
