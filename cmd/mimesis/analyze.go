//nolint:wrapcheck
package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/farcloser/mimesis"
	"github.com/farcloser/mimesis/internal/config"
	"github.com/farcloser/mimesis/internal/rand"
	"github.com/farcloser/mimesis/internal/source"
)

var errAnalyzeArgs = errors.New("expected at least one argument: file path")

func analyzeCommand() *cli.Command {
	return &cli.Command{
		Name:      "analyze",
		Usage:     "Score local media files for AI-generation probability",
		ArgsUsage: "<file>...",
		Flags:     append(policyFlags(), outputFlags()...),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cmd.NArg() < 1 {
				return fmt.Errorf("%w: got %d", errAnalyzeArgs, cmd.NArg())
			}

			opts, err := resolveOptions(cmd)
			if err != nil {
				return err
			}

			entries := make([]analyzed, 0, cmd.NArg())

			for _, filePath := range cmd.Args().Slice() {
				desc, srcErr := source.FromPath(filePath)
				if srcErr != nil {
					return fmt.Errorf("%s: %w", filePath, srcErr)
				}

				result, analyzeErr := mimesis.Analyze(ctx, desc, opts)
				if analyzeErr != nil {
					return fmt.Errorf("%s: %w", filePath, analyzeErr)
				}

				entries = append(entries, analyzed{path: filePath, result: result})
			}

			return outputResults(entries, cmd.String("format"), cmd.Bool("debug"))
		},
	}
}

// policyFlags are shared by every command that runs the engine.
func policyFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "profile",
			Aliases: []string{"p"},
			Usage:   "Scoring profile: default, strict, lenient",
			Value:   "default",
		},
		&cli.StringFlag{
			Name:  "policy",
			Usage: "Path to a YAML policy file overriding scoring constants",
		},
		&cli.IntFlag{
			Name:  "seed",
			Usage: "Seed for deterministic scoring (0 = true randomness)",
		},
	}
}

func outputFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "format",
			Aliases: []string{"f"},
			Usage:   "Output format: console, json, markdown",
			Value:   "console",
		},
		&cli.BoolFlag{
			Name:    "debug",
			Aliases: []string{"D"},
			Usage:   "Include raw signal sub-scores and aggregation data in output",
		},
	}
}

func resolveOptions(cmd *cli.Command) (mimesis.Options, error) {
	var (
		opts mimesis.Options
		err  error
	)

	if policyPath := cmd.String("policy"); policyPath != "" {
		policy, loadErr := config.Load(policyPath)
		if loadErr != nil {
			return mimesis.Options{}, loadErr
		}

		opts, err = policy.Options()
		if err != nil {
			return mimesis.Options{}, err
		}
	} else {
		profile, parseErr := mimesis.ParseProfile(cmd.String("profile"))
		if parseErr != nil {
			return mimesis.Options{}, parseErr
		}

		opts = mimesis.OptionsForProfile(profile)
	}

	if seed := cmd.Int("seed"); seed != 0 {
		opts.Rand = rand.Seeded(uint64(seed)) //nolint:gosec // seed is a user-chosen constant
	}

	return opts, nil
}
