//nolint:wrapcheck
package main

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/farcloser/mimesis/internal/history"
	"github.com/farcloser/mimesis/internal/httpserver"
)

func serveCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Serve the scoring engine over HTTP",
		Flags: append(policyFlags(),
			&cli.StringFlag{
				Name:    "addr",
				Aliases: []string{"a"},
				Usage:   "Listen address",
				Value:   ":8080",
			},
			&cli.IntFlag{
				Name:  "history",
				Usage: "Session history capacity",
				Value: history.DefaultCap,
			},
		),
		Action: func(_ context.Context, cmd *cli.Command) error {
			opts, err := resolveOptions(cmd)
			if err != nil {
				return err
			}

			addr := cmd.String("addr")
			server := httpserver.New(opts, history.New(cmd.Int("history")))

			srv := &http.Server{
				Addr:              addr,
				Handler:           server.Handler(),
				ReadHeaderTimeout: 10 * time.Second,
			}

			slog.Info("listening", "addr", addr)

			return srv.ListenAndServe()
		},
	}
}
