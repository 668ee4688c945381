package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/landing-analyzer/backend/analyzer"
	"github.com/landing-analyzer/backend/report"
)

func analyzeCommand() *cli.Command {
	return &cli.Command{
		Name:      "analyze",
		Usage:     "analyze a single landing page and print the result",
		ArgsUsage: "URL",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Value:   "text",
				Usage:   "output format: " + strings.Join(report.Formats, ", "),
			},
			&cli.StringFlag{
				Name:  "file",
				Usage: "score markup from this file instead of fetching URL",
			},
			&cli.Uint64Flag{
				Name:  "seed",
				Usage: "seed for simulated results (overrides SIM_SEED)",
			},
			&cli.DurationFlag{
				Name:  "timeout",
				Value: 30 * time.Second,
				Usage: "abort the analysis after this long",
			},
			&cli.BoolFlag{
				Name:  "no-page-info",
				Usage: "skip title and language extraction",
			},
		},
		Action: runAnalyze,
	}
}

func runAnalyze(c *cli.Context) error {
	if c.NArg() != 1 {
		return cli.Exit("expected exactly one URL argument", 2)
	}
	rawURL := strings.TrimSpace(c.Args().First())
	if err := analyzer.ValidateURL(rawURL); err != nil {
		return cli.Exit(err.Error(), 2)
	}

	cfg, logger := setup(c)

	seed := cfg.Simulation.Seed
	if c.IsSet("seed") {
		seed = c.Uint64("seed")
	}
	a := newAnalyzer(cfg, logger, seed, !c.Bool("no-page-info"))

	var result *analyzer.Result
	if path := c.String("file"); path != "" {
		markup, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read markup: %w", err)
		}
		result = a.AnalyzeMarkup(rawURL, string(markup))
	} else {
		ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
		defer stop()
		ctx, cancel := context.WithTimeout(ctx, c.Duration("timeout"))
		defer cancel()

		var err error
		result, err = a.Analyze(ctx, rawURL)
		if err != nil {
			return fmt.Errorf("analysis cancelled: %w", err)
		}
	}

	return report.Write(c.App.Writer, result, c.String("format"))
}
