package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/urfave/cli/v2"

	"github.com/landing-analyzer/backend/analyzer"
	"github.com/landing-analyzer/backend/config"
	"github.com/landing-analyzer/backend/fetcher"
	"github.com/landing-analyzer/backend/logging"
)

var version = "dev"

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:    "landing-analyzer",
		Usage:   "score the quality of landing pages",
		Version: version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "debug, info, warn or error (overrides LOG_LEVEL)",
			},
			&cli.StringFlag{
				Name:  "log-format",
				Usage: "json or text (overrides LOG_FORMAT)",
			},
		},
		Commands: []*cli.Command{
			analyzeCommand(),
			serveCommand(),
			mcpCommand(),
		},
	}
}

// setup loads configuration and installs the logger shared by all commands.
func setup(c *cli.Context) (*config.Config, *slog.Logger) {
	envFile := config.LoadEnv()
	cfg := config.Load()

	if v := c.String("log-level"); v != "" {
		cfg.Log.Level = v
	}
	if v := c.String("log-format"); v != "" {
		cfg.Log.Format = v
	}
	logger := logging.Init(cfg.Log)

	if envFile != "" {
		logger.Debug("loaded environment file", "file", envFile)
	} else {
		logger.Debug("no .env file found, using environment variables")
	}
	return cfg, logger
}

func setupGinMode(mode string) {
	if mode == "" {
		mode = gin.ReleaseMode
	}
	gin.SetMode(mode)
}

// newAnalyzer wires the live fetcher into the scoring engine. A non-zero
// seed makes simulated results reproducible.
func newAnalyzer(cfg *config.Config, logger *slog.Logger, seed uint64, pageInfo bool) *analyzer.Analyzer {
	f := fetcher.New(fetcher.Options{
		Timeout:   cfg.Fetch.Timeout,
		MaxBody:   cfg.Fetch.MaxBody,
		UserAgent: cfg.Fetch.UserAgent,
	})

	opts := []analyzer.Option{
		analyzer.WithLogger(logger),
		analyzer.WithPageInfo(pageInfo),
	}
	if seed != 0 {
		opts = append(opts, analyzer.WithSources(analyzer.SeededSources(seed)))
	}
	return analyzer.New(f, opts...)
}
