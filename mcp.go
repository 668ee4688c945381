package main

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/landing-analyzer/backend/mcpserver"
)

func mcpCommand() *cli.Command {
	return &cli.Command{
		Name:  "mcp",
		Usage: "serve the analysis tool over MCP on stdin/stdout",
		Action: func(c *cli.Context) error {
			cfg, logger := setup(c)
			a := newAnalyzer(cfg, logger, cfg.Simulation.Seed, true)

			logger.Info("MCP server starting on stdio")
			if err := mcpserver.ServeStdio(mcpserver.New(a, version)); err != nil {
				return fmt.Errorf("mcp server: %w", err)
			}
			return nil
		},
	}
}
