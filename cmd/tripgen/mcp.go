package main

import (
	"context"
	"flag"
	"io"

	"github.com/matiasleandrokruk/tripgen/internal/infra/config"
	"github.com/matiasleandrokruk/tripgen/internal/infra/logging"
	"github.com/matiasleandrokruk/tripgen/internal/mcpserver"
)

// runMCP serves the MCP tools on stdin/stdout. Logs stay on stderr.
func runMCP(ctx context.Context, args []string, stderr io.Writer) int {
	fs := flag.NewFlagSet("mcp", flag.ContinueOnError)
	fs.SetOutput(stderr)
	if err := fs.Parse(args); err != nil {
		return 2
	}

	cfg := config.Load()
	logger := newLogger(cfg)

	svc, err := newService(cfg, logger)
	if err != nil {
		logger.Error().Err(err).Msg("mcp setup failed")
		return 1
	}

	logger.Info().Str("provider", cfg.LLMProvider).Msg("serving MCP over stdio")
	if err := mcpserver.Serve(ctx, svc, logging.Component(logger, "mcp")); err != nil && ctx.Err() == nil {
		logger.Error().Err(err).Msg("mcp server stopped")
		return 1
	}
	return 0
}
