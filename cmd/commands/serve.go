package commands

import (
	"context"
	"log/slog"

	"github.com/urfave/cli/v3"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/wyre-technology/itglue-mcp/internal/config"
	"github.com/wyre-technology/itglue-mcp/internal/itglue"
	itgluemcp "github.com/wyre-technology/itglue-mcp/internal/mcp"
	"github.com/wyre-technology/itglue-mcp/internal/tools"
)

// NewServeCommand returns the serve subcommand. It honors the configured
// transport: stdio by default, HTTP when selected via config or MCP_TRANSPORT.
func NewServeCommand() *cli.Command {
	return &cli.Command{
		Name:   "serve",
		Usage:  "Run the MCP server on the configured transport",
		Action: runServe,
	}
}

func runServe(ctx context.Context, cmd *cli.Command) error {
	setupLogging(cmd.Bool("debug"), slog.LevelWarn)

	cfg, err := config.Load(cmd.String("config"))
	if err != nil {
		return err
	}

	if cfg.Transport == config.TransportHTTP {
		return runHTTP(ctx, cfg)
	}

	// Stdio is a single long-lived session for one caller; ambient
	// credentials are resolved once at startup.
	creds := itglue.CredentialsFromEnv()
	if creds.APIKey == "" {
		slog.Warn("no IT Glue API key in environment; tool calls will fail until one is set",
			"primary", itglue.EnvAPIKey, "fallback", itglue.EnvAPIKeyFallback)
	}

	slog.Debug("starting MCP server", "transport", config.TransportStdio, "region", creds.RegionOrDefault())

	server := itgluemcp.NewServer(tools.NewDispatcher(creds))
	return server.Run(ctx, &mcpsdk.StdioTransport{})
}
