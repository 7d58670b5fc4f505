// Package commands defines the itglue-mcp command tree.
package commands

import (
	"log/slog"
	"os"

	"github.com/urfave/cli/v3"
)

// NewRootCommand returns the top-level CLI command.
func NewRootCommand() *cli.Command {
	return &cli.Command{
		Name:  "itglue-mcp",
		Usage: "Expose the IT Glue API as MCP tools",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to config file (YAML, optional)",
			},
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "Enable debug logging",
			},
		},
		Commands: []*cli.Command{
			NewServeCommand(),
			NewGatewayCommand(),
			NewStatusCommand(),
		},
	}
}

// setupLogging routes logs to stderr; stdout stays reserved for the MCP
// stdio transport.
func setupLogging(debug bool, level slog.Level) {
	if debug {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}
