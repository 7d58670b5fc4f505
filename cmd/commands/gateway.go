package commands

import (
	"context"
	"log/slog"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/wyre-technology/itglue-mcp/internal/config"
	"github.com/wyre-technology/itglue-mcp/internal/gateway"
)

// NewGatewayCommand returns the gateway subcommand: the HTTP transport,
// regardless of what the config file selects.
func NewGatewayCommand() *cli.Command {
	return &cli.Command{
		Name:  "gateway",
		Usage: "Run the MCP server over HTTP",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "host",
				Usage: "Host to listen on",
			},
			&cli.IntFlag{
				Name:  "port",
				Usage: "Port to listen on",
			},
			&cli.StringFlag{
				Name:  "auth-mode",
				Usage: "Credential source: env or gateway (per-request headers)",
			},
		},
		Action: runGateway,
	}
}

func runGateway(ctx context.Context, cmd *cli.Command) error {
	setupLogging(cmd.Bool("debug"), slog.LevelInfo)

	cfg, err := config.Load(cmd.String("config"))
	if err != nil {
		return err
	}
	cfg.Transport = config.TransportHTTP

	// CLI flags override config
	if cmd.IsSet("host") {
		cfg.HTTP.Host = cmd.String("host")
	}
	if cmd.IsSet("port") {
		cfg.HTTP.Port = cmd.Int("port")
	}
	if cmd.IsSet("auth-mode") {
		cfg.AuthMode = cmd.String("auth-mode")
		if err := cfg.Validate(); err != nil {
			return err
		}
	}

	return runHTTP(ctx, cfg)
}

// runHTTP starts the gateway and blocks until the context is canceled or
// the listener fails.
func runHTTP(ctx context.Context, cfg *config.Config) error {
	srv := gateway.NewServer(cfg)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		slog.Info("shutting down gateway")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
