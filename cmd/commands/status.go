package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/urfave/cli/v3"

	"github.com/wyre-technology/itglue-mcp/internal/itglue"
	"github.com/wyre-technology/itglue-mcp/internal/tools"
)

// NewStatusCommand returns the status subcommand: a one-shot connectivity
// check against the IT Glue API using ambient credentials.
func NewStatusCommand() *cli.Command {
	return &cli.Command{
		Name:  "status",
		Usage: "Check IT Glue API connectivity and credentials",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			setupLogging(cmd.Bool("debug"), slog.LevelWarn)

			creds := itglue.CredentialsFromEnv()
			result := tools.NewDispatcher(creds).Call(ctx, "itglue_health_check", nil)

			fmt.Println(result.Text)
			if result.IsError {
				return errors.New("health check failed")
			}
			return nil
		},
	}
}
