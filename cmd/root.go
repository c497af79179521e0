package cmd

import (
	"context"
	"fmt"

	"github.com/cuducos/astronomer/config"
	"github.com/cuducos/astronomer/logger"
	"github.com/spf13/cobra"
)

// cfg holds the configuration loaded before running any command
var cfg = config.GetDefault()

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "astronomer",
		Short: "Astronomer - stars per programming language for GitHub users",
		Long: `Astronomer splits the stars of each repository of a GitHub user between
the programming languages of the repository, proportionally to their size,
and ranks the languages by the stars they collected.

Without sub-command, the HTTP server is started.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			loaded, err := config.Load()
			if err != nil {
				return fmt.Errorf("unable to load configuration: %w", err)
			}

			cfg = loaded
			logger.Setup(*cfg)

			return cfg.Validate()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context())
		},
	}

	cmd.AddCommand(newServeCommand())
	cmd.AddCommand(newStarsCommand())

	return cmd
}

// Execute run the command line
func Execute() error {
	return newRootCommand().ExecuteContext(context.Background())
}
