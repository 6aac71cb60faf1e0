// Command twentyfour evaluates, solves, and plays the 24 puzzle.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/zephyrtronium/twentyfour/internal/config"
	"github.com/zephyrtronium/twentyfour/internal/logging"
)

// cli holds state shared by all subcommands.
type cli struct {
	// Global flags
	configPath string
	verbose    bool

	cfg    *config.Config
	logger *zap.Logger
}

func main() {
	if err := newRootCmd(&cli{}).Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(c *cli) *cobra.Command {
	root := &cobra.Command{
		Use:   "twentyfour",
		Short: "Evaluate, solve, and play the 24 puzzle",
		Long: `twentyfour works with arithmetic expressions over + - * / and parentheses,
written in infix, postfix, or prefix notation. Answers are evaluated with exact
rational arithmetic.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(c.configPath)
			if err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("invalid config %s: %w", c.configPath, err)
			}
			c.cfg = cfg
			if c.logger != nil {
				return nil
			}
			c.logger, err = logging.New(cfg.Logging, c.verbose)
			return err
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if c.logger != nil {
				_ = c.logger.Sync()
			}
		},
	}
	root.PersistentFlags().StringVarP(&c.configPath, "config", "c", "twentyfour.yaml", "config file")
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "enable debug logging")
	root.AddCommand(
		newEvalCmd(c),
		newSolveCmd(c),
		newGenerateCmd(c),
		newPlayCmd(c),
	)
	return root
}
