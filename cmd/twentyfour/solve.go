package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"strconv"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/zephyrtronium/twentyfour/game"
)

func newSolveCmd(c *cli) *cobra.Command {
	var target int64
	cmd := &cobra.Command{
		Use:   "solve number...",
		Short: "Find an expression using each number once that makes the target",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			nums := make([]int64, len(args))
			for i, a := range args {
				v, err := strconv.ParseInt(a, 10, 64)
				if err != nil || v < 0 {
					return fmt.Errorf("operand %q must be a non-negative integer", a)
				}
				nums[i] = v
			}
			if !cmd.Flags().Changed("target") {
				target = c.cfg.Target
			}
			s, ok := game.Solve(nums, target)
			if !ok {
				return fmt.Errorf("no solution makes %d from %v", target, nums)
			}
			fmt.Fprintln(cmd.OutOrStdout(), s)
			return nil
		},
	}
	cmd.Flags().Int64VarP(&target, "target", "t", 24, "value to make (default from config)")
	return cmd
}

func newGenerateCmd(c *cli) *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate the corpus of solvable puzzles",
		Long: `Enumerates every multiset of operands within the solver bounds and writes
those which can make the target to the corpus file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			o := c.cfg.Generate()
			fl := cmd.Flags()
			if fl.Changed("min") {
				o.Min, _ = fl.GetInt64("min")
			}
			if fl.Changed("max") {
				o.Max, _ = fl.GetInt64("max")
			}
			if fl.Changed("size") {
				o.Size, _ = fl.GetInt("size")
			}
			if fl.Changed("workers") {
				o.Workers, _ = fl.GetInt("workers")
			}
			if out == "" {
				out = c.cfg.CorpusPath
			}
			corpus, err := generate(cmd.Context(), c, o, out)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %d puzzles to %s\n", corpus.Len(), out)
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "corpus file (default from config)")
	cmd.Flags().Int64("min", 1, "smallest operand")
	cmd.Flags().Int64("max", 13, "largest operand")
	cmd.Flags().Int("size", 4, "operands per puzzle")
	cmd.Flags().Int("workers", 0, "concurrent searches (default GOMAXPROCS)")
	return cmd
}

func generate(ctx context.Context, c *cli, o game.GenerateOptions, path string) (*game.Corpus, error) {
	c.logger.Info("generating corpus",
		zap.Int64("min", o.Min),
		zap.Int64("max", o.Max),
		zap.Int("size", o.Size),
		zap.Int64("target", o.Target))
	corpus, err := game.Generate(ctx, o)
	if err != nil {
		return nil, fmt.Errorf("failed to generate corpus: %w", err)
	}
	if err := corpus.Save(path); err != nil {
		return nil, err
	}
	c.logger.Info("corpus written", zap.String("path", path), zap.Int("puzzles", corpus.Len()))
	return corpus, nil
}

// loadCorpus loads the configured corpus, generating it first if the file
// does not exist.
func loadCorpus(ctx context.Context, c *cli) (*game.Corpus, error) {
	corpus, err := game.LoadCorpus(c.cfg.CorpusPath)
	if errors.Is(err, fs.ErrNotExist) {
		c.logger.Info("corpus not found, generating", zap.String("path", c.cfg.CorpusPath))
		return generate(ctx, c, c.cfg.Generate(), c.cfg.CorpusPath)
	}
	return corpus, err
}
