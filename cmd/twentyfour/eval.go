package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/zephyrtronium/twentyfour"
)

type evalFlags struct {
	in       string
	lines    bool
	echo     bool
	notation string
	float    bool
	prec     int
}

func newEvalCmd(c *cli) *cobra.Command {
	var f evalFlags
	cmd := &cobra.Command{
		Use:   "eval [expression...]",
		Short: "Evaluate expressions",
		Long: `Evaluates each argument as an expression. With no arguments, or with --in,
the input file (or stdin for "-") is read as well.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEval(c, cmd, f, args)
		},
	}
	cmd.Flags().StringVar(&f.in, "in", "", "input file (default stdin if no args given)")
	cmd.Flags().BoolVarP(&f.lines, "lines", "n", false, "evaluate separate input lines as separate expressions")
	cmd.Flags().BoolVar(&f.echo, "echo", false, "print tokens and the notation used")
	cmd.Flags().StringVar(&f.notation, "notation", "", "evaluate only in this notation (infix, postfix, prefix)")
	cmd.Flags().BoolVar(&f.float, "float", false, "print results as decimals")
	cmd.Flags().IntVarP(&f.prec, "prec", "p", 10, "digits after the decimal point with --float")
	return cmd
}

func runEval(c *cli, cmd *cobra.Command, f evalFlags, args []string) error {
	if f.prec < 0 {
		return fmt.Errorf("precision (%d) must not be negative", f.prec)
	}
	opts := []twentyfour.Option{twentyfour.Depth(depth(c))}
	if f.notation != "" {
		n, ok := twentyfour.ParseNotation(f.notation)
		if !ok {
			return fmt.Errorf("unknown notation %q", f.notation)
		}
		opts = append(opts, twentyfour.Order(n))
	}

	var exprs []string
	r, err := infile(cmd, f.in, len(args) == 0)
	if err != nil {
		return err
	}
	if r != nil {
		ins, err := readExprs(r, f.lines)
		if err != nil {
			return err
		}
		exprs = append(exprs, ins...)
	}
	exprs = append(exprs, args...)

	out := cmd.OutOrStdout()
	for _, text := range exprs {
		c.logger.Debug("evaluating", zap.String("expr", text))
		toks, err := twentyfour.Tokenize(text, opts...)
		if err != nil {
			fmt.Fprintln(out, err)
			continue
		}
		v, n, err := twentyfour.EvalTokens(toks, opts...)
		if f.echo {
			fmt.Fprintf(out, "%s : ", twentyfour.Format(toks))
		}
		if err != nil {
			fmt.Fprintln(out, err)
			continue
		}
		if f.echo {
			fmt.Fprintf(out, "[%v] ", n)
		}
		if f.float {
			fmt.Fprintln(out, v.FloatString(f.prec))
		} else {
			fmt.Fprintln(out, v.RatString())
		}
	}
	return nil
}

// readExprs splits input into expressions. Without lines, the whole input is
// one expression.
func readExprs(r io.Reader, lines bool) ([]string, error) {
	var exprs []string
	if !lines {
		b, err := io.ReadAll(r)
		if err != nil {
			return nil, err
		}
		s := strings.Join(strings.Fields(string(b)), " ")
		if s != "" {
			exprs = append(exprs, s)
		}
		return exprs, nil
	}
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		s := strings.TrimSpace(sc.Text())
		if s == "" {
			continue
		}
		exprs = append(exprs, s)
	}
	return exprs, sc.Err()
}

// infile opens the named input, or the command's stdin for "-" or when std is
// set and no name was given. It returns nil if there is no input.
func infile(cmd *cobra.Command, name string, std bool) (io.Reader, error) {
	switch {
	case name != "" && name != "-":
		b, err := os.ReadFile(name)
		if err != nil {
			return nil, err
		}
		return strings.NewReader(string(b)), nil
	case name == "-", std:
		return cmd.InOrStdin(), nil
	}
	return nil, nil
}

func depth(c *cli) int {
	if c.cfg.MaxDepth > 0 {
		return c.cfg.MaxDepth
	}
	return twentyfour.MaxDepth
}
