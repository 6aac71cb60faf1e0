package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/zephyrtronium/twentyfour/game"
)

// terminalChannel is the channel name for games played on the terminal.
const terminalChannel = "terminal"

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7D56F4"))
	numbersStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#F4C430"))
	goodStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#04B575"))
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888"))
)

func newPlayCmd(c *cli) *cobra.Command {
	var timeout time.Duration
	cmd := &cobra.Command{
		Use:   "play",
		Short: "Play the 24 puzzle on the terminal",
		Long: `Plays rounds of 24. Each line typed is an answer, in any notation. Type
quit, exit, or stop to end the game.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			gc := c.cfg.Game()
			if cmd.Flags().Changed("timeout") {
				gc.Timeout = timeout
			}
			return runPlay(cmd, c, gc)
		},
	}
	cmd.Flags().DurationVar(&timeout, "timeout", 5*time.Minute, "time allowed per round (default from config)")
	return cmd
}

func runPlay(cmd *cobra.Command, c *cli, gc game.Config) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()
	corpus, err := loadCorpus(ctx, c)
	if err != nil {
		return err
	}
	g := game.New(corpus, gc, c.logger)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	if c.cfg.WatchCorpus {
		go func() {
			if err := game.WatchCorpus(ctx, c.cfg.CorpusPath, g, c.logger); err != nil {
				c.logger.Warn("corpus watcher stopped", zap.Error(err))
			}
		}()
	}

	msgs := make(chan game.Message)
	go readMessages(ctx, cmd.InOrStdin(), playerName(), msgs)
	sum, err := g.Run(ctx, terminalChannel, msgs, &terminal{w: cmd.OutOrStdout()})
	fmt.Fprintln(cmd.OutOrStdout(), dimStyle.Render(fmt.Sprintf("Solved %d of %d.", sum.Solved, sum.Rounds)))
	return err
}

// readMessages sends each line of r as a message until r ends or ctx is
// canceled. msgs is closed when r ends.
func readMessages(ctx context.Context, r io.Reader, author string, msgs chan<- game.Message) {
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		m := game.Message{Channel: terminalChannel, Author: author, Content: sc.Text()}
		select {
		case msgs <- m:
		case <-ctx.Done():
			return
		}
	}
	close(msgs)
}

func playerName() string {
	if u := os.Getenv("USER"); u != "" {
		return u
	}
	return "player"
}

// terminal presents a game on a text stream.
type terminal struct {
	w io.Writer
}

func (t *terminal) Prompt(ctx context.Context, r *game.Round) error {
	_, err := fmt.Fprintf(t.w, "%s %s\n", titleStyle.Render(fmt.Sprintf("Make %d with", r.Target)), numbersStyle.Render(r.String()))
	return err
}

func (t *terminal) Solved(ctx context.Context, r *game.Round, m game.Message, elapsed time.Duration) error {
	_, err := fmt.Fprintln(t.w, goodStyle.Render(fmt.Sprintf("%s got it in %s!", m.Author, elapsed.Round(time.Millisecond))))
	return err
}

func (t *terminal) Quit(ctx context.Context, r *game.Round, m game.Message) error {
	_, err := fmt.Fprintln(t.w, dimStyle.Render("Game over."))
	return err
}

func (t *terminal) Expired(ctx context.Context, r *game.Round, solution string) error {
	msg := "Time's up!"
	if solution != "" {
		msg += " One answer was " + solution + "."
	}
	_, err := fmt.Fprintln(t.w, dimStyle.Render(msg))
	return err
}
