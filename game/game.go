package game

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/zephyrtronium/twentyfour"
)

// DefaultQuitWords are the messages that end a game.
var DefaultQuitWords = []string{"quit", "exit", "stop"}

// Config configures a Game.
type Config struct {
	// Target is the value answers must make. Zero means 24.
	Target int64
	// Timeout is how long each round waits for an answer before the game
	// ends. Zero means five minutes.
	Timeout time.Duration
	// QuitWords end the game when sent as a whole message, ignoring case.
	// Nil means DefaultQuitWords.
	QuitWords []string
	// Depth is the nesting limit for answers. Zero means the engine default.
	Depth int
}

// Message is a chat message seen by a game.
type Message struct {
	Channel string
	Author  string
	Content string
}

// Round is one puzzle of a game.
type Round struct {
	// ID identifies the round in logs.
	ID      string
	Channel string
	Numbers []int64
	Target  int64
	Start   time.Time
}

// String formats the round's numbers as a prompt, e.g. "1, 2, 3, 4".
func (r *Round) String() string {
	v := make([]string, len(r.Numbers))
	for i, n := range r.Numbers {
		v[i] = strconv.FormatInt(n, 10)
	}
	return strings.Join(v, ", ")
}

// Frontend presents a game to players.
type Frontend interface {
	// Prompt announces a new round.
	Prompt(ctx context.Context, r *Round) error
	// Solved reports that m answered the round correctly after elapsed.
	Solved(ctx context.Context, r *Round, m Message, elapsed time.Duration) error
	// Quit reports that m ended the game.
	Quit(ctx context.Context, r *Round, m Message) error
	// Expired reports that the round timed out with no correct answer.
	// solution is an example answer, or empty if none was found.
	Expired(ctx context.Context, r *Round, solution string) error
}

// End describes why a game ended.
type End int8

const (
	// EndQuit means a player sent a quit word.
	EndQuit End = iota
	// EndTimeout means a round received no correct answer in time.
	EndTimeout
	// EndClosed means the message stream closed.
	EndClosed
	// EndCanceled means the game's context was canceled.
	EndCanceled
)

func (e End) String() string {
	switch e {
	case EndQuit:
		return "quit"
	case EndTimeout:
		return "timeout"
	case EndClosed:
		return "closed"
	case EndCanceled:
		return "canceled"
	default:
		return "End(" + strconv.Itoa(int(e)) + ")"
	}
}

// Summary describes a finished game.
type Summary struct {
	// Rounds is the number of rounds prompted.
	Rounds int
	// Solved is the number of rounds answered correctly.
	Solved int
	End    End
}

// Game runs games of 24, at most one per channel. It is safe to run games in
// different channels concurrently.
type Game struct {
	corpus   atomic.Pointer[Corpus]
	sessions Registry
	cfg      Config
	opts     []twentyfour.Option
	log      *zap.Logger
}

// New creates a game drawing puzzles from c. If log is nil, nothing is
// logged.
func New(c *Corpus, cfg Config, log *zap.Logger) *Game {
	if cfg.Target == 0 {
		cfg.Target = 24
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 5 * time.Minute
	}
	if cfg.QuitWords == nil {
		cfg.QuitWords = DefaultQuitWords
	}
	if log == nil {
		log = zap.NewNop()
	}
	g := &Game{cfg: cfg, log: log}
	if cfg.Depth > 0 {
		g.opts = []twentyfour.Option{twentyfour.Depth(cfg.Depth)}
	}
	g.corpus.Store(c)
	return g
}

// Corpus returns the corpus new rounds draw from.
func (g *Game) Corpus() *Corpus {
	return g.corpus.Load()
}

// SetCorpus replaces the corpus. Rounds already prompted are unaffected.
func (g *Game) SetCorpus(c *Corpus) {
	g.corpus.Store(c)
}

// Running reports whether channel has a game in progress.
func (g *Game) Running(channel string) bool {
	return g.sessions.Running(channel)
}

// Run plays rounds in channel until a player quits, a round times out, msgs
// closes, or ctx is canceled. Messages from other channels are ignored. If the
// channel already has a game, Run returns ErrGameRunning immediately.
func (g *Game) Run(ctx context.Context, channel string, msgs <-chan Message, fe Frontend) (Summary, error) {
	if err := g.sessions.Acquire(channel); err != nil {
		return Summary{}, err
	}
	defer g.sessions.Release(channel)
	log := g.log.With(zap.String("channel", channel))
	log.Info("game started")

	var sum Summary
	for {
		c := g.corpus.Load()
		if c == nil || c.Len() == 0 {
			return sum, ErrEmptyCorpus
		}
		r := &Round{
			ID:      uuid.NewString(),
			Channel: channel,
			Numbers: c.Sample(nil),
			Target:  g.cfg.Target,
			Start:   time.Now(),
		}
		sum.Rounds++
		if err := fe.Prompt(ctx, r); err != nil {
			return sum, fmt.Errorf("prompting round: %w", err)
		}
		log.Debug("round started", zap.String("round", r.ID), zap.Int64s("numbers", r.Numbers))
		solved, end, err := g.round(ctx, r, msgs, fe, log)
		if err != nil {
			sum.End = end
			return sum, err
		}
		if !solved {
			sum.End = end
			log.Info("game ended",
				zap.Stringer("reason", end),
				zap.Int("rounds", sum.Rounds),
				zap.Int("solved", sum.Solved))
			return sum, nil
		}
		sum.Solved++
	}
}

// round waits for the answer to one round. It returns whether the round was
// solved, and otherwise why the game ends.
func (g *Game) round(ctx context.Context, r *Round, msgs <-chan Message, fe Frontend, log *zap.Logger) (bool, End, error) {
	timer := time.NewTimer(g.cfg.Timeout)
	defer timer.Stop()
	for {
		select {
		case <-ctx.Done():
			return false, EndCanceled, ctx.Err()
		case <-timer.C:
			sol, _ := Solve(r.Numbers, r.Target)
			log.Info("round expired", zap.String("round", r.ID), zap.String("solution", sol))
			if err := fe.Expired(ctx, r, sol); err != nil {
				return false, EndTimeout, fmt.Errorf("reporting timeout: %w", err)
			}
			return false, EndTimeout, nil
		case m, ok := <-msgs:
			if !ok {
				return false, EndClosed, nil
			}
			if m.Channel != r.Channel {
				continue
			}
			answer := strings.TrimSpace(m.Content)
			if g.isQuit(answer) {
				log.Info("game quit", zap.String("round", r.ID), zap.String("author", m.Author))
				if err := fe.Quit(ctx, r, m); err != nil {
					return false, EndQuit, fmt.Errorf("reporting quit: %w", err)
				}
				return false, EndQuit, nil
			}
			err := twentyfour.Check(answer, r.Numbers, r.Target, g.opts...)
			if err != nil {
				if !errors.Is(err, twentyfour.ErrMalformedExpression) {
					// Malformed text is usually just chatter.
					log.Debug("answer rejected",
						zap.String("round", r.ID),
						zap.String("author", m.Author),
						zap.String("answer", answer),
						zap.Error(err))
				}
				continue
			}
			elapsed := time.Since(r.Start)
			log.Info("round solved",
				zap.String("round", r.ID),
				zap.String("author", m.Author),
				zap.String("answer", answer),
				zap.Duration("elapsed", elapsed))
			if err := fe.Solved(ctx, r, m, elapsed); err != nil {
				return false, EndCanceled, fmt.Errorf("reporting answer: %w", err)
			}
			return true, 0, nil
		}
	}
}

func (g *Game) isQuit(s string) bool {
	for _, w := range g.cfg.QuitWords {
		if strings.EqualFold(s, w) {
			return true
		}
	}
	return false
}
