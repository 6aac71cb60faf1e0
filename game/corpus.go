// Package game runs rounds of the 24 puzzle on top of the twentyfour engine.
package game

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
)

// ErrEmptyCorpus is returned when a corpus has no puzzles.
var ErrEmptyCorpus = errors.New("corpus has no puzzles")

// Corpus is an immutable list of puzzles known to be solvable. Every puzzle
// has the same number of operands.
type Corpus struct {
	puzzles [][]int64
	size    int
}

// NewCorpus creates a corpus from a list of puzzles. The puzzles are copied.
func NewCorpus(puzzles [][]int64) (*Corpus, error) {
	if len(puzzles) == 0 {
		return nil, ErrEmptyCorpus
	}
	c := Corpus{puzzles: make([][]int64, len(puzzles)), size: len(puzzles[0])}
	for i, p := range puzzles {
		if len(p) == 0 {
			return nil, fmt.Errorf("puzzle %d is empty", i)
		}
		if len(p) != c.size {
			return nil, fmt.Errorf("puzzle %d has %d operands, but puzzle 0 has %d", i, len(p), c.size)
		}
		for _, v := range p {
			if v < 0 {
				return nil, fmt.Errorf("puzzle %d has negative operand %d", i, v)
			}
		}
		c.puzzles[i] = slices.Clone(p)
	}
	return &c, nil
}

// ParseCorpus reads a corpus with one puzzle per line, operands separated by
// whitespace. Blank lines are ignored.
func ParseCorpus(r io.Reader) (*Corpus, error) {
	var puzzles [][]int64
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		f := strings.Fields(sc.Text())
		if len(f) == 0 {
			continue
		}
		p := make([]int64, len(f))
		for i, s := range f {
			v, err := strconv.ParseInt(s, 10, 64)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", line, err)
			}
			p[i] = v
		}
		puzzles = append(puzzles, p)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading corpus: %w", err)
	}
	return NewCorpus(puzzles)
}

// LoadCorpus reads a corpus from a file.
func LoadCorpus(path string) (*Corpus, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open corpus: %w", err)
	}
	defer f.Close()
	c, err := ParseCorpus(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// Len returns the number of puzzles.
func (c *Corpus) Len() int {
	return len(c.puzzles)
}

// Size returns the number of operands in each puzzle.
func (c *Corpus) Size() int {
	return c.size
}

// Puzzle returns a copy of the i-th puzzle.
func (c *Corpus) Puzzle(i int) []int64 {
	return slices.Clone(c.puzzles[i])
}

// Sample returns a random puzzle with its operands in random order. If rng is
// nil, the global source is used.
func (c *Corpus) Sample(rng *rand.Rand) []int64 {
	intn, shuffle := rand.IntN, rand.Shuffle
	if rng != nil {
		intn, shuffle = rng.IntN, rng.Shuffle
	}
	p := slices.Clone(c.puzzles[intn(len(c.puzzles))])
	shuffle(len(p), func(i, j int) { p[i], p[j] = p[j], p[i] })
	return p
}

// WriteTo writes the corpus in the format ParseCorpus reads.
func (c *Corpus) WriteTo(w io.Writer) (int64, error) {
	bw := bufio.NewWriter(w)
	var n int64
	for _, p := range c.puzzles {
		for i, v := range p {
			if i > 0 {
				bw.WriteByte(' ')
				n++
			}
			k, _ := bw.WriteString(strconv.FormatInt(v, 10))
			n += int64(k)
		}
		bw.WriteByte('\n')
		n++
	}
	return n, bw.Flush()
}

// Save writes the corpus to a file, creating its directory if needed.
func (c *Corpus) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create corpus directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create corpus: %w", err)
	}
	if _, err := c.WriteTo(f); err != nil {
		f.Close()
		return fmt.Errorf("failed to write corpus: %w", err)
	}
	return f.Close()
}
