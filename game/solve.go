package game

import (
	"context"
	"errors"
	"math/big"
	"runtime"
	"slices"
	"strconv"

	"golang.org/x/sync/errgroup"
)

// solveTerm is a partial solution: a value and the infix text producing it.
type solveTerm struct {
	val  *big.Rat
	text string
}

// Solve searches for an infix expression using each of nums exactly once to
// make target. The expression is fully parenthesized apart from its outermost
// operation.
func Solve(nums []int64, target int64) (string, bool) {
	if len(nums) == 0 {
		return "", false
	}
	terms := make([]solveTerm, len(nums))
	for i, n := range nums {
		terms[i] = solveTerm{val: new(big.Rat).SetInt64(n), text: strconv.FormatInt(n, 10)}
	}
	s, ok := solve(terms, new(big.Rat).SetInt64(target))
	if !ok {
		return "", false
	}
	if len(nums) > 1 {
		s = s[1 : len(s)-1]
	}
	return s, true
}

func solve(terms []solveTerm, want *big.Rat) (string, bool) {
	if len(terms) == 1 {
		if terms[0].val.Cmp(want) == 0 {
			return terms[0].text, true
		}
		return "", false
	}
	for i := 0; i < len(terms); i++ {
		for j := i + 1; j < len(terms); j++ {
			rest := make([]solveTerm, 0, len(terms)-1)
			for k, t := range terms {
				if k != i && k != j {
					rest = append(rest, t)
				}
			}
			for _, c := range combine(terms[i], terms[j]) {
				if s, ok := solve(append(rest, c), want); ok {
					return s, true
				}
			}
		}
	}
	return "", false
}

// combine returns every term obtainable from one operation on a and b.
func combine(a, b solveTerm) []solveTerm {
	r := make([]solveTerm, 0, 6)
	bin := func(x, y solveTerm, op string, v *big.Rat) {
		r = append(r, solveTerm{val: v, text: "(" + x.text + " " + op + " " + y.text + ")"})
	}
	bin(a, b, "+", new(big.Rat).Add(a.val, b.val))
	bin(a, b, "*", new(big.Rat).Mul(a.val, b.val))
	bin(a, b, "-", new(big.Rat).Sub(a.val, b.val))
	bin(b, a, "-", new(big.Rat).Sub(b.val, a.val))
	if b.val.Sign() != 0 {
		bin(a, b, "/", new(big.Rat).Quo(a.val, b.val))
	}
	if a.val.Sign() != 0 {
		bin(b, a, "/", new(big.Rat).Quo(b.val, a.val))
	}
	return r
}

// GenerateOptions controls corpus generation.
type GenerateOptions struct {
	// Min and Max bound the operands, inclusive.
	Min, Max int64
	// Size is the number of operands per puzzle.
	Size int
	// Target is the value every puzzle must be able to make.
	Target int64
	// Workers limits concurrent searches. Zero or less means GOMAXPROCS.
	Workers int
}

// Generate builds the corpus of every multiset of operands within the bounds
// that can make the target. Puzzles are in lexicographic order with operands
// ascending.
func Generate(ctx context.Context, o GenerateOptions) (*Corpus, error) {
	if o.Size <= 0 {
		return nil, errors.New("puzzle size must be positive")
	}
	if o.Min < 0 || o.Max < o.Min {
		return nil, errors.New("operand bounds must satisfy 0 <= min <= max")
	}
	workers := o.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	cand := multisets(o.Min, o.Max, o.Size)
	ok := make([]bool, len(cand))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, nums := range cand {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			_, ok[i] = Solve(nums, o.Target)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	var puzzles [][]int64
	for i, nums := range cand {
		if ok[i] {
			puzzles = append(puzzles, nums)
		}
	}
	return NewCorpus(puzzles)
}

// multisets lists every non-decreasing sequence of size values in [min, max].
func multisets(min, max int64, size int) [][]int64 {
	var out [][]int64
	cur := make([]int64, size)
	var rec func(pos int, from int64)
	rec = func(pos int, from int64) {
		if pos == size {
			out = append(out, slices.Clone(cur))
			return
		}
		for v := from; v <= max; v++ {
			cur[pos] = v
			rec(pos+1, v)
		}
	}
	rec(0, min)
	return out
}
