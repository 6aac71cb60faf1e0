package twentyfour

import "strconv"

// Option is an option for tokenizing and evaluating.
type Option interface {
	apply(options) options
}

type (
	orderopt []Notation
	depthopt int
)

// options holds the effective settings for one call.
type options struct {
	// order is the sequence of notations to attempt.
	order []Notation
	// depth is the nesting limit for brackets and prefix operators.
	depth int
}

func settings(opts []Option) options {
	o := options{order: trialOrder[:], depth: MaxDepth}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		o = opt.apply(o)
	}
	return o
}

// Order sets the notations to attempt and the order in which to attempt them,
// replacing the default trial order of infix, postfix, prefix. Panics if any
// argument is not a valid notation.
func Order(ns ...Notation) Option {
	for _, n := range ns {
		if !n.valid() {
			panic("twentyfour: invalid notation " + strconv.Itoa(int(n)))
		}
	}
	return orderopt(append([]Notation(nil), ns...))
}

func (o orderopt) apply(p options) options {
	p.order = o
	return p
}

// Depth sets the nesting limit, replacing MaxDepth. Panics if n is not
// positive.
func Depth(n int) Option {
	if n <= 0 {
		panic("twentyfour: depth must be positive, not " + strconv.Itoa(n))
	}
	return depthopt(n)
}

func (o depthopt) apply(p options) options {
	p.depth = int(o)
	return p
}
