package twentyfour

import (
	"math/big"
	"slices"
	"strings"
)

// Token is one element of a tokenized expression. The concrete type is always
// one of Number, Operator, or Group.
type Token interface {
	// Pos returns the 1-based byte column where the token starts.
	Pos() int
	token()
}

// Number is an integer literal.
type Number struct {
	// Val is the literal's value. It is never negative.
	Val *big.Int
	Col int
}

// Operator is one of the four arithmetic operators.
type Operator struct {
	// Op is one of '+', '-', '*', or '/'.
	Op  byte
	Col int
}

// Group is a parenthesized subexpression. Col is the position of its open
// bracket.
type Group struct {
	Tokens []Token
	Col    int
}

func (Number) token()   {}
func (Operator) token() {}
func (Group) token()    {}

func (t Number) Pos() int   { return t.Col }
func (t Operator) Pos() int { return t.Col }
func (t Group) Pos() int    { return t.Col }

// Operators contains the bytes which are considered to be operators.
const Operators = "+-*/"

// Format renders a token sequence back to text with single spaces between
// tokens and parentheses around groups.
func Format(toks []Token) string {
	var b strings.Builder
	format(&b, toks)
	return b.String()
}

func format(b *strings.Builder, toks []Token) {
	for i, t := range toks {
		if i > 0 {
			b.WriteByte(' ')
		}
		switch t := t.(type) {
		case Number:
			b.WriteString(t.Val.String())
		case Operator:
			b.WriteByte(t.Op)
		case Group:
			b.WriteByte('(')
			format(b, t.Tokens)
			b.WriteByte(')')
		default:
			panic("twentyfour: invalid token type")
		}
	}
}

// Operands collects every Number in toks, descending into groups, in the order
// they appear in the source.
func Operands(toks []Token) []*big.Int {
	var r []*big.Int
	return operands(r, toks)
}

func operands(r []*big.Int, toks []Token) []*big.Int {
	for _, t := range toks {
		switch t := t.(type) {
		case Number:
			r = append(r, t.Val)
		case Group:
			r = operands(r, t.Tokens)
		}
	}
	return r
}

// SameOperands reports whether the numbers in toks are exactly the multiset
// given by required, in any order.
func SameOperands(toks []Token, required []int64) bool {
	have := Operands(toks)
	if len(have) != len(required) {
		return false
	}
	want := make([]*big.Int, len(required))
	for i, v := range required {
		want[i] = big.NewInt(v)
	}
	slices.SortFunc(have, (*big.Int).Cmp)
	slices.SortFunc(want, (*big.Int).Cmp)
	for i := range have {
		if have[i].Cmp(want[i]) != 0 {
			return false
		}
	}
	return true
}
