package twentyfour

import (
	"math/big"
	"strings"
	"unicode/utf8"
)

// MaxDepth is the default limit on how deeply brackets may nest, and on how
// deeply prefix operators may nest.
const MaxDepth = 32

// Tokenize splits text into tokens. Runs of digits become Numbers, each of
// + - * / becomes an Operator, and each parenthesized span becomes a Group
// holding the tokens between the brackets. Spaces separate tokens and are
// otherwise ignored. Any other character, an unmatched bracket, or nesting
// deeper than the limit is an error that unwraps to ErrMalformedExpression,
// and no tokens are returned with it.
func Tokenize(text string, opts ...Option) ([]Token, error) {
	s := settings(opts)
	return tokenize(text, 0, 0, s.depth)
}

// tokenize scans src, which starts at byte offset base in the full input.
func tokenize(src string, base, depth, max int) ([]Token, error) {
	var toks []Token
	for i := 0; i < len(src); i++ {
		c := src[i]
		col := base + i + 1
		switch {
		case isDigit(c):
			j := i + 1
			for j < len(src) && isDigit(src[j]) {
				j++
			}
			// The run contains only ASCII digits, so SetString cannot fail.
			v, _ := new(big.Int).SetString(src[i:j], 10)
			toks = append(toks, Number{Val: v, Col: col})
			i = j - 1
		case strings.IndexByte(Operators, c) >= 0:
			toks = append(toks, Operator{Op: c, Col: col})
		case c == '(':
			j := closing(src, i)
			if j < 0 {
				return nil, &BracketError{Col: col, Left: "("}
			}
			if depth >= max {
				return nil, &DepthError{Col: col, Max: max}
			}
			sub, err := tokenize(src[i+1:j], base+i+1, depth+1, max)
			if err != nil {
				return nil, err
			}
			toks = append(toks, Group{Tokens: sub, Col: col})
			i = j
		case c == ')':
			return nil, &BracketError{Col: col, Right: ")"}
		case c == ' ':
			// do nothing
		default:
			r, _ := utf8.DecodeRuneInString(src[i:])
			return nil, &LexError{Text: string(r), Col: col}
		}
	}
	return toks, nil
}

// closing finds the index of the bracket that closes the one at src[open].
// Every bracket counts toward the depth regardless of what surrounds it.
// Returns -1 if the input ends first.
func closing(src string, open int) int {
	depth := 1
	for j := open + 1; j < len(src); j++ {
		switch src[j] {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return j
			}
		}
	}
	return -1
}

func isDigit(c byte) bool {
	return '0' <= c && c <= '9'
}
