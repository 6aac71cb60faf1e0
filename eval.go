package twentyfour

import (
	"math/big"
	"strconv"
)

// Notation is a convention for where operators go relative to their operands.
type Notation int8

const (
	// Infix is ordinary notation, "1 + 2 * 3", with division binding
	// tightest, then multiplication, then addition and subtraction left to
	// right.
	Infix Notation = iota
	// Postfix places operators after their operands, "1 2 3 * +".
	Postfix
	// Prefix places operators before their operands, "+ 1 * 2 3".
	Prefix
)

var notationNames = [...]string{
	Infix:   "infix",
	Postfix: "postfix",
	Prefix:  "prefix",
}

func (n Notation) valid() bool {
	return 0 <= n && int(n) < len(notationNames)
}

func (n Notation) String() string {
	if !n.valid() {
		return "Notation(" + strconv.Itoa(int(n)) + ")"
	}
	return notationNames[n]
}

// ParseNotation returns the notation with the given name.
func ParseNotation(s string) (Notation, bool) {
	for i, name := range notationNames {
		if s == name {
			return Notation(i), true
		}
	}
	return 0, false
}

// trialOrder is the default order in which notations are attempted.
var trialOrder = [...]Notation{Infix, Postfix, Prefix}

// TrialOrder returns the default order in which notations are attempted.
func TrialOrder() []Notation {
	return append([]Notation(nil), trialOrder[:]...)
}

// evaluator evaluates a whole token sequence under one notation, with max as
// the nesting limit.
type evaluator func(toks []Token, max int) (*big.Rat, error)

var evaluators = [...]evaluator{
	Infix:   func(toks []Token, max int) (*big.Rat, error) { return infix(toks, 1, 0, max) },
	Postfix: func(toks []Token, max int) (*big.Rat, error) { return postfix(toks, 1, 0, max) },
	Prefix:  func(toks []Token, max int) (*big.Rat, error) { return prefix(toks, 1, 0, max) },
}

// EvalTokens evaluates toks under each notation of the trial order in turn and
// returns the first value obtained along with the notation that produced it.
// If no notation applies, the error is a *NoValueError.
func EvalTokens(toks []Token, opts ...Option) (*big.Rat, Notation, error) {
	s := settings(opts)
	var fail NoValueError
	for _, n := range s.order {
		r, err := evaluators[n](toks, s.depth)
		if err == nil {
			return r, n, nil
		}
		fail.Notations = append(fail.Notations, n)
		fail.Errs = append(fail.Errs, err)
	}
	return nil, 0, &fail
}

// EvalAs evaluates toks under a single notation.
func EvalAs(n Notation, toks []Token, opts ...Option) (*big.Rat, error) {
	if !n.valid() {
		panic("twentyfour: invalid notation " + strconv.Itoa(int(n)))
	}
	s := settings(opts)
	return evaluators[n](toks, s.depth)
}

// Evaluate tokenizes text and evaluates it under the trial order. Options
// apply to both steps.
func Evaluate(text string, opts ...Option) (*big.Rat, error) {
	toks, err := Tokenize(text, opts...)
	if err != nil {
		return nil, err
	}
	r, _, err := EvalTokens(toks, opts...)
	return r, err
}

// apply computes a op b as a new value. col is the position of the operator.
func apply(op byte, col int, a, b *big.Rat) (*big.Rat, error) {
	r := new(big.Rat)
	switch op {
	case '+':
		r.Add(a, b)
	case '-':
		r.Sub(a, b)
	case '*':
		r.Mul(a, b)
	case '/':
		if b.Sign() == 0 {
			return nil, &DivisionError{Col: col, X: a}
		}
		r.Quo(a, b)
	default:
		return nil, &OperatorError{Col: col, Found: string(op), Want: Operators}
	}
	return r, nil
}

// term is an element of a flattened infix expression: a value, or an
// operator if val is nil.
type term struct {
	val *big.Rat
	op  byte
	col int
}

func (t term) String() string {
	if t.val != nil {
		return t.val.RatString()
	}
	return string(t.op)
}

// infix evaluates toks as an infix expression. at is the position of the
// expression, used when toks is empty.
func infix(toks []Token, at, depth, max int) (*big.Rat, error) {
	if depth > max {
		return nil, &DepthError{Col: at, Max: max}
	}
	terms := make([]term, 0, len(toks))
	for _, t := range toks {
		switch t := t.(type) {
		case Number:
			terms = append(terms, term{val: new(big.Rat).SetInt(t.Val), col: t.Col})
		case Operator:
			terms = append(terms, term{op: t.Op, col: t.Col})
		case Group:
			r, err := infix(t.Tokens, t.Col, depth+1, max)
			if err != nil {
				return nil, err
			}
			terms = append(terms, term{val: r, col: t.Col})
		default:
			panic("twentyfour: invalid token type")
		}
	}
	if len(terms) == 0 {
		return nil, &ExpressionError{Col: at, Reason: "empty expression"}
	}
	var err error
	if terms, err = reduce(terms, '/'); err != nil {
		return nil, err
	}
	if terms, err = reduce(terms, '*'); err != nil {
		return nil, err
	}
	for len(terms) > 1 {
		if len(terms) == 2 {
			return nil, &ExpressionError{Col: terms[1].col, Reason: "missing operand after " + terms[1].String()}
		}
		a, op, b := terms[0], terms[1], terms[2]
		if a.val == nil {
			return nil, &ExpressionError{Col: a.col, Reason: "missing operand before " + a.String()}
		}
		if op.val != nil || (op.op != '+' && op.op != '-') {
			return nil, &OperatorError{Col: op.col, Found: op.String(), Want: "+-"}
		}
		if b.val == nil {
			return nil, &ExpressionError{Col: b.col, Reason: "missing operand before " + b.String()}
		}
		r, err := apply(op.op, op.col, a.val, b.val)
		if err != nil {
			return nil, err
		}
		terms[2] = term{val: r, col: a.col}
		terms = terms[2:]
	}
	if terms[0].val == nil {
		return nil, &ExpressionError{Col: terms[0].col, Reason: "operator " + terms[0].String() + " has no operands"}
	}
	return terms[0].val, nil
}

// reduce applies every occurrence of op in terms, leftmost first.
func reduce(terms []term, op byte) ([]term, error) {
	for {
		i := -1
		for k, t := range terms {
			if t.val == nil && t.op == op {
				i = k
				break
			}
		}
		if i < 0 {
			return terms, nil
		}
		if i == 0 || i == len(terms)-1 || terms[i-1].val == nil || terms[i+1].val == nil {
			return nil, &ExpressionError{Col: terms[i].col, Reason: "missing operand for " + string(op)}
		}
		r, err := apply(op, terms[i].col, terms[i-1].val, terms[i+1].val)
		if err != nil {
			return nil, err
		}
		terms[i-1] = term{val: r, col: terms[i-1].col}
		terms = append(terms[:i], terms[i+2:]...)
	}
}

// postfix evaluates toks as a postfix expression with an operand stack.
func postfix(toks []Token, at, depth, max int) (*big.Rat, error) {
	if depth > max {
		return nil, &DepthError{Col: at, Max: max}
	}
	stack := make([]*big.Rat, 0, len(toks))
	for _, t := range toks {
		switch t := t.(type) {
		case Number:
			stack = append(stack, new(big.Rat).SetInt(t.Val))
		case Group:
			r, err := postfix(t.Tokens, t.Col, depth+1, max)
			if err != nil {
				return nil, err
			}
			stack = append(stack, r)
		case Operator:
			if len(stack) < 2 {
				return nil, &ExpressionError{Col: t.Col, Reason: "not enough operands for " + string(t.Op)}
			}
			a, b := stack[len(stack)-2], stack[len(stack)-1]
			stack = stack[:len(stack)-2]
			r, err := apply(t.Op, t.Col, a, b)
			if err != nil {
				return nil, err
			}
			stack = append(stack, r)
		default:
			panic("twentyfour: invalid token type")
		}
	}
	if len(stack) != 1 {
		return nil, &ExpressionError{Col: at, Reason: strconv.Itoa(len(stack)) + " values remain on the stack"}
	}
	return stack[0], nil
}

// prefix evaluates toks as a prefix expression. The whole sequence must form
// exactly one expression.
func prefix(toks []Token, at, depth, max int) (*big.Rat, error) {
	p := prefixParser{toks: toks, at: at, max: max}
	r, err := p.term(depth)
	if err != nil {
		return nil, err
	}
	if p.pos < len(toks) {
		return nil, &ExpressionError{Col: toks[p.pos].Pos(), Reason: "unexpected token after complete expression"}
	}
	return r, nil
}

// prefixParser consumes tokens from the front of a sequence.
type prefixParser struct {
	toks []Token
	pos  int
	at   int
	max  int
}

// col returns the position of the next token, or of the sequence itself if
// all tokens are consumed.
func (p *prefixParser) col() int {
	if p.pos < len(p.toks) {
		return p.toks[p.pos].Pos()
	}
	return p.at
}

func (p *prefixParser) term(depth int) (*big.Rat, error) {
	if depth > p.max {
		return nil, &DepthError{Col: p.col(), Max: p.max}
	}
	if p.pos >= len(p.toks) {
		return nil, &ExpressionError{Col: p.col(), Reason: "missing operand"}
	}
	t := p.toks[p.pos]
	p.pos++
	switch t := t.(type) {
	case Number:
		return new(big.Rat).SetInt(t.Val), nil
	case Group:
		return prefix(t.Tokens, t.Col, depth+1, p.max)
	case Operator:
		a, err := p.term(depth + 1)
		if err != nil {
			return nil, err
		}
		b, err := p.term(depth + 1)
		if err != nil {
			return nil, err
		}
		return apply(t.Op, t.Col, a, b)
	default:
		panic("twentyfour: invalid token type")
	}
}
