package twentyfour

import (
	"errors"
	"math/big"
	"strconv"
	"strings"
)

var (
	// ErrMalformedExpression classifies text that cannot be tokenized: an
	// invalid character, unbalanced brackets, or nesting deeper than allowed.
	ErrMalformedExpression = errors.New("malformed expression")
	// ErrDivisionByZero classifies any division by a zero operand.
	ErrDivisionByZero = errors.New("division by zero")
	// ErrInvalidOperator classifies a token in a position that must hold an
	// operator but does not.
	ErrInvalidOperator = errors.New("invalid operator")
	// ErrInvalidExpression classifies a token sequence with the wrong shape
	// for a notation, e.g. a missing operand or leftover values.
	ErrInvalidExpression = errors.New("invalid expression")

	// ErrOperandMismatch is returned by Check when an answer does not use
	// exactly the required operands.
	ErrOperandMismatch = errors.New("operands do not match")
	// ErrWrongValue is returned by Check when an answer evaluates to
	// something other than the target.
	ErrWrongValue = errors.New("wrong value")
)

// InputError is an error with position information. Every error resulting
// from invalid input implements InputError.
type InputError interface {
	error
	// Pos returns the 1-based byte column of the token that caused the
	// error.
	Pos() int
}

// LexError indicates a character that cannot begin any token.
type LexError struct {
	// Text is the offending character.
	Text string
	Col  int
}

func (err *LexError) Error() string {
	return errpos(err.Col, "invalid character "+strconv.Quote(err.Text))
}

func (err *LexError) Pos() int      { return err.Col }
func (err *LexError) Unwrap() error { return ErrMalformedExpression }

// BracketError indicates an unmatched bracket. Exactly one of Left and Right
// is set.
type BracketError struct {
	Col   int
	Left  string
	Right string
}

func (err *BracketError) Error() string {
	if err.Left == "" {
		return errpos(err.Col, "close bracket "+err.Right+" with no open bracket")
	}
	return errpos(err.Col, "open bracket "+err.Left+" with no close bracket")
}

func (err *BracketError) Pos() int      { return err.Col }
func (err *BracketError) Unwrap() error { return ErrMalformedExpression }

// DepthError indicates brackets or prefix operators nested beyond the
// allowed depth.
type DepthError struct {
	Col int
	Max int
}

func (err *DepthError) Error() string {
	return errpos(err.Col, "nesting deeper than "+strconv.Itoa(err.Max))
}

func (err *DepthError) Pos() int      { return err.Col }
func (err *DepthError) Unwrap() error { return ErrMalformedExpression }

// DivisionError indicates a division by zero. Col is the position of the
// division operator.
type DivisionError struct {
	Col int
	// X is the dividend.
	X *big.Rat
}

func (err *DivisionError) Error() string {
	return errpos(err.Col, "division of "+err.X.RatString()+" by zero")
}

func (err *DivisionError) Pos() int      { return err.Col }
func (err *DivisionError) Unwrap() error { return ErrDivisionByZero }

// OperatorError indicates a token where an operator was required.
type OperatorError struct {
	Col int
	// Found is the text of the token that was found instead.
	Found string
	// Want lists the operators that were acceptable.
	Want string
}

func (err *OperatorError) Error() string {
	return errpos(err.Col, "expected one of "+strconv.Quote(err.Want)+", found "+strconv.Quote(err.Found))
}

func (err *OperatorError) Pos() int      { return err.Col }
func (err *OperatorError) Unwrap() error { return ErrInvalidOperator }

// ExpressionError indicates a token sequence that does not have the shape
// the notation requires.
type ExpressionError struct {
	Col    int
	Reason string
}

func (err *ExpressionError) Error() string {
	return errpos(err.Col, err.Reason)
}

func (err *ExpressionError) Pos() int      { return err.Col }
func (err *ExpressionError) Unwrap() error { return ErrInvalidExpression }

// NoValueError is the result of evaluating an expression under which no
// notation produces a value. It unwraps to each notation's error.
type NoValueError struct {
	Notations []Notation
	Errs      []error
}

func (err *NoValueError) Error() string {
	var b strings.Builder
	b.WriteString("no notation applies")
	for i, n := range err.Notations {
		b.WriteString("; ")
		b.WriteString(n.String())
		b.WriteString(": ")
		b.WriteString(err.Errs[i].Error())
	}
	return b.String()
}

func (err *NoValueError) Unwrap() []error {
	return err.Errs
}

// WrongValueError is returned by Check when an answer is well-formed and
// uses the right operands but evaluates to the wrong number.
type WrongValueError struct {
	Got, Want *big.Rat
	Notation  Notation
}

func (err *WrongValueError) Error() string {
	return "value " + err.Got.RatString() + " (" + err.Notation.String() + ") is not " + err.Want.RatString()
}

func (err *WrongValueError) Unwrap() error { return ErrWrongValue }

// errpos is a shortcut to create an error message with a position.
func errpos(pos int, msg string) string {
	return strconv.Itoa(pos) + ": " + msg
}

var (
	_ InputError = (*LexError)(nil)
	_ InputError = (*BracketError)(nil)
	_ InputError = (*DepthError)(nil)
	_ InputError = (*DivisionError)(nil)
	_ InputError = (*OperatorError)(nil)
	_ InputError = (*ExpressionError)(nil)
)
