package twentyfour

import "math/big"

// Check reports why text is not a solution using exactly the operands in
// required to make target, or nil if it is one. The error is a tokenizer
// error for malformed text, ErrOperandMismatch if the numbers in text differ
// from required as a multiset, a *NoValueError if no notation applies, or a
// *WrongValueError if the value is not target.
func Check(text string, required []int64, target int64, opts ...Option) error {
	toks, err := Tokenize(text, opts...)
	if err != nil {
		return err
	}
	if !SameOperands(toks, required) {
		return ErrOperandMismatch
	}
	r, n, err := EvalTokens(toks, opts...)
	if err != nil {
		return err
	}
	want := new(big.Rat).SetInt64(target)
	if r.Cmp(want) != 0 {
		return &WrongValueError{Got: r, Want: want, Notation: n}
	}
	return nil
}

// IsCandidateMatch reports whether text is a well-formed expression that uses
// exactly the operands in required, in any order, and evaluates to target.
func IsCandidateMatch(text string, required []int64, target int64) bool {
	return Check(text, required, target) == nil
}
