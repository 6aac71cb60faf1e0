// Package twentyfour implements the expression engine behind the 24 puzzle.
//
// An answer is any arithmetic over the four operators + - * / and
// parentheses, written in whichever notation the player likes: "(1+2)*3",
// "8 3 2 * -", and "* 2 + 3 4" are all understood. Text is tokenized once and
// then evaluated as infix, then postfix, then prefix; the first notation that
// produces a value wins. Arithmetic is exact, so "8/(3-8/3)" is exactly 24.
//
// Check and IsCandidateMatch additionally verify that an answer uses exactly
// the operands handed out for a round.
package twentyfour
