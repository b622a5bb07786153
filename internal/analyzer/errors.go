package analyzer

import "fmt"

// SyntaxError reports source text the selected adapter's grammar cannot
// parse. Line and Column are 1-indexed; zero means the position is unknown.
type SyntaxError struct {
	Line   int
	Column int
	Msg    string
}

func (e *SyntaxError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("syntax error at line %d, column %d: %s", e.Line, e.Column, e.Msg)
	}
	return fmt.Sprintf("syntax error: %s", e.Msg)
}

// InternalError reports an adapter invariant violation, such as brace
// tracking overrunning the input. Adapters fail with it rather than return
// a result with out-of-range line numbers.
type InternalError struct {
	Op  string
	Msg string
}

func (e *InternalError) Error() string {
	return fmt.Sprintf("analyzer internal error in %s: %s", e.Op, e.Msg)
}
