// Package analyzer extracts a normalized inventory of function and class
// definitions from raw source text. One adapter exists per supported
// language; callers route through the Registry and depend only on the
// Analyzer contract.
package analyzer

// Analyzer is the capability every language adapter satisfies. Analyze must
// not mutate its input and must be idempotent: identical input yields
// structurally equal output. Implementations are safe for concurrent use.
type Analyzer interface {
	Analyze(source string) (*Result, error)
}
