package analyzer

// Language identifies a supported source language tag.
type Language string

const (
	LanguagePython     Language = "python"
	LanguageJavaScript Language = "javascript"
	LanguageUnknown    Language = "unknown"
)

// TypeUnknown is the type recorded for parameters and returns without a
// declared annotation.
const TypeUnknown = "unknown"

// Parameter is one formal parameter of a function.
type Parameter struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

// Function is a free function definition. StartLine and EndLine are
// 1-indexed and inclusive; EndLine covers every line of the body, nested
// definitions included.
type Function struct {
	Name       string      `json:"name"`
	StartLine  int         `json:"start_line"`
	EndLine    int         `json:"end_line"`
	Parameters []Parameter `json:"parameters"`
	ReturnType string      `json:"return_type"`
}

// Method is a function defined directly inside a class body, reduced to its
// name and argument names (receiver included, in declaration order).
type Method struct {
	Name string   `json:"name"`
	Args []string `json:"args"`
}

// Class is a class definition with its methods, instance attributes in
// first-seen order, and declared base classes.
type Class struct {
	Name       string   `json:"name"`
	Methods    []Method `json:"methods"`
	Attributes []string `json:"attributes"`
	Bases      []string `json:"bases"`
}

// Result is the normalized output of one analysis. Functions holds only
// functions not enclosed in a class; a class's functions live in that
// class's method list. Both sequences are always non-nil so they serialize
// as [] rather than null.
type Result struct {
	Functions []Function `json:"functions"`
	Classes   []Class    `json:"classes"`
}

// NewResult creates an empty, well-formed Result.
func NewResult() *Result {
	return &Result{
		Functions: make([]Function, 0),
		Classes:   make([]Class, 0),
	}
}
