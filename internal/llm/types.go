// Package llm provides the text-generation client: a prompt goes to the
// Gemini REST API and the response text comes back. Analysis results are
// consumed only as prompt context; the package holds no analyzer state.
package llm

import "context"

// Request is one text-generation request.
type Request struct {
	// Prompt is the user prompt. Required.
	Prompt string

	// Model overrides the client's default model when set.
	Model string

	// System is an optional system instruction.
	System string

	Temperature float64
	TopP        float64
	MaxTokens   int

	// ResponseSchema, when set, forces a JSON response matching the schema.
	ResponseSchema map[string]any
}

// Response is the generated text plus usage metadata.
type Response struct {
	Text         string
	Model        string
	InputTokens  int
	OutputTokens int
	FinishReason string
	Cached       bool
}

// Client is the interface for text-generation providers.
type Client interface {
	Generate(ctx context.Context, req *Request) (*Response, error)
	Name() string
	Available() bool
}
