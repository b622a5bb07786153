package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/rs/zerolog/log"
)

const geminiBaseURL = "https://generativelanguage.googleapis.com/v1beta/models"

// DefaultModel is used when neither the client nor the request names one.
const DefaultModel = "gemini-2.0-flash"

var allowedModels = map[string]bool{
	"gemini-2.0-flash":             true,
	"gemini-1.5-flash":             true,
	"gemini-1.5-pro":               true,
	"gemini-2.5-pro-preview-03-25": true,
}

// GeminiClient implements Client against the Gemini generateContent REST
// endpoint.
type GeminiClient struct {
	apiKey     string
	model      string
	baseURL    string
	httpClient *http.Client
}

// NewGeminiClient creates a Gemini client. An empty apiKey falls back to
// the GEMINI_API_KEY environment variable; an empty model falls back to
// DefaultModel. The model must be one of the allowed models.
func NewGeminiClient(apiKey, model string) (*GeminiClient, error) {
	if apiKey == "" {
		apiKey = os.Getenv("GEMINI_API_KEY")
	}
	if model == "" {
		model = DefaultModel
	}
	if !allowedModels[model] {
		return nil, fmt.Errorf("invalid model %q", model)
	}

	return &GeminiClient{
		apiKey:  apiKey,
		model:   model,
		baseURL: geminiBaseURL,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}, nil
}

func (c *GeminiClient) Name() string { return "gemini" }

func (c *GeminiClient) Available() bool { return c.apiKey != "" }

type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

type geminiGenerationConfig struct {
	Temperature      float64        `json:"temperature,omitempty"`
	TopP             float64        `json:"topP,omitempty"`
	MaxOutputTokens  int            `json:"maxOutputTokens,omitempty"`
	ResponseMimeType string         `json:"responseMimeType,omitempty"`
	ResponseSchema   map[string]any `json:"responseSchema,omitempty"`
}

type geminiRequest struct {
	Contents          []geminiContent         `json:"contents"`
	SystemInstruction *geminiContent          `json:"systemInstruction,omitempty"`
	GenerationConfig  *geminiGenerationConfig `json:"generationConfig,omitempty"`
}

type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []geminiPart `json:"parts"`
		} `json:"content"`
		FinishReason string `json:"finishReason"`
	} `json:"candidates"`
	UsageMetadata struct {
		PromptTokenCount     int `json:"promptTokenCount"`
		CandidatesTokenCount int `json:"candidatesTokenCount"`
	} `json:"usageMetadata"`
}

// Generate sends the prompt to the generateContent endpoint and returns the
// first candidate's text. Every level of the response is validated; a body
// without the expected structure fails with *UnexpectedResponseError.
func (c *GeminiClient) Generate(ctx context.Context, req *Request) (*Response, error) {
	if req.Prompt == "" {
		return nil, fmt.Errorf("prompt is required")
	}
	if c.apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	model := req.Model
	if model == "" {
		model = c.model
	}
	if !allowedModels[model] {
		return nil, fmt.Errorf("invalid model %q", model)
	}

	body, err := json.Marshal(c.buildRequest(req))
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/%s:generateContent?key=%s", c.baseURL, model, c.apiKey)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, &NetworkError{Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &NetworkError{Err: err}
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, &CredentialsError{StatusCode: resp.StatusCode}
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return nil, &APIError{StatusCode: resp.StatusCode, Body: snippet(respBody)}
	}

	var parsed geminiResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return nil, &UnexpectedResponseError{Reason: "body is not valid JSON", Body: snippet(respBody)}
	}
	if len(parsed.Candidates) == 0 {
		return nil, &UnexpectedResponseError{Reason: "no candidates in response", Body: snippet(respBody)}
	}
	candidate := parsed.Candidates[0]
	if len(candidate.Content.Parts) == 0 {
		return nil, &UnexpectedResponseError{Reason: "candidate has no content parts", Body: snippet(respBody)}
	}

	log.Debug().
		Str("model", model).
		Dur("elapsed", time.Since(start)).
		Int("input_tokens", parsed.UsageMetadata.PromptTokenCount).
		Int("output_tokens", parsed.UsageMetadata.CandidatesTokenCount).
		Msg("generation complete")

	return &Response{
		Text:         candidate.Content.Parts[0].Text,
		Model:        model,
		InputTokens:  parsed.UsageMetadata.PromptTokenCount,
		OutputTokens: parsed.UsageMetadata.CandidatesTokenCount,
		FinishReason: candidate.FinishReason,
	}, nil
}

func (c *GeminiClient) buildRequest(req *Request) *geminiRequest {
	out := &geminiRequest{
		Contents: []geminiContent{
			{Role: "user", Parts: []geminiPart{{Text: req.Prompt}}},
		},
	}

	if req.System != "" {
		out.SystemInstruction = &geminiContent{Parts: []geminiPart{{Text: req.System}}}
	}

	if req.Temperature != 0 || req.TopP != 0 || req.MaxTokens != 0 || req.ResponseSchema != nil {
		cfg := &geminiGenerationConfig{
			Temperature:     req.Temperature,
			TopP:            req.TopP,
			MaxOutputTokens: req.MaxTokens,
		}
		if req.ResponseSchema != nil {
			cfg.ResponseMimeType = "application/json"
			cfg.ResponseSchema = req.ResponseSchema
		}
		out.GenerationConfig = cfg
	}

	return out
}

func snippet(body []byte) string {
	const max = 512
	if len(body) > max {
		return string(body[:max]) + "..."
	}
	return string(body)
}
