package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/JuanJml01/Lector/internal/analyzer"
	"github.com/JuanJml01/Lector/internal/llm"
)

type analyzeRequest struct {
	Source   string `json:"source"`
	Language string `json:"language"`
}

type generateRequest struct {
	Prompt      string  `json:"prompt"`
	Model       string  `json:"model,omitempty"`
	System      string  `json:"system,omitempty"`
	Temperature float64 `json:"temperature,omitempty"`
	MaxTokens   int     `json:"max_tokens,omitempty"`
}

type generateResponse struct {
	Text   string `json:"text"`
	Model  string `json:"model"`
	Cached bool   `json:"cached"`
}

func (s *Server) analyze(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Language == "" {
		writeError(w, http.StatusBadRequest, "language is required")
		return
	}

	result, err := s.registry.Dispatch(req.Language, req.Source)
	if err != nil {
		var syntaxErr *analyzer.SyntaxError
		if errors.As(err, &syntaxErr) {
			writeError(w, http.StatusUnprocessableEntity, syntaxErr.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func (s *Server) generate(w http.ResponseWriter, r *http.Request) {
	if s.client == nil {
		writeError(w, http.StatusServiceUnavailable, "text generation is not configured")
		return
	}

	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Prompt == "" {
		writeError(w, http.StatusBadRequest, "prompt is required")
		return
	}

	resp, err := s.client.Generate(r.Context(), &llm.Request{
		Prompt:      req.Prompt,
		Model:       req.Model,
		System:      req.System,
		Temperature: req.Temperature,
		MaxTokens:   req.MaxTokens,
	})
	if err != nil {
		var credErr *llm.CredentialsError
		var netErr *llm.NetworkError
		switch {
		case errors.As(err, &credErr):
			writeError(w, http.StatusUnauthorized, credErr.Error())
		case errors.As(err, &netErr):
			writeError(w, http.StatusBadGateway, netErr.Error())
		default:
			writeError(w, http.StatusBadGateway, err.Error())
		}
		return
	}

	writeJSON(w, http.StatusOK, generateResponse{
		Text:   resp.Text,
		Model:  resp.Model,
		Cached: resp.Cached,
	})
}

func (s *Server) languages(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string][]analyzer.Language{
		"languages": s.registry.Languages(),
	})
}
