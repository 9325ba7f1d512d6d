// internal/app/quizgen/client.go
//
// Package quizgen calls the hosted Gemini model to produce a five-question
// Turkish multiple-choice quiz and validates the response shape before
// handing it to the publish flow. Generation failures are surfaced verbatim
// and never retried; no partial question set is ever accepted.
package quizgen

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"go.uber.org/zap"
)

const defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"

// Question is one generated question as the model returns it. Ids are
// assigned later, at publish time; anything the model invents is discarded.
type Question struct {
	QuestionText  string   `json:"questionText"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correctAnswer"`
}

// Input describes the quiz to generate.
type Input struct {
	Topic  string // e.g. "Kesirlerde Toplama"
	Grade  string // display name, e.g. "5. Sınıf"
	Prompt string // optional extra instructions for the model
}

// Client talks to the Gemini generateContent API.
type Client struct {
	apiKey  string
	model   string
	baseURL string
	http    *http.Client
	log     *zap.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the API endpoint (used by tests).
func WithBaseURL(url string) Option {
	return func(c *Client) { c.baseURL = url }
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// New creates a quiz generation client.
func New(apiKey, model string, logger *zap.Logger, opts ...Option) *Client {
	c := &Client{
		apiKey:  apiKey,
		model:   model,
		baseURL: defaultBaseURL,
		http:    http.DefaultClient,
		log:     logger,
	}
	if c.model == "" {
		c.model = "gemini-2.5-flash"
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// geminiRequest is the request body for the generateContent API.
type geminiRequest struct {
	Contents         []geminiContent         `json:"contents"`
	GenerationConfig *geminiGenerationConfig `json:"generationConfig,omitempty"`
}

type geminiContent struct {
	Role  string       `json:"role"`
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiGenerationConfig struct {
	ResponseMIMEType string `json:"responseMimeType,omitempty"`
}

type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// Generate asks the model for a quiz and returns exactly five validated
// questions. Any deviation from the contract (transport failure, non-200
// status, empty candidates, JSON that fails the schema) is an error.
func (c *Client) Generate(ctx context.Context, in Input) ([]Question, error) {
	if in.Topic == "" {
		return nil, fmt.Errorf("quiz topic is empty")
	}

	req := geminiRequest{
		Contents: []geminiContent{{
			Role:  "user",
			Parts: []geminiPart{{Text: buildPrompt(in)}},
		}},
		GenerationConfig: &geminiGenerationConfig{ResponseMIMEType: "application/json"},
	}
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", c.baseURL, c.model, c.apiKey)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("quiz generator error (status %d): %s", resp.StatusCode, string(respBody))
	}

	var gemResp geminiResponse
	if err := json.Unmarshal(respBody, &gemResp); err != nil {
		return nil, fmt.Errorf("unmarshal response: %w", err)
	}
	if len(gemResp.Candidates) == 0 || len(gemResp.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("quiz generator returned no content")
	}

	questions, err := parseQuestions(gemResp.Candidates[0].Content.Parts[0].Text)
	if err != nil {
		c.log.Warn("quiz generator returned malformed output", zap.Error(err))
		return nil, err
	}
	return questions, nil
}
