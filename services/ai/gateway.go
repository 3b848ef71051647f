// Package ai is the sole boundary to the external generative-language
// service. It exposes structured recommendation generation and free-text
// proposal critique, and normalizes every failure into a closed error
// set.
package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// maxResponseSize limits response bodies to prevent memory exhaustion.
const maxResponseSize = 10 * 1024 * 1024 // 10MB

const (
	recommendationModel = "gemini-2.5-pro"
	critiqueModel       = "gemini-2.5-flash"
)

// CredentialSource resolves the API credential. Exactly one configured
// source backs it (environment or user-supplied); returning
// ErrMissingCredential short-circuits every gateway call.
type CredentialSource interface {
	Credential() (string, error)
}

// GrantRecommendation is a funding opportunity suggested by the AI
// service. Identity for deduplication is the (grantName, funderName)
// pair; there is no stable ID.
type GrantRecommendation struct {
	FunderName  string `json:"funderName"`
	GrantName   string `json:"grantName"`
	Description string `json:"description"`
	Website     string `json:"website"`
	MatchReason string `json:"matchReason"`
}

// Gateway issues generateContent requests to the AI service.
type Gateway struct {
	creds      CredentialSource
	httpClient *http.Client
	baseURL    string
}

// Option configures a Gateway.
type Option func(*Gateway)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(g *Gateway) {
		g.httpClient = c
	}
}

// WithBaseURL overrides the service base URL (tests point this at a
// stub server).
func WithBaseURL(url string) Option {
	return func(g *Gateway) {
		g.baseURL = url
	}
}

// NewGateway creates a gateway resolving credentials from creds.
func NewGateway(creds CredentialSource, opts ...Option) *Gateway {
	g := &Gateway{
		creds: creds,
		httpClient: &http.Client{
			Timeout: 180 * time.Second, // Allow time for long generations
		},
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// GenerateRecommendations issues a structured-output request for grant
// recommendations and validates the response shape. Any count >= 0 of
// well-formed recommendations is accepted.
func (g *Gateway) GenerateRecommendations(ctx context.Context, prompt string) ([]GrantRecommendation, error) {
	body, err := buildStructuredRequest(prompt)
	if err != nil {
		return nil, ErrMalformedResponse
	}

	text, err := g.generate(ctx, recommendationModel, body)
	if err != nil {
		return nil, err
	}

	raw := extractJSONArray(text)
	if raw == "" {
		return nil, ErrMalformedResponse
	}

	var recs []GrantRecommendation
	if err := json.Unmarshal([]byte(raw), &recs); err != nil {
		return nil, ErrMalformedResponse
	}
	for _, rec := range recs {
		if rec.FunderName == "" || rec.GrantName == "" || rec.Description == "" ||
			rec.Website == "" || rec.MatchReason == "" {
			return nil, ErrMalformedResponse
		}
	}
	return recs, nil
}

// GenerateCritique issues a free-text completion request and returns the
// raw markdown response.
func (g *Gateway) GenerateCritique(ctx context.Context, proposalText, grantContext string) (string, error) {
	prompt := fmt.Sprintf(`Act as a professional grant writing consultant. Review the following grant proposal draft.
Provide constructive feedback and suggestions for improvement, focusing on clarity, impact, and alignment with the funder's likely priorities.
Rewrite sections where necessary to improve flow and persuasiveness.
The response should be formatted as clean markdown.

Funder Information:
%s

Proposal Draft:
---
%s
---`, grantContext, proposalText)

	body, err := buildTextRequest(prompt)
	if err != nil {
		return "", ErrMalformedResponse
	}

	text, err := g.generate(ctx, critiqueModel, body)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(text) == "" {
		return "", ErrEmptyResponse
	}
	return text, nil
}

// generate executes a single generateContent request. The credential is
// resolved before anything else so a missing key never leaks a partial
// prompt into a failed network attempt.
func (g *Gateway) generate(ctx context.Context, model string, body []byte) (string, error) {
	key, err := g.creds.Credential()
	if err != nil {
		return "", err
	}

	url := buildURL(g.baseURL, model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", NewTransportError(fmt.Errorf("error creating request: %v", err))
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", key)

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return "", NewTransportError(fmt.Errorf("request failed: %v", err))
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return "", NewTransportError(fmt.Errorf("error reading response: %v", err))
	}

	if resp.StatusCode != http.StatusOK {
		detail := string(respBody)
		if len(detail) > 200 {
			detail = detail[:200] + "..."
		}
		return "", NewTransportError(fmt.Errorf("AI service error (status %d): %s", resp.StatusCode, detail))
	}

	text, err := parseText(respBody)
	if err != nil {
		return "", ErrMalformedResponse
	}
	if strings.TrimSpace(text) == "" {
		return "", ErrEmptyResponse
	}
	return text, nil
}
