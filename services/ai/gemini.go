package ai

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Request/response shapes for the generative-language generateContent
// endpoint.

const defaultBaseURL = "https://generativelanguage.googleapis.com"

// buildURL constructs the generateContent endpoint for a model.
func buildURL(baseURL, model string) string {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	baseURL = strings.TrimSuffix(baseURL, "/")
	return fmt.Sprintf("%s/v1beta/models/%s:generateContent", baseURL, model)
}

type generateRequest struct {
	Contents         []content         `json:"contents"`
	GenerationConfig *generationConfig `json:"generationConfig,omitempty"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generationConfig struct {
	ResponseMimeType string  `json:"responseMimeType,omitempty"`
	ResponseSchema   *schema `json:"responseSchema,omitempty"`
}

type schema struct {
	Type       string            `json:"type"`
	Items      *schema           `json:"items,omitempty"`
	Properties map[string]schema `json:"properties,omitempty"`
	Required   []string          `json:"required,omitempty"`
}

// recommendationSchema constrains the structured-output response to an
// array of objects with the five required string fields.
func recommendationSchema() *schema {
	str := schema{Type: "STRING"}
	return &schema{
		Type: "ARRAY",
		Items: &schema{
			Type: "OBJECT",
			Properties: map[string]schema{
				"funderName":  str,
				"grantName":   str,
				"description": str,
				"website":     str,
				"matchReason": str,
			},
			Required: []string{"funderName", "grantName", "description", "website", "matchReason"},
		},
	}
}

// buildTextRequest creates a free-text generation request body.
func buildTextRequest(prompt string) ([]byte, error) {
	req := generateRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
	}
	return json.Marshal(req)
}

// buildStructuredRequest creates a JSON-constrained generation request body.
func buildStructuredRequest(prompt string) ([]byte, error) {
	req := generateRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
		GenerationConfig: &generationConfig{
			ResponseMimeType: "application/json",
			ResponseSchema:   recommendationSchema(),
		},
	}
	return json.Marshal(req)
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []part `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// parseText extracts the concatenated candidate text from a response body.
func parseText(body []byte) (string, error) {
	var resp generateResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("error parsing response: %v", err)
	}

	var sb strings.Builder
	for _, c := range resp.Candidates {
		for _, p := range c.Content.Parts {
			sb.WriteString(p.Text)
		}
	}
	return sb.String(), nil
}
