package ai

import "regexp"

// Patterns for pulling a JSON array out of model output. Even with a
// JSON response mime type, models occasionally wrap the payload in a
// markdown fence or add trailing commas.
var (
	arrayBlockPattern   = regexp.MustCompile("(?s)```(?:json)?\\s*\\n?(\\[.*\\])\\s*```")
	arrayPattern        = regexp.MustCompile(`(?s)\[[\s\S]*\]`)
	trailingCommaPattern = regexp.MustCompile(`,\s*([}\]])`)
)

// extractJSONArray extracts a JSON array from model output, handling
// markdown code fences and trailing commas. Returns "" when no array
// is found.
func extractJSONArray(content string) string {
	if matches := arrayBlockPattern.FindStringSubmatch(content); len(matches) > 1 {
		return trailingCommaPattern.ReplaceAllString(matches[1], "$1")
	}
	if match := arrayPattern.FindString(content); match != "" {
		return trailingCommaPattern.ReplaceAllString(match, "$1")
	}
	return ""
}
