// Package llm abstracts the generative-text capability. Callers hand it a
// prompt and own the interpretation of the response; ExtractJSON/Generate
// cover the common case of a JSON payload embedded in free text.
package llm

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
)

// Client abstracts generative-text providers.
type Client interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// ErrNotConfigured is returned by the placeholder client.
var ErrNotConfigured = errors.New("llm client not configured")

// ErrNoJSON is returned when a response carries no JSON object.
var ErrNoJSON = errors.New("no JSON object in response")

// PlaceholderClient is a stub implementation until provider wiring is added.
type PlaceholderClient struct{}

// Complete returns ErrNotConfigured.
func (PlaceholderClient) Complete(ctx context.Context, prompt string) (string, error) {
	_ = ctx
	_ = prompt
	return "", ErrNotConfigured
}

// ExtractJSON returns the first top-level {...} block in the response.
// Models are prompted for raw JSON but occasionally wrap it in prose or
// markdown fences; this recovers the payload in either case.
func ExtractJSON(response string) (string, bool) {
	start := strings.Index(response, "{")
	if start < 0 {
		return "", false
	}
	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(response); i++ {
		ch := response[i]
		if escaped {
			escaped = false
			continue
		}
		switch ch {
		case '\\':
			if inString {
				escaped = true
			}
		case '"':
			inString = !inString
		case '{':
			if !inString {
				depth++
			}
		case '}':
			if !inString {
				depth--
				if depth == 0 {
					return response[start : i+1], true
				}
			}
		}
	}
	return "", false
}

// Generate runs one completion and unmarshals the embedded JSON payload
// into out. At most one attempt: callers wanting retry re-invoke. Any
// transport failure, missing payload, or malformed JSON comes back as an
// error for the caller's fallback policy.
func Generate(ctx context.Context, c Client, prompt string, out any) error {
	response, err := c.Complete(ctx, prompt)
	if err != nil {
		return err
	}
	payload, ok := ExtractJSON(response)
	if !ok {
		return ErrNoJSON
	}
	return json.Unmarshal([]byte(payload), out)
}
