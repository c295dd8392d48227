package llm

import (
	"context"
	"errors"
	"testing"
)

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
		ok   bool
	}{
		{"bare object", `{"keep": true}`, `{"keep": true}`, true},
		{"prose wrapped", "Here you go:\n{\"keep\": true}\nHope that helps.", `{"keep": true}`, true},
		{"markdown fenced", "```json\n{\"score\": 80}\n```", `{"score": 80}`, true},
		{"nested objects", `{"a": {"b": 1}, "c": 2}`, `{"a": {"b": 1}, "c": 2}`, true},
		{"braces inside strings", `{"reason": "use {caution} here"}`, `{"reason": "use {caution} here"}`, true},
		{"escaped quote inside string", `{"reason": "say \"hi\" {later}"}`, `{"reason": "say \"hi\" {later}"}`, true},
		{"no object", "sorry, I cannot do that", "", false},
		{"unterminated object", `{"keep": tru`, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ExtractJSON(tt.in)
			if ok != tt.ok {
				t.Fatalf("ExtractJSON(%q) ok = %v, want %v", tt.in, ok, tt.ok)
			}
			if got != tt.want {
				t.Fatalf("ExtractJSON(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

type stubClient struct {
	response string
	err      error
}

func (s stubClient) Complete(ctx context.Context, prompt string) (string, error) {
	return s.response, s.err
}

func TestGenerate(t *testing.T) {
	var out struct {
		Keep  bool `json:"keep"`
		Score int  `json:"score"`
	}

	client := stubClient{response: "Sure:\n{\"keep\": true, \"score\": 85}"}
	if err := Generate(context.Background(), client, "prompt", &out); err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if !out.Keep || out.Score != 85 {
		t.Fatalf("unexpected payload: %+v", out)
	}
}

func TestGeneratePropagatesClientError(t *testing.T) {
	wantErr := errors.New("backend down")
	err := Generate(context.Background(), stubClient{err: wantErr}, "prompt", &struct{}{})
	if !errors.Is(err, wantErr) {
		t.Fatalf("expected client error, got %v", err)
	}
}

func TestGenerateNoJSON(t *testing.T) {
	err := Generate(context.Background(), stubClient{response: "plain text"}, "prompt", &struct{}{})
	if !errors.Is(err, ErrNoJSON) {
		t.Fatalf("expected ErrNoJSON, got %v", err)
	}
}
