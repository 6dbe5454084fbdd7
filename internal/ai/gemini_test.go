package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestGeminiCompleterRequestShape(t *testing.T) {
	var got geminiRequest
	var gotPath, gotKey string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.Header.Get("x-goog-api-key")
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode request: %v", err)
		}
		_, _ = w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"hel"},{"text":"lo"}]}}]}`))
	}))
	defer srv.Close()

	g := GeminiCompleter{BaseURL: srv.URL, Model: "gemini-2.0-flash", APIKey: "test-key", Client: srv.Client()}
	text, err := g.Complete(context.Background(), []ChatMessage{
		{Role: RoleUser, Content: "hi"},
		{Role: RoleAssistant, Content: "hello"},
		{Role: RoleUser, Content: "question"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if text != "hello" {
		t.Fatalf("expected concatenated parts, got %q", text)
	}
	if gotPath != "/v1beta/models/gemini-2.0-flash:generateContent" {
		t.Fatalf("unexpected path: %s", gotPath)
	}
	if gotKey != "test-key" {
		t.Fatalf("unexpected api key header: %s", gotKey)
	}
	if len(got.Contents) != 3 {
		t.Fatalf("expected 3 contents, got %d", len(got.Contents))
	}
	if got.Contents[0].Role != "user" || got.Contents[1].Role != "model" || got.Contents[2].Role != "user" {
		t.Fatalf("unexpected role mapping: %+v", got.Contents)
	}
	if got.GenerationConfig.MaxOutputTokens != 1024 {
		t.Fatalf("expected bounded output length, got %d", got.GenerationConfig.MaxOutputTokens)
	}
}

func TestGeminiCompleterNon2xx(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":{"message":"quota"}}`))
	}))
	defer srv.Close()

	g := GeminiCompleter{BaseURL: srv.URL, Model: "m", APIKey: "k", Client: srv.Client()}
	_, err := g.Complete(context.Background(), []ChatMessage{{Role: RoleUser, Content: "hi"}})
	if err == nil {
		t.Fatalf("expected error on non-2xx response")
	}
	if !strings.Contains(err.Error(), "completion http error") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestGeminiCompleterMissingKey(t *testing.T) {
	g := GeminiCompleter{BaseURL: "http://localhost:0", Model: "m"}
	_, err := g.Complete(context.Background(), []ChatMessage{{Role: RoleUser, Content: "hi"}})
	if err == nil || !strings.Contains(err.Error(), "GEMINI_API_KEY") {
		t.Fatalf("expected missing key error, got %v", err)
	}
}

func TestGeminiCompleterEmptyCandidates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"candidates":[]}`))
	}))
	defer srv.Close()

	g := GeminiCompleter{BaseURL: srv.URL, Model: "m", APIKey: "k", Client: srv.Client()}
	_, err := g.Complete(context.Background(), []ChatMessage{{Role: RoleUser, Content: "hi"}})
	if err == nil {
		t.Fatalf("expected error on empty candidates")
	}
}
