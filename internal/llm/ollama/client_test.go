package ollama

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
)

func clientFor(t *testing.T, srv *httptest.Server, model string) *Client {
	t.Helper()
	u, err := url.Parse(srv.URL)
	if err != nil {
		t.Fatalf("parse server url: %v", err)
	}
	c, err := NewClient("http://"+u.Hostname(), u.Port(), model)
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	return c
}

func TestGenerateSendsModelAndPrompt(t *testing.T) {
	var got generateRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/generate" {
			t.Errorf("path = %q, want /api/generate", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode request: %v", err)
		}
		json.NewEncoder(w).Encode(generateResponse{Model: got.Model, Response: "  generated text\n", Done: true})
	}))
	t.Cleanup(srv.Close)

	c := clientFor(t, srv, "llama3")
	out, err := c.Generate(context.Background(), "write a summary")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if out != "generated text" {
		t.Fatalf("out = %q, want trimmed response", out)
	}
	if got.Model != "llama3" || got.Prompt != "write a summary" {
		t.Fatalf("request = %+v", got)
	}
	if got.Stream {
		t.Fatalf("stream must be false")
	}
}

func TestGenerateSurfacesServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(generateResponse{Error: "model not found"})
	}))
	t.Cleanup(srv.Close)

	c := clientFor(t, srv, "llama3")
	if _, err := c.Generate(context.Background(), "p"); err == nil || !strings.Contains(err.Error(), "model not found") {
		t.Fatalf("got %v, want model not found", err)
	}
}

func TestGenerateSurfacesHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	t.Cleanup(srv.Close)

	c := clientFor(t, srv, "llama3")
	if _, err := c.Generate(context.Background(), "p"); err == nil || !strings.Contains(err.Error(), "status 500") {
		t.Fatalf("got %v, want status 500", err)
	}
}

func TestGenerateRejectsEmptyContent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(generateResponse{Response: "   "})
	}))
	t.Cleanup(srv.Close)

	c := clientFor(t, srv, "llama3")
	if _, err := c.Generate(context.Background(), "p"); err == nil || !strings.Contains(err.Error(), "empty content") {
		t.Fatalf("got %v, want empty content error", err)
	}
}

func TestNewClientValidatesConfig(t *testing.T) {
	if _, err := NewClient("", "11434", "llama3"); err == nil {
		t.Fatalf("expected error for missing host")
	}
	if _, err := NewClient("localhost", "11434", ""); err == nil {
		t.Fatalf("expected error for missing model")
	}
}
