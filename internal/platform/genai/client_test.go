package genai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestGenerateContent(t *testing.T) {
	var gotPath, gotKey string
	var gotBody generateContentRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.Header.Get("x-goog-api-key")
		json.NewDecoder(r.Body).Decode(&gotBody)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"candidates": [{"content": {"parts": [{"text": "generated quiz text"}]}}]}`))
	}))
	defer server.Close()

	client := NewClient("test-key", "gemini-1.5-flash-8b", server.URL)
	text, err := client.GenerateContent(context.Background(), "make a quiz")
	if err != nil {
		t.Fatalf("GenerateContent: %v", err)
	}
	if text != "generated quiz text" {
		t.Errorf("text = %q, want %q", text, "generated quiz text")
	}
	if gotPath != "/v1beta/models/gemini-1.5-flash-8b:generateContent" {
		t.Errorf("path = %q", gotPath)
	}
	if gotKey != "test-key" {
		t.Errorf("api key header = %q", gotKey)
	}
	if len(gotBody.Contents) != 1 || len(gotBody.Contents[0].Parts) != 1 || gotBody.Contents[0].Parts[0].Text != "make a quiz" {
		t.Errorf("request body = %+v, want single-part prompt", gotBody)
	}
}

func TestGenerateContentUpstreamFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error": "quota exceeded"}`, http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := NewClient("test-key", "gemini-1.5-flash-8b", server.URL)
	_, err := client.GenerateContent(context.Background(), "make a quiz")
	if err == nil {
		t.Fatalf("expected error on non-2xx upstream status")
	}
	if !strings.Contains(err.Error(), "429") {
		t.Errorf("err = %v, want status code in message", err)
	}
}

func TestGenerateContentMissingKey(t *testing.T) {
	client := NewClient("", "gemini-1.5-flash-8b", "http://unused")
	if _, err := client.GenerateContent(context.Background(), "prompt"); err == nil {
		t.Fatalf("expected error when API key is missing")
	}
}

func TestGenerateContentNoCandidates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"candidates": []}`))
	}))
	defer server.Close()

	client := NewClient("test-key", "m", server.URL)
	if _, err := client.GenerateContent(context.Background(), "prompt"); err == nil {
		t.Fatalf("expected error when response has no candidates")
	}
}
