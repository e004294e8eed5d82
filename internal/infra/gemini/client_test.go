package gemini_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"voicenote/internal/infra/gemini"
)

func cannedServer(t *testing.T, completion string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		response := map[string]any{
			"candidates": []map[string]any{
				{
					"content": map[string]any{
						"parts": []map[string]string{{"text": completion}},
					},
				},
			},
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(response)
	}))
}

func TestClient_Extract(t *testing.T) {
	server := cannedServer(t, `{"title":"Call Alex","description":"Call Alex about the launch","date":"2025-03-11","start_time":"15:00","category":"reminder","priority":"medium"}`)
	defer server.Close()

	client := gemini.NewClientWithURL("test-key", "gemini-test", server.URL)

	note, err := client.Extract(context.Background(), "Remind me to call Alex tomorrow at 3pm")
	if err != nil {
		t.Fatalf("Extract error: %v", err)
	}

	if note.Title != "Call Alex" {
		t.Errorf("Title: got %q", note.Title)
	}
	if note.Start == nil {
		t.Fatal("Start: expected set")
	}
	want := time.Date(2025, 3, 11, 15, 0, 0, 0, time.Local)
	if !note.Start.Equal(want) {
		t.Errorf("Start: got %v, want %v", note.Start, want)
	}
	if note.Transcript != "Remind me to call Alex tomorrow at 3pm" {
		t.Errorf("Transcript: got %q", note.Transcript)
	}
}

func TestClient_ExtractNoSchedule(t *testing.T) {
	server := cannedServer(t, "```json\n{\"title\":\"Buy milk\",\"description\":\"Buy milk\",\"date\":\"\",\"start_time\":\"\"}\n```")
	defer server.Close()

	client := gemini.NewClientWithURL("test-key", "gemini-test", server.URL)

	note, err := client.Extract(context.Background(), "Buy milk")
	if err != nil {
		t.Fatalf("Extract error: %v", err)
	}
	if note.Start != nil {
		t.Errorf("Start: expected nil, got %v", note.Start)
	}
}

func TestClient_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, `{"error":{"message":"quota exceeded","code":429}}`, http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := gemini.NewClientWithURL("test-key", "gemini-test", server.URL)

	if _, err := client.Extract(context.Background(), "x"); err == nil {
		t.Fatal("expected error on 429")
	}
}

func TestClient_EmptyCandidates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"candidates":[]}`))
	}))
	defer server.Close()

	client := gemini.NewClientWithURL("test-key", "gemini-test", server.URL)

	if _, err := client.Extract(context.Background(), "x"); err == nil {
		t.Fatal("expected error for empty response")
	}
}
