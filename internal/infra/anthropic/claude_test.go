package anthropic_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"voicenote/internal/infra/anthropic"
)

func TestClaudeClient_Extract(t *testing.T) {
	var gotVersion string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/messages" {
			http.Error(w, "not found", http.StatusNotFound)
			return
		}
		gotVersion = r.Header.Get("anthropic-version")

		response := map[string]any{
			"content": []map[string]string{
				{"text": `{"title":"Team sync","description":"Weekly team sync","date":"2025-03-14","start_time":"10:00","end_time":"10:30","category":"meeting","priority":"high","attendees":["pat@example.com"]}`},
			},
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(response)
	}))
	defer server.Close()

	client := anthropic.NewClaudeClientWithURL("test-key", "claude-test", server.URL)

	note, err := client.Extract(context.Background(), "team sync friday at ten for half an hour")
	if err != nil {
		t.Fatalf("Extract error: %v", err)
	}

	if note.Title != "Team sync" {
		t.Errorf("Title: got %q", note.Title)
	}
	if note.Start == nil || note.End == nil {
		t.Fatal("expected start and end set")
	}
	wantStart := time.Date(2025, 3, 14, 10, 0, 0, 0, time.Local)
	if !note.Start.Equal(wantStart) {
		t.Errorf("Start: got %v, want %v", note.Start, wantStart)
	}
	if note.End.Minute() != 30 {
		t.Errorf("End: got %v", note.End)
	}
	if len(note.Attendees) != 1 {
		t.Errorf("Attendees: got %v", note.Attendees)
	}
	if gotVersion != "2023-06-01" {
		t.Errorf("anthropic-version header: got %q", gotVersion)
	}
}

func TestClaudeClient_UnparseableResponseDegrades(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		response := map[string]any{
			"content": []map[string]string{
				{"text": "Sorry, I cannot help with that."},
			},
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(response)
	}))
	defer server.Close()

	client := anthropic.NewClaudeClientWithURL("test-key", "claude-test", server.URL)

	note, err := client.Extract(context.Background(), "Buy milk")
	if err != nil {
		t.Fatalf("unparseable response should degrade, not fail: %v", err)
	}
	if note.Title != "Buy milk" || note.Start != nil {
		t.Errorf("fallback note: got %+v", note)
	}
}

func TestClaudeClient_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "overloaded", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := anthropic.NewClaudeClientWithURL("test-key", "claude-test", server.URL)

	if _, err := client.Extract(context.Background(), "x"); err == nil {
		t.Fatal("expected error on 503")
	}
}
