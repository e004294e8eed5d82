package pushover_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"voicenote/internal/infra/pushover"
)

func TestClient_Notify(t *testing.T) {
	var gotToken, gotUser, gotMessage, gotTitle string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		r.ParseForm()
		gotToken = r.FormValue("token")
		gotUser = r.FormValue("user")
		gotMessage = r.FormValue("message")
		gotTitle = r.FormValue("title")
		w.Write([]byte(`{"status":1}`))
	}))
	defer server.Close()

	client := pushover.NewClientWithURL("app-token", "user-key", server.URL)

	if err := client.Notify(context.Background(), "Voice note 'Call Alex' published"); err != nil {
		t.Fatalf("Notify error: %v", err)
	}

	if gotToken != "app-token" || gotUser != "user-key" {
		t.Errorf("credentials: got token %q user %q", gotToken, gotUser)
	}
	if gotMessage != "Voice note 'Call Alex' published" {
		t.Errorf("message: got %q", gotMessage)
	}
	if gotTitle != "Voice Notes" {
		t.Errorf("title: got %q", gotTitle)
	}
}

func TestClient_NotifySkipsWithoutCredentials(t *testing.T) {
	client := pushover.NewClientWithURL("", "", "http://127.0.0.1:0")

	if err := client.Notify(context.Background(), "ignored"); err != nil {
		t.Fatalf("missing credentials should be a no-op, got %v", err)
	}
}

func TestClient_NotifyNon2xx(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "bad token", http.StatusUnauthorized)
	}))
	defer server.Close()

	client := pushover.NewClientWithURL("t", "u", server.URL)

	if err := client.Notify(context.Background(), "x"); err == nil {
		t.Fatal("expected error on 401")
	}
}
