package sheet

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestWebhookWriterAppend(t *testing.T) {
	var received appendRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "POST" {
			t.Errorf("Expected POST, got %s", r.Method)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("Expected JSON content type, got %s", ct)
		}
		if err := json.NewDecoder(r.Body).Decode(&received); err != nil {
			t.Errorf("Failed to decode request body: %v", err)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	writer := NewWebhookWriter(server.Client(), server.URL, "Test Agent")

	rows := [][]string{
		{"12/05/2025", "News", "N/A"},
		{"12/06/2025", "Reddit", "N/A"},
	}

	if err := writer.Append(context.Background(), rows); err != nil {
		t.Fatal(err)
	}

	if len(received.Rows) != 2 {
		t.Fatalf("Expected 2 rows received, got %d", len(received.Rows))
	}
	if received.Rows[0][1] != "News" {
		t.Errorf("Expected first row platform 'News', got %q", received.Rows[0][1])
	}
}

func TestWebhookWriterAppendFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "script error", http.StatusInternalServerError)
	}))
	defer server.Close()

	writer := NewWebhookWriter(server.Client(), server.URL, "Test Agent")

	err := writer.Append(context.Background(), [][]string{{"row"}})
	if err == nil {
		t.Fatal("Expected error on HTTP 500")
	}
}

func TestWebhookWriterEmptyRows(t *testing.T) {
	// No webhook configured, but empty appends never hit the network
	writer := NewWebhookWriter(http.DefaultClient, "", "Test Agent")
	if err := writer.Append(context.Background(), nil); err != nil {
		t.Errorf("Expected nil error for empty rows, got %v", err)
	}

	if err := writer.Append(context.Background(), [][]string{{"row"}}); err == nil {
		t.Error("Expected error when webhook URL is not configured")
	}
}
