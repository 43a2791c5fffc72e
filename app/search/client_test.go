package search

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestSearchReturnsOrderedURLs(t *testing.T) {
	var receivedQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		receivedQuery = r.URL.Query().Get("q")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"results": [
			{"url": "https://a.example.com/recipe", "title": "A"},
			{"url": "https://b.example.com/recipe", "title": "B"},
			{"url": "", "title": "no url"},
			{"url": "https://c.example.com/recipe", "title": "C"}
		]}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, 5, 5*time.Second, "test-agent")
	urls, err := client.Run(context.Background(), "tomato soup")

	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if receivedQuery != `"tomato soup" ingredients recipe` {
		t.Errorf("Unexpected query: %q", receivedQuery)
	}
	if len(urls) != 3 {
		t.Fatalf("Expected 3 URLs, got %d", len(urls))
	}
	if urls[0] != "https://a.example.com/recipe" || urls[2] != "https://c.example.com/recipe" {
		t.Errorf("Result order not preserved: %v", urls)
	}
}

func TestSearchCapsResults(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"results": [
			{"url": "https://1.example.com"},
			{"url": "https://2.example.com"},
			{"url": "https://3.example.com"}
		]}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, 2, 5*time.Second, "test-agent")
	urls, err := client.Run(context.Background(), "pizza")

	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if len(urls) != 2 {
		t.Errorf("Expected results capped at 2, got %d", len(urls))
	}
}

func TestSearchEmptyResults(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"results": []}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, 5, 5*time.Second, "test-agent")
	urls, err := client.Run(context.Background(), "nonexistent dish")

	if err != nil {
		t.Fatalf("Expected no error for empty results, got: %v", err)
	}
	if len(urls) != 0 {
		t.Errorf("Expected no URLs, got %v", urls)
	}
}

func TestSearchServiceError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := NewClient(server.URL, 5, 5*time.Second, "test-agent")
	if _, err := client.Run(context.Background(), "pizza"); err == nil {
		t.Error("Expected error for upstream failure")
	}
}
