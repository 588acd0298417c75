package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func testConfig(baseURL string) Config {
	cfg := DefaultConfig("test-key")
	cfg.BaseURL = baseURL + "/v1beta"
	cfg.PollInterval = 5 * time.Millisecond
	cfg.PollCeiling = 25 * time.Millisecond
	return cfg
}

func TestClient_GenerateContent(t *testing.T) {
	var gotReq Request
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1beta/models/gemini-1.5-flash:generateContent" {
			t.Errorf("Unexpected path: %s", r.URL.Path)
		}
		if r.URL.Query().Get("key") != "test-key" {
			t.Errorf("Expected key query parameter")
		}
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Fatalf("Failed to decode request: %v", err)
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"candidates": [{"content": {"parts": [{"text": "hi"}], "role": "model"}}]}`))
	}))
	defer ts.Close()

	client := NewClient(testConfig(ts.URL))
	text, err := client.GenerateContent(context.Background(), []Content{
		{Role: "user", Parts: []Part{TextPart("hello")}},
	})
	if err != nil {
		t.Fatalf("GenerateContent failed: %v", err)
	}
	if text != "hi" {
		t.Errorf("Expected reply 'hi', got %q", text)
	}

	// The full history travels verbatim, with the fixed generation params.
	if len(gotReq.Contents) != 1 || gotReq.Contents[0].Parts[0].Text != "hello" {
		t.Errorf("Request contents not passed verbatim: %+v", gotReq.Contents)
	}
	gc := gotReq.GenerationConfig
	if gc.Temperature != 0.7 || gc.TopK != 40 || gc.TopP != 0.95 || gc.MaxOutputTokens != 8192 {
		t.Errorf("Unexpected generation config: %+v", gc)
	}
}

func TestClient_GenerateContent_NoCandidates(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"candidates": []}`))
	}))
	defer ts.Close()

	client := NewClient(testConfig(ts.URL))
	_, err := client.GenerateContent(context.Background(), nil)
	if !errors.Is(err, ErrNoCandidates) {
		t.Errorf("Expected ErrNoCandidates, got %v", err)
	}
}

func TestClient_GenerateContent_APIError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error": {"code": 400, "message": "invalid argument"}}`))
	}))
	defer ts.Close()

	client := NewClient(testConfig(ts.URL))
	_, err := client.GenerateContent(context.Background(), nil)

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("Expected APIError, got %v", err)
	}
	if apiErr.Status != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", apiErr.Status)
	}
	if apiErr.Body == "" {
		t.Errorf("Expected error body to be echoed")
	}
}

func TestClient_GenerateContent_Timeout(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.WriteHeader(http.StatusOK)
	}))
	defer ts.Close()

	cfg := testConfig(ts.URL)
	cfg.ChatTimeout = 20 * time.Millisecond
	client := NewClient(cfg)

	_, err := client.GenerateContent(context.Background(), nil)
	if err == nil {
		t.Fatal("Expected timeout error")
	}
	if !IsTimeout(err) {
		t.Errorf("Expected IsTimeout to report true for %v", err)
	}
}

func TestClient_GenerateContent_MissingKey(t *testing.T) {
	cfg := DefaultConfig("")
	client := NewClient(cfg)
	if _, err := client.GenerateContent(context.Background(), nil); err == nil {
		t.Fatal("Expected error without API key")
	}
}

func TestNewClient_Defaults(t *testing.T) {
	client := NewClient(Config{APIKey: "k"})
	if client.cfg.Model != DefaultModel {
		t.Errorf("Expected default model, got %s", client.cfg.Model)
	}
	if client.cfg.BaseURL != DefaultBaseURL {
		t.Errorf("Expected default base URL, got %s", client.cfg.BaseURL)
	}
	if client.cfg.PollInterval != 2*time.Second || client.cfg.PollCeiling != 300*time.Second {
		t.Errorf("Unexpected poll settings: %+v", client.cfg)
	}
}
