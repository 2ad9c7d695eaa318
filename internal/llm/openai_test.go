package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
)

const completionBody = `{
	"id": "chatcmpl-1",
	"object": "chat.completion",
	"choices": [
		{"index": 0, "finish_reason": "stop", "message": {"role": "assistant", "content": "All good."}}
	]
}`

func TestCompleteSendsExpectedRequest(t *testing.T) {
	var gotPath, gotVersion, gotKey string
	var gotBody map[string]any

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotVersion = r.URL.Query().Get("api-version")
		gotKey = r.Header.Get("api-key")
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decode request body: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(completionBody))
	}))
	defer srv.Close()

	cred, _ := NewAPIKeyCredential("secret-key")
	client, err := NewOpenAIClient(srv.URL, "gpt-4o", "2024-06-01", cred)
	if err != nil {
		t.Fatalf("NewOpenAIClient: %v", err)
	}

	content, err := client.Complete(context.Background(), "system text", "user text")
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if content != "All good." {
		t.Errorf("unexpected content %q", content)
	}
	if gotPath != "/openai/deployments/gpt-4o/chat/completions" {
		t.Errorf("unexpected path %q", gotPath)
	}
	if gotVersion != "2024-06-01" {
		t.Errorf("unexpected api-version %q", gotVersion)
	}
	if gotKey != "secret-key" {
		t.Errorf("unexpected api-key header %q", gotKey)
	}

	msgs, ok := gotBody["messages"].([]any)
	if !ok || len(msgs) != 2 {
		t.Fatalf("expected 2 messages, got %v", gotBody["messages"])
	}
	first := msgs[0].(map[string]any)
	second := msgs[1].(map[string]any)
	if first["role"] != "system" || first["content"] != "system text" {
		t.Errorf("unexpected system message %v", first)
	}
	if second["role"] != "user" || second["content"] != "user text" {
		t.Errorf("unexpected user message %v", second)
	}
	if got := gotBody["temperature"].(float64); got != 0.4 {
		t.Errorf("temperature = %v, want 0.4", got)
	}
	if got := gotBody["max_tokens"].(float64); got != 400 {
		t.Errorf("max_tokens = %v, want 400", got)
	}
	if got := gotBody["top_p"].(float64); got != 1.0 {
		t.Errorf("top_p = %v, want 1.0", got)
	}
}

func TestCompleteErrorStatusSingleAttempt(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error": {"message": "rate limited", "type": "rate_limit"}}`))
	}))
	defer srv.Close()

	cred, _ := NewAPIKeyCredential("k")
	client, err := NewOpenAIClient(srv.URL, "gpt-4o", "2024-06-01", cred)
	if err != nil {
		t.Fatalf("NewOpenAIClient: %v", err)
	}

	_, err = client.Complete(context.Background(), "s", "u")
	var compErr *CompletionError
	if !errors.As(err, &compErr) {
		t.Fatalf("expected CompletionError, got %v", err)
	}
	if compErr.StatusCode != http.StatusTooManyRequests {
		t.Errorf("status = %d, want 429", compErr.StatusCode)
	}
	if got := calls.Load(); got != 1 {
		t.Errorf("expected exactly 1 attempt, got %d", got)
	}
}

func TestCompleteNetworkFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	cred, _ := NewAPIKeyCredential("k")
	client, err := NewOpenAIClient(url, "gpt-4o", "2024-06-01", cred)
	if err != nil {
		t.Fatalf("NewOpenAIClient: %v", err)
	}

	_, err = client.Complete(context.Background(), "s", "u")
	var transErr *TransportError
	if !errors.As(err, &transErr) {
		t.Fatalf("expected TransportError, got %v", err)
	}
}

func TestCompleteBearerHeader(t *testing.T) {
	tokenSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			t.Errorf("parse token form: %v", err)
		}
		if got := r.Form.Get("scope"); got != "https://llm.example/.default" {
			t.Errorf("scope = %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token": "tok-123", "token_type": "Bearer", "expires_in": 3600}`))
	}))
	defer tokenSrv.Close()

	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(completionBody))
	}))
	defer srv.Close()

	cred, err := NewBearerTokenCredential(context.Background(), tokenSrv.URL, "client-id", "client-secret", "https://llm.example/.default")
	if err != nil {
		t.Fatalf("NewBearerTokenCredential: %v", err)
	}
	client, err := NewOpenAIClient(srv.URL, "gpt-4o", "2024-06-01", cred)
	if err != nil {
		t.Fatalf("NewOpenAIClient: %v", err)
	}

	if _, err := client.Complete(context.Background(), "s", "u"); err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if gotAuth != "Bearer tok-123" {
		t.Errorf("Authorization = %q, want Bearer tok-123", gotAuth)
	}
}

func TestCompleteTokenProviderFailure(t *testing.T) {
	tokenSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusInternalServerError)
	}))
	defer tokenSrv.Close()

	cred, err := NewBearerTokenCredential(context.Background(), tokenSrv.URL, "id", "secret", "aud")
	if err != nil {
		t.Fatalf("NewBearerTokenCredential: %v", err)
	}
	client, err := NewOpenAIClient("http://127.0.0.1:0", "gpt-4o", "2024-06-01", cred)
	if err != nil {
		t.Fatalf("NewOpenAIClient: %v", err)
	}

	_, err = client.Complete(context.Background(), "s", "u")
	var transErr *TransportError
	if !errors.As(err, &transErr) {
		t.Fatalf("expected TransportError for auth provider failure, got %v", err)
	}
}
