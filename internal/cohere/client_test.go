// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cohere

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
)

func newTestServer(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient().WithBaseURL(server.URL).WithHTTPClient(server.Client())
}

func TestCompleteChat_Success(t *testing.T) {
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/chat" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer key-123" {
			t.Errorf("Authorization = %q", got)
		}
		var req ChatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode: %v", err)
		}
		if req.Message != "hello" || req.Model != DefaultModel {
			t.Errorf("request = %+v", req)
		}
		w.Write([]byte(`{"text": "  Hi from Cohere  ", "generation_id": "g1"}`))
	})

	text, err := client.CompleteChat(context.Background(), "hello", " key-123 ")
	if err != nil {
		t.Fatalf("CompleteChat failed: %v", err)
	}
	if text != "Hi from Cohere" {
		t.Errorf("text = %q", text)
	}
}

func TestCompleteChat_NoCredential(t *testing.T) {
	_, err := NewClient().CompleteChat(context.Background(), "hello", "  ")
	if !errors.Is(err, ErrNotConfigured) {
		t.Errorf("err = %v, want ErrNotConfigured", err)
	}
}

func TestCompleteChat_Unauthorized(t *testing.T) {
	var calls atomic.Int32
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"message": "invalid api token"}`))
	})

	_, err := client.CompleteChat(context.Background(), "hello", "bad")
	if !errors.Is(err, ErrUnauthorized) {
		t.Errorf("err = %v, want ErrUnauthorized", err)
	}
	if calls.Load() != 1 {
		t.Errorf("calls = %d, auth errors must not be retried", calls.Load())
	}
}

func TestCompleteChat_RetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Write([]byte(`{"text": "second time lucky"}`))
	})

	text, err := client.CompleteChat(context.Background(), "hello", "key")
	if err != nil {
		t.Fatalf("CompleteChat failed: %v", err)
	}
	if text != "second time lucky" || calls.Load() != 2 {
		t.Errorf("text = %q calls = %d", text, calls.Load())
	}
}

func TestCompleteChat_EmptyReply(t *testing.T) {
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"text": ""}`))
	})

	_, err := client.CompleteChat(context.Background(), "hello", "key")
	if !errors.Is(err, ErrEmptyReply) {
		t.Errorf("err = %v, want ErrEmptyReply", err)
	}
}

func TestCompleteChat_ClientRateLimit(t *testing.T) {
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"text": "ok"}`))
	}).WithRateLimit(1)

	var limited bool
	for i := 0; i < 10; i++ {
		if _, err := client.CompleteChat(context.Background(), "hi", "key"); errors.Is(err, ErrRateLimited) {
			limited = true
			break
		}
	}
	if !limited {
		t.Error("expected the client-side limiter to trip")
	}
}

func TestHandleErrorResponse(t *testing.T) {
	err := handleErrorResponse(http.StatusBadRequest, []byte("plain failure"))
	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.Status != 400 || apiErr.Message != "plain failure" {
		t.Errorf("err = %#v", err)
	}
	if isRetryable(err) {
		t.Error("400 should not be retryable")
	}
}
