//
// Tencent is pleased to support the open source community by making trpc-sesg-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-sesg-go is licensed under the Apache License Version 2.0.
//
//

package openai

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/openai/openai-go/option"
	"trpc.group/trpc-go/trpc-sesg-go/extractor"
)

// TestExtractorInterface verifies that our Extractor implements the interface.
func TestExtractorInterface(t *testing.T) {
	var _ extractor.Extractor = (*Extractor)(nil)
}

// chatResponse builds a minimal chat completion response body.
func chatResponse(content string) map[string]any {
	return map[string]any{
		"id":      "chatcmpl-123",
		"object":  "chat.completion",
		"created": 1700000000,
		"model":   "gpt-4o-mini",
		"choices": []map[string]any{
			{
				"index":         0,
				"message":       map[string]any{"role": "assistant", "content": content},
				"finish_reason": "stop",
			},
		},
		"usage": map[string]any{"prompt_tokens": 9, "completion_tokens": 12, "total_tokens": 21},
	}
}

// TestNewExtractor tests the constructor with various options.
func TestNewExtractor(t *testing.T) {
	tests := []struct {
		name     string
		opts     []Option
		expected *Extractor
	}{
		{
			name: "default options",
			opts: []Option{},
			expected: &Extractor{
				model:         DefaultModel,
				topicCount:    DefaultTopicCount,
				wordsPerTopic: DefaultWordsPerTopic,
				temperature:   DefaultTemperature,
				maxRetries:    DefaultMaxRetries,
			},
		},
		{
			name: "custom options",
			opts: []Option{
				WithModel("gpt-4o"),
				WithTopicCount(4),
				WithWordsPerTopic(2),
				WithTemperature(0.3),
				WithAPIKey("test-key"),
				WithOrganization("test-org"),
				WithBaseURL("https://api.example.com"),
				WithMaxRetries(5),
			},
			expected: &Extractor{
				model:         "gpt-4o",
				topicCount:    4,
				wordsPerTopic: 2,
				temperature:   0.3,
				apiKey:        "test-key",
				organization:  "test-org",
				baseURL:       "https://api.example.com",
				maxRetries:    5,
			},
		},
		{
			name: "invalid counts fall back to defaults",
			opts: []Option{
				WithTopicCount(0),
				WithWordsPerTopic(-1),
			},
			expected: &Extractor{
				model:         DefaultModel,
				topicCount:    DefaultTopicCount,
				wordsPerTopic: DefaultWordsPerTopic,
				temperature:   DefaultTemperature,
				maxRetries:    DefaultMaxRetries,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := New(tt.opts...)

			if e.model != tt.expected.model {
				t.Errorf("expected model %s, got %s", tt.expected.model, e.model)
			}
			if e.topicCount != tt.expected.topicCount {
				t.Errorf("expected topicCount %d, got %d", tt.expected.topicCount, e.topicCount)
			}
			if e.wordsPerTopic != tt.expected.wordsPerTopic {
				t.Errorf("expected wordsPerTopic %d, got %d", tt.expected.wordsPerTopic, e.wordsPerTopic)
			}
			if e.temperature != tt.expected.temperature {
				t.Errorf("expected temperature %v, got %v", tt.expected.temperature, e.temperature)
			}
			if e.apiKey != tt.expected.apiKey {
				t.Errorf("expected apiKey %s, got %s", tt.expected.apiKey, e.apiKey)
			}
			if e.organization != tt.expected.organization {
				t.Errorf("expected organization %s, got %s", tt.expected.organization, e.organization)
			}
			if e.baseURL != tt.expected.baseURL {
				t.Errorf("expected baseURL %s, got %s", tt.expected.baseURL, e.baseURL)
			}
			if e.maxRetries != tt.expected.maxRetries {
				t.Errorf("expected maxRetries %d, got %d", tt.expected.maxRetries, e.maxRetries)
			}
		})
	}
}

// TestExtract_NoDocuments verifies that no request is made without documents.
func TestExtract_NoDocuments(t *testing.T) {
	e := New()

	topics, err := e.Extract(context.Background(), nil)
	if err != nil {
		t.Fatalf("Extract with no documents should not fail: %v", err)
	}
	if topics != nil {
		t.Errorf("expected nil topics, got %v", topics)
	}
}

func TestExtractor_Extract(t *testing.T) {
	var gotBody struct {
		Model    string `json:"model"`
		Messages []struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"messages"`
	}

	// Prepare fake OpenAI server.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Respond only to chat completions endpoint.
		if !strings.HasSuffix(r.URL.Path, "/chat/completions") {
			http.Error(w, "not found", http.StatusNotFound)
			return
		}
		body, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(body, &gotBody)

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(chatResponse(`[["machine","learning"],["computer","science"]]`))
	}))
	defer srv.Close()

	e := New(
		WithBaseURL(srv.URL),
		WithAPIKey("dummy"),
		WithTopicCount(2),
		WithWordsPerTopic(3),
	)

	topics, err := e.Extract(context.Background(), []string{"doc about machines", "doc about computers"})
	if err != nil {
		t.Fatalf("Extract err: %v", err)
	}
	if len(topics) != 2 {
		t.Fatalf("expected 2 topics, got %d", len(topics))
	}
	if topics[0][0] != "machine" || topics[1][1] != "science" {
		t.Fatalf("unexpected topics: %v", topics)
	}

	// Verify the request carried the prompt.
	if gotBody.Model != DefaultModel {
		t.Errorf("expected model %s in request, got %s", DefaultModel, gotBody.Model)
	}
	if len(gotBody.Messages) != 2 {
		t.Fatalf("expected system and user messages, got %d", len(gotBody.Messages))
	}
	if gotBody.Messages[0].Role != "system" {
		t.Errorf("expected first message to be system, got %s", gotBody.Messages[0].Role)
	}
	user := gotBody.Messages[1].Content
	if !strings.Contains(user, "up to 2 topics") || !strings.Contains(user, "at most 3 lowercase") {
		t.Errorf("prompt missing limits: %s", user)
	}
	if !strings.Contains(user, "Document 1:\ndoc about machines") || !strings.Contains(user, "Document 2:\ndoc about computers") {
		t.Errorf("prompt missing documents: %s", user)
	}
}

// TestExtractor_Extract_FencedResponse verifies that fenced replies still parse.
func TestExtractor_Extract_FencedResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(chatResponse("```json\n[[\"machine\",\"learning\"]]\n```"))
	}))
	defer srv.Close()

	e := New(
		WithBaseURL(srv.URL),
		WithAPIKey("dummy"),
	)

	topics, err := e.Extract(context.Background(), []string{"doc"})
	if err != nil {
		t.Fatalf("Extract err: %v", err)
	}
	if len(topics) != 1 || topics[0][0] != "machine" {
		t.Fatalf("unexpected topics: %v", topics)
	}
}

// TestExtractor_Extract_ParseError verifies that non-JSON replies fail without retrying.
func TestExtractor_Extract_ParseError(t *testing.T) {
	attemptCount := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attemptCount++
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(chatResponse("these are not the topics you are looking for"))
	}))
	defer srv.Close()

	e := New(
		WithBaseURL(srv.URL),
		WithAPIKey("dummy"),
		WithMaxRetries(2),
	)

	_, err := e.Extract(context.Background(), []string{"doc"})
	if err == nil {
		t.Fatal("expected parse error")
	}
	if !strings.Contains(err.Error(), "failed to parse topics response") {
		t.Errorf("unexpected error: %v", err)
	}
	// Parse failures are deterministic with temperature 0, so no retry happens.
	if attemptCount != 1 {
		t.Errorf("expected 1 attempt, got %d", attemptCount)
	}
}

// TestExtractor_Extract_NoChoices verifies handling of replies without choices.
func TestExtractor_Extract_NoChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		rsp := chatResponse("")
		rsp["choices"] = []map[string]any{}
		_ = json.NewEncoder(w).Encode(rsp)
	}))
	defer srv.Close()

	e := New(
		WithBaseURL(srv.URL),
		WithAPIKey("dummy"),
		WithMaxRetries(0),
	)

	_, err := e.Extract(context.Background(), []string{"doc"})
	if err == nil {
		t.Fatal("expected error for empty choices")
	}
	if !strings.Contains(err.Error(), "failed to extract topics") {
		t.Errorf("unexpected error: %v", err)
	}
	if !strings.Contains(err.Error(), "no choices") {
		t.Errorf("unexpected error: %v", err)
	}
}

// TestRetryLogic tests the retry logic around the chat request.
func TestRetryLogic(t *testing.T) {
	t.Run("retry until success", func(t *testing.T) {
		attemptCount := 0
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			attemptCount++
			if attemptCount <= 2 {
				// Return rate limit error for first 2 attempts
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusTooManyRequests)
				_ = json.NewEncoder(w).Encode(map[string]any{
					"error": map[string]any{
						"message": "Rate limit exceeded",
						"type":    "rate_limit_error",
						"code":    "429",
					},
				})
				return
			}
			// Success on 3rd attempt
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(chatResponse(`[["machine","learning"]]`))
		}))
		defer srv.Close()

		e := New(
			WithBaseURL(srv.URL),
			WithAPIKey("dummy"),
			WithMaxRetries(3),
			WithRetryBackoff([]time.Duration{10 * time.Millisecond, 20 * time.Millisecond}),
			// Disable SDK internal retry to test our retry logic
			WithRequestOptions(option.WithMaxRetries(0)),
		)

		topics, err := e.Extract(context.Background(), []string{"doc"})
		if err != nil {
			t.Fatalf("Extract should succeed after retries: %v", err)
		}
		if len(topics) != 1 {
			t.Errorf("expected 1 topic, got %d", len(topics))
		}
		if attemptCount != 3 {
			t.Errorf("expected 3 attempts, got %d", attemptCount)
		}
	})

	t.Run("max retries exceeded", func(t *testing.T) {
		attemptCount := 0
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			attemptCount++
			// Always return rate limit error
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusTooManyRequests)
			_ = json.NewEncoder(w).Encode(map[string]any{
				"error": map[string]any{
					"message": "Rate limit exceeded",
					"type":    "rate_limit_error",
					"code":    "429",
				},
			})
		}))
		defer srv.Close()

		e := New(
			WithBaseURL(srv.URL),
			WithAPIKey("dummy"),
			WithMaxRetries(2),
			WithRetryBackoff([]time.Duration{5 * time.Millisecond}),
			// Disable SDK internal retry to test our retry logic
			WithRequestOptions(option.WithMaxRetries(0)),
		)

		_, err := e.Extract(context.Background(), []string{"doc"})
		if err == nil {
			t.Fatal("expected error after max retries exceeded")
		}
		if !strings.Contains(err.Error(), "failed to extract topics") {
			t.Errorf("unexpected error: %v", err)
		}
		// Initial attempt + 2 retries = 3 total attempts
		if attemptCount != 3 {
			t.Errorf("expected 3 attempts (1 initial + 2 retries), got %d", attemptCount)
		}
	})
}

// TestGetBackoffDuration tests the getBackoffDuration method.
func TestGetBackoffDuration(t *testing.T) {
	t.Run("default backoff", func(t *testing.T) {
		e := New()
		expected := []time.Duration{100 * time.Millisecond, 200 * time.Millisecond, 400 * time.Millisecond, 800 * time.Millisecond}
		for i, want := range expected {
			if got := e.getBackoffDuration(i); got != want {
				t.Errorf("expected %v for attempt %d, got %v", want, i, got)
			}
		}
		// Attempt beyond default slice length should return last element
		if got := e.getBackoffDuration(10); got != 800*time.Millisecond {
			t.Errorf("expected 800ms for attempt beyond slice, got %v", got)
		}
	})

	t.Run("empty backoff slice", func(t *testing.T) {
		e := New(WithRetryBackoff(nil))
		if got := e.getBackoffDuration(0); got != 0 {
			t.Errorf("expected 0 for empty backoff, got %v", got)
		}
	})
}
