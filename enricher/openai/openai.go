//
// Tencent is pleased to support the open source community by making trpc-sesg-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-sesg-go is licensed under the Apache License Version 2.0.
//
//

// Package openai provides OpenAI word enricher implementation.
package openai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	openai "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/shared"

	"trpc.group/trpc-go/trpc-sesg-go/enricher"
	itelemetry "trpc.group/trpc-go/trpc-sesg-go/internal/telemetry"
	"trpc.group/trpc-go/trpc-sesg-go/log"
	"trpc.group/trpc-go/trpc-sesg-go/telemetry/trace"
)

// Verify that Enricher implements the enricher.Enricher interface.
var _ enricher.Enricher = (*Enricher)(nil)

const (
	// DefaultModel is the default OpenAI chat model.
	DefaultModel = "gpt-4o-mini"
	// DefaultMaxTerms is the default maximum number of related terms per word.
	DefaultMaxTerms = 5
	// DefaultTemperature is the default sampling temperature.
	DefaultTemperature = 0.0
	// DefaultMaxRetries is the default maximum number of retries (same as OpenAI SDK).
	DefaultMaxRetries = 2
)

// systemPrompt steers the model toward a machine-readable reply.
const systemPrompt = "You suggest search terms related to a keyword. " +
	"Always reply with only a JSON array of strings and no other text."

// defaultRetryBackoff is the default backoff durations for retry attempts.
var defaultRetryBackoff = []time.Duration{
	100 * time.Millisecond,
	200 * time.Millisecond,
	400 * time.Millisecond,
	800 * time.Millisecond,
}

// Enricher implements the enricher.Enricher interface for OpenAI API.
type Enricher struct {
	client         openai.Client
	model          string
	maxTerms       int
	temperature    float64
	apiKey         string
	organization   string
	baseURL        string
	requestOptions []option.RequestOption

	// Retry configuration
	maxRetries   int
	retryBackoff []time.Duration
}

// Option represents a functional option for configuring the Enricher.
type Option func(*Enricher)

// WithModel sets the chat model to use.
func WithModel(model string) Option {
	return func(e *Enricher) {
		e.model = model
	}
}

// WithMaxTerms sets the maximum number of related terms the model is asked for.
func WithMaxTerms(maxTerms int) Option {
	return func(e *Enricher) {
		if maxTerms < 1 {
			maxTerms = DefaultMaxTerms
		}
		e.maxTerms = maxTerms
	}
}

// WithTemperature sets the sampling temperature for the chat model.
func WithTemperature(temperature float64) Option {
	return func(e *Enricher) {
		e.temperature = temperature
	}
}

// WithAPIKey sets the OpenAI API key.
// If not provided, will use OPENAI_API_KEY environment variable.
func WithAPIKey(apiKey string) Option {
	return func(e *Enricher) {
		e.apiKey = apiKey
	}
}

// WithOrganization sets the OpenAI organization ID.
// If not provided, will use OPENAI_ORG_ID environment variable.
func WithOrganization(organization string) Option {
	return func(e *Enricher) {
		e.organization = organization
	}
}

// WithBaseURL sets the base URL for OpenAI API.
// Optional, for OpenAI-compatible APIs.
func WithBaseURL(baseURL string) Option {
	return func(e *Enricher) {
		e.baseURL = baseURL
	}
}

// WithRequestOptions sets additional options for the OpenAI client requests.
func WithRequestOptions(opts ...option.RequestOption) Option {
	return func(e *Enricher) {
		e.requestOptions = append(e.requestOptions, opts...)
	}
}

// WithMaxRetries sets the maximum number of retries for errors.
// Default is 2 (same as OpenAI SDK default). Negative values are treated as 0.
func WithMaxRetries(maxRetries int) Option {
	return func(e *Enricher) {
		if maxRetries < 0 {
			maxRetries = 0
		}
		e.maxRetries = maxRetries
	}
}

// WithRetryBackoff sets the backoff durations for each retry attempt.
// If the number of retries exceeds the length of backoff slice,
// the last backoff duration will be used for remaining retries.
// Default is [100ms, 200ms, 400ms, 800ms].
func WithRetryBackoff(backoff []time.Duration) Option {
	return func(e *Enricher) {
		e.retryBackoff = backoff
	}
}

// New creates a new OpenAI word enricher with the given options.
func New(opts ...Option) *Enricher {
	// Create enricher with defaults.
	e := &Enricher{
		model:        DefaultModel,
		maxTerms:     DefaultMaxTerms,
		temperature:  DefaultTemperature,
		maxRetries:   DefaultMaxRetries,
		retryBackoff: defaultRetryBackoff,
	}

	// Apply functional options.
	for _, opt := range opts {
		opt(e)
	}

	// Build client options.
	var clientOpts []option.RequestOption
	if e.apiKey != "" {
		clientOpts = append(clientOpts, option.WithAPIKey(e.apiKey))
	}
	if e.organization != "" {
		clientOpts = append(clientOpts, option.WithOrganization(e.organization))
	}
	if e.baseURL != "" {
		clientOpts = append(clientOpts, option.WithBaseURL(e.baseURL))
	}

	// disable openai sdk chat retries
	clientOpts = append(clientOpts, option.WithMaxRetries(0))

	// Create OpenAI client.
	e.client = openai.NewClient(clientOpts...)

	return e
}

// Enrich implements the enricher.Enricher interface.
// It asks the chat model for terms related to the given word. An empty reply
// yields an empty result, not an error.
func (e *Enricher) Enrich(ctx context.Context, word string) ([]string, error) {
	content, err := e.completionWithRetry(ctx, word)
	if err != nil {
		return nil, fmt.Errorf("failed to enrich word: %w", err)
	}

	return parseTerms(content, word)
}

// completionWithRetry wraps completion with retry logic for errors.
func (e *Enricher) completionWithRetry(ctx context.Context, word string) (string, error) {
	var lastErr error
	for attempt := 0; attempt <= e.maxRetries; attempt++ {
		content, err := e.completion(ctx, word)
		if err == nil {
			return content, nil
		}

		lastErr = err

		// No more retries
		if attempt >= e.maxRetries {
			break
		}

		// Get backoff duration for this attempt and log retry
		backoff := e.getBackoffDuration(attempt)
		if backoff > 0 {
			log.InfoContext(ctx, fmt.Sprintf("term enrichment request failed, retrying in %v (attempt %d/%d): %v", backoff, attempt+1, e.maxRetries, err))
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(backoff):
			}
		} else {
			log.InfoContext(ctx, fmt.Sprintf("term enrichment request failed, retrying immediately (attempt %d/%d): %v", attempt+1, e.maxRetries, err))
		}
	}

	return "", lastErr
}

// getBackoffDuration returns the backoff duration for the given attempt.
// If attempt index exceeds the backoff slice length, returns the last backoff duration.
func (e *Enricher) getBackoffDuration(attempt int) time.Duration {
	if len(e.retryBackoff) == 0 {
		return 0
	}
	if attempt < len(e.retryBackoff) {
		return e.retryBackoff[attempt]
	}
	return e.retryBackoff[len(e.retryBackoff)-1]
}

func (e *Enricher) completion(ctx context.Context, word string) (content string, err error) {
	if word == "" {
		return "", fmt.Errorf("word cannot be empty")
	}
	prompt := buildPrompt(e.maxTerms, word)

	ctx, span := trace.Tracer.Start(ctx, itelemetry.NewChatSpanName(e.model))
	chatAttributes := &itelemetry.ChatAttributes{
		RequestModel:  e.model,
		Temperature:   &e.temperature,
		InputMessages: &prompt,
	}
	defer func() {
		chatAttributes.Error = err
		itelemetry.TraceChat(span, chatAttributes)
		span.End()
	}()

	// Create chat completion request.
	request := openai.ChatCompletionNewParams{
		Model: shared.ChatModel(e.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage(prompt),
		},
		Temperature: openai.Float(e.temperature),
	}

	// Combine request options.
	requestOpts := make([]option.RequestOption, len(e.requestOptions))
	copy(requestOpts, e.requestOptions)

	// Call OpenAI chat completions API.
	chatCompletion, err := e.client.Chat.Completions.New(ctx, request, requestOpts...)
	if err != nil {
		return "", err
	}
	if len(chatCompletion.Choices) == 0 {
		return "", fmt.Errorf("chat completion returned no choices")
	}

	chatAttributes.ResponseID = &chatCompletion.ID
	chatAttributes.ResponseModel = &chatCompletion.Model
	chatAttributes.InputTokens = &chatCompletion.Usage.PromptTokens
	chatAttributes.OutputTokens = &chatCompletion.Usage.CompletionTokens

	content = chatCompletion.Choices[0].Message.Content
	chatAttributes.Output = &content
	return content, nil
}

// buildPrompt renders the enrichment prompt for a single word.
func buildPrompt(maxTerms int, word string) string {
	return fmt.Sprintf("List up to %d English terms closely related to the keyword %q, "+
		"such as synonyms or domain variants, ordered by relevance. "+
		"Reply with only a JSON array of strings, for example "+
		`["neural networks","deep learning"].`, maxTerms, word)
}

// parseTerms decodes a model response into related terms. A surrounding
// Markdown code fence is stripped before decoding. Blank terms and echoes of
// the word itself are dropped.
func parseTerms(content, word string) ([]string, error) {
	var raw []string
	if err := json.Unmarshal([]byte(stripCodeFences(content)), &raw); err != nil {
		return nil, fmt.Errorf("failed to parse terms response: %w", err)
	}
	terms := make([]string, 0, len(raw))
	for _, term := range raw {
		term = strings.TrimSpace(term)
		if term == "" {
			continue
		}
		if strings.EqualFold(term, word) {
			continue
		}
		terms = append(terms, term)
	}
	return terms, nil
}

// stripCodeFences removes a surrounding Markdown code fence from a model response.
func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}
