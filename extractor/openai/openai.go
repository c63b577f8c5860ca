//
// Tencent is pleased to support the open source community by making trpc-sesg-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-sesg-go is licensed under the Apache License Version 2.0.
//
//

// Package openai provides OpenAI topic extractor implementation.
package openai

import (
	"context"
	"fmt"
	"time"

	openai "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/shared"

	"trpc.group/trpc-go/trpc-sesg-go/extractor"
	iextractor "trpc.group/trpc-go/trpc-sesg-go/extractor/internal/extractor"
	itelemetry "trpc.group/trpc-go/trpc-sesg-go/internal/telemetry"
	"trpc.group/trpc-go/trpc-sesg-go/log"
	"trpc.group/trpc-go/trpc-sesg-go/telemetry/trace"
	"trpc.group/trpc-go/trpc-sesg-go/topic"
)

// Verify that Extractor implements the extractor.Extractor interface.
var _ extractor.Extractor = (*Extractor)(nil)

const (
	// DefaultModel is the default OpenAI chat model.
	DefaultModel = "gpt-4o-mini"
	// DefaultTopicCount is the default maximum number of topics per extraction.
	DefaultTopicCount = 3
	// DefaultWordsPerTopic is the default maximum number of words per topic.
	DefaultWordsPerTopic = 5
	// DefaultTemperature is the default sampling temperature.
	DefaultTemperature = 0.0
	// DefaultMaxRetries is the default maximum number of retries (same as OpenAI SDK).
	DefaultMaxRetries = 2
)

// systemPrompt steers the model toward a machine-readable reply.
const systemPrompt = "You extract research topics from documents. " +
	"Always reply with only a JSON array of string arrays and no other text."

// defaultRetryBackoff is the default backoff durations for retry attempts.
var defaultRetryBackoff = []time.Duration{
	100 * time.Millisecond,
	200 * time.Millisecond,
	400 * time.Millisecond,
	800 * time.Millisecond,
}

// Extractor implements the extractor.Extractor interface for OpenAI API.
type Extractor struct {
	client         openai.Client
	model          string
	topicCount     int
	wordsPerTopic  int
	temperature    float64
	apiKey         string
	organization   string
	baseURL        string
	requestOptions []option.RequestOption

	// Retry configuration
	maxRetries   int
	retryBackoff []time.Duration
}

// Option represents a functional option for configuring the Extractor.
type Option func(*Extractor)

// WithModel sets the chat model to use.
func WithModel(model string) Option {
	return func(e *Extractor) {
		e.model = model
	}
}

// WithTopicCount sets the maximum number of topics the model is asked for.
func WithTopicCount(topicCount int) Option {
	return func(e *Extractor) {
		if topicCount < 1 {
			topicCount = DefaultTopicCount
		}
		e.topicCount = topicCount
	}
}

// WithWordsPerTopic sets the maximum number of words per topic the model is asked for.
func WithWordsPerTopic(wordsPerTopic int) Option {
	return func(e *Extractor) {
		if wordsPerTopic < 1 {
			wordsPerTopic = DefaultWordsPerTopic
		}
		e.wordsPerTopic = wordsPerTopic
	}
}

// WithTemperature sets the sampling temperature for the chat model.
func WithTemperature(temperature float64) Option {
	return func(e *Extractor) {
		e.temperature = temperature
	}
}

// WithAPIKey sets the OpenAI API key.
// If not provided, will use OPENAI_API_KEY environment variable.
func WithAPIKey(apiKey string) Option {
	return func(e *Extractor) {
		e.apiKey = apiKey
	}
}

// WithOrganization sets the OpenAI organization ID.
// If not provided, will use OPENAI_ORG_ID environment variable.
func WithOrganization(organization string) Option {
	return func(e *Extractor) {
		e.organization = organization
	}
}

// WithBaseURL sets the base URL for OpenAI API.
// Optional, for OpenAI-compatible APIs.
func WithBaseURL(baseURL string) Option {
	return func(e *Extractor) {
		e.baseURL = baseURL
	}
}

// WithRequestOptions sets additional options for the OpenAI client requests.
func WithRequestOptions(opts ...option.RequestOption) Option {
	return func(e *Extractor) {
		e.requestOptions = append(e.requestOptions, opts...)
	}
}

// WithMaxRetries sets the maximum number of retries for errors.
// Default is 2 (same as OpenAI SDK default). Negative values are treated as 0.
func WithMaxRetries(maxRetries int) Option {
	return func(e *Extractor) {
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
	return func(e *Extractor) {
		e.retryBackoff = backoff
	}
}

// New creates a new OpenAI topic extractor with the given options.
func New(opts ...Option) *Extractor {
	// Create extractor with defaults.
	e := &Extractor{
		model:         DefaultModel,
		topicCount:    DefaultTopicCount,
		wordsPerTopic: DefaultWordsPerTopic,
		temperature:   DefaultTemperature,
		maxRetries:    DefaultMaxRetries,
		retryBackoff:  defaultRetryBackoff,
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

// Extract implements the extractor.Extractor interface.
// It asks the chat model which topics the given documents study and decodes
// the reply into one word list per topic.
func (e *Extractor) Extract(ctx context.Context, docs []string) ([]topic.Topic, error) {
	if len(docs) == 0 {
		return nil, nil
	}

	content, err := e.completionWithRetry(ctx, docs)
	if err != nil {
		return nil, fmt.Errorf("failed to extract topics: %w", err)
	}

	return iextractor.ParseTopics(content)
}

// completionWithRetry wraps completion with retry logic for errors.
func (e *Extractor) completionWithRetry(ctx context.Context, docs []string) (string, error) {
	var lastErr error
	for attempt := 0; attempt <= e.maxRetries; attempt++ {
		content, err := e.completion(ctx, docs)
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
			log.InfoContext(ctx, fmt.Sprintf("topic extraction request failed, retrying in %v (attempt %d/%d): %v", backoff, attempt+1, e.maxRetries, err))
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(backoff):
			}
		} else {
			log.InfoContext(ctx, fmt.Sprintf("topic extraction request failed, retrying immediately (attempt %d/%d): %v", attempt+1, e.maxRetries, err))
		}
	}

	return "", lastErr
}

// getBackoffDuration returns the backoff duration for the given attempt.
// If attempt index exceeds the backoff slice length, returns the last backoff duration.
func (e *Extractor) getBackoffDuration(attempt int) time.Duration {
	if len(e.retryBackoff) == 0 {
		return 0
	}
	if attempt < len(e.retryBackoff) {
		return e.retryBackoff[attempt]
	}
	return e.retryBackoff[len(e.retryBackoff)-1]
}

func (e *Extractor) completion(ctx context.Context, docs []string) (content string, err error) {
	prompt := iextractor.BuildPrompt(e.topicCount, e.wordsPerTopic, docs)

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
