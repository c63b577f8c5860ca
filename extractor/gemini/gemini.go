//
// Tencent is pleased to support the open source community by making trpc-sesg-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-sesg-go is licensed under the Apache License Version 2.0.
//
//

// Package gemini provides Gemini topic extractor implementation.
package gemini

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"trpc.group/trpc-go/trpc-sesg-go/extractor"
	iextractor "trpc.group/trpc-go/trpc-sesg-go/extractor/internal/extractor"
	itelemetry "trpc.group/trpc-go/trpc-sesg-go/internal/telemetry"
	"trpc.group/trpc-go/trpc-sesg-go/telemetry/trace"
	"trpc.group/trpc-go/trpc-sesg-go/topic"
)

// Verify that Extractor implements the extractor.Extractor interface.
var _ extractor.Extractor = (*Extractor)(nil)

const (
	// DefaultModel is the default Gemini chat model.
	DefaultModel = "gemini-2.0-flash"
	// DefaultTopicCount is the default maximum number of topics per extraction.
	DefaultTopicCount = 3
	// DefaultWordsPerTopic is the default maximum number of words per topic.
	DefaultWordsPerTopic = 5
)

// responseMIMEType asks the model for a JSON reply instead of prose.
const responseMIMEType = "application/json"

// Client is the GenAI client surface used by the extractor.
type Client interface {
	Models() Models
}

// Models provides the generation method of the GenAI models service.
// You don't need to implement this interface yourself. Create an extractor
// via New and the genai client is wrapped for you.
type Models interface {
	// GenerateContent generates content based on the provided model, contents, and configuration.
	GenerateContent(ctx context.Context, model string, contents []*genai.Content,
		config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// clientWrapper implements Client
type clientWrapper struct {
	client *genai.Client
}

// Models implements Client.Models
func (c *clientWrapper) Models() Models {
	return &modelsWrapper{models: c.client.Models}
}

// modelsWrapper implements Models
type modelsWrapper struct {
	models *genai.Models
}

// GenerateContent implements Models.GenerateContent
func (m *modelsWrapper) GenerateContent(ctx context.Context, model string, contents []*genai.Content,
	config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	return m.models.GenerateContent(ctx, model, contents, config)
}

// Extractor implements the extractor.Extractor interface for Gemini API.
type Extractor struct {
	client        Client
	model         string
	topicCount    int
	wordsPerTopic int
	apiKey        string
	clientConfig  *genai.ClientConfig
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

// WithAPIKey sets the Gemini API key.
// If not provided, will use GEMINI_API_KEY environment variable.
func WithAPIKey(apiKey string) Option {
	return func(e *Extractor) {
		e.apiKey = apiKey
	}
}

// WithClientConfig sets the ClientConfig used for genai client initialization.
// Useful for non-default backends such as Vertex AI.
func WithClientConfig(c *genai.ClientConfig) Option {
	return func(e *Extractor) {
		e.clientConfig = c
	}
}

// New creates a new Gemini topic extractor with the given options.
func New(ctx context.Context, opts ...Option) (*Extractor, error) {
	// Create extractor with defaults.
	e := &Extractor{
		model:         DefaultModel,
		topicCount:    DefaultTopicCount,
		wordsPerTopic: DefaultWordsPerTopic,
	}

	// Apply functional options.
	for _, opt := range opts {
		opt(e)
	}

	config := e.clientConfig
	if config == nil {
		config = &genai.ClientConfig{}
	}
	if e.apiKey != "" {
		config.APIKey = e.apiKey
	}

	client, err := genai.NewClient(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}
	e.client = &clientWrapper{client: client}

	return e, nil
}

// Extract implements the extractor.Extractor interface.
// It asks the chat model which topics the given documents study and decodes
// the reply into one word list per topic.
func (e *Extractor) Extract(ctx context.Context, docs []string) ([]topic.Topic, error) {
	if len(docs) == 0 {
		return nil, nil
	}

	content, err := e.completion(ctx, docs)
	if err != nil {
		return nil, fmt.Errorf("failed to extract topics: %w", err)
	}

	return iextractor.ParseTopics(content)
}

func (e *Extractor) completion(ctx context.Context, docs []string) (content string, err error) {
	prompt := iextractor.BuildPrompt(e.topicCount, e.wordsPerTopic, docs)

	ctx, span := trace.Tracer.Start(ctx, itelemetry.NewChatSpanName(e.model))
	chatAttributes := &itelemetry.ChatAttributes{
		RequestModel:  e.model,
		InputMessages: &prompt,
	}
	defer func() {
		chatAttributes.Error = err
		itelemetry.TraceChat(span, chatAttributes)
		span.End()
	}()

	contents := []*genai.Content{
		genai.NewContentFromText(prompt, genai.RoleUser),
	}
	config := &genai.GenerateContentConfig{
		ResponseMIMEType: responseMIMEType,
	}

	// Call Gemini generation API.
	rsp, err := e.client.Models().GenerateContent(ctx, e.model, contents, config)
	if err != nil {
		return "", err
	}

	if rsp.ResponseID != "" {
		chatAttributes.ResponseID = &rsp.ResponseID
	}
	if rsp.ModelVersion != "" {
		chatAttributes.ResponseModel = &rsp.ModelVersion
	}
	if rsp.UsageMetadata != nil {
		inputTokens := int64(rsp.UsageMetadata.PromptTokenCount)
		outputTokens := int64(rsp.UsageMetadata.CandidatesTokenCount)
		chatAttributes.InputTokens = &inputTokens
		chatAttributes.OutputTokens = &outputTokens
	}

	content = responseText(rsp)
	if content == "" {
		return "", fmt.Errorf("model response contained no text")
	}
	chatAttributes.Output = &content
	return content, nil
}

// responseText concatenates the text parts of all candidates, skipping thoughts.
func responseText(rsp *genai.GenerateContentResponse) string {
	var sb strings.Builder
	for _, candidate := range rsp.Candidates {
		if candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if part == nil || part.Thought {
				continue
			}
			sb.WriteString(part.Text)
		}
	}
	return sb.String()
}
