//
// Tencent is pleased to support the open source community by making trpc-sesg-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-sesg-go is licensed under the Apache License Version 2.0.
//
//

// Package gemini provides Gemini embedder implementation.
package gemini

import (
	"context"
	"fmt"

	"google.golang.org/genai"

	"trpc.group/trpc-go/trpc-sesg-go/embedder"
	itelemetry "trpc.group/trpc-go/trpc-sesg-go/internal/telemetry"
	"trpc.group/trpc-go/trpc-sesg-go/log"
	"trpc.group/trpc-go/trpc-sesg-go/telemetry/trace"
)

// Verify that Embedder implements the embedder.Embedder interface.
var _ embedder.Embedder = (*Embedder)(nil)

const (
	// DefaultModel is the default Gemini embedding model.
	DefaultModel = "gemini-embedding-001"
	// DefaultDimensions is the default embedding dimension for gemini-embedding-001.
	DefaultDimensions = 768
	// DefaultTaskType is the default embedding task type.
	DefaultTaskType = "SEMANTIC_SIMILARITY"
)

// Client is the GenAI client surface used by the embedder.
type Client interface {
	Models() Models
}

// Models provides the embedding method of the GenAI models service.
// You don't need to implement this interface yourself. Create an embedder
// via New and the genai client is wrapped for you.
type Models interface {
	// EmbedContent generates embeddings for the provided contents.
	EmbedContent(ctx context.Context, model string, contents []*genai.Content,
		config *genai.EmbedContentConfig) (*genai.EmbedContentResponse, error)
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

// EmbedContent implements Models.EmbedContent
func (m *modelsWrapper) EmbedContent(ctx context.Context, model string, contents []*genai.Content,
	config *genai.EmbedContentConfig) (*genai.EmbedContentResponse, error) {
	return m.models.EmbedContent(ctx, model, contents, config)
}

// Embedder implements the embedder.Embedder interface for Gemini API.
type Embedder struct {
	client       Client
	model        string
	dimensions   int
	taskType     string
	apiKey       string
	clientConfig *genai.ClientConfig
}

// Option represents a functional option for configuring the Embedder.
type Option func(*Embedder)

// WithModel sets the embedding model to use.
func WithModel(model string) Option {
	return func(e *Embedder) {
		e.model = model
	}
}

// WithDimensions sets the number of dimensions for the embedding.
// A value of 0 leaves the output dimensionality to the model default.
func WithDimensions(dimensions int) Option {
	return func(e *Embedder) {
		e.dimensions = dimensions
	}
}

// WithTaskType sets the embedding task type, "SEMANTIC_SIMILARITY" by default.
func WithTaskType(taskType string) Option {
	return func(e *Embedder) {
		e.taskType = taskType
	}
}

// WithAPIKey sets the Gemini API key.
// If not provided, will use GEMINI_API_KEY environment variable.
func WithAPIKey(apiKey string) Option {
	return func(e *Embedder) {
		e.apiKey = apiKey
	}
}

// WithClientConfig sets the ClientConfig used for genai client initialization.
// Useful for non-default backends such as Vertex AI.
func WithClientConfig(c *genai.ClientConfig) Option {
	return func(e *Embedder) {
		e.clientConfig = c
	}
}

// New creates a new Gemini embedder with the given options.
func New(ctx context.Context, opts ...Option) (*Embedder, error) {
	// Create embedder with defaults.
	e := &Embedder{
		model:      DefaultModel,
		dimensions: DefaultDimensions,
		taskType:   DefaultTaskType,
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

// GetEmbedding implements the embedder.Embedder interface.
// It generates an embedding vector for the given text.
func (e *Embedder) GetEmbedding(ctx context.Context, text string) ([]float64, error) {
	response, err := e.embed(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("failed to create embedding: %w", err)
	}

	// Extract embedding from response.
	if len(response.Embeddings) == 0 {
		log.WarnContext(ctx, "received empty embedding response from Gemini API")
		return []float64{}, nil
	}

	values := response.Embeddings[0].Values
	if len(values) == 0 {
		log.WarnContext(ctx, "received empty embedding vector from Gemini API")
		return []float64{}, nil
	}

	embedding := make([]float64, len(values))
	for i, v := range values {
		embedding[i] = float64(v)
	}

	return embedding, nil
}

func (e *Embedder) embed(ctx context.Context, text string) (rsp *genai.EmbedContentResponse, err error) {
	if text == "" {
		return nil, fmt.Errorf("text cannot be empty")
	}
	ctx, span := trace.Tracer.Start(ctx, itelemetry.NewEmbeddingsSpanName(e.model))
	embeddingAttributes := &itelemetry.EmbeddingAttributes{
		RequestModel: e.model,
		Dimensions:   e.dimensions,
	}
	defer func() {
		embeddingAttributes.Error = err
		itelemetry.TraceEmbedding(span, embeddingAttributes)
		span.End()
	}()

	contents := []*genai.Content{
		genai.NewContentFromText(text, genai.RoleUser),
	}
	config := &genai.EmbedContentConfig{
		TaskType: e.taskType,
	}
	if e.dimensions > 0 {
		config.OutputDimensionality = genai.Ptr(int32(e.dimensions))
	}

	// Call Gemini embeddings API.
	return e.client.Models().EmbedContent(ctx, e.model, contents, config)
}

// GetDimensions implements the embedder.Embedder interface.
// It returns the number of dimensions in the embedding vectors.
func (e *Embedder) GetDimensions() int {
	return e.dimensions
}
