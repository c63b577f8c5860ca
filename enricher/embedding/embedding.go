//
// Tencent is pleased to support the open source community by making trpc-sesg-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-sesg-go is licensed under the Apache License Version 2.0.
//
//

// Package embedding provides a word enricher backed by embedding similarity
// over a fixed vocabulary.
package embedding

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
	"sync"

	"trpc.group/trpc-go/trpc-sesg-go/embedder"
	"trpc.group/trpc-go/trpc-sesg-go/enricher"
)

// Verify that Enricher implements the enricher.Enricher interface.
var _ enricher.Enricher = (*Enricher)(nil)

// ErrNilEmbedder is returned by Enrich when the Enricher was built without
// an embedder.
var ErrNilEmbedder = errors.New("embedding: embedder is nil")

const (
	// DefaultTopK is the default maximum number of related terms per word.
	DefaultTopK = 3
	// DefaultMinScore is the default minimum cosine similarity for a term.
	DefaultMinScore = 0.5
)

// Enricher relates a word to the vocabulary terms closest to it in
// embedding space. The vocabulary is embedded once on first use and the
// vectors are reused for every later call.
type Enricher struct {
	embedder   embedder.Embedder
	vocabulary []string
	topK       int
	minScore   float64

	// mu guards vectors. A nil slice means the vocabulary has not been
	// embedded yet, so a failed attempt is retried on the next call.
	mu      sync.Mutex
	vectors [][]float64
}

// Option represents a functional option for configuring the Enricher.
type Option func(*Enricher)

// WithVocabulary sets the candidate terms related words are drawn from.
func WithVocabulary(vocabulary []string) Option {
	return func(e *Enricher) {
		e.vocabulary = vocabulary
	}
}

// WithTopK sets the maximum number of related terms returned per word.
func WithTopK(topK int) Option {
	return func(e *Enricher) {
		if topK < 1 {
			topK = DefaultTopK
		}
		e.topK = topK
	}
}

// WithMinScore sets the minimum cosine similarity a vocabulary term needs
// to count as related.
func WithMinScore(minScore float64) Option {
	return func(e *Enricher) {
		e.minScore = minScore
	}
}

// New creates a new embedding enricher with the given embedder and options.
func New(emb embedder.Embedder, opts ...Option) *Enricher {
	e := &Enricher{
		embedder: emb,
		topK:     DefaultTopK,
		minScore: DefaultMinScore,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Enrich implements the enricher.Enricher interface.
// It returns up to topK vocabulary terms whose embeddings are at least
// minScore similar to the word, in descending similarity. The word itself
// never appears in the result, compared case-insensitively.
func (e *Enricher) Enrich(ctx context.Context, word string) ([]string, error) {
	if e.embedder == nil {
		return nil, ErrNilEmbedder
	}
	if word == "" {
		return nil, fmt.Errorf("word cannot be empty")
	}

	if err := e.ensureVocabulary(ctx); err != nil {
		return nil, err
	}

	wordVector, err := e.embedder.GetEmbedding(ctx, word)
	if err != nil {
		return nil, fmt.Errorf("failed to embed word: %w", err)
	}

	type scoredTerm struct {
		term  string
		score float64
	}
	candidates := make([]scoredTerm, 0, len(e.vocabulary))
	for i, term := range e.vocabulary {
		if strings.EqualFold(term, word) {
			continue
		}
		score := cosineSimilarity(wordVector, e.vectors[i])
		if score < e.minScore {
			continue
		}
		candidates = append(candidates, scoredTerm{term: term, score: score})
	}

	// Stable sort keeps vocabulary order for equal scores.
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].score > candidates[j].score
	})
	if len(candidates) > e.topK {
		candidates = candidates[:e.topK]
	}

	terms := make([]string, len(candidates))
	for i, candidate := range candidates {
		terms[i] = candidate.term
	}
	return terms, nil
}

// ensureVocabulary embeds the vocabulary on first use. Concurrent callers
// serialize on the mutex so each term is embedded at most once.
func (e *Enricher) ensureVocabulary(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.vectors != nil {
		return nil
	}

	vectors := make([][]float64, len(e.vocabulary))
	for i, term := range e.vocabulary {
		vector, err := e.embedder.GetEmbedding(ctx, term)
		if err != nil {
			return fmt.Errorf("failed to embed vocabulary term %q: %w", term, err)
		}
		vectors[i] = vector
	}
	e.vectors = vectors
	return nil
}

// cosineSimilarity calculates cosine similarity between two vectors.
func cosineSimilarity(a, b []float64) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}

	var dotProduct, normA, normB float64
	for i := range a {
		dotProduct += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}

	if normA == 0 || normB == 0 {
		return 0
	}

	return dotProduct / (math.Sqrt(normA) * math.Sqrt(normB))
}
