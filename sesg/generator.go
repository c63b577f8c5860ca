//
// Tencent is pleased to support the open source community by making trpc-sesg-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-sesg-go is licensed under the Apache License Version 2.0.
//
//

// Package sesg generates boolean search strings from example documents.
//
// A Generator wires three pluggable capabilities together: a topic
// extractor, a word enricher and a search string formulator. Generate runs
// extraction once over all documents, enriches every distinct topic word,
// formulates the enriched topics and returns the resulting string verbatim.
// Errors raised by a capability are returned to the caller unchanged.
package sesg

import (
	"context"
	"errors"
	"fmt"
	"time"

	"trpc.group/trpc-go/trpc-sesg-go/document"
	"trpc.group/trpc-go/trpc-sesg-go/enricher"
	"trpc.group/trpc-go/trpc-sesg-go/extractor"
	"trpc.group/trpc-go/trpc-sesg-go/formulator"
	"trpc.group/trpc-go/trpc-sesg-go/internal/loader"
	itelemetry "trpc.group/trpc-go/trpc-sesg-go/internal/telemetry"
	"trpc.group/trpc-go/trpc-sesg-go/log"
	"trpc.group/trpc-go/trpc-sesg-go/source"
	"trpc.group/trpc-go/trpc-sesg-go/telemetry/trace"
	"trpc.group/trpc-go/trpc-sesg-go/topic"
)

// ErrNilExtractor is returned by Generate when the Generator was built
// without a topic extractor.
var ErrNilExtractor = errors.New("sesg: extractor is nil")

// maxDefaultSourceParallel limits how many sources GenerateFromSources reads
// in parallel when no explicit parallelism is configured.
const maxDefaultSourceParallel = 4

// Generator produces boolean search strings from example documents.
// A Generator is safe for concurrent use when its capabilities are.
type Generator struct {
	extractor         extractor.Extractor
	enricher          enricher.Enricher
	formulator        formulator.Formulator
	sourceParallelism int
}

// New creates a Generator with the given topic extractor. The word enricher
// defaults to the no-op enricher and the formulation strategy to the
// conjunction formulator when not configured.
func New(ext extractor.Extractor, opts ...Option) *Generator {
	g := &Generator{
		extractor:  ext,
		enricher:   enricher.NewNoop(),
		formulator: formulator.NewConjunction(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate derives topics from docs, enriches each distinct topic word and
// formulates the final boolean search string. Extraction runs once over the
// full document sequence, enrichment once per distinct word in topic order
// and formulation once over the enriched topics. Capability errors are
// returned unchanged and terminate the generation without a partial result.
func (g *Generator) Generate(ctx context.Context, docs []string) (searchString string, err error) {
	if g.extractor == nil {
		return "", ErrNilExtractor
	}

	start := time.Now()
	ctx, span := trace.Tracer.Start(ctx, itelemetry.OperationGenerate)
	generationAttributes := &itelemetry.GenerationAttributes{DocumentCount: len(docs)}
	defer func() {
		generationAttributes.Error = err
		itelemetry.TraceGeneration(span, generationAttributes)
		span.End()
		itelemetry.RecordGenerateDuration(ctx, g.formulator.Name(), time.Since(start))
	}()
	itelemetry.IncGenerateRequestCnt(ctx, g.formulator.Name())

	topics, err := g.extractTopics(ctx, docs)
	if err != nil {
		return "", err
	}
	topicCount := len(topics)
	generationAttributes.TopicCount = &topicCount

	enriched, err := g.enrichTopics(ctx, topics)
	if err != nil {
		return "", err
	}

	searchString, err = g.formulate(ctx, enriched)
	if err != nil {
		return "", err
	}
	length := len(searchString)
	generationAttributes.SearchStringLength = &length
	itelemetry.RecordGenerateSearchStringLength(ctx, g.formulator.Name(), int64(length))
	log.DebugContext(ctx, fmt.Sprintf("Generated search string of %d character(s) from %d topic(s)", length, topicCount))
	return searchString, nil
}

// GenerateFromSources reads documents from the given sources and generates a
// search string from their contents. Documents keep source order even when
// sources are read in parallel.
func (g *Generator) GenerateFromSources(ctx context.Context, srcs ...source.Source) (string, error) {
	documents, err := loader.Collect(ctx, g.resolveSourceParallelism(len(srcs)), srcs)
	if err != nil {
		return "", err
	}
	docs := make([]string, 0, len(documents))
	for _, doc := range documents {
		docs = append(docs, doc.Content)
	}
	return g.Generate(ctx, docs)
}

// CollectDocuments reads all documents from the given sources without
// generating a search string. It exists for callers that want to inspect or
// filter the loaded documents before calling Generate.
func (g *Generator) CollectDocuments(ctx context.Context, srcs ...source.Source) ([]*document.Document, error) {
	return loader.Collect(ctx, g.resolveSourceParallelism(len(srcs)), srcs)
}

// resolveSourceParallelism returns the configured source parallelism, or
// min(maxDefaultSourceParallel, sourceCount) when none is configured.
func (g *Generator) resolveSourceParallelism(sourceCount int) int {
	if g.sourceParallelism > 0 {
		return g.sourceParallelism
	}
	if sourceCount < maxDefaultSourceParallel {
		return sourceCount
	}
	return maxDefaultSourceParallel
}

// extractTopics runs the extraction capability under its own span.
func (g *Generator) extractTopics(ctx context.Context, docs []string) (topics []topic.Topic, err error) {
	ctx, span := trace.Tracer.Start(ctx, itelemetry.OperationExtractTopics)
	extractionAttributes := &itelemetry.ExtractionAttributes{DocumentCount: len(docs)}
	defer func() {
		extractionAttributes.Error = err
		itelemetry.TraceExtraction(span, extractionAttributes)
		span.End()
	}()

	topics, err = g.extractor.Extract(ctx, docs)
	if err != nil {
		return nil, err
	}
	topicCount := len(topics)
	extractionAttributes.TopicCount = &topicCount
	log.DebugContext(ctx, fmt.Sprintf("Extracted %d topic(s) from %d document(s)", topicCount, len(docs)))
	return topics, nil
}

// enrichTopics builds the enriched form of every topic in order.
func (g *Generator) enrichTopics(ctx context.Context, topics []topic.Topic) ([]*topic.Enriched, error) {
	enriched := make([]*topic.Enriched, 0, len(topics))
	for _, t := range topics {
		e, err := g.enrichTopic(ctx, t)
		if err != nil {
			return nil, err
		}
		enriched = append(enriched, e)
	}
	return enriched, nil
}

// enrichTopic invokes the enricher once per distinct word. Duplicate words
// keep their first-occurrence position and are not enriched again.
func (g *Generator) enrichTopic(ctx context.Context, t topic.Topic) (*topic.Enriched, error) {
	e := topic.NewEnriched()
	for _, word := range t {
		if e.Has(word) {
			continue
		}
		terms, err := g.enrichWord(ctx, word)
		if err != nil {
			return nil, err
		}
		e.Set(word, terms)
	}
	return e, nil
}

// enrichWord runs the enrichment capability under its own span.
func (g *Generator) enrichWord(ctx context.Context, word string) (terms []string, err error) {
	ctx, span := trace.Tracer.Start(ctx, itelemetry.OperationEnrichWord)
	enrichmentAttributes := &itelemetry.EnrichmentAttributes{Word: word}
	defer func() {
		enrichmentAttributes.Error = err
		itelemetry.TraceEnrichment(span, enrichmentAttributes)
		span.End()
	}()

	terms, err = g.enricher.Enrich(ctx, word)
	if err != nil {
		return nil, err
	}
	termCount := len(terms)
	enrichmentAttributes.TermCount = &termCount
	return terms, nil
}

// formulate runs the formulation capability under its own span.
func (g *Generator) formulate(ctx context.Context, topics []*topic.Enriched) (searchString string, err error) {
	ctx, span := trace.Tracer.Start(ctx, itelemetry.OperationFormulate)
	formulationAttributes := &itelemetry.FormulationAttributes{
		FormulatorName: g.formulator.Name(),
		TopicCount:     len(topics),
	}
	defer func() {
		formulationAttributes.Error = err
		itelemetry.TraceFormulation(span, formulationAttributes)
		span.End()
	}()

	searchString, err = g.formulator.Formulate(ctx, topics)
	if err != nil {
		return "", err
	}
	length := len(searchString)
	formulationAttributes.SearchStringLength = &length
	return searchString, nil
}
