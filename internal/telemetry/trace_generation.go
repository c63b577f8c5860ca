//
// Tencent is pleased to support the open source community by making trpc-sesg-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-sesg-go is licensed under the Apache License Version 2.0.
//
//

package telemetry

import (
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// GenerationAttributes represents the attributes of a search string generation.
type GenerationAttributes struct {
	DocumentCount      int
	TopicCount         *int
	SearchStringLength *int
	Error              error
}

// TraceGeneration traces a complete search string generation.
func TraceGeneration(span trace.Span, generationAttributes *GenerationAttributes) {
	span.SetAttributes(buildGenerationAttributes(generationAttributes)...)
	if generationAttributes.Error != nil {
		span.SetStatus(codes.Error, generationAttributes.Error.Error())
	}
}

func buildGenerationAttributes(generationAttributes *GenerationAttributes) []attribute.KeyValue {
	attrs := []attribute.KeyValue{
		attribute.String(KeyGenAISystem, SystemTRPCGoSesg),
		attribute.String(KeyGenAIOperationName, OperationGenerate),
		attribute.Int(KeyDocumentCount, generationAttributes.DocumentCount),
	}
	if generationAttributes.TopicCount != nil {
		attrs = append(attrs, attribute.Int(KeyTopicCount, *generationAttributes.TopicCount))
	}
	if generationAttributes.SearchStringLength != nil {
		attrs = append(attrs, attribute.Int(KeySearchStringLength, *generationAttributes.SearchStringLength))
	}
	if generationAttributes.Error != nil {
		attrs = append(attrs, attribute.String(KeyErrorType, ValueDefaultErrorType), attribute.String(KeyErrorMessage, generationAttributes.Error.Error()))
	}
	return attrs
}

// ExtractionAttributes represents the attributes of a topic extraction call.
type ExtractionAttributes struct {
	DocumentCount int
	TopicCount    *int
	Error         error
}

// TraceExtraction traces the invocation of a topic extraction call.
func TraceExtraction(span trace.Span, extractionAttributes *ExtractionAttributes) {
	span.SetAttributes(buildExtractionAttributes(extractionAttributes)...)
	if extractionAttributes.Error != nil {
		span.SetStatus(codes.Error, extractionAttributes.Error.Error())
	}
}

func buildExtractionAttributes(extractionAttributes *ExtractionAttributes) []attribute.KeyValue {
	attrs := []attribute.KeyValue{
		attribute.String(KeyGenAISystem, SystemTRPCGoSesg),
		attribute.String(KeyGenAIOperationName, OperationExtractTopics),
		attribute.Int(KeyDocumentCount, extractionAttributes.DocumentCount),
	}
	if extractionAttributes.TopicCount != nil {
		attrs = append(attrs, attribute.Int(KeyTopicCount, *extractionAttributes.TopicCount))
	}
	if extractionAttributes.Error != nil {
		attrs = append(attrs, attribute.String(KeyErrorType, ValueDefaultErrorType), attribute.String(KeyErrorMessage, extractionAttributes.Error.Error()))
	}
	return attrs
}

// EnrichmentAttributes represents the attributes of a word enrichment call.
type EnrichmentAttributes struct {
	Word      string
	TermCount *int
	Error     error
}

// TraceEnrichment traces the invocation of a word enrichment call.
func TraceEnrichment(span trace.Span, enrichmentAttributes *EnrichmentAttributes) {
	span.SetAttributes(buildEnrichmentAttributes(enrichmentAttributes)...)
	if enrichmentAttributes.Error != nil {
		span.SetStatus(codes.Error, enrichmentAttributes.Error.Error())
	}
}

func buildEnrichmentAttributes(enrichmentAttributes *EnrichmentAttributes) []attribute.KeyValue {
	attrs := []attribute.KeyValue{
		attribute.String(KeyGenAISystem, SystemTRPCGoSesg),
		attribute.String(KeyGenAIOperationName, OperationEnrichWord),
		attribute.String(KeyWord, enrichmentAttributes.Word),
	}
	if enrichmentAttributes.TermCount != nil {
		attrs = append(attrs, attribute.Int(KeyTermCount, *enrichmentAttributes.TermCount))
	}
	if enrichmentAttributes.Error != nil {
		attrs = append(attrs, attribute.String(KeyErrorType, ValueDefaultErrorType), attribute.String(KeyErrorMessage, enrichmentAttributes.Error.Error()))
	}
	return attrs
}

// FormulationAttributes represents the attributes of a formulation call.
type FormulationAttributes struct {
	FormulatorName     string
	TopicCount         int
	SearchStringLength *int
	Error              error
}

// TraceFormulation traces the invocation of a formulation call.
func TraceFormulation(span trace.Span, formulationAttributes *FormulationAttributes) {
	span.SetAttributes(buildFormulationAttributes(formulationAttributes)...)
	if formulationAttributes.Error != nil {
		span.SetStatus(codes.Error, formulationAttributes.Error.Error())
	}
}

func buildFormulationAttributes(formulationAttributes *FormulationAttributes) []attribute.KeyValue {
	attrs := []attribute.KeyValue{
		attribute.String(KeyGenAISystem, SystemTRPCGoSesg),
		attribute.String(KeyGenAIOperationName, OperationFormulate),
		attribute.String(KeyFormulatorName, formulationAttributes.FormulatorName),
		attribute.Int(KeyTopicCount, formulationAttributes.TopicCount),
	}
	if formulationAttributes.SearchStringLength != nil {
		attrs = append(attrs, attribute.Int(KeySearchStringLength, *formulationAttributes.SearchStringLength))
	}
	if formulationAttributes.Error != nil {
		attrs = append(attrs, attribute.String(KeyErrorType, ValueDefaultErrorType), attribute.String(KeyErrorMessage, formulationAttributes.Error.Error()))
	}
	return attrs
}
