//
// Tencent is pleased to support the open source community by making trpc-sesg-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-sesg-go is licensed under the Apache License Version 2.0.
//
//

// Package telemetry provides telemetry and observability functionality for the trpc-sesg-go framework.
// It includes tracing and metrics capabilities for search string generation operations.
package telemetry

import (
	"fmt"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

// grpcDial is a package-level variable to allow test injection of a custom dialer.
// In production, this points to grpc.Dial.
var grpcDial = grpc.Dial

// telemetry service constants.
const (
	ServiceName      = "telemetry"
	ServiceVersion   = "v0.1.0"
	ServiceNamespace = "trpc-go-sesg"
	InstrumentName   = "trpc.sesg.go"

	OperationGenerate      = "generate"
	OperationExtractTopics = "extract_topics"
	OperationEnrichWord    = "enrich_word"
	OperationFormulate     = "formulate"
	OperationChat          = "chat"
	OperationEmbeddings    = "embeddings"
)

// NewChatSpanName creates a new chat span name.
func NewChatSpanName(requestModel string) string {
	return newInferenceSpanName(OperationChat, requestModel)
}

// NewEmbeddingsSpanName creates a new embeddings span name.
func NewEmbeddingsSpanName(requestModel string) string {
	return newInferenceSpanName(OperationEmbeddings, requestModel)
}

// newInferenceSpanName creates a new inference span name.
// For example, "chat gpt-4o-mini" or "embeddings text-embedding-3-small".
func newInferenceSpanName(operationName, requestModel string) string {
	if requestModel == "" {
		return operationName
	}
	return fmt.Sprintf("%s %s", operationName, requestModel)
}

const (
	// ProtocolGRPC uses gRPC protocol for OTLP exporter.
	ProtocolGRPC string = "grpc"
	// ProtocolHTTP uses HTTP protocol for OTLP exporter.
	ProtocolHTTP string = "http"
)

// https://github.com/open-telemetry/semantic-conventions/blob/main/docs/gen-ai/gen-ai-spans.md
// telemetry attributes constants.
var (
	ResourceServiceNamespace = "trpc-go-sesg"
	ResourceServiceName      = "telemetry"
	ResourceServiceVersion   = "v0.1.0"

	KeyDocumentCount      = "trpc.go.sesg.document_count"
	KeyTopicCount         = "trpc.go.sesg.topic_count"
	KeyWord               = "trpc.go.sesg.word"
	KeyTermCount          = "trpc.go.sesg.term_count"
	KeyFormulatorName     = "trpc.go.sesg.formulator"
	KeySearchStringLength = "trpc.go.sesg.search_string_length"

	// GenAI operation attributes
	KeyGenAIOperationName = "gen_ai.operation.name"
	KeyGenAISystem        = "gen_ai.system"

	KeyGenAIRequestModel       = "gen_ai.request.model"
	KeyGenAIRequestMaxTokens   = "gen_ai.request.max_tokens" // #nosec G101 - this is a metric key name, not a credential.
	KeyGenAIRequestTemperature = "gen_ai.request.temperature"
	KeyGenAIInputMessages      = "gen_ai.input.messages"
	KeyGenAIOutputMessages     = "gen_ai.output.messages"
	KeyGenAIResponseID         = "gen_ai.response.id"
	KeyGenAIResponseModel      = "gen_ai.response.model"
	KeyGenAIUsageOutputTokens  = "gen_ai.usage.output_tokens" // #nosec G101 - this is a metric key name, not a credential.
	KeyGenAIUsageInputTokens   = "gen_ai.usage.input_tokens"  // #nosec G101 - this is a metric key name, not a credential.

	KeyGenAIRequestEncodingFormats   = "gen_ai.request.encoding_formats"
	KeyGenAIEmbeddingsDimensionCount = "gen_ai.embeddings.dimension.count"
	KeyGenAIEmbeddingsRequest        = "gen_ai.embeddings.request"
	KeyGenAIEmbeddingsResponse       = "gen_ai.embeddings.response"

	KeyServerAddress = "server.address"
	KeyServerPort    = "server.port"

	// https://github.com/open-telemetry/semantic-conventions/blob/main/docs/general/recording-errors.md#recording-errors-on-spans
	KeyErrorType          = "error.type"
	KeyErrorMessage       = "error.message"
	ValueDefaultErrorType = "_OTHER"

	// System value
	SystemTRPCGoSesg = "trpc.go.sesg"
)

// NewGRPCConn creates a new gRPC connection to the OpenTelemetry Collector.
func NewGRPCConn(endpoint string) (*grpc.ClientConn, error) {
	// It connects the OpenTelemetry Collector through gRPC connection.
	// You can customize the endpoint using options or environment variables.
	conn, err := grpcDial(endpoint,
		// Note the use of insecure transport here. TLS is recommended in production.
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create gRPC connection to collector: %w", err)
	}

	return conn, err
}
