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

// ChatAttributes represents the attributes of a chat completion call.
type ChatAttributes struct {
	RequestModel  string
	Temperature   *float64
	MaxTokens     *int
	InputMessages *string
	ResponseModel *string
	ResponseID    *string
	Output        *string
	InputTokens   *int64
	OutputTokens  *int64
	Error         error
}

// TraceChat traces the invocation of a chat completion call.
func TraceChat(span trace.Span, chatAttributes *ChatAttributes) {
	span.SetAttributes(buildChatAttributes(chatAttributes)...)
	if chatAttributes.Error != nil {
		span.SetStatus(codes.Error, chatAttributes.Error.Error())
	}
}

func buildChatAttributes(chatAttributes *ChatAttributes) []attribute.KeyValue {
	attrs := []attribute.KeyValue{
		attribute.String(KeyGenAIOperationName, OperationChat),
		attribute.String(KeyGenAIRequestModel, chatAttributes.RequestModel),
	}
	if chatAttributes.Temperature != nil {
		attrs = append(attrs, attribute.Float64(KeyGenAIRequestTemperature, *chatAttributes.Temperature))
	}
	if chatAttributes.MaxTokens != nil {
		attrs = append(attrs, attribute.Int(KeyGenAIRequestMaxTokens, *chatAttributes.MaxTokens))
	}
	if chatAttributes.InputMessages != nil {
		attrs = append(attrs, attribute.String(KeyGenAIInputMessages, *chatAttributes.InputMessages))
	}
	if chatAttributes.ResponseModel != nil {
		attrs = append(attrs, attribute.String(KeyGenAIResponseModel, *chatAttributes.ResponseModel))
	}
	if chatAttributes.ResponseID != nil {
		attrs = append(attrs, attribute.String(KeyGenAIResponseID, *chatAttributes.ResponseID))
	}
	if chatAttributes.Output != nil {
		attrs = append(attrs, attribute.String(KeyGenAIOutputMessages, *chatAttributes.Output))
	}
	if chatAttributes.InputTokens != nil {
		attrs = append(attrs, attribute.Int64(KeyGenAIUsageInputTokens, *chatAttributes.InputTokens))
	}
	if chatAttributes.OutputTokens != nil {
		attrs = append(attrs, attribute.Int64(KeyGenAIUsageOutputTokens, *chatAttributes.OutputTokens))
	}
	if chatAttributes.Error != nil {
		attrs = append(attrs, attribute.String(KeyErrorType, ValueDefaultErrorType), attribute.String(KeyErrorMessage, chatAttributes.Error.Error()))
	}
	return attrs
}
