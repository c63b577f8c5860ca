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
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"

	"trpc.group/trpc-go/trpc-sesg-go/telemetry/metric/histogram"
)

// metric name constants following OpenTelemetry semantic conventions.
const (
	// MetricTRPCSesgGoClientRequestCnt represents the request count for client.
	MetricTRPCSesgGoClientRequestCnt = "trpc_sesg_go.client.request_cnt"
	// MetricGenAIClientOperationDuration represents the duration of client operation.
	MetricGenAIClientOperationDuration = "gen_ai.client.operation.duration"
	// MetricTRPCSesgGoSearchStringLength represents the length of generated search strings.
	MetricTRPCSesgGoSearchStringLength = "trpc_sesg_go.search_string.length"

	// MeterNameGenerate is the meter name for search string generation operations.
	MeterNameGenerate = "trpc_sesg_go.internal.generate"
)

var (
	MeterProvider metric.MeterProvider = noop.NewMeterProvider()

	GenerateMeter metric.Meter = MeterProvider.Meter(MeterNameGenerate)

	// GenerateMetricTRPCSesgGoClientRequestCnt records the number of generation requests made.
	GenerateMetricTRPCSesgGoClientRequestCnt metric.Int64Counter
	// GenerateMetricGenAIClientOperationDuration records the distribution of generation durations in seconds.
	GenerateMetricGenAIClientOperationDuration *histogram.DynamicFloat64Histogram
	// GenerateMetricTRPCSesgGoSearchStringLength records the distribution of generated search string lengths.
	GenerateMetricTRPCSesgGoSearchStringLength *histogram.DynamicInt64Histogram
)

// The instruments above stay nil until metric.InitMeterProvider runs, so every
// record path checks before recording.

// IncGenerateRequestCnt increments the generation request counter.
func IncGenerateRequestCnt(ctx context.Context, formulatorName string) {
	if GenerateMetricTRPCSesgGoClientRequestCnt != nil {
		GenerateMetricTRPCSesgGoClientRequestCnt.Add(ctx, 1,
			metric.WithAttributes(attribute.String(KeyGenAIOperationName, OperationGenerate),
				attribute.String(KeyGenAISystem, SystemTRPCGoSesg),
				attribute.String(KeyFormulatorName, formulatorName),
			))
	}
}

// RecordGenerateDuration records the duration of one complete generation.
func RecordGenerateDuration(ctx context.Context, formulatorName string, duration time.Duration) {
	if GenerateMetricGenAIClientOperationDuration != nil {
		GenerateMetricGenAIClientOperationDuration.Record(ctx, duration.Seconds(),
			metric.WithAttributes(attribute.String(KeyGenAIOperationName, OperationGenerate),
				attribute.String(KeyGenAISystem, SystemTRPCGoSesg),
				attribute.String(KeyFormulatorName, formulatorName),
			))
	}
}

// RecordGenerateSearchStringLength records the length of a generated search string.
func RecordGenerateSearchStringLength(ctx context.Context, formulatorName string, length int64) {
	if GenerateMetricTRPCSesgGoSearchStringLength != nil {
		GenerateMetricTRPCSesgGoSearchStringLength.Record(ctx, length,
			metric.WithAttributes(attribute.String(KeyGenAIOperationName, OperationGenerate),
				attribute.String(KeyGenAISystem, SystemTRPCGoSesg),
				attribute.String(KeyFormulatorName, formulatorName),
			))
	}
}
