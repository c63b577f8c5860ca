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
	"testing"
	"time"

	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"

	"trpc.group/trpc-go/trpc-sesg-go/telemetry/metric/histogram"
)

func TestMetricHelpers_Uninitialized(t *testing.T) {
	// Before the metric package runs, the instruments are nil and the helpers
	// must drop recordings instead of panicking.
	oldCnt := GenerateMetricTRPCSesgGoClientRequestCnt
	oldDur := GenerateMetricGenAIClientOperationDuration
	oldLen := GenerateMetricTRPCSesgGoSearchStringLength
	GenerateMetricTRPCSesgGoClientRequestCnt = nil
	GenerateMetricGenAIClientOperationDuration = nil
	GenerateMetricTRPCSesgGoSearchStringLength = nil
	defer func() {
		GenerateMetricTRPCSesgGoClientRequestCnt = oldCnt
		GenerateMetricGenAIClientOperationDuration = oldDur
		GenerateMetricTRPCSesgGoSearchStringLength = oldLen
	}()

	ctx := context.Background()
	IncGenerateRequestCnt(ctx, "conjunction")
	RecordGenerateDuration(ctx, "conjunction", 10*time.Millisecond)
	RecordGenerateSearchStringLength(ctx, "conjunction", 42)
}

func TestIncGenerateRequestCnt_RecordsDataPoint(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	meter := mp.Meter(MeterNameGenerate)

	counter, err := meter.Int64Counter(MetricTRPCSesgGoClientRequestCnt)
	if err != nil {
		t.Fatalf("failed to create counter: %v", err)
	}

	old := GenerateMetricTRPCSesgGoClientRequestCnt
	GenerateMetricTRPCSesgGoClientRequestCnt = counter
	defer func() { GenerateMetricTRPCSesgGoClientRequestCnt = old }()

	IncGenerateRequestCnt(context.Background(), "synonym_expansion")
	IncGenerateRequestCnt(context.Background(), "synonym_expansion")

	var rm metricdata.ResourceMetrics
	if err := reader.Collect(context.Background(), &rm); err != nil {
		t.Fatalf("failed to collect metrics: %v", err)
	}
	if len(rm.ScopeMetrics) != 1 {
		t.Fatalf("expected 1 scope metric, got %d", len(rm.ScopeMetrics))
	}
	if len(rm.ScopeMetrics[0].Metrics) != 1 {
		t.Fatalf("expected 1 metric, got %d", len(rm.ScopeMetrics[0].Metrics))
	}
	sum, ok := rm.ScopeMetrics[0].Metrics[0].Data.(metricdata.Sum[int64])
	if !ok {
		t.Fatalf("expected Sum[int64] data, got %T", rm.ScopeMetrics[0].Metrics[0].Data)
	}
	if len(sum.DataPoints) != 1 {
		t.Fatalf("expected 1 data point, got %d", len(sum.DataPoints))
	}
	if sum.DataPoints[0].Value != 2 {
		t.Errorf("expected counter value 2, got %d", sum.DataPoints[0].Value)
	}
}

func TestRecordGenerateDuration_RecordsDataPoint(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))

	hist, err := histogram.NewDynamicFloat64Histogram(mp, MeterNameGenerate, MetricGenAIClientOperationDuration)
	if err != nil {
		t.Fatalf("failed to create histogram: %v", err)
	}

	old := GenerateMetricGenAIClientOperationDuration
	GenerateMetricGenAIClientOperationDuration = hist
	defer func() { GenerateMetricGenAIClientOperationDuration = old }()

	RecordGenerateDuration(context.Background(), "conjunction", 250*time.Millisecond)

	var rm metricdata.ResourceMetrics
	if err := reader.Collect(context.Background(), &rm); err != nil {
		t.Fatalf("failed to collect metrics: %v", err)
	}
	if len(rm.ScopeMetrics) != 1 {
		t.Fatalf("expected 1 scope metric, got %d", len(rm.ScopeMetrics))
	}
	data, ok := rm.ScopeMetrics[0].Metrics[0].Data.(metricdata.Histogram[float64])
	if !ok {
		t.Fatalf("expected Histogram[float64] data, got %T", rm.ScopeMetrics[0].Metrics[0].Data)
	}
	if len(data.DataPoints) != 1 {
		t.Fatalf("expected 1 data point, got %d", len(data.DataPoints))
	}
	if data.DataPoints[0].Sum != 0.25 {
		t.Errorf("expected recorded duration 0.25s, got %f", data.DataPoints[0].Sum)
	}
}

func TestRecordGenerateSearchStringLength_RecordsDataPoint(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))

	hist, err := histogram.NewDynamicInt64Histogram(mp, MeterNameGenerate, MetricTRPCSesgGoSearchStringLength)
	if err != nil {
		t.Fatalf("failed to create histogram: %v", err)
	}

	old := GenerateMetricTRPCSesgGoSearchStringLength
	GenerateMetricTRPCSesgGoSearchStringLength = hist
	defer func() { GenerateMetricTRPCSesgGoSearchStringLength = old }()

	RecordGenerateSearchStringLength(context.Background(), "synonym_expansion", 64)

	var rm metricdata.ResourceMetrics
	if err := reader.Collect(context.Background(), &rm); err != nil {
		t.Fatalf("failed to collect metrics: %v", err)
	}
	if len(rm.ScopeMetrics) != 1 {
		t.Fatalf("expected 1 scope metric, got %d", len(rm.ScopeMetrics))
	}
	data, ok := rm.ScopeMetrics[0].Metrics[0].Data.(metricdata.Histogram[int64])
	if !ok {
		t.Fatalf("expected Histogram[int64] data, got %T", rm.ScopeMetrics[0].Metrics[0].Data)
	}
	if len(data.DataPoints) != 1 {
		t.Fatalf("expected 1 data point, got %d", len(data.DataPoints))
	}
	if data.DataPoints[0].Sum != 64 {
		t.Errorf("expected recorded length 64, got %d", data.DataPoints[0].Sum)
	}
}
