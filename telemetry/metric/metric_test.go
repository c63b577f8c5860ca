//
// Tencent is pleased to support the open source community by making trpc-sesg-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-sesg-go is licensed under the Apache License Version 2.0.
//
//

package metric

import (
	"context"
	"os"
	"testing"

	itelemetry "trpc.group/trpc-go/trpc-sesg-go/internal/telemetry"
)

// TestGRPCMetricsEndpoint validates metrics endpoint precedence rules.
func TestGRPCMetricsEndpoint(t *testing.T) {
	const (
		customEndpoint  = "custom-metric:4318"
		genericEndpoint = "generic-endpoint:4318"
	)

	origMetric := os.Getenv("OTEL_EXPORTER_OTLP_METRICS_ENDPOINT")
	origGeneric := os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT")
	defer func() {
		_ = os.Setenv("OTEL_EXPORTER_OTLP_METRICS_ENDPOINT", origMetric)
		_ = os.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", origGeneric)
	}()

	_ = os.Setenv("OTEL_EXPORTER_OTLP_METRICS_ENDPOINT", customEndpoint)
	_ = os.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", genericEndpoint)
	if ep := metricsEndpoint("grpc"); ep != customEndpoint {
		t.Fatalf("expected %s, got %s", customEndpoint, ep)
	}

	_ = os.Setenv("OTEL_EXPORTER_OTLP_METRICS_ENDPOINT", "")
	_ = os.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", genericEndpoint)
	if ep := metricsEndpoint("grpc"); ep != genericEndpoint {
		t.Fatalf("expected %s, got %s", genericEndpoint, ep)
	}

	_ = os.Setenv("OTEL_EXPORTER_OTLP_METRICS_ENDPOINT", "")
	_ = os.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "")
	if ep := metricsEndpoint("grpc"); ep != "localhost:4317" {
		t.Fatalf("expected default gRPC endpoint localhost:4317, got %s", ep)
	}

	if ep := metricsEndpoint("http"); ep != "localhost:4318" {
		t.Fatalf("expected default HTTP endpoint localhost:4318, got %s", ep)
	}
}

// TestNewMeterProvider exercises various configurations.
func TestNewMeterProvider(t *testing.T) {
	tests := []struct {
		name string
		opts []Option
	}{
		{
			name: "gRPC endpoint",
			opts: []Option{
				WithEndpoint("localhost:4317"),
				WithProtocol("grpc"),
			},
		},
		{
			name: "HTTP endpoint",
			opts: []Option{
				WithEndpoint("localhost:4318"),
				WithProtocol("http"),
			},
		},
		{
			name: "default options",
			opts: []Option{},
		},
		{
			name: "custom endpoint",
			opts: []Option{
				WithEndpoint("custom:4317"),
			},
		},
		{
			name: "resilient to empty endpoint",
			opts: []Option{
				WithEndpoint(""),
			},
		},
		{
			name: "resilient to invalid protocol",
			opts: []Option{
				WithProtocol("invalid"),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			mp, err := NewMeterProvider(ctx, tt.opts...)
			if err != nil {
				t.Fatalf("NewMeterProvider returned error: %v", err)
			}
			if mp == nil {
				t.Fatal("expected non-nil meter provider")
			}
		})
	}
}

// TestOptions validates option functions
func TestOptions(t *testing.T) {
	opts := &options{
		protocol:    "grpc",
		serviceName: "original",
	}

	tests := []struct {
		name     string
		option   Option
		validate func(*testing.T, *options)
	}{
		{
			name:   "WithEndpoint",
			option: WithEndpoint("test:4317"),
			validate: func(t *testing.T, opts *options) {
				if opts.metricsEndpoint != "test:4317" {
					t.Errorf("expected endpoint test:4317, got %s", opts.metricsEndpoint)
				}
			},
		},
		{
			name:   "WithProtocol",
			option: WithProtocol("http"),
			validate: func(t *testing.T, opts *options) {
				if opts.protocol != "http" {
					t.Errorf("expected protocol http, got %s", opts.protocol)
				}
			},
		},
		{
			name:   "WithServiceName",
			option: WithServiceName("renamed"),
			validate: func(t *testing.T, opts *options) {
				if opts.serviceName != "renamed" {
					t.Errorf("expected service name renamed, got %s", opts.serviceName)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Create a copy of original options for each test
			testOpts := *opts
			tt.option(&testOpts)
			tt.validate(t, &testOpts)
		})
	}
}

// TestInitMeterProvider tests the InitMeterProvider function
func TestInitMeterProvider(t *testing.T) {
	ctx := context.Background()

	// Save original meter provider
	originalMP := itelemetry.MeterProvider
	defer func() {
		itelemetry.MeterProvider = originalMP
	}()

	mp, err := NewMeterProvider(ctx)
	if err != nil {
		t.Fatalf("failed to create meter provider: %v", err)
	}

	err = InitMeterProvider(mp)
	if err != nil {
		t.Fatalf("InitMeterProvider failed: %v", err)
	}

	// Verify that the meter provider was set
	if itelemetry.MeterProvider != mp {
		t.Error("MeterProvider was not set correctly")
	}

	// Verify that generate metrics were created
	if itelemetry.GenerateMeter == nil {
		t.Error("GenerateMeter was not created")
	}
	if itelemetry.GenerateMetricTRPCSesgGoClientRequestCnt == nil {
		t.Error("GenerateMetricTRPCSesgGoClientRequestCnt was not created")
	}
	if itelemetry.GenerateMetricGenAIClientOperationDuration == nil {
		t.Error("GenerateMetricGenAIClientOperationDuration was not created")
	}
	if itelemetry.GenerateMetricTRPCSesgGoSearchStringLength == nil {
		t.Error("GenerateMetricTRPCSesgGoSearchStringLength was not created")
	}
}

// TestGetMeterProvider tests the GetMeterProvider function
func TestGetMeterProvider(t *testing.T) {
	ctx := context.Background()

	// Save original meter provider
	originalMP := itelemetry.MeterProvider
	defer func() {
		itelemetry.MeterProvider = originalMP
	}()

	mp, err := NewMeterProvider(ctx)
	if err != nil {
		t.Fatalf("failed to create meter provider: %v", err)
	}

	err = InitMeterProvider(mp)
	if err != nil {
		t.Fatalf("InitMeterProvider failed: %v", err)
	}

	retrievedMP := GetMeterProvider()
	if retrievedMP != mp {
		t.Error("GetMeterProvider did not return the correct meter provider")
	}
}

// TestNewMeterProviderWithEnvironmentVariables tests NewMeterProvider with environment variables
func TestNewMeterProviderWithEnvironmentVariables(t *testing.T) {
	origMetric := os.Getenv("OTEL_EXPORTER_OTLP_METRICS_ENDPOINT")
	origGeneric := os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT")
	defer func() {
		_ = os.Setenv("OTEL_EXPORTER_OTLP_METRICS_ENDPOINT", origMetric)
		_ = os.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", origGeneric)
	}()

	tests := []struct {
		name            string
		metricsEndpoint string
		genericEndpoint string
		opts            []Option
	}{
		{
			name:            "with OTEL_EXPORTER_OTLP_METRICS_ENDPOINT",
			metricsEndpoint: "metrics-endpoint:4317",
			genericEndpoint: "",
			opts:            []Option{},
		},
		{
			name:            "with OTEL_EXPORTER_OTLP_ENDPOINT",
			metricsEndpoint: "",
			genericEndpoint: "generic-endpoint:4317",
			opts:            []Option{},
		},
		{
			name:            "option overrides env vars",
			metricsEndpoint: "metrics-endpoint:4317",
			genericEndpoint: "generic-endpoint:4317",
			opts:            []Option{WithEndpoint("custom:4317")},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_ = os.Setenv("OTEL_EXPORTER_OTLP_METRICS_ENDPOINT", tt.metricsEndpoint)
			_ = os.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", tt.genericEndpoint)

			ctx := context.Background()
			mp, err := NewMeterProvider(ctx, tt.opts...)
			if err != nil {
				t.Fatalf("NewMeterProvider failed: %v", err)
			}
			if mp == nil {
				t.Fatal("expected non-nil meter provider")
			}
		})
	}
}

// TestSetHistogramBuckets tests runtime bucket reconfiguration.
func TestSetHistogramBuckets(t *testing.T) {
	originalMP := itelemetry.MeterProvider
	originalCnt := itelemetry.GenerateMetricTRPCSesgGoClientRequestCnt
	originalDur := itelemetry.GenerateMetricGenAIClientOperationDuration
	originalLen := itelemetry.GenerateMetricTRPCSesgGoSearchStringLength
	defer func() {
		itelemetry.MeterProvider = originalMP
		itelemetry.GenerateMetricTRPCSesgGoClientRequestCnt = originalCnt
		itelemetry.GenerateMetricGenAIClientOperationDuration = originalDur
		itelemetry.GenerateMetricTRPCSesgGoSearchStringLength = originalLen
	}()

	// Before initialization the histograms are nil.
	itelemetry.GenerateMetricGenAIClientOperationDuration = nil
	itelemetry.GenerateMetricTRPCSesgGoSearchStringLength = nil
	if err := SetHistogramBuckets(itelemetry.MetricGenAIClientOperationDuration, []float64{0.1, 1}); err == nil {
		t.Fatal("expected error before InitMeterProvider")
	}

	ctx := context.Background()
	mp, err := NewMeterProvider(ctx)
	if err != nil {
		t.Fatalf("failed to create meter provider: %v", err)
	}
	if err := InitMeterProvider(mp); err != nil {
		t.Fatalf("InitMeterProvider failed: %v", err)
	}

	if err := SetHistogramBuckets(itelemetry.MetricGenAIClientOperationDuration, []float64{0.1, 0.5, 1, 5}); err != nil {
		t.Errorf("SetHistogramBuckets on duration metric failed: %v", err)
	}
	if err := SetHistogramBuckets(itelemetry.MetricTRPCSesgGoSearchStringLength, []float64{32, 128, 512}); err != nil {
		t.Errorf("SetHistogramBuckets on length metric failed: %v", err)
	}
	if err := SetHistogramBuckets("no.such.metric", nil); err == nil {
		t.Error("expected error for unknown metric name")
	}
}
