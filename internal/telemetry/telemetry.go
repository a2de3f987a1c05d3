// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package telemetry sets up OpenTelemetry tracing for USPTO API calls.
package telemetry

import (
	"context"
	"fmt"
	"io"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/pdiddy/uspto-lookup/pkg/types"
)

// Exporter names accepted in TelemetryConfig.Exporter.
const (
	ExporterNone   = "none"
	ExporterStdout = "stdout"
)

// ShutdownFunc flushes pending spans and releases the provider.
type ShutdownFunc func(context.Context) error

// Setup installs a global tracer provider for cfg and returns a tracer named
// after the service. The stdout exporter writes pretty-printed spans to w.
func Setup(cfg types.TelemetryConfig, w io.Writer) (trace.Tracer, ShutdownFunc, error) {
	switch cfg.Exporter {
	case "", ExporterNone:
		tp := noop.NewTracerProvider()
		otel.SetTracerProvider(tp)
		return tp.Tracer(cfg.ServiceName), func(context.Context) error { return nil }, nil
	case ExporterStdout:
	default:
		return nil, nil, fmt.Errorf("unsupported trace exporter %q", cfg.Exporter)
	}

	exp, err := stdouttrace.New(stdouttrace.WithWriter(w), stdouttrace.WithPrettyPrint())
	if err != nil {
		return nil, nil, fmt.Errorf("creating stdout exporter: %w", err)
	}

	res, err := resource.Merge(
		resource.Default(),
		resource.NewSchemaless(attribute.String("service.name", cfg.ServiceName)),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("building resource: %w", err)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exp),
		sdktrace.WithResource(res),
	)
	otel.SetTracerProvider(tp)

	return tp.Tracer(cfg.ServiceName), tp.Shutdown, nil
}
