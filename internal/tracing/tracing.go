// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package tracing builds the OpenTelemetry tracer provider for the bootenv binary.
package tracing

import (
	"context"
	"fmt"
	"io"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// Exporter names accepted by [New].
const (
	None   = "none"
	Stdout = "stdout"
	OTLP   = "otlp"
)

// Exporters lists every accepted exporter name.
var Exporters = []string{None, Stdout, OTLP}

// Config selects and configures a span exporter.
type Config struct {
	ServiceName string
	Exporter    string

	// Writer receives spans when Exporter is [Stdout].
	Writer io.Writer

	// Endpoint is the collector address when Exporter is [OTLP].
	Endpoint string
}

// UnknownExporterError is returned by [New] for an unrecognized exporter name.
type UnknownExporterError struct {
	Name string
}

// Error implements the [builtin.error] interface.
func (e UnknownExporterError) Error() string {
	return fmt.Sprintf("unknown trace exporter %q: expected one of %s", e.Name, strings.Join(Exporters, ", "))
}

// ShutdownFunc flushes and stops a tracer provider.
type ShutdownFunc func(context.Context) error

// New returns a tracer provider for cfg and registers it, together with
// the W3C propagators, as the global provider. The returned ShutdownFunc
// must be called to flush pending spans.
func New(ctx context.Context, cfg Config) (trace.TracerProvider, ShutdownFunc, error) {
	var exp sdktrace.SpanExporter
	switch cfg.Exporter {
	case "", None:
		tp := noop.NewTracerProvider()
		return tp, func(context.Context) error { return nil }, nil
	case Stdout:
		opts := []stdouttrace.Option{stdouttrace.WithPrettyPrint()}
		if cfg.Writer != nil {
			opts = append(opts, stdouttrace.WithWriter(cfg.Writer))
		}
		e, err := stdouttrace.New(opts...)
		if err != nil {
			return nil, nil, err
		}
		exp = e
	case OTLP:
		opts := []otlptracegrpc.Option{otlptracegrpc.WithInsecure()}
		if cfg.Endpoint != "" {
			opts = append(opts, otlptracegrpc.WithEndpoint(cfg.Endpoint))
		}
		e, err := otlptracegrpc.New(ctx, opts...)
		if err != nil {
			return nil, nil, err
		}
		exp = e
	default:
		return nil, nil, UnknownExporterError{Name: cfg.Exporter}
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithResource(resource.NewSchemaless(
			attribute.String("service.name", cfg.ServiceName),
		)),
		sdktrace.WithBatcher(exp),
	)
	otel.SetTracerProvider(tp)
	// need to set this so traces can propagate
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(propagation.TraceContext{}, propagation.Baggage{}))

	return tp, tp.Shutdown, nil
}
