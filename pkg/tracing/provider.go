package tracing

import (
	"context"

	"github.com/Gobusters/ectologger"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/Ramsey-B/laurel/pkg/tracing/exporters"
)

// Config selects the span exporter and identifies the service on exported
// spans.
type Config struct {
	ServiceName  string
	Version      string
	Enabled      bool
	Exporter     string // "console" or "otlp"
	OTLPEndpoint string
}

// Init installs the global tracer provider and the package tracer. The
// returned shutdown flushes pending spans; it is a no-op when tracing is
// disabled.
func Init(ctx context.Context, cfg Config, logger ectologger.Logger) (func(context.Context) error, error) {
	if !cfg.Enabled {
		return func(context.Context) error { return nil }, nil
	}

	var exporter sdktrace.SpanExporter
	switch cfg.Exporter {
	case "otlp":
		otlpCfg := exporters.DefaultOTLPConfig()
		otlpCfg.Endpoint = cfg.OTLPEndpoint
		exp, err := exporters.NewOTLPExporter(ctx, otlpCfg)
		if err != nil {
			return nil, err
		}
		exporter = exp
	default:
		exporter = &exporters.ConsoleExporter{}
	}

	res, err := resource.New(ctx, resource.WithAttributes(
		attribute.String("service.name", cfg.ServiceName),
		attribute.String("service.version", cfg.Version),
	))
	if err != nil {
		logger.WithError(err).Warn("Failed to build tracing resource")
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.TraceContext{})
	SetTracer(tp.Tracer(cfg.ServiceName))

	logger.WithFields(map[string]any{
		"exporter": cfg.Exporter,
		"service":  cfg.ServiceName,
	}).Info("Tracing initialized")

	return tp.Shutdown, nil
}
