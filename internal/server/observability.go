package server

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/wanderbase/wanderbase/internal/app/observability/metrics"
	"github.com/wanderbase/wanderbase/internal/app/observability/tracer"
)

// ShutdownFunc tears down the tracer and meter providers.
type ShutdownFunc func(context.Context) error

// InitObservability wires the OTel providers and creates the app's
// metric instruments. Must run before SetupRouter so the request
// middleware finds the instruments.
func InitObservability(serviceName, metricsAddr string, logger *zap.Logger) (ShutdownFunc, error) {
	otelShutdown, err := tracer.InitOtelProviders(serviceName, metricsAddr)
	if err != nil {
		return nil, fmt.Errorf("otel providers: %w", err)
	}

	metrics.InitAppMetrics()
	logger.Info("Observability initialized", zap.String("metrics_endpoint", metricsAddr+"/metrics"))

	return otelShutdown, nil
}
