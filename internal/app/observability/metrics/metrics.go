package metrics

import (
	"context"
	"log"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// AppMetrics holds the application's metric instruments.
type AppMetrics struct {
	HTTPRequestsTotal        metric.Int64Counter
	HTTPRequestDuration      metric.Float64Histogram
	StoreOperationDuration   metric.Float64Histogram
	StoreOperationErrors     metric.Int64Counter
	EnrichmentCitiesSynced   metric.Int64Counter
	EnrichmentExternalCalls  metric.Int64Counter
	RouteSubmissionsTotal    metric.Int64Counter
	AdminLoginAttemptsTotal  metric.Int64Counter
}

var (
	appMetrics *AppMetrics
	once       sync.Once
)

// InitAppMetrics initializes the global metric instruments once, using
// the globally configured MeterProvider.
func InitAppMetrics() {
	once.Do(func() {
		meter := otel.GetMeterProvider().Meter("wanderbase")
		var err error
		m := &AppMetrics{}

		m.HTTPRequestsTotal, err = meter.Int64Counter(
			"http_requests_total",
			metric.WithDescription("Total number of HTTP requests completed"),
			metric.WithUnit("{request}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create http_requests_total: %v", err)
		}

		m.HTTPRequestDuration, err = meter.Float64Histogram(
			"http_request_duration_seconds",
			metric.WithDescription("Duration of HTTP requests in seconds"),
			metric.WithUnit("s"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create http_request_duration_seconds: %v", err)
		}

		m.StoreOperationDuration, err = meter.Float64Histogram(
			"store_operation_duration_seconds",
			metric.WithDescription("Duration of document store operations in seconds"),
			metric.WithUnit("s"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create store_operation_duration_seconds: %v", err)
		}

		m.StoreOperationErrors, err = meter.Int64Counter(
			"store_operation_errors_total",
			metric.WithDescription("Total number of document store operation errors"),
			metric.WithUnit("{error}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create store_operation_errors_total: %v", err)
		}

		m.EnrichmentCitiesSynced, err = meter.Int64Counter(
			"enrichment_cities_synced_total",
			metric.WithDescription("Total number of cities synced by the enrichment job"),
			metric.WithUnit("{city}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create enrichment_cities_synced_total: %v", err)
		}

		m.EnrichmentExternalCalls, err = meter.Int64Counter(
			"enrichment_external_calls_total",
			metric.WithDescription("Total number of outbound places/genai calls made by the enrichment job"),
			metric.WithUnit("{call}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create enrichment_external_calls_total: %v", err)
		}

		m.RouteSubmissionsTotal, err = meter.Int64Counter(
			"route_submissions_total",
			metric.WithDescription("Total number of trip wizard submissions"),
			metric.WithUnit("{route}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create route_submissions_total: %v", err)
		}

		m.AdminLoginAttemptsTotal, err = meter.Int64Counter(
			"admin_login_attempts_total",
			metric.WithDescription("Total number of admin login attempts"),
			metric.WithUnit("{attempt}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create admin_login_attempts_total: %v", err)
		}

		appMetrics = m
	})
}

// Get returns the globally initialized AppMetrics instance. Panics if
// InitAppMetrics was not called first.
func Get() *AppMetrics {
	if appMetrics == nil {
		panic("metrics instruments not initialized. Call metrics.InitAppMetrics() first.")
	}
	return appMetrics
}

// Recording helpers for code below the HTTP layer. They drop the
// measurement when InitAppMetrics has not run, so repositories and
// services record without caring about meter setup and unit tests never
// need to initialize it.

// RecordStoreOperation records the latency of one document store call.
func RecordStoreOperation(ctx context.Context, collection, op string, elapsed time.Duration) {
	if appMetrics == nil {
		return
	}
	appMetrics.StoreOperationDuration.Record(ctx, elapsed.Seconds(), metric.WithAttributes(
		attribute.String("collection", collection),
		attribute.String("operation", op),
	))
}

// RecordStoreError counts a failed document store call.
func RecordStoreError(ctx context.Context, collection, op string) {
	if appMetrics == nil {
		return
	}
	appMetrics.StoreOperationErrors.Add(ctx, 1, metric.WithAttributes(
		attribute.String("collection", collection),
		attribute.String("operation", op),
	))
}

// RecordCitySynced counts one city fully synced by the enrichment job.
func RecordCitySynced(ctx context.Context) {
	if appMetrics == nil {
		return
	}
	appMetrics.EnrichmentCitiesSynced.Add(ctx, 1)
}

// RecordExternalCall counts one outbound call to a named collaborator.
func RecordExternalCall(ctx context.Context, service string) {
	if appMetrics == nil {
		return
	}
	appMetrics.EnrichmentExternalCalls.Add(ctx, 1, metric.WithAttributes(
		attribute.String("service", service),
	))
}

// RecordRouteSubmission counts one accepted trip wizard submission.
func RecordRouteSubmission(ctx context.Context) {
	if appMetrics == nil {
		return
	}
	appMetrics.RouteSubmissionsTotal.Add(ctx, 1)
}

// RecordAdminLogin counts one admin login attempt by outcome.
func RecordAdminLogin(ctx context.Context, success bool) {
	if appMetrics == nil {
		return
	}
	outcome := "failure"
	if success {
		outcome = "success"
	}
	appMetrics.AdminLoginAttemptsTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("outcome", outcome),
	))
}
