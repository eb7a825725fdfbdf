package metrics

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

// Runs first: before InitAppMetrics every helper must silently drop the
// measurement instead of panicking.
func TestRecordHelpersBeforeInit(t *testing.T) {
	ctx := context.Background()

	assert.NotPanics(t, func() {
		RecordStoreOperation(ctx, "routes", "CreateItem", time.Millisecond)
		RecordStoreError(ctx, "routes", "CreateItem")
		RecordCitySynced(ctx)
		RecordExternalCall(ctx, "places")
		RecordRouteSubmission(ctx)
		RecordAdminLogin(ctx, true)
	})
}

func TestInstrumentsRecordThroughHelpers(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	otel.SetMeterProvider(sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader)))

	InitAppMetrics()
	require.NotNil(t, Get())

	ctx := context.Background()
	RecordStoreOperation(ctx, "routes", "CreateItem", 5*time.Millisecond)
	RecordStoreError(ctx, "routes", "CreateItem")
	RecordCitySynced(ctx)
	RecordExternalCall(ctx, "places")
	RecordRouteSubmission(ctx)
	RecordAdminLogin(ctx, false)

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(ctx, &rm))
	require.NotEmpty(t, rm.ScopeMetrics)

	recorded := map[string]bool{}
	for _, scope := range rm.ScopeMetrics {
		for _, m := range scope.Metrics {
			recorded[m.Name] = true
		}
	}
	assert.True(t, recorded["store_operation_duration_seconds"])
	assert.True(t, recorded["store_operation_errors_total"])
	assert.True(t, recorded["enrichment_cities_synced_total"])
	assert.True(t, recorded["enrichment_external_calls_total"])
	assert.True(t, recorded["route_submissions_total"])
	assert.True(t, recorded["admin_login_attempts_total"])
}
