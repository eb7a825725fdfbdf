package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func strPtr(s string) *string { return &s }
func intPtr(n int) *int       { return &n }
func boolPtr(b bool) *bool    { return &b }

func TestNextUpdateTime(t *testing.T) {
	t.Run("advances past a stale stamp", func(t *testing.T) {
		prev := time.Now().UTC().Add(-time.Minute)
		next := NextUpdateTime(prev)
		assert.True(t, next.After(prev))
	})

	t.Run("strictly increases even for a future stamp", func(t *testing.T) {
		prev := time.Now().UTC().Add(time.Hour)
		next := NextUpdateTime(prev)
		assert.True(t, next.After(prev))
		assert.Equal(t, prev.Add(time.Millisecond), next)
	})
}

func TestRouteUpdateApply(t *testing.T) {
	route := Route{
		ID:     "r1",
		Region: "alps",
		Notes:  "call back on Monday",
		Email:  "traveler@example.com",
		Status: RouteStatusNew,
	}

	update := RouteUpdate{
		Status: strPtr(RouteStatusConfirmed),
		Notes:  strPtr("deposit received"),
	}
	update.Apply(&route)

	assert.Equal(t, RouteStatusConfirmed, route.Status)
	assert.Equal(t, "deposit received", route.Notes)
	// omitted fields are untouched
	assert.Equal(t, "alps", route.Region)
	assert.Equal(t, "traveler@example.com", route.Email)
}

func TestRouteUpdateIsEmpty(t *testing.T) {
	assert.True(t, RouteUpdate{}.IsEmpty())
	assert.False(t, RouteUpdate{Status: strPtr("contacted")}.IsEmpty())
}

func TestTripTemplateUpdateApplySkipsCuration(t *testing.T) {
	order := 3
	tpl := TripTemplate{
		Name:         "Dolomites loop",
		Enabled:      true,
		IsCurated:    true,
		CuratedOrder: &order,
	}

	update := TripTemplateUpdate{
		Name:         strPtr("Dolomites grand loop"),
		IsCurated:    boolPtr(false),
		CuratedOrder: intPtr(9),
	}
	update.Apply(&tpl)

	assert.Equal(t, "Dolomites grand loop", tpl.Name)
	// the curation pair is resolved by the repository, not the merge
	assert.True(t, tpl.IsCurated)
	assert.Equal(t, 3, *tpl.CuratedOrder)
}

func TestRouteCardUpdateApply(t *testing.T) {
	card := RouteCard{
		Region:         "iberia",
		Name:           "Iberian coast",
		FeaturedCities: []string{"Lisbon", "Porto"},
		Enabled:        true,
		Order:          2,
	}

	update := RouteCardUpdate{
		FeaturedCities: &[]string{"Lisbon", "Seville"},
		Enabled:        boolPtr(false),
	}
	update.Apply(&card)

	assert.Equal(t, []string{"Lisbon", "Seville"}, card.FeaturedCities)
	assert.False(t, card.Enabled)
	assert.Equal(t, "iberia", card.Region)
	assert.Equal(t, 2, card.Order)
}
