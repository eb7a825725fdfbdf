package tripadvisor

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/wanderbase/wanderbase/internal/app/common"
	"github.com/wanderbase/wanderbase/internal/pkg/config"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(config.TripAdvisorConfig{APIKey: "test-key", BaseURL: srv.URL}, zap.NewNop())
}

func TestSearchAttractionsMapsAndTitleCases(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/location/search", r.URL.Path)
		assert.Equal(t, "test-key", r.URL.Query().Get("key"))
		assert.Equal(t, "Lisbon, Portugal", r.URL.Query().Get("searchQuery"))
		assert.Equal(t, "attractions", r.URL.Query().Get("category"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data":[{
			"location_id":"123",
			"name":"tram 28 ride",
			"address_obj":{"street1":"Rua Central 1","city":"Lisbon","country":"Portugal","postalcode":"1100","address_string":"Rua Central 1, Lisbon"}
		}]}`))
	}))

	activities, err := client.SearchAttractions(context.Background(), "Lisbon", "Portugal")
	require.NoError(t, err)
	require.Len(t, activities, 1)

	got := activities[0]
	assert.Equal(t, "123", got.ID)
	assert.Equal(t, "Tram 28 Ride", got.Name)
	require.NotNil(t, got.Address)
	assert.Equal(t, "Rua Central 1", got.Address.Street)
	assert.Equal(t, "1100", got.Address.Postcode)
	assert.Equal(t, "Rua Central 1, Lisbon", got.Address.Formatted)
}

func TestLocationDetailsParsesAndCaches(t *testing.T) {
	var calls atomic.Int32
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		assert.Equal(t, "/location/123/details", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"location_id":"123",
			"name":"tram 28",
			"description":"A rattling ride through the old town.",
			"rating":"4.5",
			"num_reviews":"1200",
			"price_level":"$",
			"latitude":"38.71",
			"longitude":"-9.13",
			"hours":{"weekday_text":["Mon: 6am-11pm"]},
			"amenities":["Guided tours"],
			"category":{"name":"Sightseeing"}
		}`))
	}))

	detail, err := client.LocationDetails(context.Background(), "123")
	require.NoError(t, err)
	assert.Equal(t, "Tram 28", detail.Name)
	assert.Equal(t, 4.5, detail.Rating)
	assert.Equal(t, 1200, detail.ReviewCount)
	assert.Equal(t, "Sightseeing", detail.Category)
	assert.Equal(t, []string{"Mon: 6am-11pm"}, detail.Hours)
	require.NotNil(t, detail.Coordinates)
	assert.Equal(t, 38.71, detail.Coordinates.Latitude)

	// second lookup served from cache
	again, err := client.LocationDetails(context.Background(), "123")
	require.NoError(t, err)
	assert.Equal(t, detail.Name, again.Name)
	assert.Equal(t, int32(1), calls.Load())
}

func TestLocationPhotosPrefersLarge(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/location/123/photos", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data":[
			{"images":{"large":{"url":"https://img/large.jpg"},"original":{"url":"https://img/orig.jpg"}}},
			{"images":{"original":{"url":"https://img/orig2.jpg"}}},
			{"images":{}}
		]}`))
	}))

	photos, err := client.LocationPhotos(context.Background(), "123")
	require.NoError(t, err)
	assert.Equal(t, []string{"https://img/large.jpg", "https://img/orig2.jpg"}, photos)
}

func TestNon2xxBecomesExternalAPIError(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))

	_, err := client.SearchAttractions(context.Background(), "Lisbon", "Portugal")
	require.Error(t, err)

	var apiErr *common.ExternalAPIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, "tripadvisor", apiErr.Service)
	assert.Equal(t, http.StatusTooManyRequests, apiErr.Status)
}

func TestMalformedBodyBecomesExternalAPIError(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>not json</html>"))
	}))

	_, err := client.LocationPhotos(context.Background(), "123")
	var apiErr *common.ExternalAPIError
	require.True(t, errors.As(err, &apiErr))
}
