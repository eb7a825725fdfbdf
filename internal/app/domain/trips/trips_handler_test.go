package trips

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/wanderbase/wanderbase/internal/app/common"
	"github.com/wanderbase/wanderbase/internal/app/models"
	"github.com/wanderbase/wanderbase/internal/docstore"
)

// unconfiguredTemplates stands in for a store with no credentials.
type unconfiguredTemplates struct{}

func (unconfiguredTemplates) Create(context.Context, models.TripTemplate) (*models.TripTemplate, error) {
	return nil, &common.ConfigurationError{Missing: "DOCSTORE_ENDPOINT"}
}

func (unconfiguredTemplates) GetByID(context.Context, string) (*models.TripTemplate, error) {
	return nil, &common.ConfigurationError{Missing: "DOCSTORE_ENDPOINT"}
}

func (unconfiguredTemplates) Update(context.Context, string, models.TripTemplateUpdate, string) (*models.TripTemplate, error) {
	return nil, &common.ConfigurationError{Missing: "DOCSTORE_ENDPOINT"}
}

func (unconfiguredTemplates) List(context.Context, models.TripFilter) ([]models.TripTemplate, error) {
	return nil, &common.ConfigurationError{Missing: "DOCSTORE_ENDPOINT"}
}

func (unconfiguredTemplates) Delete(context.Context, string, string) error {
	return &common.ConfigurationError{Missing: "DOCSTORE_ENDPOINT"}
}

func newHandlerEngine(templates TemplateRepository, trips DefaultTripRepository) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewHandler(trips, templates, zap.NewNop())
	r := gin.New()
	r.GET("/api/v1/trips", h.HandlePublicTemplates)
	r.GET("/admin/trip-templates", h.HandleListTemplates)
	r.GET("/admin/default-trips/:id", h.HandleGetTrip)
	return r
}

func TestPublicTemplatesDegradeWhenUnconfigured(t *testing.T) {
	store := docstore.NewMemoryProvider()
	r := newHandlerEngine(unconfiguredTemplates{}, NewDefaultTripRepository(store, zap.NewNop()))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/trips", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, "[]", w.Body.String())
}

func TestPublicTemplatesOnlyCuratedEnabled(t *testing.T) {
	store := docstore.NewMemoryProvider()
	templates := NewTemplateRepository(store, zap.NewNop())
	ctx := context.Background()

	_, err := templates.Create(ctx, models.TripTemplate{Region: "alps", Name: "Visible", Enabled: true, IsCurated: true})
	require.NoError(t, err)
	_, err = templates.Create(ctx, models.TripTemplate{Region: "alps", Name: "Hidden", Enabled: false, IsCurated: true})
	require.NoError(t, err)
	_, err = templates.Create(ctx, models.TripTemplate{Region: "alps", Name: "Uncurated", Enabled: true})
	require.NoError(t, err)

	r := newHandlerEngine(templates, NewDefaultTripRepository(store, zap.NewNop()))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/trips", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Visible")
	assert.NotContains(t, w.Body.String(), "Hidden")
	assert.NotContains(t, w.Body.String(), "Uncurated")
}

func TestAdminTemplateListSurfacesErrors(t *testing.T) {
	store := docstore.NewMemoryProvider()
	r := newHandlerEngine(unconfiguredTemplates{}, NewDefaultTripRepository(store, zap.NewNop()))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin/trip-templates", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestGetTripNotFound(t *testing.T) {
	store := docstore.NewMemoryProvider()
	r := newHandlerEngine(NewTemplateRepository(store, zap.NewNop()), NewDefaultTripRepository(store, zap.NewNop()))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin/default-trips/ghost", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
}
