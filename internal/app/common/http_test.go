package common

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func respond(err error) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	RespondError(c, err)
	return w
}

func TestRespondErrorStatusMapping(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{
			name:   "missing document",
			err:    &NotFoundError{Collection: "routes", ID: "r1"},
			status: http.StatusNotFound,
		},
		{
			name:   "wrapped missing document",
			err:    fmt.Errorf("updating: %w", &NotFoundError{Collection: "routes", ID: "r1"}),
			status: http.StatusNotFound,
		},
		{
			name:   "upstream failure",
			err:    &ExternalAPIError{Service: "tripadvisor", Endpoint: "/location/search", Status: 429},
			status: http.StatusBadGateway,
		},
		{
			name:   "storage failure",
			err:    &StorageError{Collection: "routes", Op: "CreateItem", Err: errors.New("boom")},
			status: http.StatusInternalServerError,
		},
		{
			name:   "missing configuration",
			err:    &ConfigurationError{Missing: "POSTGRES_PASSWORD"},
			status: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := respond(tt.err)
			assert.Equal(t, tt.status, w.Code)
			assert.Contains(t, w.Body.String(), "error")
		})
	}
}

func TestBoolQuery(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/?enabled=true&broken=maybe", nil)

	enabled := BoolQuery(c, "enabled")
	if assert.NotNil(t, enabled) {
		assert.True(t, *enabled)
	}
	assert.Nil(t, BoolQuery(c, "missing"))
	assert.Nil(t, BoolQuery(c, "broken"))
}
