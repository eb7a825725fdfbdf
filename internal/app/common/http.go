package common

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// RespondError converts a repository error into the JSON error body the
// admin console expects. Matching is on the taxonomy types only: missing
// documents map to 404, upstream failures to 502, everything else is a
// plain 500.
func RespondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case IsNotFound(err):
		status = http.StatusNotFound
	case IsExternalAPI(err):
		status = http.StatusBadGateway
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

// BoolQuery parses an optional boolean query parameter. Absent or
// unparsable values mean "no constraint".
func BoolQuery(c *gin.Context, name string) *bool {
	raw := c.Query(name)
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return nil
	}
	return &v
}
