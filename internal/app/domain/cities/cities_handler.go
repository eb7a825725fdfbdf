package cities

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/wanderbase/wanderbase/internal/app/common"
	"github.com/wanderbase/wanderbase/internal/app/models"
)

type Handler struct {
	logger *zap.Logger
	repo   Repository
}

func NewHandler(repo Repository, logger *zap.Logger) *Handler {
	return &Handler{logger: logger, repo: repo}
}

func cityFilterFromQuery(c *gin.Context) models.CityFilter {
	limit, _ := strconv.Atoi(c.Query("limit"))
	return models.CityFilter{
		Country: c.Query("country"),
		Limit:   limit,
	}
}

// HandlePublicList serves city activity lists to the marketing site,
// degrading to an empty list when the store is unconfigured.
func (h *Handler) HandlePublicList(c *gin.Context) {
	list, err := h.repo.List(c.Request.Context(), cityFilterFromQuery(c))
	if err != nil {
		if common.IsConfiguration(err) {
			h.logger.Warn("Cities unavailable, store not configured")
			c.JSON(http.StatusOK, []models.City{})
			return
		}
		common.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *Handler) HandleList(c *gin.Context) {
	list, err := h.repo.List(c.Request.Context(), cityFilterFromQuery(c))
	if err != nil {
		common.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *Handler) HandleCreate(c *gin.Context) {
	var city models.City
	if err := c.ShouldBindJSON(&city); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid city payload"})
		return
	}
	if city.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "city name is required"})
		return
	}

	created, err := h.repo.Create(c.Request.Context(), city)
	if err != nil {
		common.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *Handler) HandleGet(c *gin.Context) {
	city, err := h.repo.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		common.RespondError(c, err)
		return
	}
	if city == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "city not found"})
		return
	}
	c.JSON(http.StatusOK, city)
}

func (h *Handler) HandleDelete(c *gin.Context) {
	if err := h.repo.Delete(c.Request.Context(), c.Param("id")); err != nil {
		common.RespondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
