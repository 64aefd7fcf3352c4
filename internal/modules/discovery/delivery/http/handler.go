package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	discoveryDto "github.com/visionmates/api/internal/modules/discovery/dto"
	discovery "github.com/visionmates/api/internal/modules/discovery/service"
	"github.com/visionmates/api/pkg/response"
	"github.com/visionmates/api/pkg/validator"
)

type DiscoveryHandler struct {
	service discovery.DiscoveryService
}

func NewDiscoveryHandler(service discovery.DiscoveryService) *DiscoveryHandler {
	return &DiscoveryHandler{service: service}
}

func (h *DiscoveryHandler) Discover(c *gin.Context) {
	var query discoveryDto.DiscoverQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	page, err := h.service.GetPage(c.Request.Context(), query)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, page)
}
