package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	likeDto "github.com/visionmates/api/internal/modules/like/dto"
	like "github.com/visionmates/api/internal/modules/like/service"
	"github.com/visionmates/api/pkg/response"
	"github.com/visionmates/api/pkg/validator"
)

type LikeHandler struct {
	service like.LikeService
}

func NewLikeHandler(service like.LikeService) *LikeHandler {
	return &LikeHandler{service: service}
}

func (h *LikeHandler) ToggleLike(c *gin.Context) {
	h.toggle(c, h.service.ToggleLike)
}

func (h *LikeHandler) ToggleHide(c *gin.Context) {
	h.toggle(c, h.service.ToggleHide)
}

func (h *LikeHandler) toggle(c *gin.Context, fn func(ctx context.Context, userID, projectID uuid.UUID) (*likeDto.ToggleResult, error)) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	projectID, err := uuid.Parse(c.Param("project_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid project id"})
		return
	}

	result, err := fn(c.Request.Context(), userID, projectID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *LikeHandler) ListLiked(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	var query likeDto.LikedQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	liked, err := h.service.ListLiked(c.Request.Context(), userID, query)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, liked)
}
