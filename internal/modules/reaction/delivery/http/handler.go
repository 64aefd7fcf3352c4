package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/visionmates/api/internal/entity"
	reactionDto "github.com/visionmates/api/internal/modules/reaction/dto"
	reaction "github.com/visionmates/api/internal/modules/reaction/service"
	"github.com/visionmates/api/pkg/response"
	"github.com/visionmates/api/pkg/validator"
)

type ReactionHandler struct {
	service reaction.ReactionService
}

func NewReactionHandler(service reaction.ReactionService) *ReactionHandler {
	return &ReactionHandler{service: service}
}

func (h *ReactionHandler) ToggleReaction(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	var req reactionDto.ReactionToggleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	result, err := h.service.Toggle(c.Request.Context(), userID, req)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *ReactionHandler) GetReactionStatus(c *gin.Context) {
	targetType := c.Param("target_type")
	switch targetType {
	case entity.TargetProject, entity.TargetProgressUpdate, entity.TargetComment, entity.TargetMessage:
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid target type"})
		return
	}

	targetID, err := uuid.Parse(c.Param("target_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid target id"})
		return
	}

	status, err := h.service.Status(c.Request.Context(), response.GetOptionalUserID(c), targetID, targetType)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, status)
}
