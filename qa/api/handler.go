package api

import (
	"net/http"

	apperrors "github.com/Wakdeprathamesh-amber/Copilot-QA-Tool/pkg/errors"
	"github.com/Wakdeprathamesh-amber/Copilot-QA-Tool/qa/models"
	"github.com/Wakdeprathamesh-amber/Copilot-QA-Tool/qa/service"

	"github.com/gin-gonic/gin"
)

// AssessmentHandler handles QA assessment API endpoints
type AssessmentHandler struct {
	service *service.AssessmentService
}

// NewAssessmentHandler creates a new assessment handler
func NewAssessmentHandler(service *service.AssessmentService) *AssessmentHandler {
	return &AssessmentHandler{service: service}
}

// RegisterRoutes registers the routes for the assessment handler
func (h *AssessmentHandler) RegisterRoutes(router *gin.Engine) {
	qaGroup := router.Group("/api/qa-assessments")
	{
		qaGroup.GET("/tags/all", h.GetAllTags)
		qaGroup.POST("/bulk/rating", h.SetBulkRating)
		qaGroup.POST("/bulk/tags", h.AddBulkTags)
		qaGroup.GET("/:id", h.GetAssessment)
		qaGroup.POST("/:id/rating", h.SetRating)
		qaGroup.POST("/:id/tags", h.AddTags)
		qaGroup.DELETE("/:id/tags", h.RemoveTags)
		qaGroup.POST("/:id/notes", h.SetNotes)
		qaGroup.PATCH("/:id", h.UpdateAssessment)
	}
}

// GetAssessment returns the assessment for a conversation. Conversations
// without one yield a null data field, not a 404.
func (h *AssessmentHandler) GetAssessment(c *gin.Context) {
	assessment := h.service.Get(c.Param("id"))
	if assessment == nil {
		c.JSON(http.StatusOK, gin.H{"data": nil})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": assessment})
}

// SetRating records a reviewer rating for a conversation
func (h *AssessmentHandler) SetRating(c *gin.Context) {
	var body struct {
		Rating string `json:"rating"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.Error(apperrors.NewBadRequestError("INVALID_BODY", "Invalid request body"))
		return
	}

	assessment := h.service.SetRating(c.Param("id"), body.Rating)
	c.JSON(http.StatusOK, gin.H{"data": assessment})
}

// AddTags merges tags into a conversation's assessment
func (h *AssessmentHandler) AddTags(c *gin.Context) {
	var body struct {
		Tags []string `json:"tags"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.Error(apperrors.NewBadRequestError("INVALID_BODY", "Invalid request body"))
		return
	}

	h.service.AddTags(c.Param("id"), body.Tags)
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// RemoveTags removes tags from a conversation's assessment
func (h *AssessmentHandler) RemoveTags(c *gin.Context) {
	var body struct {
		Tags []string `json:"tags"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.Error(apperrors.NewBadRequestError("INVALID_BODY", "Invalid request body"))
		return
	}

	h.service.RemoveTags(c.Param("id"), body.Tags)
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// SetNotes replaces the reviewer notes on a conversation's assessment
func (h *AssessmentHandler) SetNotes(c *gin.Context) {
	var body struct {
		Notes string `json:"notes"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.Error(apperrors.NewBadRequestError("INVALID_BODY", "Invalid request body"))
		return
	}

	assessment := h.service.SetNotes(c.Param("id"), body.Notes)
	c.JSON(http.StatusOK, gin.H{"data": assessment})
}

// UpdateAssessment applies a partial update to a conversation's assessment
func (h *AssessmentHandler) UpdateAssessment(c *gin.Context) {
	var update models.AssessmentUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		c.Error(apperrors.NewBadRequestError("INVALID_BODY", "Invalid request body"))
		return
	}

	assessment := h.service.Update(c.Param("id"), update)
	c.JSON(http.StatusOK, gin.H{"data": assessment})
}

// GetAllTags returns the sorted distinct tags across every assessment
func (h *AssessmentHandler) GetAllTags(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"data": h.service.AllTags()})
}

// SetBulkRating applies one rating to many conversations
func (h *AssessmentHandler) SetBulkRating(c *gin.Context) {
	var body struct {
		ConversationIDs []string `json:"conversationIds"`
		Rating          string   `json:"rating"`
	}
	if err := c.ShouldBindJSON(&body); err != nil || len(body.ConversationIDs) == 0 {
		c.Error(apperrors.NewBadRequestError("INVALID_BODY", "Invalid request body"))
		return
	}

	assessments := h.service.SetBulkRating(body.ConversationIDs, body.Rating)
	c.JSON(http.StatusOK, gin.H{"data": assessments})
}

// AddBulkTags merges the same tag set into many conversations
func (h *AssessmentHandler) AddBulkTags(c *gin.Context) {
	var body struct {
		ConversationIDs []string `json:"conversationIds"`
		Tags            []string `json:"tags"`
	}
	if err := c.ShouldBindJSON(&body); err != nil || len(body.ConversationIDs) == 0 {
		c.Error(apperrors.NewBadRequestError("INVALID_BODY", "Invalid request body"))
		return
	}

	assessments := h.service.AddBulkTags(body.ConversationIDs, body.Tags)
	c.JSON(http.StatusOK, gin.H{"data": assessments})
}
