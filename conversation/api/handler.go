package api

import (
	"net/http"
	"strconv"

	"github.com/Wakdeprathamesh-amber/Copilot-QA-Tool/conversation/repository"
	"github.com/Wakdeprathamesh-amber/Copilot-QA-Tool/conversation/service"

	"github.com/gin-gonic/gin"
)

// ConversationHandler handles conversation-related API endpoints
type ConversationHandler struct {
	service *service.ConversationService
}

// NewConversationHandler creates a new conversation handler
func NewConversationHandler(service *service.ConversationService) *ConversationHandler {
	return &ConversationHandler{service: service}
}

// RegisterRoutes registers the routes for the conversation handler
func (h *ConversationHandler) RegisterRoutes(router *gin.Engine) {
	convGroup := router.Group("/api/conversations")
	{
		convGroup.GET("", h.ListConversations)
		convGroup.GET("/filters", h.GetFilterOptions)
		convGroup.GET("/:id", h.GetConversation)
	}

	router.GET("/api/messages/:id/debug", h.GetMessageDebug)
}

// ListConversations returns a filtered, paginated conversation list
func (h *ConversationHandler) ListConversations(c *gin.Context) {
	page := intQuery(c, "page", 1)
	pageSize := intQuery(c, "pageSize", service.DefaultPageSize)

	filters := repository.Filters{
		Search:   c.Query("search"),
		Channels: c.QueryArray("channel"),
		DateFrom: c.Query("dateFrom"),
		DateTo:   c.Query("dateTo"),
	}

	result, err := h.service.List(c.Request.Context(), filters, page, pageSize)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": result})
}

// GetConversation returns one conversation, with its transcript when
// ?messages=true
func (h *ConversationHandler) GetConversation(c *gin.Context) {
	id := c.Param("id")
	includeMessages := c.Query("messages") == "true"

	conversation, err := h.service.Get(c.Request.Context(), id, includeMessages)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": conversation})
}

// GetFilterOptions returns the filter option catalog
func (h *ConversationHandler) GetFilterOptions(c *gin.Context) {
	catalog, err := h.service.FilterCatalog(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": catalog})
}

// GetMessageDebug returns the placeholder diagnostic payload for a message
func (h *ConversationHandler) GetMessageDebug(c *gin.Context) {
	c.JSON(http.StatusOK, h.service.MessageDebug(c.Param("id")))
}

// intQuery parses an integer query parameter, coercing absent or malformed
// values to the default
func intQuery(c *gin.Context, key string, defaultValue int) int {
	raw := c.Query(key)
	if raw == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return defaultValue
	}
	return value
}
