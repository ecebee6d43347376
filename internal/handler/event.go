package handler

import (
	"net/http"

	"alumnihub/internal/model"
	"alumnihub/internal/service"

	"github.com/gin-gonic/gin"
)

// EventHandler handles event listing HTTP requests
type EventHandler struct {
	events *service.EventService
}

// NewEventHandler creates a new event handler
func NewEventHandler(events *service.EventService) *EventHandler {
	return &EventHandler{events: events}
}

// Create handles POST /api/events (multipart, optional image)
func (h *EventHandler) Create(c *gin.Context) {
	var form model.EventForm
	if err := c.ShouldBind(&form); err != nil {
		c.JSON(http.StatusBadRequest, model.NewErrorResponse(err.Error(), ""))
		return
	}

	image, err := c.FormFile("image")
	if err != nil {
		image = nil
	}

	event, err := h.events.Create(c.Request.Context(), &form, image)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, event)
}

// List handles GET /api/events
func (h *EventHandler) List(c *gin.Context) {
	events, err := h.events.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, events)
}

// Get handles GET /api/events/:id
func (h *EventHandler) Get(c *gin.Context) {
	event, err := h.events.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, event)
}

// Update handles PATCH /api/events/:id
func (h *EventHandler) Update(c *gin.Context) {
	var form model.EventForm
	if err := c.ShouldBind(&form); err != nil {
		c.JSON(http.StatusBadRequest, model.NewErrorResponse(err.Error(), ""))
		return
	}

	image, err := c.FormFile("image")
	if err != nil {
		image = nil
	}

	event, err := h.events.Update(c.Request.Context(), c.Param("id"), &form, image)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, event)
}

// Delete handles DELETE /api/events/:id
func (h *EventHandler) Delete(c *gin.Context) {
	if err := h.events.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, model.NewSuccessResponse("Event removed", nil))
}
