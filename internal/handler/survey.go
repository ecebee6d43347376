package handler

import (
	"net/http"

	"alumnihub/internal/middleware"
	"alumnihub/internal/model"
	"alumnihub/internal/service"
	"alumnihub/pkg/util"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SurveyHandler handles survey listing HTTP requests
type SurveyHandler struct {
	surveys *service.SurveyService
}

// NewSurveyHandler creates a new survey handler
func NewSurveyHandler(surveys *service.SurveyService) *SurveyHandler {
	return &SurveyHandler{surveys: surveys}
}

// Create handles POST /api/surveys (multipart, optional image)
func (h *SurveyHandler) Create(c *gin.Context) {
	var form model.SurveyForm
	if err := c.ShouldBind(&form); err != nil {
		c.JSON(http.StatusBadRequest, model.NewErrorResponse(err.Error(), ""))
		return
	}

	image, err := c.FormFile("image")
	if err != nil {
		image = nil
	}

	createdBy := primitive.NilObjectID
	if userID, ok := middleware.UserID(c); ok {
		if id, err := util.ParseObjectID(userID); err == nil {
			createdBy = id
		}
	}

	survey, err := h.surveys.Create(c.Request.Context(), &form, image, createdBy)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, model.NewSuccessResponse("Survey created successfully", survey))
}

// List handles GET /api/surveys
func (h *SurveyHandler) List(c *gin.Context) {
	surveys, err := h.surveys.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": surveys})
}

// Get handles GET /api/surveys/:id
func (h *SurveyHandler) Get(c *gin.Context) {
	survey, err := h.surveys.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": survey})
}

// Update handles PATCH /api/surveys/:id
func (h *SurveyHandler) Update(c *gin.Context) {
	var form model.SurveyForm
	if err := c.ShouldBind(&form); err != nil {
		c.JSON(http.StatusBadRequest, model.NewErrorResponse(err.Error(), ""))
		return
	}

	image, err := c.FormFile("image")
	if err != nil {
		image = nil
	}

	survey, err := h.surveys.Update(c.Request.Context(), c.Param("id"), &form, image)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, model.NewSuccessResponse("Survey updated successfully", survey))
}

// Delete handles DELETE /api/surveys/:id
func (h *SurveyHandler) Delete(c *gin.Context) {
	if err := h.surveys.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, model.NewSuccessResponse("Survey removed successfully", nil))
}
