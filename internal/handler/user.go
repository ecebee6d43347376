package handler

import (
	"net/http"
	"path/filepath"

	"alumnihub/internal/middleware"
	"alumnihub/internal/model"
	"alumnihub/internal/service"

	"github.com/gin-gonic/gin"
)

// UserHandler handles profile and admin user-management endpoints
type UserHandler struct {
	users *service.UserService
}

// NewUserHandler creates a new user handler
func NewUserHandler(users *service.UserService) *UserHandler {
	return &UserHandler{users: users}
}

// ListAll handles GET /api/users/all (admin)
func (h *UserHandler) ListAll(c *gin.Context) {
	users, err := h.users.ListAll(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toResponses(users))
}

// ListPending handles GET /api/users/pending (admin)
func (h *UserHandler) ListPending(c *gin.Context) {
	users, err := h.users.ListPending(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toResponses(users))
}

// VerifiedAlumni handles GET /api/users/verified-alumni (public)
func (h *UserHandler) VerifiedAlumni(c *gin.Context) {
	users, err := h.users.ListVerifiedAlumni(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	alumni := make([]model.AlumnusResponse, len(users))
	for i, u := range users {
		alumni[i] = u.ToAlumnus()
	}
	c.JSON(http.StatusOK, alumni)
}

// Verify handles PATCH /api/users/verify/:userId (admin).
// Approve transitions the account to approved; reject removes it.
func (h *UserHandler) Verify(c *gin.Context) {
	var req model.VerifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, model.NewErrorResponse(err.Error(), ""))
		return
	}

	user, err := h.users.Verify(c.Request.Context(), c.Param("userId"), *req.Approve)
	if err != nil {
		respondError(c, err)
		return
	}

	if user == nil {
		c.JSON(http.StatusOK, model.NewSuccessResponse("User rejected and removed successfully", nil))
		return
	}
	resp := user.ToResponse()
	c.JSON(http.StatusOK, model.NewSuccessResponse("User approved successfully", resp))
}

// Delete handles DELETE /api/users/:userId (admin)
func (h *UserHandler) Delete(c *gin.Context) {
	if err := h.users.Reject(c.Request.Context(), c.Param("userId")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, model.NewSuccessResponse("User rejected and removed successfully", nil))
}

// Profile handles GET /api/users/profile (own record)
func (h *UserHandler) Profile(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, model.NewErrorResponse("Authentication required", ""))
		return
	}

	user, err := h.users.Profile(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user.ToResponse())
}

// UpdateProfile handles PATCH /api/users/profile (own record, multipart)
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, model.NewErrorResponse("Authentication required", ""))
		return
	}

	var req model.UpdateProfileRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, model.NewErrorResponse(err.Error(), ""))
		return
	}

	// Profile image is optional
	image, err := c.FormFile("profile_image")
	if err != nil {
		image = nil
	}

	user, err := h.users.UpdateProfile(c.Request.Context(), userID, &req, image)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user.ToResponse())
}

// DownloadDocument handles GET /api/users/document/:filename (admin).
// Serves the supporting document for review.
func (h *UserHandler) DownloadDocument(c *gin.Context) {
	filename := filepath.Base(c.Param("filename"))

	path, err := h.users.DocumentPath(filename)
	if err != nil {
		respondError(c, err)
		return
	}
	c.FileAttachment(path, filename)
}

func toResponses(users []*model.User) []model.UserResponse {
	responses := make([]model.UserResponse, len(users))
	for i, u := range users {
		responses[i] = u.ToResponse()
	}
	return responses
}
