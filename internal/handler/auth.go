package handler

import (
	"net/http"
	"regexp"
	"strings"

	"alumnihub/internal/config"
	"alumnihub/internal/model"
	"alumnihub/internal/service"

	"github.com/gin-gonic/gin"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// AuthHandler handles registration and login
type AuthHandler struct {
	users *service.UserService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(users *service.UserService) *AuthHandler {
	return &AuthHandler{users: users}
}

// Register handles POST /api/users/register (multipart)
func (h *AuthHandler) Register(c *gin.Context) {
	var req model.RegisterRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, model.NewErrorResponse(err.Error(), ""))
		return
	}

	if req.FirstName == "" || req.LastName == "" || req.Email == "" || req.Password == "" {
		c.JSON(http.StatusBadRequest, model.NewErrorResponse("Please provide all required fields", ""))
		return
	}
	if len(req.FirstName) > config.MaxNameLength || len(req.LastName) > config.MaxNameLength {
		c.JSON(http.StatusBadRequest, model.NewErrorResponse("Name exceeds maximum length", ""))
		return
	}

	req.Email = strings.TrimSpace(strings.ToLower(req.Email))
	if len(req.Email) > config.MaxEmailLength {
		c.JSON(http.StatusBadRequest, model.NewErrorResponse("Email exceeds maximum length", ""))
		return
	}
	if !emailRegex.MatchString(req.Email) {
		c.JSON(http.StatusBadRequest, model.NewErrorResponse("Invalid email format", ""))
		return
	}

	doc, err := c.FormFile("tempDocument")
	if err != nil {
		c.JSON(http.StatusBadRequest, model.NewErrorResponse("Please upload a temporary document", ""))
		return
	}

	user, err := h.users.Register(c.Request.Context(), &req, doc)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, model.NewSuccessResponse(
		"Registration successful. Please wait for admin approval.",
		gin.H{"userId": user.ID.Hex()},
	))
}

// Login handles POST /api/users/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req model.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, model.NewErrorResponse(err.Error(), ""))
		return
	}

	token, _, err := h.users.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token})
}
