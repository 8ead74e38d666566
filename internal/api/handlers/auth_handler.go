package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hirestage/hirestage/internal/models"
	"github.com/hirestage/hirestage/internal/services"
	"github.com/hirestage/hirestage/internal/utils"
)

type AuthHandler struct {
	svc services.AuthService
}

func NewAuthHandler(svc services.AuthService) *AuthHandler {
	return &AuthHandler{svc: svc}
}

type RegisterRequest struct {
	Email       string           `json:"email" binding:"required"`
	Password    string           `json:"password" binding:"required"`
	Name        string           `json:"name" binding:"required"`
	Role        string           `json:"role"`
	Phone       string           `json:"phone"`
	Skills      utils.StringList `json:"skills"`
	LinkedinURL string           `json:"linkedin_url"`
}

type AuthResponse struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "AuthHandler.Register", "invalid request body", err))
		return
	}

	u, token, err := h.svc.Register(c.Request.Context(), services.RegisterInput{
		Email:       req.Email,
		Password:    req.Password,
		Name:        req.Name,
		Role:        models.UserRole(req.Role),
		Phone:       req.Phone,
		Skills:      req.Skills,
		LinkedinURL: req.LinkedinURL,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, AuthResponse{Token: token, User: u})
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
	Role     string `json:"role"` // optional; must match the stored role when set
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "AuthHandler.Login", "invalid request body", err))
		return
	}

	u, token, err := h.svc.Login(c.Request.Context(), req.Email, req.Password, models.UserRole(req.Role))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, AuthResponse{Token: token, User: u})
}

func (h *AuthHandler) GetProfile(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	u, err := h.svc.GetProfile(c.Request.Context(), userID)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, u)
}

// Pointer fields distinguish "absent" from "set to empty": only keys
// present in the body are applied.
type UpdateProfileRequest struct {
	Name        *string           `json:"name"`
	Phone       *string           `json:"phone"`
	Skills      *utils.StringList `json:"skills"`
	LinkedinURL *string           `json:"linkedin_url"`
	ResumeURL   *string           `json:"resume_url"`
}

// UpdateProfile applies the writable profile fields only, and only the
// ones the request carries. Email, role, and password never change
// through this endpoint.
func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "AuthHandler.UpdateProfile", "invalid request body", err))
		return
	}

	u, err := h.svc.GetProfile(c.Request.Context(), userID)
	if err != nil {
		writeError(c, err)
		return
	}

	if req.Name != nil {
		u.Name = *req.Name
	}
	if req.Phone != nil {
		u.Phone = *req.Phone
	}
	if req.Skills != nil {
		u.Skills = []string(*req.Skills)
	}
	if req.LinkedinURL != nil {
		u.LinkedinURL = *req.LinkedinURL
	}
	if req.ResumeURL != nil {
		u.ResumeURL = *req.ResumeURL
	}

	updated, err := h.svc.UpdateProfile(c.Request.Context(), u)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, updated)
}
