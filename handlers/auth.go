package handlers

import (
	"errors"
	"net/http"

	"barberbook/middleware"
	"barberbook/models"
	"barberbook/services/session"
	"barberbook/utils"

	"github.com/gin-gonic/gin"
)

// AuthHandler exposes registration and session management over HTTP.
type AuthHandler struct {
	svc session.SessionService
}

func NewAuthHandler(svc session.SessionService) *AuthHandler {
	return &AuthHandler{svc: svc}
}

// SignUpHandler registers a new account and returns the materialized
// session.
func (h *AuthHandler) SignUpHandler(c *gin.Context) {
	var input struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
		Name     string `json:"name" binding:"required"`
		Phone    string `json:"phone"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid input", err.Error())
		return
	}

	user, err := h.svc.SignUp(c.Request.Context(), input.Email, input.Password, input.Name, input.Phone)
	if err != nil {
		var authErr *session.AuthError
		var regErr *session.RegistrationError
		switch {
		case errors.As(err, &authErr):
			utils.JSONError(c, http.StatusUnauthorized, "Registration rejected", authErr.Error())
		case errors.As(err, &regErr):
			utils.JSONError(c, http.StatusInternalServerError, "Registration failed, please try again", "")
		default:
			utils.JSONError(c, http.StatusBadRequest, "Registration failed", err.Error())
		}
		return
	}

	c.JSON(http.StatusCreated, user)
}

// MeHandler returns the acting session.
func (h *AuthHandler) MeHandler(c *gin.Context) {
	user, ok := middleware.SessionFrom(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, "Not authenticated", "")
		return
	}
	c.JSON(http.StatusOK, user)
}

// UpdateProfileHandler merges profile updates for the acting session.
func (h *AuthHandler) UpdateProfileHandler(c *gin.Context) {
	user, ok := middleware.SessionFrom(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, "Not authenticated", "")
		return
	}

	var updates map[string]interface{}
	if err := c.ShouldBindJSON(&updates); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid input", err.Error())
		return
	}

	refreshed, err := h.svc.UpdateProfile(c.Request.Context(), user, updates)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Failed to update profile", err.Error())
		return
	}
	c.JSON(http.StatusOK, refreshed)
}

// ListClientsHandler returns the client roster. Admin-gated by the route.
func (h *AuthHandler) ListClientsHandler(c *gin.Context) {
	clients, err := h.svc.ListClients(c.Request.Context())
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Failed to load clients", err.Error())
		return
	}
	if clients == nil {
		clients = []models.UserProfile{}
	}
	c.JSON(http.StatusOK, clients)
}

// ReloadHandler re-fetches the credential so the client can pick up a
// fresh email-verification flag without re-authenticating.
func (h *AuthHandler) ReloadHandler(c *gin.Context) {
	user, ok := middleware.SessionFrom(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, "Not authenticated", "")
		return
	}

	refreshed, err := h.svc.Reload(c.Request.Context(), user)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Failed to reload session", err.Error())
		return
	}
	c.JSON(http.StatusOK, refreshed)
}
