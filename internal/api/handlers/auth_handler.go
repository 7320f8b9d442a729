// server/internal/api/handlers/auth_handler.go
package handlers

import (
	"net/http"
	"strings"
	"time"

	"asset-hub-api-server/config"
	"asset-hub-api-server/internal/api/middleware"
	"asset-hub-api-server/internal/auth"
	"asset-hub-api-server/internal/database"
	"asset-hub-api-server/internal/models"
	"asset-hub-api-server/internal/validation"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type AuthHandler struct {
	Users  *database.Repository[models.User]
	Tokens *auth.TokenManager
	Cfg    config.Config
}

type RegisterRequest struct {
	Email      string `json:"email" binding:"required"`
	Name       string `json:"name" binding:"required"`
	Password   string `json:"password" binding:"required"`
	Role       string `json:"role" binding:"required"`
	Department string `json:"department"`
	Phone      string `json:"phone" binding:"required"`
	Hub        string `json:"hub" binding:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Register creates a user account. Field validation errors are aggregated
// into a single list so the caller can surface all of them at once.
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var fieldErrors []string

	emailResult := validation.ValidateEmail(req.Email, h.Cfg.AllowedEmailDomains)
	if !emailResult.Valid {
		fieldErrors = append(fieldErrors, emailResult.Message)
	}
	phoneResult := validation.ValidatePhone(req.Phone)
	if !phoneResult.Valid {
		fieldErrors = append(fieldErrors, phoneResult.Message)
	}
	passwordResult := validation.ValidatePassword(req.Password)
	if !passwordResult.Valid {
		fieldErrors = append(fieldErrors, passwordResult.Message)
	}
	role := models.NormalizeRole(req.Role)
	if role == "" {
		fieldErrors = append(fieldErrors, "role must be one of: admin, facilitator, user")
	}
	if !models.IsValidHub(req.Hub) {
		fieldErrors = append(fieldErrors, "hub is not one of the known hubs")
	}

	if len(fieldErrors) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"errors": fieldErrors})
		return
	}

	existing, err := h.Users.QueryByField(c.Request.Context(), "email", emailResult.Normalized)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check for existing user"})
		return
	}
	if len(existing) > 0 {
		c.JSON(http.StatusConflict, gin.H{"error": "A user with this email already exists"})
		return
	}

	hashedPassword, err := auth.HashPassword(req.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
		return
	}

	user := models.User{
		Email:      emailResult.Normalized,
		Name:       req.Name,
		Password:   hashedPassword,
		Role:       role,
		Department: req.Department,
		Phone:      phoneResult.Normalized,
		Hub:        req.Hub,
		Active:     true,
	}

	id, err := h.Users.Create(c.Request.Context(), user)
	if err != nil {
		middleware.Logger(c).Error("failed to create user", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"status": "success",
		"id":     id.Hex(),
		"email":  user.Email,
	})
}

// Login verifies credentials and issues a session token.
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	users, err := h.Users.QueryByField(c.Request.Context(), "email", email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to look up user"})
		return
	}
	if len(users) == 0 || !auth.CheckPasswordHash(req.Password, users[0].Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
		return
	}
	user := users[0]
	if !user.Active {
		c.JSON(http.StatusForbidden, gin.H{"error": "This account has been deactivated"})
		return
	}

	token, err := h.Tokens.Generate(user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user":  user,
	})
}

// Me returns the authenticated user's profile.
func (h *AuthHandler) Me(c *gin.Context) {
	userID := c.GetString(middleware.ContextUserID)
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid user identity"})
		return
	}

	user, err := h.Users.GetByID(c.Request.Context(), oid)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve user"})
		return
	}
	if user == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	c.JSON(http.StatusOK, user)
}

type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required"`
}

// ForgotPassword issues a time-limited reset token. The response is the
// same whether or not the account exists, so addresses cannot be probed.
func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	users, err := h.Users.QueryByField(c.Request.Context(), "email", email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to look up user"})
		return
	}

	if len(users) > 0 {
		expiry := time.Now().Add(1 * time.Hour)
		err := h.Users.Update(c.Request.Context(), users[0].ID, bson.M{
			"resetToken":       uuid.NewString(),
			"resetTokenExpiry": expiry,
		})
		if err != nil {
			middleware.Logger(c).Error("failed to store reset token", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to initiate password reset"})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"message": "If the account exists, a reset link has been sent"})
}

type ResetPasswordRequest struct {
	Token    string `json:"token" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// ResetPassword consumes a reset token and sets a new password.
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	passwordResult := validation.ValidatePassword(req.Password)
	if !passwordResult.Valid {
		c.JSON(http.StatusBadRequest, gin.H{"error": passwordResult.Message})
		return
	}

	users, err := h.Users.QueryByField(c.Request.Context(), "resetToken", req.Token)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to look up reset token"})
		return
	}
	if len(users) == 0 || users[0].ResetTokenExpiry == nil || users[0].ResetTokenExpiry.Before(time.Now()) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Reset token is invalid or has expired"})
		return
	}

	hashedPassword, err := auth.HashPassword(req.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
		return
	}

	err = h.Users.Update(c.Request.Context(), users[0].ID, bson.M{
		"password":         hashedPassword,
		"resetToken":       "",
		"resetTokenExpiry": nil,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reset password"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Password has been reset"})
}
