package handlers

import (
	"net/http"
	"strings"

	"gogrind/internal/config"
	"gogrind/internal/services"
	"gogrind/internal/utils"
	"gogrind/pkg/logger"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authService *services.AuthService
	userService *services.UserService
	cfg         *config.Config
}

func NewAuthHandler(authService *services.AuthService, userService *services.UserService, cfg *config.Config) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		userService: userService,
		cfg:         cfg,
	}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var registerData struct {
		Email       string `json:"email" binding:"required"`
		Username    string `json:"username" binding:"required"`
		Password    string `json:"password" binding:"required"`
		DisplayName string `json:"display_name"`
	}

	if err := c.ShouldBindJSON(&registerData); err != nil {
		utils.ValidationErrorResponse(c, map[string]string{
			"email":    "Email is required",
			"username": "Username is required",
			"password": "Password is required",
		})
		return
	}

	registerData.Email = strings.ToLower(strings.TrimSpace(registerData.Email))
	registerData.Username = strings.TrimSpace(registerData.Username)

	if !utils.ValidateEmail(registerData.Email) {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid email address")
		return
	}
	if !utils.ValidateUsername(registerData.Username) {
		utils.ErrorResponse(c, http.StatusBadRequest, "Username must be 3-20 characters, letters, digits and underscores only")
		return
	}
	if !utils.ValidatePassword(registerData.Password) {
		utils.ErrorResponse(c, http.StatusBadRequest, "Password must be at least 8 characters")
		return
	}

	displayName := strings.TrimSpace(registerData.DisplayName)
	if displayName == "" {
		displayName = registerData.Username
	}

	user, token, err := h.authService.Register(registerData.Email, registerData.Username, registerData.Password, displayName)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	h.setAuthCookie(c, token)

	logger.LogUserAction(user.ID.Hex(), "registered", map[string]interface{}{
		"username": user.Username,
	})

	utils.CreatedResponse(c, gin.H{
		"user":  user,
		"token": token,
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var loginData struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}

	if err := c.ShouldBindJSON(&loginData); err != nil {
		utils.ValidationErrorResponse(c, map[string]string{
			"email":    "Email is required",
			"password": "Password is required",
		})
		return
	}

	loginData.Email = strings.ToLower(strings.TrimSpace(loginData.Email))

	user, token, err := h.authService.Login(loginData.Email, loginData.Password)
	if err != nil {
		logger.LogSecurityEvent("login_failed", "", c.ClientIP(), map[string]interface{}{
			"email": loginData.Email,
		})
		utils.ErrorResponse(c, http.StatusUnauthorized, "Invalid email or password")
		return
	}

	h.setAuthCookie(c, token)

	logger.LogUserAction(user.ID.Hex(), "logged_in", nil)

	utils.SuccessResponse(c, gin.H{
		"user":  user,
		"token": token,
	})
}

func (h *AuthHandler) Logout(c *gin.Context) {
	c.SetCookie(h.cfg.JWT.CookieName, "", -1, "/", "", false, true)
	utils.SuccessResponseWithMessage(c, "Logged out", nil)
}

// Me returns the authenticated user's own record
func (h *AuthHandler) Me(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	user, err := h.userService.GetByID(userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, user)
}

func (h *AuthHandler) setAuthCookie(c *gin.Context, token string) {
	maxAge := h.cfg.JWT.ExpiryHour * 3600
	c.SetCookie(h.cfg.JWT.CookieName, token, maxAge, "/", "", false, true)
}
