package handlers

import (
	"net/http"
	"strings"

	"gogrind/internal/services"
	"gogrind/internal/utils"
	"gogrind/pkg/logger"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	userService *services.UserService
}

func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{
		userService: userService,
	}
}

func (h *UserHandler) GetProfile(c *gin.Context) {
	targetID, ok := objectIDParam(c, "userId")
	if !ok {
		return
	}

	user, err := h.userService.GetByID(targetID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, user.PublicProfile())
}

func (h *UserHandler) UpdateProfile(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var profileData struct {
		Username    *string `json:"username"`
		DisplayName *string `json:"display_name"`
		Bio         *string `json:"bio"`
		AvatarURL   *string `json:"avatar_url"`
	}

	if err := c.ShouldBindJSON(&profileData); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	update := map[string]interface{}{}

	if profileData.Username != nil {
		username := strings.TrimSpace(*profileData.Username)
		if !utils.ValidateUsername(username) {
			utils.ErrorResponse(c, http.StatusBadRequest, "Username must be 3-20 characters, letters, digits and underscores only")
			return
		}
		taken, err := h.userService.UsernameExists(username, &userID)
		if err != nil {
			utils.InternalErrorResponse(c, "Something went wrong")
			return
		}
		if taken {
			utils.ErrorResponse(c, http.StatusConflict, "Username already taken")
			return
		}
		update["username"] = username
	}
	if profileData.DisplayName != nil {
		displayName := strings.TrimSpace(*profileData.DisplayName)
		if displayName == "" {
			utils.ErrorResponse(c, http.StatusBadRequest, "Display name cannot be empty")
			return
		}
		update["display_name"] = displayName
	}
	if profileData.Bio != nil {
		if len(*profileData.Bio) > 500 {
			utils.ErrorResponse(c, http.StatusBadRequest, "Bio cannot exceed 500 characters")
			return
		}
		update["bio"] = strings.TrimSpace(*profileData.Bio)
	}
	if profileData.AvatarURL != nil {
		update["avatar_url"] = strings.TrimSpace(*profileData.AvatarURL)
	}

	if len(update) == 0 {
		utils.ErrorResponse(c, http.StatusBadRequest, "Nothing to update")
		return
	}

	if err := h.userService.UpdateProfile(userID, update); err != nil {
		respondServiceError(c, err)
		return
	}

	logger.LogUserAction(userID.Hex(), "profile_updated", map[string]interface{}{
		"fields": len(update),
	})

	user, err := h.userService.GetByID(userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, user)
}

func (h *UserHandler) Search(c *gin.Context) {
	query := strings.TrimSpace(c.Query("q"))
	if query == "" {
		utils.ErrorResponse(c, http.StatusBadRequest, "Search query is required")
		return
	}

	page, limit := paginationParams(c)

	users, total, err := h.userService.Search(query, page, limit)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	profiles := make([]map[string]interface{}, 0, len(users))
	for i := range users {
		profiles = append(profiles, users[i].PublicProfile())
	}

	utils.SuccessResponseWithMeta(c, profiles, pageMeta(page, limit, total))
}
