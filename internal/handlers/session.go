package handlers

import (
	"net/http"
	"strings"

	"gogrind/internal/services"
	"gogrind/internal/utils"
	"gogrind/pkg/logger"

	"github.com/gin-gonic/gin"
)

type SessionHandler struct {
	sessionService *services.SessionService
}

func NewSessionHandler(sessionService *services.SessionService) *SessionHandler {
	return &SessionHandler{
		sessionService: sessionService,
	}
}

// GetCurrent returns a user's active focus session in a space. Looking
// at someone else's session requires space membership.
func (h *SessionHandler) GetCurrent(c *gin.Context) {
	callerID, ok := currentUserID(c)
	if !ok {
		return
	}
	spaceID, ok := objectIDParam(c, "spaceId")
	if !ok {
		return
	}
	targetID, ok := objectIDParam(c, "userId")
	if !ok {
		return
	}

	session, err := h.sessionService.GetCurrent(spaceID, callerID, targetID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, session)
}

// ListForUser returns a user's session history. Another user's history
// is visible to friends only.
func (h *SessionHandler) ListForUser(c *gin.Context) {
	callerID, ok := currentUserID(c)
	if !ok {
		return
	}
	targetID, ok := objectIDParam(c, "userId")
	if !ok {
		return
	}

	page, limit := paginationParams(c)

	sessions, total, err := h.sessionService.ListForUser(targetID, callerID, page, limit)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponseWithMeta(c, sessions, pageMeta(page, limit, total))
}

// Tasks

func (h *SessionHandler) AddTask(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	sessionID, ok := objectIDParam(c, "sessionId")
	if !ok {
		return
	}

	var taskData struct {
		Title string `json:"title" binding:"required"`
	}

	if err := c.ShouldBindJSON(&taskData); err != nil {
		utils.ValidationErrorResponse(c, map[string]string{
			"title": "Title is required",
		})
		return
	}

	title := strings.TrimSpace(taskData.Title)
	if !utils.ValidateTaskTitle(title) {
		utils.ErrorResponse(c, http.StatusBadRequest, "Task title must be 1-200 characters")
		return
	}

	task, err := h.sessionService.AddTask(sessionID, userID, title)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.CreatedResponse(c, task)
}

func (h *SessionHandler) UpdateTask(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	sessionID, ok := objectIDParam(c, "sessionId")
	if !ok {
		return
	}
	taskID, ok := objectIDParam(c, "taskId")
	if !ok {
		return
	}

	var taskData struct {
		IsCompleted *bool `json:"is_completed" binding:"required"`
	}

	if err := c.ShouldBindJSON(&taskData); err != nil || taskData.IsCompleted == nil {
		utils.ValidationErrorResponse(c, map[string]string{
			"is_completed": "Completion state is required",
		})
		return
	}

	if err := h.sessionService.UpdateTask(sessionID, taskID, userID, *taskData.IsCompleted); err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponseWithMessage(c, "Task updated", nil)
}

// Encouragements

func (h *SessionHandler) Encourage(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	sessionID, ok := objectIDParam(c, "sessionId")
	if !ok {
		return
	}

	if err := h.sessionService.Encourage(sessionID, userID); err != nil {
		respondServiceError(c, err)
		return
	}

	logger.LogUserAction(userID.Hex(), "encouraged", map[string]interface{}{
		"session": sessionID.Hex(),
	})

	utils.SuccessResponseWithMessage(c, "Encouragement sent", nil)
}

func (h *SessionHandler) RemoveEncouragement(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	sessionID, ok := objectIDParam(c, "sessionId")
	if !ok {
		return
	}

	if err := h.sessionService.RemoveEncouragement(sessionID, userID); err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponseWithMessage(c, "Encouragement removed", nil)
}
