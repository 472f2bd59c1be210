package handlers

import (
	"net/http"
	"strings"
	"time"

	"gogrind/internal/models"
	"gogrind/internal/services"
	"gogrind/internal/utils"
	"gogrind/pkg/logger"

	"github.com/gin-gonic/gin"
)

type SpaceHandler struct {
	spaceService  *services.SpaceService
	streamService *services.StreamService
	statsService  *services.StatsService
}

func NewSpaceHandler(spaceService *services.SpaceService, streamService *services.StreamService, statsService *services.StatsService) *SpaceHandler {
	return &SpaceHandler{
		spaceService:  spaceService,
		streamService: streamService,
		statsService:  statsService,
	}
}

// Space CRUD

func (h *SpaceHandler) Create(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var spaceData struct {
		Name        string `json:"name" binding:"required"`
		Description string `json:"description"`
		Skill       string `json:"skill" binding:"required"`
	}

	if err := c.ShouldBindJSON(&spaceData); err != nil {
		utils.ValidationErrorResponse(c, map[string]string{
			"name":  "Name is required",
			"skill": "Skill is required",
		})
		return
	}

	spaceData.Name = strings.TrimSpace(spaceData.Name)
	spaceData.Skill = strings.TrimSpace(spaceData.Skill)

	if !utils.ValidateSpaceName(spaceData.Name) {
		utils.ErrorResponse(c, http.StatusBadRequest, "Space name must be 1-100 characters")
		return
	}
	if spaceData.Skill == "" {
		utils.ErrorResponse(c, http.StatusBadRequest, "Skill cannot be empty")
		return
	}

	space, err := h.spaceService.Create(userID, spaceData.Name, spaceData.Description, spaceData.Skill)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	logger.LogSpaceEvent("space_created", space.ID.Hex(), userID.Hex(), map[string]interface{}{
		"skill": space.Skill,
	})

	utils.CreatedResponse(c, space)
}

func (h *SpaceHandler) Get(c *gin.Context) {
	spaceID, ok := objectIDParam(c, "spaceId")
	if !ok {
		return
	}

	space, err := h.spaceService.GetByID(spaceID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	services.ApplyRecomputedHours(space.Sessions)
	utils.SuccessResponse(c, space)
}

// ListMine returns spaces the caller belongs to
func (h *SpaceHandler) ListMine(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	page, limit := paginationParams(c)

	spaces, total, err := h.spaceService.ListForUser(userID, page, limit)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponseWithMeta(c, spaces, pageMeta(page, limit, total))
}

// Discover lists active spaces, optionally filtered by skill
func (h *SpaceHandler) Discover(c *gin.Context) {
	page, limit := paginationParams(c)
	skill := strings.TrimSpace(c.Query("skill"))

	spaces, total, err := h.spaceService.Discover(skill, page, limit)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponseWithMeta(c, spaces, pageMeta(page, limit, total))
}

func (h *SpaceHandler) Update(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	spaceID, ok := objectIDParam(c, "spaceId")
	if !ok {
		return
	}

	var spaceData struct {
		Name        *string `json:"name"`
		Description *string `json:"description"`
		Skill       *string `json:"skill"`
	}

	if err := c.ShouldBindJSON(&spaceData); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	update := map[string]interface{}{}

	if spaceData.Name != nil {
		name := strings.TrimSpace(*spaceData.Name)
		if !utils.ValidateSpaceName(name) {
			utils.ErrorResponse(c, http.StatusBadRequest, "Space name must be 1-100 characters")
			return
		}
		update["name"] = name
	}
	if spaceData.Description != nil {
		update["description"] = strings.TrimSpace(*spaceData.Description)
	}
	if spaceData.Skill != nil {
		skill := strings.TrimSpace(*spaceData.Skill)
		if skill == "" {
			utils.ErrorResponse(c, http.StatusBadRequest, "Skill cannot be empty")
			return
		}
		update["skill"] = skill
	}

	if len(update) == 0 {
		utils.ErrorResponse(c, http.StatusBadRequest, "Nothing to update")
		return
	}

	if err := h.spaceService.Update(spaceID, userID, update); err != nil {
		respondServiceError(c, err)
		return
	}

	space, err := h.spaceService.GetByID(spaceID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	services.ApplyRecomputedHours(space.Sessions)
	utils.SuccessResponse(c, space)
}

func (h *SpaceHandler) Delete(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	spaceID, ok := objectIDParam(c, "spaceId")
	if !ok {
		return
	}

	if err := h.spaceService.Delete(spaceID, userID); err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponseWithMessage(c, "Space deleted", nil)
}

// Membership

func (h *SpaceHandler) RequestJoin(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	spaceID, ok := objectIDParam(c, "spaceId")
	if !ok {
		return
	}

	if err := h.spaceService.RequestJoin(spaceID, userID); err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponseWithMessage(c, "Join request sent", nil)
}

func (h *SpaceHandler) ApproveJoin(c *gin.Context) {
	userID, ok := currentUserID(c)
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

	if err := h.spaceService.ApproveJoin(spaceID, userID, targetID); err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponseWithMessage(c, "Join request approved", nil)
}

func (h *SpaceHandler) RejectJoin(c *gin.Context) {
	userID, ok := currentUserID(c)
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

	if err := h.spaceService.RejectJoin(spaceID, userID, targetID); err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponseWithMessage(c, "Join request rejected", nil)
}

// Leave also closes the caller's stream presence before dropping
// membership, so no orphaned active_streams entry remains.
func (h *SpaceHandler) Leave(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	spaceID, ok := objectIDParam(c, "spaceId")
	if !ok {
		return
	}

	if err := h.streamService.Leave(spaceID, userID); err != nil && err != services.ErrNoActiveStream {
		respondServiceError(c, err)
		return
	}

	if err := h.spaceService.Leave(spaceID, userID); err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponseWithMessage(c, "Left space", nil)
}

func (h *SpaceHandler) RemoveMember(c *gin.Context) {
	userID, ok := currentUserID(c)
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

	if err := h.streamService.Leave(spaceID, targetID); err != nil && err != services.ErrNoActiveStream {
		respondServiceError(c, err)
		return
	}

	if err := h.spaceService.RemoveMember(spaceID, userID, targetID); err != nil {
		respondServiceError(c, err)
		return
	}

	logger.LogSpaceEvent("member_removed", spaceID.Hex(), targetID.Hex(), map[string]interface{}{
		"removed_by": userID.Hex(),
	})

	utils.SuccessResponseWithMessage(c, "Member removed", nil)
}

// Announcements

func (h *SpaceHandler) AddAnnouncement(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	spaceID, ok := objectIDParam(c, "spaceId")
	if !ok {
		return
	}

	var announcementData struct {
		Content string `json:"content" binding:"required"`
	}

	if err := c.ShouldBindJSON(&announcementData); err != nil {
		utils.ValidationErrorResponse(c, map[string]string{
			"content": "Content is required",
		})
		return
	}

	content := strings.TrimSpace(announcementData.Content)
	if content == "" {
		utils.ErrorResponse(c, http.StatusBadRequest, "Content cannot be empty")
		return
	}

	announcement, err := h.spaceService.AddAnnouncement(spaceID, userID, content)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.CreatedResponse(c, announcement)
}

func (h *SpaceHandler) ListAnnouncements(c *gin.Context) {
	spaceID, ok := objectIDParam(c, "spaceId")
	if !ok {
		return
	}

	space, err := h.spaceService.GetByID(spaceID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, space.Announcements)
}

func (h *SpaceHandler) DeleteAnnouncement(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	spaceID, ok := objectIDParam(c, "spaceId")
	if !ok {
		return
	}
	announcementID, ok := objectIDParam(c, "announcementId")
	if !ok {
		return
	}

	if err := h.spaceService.DeleteAnnouncement(spaceID, userID, announcementID); err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponseWithMessage(c, "Announcement deleted", nil)
}

// Scheduled sessions

func (h *SpaceHandler) CreateSession(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	spaceID, ok := objectIDParam(c, "spaceId")
	if !ok {
		return
	}

	var sessionData struct {
		Title       string    `json:"title" binding:"required"`
		Description string    `json:"description"`
		ScheduledAt time.Time `json:"scheduled_at" binding:"required"`
		Duration    int       `json:"duration" binding:"required"`
	}

	if err := c.ShouldBindJSON(&sessionData); err != nil {
		utils.ValidationErrorResponse(c, map[string]string{
			"title":        "Title is required",
			"scheduled_at": "Scheduled time is required",
			"duration":     "Duration is required",
		})
		return
	}

	sessionData.Title = strings.TrimSpace(sessionData.Title)
	if sessionData.Title == "" {
		utils.ErrorResponse(c, http.StatusBadRequest, "Title cannot be empty")
		return
	}
	if !utils.ValidateTargetDuration(sessionData.Duration) {
		utils.ErrorResponse(c, http.StatusBadRequest, "Duration must be at least 5 minutes")
		return
	}

	session, err := h.spaceService.CreateSpaceSession(spaceID, userID, sessionData.Title, sessionData.Description, sessionData.ScheduledAt, sessionData.Duration)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.CreatedResponse(c, session)
}

func (h *SpaceHandler) ListSessions(c *gin.Context) {
	spaceID, ok := objectIDParam(c, "spaceId")
	if !ok {
		return
	}

	space, err := h.spaceService.GetByID(spaceID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	services.ApplyRecomputedHours(space.Sessions)
	utils.SuccessResponse(c, space.Sessions)
}

func (h *SpaceHandler) UpdateSession(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	spaceID, ok := objectIDParam(c, "spaceId")
	if !ok {
		return
	}
	sessionID, ok := objectIDParam(c, "sessionId")
	if !ok {
		return
	}

	var sessionData struct {
		Title       *string    `json:"title"`
		Description *string    `json:"description"`
		ScheduledAt *time.Time `json:"scheduled_at"`
		Duration    *int       `json:"duration"`
	}

	if err := c.ShouldBindJSON(&sessionData); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	update := map[string]interface{}{}

	if sessionData.Title != nil {
		title := strings.TrimSpace(*sessionData.Title)
		if title == "" {
			utils.ErrorResponse(c, http.StatusBadRequest, "Title cannot be empty")
			return
		}
		update["title"] = title
	}
	if sessionData.Description != nil {
		update["description"] = strings.TrimSpace(*sessionData.Description)
	}
	if sessionData.ScheduledAt != nil {
		update["scheduled_at"] = *sessionData.ScheduledAt
	}
	if sessionData.Duration != nil {
		if !utils.ValidateTargetDuration(*sessionData.Duration) {
			utils.ErrorResponse(c, http.StatusBadRequest, "Duration must be at least 5 minutes")
			return
		}
		update["duration"] = *sessionData.Duration
	}

	if len(update) == 0 {
		utils.ErrorResponse(c, http.StatusBadRequest, "Nothing to update")
		return
	}

	if err := h.spaceService.UpdateSpaceSession(spaceID, userID, sessionID, update); err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponseWithMessage(c, "Session updated", nil)
}

func (h *SpaceHandler) DeleteSession(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	spaceID, ok := objectIDParam(c, "spaceId")
	if !ok {
		return
	}
	sessionID, ok := objectIDParam(c, "sessionId")
	if !ok {
		return
	}

	if err := h.spaceService.DeleteSpaceSession(spaceID, userID, sessionID); err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponseWithMessage(c, "Session deleted", nil)
}

func (h *SpaceHandler) UpdateSessionStatus(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	spaceID, ok := objectIDParam(c, "spaceId")
	if !ok {
		return
	}
	sessionID, ok := objectIDParam(c, "sessionId")
	if !ok {
		return
	}

	var statusData struct {
		Status    string `json:"status" binding:"required"`
		StreamURL string `json:"stream_url"`
	}

	if err := c.ShouldBindJSON(&statusData); err != nil {
		utils.ValidationErrorResponse(c, map[string]string{
			"status": "Status is required",
		})
		return
	}

	if !models.IsValidSpaceSessionStatus(statusData.Status) {
		utils.ErrorResponse(c, http.StatusBadRequest, "Unknown session status")
		return
	}
	status := models.SpaceSessionStatus(statusData.Status)

	session, err := h.spaceService.UpdateSessionStatus(spaceID, sessionID, userID, status, statusData.StreamURL)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	logger.LogSessionEvent("status_changed", sessionID.Hex(), userID.Hex(), map[string]interface{}{
		"space":  spaceID.Hex(),
		"status": string(status),
	})

	utils.SuccessResponse(c, session)
}

// Stats

func (h *SpaceHandler) GetStats(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	spaceID, ok := objectIDParam(c, "spaceId")
	if !ok {
		return
	}

	space, err := h.spaceService.GetByID(spaceID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if !space.IsMember(userID) {
		utils.ErrorResponse(c, http.StatusForbidden, "You are not a member of this space")
		return
	}

	stats, err := h.statsService.GetSpaceStats(spaceID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, stats)
}
