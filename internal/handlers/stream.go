package handlers

import (
	"net/http"
	"strings"

	"gogrind/internal/services"
	"gogrind/internal/utils"
	"gogrind/pkg/logger"

	"github.com/gin-gonic/gin"
)

type StreamHandler struct {
	streamService *services.StreamService
}

func NewStreamHandler(streamService *services.StreamService) *StreamHandler {
	return &StreamHandler{
		streamService: streamService,
	}
}

// Join starts a personal focus session and publishes the caller's
// stream presence in the space.
func (h *StreamHandler) Join(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	spaceID, ok := objectIDParam(c, "spaceId")
	if !ok {
		return
	}

	var joinData struct {
		GrindingTopic  string   `json:"grinding_topic" binding:"required"`
		TargetDuration int      `json:"target_duration" binding:"required"`
		Tasks          []string `json:"tasks"`
		IsVideoEnabled bool     `json:"is_video_enabled"`
		IsAudioEnabled bool     `json:"is_audio_enabled"`
	}

	if err := c.ShouldBindJSON(&joinData); err != nil {
		utils.ValidationErrorResponse(c, map[string]string{
			"grinding_topic":  "Grinding topic is required",
			"target_duration": "Target duration is required",
		})
		return
	}

	joinData.GrindingTopic = strings.TrimSpace(joinData.GrindingTopic)

	if !utils.ValidateGrindingTopic(joinData.GrindingTopic) {
		utils.ErrorResponse(c, http.StatusBadRequest, "Grinding topic cannot be empty")
		return
	}
	if !utils.ValidateTargetDuration(joinData.TargetDuration) {
		utils.ErrorResponse(c, http.StatusBadRequest, "Target duration must be at least 5 minutes")
		return
	}

	tasks := make([]string, 0, len(joinData.Tasks))
	for _, title := range joinData.Tasks {
		title = strings.TrimSpace(title)
		if !utils.ValidateTaskTitle(title) {
			utils.ErrorResponse(c, http.StatusBadRequest, "Task titles cannot be empty")
			return
		}
		tasks = append(tasks, title)
	}

	session, err := h.streamService.Join(spaceID, userID, services.JoinStreamInput{
		GrindingTopic:  joinData.GrindingTopic,
		TargetDuration: joinData.TargetDuration,
		Tasks:          tasks,
		IsVideoEnabled: joinData.IsVideoEnabled,
		IsAudioEnabled: joinData.IsAudioEnabled,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	logger.LogUserAction(userID.Hex(), "stream_joined", map[string]interface{}{
		"space": spaceID.Hex(),
		"topic": joinData.GrindingTopic,
	})

	utils.CreatedResponse(c, session)
}

// Leave closes the caller's stream presence and completes the backing
// focus session.
func (h *StreamHandler) Leave(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	spaceID, ok := objectIDParam(c, "spaceId")
	if !ok {
		return
	}

	if err := h.streamService.Leave(spaceID, userID); err != nil {
		respondServiceError(c, err)
		return
	}

	logger.LogUserAction(userID.Hex(), "stream_left", map[string]interface{}{
		"space": spaceID.Hex(),
	})

	utils.SuccessResponseWithMessage(c, "Left stream", nil)
}

// Remove lets the space creator force a member out of the stream.
func (h *StreamHandler) Remove(c *gin.Context) {
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

	var removeData struct {
		Reason string `json:"reason"`
	}
	c.ShouldBindJSON(&removeData)

	if err := h.streamService.Remove(spaceID, targetID, userID, strings.TrimSpace(removeData.Reason)); err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponseWithMessage(c, "User removed from stream", nil)
}

func (h *StreamHandler) UpdateTopic(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	spaceID, ok := objectIDParam(c, "spaceId")
	if !ok {
		return
	}

	var topicData struct {
		GrindingTopic string `json:"grinding_topic" binding:"required"`
	}

	if err := c.ShouldBindJSON(&topicData); err != nil {
		utils.ValidationErrorResponse(c, map[string]string{
			"grinding_topic": "Grinding topic is required",
		})
		return
	}

	topic := strings.TrimSpace(topicData.GrindingTopic)
	if !utils.ValidateGrindingTopic(topic) {
		utils.ErrorResponse(c, http.StatusBadRequest, "Grinding topic cannot be empty")
		return
	}

	if err := h.streamService.UpdateTopic(spaceID, userID, topic); err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponseWithMessage(c, "Topic updated", nil)
}

func (h *StreamHandler) ToggleMedia(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	spaceID, ok := objectIDParam(c, "spaceId")
	if !ok {
		return
	}

	var mediaData struct {
		IsVideoEnabled *bool `json:"is_video_enabled"`
		IsAudioEnabled *bool `json:"is_audio_enabled"`
	}

	if err := c.ShouldBindJSON(&mediaData); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	if mediaData.IsVideoEnabled == nil && mediaData.IsAudioEnabled == nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Nothing to toggle")
		return
	}

	if err := h.streamService.ToggleMedia(spaceID, userID, services.MediaToggle{
		IsVideoEnabled: mediaData.IsVideoEnabled,
		IsAudioEnabled: mediaData.IsAudioEnabled,
	}); err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponseWithMessage(c, "Media settings updated", nil)
}
