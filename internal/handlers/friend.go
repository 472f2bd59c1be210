package handlers

import (
	"net/http"

	"gogrind/internal/services"
	"gogrind/internal/utils"
	"gogrind/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type FriendHandler struct {
	friendService *services.FriendService
	userService   *services.UserService
}

func NewFriendHandler(friendService *services.FriendService, userService *services.UserService) *FriendHandler {
	return &FriendHandler{
		friendService: friendService,
		userService:   userService,
	}
}

func (h *FriendHandler) SendRequest(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var requestData struct {
		RecipientID string `json:"recipient_id" binding:"required"`
	}

	if err := c.ShouldBindJSON(&requestData); err != nil {
		utils.ValidationErrorResponse(c, map[string]string{
			"recipient_id": "Recipient is required",
		})
		return
	}

	recipientID, err := primitive.ObjectIDFromHex(requestData.RecipientID)
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid recipient_id")
		return
	}

	request, err := h.friendService.SendRequest(userID, recipientID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	logger.LogUserAction(userID.Hex(), "friend_request_sent", map[string]interface{}{
		"recipient": recipientID.Hex(),
	})

	utils.CreatedResponse(c, request)
}

func (h *FriendHandler) Accept(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	requestID, ok := objectIDParam(c, "requestId")
	if !ok {
		return
	}

	if err := h.friendService.Accept(requestID, userID); err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponseWithMessage(c, "Friend request accepted", nil)
}

func (h *FriendHandler) Decline(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	requestID, ok := objectIDParam(c, "requestId")
	if !ok {
		return
	}

	if err := h.friendService.Decline(requestID, userID); err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponseWithMessage(c, "Friend request declined", nil)
}

func (h *FriendHandler) Cancel(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	requestID, ok := objectIDParam(c, "requestId")
	if !ok {
		return
	}

	if err := h.friendService.Cancel(requestID, userID); err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponseWithMessage(c, "Friend request cancelled", nil)
}

func (h *FriendHandler) ListIncoming(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	requests, err := h.friendService.ListIncoming(userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, requests)
}

func (h *FriendHandler) ListOutgoing(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	requests, err := h.friendService.ListOutgoing(userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, requests)
}

func (h *FriendHandler) MarkOutgoingSeen(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	if err := h.friendService.MarkOutgoingSeen(userID); err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponseWithMessage(c, "Requests marked seen", nil)
}

// ListFriends resolves the caller's friends list to public profiles
func (h *FriendHandler) ListFriends(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	user, err := h.userService.GetByID(userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	friends := make([]map[string]interface{}, 0, len(user.Friends))
	for _, friendID := range user.Friends {
		friend, err := h.userService.GetByID(friendID)
		if err != nil {
			continue
		}
		friends = append(friends, friend.PublicProfile())
	}

	utils.SuccessResponse(c, friends)
}

func (h *FriendHandler) Unfriend(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	friendID, ok := objectIDParam(c, "userId")
	if !ok {
		return
	}

	if err := h.friendService.Unfriend(userID, friendID); err != nil {
		respondServiceError(c, err)
		return
	}

	logger.LogUserAction(userID.Hex(), "unfriended", map[string]interface{}{
		"friend": friendID.Hex(),
	})

	utils.SuccessResponseWithMessage(c, "Friend removed", nil)
}
