package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"gogrind/internal/services"
	"gogrind/internal/utils"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// paginationParams reads page/limit query parameters with sane bounds.
func paginationParams(c *gin.Context) (page, limit int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "20"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return page, limit
}

// currentUserID reads the authenticated user id set by the auth middleware.
func currentUserID(c *gin.Context) (primitive.ObjectID, bool) {
	raw, exists := c.Get("user_id")
	if !exists {
		utils.ErrorResponse(c, http.StatusUnauthorized, "Authentication required")
		return primitive.NilObjectID, false
	}

	userID, ok := raw.(primitive.ObjectID)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "Authentication required")
		return primitive.NilObjectID, false
	}

	return userID, true
}

// objectIDParam parses a path parameter as an ObjectID and writes a 400
// response when it is malformed.
func objectIDParam(c *gin.Context, name string) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(c.Param(name))
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid "+name)
		return primitive.NilObjectID, false
	}
	return id, true
}

// pageMeta builds pagination metadata for list responses.
func pageMeta(page, limit int, total int64) *utils.Meta {
	totalPages := int(total) / limit
	if int(total)%limit != 0 {
		totalPages++
	}
	return &utils.Meta{
		Page:       page,
		Limit:      limit,
		Total:      int(total),
		TotalPages: totalPages,
	}
}

var serviceErrorStatus = map[error]int{
	services.ErrUserNotFound:           http.StatusNotFound,
	services.ErrSpaceNotFound:          http.StatusNotFound,
	services.ErrSessionNotFound:        http.StatusNotFound,
	services.ErrSpaceSessionNotFound:   http.StatusNotFound,
	services.ErrTaskNotFound:           http.StatusNotFound,
	services.ErrNotificationNotFound:   http.StatusNotFound,
	services.ErrRequestNotFound:        http.StatusNotFound,
	services.ErrAnnouncementNotFound:   http.StatusNotFound,
	services.ErrNotMember:              http.StatusForbidden,
	services.ErrNotCreator:             http.StatusForbidden,
	services.ErrNotSessionOwner:        http.StatusForbidden,
	services.ErrStreamNotInitialized:   http.StatusForbidden,
	services.ErrNotFriends:             http.StatusForbidden,
	services.ErrAlreadyStreaming:       http.StatusBadRequest,
	services.ErrNoActiveStream:         http.StatusBadRequest,
	services.ErrInvalidTransition:      http.StatusBadRequest,
	services.ErrSessionCompleted:       http.StatusBadRequest,
	services.ErrSessionLive:            http.StatusBadRequest,
	services.ErrAlreadyMember:          http.StatusBadRequest,
	services.ErrAlreadyPending:         http.StatusBadRequest,
	services.ErrCreatorCannotLeave:     http.StatusBadRequest,
	services.ErrSelfFriendRequest:      http.StatusBadRequest,
	services.ErrDuplicateFriendRequest: http.StatusBadRequest,
	services.ErrAlreadyEncouraged:      http.StatusBadRequest,
	services.ErrNotEncouraged:          http.StatusBadRequest,
	services.ErrEmailTaken:             http.StatusConflict,
	services.ErrUsernameTaken:          http.StatusConflict,
}

// respondServiceError maps service sentinel errors to HTTP statuses.
// Anything unrecognized is treated as an internal failure.
func respondServiceError(c *gin.Context, err error) {
	for sentinel, status := range serviceErrorStatus {
		if errors.Is(err, sentinel) {
			utils.ErrorResponse(c, status, sentinel.Error())
			return
		}
	}
	utils.InternalErrorResponse(c, "Something went wrong")
}
