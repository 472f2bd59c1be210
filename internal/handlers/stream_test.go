package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// The handler validates input before touching any service, so these
// paths run against a nil service.
func streamTestRouter(authed bool) *gin.Engine {
	gin.SetMode(gin.TestMode)
	handler := NewStreamHandler(nil)

	router := gin.New()
	if authed {
		router.Use(func(c *gin.Context) {
			c.Set("user_id", primitive.NewObjectID())
			c.Set("username", "grinder")
		})
	}
	router.POST("/spaces/:spaceId/stream/join", handler.Join)
	return router
}

func TestStreamJoinRequiresAuth(t *testing.T) {
	router := streamTestRouter(false)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost,
		"/spaces/"+primitive.NewObjectID().Hex()+"/stream/join",
		strings.NewReader(`{"grinding_topic":"math","target_duration":30}`))
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestStreamJoinRejectsBadSpaceID(t *testing.T) {
	router := streamTestRouter(true)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/spaces/not-an-id/stream/join",
		strings.NewReader(`{"grinding_topic":"math","target_duration":30}`))
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestStreamJoinRejectsMissingBody(t *testing.T) {
	router := streamTestRouter(true)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost,
		"/spaces/"+primitive.NewObjectID().Hex()+"/stream/join",
		strings.NewReader(`{}`))
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestStreamJoinRejectsShortDuration(t *testing.T) {
	router := streamTestRouter(true)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost,
		"/spaces/"+primitive.NewObjectID().Hex()+"/stream/join",
		strings.NewReader(`{"grinding_topic":"math","target_duration":2}`))
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "at least 5 minutes")
}

func TestStreamJoinRejectsBlankTopic(t *testing.T) {
	router := streamTestRouter(true)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost,
		"/spaces/"+primitive.NewObjectID().Hex()+"/stream/join",
		strings.NewReader(`{"grinding_topic":"   ","target_duration":30}`))
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
