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

// Validation runs before any service call, so a nil service suffices.
func spaceTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	handler := NewSpaceHandler(nil, nil, nil)

	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set("user_id", primitive.NewObjectID())
		c.Set("username", "grinder")
	})
	router.POST("/spaces/:spaceId/sessions", handler.CreateSession)
	router.PATCH("/spaces/:spaceId/sessions/:sessionId", handler.UpdateSession)
	return router
}

func TestCreateSpaceSessionRejectsShortDuration(t *testing.T) {
	router := spaceTestRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost,
		"/spaces/"+primitive.NewObjectID().Hex()+"/sessions",
		strings.NewReader(`{"title":"Deep work","scheduled_at":"2026-09-02T18:00:00Z","duration":3}`))
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "at least 5 minutes")
}

func TestUpdateSpaceSessionRejectsShortDuration(t *testing.T) {
	router := spaceTestRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPatch,
		"/spaces/"+primitive.NewObjectID().Hex()+"/sessions/"+primitive.NewObjectID().Hex(),
		strings.NewReader(`{"duration":4}`))
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "at least 5 minutes")
}

func TestUpdateSpaceSessionRejectsBlankTitle(t *testing.T) {
	router := spaceTestRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPatch,
		"/spaces/"+primitive.NewObjectID().Hex()+"/sessions/"+primitive.NewObjectID().Hex(),
		strings.NewReader(`{"title":"   "}`))
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
