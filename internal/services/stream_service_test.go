package services

import (
	"testing"
	"time"

	"gogrind/internal/models"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestJoinPrecheckLatch(t *testing.T) {
	creator := primitive.NewObjectID()
	member := primitive.NewObjectID()
	stranger := primitive.NewObjectID()

	space := &models.Space{
		Creator: creator,
		Members: []primitive.ObjectID{creator, member},
	}

	// Until the creator first joins, members wait outside
	assert.ErrorIs(t, joinPrecheck(space, member), ErrStreamNotInitialized)
	assert.NoError(t, joinPrecheck(space, creator))

	// Once the latch flips it never blocks again
	space.StreamInitialized = true
	assert.NoError(t, joinPrecheck(space, member))

	assert.ErrorIs(t, joinPrecheck(space, stranger), ErrNotMember)
}

func TestJoinPrecheckRejectsSecondPresence(t *testing.T) {
	member := primitive.NewObjectID()

	space := &models.Space{
		Creator:           primitive.NewObjectID(),
		Members:           []primitive.ObjectID{member},
		StreamInitialized: true,
		ActiveStreams: []models.ActiveStream{
			{User: member, GrindingTopic: "reading"},
		},
	}

	assert.ErrorIs(t, joinPrecheck(space, member), ErrAlreadyStreaming)
}

func TestJoinStreamWriteExcludesExistingPresence(t *testing.T) {
	spaceID := primitive.NewObjectID()
	userID := primitive.NewObjectID()
	now := time.Now()
	entry := models.ActiveStream{User: userID, GrindingTopic: "math", JoinedAt: now}

	filter, update := joinStreamWrite(spaceID, userID, entry, now)

	// The filter misses spaces that already carry an entry for the user,
	// so a racing duplicate join matches nothing
	assert.Equal(t, spaceID, filter["_id"])
	assert.Equal(t, bson.M{"$ne": userID}, filter["active_streams.user"])

	assert.Equal(t, bson.M{"active_streams": entry}, update["$push"])

	set := update["$set"].(bson.M)
	assert.Equal(t, true, set["stream_initialized"])
}
