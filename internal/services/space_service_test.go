package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// The membership writes must keep members and pending_requests disjoint:
// a join request lands only when the user is in neither set, and approval
// pulls from pending in the same statement that adds to members.

func TestRequestJoinWriteExcludesBothSets(t *testing.T) {
	spaceID := primitive.NewObjectID()
	userID := primitive.NewObjectID()

	filter, update := requestJoinWrite(spaceID, userID)

	assert.Equal(t, spaceID, filter["_id"])
	assert.Equal(t, bson.M{"$ne": userID}, filter["members"])
	assert.Equal(t, bson.M{"$ne": userID}, filter["pending_requests"])

	assert.Equal(t, bson.M{"pending_requests": userID}, update["$addToSet"])
	_, touchesMembers := update["$pull"]
	assert.False(t, touchesMembers)
}

func TestApproveJoinWriteMovesBetweenSets(t *testing.T) {
	spaceID := primitive.NewObjectID()
	userID := primitive.NewObjectID()

	filter, update := approveJoinWrite(spaceID, userID)

	// Only a currently pending user can be approved
	assert.Equal(t, userID, filter["pending_requests"])

	// Pull and add happen in one statement
	assert.Equal(t, bson.M{"pending_requests": userID}, update["$pull"])
	assert.Equal(t, bson.M{"members": userID}, update["$addToSet"])
}

func TestRejectJoinWriteOnlyDropsPending(t *testing.T) {
	spaceID := primitive.NewObjectID()
	userID := primitive.NewObjectID()

	_, update := rejectJoinWrite(spaceID, userID)

	assert.Equal(t, bson.M{"pending_requests": userID}, update["$pull"])
	_, addsAnything := update["$addToSet"]
	assert.False(t, addsAnything)
}
