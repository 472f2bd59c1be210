package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestCanTransition(t *testing.T) {
	cases := []struct {
		from    SpaceSessionStatus
		to      SpaceSessionStatus
		allowed bool
	}{
		{SpaceSessionScheduled, SpaceSessionLive, true},
		{SpaceSessionScheduled, SpaceSessionCancelled, true},
		{SpaceSessionScheduled, SpaceSessionCompleted, false},
		{SpaceSessionLive, SpaceSessionCompleted, true},
		{SpaceSessionLive, SpaceSessionCancelled, true},
		{SpaceSessionLive, SpaceSessionScheduled, false},
		{SpaceSessionCompleted, SpaceSessionLive, false},
		{SpaceSessionCompleted, SpaceSessionCancelled, false},
		{SpaceSessionCancelled, SpaceSessionLive, false},
		{SpaceSessionCancelled, SpaceSessionScheduled, false},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.allowed, CanTransition(tc.from, tc.to),
			"%s -> %s", tc.from, tc.to)
	}
}

func TestIsValidSpaceSessionStatus(t *testing.T) {
	assert.True(t, IsValidSpaceSessionStatus("scheduled"))
	assert.True(t, IsValidSpaceSessionStatus("live"))
	assert.True(t, IsValidSpaceSessionStatus("completed"))
	assert.True(t, IsValidSpaceSessionStatus("cancelled"))
	assert.False(t, IsValidSpaceSessionStatus("paused"))
	assert.False(t, IsValidSpaceSessionStatus(""))
	assert.False(t, IsValidSpaceSessionStatus("LIVE"))
}

func TestSpaceMembership(t *testing.T) {
	creator := primitive.NewObjectID()
	member := primitive.NewObjectID()
	pending := primitive.NewObjectID()
	stranger := primitive.NewObjectID()

	space := &Space{
		Creator:         creator,
		Members:         []primitive.ObjectID{creator, member},
		PendingRequests: []primitive.ObjectID{pending},
	}

	assert.True(t, space.IsMember(creator))
	assert.True(t, space.IsMember(member))
	assert.False(t, space.IsMember(pending))
	assert.False(t, space.IsMember(stranger))

	assert.True(t, space.HasPendingRequest(pending))
	assert.False(t, space.HasPendingRequest(member))
}

func TestActiveStreamFor(t *testing.T) {
	streaming := primitive.NewObjectID()
	idle := primitive.NewObjectID()

	space := &Space{
		ActiveStreams: []ActiveStream{
			{User: streaming, GrindingTopic: "algorithms"},
		},
	}

	stream := space.ActiveStreamFor(streaming)
	assert.NotNil(t, stream)
	assert.Equal(t, "algorithms", stream.GrindingTopic)

	assert.Nil(t, space.ActiveStreamFor(idle))
}

func TestLiveSessionAndSessionByID(t *testing.T) {
	liveID := primitive.NewObjectID()
	scheduledID := primitive.NewObjectID()

	space := &Space{
		ActiveSessionID: &liveID,
		Sessions: []SpaceSession{
			{ID: scheduledID, Status: SpaceSessionScheduled},
			{ID: liveID, Status: SpaceSessionLive},
		},
	}

	live := space.LiveSession()
	assert.NotNil(t, live)
	assert.Equal(t, liveID, live.ID)

	space.ActiveSessionID = nil
	assert.Nil(t, space.LiveSession())

	found := space.SessionByID(scheduledID)
	assert.NotNil(t, found)
	assert.Equal(t, SpaceSessionScheduled, found.Status)

	assert.Nil(t, space.SessionByID(primitive.NewObjectID()))
}

func TestParticipantFor(t *testing.T) {
	user := primitive.NewObjectID()
	now := time.Now()

	session := &SpaceSession{
		Participants: []Participant{
			{User: user, JoinedAt: now, TotalMinutes: 30},
		},
	}

	p := session.ParticipantFor(user)
	assert.NotNil(t, p)
	assert.Equal(t, 30, p.TotalMinutes)

	assert.Nil(t, session.ParticipantFor(primitive.NewObjectID()))
}
