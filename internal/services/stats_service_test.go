package services

import (
	"testing"
	"time"

	"gogrind/internal/models"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func completedSession(user primitive.ObjectID, actual, target int, tasks []models.Task) models.Session {
	return models.Session{
		ID:             primitive.NewObjectID(),
		User:           user,
		GrindingTopic:  "focus",
		TargetDuration: target,
		ActualDuration: actual,
		StartTime:      time.Now(),
		Tasks:          tasks,
		IsCompleted:    true,
	}
}

func TestComputeSpaceStatsEmpty(t *testing.T) {
	stats := ComputeSpaceStats(nil)

	assert.Equal(t, 0, stats.TotalSessions)
	assert.Equal(t, 0, stats.TotalMinutes)
	assert.Equal(t, float64(0), stats.AverageMinutes)
	assert.Equal(t, float64(0), stats.TaskCompletionRate)
	assert.Equal(t, float64(0), stats.SessionCompletionRate)
	assert.Equal(t, 0, stats.DistinctParticipants)
	assert.Empty(t, stats.RecentSessions)
}

func TestComputeSpaceStatsTotals(t *testing.T) {
	alice := primitive.NewObjectID()
	bob := primitive.NewObjectID()

	sessions := []models.Session{
		completedSession(alice, 60, 45, []models.Task{
			{ID: primitive.NewObjectID(), Title: "read", IsCompleted: true},
			{ID: primitive.NewObjectID(), Title: "write", IsCompleted: false},
		}),
		completedSession(bob, 25, 30, []models.Task{
			{ID: primitive.NewObjectID(), Title: "review", IsCompleted: true},
		}),
		completedSession(alice, 35, 30, nil),
	}

	stats := ComputeSpaceStats(sessions)

	assert.Equal(t, 3, stats.TotalSessions)
	assert.Equal(t, 120, stats.TotalMinutes)
	assert.Equal(t, 2, stats.DistinctParticipants)

	// 120 / 3
	assert.Equal(t, float64(40), stats.AverageMinutes)

	// 2 of 3 tasks completed
	assert.InDelta(t, 66.67, stats.TaskCompletionRate, 0.001)

	// 2 of 3 sessions met their target
	assert.InDelta(t, 66.67, stats.SessionCompletionRate, 0.001)

	assert.Len(t, stats.RecentSessions, 3)
	assert.Equal(t, 2, stats.RecentSessions[0].TasksTotal)
	assert.Equal(t, 1, stats.RecentSessions[0].TasksCompleted)
}

func TestComputeSpaceStatsRecentCap(t *testing.T) {
	user := primitive.NewObjectID()

	sessions := make([]models.Session, 0, 15)
	for i := 0; i < 15; i++ {
		sessions = append(sessions, completedSession(user, 30, 30, nil))
	}

	stats := ComputeSpaceStats(sessions)

	assert.Equal(t, 15, stats.TotalSessions)
	assert.Len(t, stats.RecentSessions, 10)
}

func TestComputeSpaceStatsRounding(t *testing.T) {
	user := primitive.NewObjectID()

	sessions := []models.Session{
		completedSession(user, 10, 30, nil),
		completedSession(user, 10, 30, nil),
		completedSession(user, 11, 30, nil),
	}

	stats := ComputeSpaceStats(sessions)

	// 31 / 3 = 10.333...
	assert.Equal(t, 10.33, stats.AverageMinutes)
	assert.Equal(t, float64(0), stats.SessionCompletionRate)
}

func TestRecomputeSessionHours(t *testing.T) {
	session := &models.SpaceSession{
		Participants: []models.Participant{
			{User: primitive.NewObjectID(), TotalMinutes: 90},
			{User: primitive.NewObjectID(), TotalMinutes: 45},
			{User: primitive.NewObjectID(), TotalMinutes: 0},
		},
		Stats: models.SpaceSessionStats{
			// A drifted accumulator must not leak into the result
			TotalHoursGrinded: 99,
		},
	}

	assert.Equal(t, 2.25, RecomputeSessionHours(session))
}

func TestRecomputeSessionHoursEmpty(t *testing.T) {
	assert.Equal(t, float64(0), RecomputeSessionHours(&models.SpaceSession{}))
}

func TestApplyRecomputedHours(t *testing.T) {
	sessions := []models.SpaceSession{
		{
			Participants: []models.Participant{
				{User: primitive.NewObjectID(), TotalMinutes: 60},
				{User: primitive.NewObjectID(), TotalMinutes: 30},
			},
			Stats: models.SpaceSessionStats{TotalHoursGrinded: 42},
		},
		{
			Stats: models.SpaceSessionStats{TotalHoursGrinded: 7},
		},
	}

	ApplyRecomputedHours(sessions)

	assert.Equal(t, 1.5, sessions[0].Stats.TotalHoursGrinded)
	assert.Equal(t, float64(0), sessions[1].Stats.TotalHoursGrinded)
}
