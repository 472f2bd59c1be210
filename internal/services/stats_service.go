package services

import (
	"context"
	"fmt"
	"time"

	"gogrind/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// StatsService computes space-level focus statistics. Results are
// recomputed from the completed sessions on every call; there is no
// cached aggregate to go stale.
type StatsService struct {
	sessions *mongo.Collection
}

func NewStatsService(db *mongo.Database) *StatsService {
	return &StatsService{
		sessions: db.Collection("sessions"),
	}
}

// SpaceStats is the summary returned for a space
type SpaceStats struct {
	TotalSessions         int              `json:"total_sessions"`
	TotalMinutes          int              `json:"total_minutes"`
	AverageMinutes        float64          `json:"average_minutes"`
	TaskCompletionRate    float64          `json:"task_completion_rate"`    // percent
	SessionCompletionRate float64          `json:"session_completion_rate"` // percent
	DistinctParticipants  int              `json:"distinct_participants"`
	RecentSessions        []SessionSummary `json:"recent_sessions"`
}

// SessionSummary is the denormalized per-session view inside SpaceStats
type SessionSummary struct {
	ID             primitive.ObjectID `json:"id"`
	User           primitive.ObjectID `json:"user"`
	GrindingTopic  string             `json:"grinding_topic"`
	TargetDuration int                `json:"target_duration"`
	ActualDuration int                `json:"actual_duration"`
	StartTime      time.Time          `json:"start_time"`
	TasksTotal     int                `json:"tasks_total"`
	TasksCompleted int                `json:"tasks_completed"`
}

// GetSpaceStats loads the space's completed sessions and computes the summary
func (s *StatsService) GetSpaceStats(spaceID primitive.ObjectID) (*SpaceStats, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "start_time", Value: -1}})

	cursor, err := s.sessions.Find(ctx, bson.M{
		"space":        spaceID,
		"is_completed": true,
	}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to load sessions: %w", err)
	}
	defer cursor.Close(ctx)

	sessions := []models.Session{}
	if err = cursor.All(ctx, &sessions); err != nil {
		return nil, fmt.Errorf("failed to decode sessions: %w", err)
	}

	return ComputeSpaceStats(sessions), nil
}

// ComputeSpaceStats aggregates completed sessions into a SpaceStats.
// Sessions must be sorted by start time descending; rounding to two
// decimals happens here and only here.
func ComputeSpaceStats(sessions []models.Session) *SpaceStats {
	stats := &SpaceStats{
		RecentSessions: []SessionSummary{},
	}

	totalMinutes := 0
	totalTasks := 0
	completedTasks := 0
	targetMet := 0
	participants := map[primitive.ObjectID]struct{}{}

	for _, session := range sessions {
		totalMinutes += session.ActualDuration
		totalTasks += len(session.Tasks)
		for _, task := range session.Tasks {
			if task.IsCompleted {
				completedTasks++
			}
		}
		if session.ActualDuration >= session.TargetDuration {
			targetMet++
		}
		participants[session.User] = struct{}{}
	}

	stats.TotalSessions = len(sessions)
	stats.TotalMinutes = totalMinutes
	stats.DistinctParticipants = len(participants)

	if len(sessions) > 0 {
		stats.AverageMinutes = round2(float64(totalMinutes) / float64(len(sessions)))
		stats.SessionCompletionRate = round2(float64(targetMet) / float64(len(sessions)) * 100)
	}
	if totalTasks > 0 {
		stats.TaskCompletionRate = round2(float64(completedTasks) / float64(totalTasks) * 100)
	}

	for i, session := range sessions {
		if i >= 10 {
			break
		}
		done := 0
		for _, task := range session.Tasks {
			if task.IsCompleted {
				done++
			}
		}
		stats.RecentSessions = append(stats.RecentSessions, SessionSummary{
			ID:             session.ID,
			User:           session.User,
			GrindingTopic:  session.GrindingTopic,
			TargetDuration: session.TargetDuration,
			ActualDuration: session.ActualDuration,
			StartTime:      session.StartTime,
			TasksTotal:     len(session.Tasks),
			TasksCompleted: done,
		})
	}

	return stats
}

// RecomputeSessionHours derives a space session's grinded hours from its
// participant records. The embedded running accumulator can drift across
// many join/leave cycles; the participant list is authoritative on read.
func RecomputeSessionHours(session *models.SpaceSession) float64 {
	total := 0
	for _, p := range session.Participants {
		total += p.TotalMinutes
	}
	return round2(float64(total) / 60)
}

// ApplyRecomputedHours overwrites each session's stored hours accumulator
// with the figure derived from its participants. Called wherever space
// sessions are served to clients.
func ApplyRecomputedHours(sessions []models.SpaceSession) {
	for i := range sessions {
		sessions[i].Stats.TotalHoursGrinded = RecomputeSessionHours(&sessions[i])
	}
}
