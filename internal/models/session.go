package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Session is one user's personal focus-timer record inside a space.
// It is created when the user joins the space's stream and completed
// when they leave or are removed.
type Session struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	User           primitive.ObjectID `bson:"user" json:"user"`
	Space          primitive.ObjectID `bson:"space" json:"space"`
	GrindingTopic  string             `bson:"grinding_topic" json:"grinding_topic"`
	TargetDuration int                `bson:"target_duration" json:"target_duration"` // minutes
	ActualDuration int                `bson:"actual_duration" json:"actual_duration"` // minutes, set at completion
	StartTime      time.Time          `bson:"start_time" json:"start_time"`
	EndTime        *time.Time         `bson:"end_time,omitempty" json:"end_time,omitempty"`
	Tasks          []Task             `bson:"tasks" json:"tasks"`
	IsCompleted    bool               `bson:"is_completed" json:"is_completed"`
	Encouragements []Encouragement    `bson:"encouragements" json:"encouragements"`
	MediaUsage     MediaUsage         `bson:"media_usage" json:"media_usage"`
	CreatedAt      time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt      time.Time          `bson:"updated_at" json:"updated_at"`
}

// Task is a checklist item inside a session
type Task struct {
	ID          primitive.ObjectID `bson:"_id" json:"id"`
	Title       string             `bson:"title" json:"title"`
	IsCompleted bool               `bson:"is_completed" json:"is_completed"`
	CompletedAt *time.Time         `bson:"completed_at,omitempty" json:"completed_at,omitempty"`
}

// Encouragement is a reaction left by another user, at most one per user
type Encouragement struct {
	User      primitive.ObjectID `bson:"user" json:"user"`
	Timestamp time.Time          `bson:"timestamp" json:"timestamp"`
}

// MediaUsage records which media the user had enabled while streaming
type MediaUsage struct {
	VideoEnabled bool `bson:"video_enabled" json:"video_enabled"`
	AudioEnabled bool `bson:"audio_enabled" json:"audio_enabled"`
}

// EncouragedBy reports whether the user already left an encouragement
func (s *Session) EncouragedBy(userID primitive.ObjectID) bool {
	for _, e := range s.Encouragements {
		if e.User == userID {
			return true
		}
	}
	return false
}

// TaskByID returns the task with the given id, if any
func (s *Session) TaskByID(taskID primitive.ObjectID) *Task {
	for i := range s.Tasks {
		if s.Tasks[i].ID == taskID {
			return &s.Tasks[i]
		}
	}
	return nil
}
