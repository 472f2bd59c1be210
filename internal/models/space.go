package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SpaceSessionStatus is the lifecycle state of a scheduled space session
type SpaceSessionStatus string

const (
	SpaceSessionScheduled SpaceSessionStatus = "scheduled"
	SpaceSessionLive      SpaceSessionStatus = "live"
	SpaceSessionCompleted SpaceSessionStatus = "completed"
	SpaceSessionCancelled SpaceSessionStatus = "cancelled"
)

// spaceSessionTransitions is the set of sanctioned status transitions.
// Anything not listed here is rejected before the document is touched.
var spaceSessionTransitions = map[SpaceSessionStatus][]SpaceSessionStatus{
	SpaceSessionScheduled: {SpaceSessionLive, SpaceSessionCancelled},
	SpaceSessionLive:      {SpaceSessionCompleted, SpaceSessionCancelled},
}

// CanTransition reports whether a space session may move from one status to another
func CanTransition(from, to SpaceSessionStatus) bool {
	for _, next := range spaceSessionTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// IsValidSpaceSessionStatus reports whether the string is a known status
func IsValidSpaceSessionStatus(s string) bool {
	switch SpaceSessionStatus(s) {
	case SpaceSessionScheduled, SpaceSessionLive, SpaceSessionCompleted, SpaceSessionCancelled:
		return true
	}
	return false
}

// Space represents a study group with live streams and scheduled sessions
type Space struct {
	ID                primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Name              string               `bson:"name" json:"name"`
	Description       string               `bson:"description,omitempty" json:"description,omitempty"`
	Skill             string               `bson:"skill" json:"skill"`
	Creator           primitive.ObjectID   `bson:"creator" json:"creator"`
	Members           []primitive.ObjectID `bson:"members" json:"members"`
	PendingRequests   []primitive.ObjectID `bson:"pending_requests" json:"pending_requests"`
	IsActive          bool                 `bson:"is_active" json:"is_active"`
	StreamInitialized bool                 `bson:"stream_initialized" json:"stream_initialized"`
	StreamRoomID      string               `bson:"stream_room_id" json:"stream_room_id"`
	ActiveSessionID   *primitive.ObjectID  `bson:"active_session_id,omitempty" json:"active_session_id,omitempty"`
	ActiveStreams     []ActiveStream       `bson:"active_streams" json:"active_streams"`
	Sessions          []SpaceSession       `bson:"sessions" json:"sessions"`
	Announcements     []Announcement       `bson:"announcements" json:"announcements"`
	CreatedAt         time.Time            `bson:"created_at" json:"created_at"`
	UpdatedAt         time.Time            `bson:"updated_at" json:"updated_at"`
}

// ActiveStream marks one user as currently present in the space's video room.
// At most one entry per user per space.
type ActiveStream struct {
	User           primitive.ObjectID `bson:"user" json:"user"`
	GrindingTopic  string             `bson:"grinding_topic" json:"grinding_topic"`
	SessionID      primitive.ObjectID `bson:"session_id" json:"session_id"`
	IsVideoEnabled bool               `bson:"is_video_enabled" json:"is_video_enabled"`
	IsAudioEnabled bool               `bson:"is_audio_enabled" json:"is_audio_enabled"`
	JoinedAt       time.Time          `bson:"joined_at" json:"joined_at"`
}

// SpaceSession is a scheduled group event hosted inside a space
type SpaceSession struct {
	ID           primitive.ObjectID `bson:"_id" json:"id"`
	Title        string             `bson:"title" json:"title"`
	Description  string             `bson:"description,omitempty" json:"description,omitempty"`
	ScheduledAt  time.Time          `bson:"scheduled_at" json:"scheduled_at"`
	Duration     int                `bson:"duration" json:"duration"` // planned minutes
	Host         primitive.ObjectID `bson:"host" json:"host"`
	Status       SpaceSessionStatus `bson:"status" json:"status"`
	StreamURL    string             `bson:"stream_url,omitempty" json:"stream_url,omitempty"`
	StartedAt    *time.Time         `bson:"started_at,omitempty" json:"started_at,omitempty"`
	EndedAt      *time.Time         `bson:"ended_at,omitempty" json:"ended_at,omitempty"`
	Participants []Participant      `bson:"participants" json:"participants"`
	Stats        SpaceSessionStats  `bson:"stats" json:"stats"`
	CreatedAt    time.Time          `bson:"created_at" json:"created_at"`
}

// Participant records one user's attendance of a space session
type Participant struct {
	User         primitive.ObjectID `bson:"user" json:"user"`
	JoinedAt     time.Time          `bson:"joined_at" json:"joined_at"`
	LeftAt       *time.Time         `bson:"left_at,omitempty" json:"left_at,omitempty"`
	TotalMinutes int                `bson:"total_minutes" json:"total_minutes"`
}

// SpaceSessionStats is the running summary kept on a space session
type SpaceSessionStats struct {
	TotalParticipants int     `bson:"total_participants" json:"total_participants"`
	TotalHoursGrinded float64 `bson:"total_hours_grinded" json:"total_hours_grinded"`
	ActualDuration    int     `bson:"actual_duration" json:"actual_duration"` // minutes
}

// Announcement is a creator-posted notice, kept newest first
type Announcement struct {
	ID        primitive.ObjectID `bson:"_id" json:"id"`
	Author    primitive.ObjectID `bson:"author" json:"author"`
	Content   string             `bson:"content" json:"content"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
}

// IsMember reports whether the user belongs to the space
func (s *Space) IsMember(userID primitive.ObjectID) bool {
	for _, id := range s.Members {
		if id == userID {
			return true
		}
	}
	return false
}

// HasPendingRequest reports whether the user is awaiting approval
func (s *Space) HasPendingRequest(userID primitive.ObjectID) bool {
	for _, id := range s.PendingRequests {
		if id == userID {
			return true
		}
	}
	return false
}

// ActiveStreamFor returns the user's live-presence entry, if any
func (s *Space) ActiveStreamFor(userID primitive.ObjectID) *ActiveStream {
	for i := range s.ActiveStreams {
		if s.ActiveStreams[i].User == userID {
			return &s.ActiveStreams[i]
		}
	}
	return nil
}

// SessionByID returns the embedded space session with the given id, if any
func (s *Space) SessionByID(sessionID primitive.ObjectID) *SpaceSession {
	for i := range s.Sessions {
		if s.Sessions[i].ID == sessionID {
			return &s.Sessions[i]
		}
	}
	return nil
}

// LiveSession returns the currently live space session, if any
func (s *Space) LiveSession() *SpaceSession {
	if s.ActiveSessionID == nil {
		return nil
	}
	return s.SessionByID(*s.ActiveSessionID)
}

// ParticipantFor returns the participant entry for a user, if any
func (ss *SpaceSession) ParticipantFor(userID primitive.ObjectID) *Participant {
	for i := range ss.Participants {
		if ss.Participants[i].User == userID {
			return &ss.Participants[i]
		}
	}
	return nil
}
