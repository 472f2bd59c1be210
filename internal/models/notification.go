package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// NotificationType is the closed set of notification kinds
type NotificationType string

const (
	NotificationFriendRequest     NotificationType = "friend_request"
	NotificationFriendAccepted    NotificationType = "friend_accepted"
	NotificationJoinRequest       NotificationType = "join_request"
	NotificationJoinApproved      NotificationType = "join_approved"
	NotificationJoinRejected      NotificationType = "join_rejected"
	NotificationSessionStarted    NotificationType = "session_started"
	NotificationRemovedFromStream NotificationType = "removed_from_stream"
	NotificationEncouragement     NotificationType = "encouragement"
	NotificationAnnouncement      NotificationType = "announcement"
)

// Notification is a per-user message produced as a side effect of a
// state-changing operation. Correlation for later cleanup happens through
// the typed related ids, not a free-form metadata bag.
type Notification struct {
	ID             primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	Recipient      primitive.ObjectID  `bson:"recipient" json:"recipient"`
	Sender         primitive.ObjectID  `bson:"sender" json:"sender"`
	Type           NotificationType    `bson:"type" json:"type"`
	Message        string              `bson:"message" json:"message"`
	RelatedSpace   *primitive.ObjectID `bson:"related_space,omitempty" json:"related_space,omitempty"`
	RelatedSession *primitive.ObjectID `bson:"related_session,omitempty" json:"related_session,omitempty"`
	Read           bool                `bson:"read" json:"read"`
	CreatedAt      time.Time           `bson:"created_at" json:"created_at"`
}
