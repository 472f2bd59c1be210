package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// FriendRequestStatus is the state of a friend request
type FriendRequestStatus string

const (
	FriendRequestPending  FriendRequestStatus = "pending"
	FriendRequestAccepted FriendRequestStatus = "accepted"
)

// FriendRequest links two users. Declined or cancelled requests are
// deleted; accepted requests are kept to block duplicates and to drive
// the "accepted" badge on the sender's side.
type FriendRequest struct {
	ID                 primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	Sender             primitive.ObjectID  `bson:"sender" json:"sender"`
	Recipient          primitive.ObjectID  `bson:"recipient" json:"recipient"`
	Status             FriendRequestStatus `bson:"status" json:"status"`
	IsNotificationSeen bool                `bson:"is_notification_seen" json:"is_notification_seen"`
	CreatedAt          time.Time           `bson:"created_at" json:"created_at"`
	UpdatedAt          time.Time           `bson:"updated_at" json:"updated_at"`
}
