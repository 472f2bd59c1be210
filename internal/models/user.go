package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User represents a registered GoGrind user
type User struct {
	ID          primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Email       string               `bson:"email" json:"email"`
	Username    string               `bson:"username" json:"username"`
	Password    string               `bson:"password" json:"-"`
	DisplayName string               `bson:"display_name" json:"display_name"`
	Bio         string               `bson:"bio,omitempty" json:"bio,omitempty"`
	AvatarURL   string               `bson:"avatar_url,omitempty" json:"avatar_url,omitempty"`
	Friends     []primitive.ObjectID `bson:"friends" json:"friends"`
	CreatedAt   time.Time            `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time            `bson:"updated_at" json:"updated_at"`
}

// PublicProfile returns the fields safe to expose to other users
func (u *User) PublicProfile() map[string]interface{} {
	return map[string]interface{}{
		"id":           u.ID.Hex(),
		"username":     u.Username,
		"display_name": u.DisplayName,
		"bio":          u.Bio,
		"avatar_url":   u.AvatarURL,
	}
}

// IsFriendOf reports whether the given user is in the friends list
func (u *User) IsFriendOf(userID primitive.ObjectID) bool {
	for _, id := range u.Friends {
		if id == userID {
			return true
		}
	}
	return false
}
