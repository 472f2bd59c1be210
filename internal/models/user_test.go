package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestIsFriendOf(t *testing.T) {
	friend := primitive.NewObjectID()
	stranger := primitive.NewObjectID()

	user := &User{
		Friends: []primitive.ObjectID{friend},
	}

	assert.True(t, user.IsFriendOf(friend))
	assert.False(t, user.IsFriendOf(stranger))

	empty := &User{}
	assert.False(t, empty.IsFriendOf(friend))
}

func TestPublicProfileOmitsPrivateFields(t *testing.T) {
	user := &User{
		ID:          primitive.NewObjectID(),
		Email:       "secret@example.com",
		Username:    "grinder",
		Password:    "hashed",
		DisplayName: "The Grinder",
		Bio:         "deep work",
	}

	profile := user.PublicProfile()

	assert.Equal(t, "grinder", profile["username"])
	assert.Equal(t, "The Grinder", profile["display_name"])
	assert.NotContains(t, profile, "email")
	assert.NotContains(t, profile, "password")
	assert.NotContains(t, profile, "friends")
}
