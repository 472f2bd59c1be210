package services

import (
	"testing"
	"time"

	"gogrind/internal/models"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestEncouragementAtMostOnePerUser(t *testing.T) {
	owner := primitive.NewObjectID()
	cheerer := primitive.NewObjectID()

	session := &models.Session{
		User: owner,
		Encouragements: []models.Encouragement{
			{User: cheerer, Timestamp: time.Now()},
		},
	}

	// A second add from the same user is rejected
	assert.ErrorIs(t, canEncourage(session, cheerer), ErrAlreadyEncouraged)

	// Anyone else can still add one
	assert.NoError(t, canEncourage(session, primitive.NewObjectID()))
}

func TestRemoveEncouragementRequiresPriorAdd(t *testing.T) {
	cheerer := primitive.NewObjectID()

	session := &models.Session{
		User: primitive.NewObjectID(),
		Encouragements: []models.Encouragement{
			{User: cheerer, Timestamp: time.Now()},
		},
	}

	assert.NoError(t, canRemoveEncouragement(session, cheerer))
	assert.ErrorIs(t, canRemoveEncouragement(session, primitive.NewObjectID()), ErrNotEncouraged)
}
