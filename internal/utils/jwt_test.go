package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestUserJWTRoundTrip(t *testing.T) {
	userID := primitive.NewObjectID().Hex()

	token, err := GenerateUserJWT(userID, "grinder")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ValidateUserJWT(token)
	require.NoError(t, err)

	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, "grinder", claims.Username)
	assert.Equal(t, userID, claims.Subject)
}

func TestValidateUserJWTRejectsGarbage(t *testing.T) {
	_, err := ValidateUserJWT("not-a-token")
	assert.Error(t, err)

	_, err = ValidateUserJWT("")
	assert.Error(t, err)
}

func TestValidateUserJWTRejectsTamperedToken(t *testing.T) {
	token, err := GenerateUserJWT(primitive.NewObjectID().Hex(), "grinder")
	require.NoError(t, err)

	tampered := token[:len(token)-2] + "xx"
	_, err = ValidateUserJWT(tampered)
	assert.Error(t, err)
}
