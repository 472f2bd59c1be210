package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateEmail(t *testing.T) {
	assert.True(t, ValidateEmail("user@example.com"))
	assert.True(t, ValidateEmail("first.last+tag@sub.example.co"))
	assert.False(t, ValidateEmail(""))
	assert.False(t, ValidateEmail("no-at-sign"))
	assert.False(t, ValidateEmail("user@"))
	assert.False(t, ValidateEmail("user@domain"))
	assert.False(t, ValidateEmail("@example.com"))
}

func TestValidateUsername(t *testing.T) {
	assert.True(t, ValidateUsername("grinder_42"))
	assert.True(t, ValidateUsername("abc"))
	assert.True(t, ValidateUsername(strings.Repeat("a", 20)))
	assert.False(t, ValidateUsername("ab"))
	assert.False(t, ValidateUsername(strings.Repeat("a", 21)))
	assert.False(t, ValidateUsername("has space"))
	assert.False(t, ValidateUsername("dash-ed"))
	assert.False(t, ValidateUsername(""))
}

func TestValidatePassword(t *testing.T) {
	assert.True(t, ValidatePassword("12345678"))
	assert.True(t, ValidatePassword("correct horse battery"))
	assert.False(t, ValidatePassword("1234567"))
	assert.False(t, ValidatePassword(""))
}

func TestValidateGrindingTopic(t *testing.T) {
	assert.True(t, ValidateGrindingTopic("leetcode"))
	assert.False(t, ValidateGrindingTopic(""))
	assert.False(t, ValidateGrindingTopic("   "))
}

func TestValidateTargetDuration(t *testing.T) {
	assert.True(t, ValidateTargetDuration(MinTargetDuration))
	assert.True(t, ValidateTargetDuration(120))
	assert.False(t, ValidateTargetDuration(MinTargetDuration-1))
	assert.False(t, ValidateTargetDuration(0))
	assert.False(t, ValidateTargetDuration(-10))
}

func TestValidateSpaceName(t *testing.T) {
	assert.True(t, ValidateSpaceName("Morning Grind"))
	assert.True(t, ValidateSpaceName(strings.Repeat("x", 100)))
	assert.False(t, ValidateSpaceName(""))
	assert.False(t, ValidateSpaceName("   "))
	assert.False(t, ValidateSpaceName(strings.Repeat("x", 101)))
}
