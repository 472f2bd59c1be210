package utils

import (
	"regexp"
	"strings"
)

var (
	emailRegex    = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	usernameRegex = regexp.MustCompile(`^[a-zA-Z0-9_]{3,20}$`)
)

// MinTargetDuration is the shortest focus session a user may start, in minutes
const MinTargetDuration = 5

// ValidateEmail checks email format
func ValidateEmail(email string) bool {
	return emailRegex.MatchString(email)
}

// ValidateUsername checks username format (letters, digits, underscores, 3-20 chars)
func ValidateUsername(username string) bool {
	return usernameRegex.MatchString(username)
}

// ValidatePassword requires at least 8 characters
func ValidatePassword(password string) bool {
	return len(password) >= 8
}

// ValidateGrindingTopic requires a non-empty topic after trimming
func ValidateGrindingTopic(topic string) bool {
	return strings.TrimSpace(topic) != ""
}

// ValidateTargetDuration requires the minimum focus duration
func ValidateTargetDuration(minutes int) bool {
	return minutes >= MinTargetDuration
}

// ValidateTaskTitle requires a non-empty title after trimming
func ValidateTaskTitle(title string) bool {
	return strings.TrimSpace(title) != ""
}

// ValidateSpaceName requires 1-100 characters after trimming
func ValidateSpaceName(name string) bool {
	trimmed := strings.TrimSpace(name)
	return trimmed != "" && len(trimmed) <= 100
}
