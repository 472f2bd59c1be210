package services

import "errors"

// Sentinel errors let handlers map service failures to HTTP statuses
// without string matching.
var (
	// not found (404)
	ErrUserNotFound         = errors.New("user not found")
	ErrSpaceNotFound        = errors.New("space not found")
	ErrSessionNotFound      = errors.New("session not found")
	ErrSpaceSessionNotFound = errors.New("space session not found")
	ErrTaskNotFound         = errors.New("task not found")
	ErrNotificationNotFound = errors.New("notification not found")
	ErrRequestNotFound      = errors.New("friend request not found")
	ErrAnnouncementNotFound = errors.New("announcement not found")

	// authorization (403)
	ErrNotMember            = errors.New("user is not a member of this space")
	ErrNotCreator           = errors.New("only the space creator may perform this action")
	ErrNotSessionOwner      = errors.New("session belongs to another user")
	ErrStreamNotInitialized = errors.New("stream has not been initialized by the creator")
	ErrNotFriends           = errors.New("users are not friends")

	// validation / state (400)
	ErrAlreadyStreaming       = errors.New("user already has an active stream in this space")
	ErrNoActiveStream         = errors.New("user has no active stream in this space")
	ErrInvalidTransition      = errors.New("invalid session status transition")
	ErrSessionCompleted       = errors.New("session is already completed")
	ErrSessionLive            = errors.New("space session is live")
	ErrAlreadyMember          = errors.New("user is already a member")
	ErrAlreadyPending         = errors.New("join request is already pending")
	ErrCreatorCannotLeave     = errors.New("creator cannot leave their own space")
	ErrSelfFriendRequest      = errors.New("cannot send a friend request to yourself")
	ErrDuplicateFriendRequest = errors.New("a friend request already exists between these users")
	ErrAlreadyEncouraged      = errors.New("user already encouraged this session")
	ErrNotEncouraged          = errors.New("user has not encouraged this session")

	// conflict (409)
	ErrEmailTaken    = errors.New("email already registered")
	ErrUsernameTaken = errors.New("username already taken")
)
