package services

// Notifier pushes best-effort real-time events to connected clients.
// The REST API stays authoritative; a nil Notifier disables push.
type Notifier interface {
	NotifyUser(userID, event string, payload interface{})
	NotifySpace(spaceID, excludeUserID, event string, payload interface{})
}

func notifyUser(n Notifier, userID, event string, payload interface{}) {
	if n != nil {
		n.NotifyUser(userID, event, payload)
	}
}

func notifySpace(n Notifier, spaceID, excludeUserID, event string, payload interface{}) {
	if n != nil {
		n.NotifySpace(spaceID, excludeUserID, event, payload)
	}
}
