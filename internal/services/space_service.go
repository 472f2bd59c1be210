package services

import (
	"context"
	"fmt"
	"time"

	"gogrind/internal/models"
	"gogrind/pkg/logger"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type SpaceService struct {
	collection    *mongo.Collection
	sessions      *mongo.Collection
	notifications *NotificationService
	notifier      Notifier
	roomPrefix    string
}

func NewSpaceService(db *mongo.Database, notifications *NotificationService, notifier Notifier, roomPrefix string) *SpaceService {
	return &SpaceService{
		collection:    db.Collection("spaces"),
		sessions:      db.Collection("sessions"),
		notifications: notifications,
		notifier:      notifier,
		roomPrefix:    roomPrefix,
	}
}

// Create creates a space; the creator is its first member and the video
// room id for the external provider is issued up front.
func (s *SpaceService) Create(creator primitive.ObjectID, name, description, skill string) (*models.Space, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	space := &models.Space{
		Name:            name,
		Description:     description,
		Skill:           skill,
		Creator:         creator,
		Members:         []primitive.ObjectID{creator},
		PendingRequests: []primitive.ObjectID{},
		IsActive:        true,
		StreamRoomID:    fmt.Sprintf("%s-%s", s.roomPrefix, uuid.NewString()),
		ActiveStreams:   []models.ActiveStream{},
		Sessions:        []models.SpaceSession{},
		Announcements:   []models.Announcement{},
		CreatedAt:       time.Now(),
		UpdatedAt:       time.Now(),
	}

	result, err := s.collection.InsertOne(ctx, space)
	if err != nil {
		return nil, fmt.Errorf("failed to create space: %w", err)
	}
	space.ID = result.InsertedID.(primitive.ObjectID)

	return space, nil
}

// GetByID fetches a space by id
func (s *SpaceService) GetByID(id primitive.ObjectID) (*models.Space, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var space models.Space
	err := s.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&space)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrSpaceNotFound
		}
		return nil, fmt.Errorf("failed to get space: %w", err)
	}

	return &space, nil
}

// ListForUser returns spaces the user belongs to, paginated
func (s *SpaceService) ListForUser(userID primitive.ObjectID, page, limit int) ([]models.Space, int64, error) {
	return s.list(bson.M{"members": userID}, page, limit)
}

// Discover returns active spaces, optionally filtered by skill
func (s *SpaceService) Discover(skill string, page, limit int) ([]models.Space, int64, error) {
	filter := bson.M{"is_active": true}
	if skill != "" {
		filter["skill"] = skill
	}
	return s.list(filter, page, limit)
}

func (s *SpaceService) list(filter bson.M, page, limit int) ([]models.Space, int64, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	total, err := s.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count spaces: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))

	cursor, err := s.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list spaces: %w", err)
	}
	defer cursor.Close(ctx)

	spaces := []models.Space{}
	if err = cursor.All(ctx, &spaces); err != nil {
		return nil, 0, fmt.Errorf("failed to decode spaces: %w", err)
	}

	return spaces, total, nil
}

// Update applies a partial update; only the creator may modify a space
func (s *SpaceService) Update(id, requester primitive.ObjectID, update map[string]interface{}) error {
	space, err := s.GetByID(id)
	if err != nil {
		return err
	}
	if space.Creator != requester {
		return ErrNotCreator
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	update["updated_at"] = time.Now()

	_, err = s.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": update})
	if err != nil {
		return fmt.Errorf("failed to update space: %w", err)
	}
	return nil
}

// Delete removes a space and its embedded documents. Personal sessions
// referencing the space are kept: they are the members' own history.
func (s *SpaceService) Delete(id, requester primitive.ObjectID) error {
	space, err := s.GetByID(id)
	if err != nil {
		return err
	}
	if space.Creator != requester {
		return ErrNotCreator
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if _, err := s.collection.DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		return fmt.Errorf("failed to delete space: %w", err)
	}

	logger.LogSpaceEvent("space_deleted", id.Hex(), requester.Hex(), nil)
	return nil
}

// Membership

// The membership writes below are single conditional statements: the
// filter encodes the precondition and the update moves the user between
// the members and pending_requests sets without ever landing in both.

func requestJoinWrite(spaceID, userID primitive.ObjectID) (bson.M, bson.M) {
	filter := bson.M{
		"_id":              spaceID,
		"members":          bson.M{"$ne": userID},
		"pending_requests": bson.M{"$ne": userID},
	}
	update := bson.M{
		"$addToSet": bson.M{"pending_requests": userID},
		"$set":      bson.M{"updated_at": time.Now()},
	}
	return filter, update
}

func approveJoinWrite(spaceID, userID primitive.ObjectID) (bson.M, bson.M) {
	filter := bson.M{"_id": spaceID, "pending_requests": userID}
	update := bson.M{
		"$pull":     bson.M{"pending_requests": userID},
		"$addToSet": bson.M{"members": userID},
		"$set":      bson.M{"updated_at": time.Now()},
	}
	return filter, update
}

func rejectJoinWrite(spaceID, userID primitive.ObjectID) (bson.M, bson.M) {
	filter := bson.M{"_id": spaceID}
	update := bson.M{
		"$pull": bson.M{"pending_requests": userID},
		"$set":  bson.M{"updated_at": time.Now()},
	}
	return filter, update
}

// RequestJoin records a pending join request. The filter excludes members
// and already-pending users, which both guards the members/pending
// disjointness invariant and makes concurrent duplicate requests collapse
// into one.
func (s *SpaceService) RequestJoin(spaceID, userID primitive.ObjectID) error {
	space, err := s.GetByID(spaceID)
	if err != nil {
		return err
	}
	if space.IsMember(userID) {
		return ErrAlreadyMember
	}
	if space.HasPendingRequest(userID) {
		return ErrAlreadyPending
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	filter, update := requestJoinWrite(spaceID, userID)
	result, err := s.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to request join: %w", err)
	}
	if result.MatchedCount == 0 {
		return ErrAlreadyPending
	}

	s.notifications.Emit(&models.Notification{
		Recipient:    space.Creator,
		Sender:       userID,
		Type:         models.NotificationJoinRequest,
		Message:      fmt.Sprintf("New request to join %s", space.Name),
		RelatedSpace: &spaceID,
	})

	return nil
}

// ApproveJoin moves a user from pending to members
func (s *SpaceService) ApproveJoin(spaceID, requester, userID primitive.ObjectID) error {
	space, err := s.GetByID(spaceID)
	if err != nil {
		return err
	}
	if space.Creator != requester {
		return ErrNotCreator
	}
	if !space.HasPendingRequest(userID) {
		return ErrRequestNotFound
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	filter, update := approveJoinWrite(spaceID, userID)
	result, err := s.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to approve join: %w", err)
	}
	if result.MatchedCount == 0 {
		return ErrRequestNotFound
	}

	s.notifications.Emit(&models.Notification{
		Recipient:    userID,
		Sender:       requester,
		Type:         models.NotificationJoinApproved,
		Message:      fmt.Sprintf("Your request to join %s was approved", space.Name),
		RelatedSpace: &spaceID,
	})

	logger.LogSpaceEvent("member_approved", spaceID.Hex(), userID.Hex(), nil)
	return nil
}

// RejectJoin drops a pending join request
func (s *SpaceService) RejectJoin(spaceID, requester, userID primitive.ObjectID) error {
	space, err := s.GetByID(spaceID)
	if err != nil {
		return err
	}
	if space.Creator != requester {
		return ErrNotCreator
	}
	if !space.HasPendingRequest(userID) {
		return ErrRequestNotFound
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	filter, update := rejectJoinWrite(spaceID, userID)
	_, err = s.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to reject join: %w", err)
	}

	s.notifications.Emit(&models.Notification{
		Recipient:    userID,
		Sender:       requester,
		Type:         models.NotificationJoinRejected,
		Message:      fmt.Sprintf("Your request to join %s was declined", space.Name),
		RelatedSpace: &spaceID,
	})

	return nil
}

// Leave removes a member from the space. The creator cannot leave; the
// caller is expected to have ended any active stream first.
func (s *SpaceService) Leave(spaceID, userID primitive.ObjectID) error {
	space, err := s.GetByID(spaceID)
	if err != nil {
		return err
	}
	if space.Creator == userID {
		return ErrCreatorCannotLeave
	}
	if !space.IsMember(userID) {
		return ErrNotMember
	}

	return s.removeMember(spaceID, userID)
}

// RemoveMember kicks a member out of the space (creator only)
func (s *SpaceService) RemoveMember(spaceID, requester, userID primitive.ObjectID) error {
	space, err := s.GetByID(spaceID)
	if err != nil {
		return err
	}
	if space.Creator != requester {
		return ErrNotCreator
	}
	if space.Creator == userID {
		return ErrCreatorCannotLeave
	}
	if !space.IsMember(userID) {
		return ErrNotMember
	}

	return s.removeMember(spaceID, userID)
}

func (s *SpaceService) removeMember(spaceID, userID primitive.ObjectID) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := s.collection.UpdateOne(ctx,
		bson.M{"_id": spaceID},
		bson.M{
			"$pull": bson.M{
				"members":        userID,
				"active_streams": bson.M{"user": userID},
			},
			"$set": bson.M{"updated_at": time.Now()},
		})
	if err != nil {
		return fmt.Errorf("failed to remove member: %w", err)
	}

	logger.LogSpaceEvent("member_left", spaceID.Hex(), userID.Hex(), nil)
	return nil
}

// Announcements

// AddAnnouncement posts a creator announcement, newest first, and
// notifies every other member.
func (s *SpaceService) AddAnnouncement(spaceID, author primitive.ObjectID, content string) (*models.Announcement, error) {
	space, err := s.GetByID(spaceID)
	if err != nil {
		return nil, err
	}
	if space.Creator != author {
		return nil, ErrNotCreator
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	announcement := models.Announcement{
		ID:        primitive.NewObjectID(),
		Author:    author,
		Content:   content,
		CreatedAt: time.Now(),
	}

	_, err = s.collection.UpdateOne(ctx,
		bson.M{"_id": spaceID},
		bson.M{
			"$push": bson.M{
				"announcements": bson.M{
					"$each":     []models.Announcement{announcement},
					"$position": 0,
				},
			},
			"$set": bson.M{"updated_at": time.Now()},
		})
	if err != nil {
		return nil, fmt.Errorf("failed to add announcement: %w", err)
	}

	for _, member := range space.Members {
		if member == author {
			continue
		}
		s.notifications.Emit(&models.Notification{
			Recipient:    member,
			Sender:       author,
			Type:         models.NotificationAnnouncement,
			Message:      fmt.Sprintf("New announcement in %s", space.Name),
			RelatedSpace: &spaceID,
		})
	}

	notifySpace(s.notifier, spaceID.Hex(), author.Hex(), "announcement", announcement)

	return &announcement, nil
}

// DeleteAnnouncement removes an announcement (creator only)
func (s *SpaceService) DeleteAnnouncement(spaceID, requester, announcementID primitive.ObjectID) error {
	space, err := s.GetByID(spaceID)
	if err != nil {
		return err
	}
	if space.Creator != requester {
		return ErrNotCreator
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	result, err := s.collection.UpdateOne(ctx,
		bson.M{"_id": spaceID},
		bson.M{
			"$pull": bson.M{"announcements": bson.M{"_id": announcementID}},
			"$set":  bson.M{"updated_at": time.Now()},
		})
	if err != nil {
		return fmt.Errorf("failed to delete announcement: %w", err)
	}
	if result.ModifiedCount == 0 {
		return ErrAnnouncementNotFound
	}
	return nil
}

// Scheduled space sessions

// CreateSpaceSession schedules a group event (creator only)
func (s *SpaceService) CreateSpaceSession(spaceID, requester primitive.ObjectID, title, description string, scheduledAt time.Time, duration int) (*models.SpaceSession, error) {
	space, err := s.GetByID(spaceID)
	if err != nil {
		return nil, err
	}
	if space.Creator != requester {
		return nil, ErrNotCreator
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	session := models.SpaceSession{
		ID:           primitive.NewObjectID(),
		Title:        title,
		Description:  description,
		ScheduledAt:  scheduledAt,
		Duration:     duration,
		Host:         requester,
		Status:       models.SpaceSessionScheduled,
		Participants: []models.Participant{},
		CreatedAt:    time.Now(),
	}

	_, err = s.collection.UpdateOne(ctx,
		bson.M{"_id": spaceID},
		bson.M{
			"$push": bson.M{"sessions": session},
			"$set":  bson.M{"updated_at": time.Now()},
		})
	if err != nil {
		return nil, fmt.Errorf("failed to create space session: %w", err)
	}

	return &session, nil
}

// UpdateSpaceSession edits a scheduled session's details (creator only,
// only while it is still scheduled)
func (s *SpaceService) UpdateSpaceSession(spaceID, requester, sessionID primitive.ObjectID, update map[string]interface{}) error {
	space, err := s.GetByID(spaceID)
	if err != nil {
		return err
	}
	if space.Creator != requester {
		return ErrNotCreator
	}

	session := space.SessionByID(sessionID)
	if session == nil {
		return ErrSpaceSessionNotFound
	}
	if session.Status != models.SpaceSessionScheduled {
		return ErrSessionLive
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	set := bson.M{"updated_at": time.Now()}
	for k, v := range update {
		set["sessions.$."+k] = v
	}

	result, err := s.collection.UpdateOne(ctx,
		bson.M{
			"_id": spaceID,
			"sessions": bson.M{"$elemMatch": bson.M{
				"_id":    sessionID,
				"status": models.SpaceSessionScheduled,
			}},
		},
		bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("failed to update space session: %w", err)
	}
	if result.MatchedCount == 0 {
		return ErrSessionLive
	}
	return nil
}

// DeleteSpaceSession removes a scheduled or finished session; a live
// session must be completed or cancelled first.
func (s *SpaceService) DeleteSpaceSession(spaceID, requester, sessionID primitive.ObjectID) error {
	space, err := s.GetByID(spaceID)
	if err != nil {
		return err
	}
	if space.Creator != requester {
		return ErrNotCreator
	}

	session := space.SessionByID(sessionID)
	if session == nil {
		return ErrSpaceSessionNotFound
	}
	if session.Status == models.SpaceSessionLive {
		return ErrSessionLive
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err = s.collection.UpdateOne(ctx,
		bson.M{"_id": spaceID},
		bson.M{
			"$pull": bson.M{"sessions": bson.M{"_id": sessionID}},
			"$set":  bson.M{"updated_at": time.Now()},
		})
	if err != nil {
		return fmt.Errorf("failed to delete space session: %w", err)
	}
	return nil
}

// UpdateSessionStatus drives the space session state machine. Only the
// transitions in the models transition table are accepted; the Mongo
// filter re-checks the expected current status so two racing requests
// cannot both apply.
func (s *SpaceService) UpdateSessionStatus(spaceID, sessionID, requester primitive.ObjectID, status models.SpaceSessionStatus, streamURL string) (*models.SpaceSession, error) {
	space, err := s.GetByID(spaceID)
	if err != nil {
		return nil, err
	}
	if space.Creator != requester {
		return nil, ErrNotCreator
	}

	session := space.SessionByID(sessionID)
	if session == nil {
		return nil, ErrSpaceSessionNotFound
	}

	if !models.CanTransition(session.Status, status) {
		return nil, ErrInvalidTransition
	}

	switch status {
	case models.SpaceSessionLive:
		return s.startSession(space, session, requester, streamURL)
	case models.SpaceSessionCompleted, models.SpaceSessionCancelled:
		if session.Status == models.SpaceSessionScheduled {
			// scheduled -> cancelled: nothing live to unwind
			return s.cancelScheduled(space.ID, session)
		}
		return s.endSession(space, session, requester, status)
	default:
		return nil, ErrInvalidTransition
	}
}

func (s *SpaceService) startSession(space *models.Space, session *models.SpaceSession, actor primitive.ObjectID, streamURL string) (*models.SpaceSession, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	now := time.Now()

	set := bson.M{
		"sessions.$.status":     models.SpaceSessionLive,
		"sessions.$.started_at": now,
		"active_session_id":     session.ID,
		"updated_at":            now,
	}
	if streamURL != "" {
		set["sessions.$.stream_url"] = streamURL
	}

	result, err := s.collection.UpdateOne(ctx,
		bson.M{
			"_id": space.ID,
			"sessions": bson.M{"$elemMatch": bson.M{
				"_id":    session.ID,
				"status": models.SpaceSessionScheduled,
			}},
		},
		bson.M{"$set": set})
	if err != nil {
		return nil, fmt.Errorf("failed to start space session: %w", err)
	}
	if result.MatchedCount == 0 {
		return nil, ErrInvalidTransition
	}

	session.Status = models.SpaceSessionLive
	session.StartedAt = &now
	if streamURL != "" {
		session.StreamURL = streamURL
	}

	for _, member := range space.Members {
		if member == actor {
			continue
		}
		s.notifications.Emit(&models.Notification{
			Recipient:      member,
			Sender:         actor,
			Type:           models.NotificationSessionStarted,
			Message:        fmt.Sprintf("%s is live in %s", session.Title, space.Name),
			RelatedSpace:   &space.ID,
			RelatedSession: &session.ID,
		})
	}

	notifySpace(s.notifier, space.ID.Hex(), actor.Hex(), "session_started", session)

	logger.LogSpaceEvent("session_started", space.ID.Hex(), actor.Hex(), map[string]interface{}{
		"space_session_id": session.ID.Hex(),
	})

	return session, nil
}

func (s *SpaceService) cancelScheduled(spaceID primitive.ObjectID, session *models.SpaceSession) (*models.SpaceSession, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	now := time.Now()

	result, err := s.collection.UpdateOne(ctx,
		bson.M{
			"_id": spaceID,
			"sessions": bson.M{"$elemMatch": bson.M{
				"_id":    session.ID,
				"status": models.SpaceSessionScheduled,
			}},
		},
		bson.M{"$set": bson.M{
			"sessions.$.status":   models.SpaceSessionCancelled,
			"sessions.$.ended_at": now,
			"updated_at":          now,
		}})
	if err != nil {
		return nil, fmt.Errorf("failed to cancel space session: %w", err)
	}
	if result.MatchedCount == 0 {
		return nil, ErrInvalidTransition
	}

	session.Status = models.SpaceSessionCancelled
	session.EndedAt = &now
	return session, nil
}

// endSession closes a live session: every participant still present is
// closed out at the end instant, the attending members' stream presence
// is cleared, and their personal sessions are completed so no focus
// record is left dangling in progress.
func (s *SpaceService) endSession(space *models.Space, session *models.SpaceSession, actor primitive.ObjectID, status models.SpaceSessionStatus) (*models.SpaceSession, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	now := time.Now()

	session.Status = status
	session.EndedAt = &now
	if session.StartedAt != nil {
		session.Stats.ActualDuration = minutesBetween(*session.StartedAt, now)
	}

	for i := range session.Participants {
		p := &session.Participants[i]
		if p.LeftAt == nil {
			p.LeftAt = &now
			p.TotalMinutes = minutesBetween(p.JoinedAt, now)
			session.Stats.TotalHoursGrinded += float64(p.TotalMinutes) / 60
		}
	}

	// Stream entries of attending members get cleared in the same write,
	// and their personal sessions completed below.
	participantIDs := make([]primitive.ObjectID, 0, len(session.Participants))
	for _, p := range session.Participants {
		participantIDs = append(participantIDs, p.User)
	}

	var personalSessionIDs []primitive.ObjectID
	for _, stream := range space.ActiveStreams {
		for _, pid := range participantIDs {
			if stream.User == pid {
				personalSessionIDs = append(personalSessionIDs, stream.SessionID)
			}
		}
	}

	update := bson.M{
		"$set": bson.M{
			"sessions.$": session,
			"updated_at": now,
		},
		"$pull": bson.M{
			"active_streams": bson.M{"user": bson.M{"$in": participantIDs}},
		},
	}
	if space.ActiveSessionID != nil && *space.ActiveSessionID == session.ID {
		update["$set"].(bson.M)["active_session_id"] = nil
	}

	result, err := s.collection.UpdateOne(ctx,
		bson.M{
			"_id": space.ID,
			"sessions": bson.M{"$elemMatch": bson.M{
				"_id":    session.ID,
				"status": models.SpaceSessionLive,
			}},
		},
		update)
	if err != nil {
		return nil, fmt.Errorf("failed to end space session: %w", err)
	}
	if result.MatchedCount == 0 {
		return nil, ErrInvalidTransition
	}

	if len(personalSessionIDs) > 0 {
		s.completePersonalSessions(ctx, personalSessionIDs, now)
	}

	notifySpace(s.notifier, space.ID.Hex(), actor.Hex(), "session_ended", session)

	logger.LogSpaceEvent("session_ended", space.ID.Hex(), actor.Hex(), map[string]interface{}{
		"space_session_id": session.ID.Hex(),
		"status":           string(status),
		"participants":     len(session.Participants),
	})

	return session, nil
}

func (s *SpaceService) completePersonalSessions(ctx context.Context, ids []primitive.ObjectID, endedAt time.Time) {
	cursor, err := s.sessions.Find(ctx, bson.M{"_id": bson.M{"$in": ids}, "is_completed": false})
	if err != nil {
		logger.LogError(err, "Failed to load personal sessions for close-out", nil)
		return
	}
	defer cursor.Close(ctx)

	var open []models.Session
	if err := cursor.All(ctx, &open); err != nil {
		logger.LogError(err, "Failed to decode personal sessions for close-out", nil)
		return
	}

	for _, session := range open {
		_, err := s.sessions.UpdateOne(ctx,
			bson.M{"_id": session.ID, "is_completed": false},
			bson.M{"$set": bson.M{
				"is_completed":    true,
				"end_time":        endedAt,
				"actual_duration": minutesBetween(session.StartTime, endedAt),
				"updated_at":      endedAt,
			}})
		if err != nil {
			logger.LogError(err, "Failed to complete personal session", map[string]interface{}{
				"session_id": session.ID.Hex(),
			})
		}
	}
}
