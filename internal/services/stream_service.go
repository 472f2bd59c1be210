package services

import (
	"context"
	"fmt"
	"time"

	"gogrind/internal/models"
	"gogrind/pkg/logger"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// StreamService manages live presence in a space's video room and keeps
// the presence entries, the member's personal focus session and the live
// space session's participant list consistent with each other.
type StreamService struct {
	spaces        *mongo.Collection
	sessions      *mongo.Collection
	notifications *NotificationService
	notifier      Notifier
}

func NewStreamService(db *mongo.Database, notifications *NotificationService, notifier Notifier) *StreamService {
	return &StreamService{
		spaces:        db.Collection("spaces"),
		sessions:      db.Collection("sessions"),
		notifications: notifications,
		notifier:      notifier,
	}
}

// JoinStreamInput is the caller-supplied state for a stream join
type JoinStreamInput struct {
	GrindingTopic  string
	TargetDuration int
	Tasks          []string
	IsVideoEnabled bool
	IsAudioEnabled bool
}

// joinPrecheck validates a join against the freshly loaded space document:
// membership, the creator-first latch, and no existing presence entry. The
// conditional write re-checks presence to close the race window.
func joinPrecheck(space *models.Space, userID primitive.ObjectID) error {
	if !space.IsMember(userID) {
		return ErrNotMember
	}
	if !space.StreamInitialized && space.Creator != userID {
		return ErrStreamNotInitialized
	}
	if space.ActiveStreamFor(userID) != nil {
		return ErrAlreadyStreaming
	}
	return nil
}

// joinStreamWrite builds the conditional presence insert. The filter
// excludes spaces where the user already has an entry, so two racing
// joins cannot both land, and the update flips the stream latch for good.
func joinStreamWrite(spaceID, userID primitive.ObjectID, entry models.ActiveStream, now time.Time) (bson.M, bson.M) {
	filter := bson.M{
		"_id":                 spaceID,
		"active_streams.user": bson.M{"$ne": userID},
	}
	update := bson.M{
		"$push": bson.M{"active_streams": entry},
		"$set": bson.M{
			"stream_initialized": true,
			"updated_at":         now,
		},
	}
	return filter, update
}

// Join puts the user live in the space's stream room and opens their
// personal focus session.
func (s *StreamService) Join(spaceID, userID primitive.ObjectID, input JoinStreamInput) (*models.Session, error) {
	space, err := s.getSpace(spaceID)
	if err != nil {
		return nil, err
	}

	if err := joinPrecheck(space, userID); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	now := time.Now()

	tasks := make([]models.Task, 0, len(input.Tasks))
	for _, title := range input.Tasks {
		tasks = append(tasks, models.Task{
			ID:    primitive.NewObjectID(),
			Title: title,
		})
	}

	session := &models.Session{
		User:           userID,
		Space:          spaceID,
		GrindingTopic:  input.GrindingTopic,
		TargetDuration: input.TargetDuration,
		StartTime:      now,
		Tasks:          tasks,
		Encouragements: []models.Encouragement{},
		MediaUsage: models.MediaUsage{
			VideoEnabled: input.IsVideoEnabled,
			AudioEnabled: input.IsAudioEnabled,
		},
		CreatedAt: now,
		UpdatedAt: now,
	}

	insertResult, err := s.sessions.InsertOne(ctx, session)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}
	session.ID = insertResult.InsertedID.(primitive.ObjectID)

	entry := models.ActiveStream{
		User:           userID,
		GrindingTopic:  input.GrindingTopic,
		SessionID:      session.ID,
		IsVideoEnabled: input.IsVideoEnabled,
		IsAudioEnabled: input.IsAudioEnabled,
		JoinedAt:       now,
	}

	filter, update := joinStreamWrite(spaceID, userID, entry, now)
	updateResult, err := s.spaces.UpdateOne(ctx, filter, update)
	if err != nil {
		return nil, fmt.Errorf("failed to join stream: %w", err)
	}
	if updateResult.MatchedCount == 0 {
		// A concurrent join won the race; roll back the orphaned session.
		s.sessions.DeleteOne(ctx, bson.M{"_id": session.ID})
		return nil, ErrAlreadyStreaming
	}

	if space.ActiveSessionID != nil {
		s.addParticipant(ctx, spaceID, *space.ActiveSessionID, userID, now)
	}

	notifySpace(s.notifier, spaceID.Hex(), userID.Hex(), "stream_joined", entry)

	logger.LogSessionEvent("stream_joined", session.ID.Hex(), userID.Hex(), map[string]interface{}{
		"space_id":        spaceID.Hex(),
		"grinding_topic":  input.GrindingTopic,
		"target_duration": input.TargetDuration,
	})

	return session, nil
}

// addParticipant appends the user to the live space session's participant
// list. The $ne element-match keeps the append idempotent per user, and
// the $inc keeps total_participants equal to the distinct user count.
func (s *StreamService) addParticipant(ctx context.Context, spaceID, spaceSessionID, userID primitive.ObjectID, joinedAt time.Time) {
	_, err := s.spaces.UpdateOne(ctx,
		bson.M{
			"_id": spaceID,
			"sessions": bson.M{"$elemMatch": bson.M{
				"_id":               spaceSessionID,
				"status":            models.SpaceSessionLive,
				"participants.user": bson.M{"$ne": userID},
			}},
		},
		bson.M{
			"$push": bson.M{"sessions.$.participants": models.Participant{
				User:     userID,
				JoinedAt: joinedAt,
			}},
			"$inc": bson.M{"sessions.$.stats.total_participants": 1},
		})
	if err != nil {
		logger.LogError(err, "Failed to add space session participant", map[string]interface{}{
			"space_id": spaceID.Hex(),
			"user_id":  userID.Hex(),
		})
	}
}

// Leave ends the user's stream presence and completes their focus session
func (s *StreamService) Leave(spaceID, userID primitive.ObjectID) error {
	space, err := s.getSpace(spaceID)
	if err != nil {
		return err
	}

	return s.exitStream(space, userID)
}

// Remove kicks a user out of the stream (creator only) and notifies them
func (s *StreamService) Remove(spaceID, targetUserID, requester primitive.ObjectID, reason string) error {
	space, err := s.getSpace(spaceID)
	if err != nil {
		return err
	}
	if space.Creator != requester {
		return ErrNotCreator
	}

	if err := s.exitStream(space, targetUserID); err != nil {
		return err
	}

	message := fmt.Sprintf("You were removed from the stream in %s", space.Name)
	if reason != "" {
		message = fmt.Sprintf("%s: %s", message, reason)
	}

	s.notifications.Emit(&models.Notification{
		Recipient:    targetUserID,
		Sender:       requester,
		Type:         models.NotificationRemovedFromStream,
		Message:      message,
		RelatedSpace: &spaceID,
	})

	logger.LogSpaceEvent("stream_member_removed", spaceID.Hex(), targetUserID.Hex(), map[string]interface{}{
		"removed_by": requester.Hex(),
		"reason":     reason,
	})

	return nil
}

// exitStream performs the shared leave/kick effect: complete the personal
// session, close out the live participant entry, drop the presence entry.
// A missing presence entry makes each step a no-op.
func (s *StreamService) exitStream(space *models.Space, userID primitive.ObjectID) error {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	now := time.Now()

	entry := space.ActiveStreamFor(userID)
	if entry != nil {
		if err := s.completeSession(ctx, entry.SessionID, now); err != nil {
			return err
		}
	}

	if live := space.LiveSession(); live != nil {
		if p := live.ParticipantFor(userID); p != nil && p.LeftAt == nil {
			minutes := minutesBetween(p.JoinedAt, now)
			_, err := s.spaces.UpdateOne(ctx,
				bson.M{"_id": space.ID},
				bson.M{
					"$set": bson.M{
						"sessions.$[sess].participants.$[part].left_at":       now,
						"sessions.$[sess].participants.$[part].total_minutes": minutes,
					},
					"$inc": bson.M{
						"sessions.$[sess].stats.total_hours_grinded": float64(minutes) / 60,
					},
				},
				options.Update().SetArrayFilters(options.ArrayFilters{
					Filters: []interface{}{
						bson.M{"sess._id": live.ID},
						bson.M{"part.user": userID, "part.left_at": bson.M{"$exists": false}},
					},
				}))
			if err != nil {
				return fmt.Errorf("failed to close out participant: %w", err)
			}
		}
	}

	_, err := s.spaces.UpdateOne(ctx,
		bson.M{"_id": space.ID},
		bson.M{
			"$pull": bson.M{"active_streams": bson.M{"user": userID}},
			"$set":  bson.M{"updated_at": now},
		})
	if err != nil {
		return fmt.Errorf("failed to leave stream: %w", err)
	}

	notifySpace(s.notifier, space.ID.Hex(), userID.Hex(), "stream_left", map[string]interface{}{
		"user_id": userID.Hex(),
	})

	return nil
}

func (s *StreamService) completeSession(ctx context.Context, sessionID primitive.ObjectID, endedAt time.Time) error {
	var session models.Session
	err := s.sessions.FindOne(ctx, bson.M{"_id": sessionID, "is_completed": false}).Decode(&session)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil // already completed elsewhere
		}
		return fmt.Errorf("failed to load session: %w", err)
	}

	_, err = s.sessions.UpdateOne(ctx,
		bson.M{"_id": sessionID, "is_completed": false},
		bson.M{"$set": bson.M{
			"is_completed":    true,
			"end_time":        endedAt,
			"actual_duration": minutesBetween(session.StartTime, endedAt),
			"updated_at":      endedAt,
		}})
	if err != nil {
		return fmt.Errorf("failed to complete session: %w", err)
	}

	logger.LogSessionEvent("session_completed", sessionID.Hex(), session.User.Hex(), map[string]interface{}{
		"actual_duration": minutesBetween(session.StartTime, endedAt),
		"target_duration": session.TargetDuration,
	})

	return nil
}

// UpdateTopic changes the user's grinding topic on their presence entry
// and the underlying focus session.
func (s *StreamService) UpdateTopic(spaceID, userID primitive.ObjectID, topic string) error {
	space, err := s.getSpace(spaceID)
	if err != nil {
		return err
	}

	entry := space.ActiveStreamFor(userID)
	if entry == nil {
		return ErrNoActiveStream
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err = s.spaces.UpdateOne(ctx,
		bson.M{"_id": spaceID, "active_streams.user": userID},
		bson.M{"$set": bson.M{
			"active_streams.$.grinding_topic": topic,
			"updated_at":                      time.Now(),
		}})
	if err != nil {
		return fmt.Errorf("failed to update topic: %w", err)
	}

	_, err = s.sessions.UpdateOne(ctx,
		bson.M{"_id": entry.SessionID},
		bson.M{"$set": bson.M{"grinding_topic": topic, "updated_at": time.Now()}})
	if err != nil {
		return fmt.Errorf("failed to update session topic: %w", err)
	}

	notifySpace(s.notifier, spaceID.Hex(), userID.Hex(), "topic_updated", map[string]interface{}{
		"user_id":        userID.Hex(),
		"grinding_topic": topic,
	})

	return nil
}

// MediaToggle carries optional media switches; a nil field leaves the
// corresponding flag untouched.
type MediaToggle struct {
	IsVideoEnabled *bool
	IsAudioEnabled *bool
}

// ToggleMedia flips the presence entry's media flags
func (s *StreamService) ToggleMedia(spaceID, userID primitive.ObjectID, toggle MediaToggle) error {
	space, err := s.getSpace(spaceID)
	if err != nil {
		return err
	}

	entry := space.ActiveStreamFor(userID)
	if entry == nil {
		return ErrNoActiveStream
	}

	set := bson.M{"updated_at": time.Now()}
	if toggle.IsVideoEnabled != nil {
		set["active_streams.$.is_video_enabled"] = *toggle.IsVideoEnabled
	}
	if toggle.IsAudioEnabled != nil {
		set["active_streams.$.is_audio_enabled"] = *toggle.IsAudioEnabled
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err = s.spaces.UpdateOne(ctx,
		bson.M{"_id": spaceID, "active_streams.user": userID},
		bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("failed to toggle media: %w", err)
	}

	notifySpace(s.notifier, spaceID.Hex(), userID.Hex(), "media_toggled", map[string]interface{}{
		"user_id": userID.Hex(),
	})

	return nil
}

func (s *StreamService) getSpace(id primitive.ObjectID) (*models.Space, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var space models.Space
	err := s.spaces.FindOne(ctx, bson.M{"_id": id}).Decode(&space)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrSpaceNotFound
		}
		return nil, fmt.Errorf("failed to get space: %w", err)
	}

	return &space, nil
}
