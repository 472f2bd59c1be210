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

type SessionService struct {
	collection    *mongo.Collection
	spaces        *mongo.Collection
	users         *mongo.Collection
	notifications *NotificationService
	notifier      Notifier
}

func NewSessionService(db *mongo.Database, notifications *NotificationService, notifier Notifier) *SessionService {
	return &SessionService{
		collection:    db.Collection("sessions"),
		spaces:        db.Collection("spaces"),
		users:         db.Collection("users"),
		notifications: notifications,
		notifier:      notifier,
	}
}

// GetByID fetches a session by id
func (s *SessionService) GetByID(id primitive.ObjectID) (*models.Session, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var session models.Session
	err := s.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&session)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	return &session, nil
}

// GetCurrent returns the newest incomplete session of targetUser in the
// space. Inspecting another member's session requires the caller to be a
// member of the same space.
func (s *SessionService) GetCurrent(spaceID, callerID, targetUserID primitive.ObjectID) (*models.Session, error) {
	if callerID != targetUserID {
		var space models.Space
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		err := s.spaces.FindOne(ctx, bson.M{"_id": spaceID}).Decode(&space)
		cancel()
		if err != nil {
			if err == mongo.ErrNoDocuments {
				return nil, ErrSpaceNotFound
			}
			return nil, fmt.Errorf("failed to get space: %w", err)
		}
		if !space.IsMember(callerID) {
			return nil, ErrNotMember
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	opts := options.FindOne().SetSort(bson.D{{Key: "start_time", Value: -1}})

	var session models.Session
	err := s.collection.FindOne(ctx, bson.M{
		"user":         targetUserID,
		"space":        spaceID,
		"is_completed": false,
	}, opts).Decode(&session)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to get current session: %w", err)
	}

	return &session, nil
}

// ListForUser returns a user's completed sessions. Viewing another user's
// history is friend-gated.
func (s *SessionService) ListForUser(targetUserID, callerID primitive.ObjectID, page, limit int) ([]models.Session, int64, error) {
	if callerID != targetUserID {
		var caller models.User
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		err := s.users.FindOne(ctx, bson.M{"_id": callerID}).Decode(&caller)
		cancel()
		if err != nil {
			return nil, 0, fmt.Errorf("failed to get caller: %w", err)
		}
		if !caller.IsFriendOf(targetUserID) {
			return nil, 0, ErrNotFriends
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	filter := bson.M{"user": targetUserID, "is_completed": true}

	total, err := s.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count sessions: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "start_time", Value: -1}}).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))

	cursor, err := s.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list sessions: %w", err)
	}
	defer cursor.Close(ctx)

	sessions := []models.Session{}
	if err = cursor.All(ctx, &sessions); err != nil {
		return nil, 0, fmt.Errorf("failed to decode sessions: %w", err)
	}

	return sessions, total, nil
}

// AddTask appends a task to the caller's active session
func (s *SessionService) AddTask(sessionID, callerID primitive.ObjectID, title string) (*models.Task, error) {
	session, err := s.GetByID(sessionID)
	if err != nil {
		return nil, err
	}
	if session.User != callerID {
		return nil, ErrNotSessionOwner
	}
	if session.IsCompleted {
		return nil, ErrSessionCompleted
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	task := models.Task{
		ID:    primitive.NewObjectID(),
		Title: title,
	}

	_, err = s.collection.UpdateOne(ctx,
		bson.M{"_id": sessionID, "is_completed": false},
		bson.M{
			"$push": bson.M{"tasks": task},
			"$set":  bson.M{"updated_at": time.Now()},
		})
	if err != nil {
		return nil, fmt.Errorf("failed to add task: %w", err)
	}

	return &task, nil
}

// UpdateTask sets a task's completion state. Allowed on completed sessions
// too, so users can tidy up their history afterwards.
func (s *SessionService) UpdateTask(sessionID, taskID, callerID primitive.ObjectID, isCompleted bool) error {
	session, err := s.GetByID(sessionID)
	if err != nil {
		return err
	}
	if session.User != callerID {
		return ErrNotSessionOwner
	}
	if session.TaskByID(taskID) == nil {
		return ErrTaskNotFound
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	set := bson.M{
		"tasks.$.is_completed": isCompleted,
		"updated_at":           time.Now(),
	}
	update := bson.M{"$set": set}
	if isCompleted {
		set["tasks.$.completed_at"] = time.Now()
	} else {
		update["$unset"] = bson.M{"tasks.$.completed_at": ""}
	}

	_, err = s.collection.UpdateOne(ctx,
		bson.M{"_id": sessionID, "tasks._id": taskID},
		update)
	if err != nil {
		return fmt.Errorf("failed to update task: %w", err)
	}

	return nil
}

// canEncourage and canRemoveEncouragement enforce at most one
// encouragement per (session, user): a second add and a removal without
// a prior add are both rejected. The conditional update in Encourage
// re-checks under concurrency.
func canEncourage(session *models.Session, callerID primitive.ObjectID) error {
	if session.EncouragedBy(callerID) {
		return ErrAlreadyEncouraged
	}
	return nil
}

func canRemoveEncouragement(session *models.Session, callerID primitive.ObjectID) error {
	if !session.EncouragedBy(callerID) {
		return ErrNotEncouraged
	}
	return nil
}

// Encourage adds the caller's encouragement to the session, at most one
// per user, and notifies the owner.
func (s *SessionService) Encourage(sessionID, callerID primitive.ObjectID) error {
	session, err := s.GetByID(sessionID)
	if err != nil {
		return err
	}
	if err := canEncourage(session, callerID); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	result, err := s.collection.UpdateOne(ctx,
		bson.M{"_id": sessionID, "encouragements.user": bson.M{"$ne": callerID}},
		bson.M{
			"$push": bson.M{"encouragements": models.Encouragement{
				User:      callerID,
				Timestamp: time.Now(),
			}},
			"$set": bson.M{"updated_at": time.Now()},
		})
	if err != nil {
		return fmt.Errorf("failed to encourage: %w", err)
	}
	if result.MatchedCount == 0 {
		return ErrAlreadyEncouraged
	}

	if session.User != callerID {
		s.notifications.Emit(&models.Notification{
			Recipient:      session.User,
			Sender:         callerID,
			Type:           models.NotificationEncouragement,
			Message:        "Someone is cheering you on!",
			RelatedSpace:   &session.Space,
			RelatedSession: &sessionID,
		})
	}

	notifyUser(s.notifier, session.User.Hex(), "encouragement", map[string]interface{}{
		"session_id": sessionID.Hex(),
		"from":       callerID.Hex(),
	})

	return nil
}

// RemoveEncouragement withdraws the caller's encouragement and deletes
// the matching notification by its typed correlation fields.
func (s *SessionService) RemoveEncouragement(sessionID, callerID primitive.ObjectID) error {
	session, err := s.GetByID(sessionID)
	if err != nil {
		return err
	}
	if err := canRemoveEncouragement(session, callerID); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err = s.collection.UpdateOne(ctx,
		bson.M{"_id": sessionID},
		bson.M{
			"$pull": bson.M{"encouragements": bson.M{"user": callerID}},
			"$set":  bson.M{"updated_at": time.Now()},
		})
	if err != nil {
		return fmt.Errorf("failed to remove encouragement: %w", err)
	}

	s.notifications.DeleteByCorrelation(session.User, callerID, models.NotificationEncouragement, &sessionID, nil)

	logger.LogSessionEvent("encouragement_removed", sessionID.Hex(), callerID.Hex(), nil)
	return nil
}
