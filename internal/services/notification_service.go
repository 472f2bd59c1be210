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

type NotificationService struct {
	collection *mongo.Collection
	notifier   Notifier
}

func NewNotificationService(db *mongo.Database, notifier Notifier) *NotificationService {
	return &NotificationService{
		collection: db.Collection("notifications"),
		notifier:   notifier,
	}
}

// Emit inserts a notification and pushes it to the recipient if connected.
// Emission is best-effort: a failed insert is logged, never propagated, so
// the triggering operation still succeeds.
func (s *NotificationService) Emit(n *models.Notification) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	n.Read = false
	n.CreatedAt = time.Now()

	result, err := s.collection.InsertOne(ctx, n)
	if err != nil {
		logger.LogError(err, "Failed to emit notification", map[string]interface{}{
			"recipient": n.Recipient.Hex(),
			"type":      string(n.Type),
		})
		return
	}

	n.ID = result.InsertedID.(primitive.ObjectID)

	notifyUser(s.notifier, n.Recipient.Hex(), "notification", n)
}

// List returns a page of the recipient's notifications, newest first
func (s *NotificationService) List(recipient primitive.ObjectID, page, limit int) ([]models.Notification, int64, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	filter := bson.M{"recipient": recipient}

	total, err := s.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count notifications: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))

	cursor, err := s.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list notifications: %w", err)
	}
	defer cursor.Close(ctx)

	notifications := []models.Notification{}
	if err = cursor.All(ctx, &notifications); err != nil {
		return nil, 0, fmt.Errorf("failed to decode notifications: %w", err)
	}

	return notifications, total, nil
}

// UnreadCount returns the number of unread notifications
func (s *NotificationService) UnreadCount(recipient primitive.ObjectID) (int64, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	count, err := s.collection.CountDocuments(ctx, bson.M{"recipient": recipient, "read": false})
	if err != nil {
		return 0, fmt.Errorf("failed to count unread notifications: %w", err)
	}
	return count, nil
}

// MarkRead marks one notification read; the recipient filter prevents
// marking someone else's notification.
func (s *NotificationService) MarkRead(id, recipient primitive.ObjectID) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	result, err := s.collection.UpdateOne(ctx,
		bson.M{"_id": id, "recipient": recipient},
		bson.M{"$set": bson.M{"read": true}})
	if err != nil {
		return fmt.Errorf("failed to mark notification read: %w", err)
	}
	if result.MatchedCount == 0 {
		return ErrNotificationNotFound
	}
	return nil
}

// MarkAllRead marks every unread notification of the recipient read
func (s *NotificationService) MarkAllRead(recipient primitive.ObjectID) (int64, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	result, err := s.collection.UpdateMany(ctx,
		bson.M{"recipient": recipient, "read": false},
		bson.M{"$set": bson.M{"read": true}})
	if err != nil {
		return 0, fmt.Errorf("failed to mark notifications read: %w", err)
	}
	return result.ModifiedCount, nil
}

// Delete removes one notification owned by the recipient
func (s *NotificationService) Delete(id, recipient primitive.ObjectID) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	result, err := s.collection.DeleteOne(ctx, bson.M{"_id": id, "recipient": recipient})
	if err != nil {
		return fmt.Errorf("failed to delete notification: %w", err)
	}
	if result.DeletedCount == 0 {
		return ErrNotificationNotFound
	}
	return nil
}

// DeleteByCorrelation removes notifications matching typed correlation
// fields. Used when the triggering condition is reversed (friend request
// declined, encouragement removed). Best-effort by design.
func (s *NotificationService) DeleteByCorrelation(recipient, sender primitive.ObjectID, nType models.NotificationType, relatedSession, relatedSpace *primitive.ObjectID) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	filter := bson.M{
		"recipient": recipient,
		"sender":    sender,
		"type":      nType,
	}
	if relatedSession != nil {
		filter["related_session"] = *relatedSession
	}
	if relatedSpace != nil {
		filter["related_space"] = *relatedSpace
	}

	if _, err := s.collection.DeleteMany(ctx, filter); err != nil {
		logger.LogError(err, "Failed to delete correlated notifications", map[string]interface{}{
			"recipient": recipient.Hex(),
			"type":      string(nType),
		})
	}
}
