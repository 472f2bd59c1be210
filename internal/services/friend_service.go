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

type FriendService struct {
	collection    *mongo.Collection
	users         *mongo.Collection
	notifications *NotificationService
}

func NewFriendService(db *mongo.Database, notifications *NotificationService) *FriendService {
	return &FriendService{
		collection:    db.Collection("friend_requests"),
		users:         db.Collection("users"),
		notifications: notifications,
	}
}

// SendRequest creates a pending friend request. A request already
// existing in either direction, in any status, blocks a new one.
func (s *FriendService) SendRequest(sender, recipient primitive.ObjectID) (*models.FriendRequest, error) {
	if sender == recipient {
		return nil, ErrSelfFriendRequest
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	count, err := s.users.CountDocuments(ctx, bson.M{"_id": recipient})
	if err != nil {
		return nil, fmt.Errorf("failed to check recipient: %w", err)
	}
	if count == 0 {
		return nil, ErrUserNotFound
	}

	existing, err := s.collection.CountDocuments(ctx, bson.M{
		"$or": []bson.M{
			{"sender": sender, "recipient": recipient},
			{"sender": recipient, "recipient": sender},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to check existing request: %w", err)
	}
	if existing > 0 {
		return nil, ErrDuplicateFriendRequest
	}

	request := &models.FriendRequest{
		Sender:    sender,
		Recipient: recipient,
		Status:    models.FriendRequestPending,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	result, err := s.collection.InsertOne(ctx, request)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrDuplicateFriendRequest
		}
		return nil, fmt.Errorf("failed to create friend request: %w", err)
	}
	request.ID = result.InsertedID.(primitive.ObjectID)

	s.notifications.Emit(&models.Notification{
		Recipient: recipient,
		Sender:    sender,
		Type:      models.NotificationFriendRequest,
		Message:   "You have a new friend request",
	})

	return request, nil
}

// Accept marks the request accepted and links both users. The $addToSet
// on each friends list keeps a double accept from duplicating entries.
func (s *FriendService) Accept(requestID, userID primitive.ObjectID) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var request models.FriendRequest
	err := s.collection.FindOne(ctx, bson.M{"_id": requestID}).Decode(&request)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return ErrRequestNotFound
		}
		return fmt.Errorf("failed to get friend request: %w", err)
	}

	if request.Recipient != userID {
		return ErrRequestNotFound
	}
	if request.Status != models.FriendRequestPending {
		return ErrDuplicateFriendRequest
	}

	result, err := s.collection.UpdateOne(ctx,
		bson.M{"_id": requestID, "status": models.FriendRequestPending},
		bson.M{"$set": bson.M{
			"status":     models.FriendRequestAccepted,
			"updated_at": time.Now(),
		}})
	if err != nil {
		return fmt.Errorf("failed to accept friend request: %w", err)
	}
	if result.MatchedCount == 0 {
		return ErrRequestNotFound
	}

	if _, err := s.users.UpdateOne(ctx,
		bson.M{"_id": request.Sender},
		bson.M{"$addToSet": bson.M{"friends": request.Recipient}}); err != nil {
		return fmt.Errorf("failed to update sender friends: %w", err)
	}
	if _, err := s.users.UpdateOne(ctx,
		bson.M{"_id": request.Recipient},
		bson.M{"$addToSet": bson.M{"friends": request.Sender}}); err != nil {
		return fmt.Errorf("failed to update recipient friends: %w", err)
	}

	s.notifications.DeleteByCorrelation(request.Recipient, request.Sender, models.NotificationFriendRequest, nil, nil)

	s.notifications.Emit(&models.Notification{
		Recipient: request.Sender,
		Sender:    request.Recipient,
		Type:      models.NotificationFriendAccepted,
		Message:   "Your friend request was accepted",
	})

	logger.LogUserAction(userID.Hex(), "friend_request_accepted", map[string]interface{}{
		"request_id": requestID.Hex(),
		"sender":     request.Sender.Hex(),
	})

	return nil
}

// Decline deletes a pending request addressed to the caller, along with
// its notification.
func (s *FriendService) Decline(requestID, userID primitive.ObjectID) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var request models.FriendRequest
	err := s.collection.FindOneAndDelete(ctx, bson.M{
		"_id":       requestID,
		"recipient": userID,
		"status":    models.FriendRequestPending,
	}).Decode(&request)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return ErrRequestNotFound
		}
		return fmt.Errorf("failed to decline friend request: %w", err)
	}

	s.notifications.DeleteByCorrelation(request.Recipient, request.Sender, models.NotificationFriendRequest, nil, nil)
	return nil
}

// Cancel deletes a pending request the caller sent, along with the
// recipient's notification.
func (s *FriendService) Cancel(requestID, userID primitive.ObjectID) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var request models.FriendRequest
	err := s.collection.FindOneAndDelete(ctx, bson.M{
		"_id":    requestID,
		"sender": userID,
		"status": models.FriendRequestPending,
	}).Decode(&request)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return ErrRequestNotFound
		}
		return fmt.Errorf("failed to cancel friend request: %w", err)
	}

	s.notifications.DeleteByCorrelation(request.Recipient, request.Sender, models.NotificationFriendRequest, nil, nil)
	return nil
}

// ListIncoming returns pending requests addressed to the user
func (s *FriendService) ListIncoming(userID primitive.ObjectID) ([]models.FriendRequest, error) {
	return s.listRequests(bson.M{"recipient": userID, "status": models.FriendRequestPending})
}

// ListOutgoing returns requests the user sent that are still pending or
// freshly accepted but unseen (drives the "accepted" badge).
func (s *FriendService) ListOutgoing(userID primitive.ObjectID) ([]models.FriendRequest, error) {
	return s.listRequests(bson.M{
		"sender": userID,
		"$or": []bson.M{
			{"status": models.FriendRequestPending},
			{"status": models.FriendRequestAccepted, "is_notification_seen": false},
		},
	})
}

// MarkOutgoingSeen flags accepted requests as seen by their sender
func (s *FriendService) MarkOutgoingSeen(userID primitive.ObjectID) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := s.collection.UpdateMany(ctx,
		bson.M{"sender": userID, "status": models.FriendRequestAccepted, "is_notification_seen": false},
		bson.M{"$set": bson.M{"is_notification_seen": true, "updated_at": time.Now()}})
	if err != nil {
		return fmt.Errorf("failed to mark requests seen: %w", err)
	}
	return nil
}

func (s *FriendService) listRequests(filter bson.M) ([]models.FriendRequest, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})

	cursor, err := s.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list friend requests: %w", err)
	}
	defer cursor.Close(ctx)

	requests := []models.FriendRequest{}
	if err = cursor.All(ctx, &requests); err != nil {
		return nil, fmt.Errorf("failed to decode friend requests: %w", err)
	}

	return requests, nil
}

// Unfriend removes the link from both users' friends lists
func (s *FriendService) Unfriend(userID, friendID primitive.ObjectID) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if _, err := s.users.UpdateOne(ctx,
		bson.M{"_id": userID},
		bson.M{"$pull": bson.M{"friends": friendID}}); err != nil {
		return fmt.Errorf("failed to unfriend: %w", err)
	}
	if _, err := s.users.UpdateOne(ctx,
		bson.M{"_id": friendID},
		bson.M{"$pull": bson.M{"friends": userID}}); err != nil {
		return fmt.Errorf("failed to unfriend: %w", err)
	}

	// An accepted request between the pair no longer reflects reality
	if _, err := s.collection.DeleteMany(ctx, bson.M{
		"status": models.FriendRequestAccepted,
		"$or": []bson.M{
			{"sender": userID, "recipient": friendID},
			{"sender": friendID, "recipient": userID},
		},
	}); err != nil {
		return fmt.Errorf("failed to clean up friend request: %w", err)
	}

	return nil
}
