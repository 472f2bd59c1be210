package services

import (
	"context"
	"fmt"
	"time"

	"gogrind/internal/models"
	"gogrind/internal/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type AuthService struct {
	collection  *mongo.Collection
	userService *UserService
}

func NewAuthService(db *mongo.Database, userService *UserService) *AuthService {
	return &AuthService{
		collection:  db.Collection("users"),
		userService: userService,
	}
}

// Register creates a user account and returns it with a signed token
func (s *AuthService) Register(email, username, password, displayName string) (*models.User, string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	emailTaken, err := s.userService.EmailExists(email)
	if err != nil {
		return nil, "", err
	}
	if emailTaken {
		return nil, "", ErrEmailTaken
	}

	usernameTaken, err := s.userService.UsernameExists(username, nil)
	if err != nil {
		return nil, "", err
	}
	if usernameTaken {
		return nil, "", ErrUsernameTaken
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return nil, "", fmt.Errorf("failed to hash password: %w", err)
	}

	if displayName == "" {
		displayName = username
	}

	user := &models.User{
		Email:       email,
		Username:    username,
		Password:    hash,
		DisplayName: displayName,
		Friends:     []primitive.ObjectID{},
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}

	result, err := s.collection.InsertOne(ctx, user)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create user: %w", err)
	}
	user.ID = result.InsertedID.(primitive.ObjectID)

	token, err := utils.GenerateUserJWT(user.ID.Hex(), user.Username)
	if err != nil {
		return nil, "", fmt.Errorf("failed to generate token: %w", err)
	}

	return user, token, nil
}

// Login verifies credentials and returns the user with a signed token
func (s *AuthService) Login(email, password string) (*models.User, string, error) {
	user, err := s.userService.GetByEmail(email)
	if err != nil {
		return nil, "", err
	}

	if !utils.CheckPassword(password, user.Password) {
		return nil, "", ErrUserNotFound
	}

	token, err := utils.GenerateUserJWT(user.ID.Hex(), user.Username)
	if err != nil {
		return nil, "", fmt.Errorf("failed to generate token: %w", err)
	}

	return user, token, nil
}
