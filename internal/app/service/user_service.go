package service

import (
	"context"
	"fmt"

	"quizhub/internal/domain/model"
	"quizhub/internal/domain/repository"
)

// UserService shapes the user detail view: the user document with quizzes,
// friends and pending requests populated.
type UserService struct {
	userRepo    repository.UserRepository
	quizRepo    repository.QuizRepository
	progression *ProgressionService
}

func NewUserService(userRepo repository.UserRepository, quizRepo repository.QuizRepository, progression *ProgressionService) *UserService {
	return &UserService{
		userRepo:    userRepo,
		quizRepo:    quizRepo,
		progression: progression,
	}
}

// GetUserDetails recomputes the average-score cache first, so the profile a
// client renders after finishing a quiz reflects that quiz.
func (s *UserService) GetUserDetails(ctx context.Context, userID string) (*model.User, error) {
	if err := s.progression.UpdateAverageScore(ctx, userID); err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if user.Quizzes, err = s.quizRepo.ListByCreator(ctx, userID); err != nil {
		return nil, fmt.Errorf("failed to populate quizzes: %w", err)
	}
	if user.Friends, err = s.userRepo.ListFriends(ctx, userID); err != nil {
		return nil, fmt.Errorf("failed to populate friends: %w", err)
	}
	if user.FriendRequests, err = s.userRepo.ListFriendRequests(ctx, userID); err != nil {
		return nil, fmt.Errorf("failed to populate friend requests: %w", err)
	}
	return user, nil
}
