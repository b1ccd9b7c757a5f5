package service

import (
	"context"
	"database/sql"
	"fmt"

	"quizhub/internal/common"
	"quizhub/internal/domain/model"
	"quizhub/internal/domain/repository"
)

// SocialService maintains the friendship graph: pending requests, symmetric
// edges, suggestions and the friends activity feed.
type SocialService struct {
	userRepo   repository.UserRepository
	resultRepo repository.ResultRepository
	txRunner   repository.TxRunner
}

func NewSocialService(userRepo repository.UserRepository, resultRepo repository.ResultRepository, txRunner repository.TxRunner) *SocialService {
	return &SocialService{
		userRepo:   userRepo,
		resultRepo: resultRepo,
		txRunner:   txRunner,
	}
}

const friendSuggestionLimit = 10
const friendActivityLimit = 10

// SendFriendRequest appends the sender to the target's pending list.
// Duplicate pending requests conflict; an existing request in the opposite
// direction does not (two users can have requests pending at each other).
func (s *SocialService) SendFriendRequest(ctx context.Context, senderID, targetUsername string) (*model.User, error) {
	receiver, err := s.userRepo.FindByUsername(ctx, targetUsername)
	if err != nil {
		return nil, fmt.Errorf("failed to find user %q: %w", targetUsername, err)
	}

	exists, err := s.userRepo.HasFriendRequest(ctx, receiver.ID, senderID)
	if err != nil {
		return nil, fmt.Errorf("failed to check pending requests: %w", err)
	}
	if exists {
		return nil, fmt.Errorf("friend request already sent: %w", common.ErrConflict)
	}

	if err := s.userRepo.AddFriendRequest(ctx, receiver.ID, senderID); err != nil {
		return nil, err
	}
	return receiver, nil
}

// AcceptFriendRequest creates the symmetric friendship and clears the pending
// request in a single transaction, so a partial failure can never leave a
// one-sided edge. Accepting a request that was never sent still succeeds: the
// edge is created and the request removal is a no-op.
func (s *SocialService) AcceptFriendRequest(ctx context.Context, userID, friendID string) error {
	// Both users must exist before any mutation
	if _, err := s.userRepo.FindByID(ctx, userID); err != nil {
		return fmt.Errorf("failed to find user: %w", err)
	}
	if _, err := s.userRepo.FindByID(ctx, friendID); err != nil {
		return fmt.Errorf("failed to find friend: %w", err)
	}

	return s.txRunner.RunTx(ctx, func(tx *sql.Tx) error {
		if err := s.userRepo.AddFriendEdge(ctx, tx, userID, friendID); err != nil {
			return err
		}
		return s.userRepo.RemoveFriendRequest(ctx, tx, userID, friendID)
	})
}

func (s *SocialService) GetFriends(ctx context.Context, userID string) ([]model.User, error) {
	return s.userRepo.ListFriends(ctx, userID)
}

func (s *SocialService) GetFriendRequests(ctx context.Context, userID string) ([]model.User, error) {
	return s.userRepo.ListFriendRequests(ctx, userID)
}

// GetFriendSuggestions returns up to 10 users who are neither the requester
// nor already friends. Users with a pending request in either direction are
// not filtered out; the frontend handles that state.
func (s *SocialService) GetFriendSuggestions(ctx context.Context, userID string) ([]model.User, error) {
	return s.userRepo.ListSuggestions(ctx, userID, friendSuggestionLimit)
}

// GetFriendsActivities returns the 10 most recent quiz results across all of
// the user's friends, newest first, each with its quiz attached.
func (s *SocialService) GetFriendsActivities(ctx context.Context, userID string) ([]model.QuizResult, error) {
	if _, err := s.userRepo.FindByID(ctx, userID); err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	friendIDs, err := s.userRepo.ListFriendIDs(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list friends: %w", err)
	}
	return s.resultRepo.ListRecentByUsers(ctx, friendIDs, friendActivityLimit)
}
