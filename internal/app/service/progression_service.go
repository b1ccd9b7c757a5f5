package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"quizhub/internal/common"
	"quizhub/internal/domain/repository"
)

// ProgressionService owns the derived user fields: XP, level, daily streak and
// average score. The XP and streak updates run inside a transaction with a row
// lock so two concurrent submissions cannot overwrite each other's progress.
type ProgressionService struct {
	userRepo   repository.UserRepository
	resultRepo repository.ResultRepository
	txRunner   repository.TxRunner
	now        func() time.Time
}

func NewProgressionService(userRepo repository.UserRepository, resultRepo repository.ResultRepository, txRunner repository.TxRunner) *ProgressionService {
	return &ProgressionService{
		userRepo:   userRepo,
		resultRepo: resultRepo,
		txRunner:   txRunner,
		now:        time.Now,
	}
}

// UpdateXPAndLevel adds delta XP to the user, leveling up as thresholds are
// crossed. A missing user is a silent no-op.
func (s *ProgressionService) UpdateXPAndLevel(ctx context.Context, userID string, delta int) error {
	return s.txRunner.RunTx(ctx, func(tx *sql.Tx) error {
		user, err := s.userRepo.FindByIDForUpdate(ctx, tx, userID)
		if err != nil {
			if errors.Is(err, common.ErrNotFound) {
				return nil
			}
			return fmt.Errorf("failed to load user for xp update: %w", err)
		}

		user.ApplyXP(delta)

		if err := s.userRepo.SaveProgress(ctx, tx, user); err != nil {
			return fmt.Errorf("failed to save xp update: %w", err)
		}
		return nil
	})
}

// UpdateDailyStreak advances the consecutive-day counter. Missing user is a
// silent no-op; last_signed_in always moves to now.
func (s *ProgressionService) UpdateDailyStreak(ctx context.Context, userID string) error {
	return s.txRunner.RunTx(ctx, func(tx *sql.Tx) error {
		user, err := s.userRepo.FindByIDForUpdate(ctx, tx, userID)
		if err != nil {
			if errors.Is(err, common.ErrNotFound) {
				return nil
			}
			return fmt.Errorf("failed to load user for streak update: %w", err)
		}

		user.ApplyDailyStreak(s.now())

		if err := s.userRepo.SaveProgress(ctx, tx, user); err != nil {
			return fmt.Errorf("failed to save streak update: %w", err)
		}
		return nil
	})
}

// UpdateAverageScore recomputes the mean over every result the user has.
// A user with no results gets 0, not NaN.
func (s *ProgressionService) UpdateAverageScore(ctx context.Context, userID string) error {
	scores, err := s.resultRepo.ScoresByUser(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to load scores: %w", err)
	}

	avg := 0.0
	if len(scores) > 0 {
		total := 0.0
		for _, score := range scores {
			total += score
		}
		avg = total / float64(len(scores))
	}

	if err := s.userRepo.SetAverageScore(ctx, userID, avg); err != nil {
		return fmt.Errorf("failed to save average score: %w", err)
	}
	return nil
}

// RecordActivity overwrites the user's one-line activity summary.
func (s *ProgressionService) RecordActivity(ctx context.Context, userID, activity string) error {
	if err := s.userRepo.SetLastActivity(ctx, userID, activity); err != nil {
		return fmt.Errorf("failed to record activity: %w", err)
	}
	return nil
}
