package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sort"
	"time"

	"quizhub/internal/domain/model"
	"quizhub/internal/domain/repository"
)

// LeaderboardService ranks every user by xp + dailyStreak. The scan-and-sort
// runs over the whole users table, so the computed top 10 is cached in Redis
// for a short TTL; cache errors degrade to a fresh scan, never to a failure.
type LeaderboardService struct {
	userRepo repository.UserRepository
	cache    repository.LeaderboardCache
	cacheTTL time.Duration
}

func NewLeaderboardService(userRepo repository.UserRepository, cache repository.LeaderboardCache, cacheTTL time.Duration) *LeaderboardService {
	return &LeaderboardService{userRepo: userRepo, cache: cache, cacheTTL: cacheTTL}
}

const leaderboardSize = 10

func (s *LeaderboardService) GetLeaderboard(ctx context.Context) ([]model.LeaderboardEntry, error) {
	if s.cache != nil {
		payload, ok, err := s.cache.Get(ctx)
		if err != nil {
			log.Printf("leaderboard cache read failed, falling back to scan: %v", err)
		} else if ok {
			var entries []model.LeaderboardEntry
			if err := json.Unmarshal([]byte(payload), &entries); err == nil {
				return entries, nil
			}
			log.Printf("leaderboard cache held invalid payload, falling back to scan")
		}
	}

	entries, err := s.computeLeaderboard(ctx)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if payload, err := json.Marshal(entries); err == nil {
			if err := s.cache.Set(ctx, string(payload), s.cacheTTL); err != nil {
				log.Printf("leaderboard cache write failed: %v", err)
			}
		}
	}
	return entries, nil
}

func (s *LeaderboardService) computeLeaderboard(ctx context.Context) ([]model.LeaderboardEntry, error) {
	users, err := s.userRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users for leaderboard: %w", err)
	}

	entries := make([]model.LeaderboardEntry, 0, len(users))
	for _, user := range users {
		entries = append(entries, model.LeaderboardEntry{
			UserID:      user.ID,
			Name:        user.Fullname,
			XP:          user.XP,
			DailyStreak: user.DailyStreak,
			TotalScore:  user.XP + user.DailyStreak,
		})
	}

	// Stable sort keeps storage order among ties
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].TotalScore > entries[j].TotalScore
	})

	if len(entries) > leaderboardSize {
		entries = entries[:leaderboardSize]
	}
	return entries, nil
}
