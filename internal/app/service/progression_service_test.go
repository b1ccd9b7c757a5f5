package service

import (
	"context"
	"testing"
	"time"

	"quizhub/internal/domain/model"
)

func TestUpdateXPAndLevel(t *testing.T) {
	userRepo := newFakeUserRepo()
	userRepo.add(&model.User{ID: "u1", Username: "alice", XP: 90, Level: 1, XPToNextLevel: 100})
	txRunner := &fakeTxRunner{}
	svc := NewProgressionService(userRepo, newFakeResultRepo(), txRunner)

	if err := svc.UpdateXPAndLevel(context.Background(), "u1", 250); err != nil {
		t.Fatalf("UpdateXPAndLevel: %v", err)
	}

	user := userRepo.users["u1"]
	if user.XP != 340 || user.Level != 4 || user.XPToNextLevel != 400 {
		t.Errorf("progression = (xp %d, level %d, next %d), want (340, 4, 400)",
			user.XP, user.Level, user.XPToNextLevel)
	}
	if txRunner.calls != 1 {
		t.Errorf("transactions = %d, want 1", txRunner.calls)
	}
}

func TestUpdateXPAndLevelMissingUserIsNoOp(t *testing.T) {
	userRepo := newFakeUserRepo()
	svc := NewProgressionService(userRepo, newFakeResultRepo(), &fakeTxRunner{})

	if err := svc.UpdateXPAndLevel(context.Background(), "ghost", 10); err != nil {
		t.Fatalf("UpdateXPAndLevel for unknown user: %v", err)
	}
	if userRepo.saveProgressUser != nil {
		t.Errorf("no progress should be written for an unknown user")
	}
}

func TestUpdateDailyStreak(t *testing.T) {
	now := time.Date(2025, time.March, 10, 12, 0, 0, 0, time.UTC)
	userRepo := newFakeUserRepo()
	userRepo.add(&model.User{ID: "u1", Username: "alice", DailyStreak: 2, LastSignedIn: now.Add(-25 * time.Hour)})
	svc := NewProgressionService(userRepo, newFakeResultRepo(), &fakeTxRunner{})
	svc.now = func() time.Time { return now }

	if err := svc.UpdateDailyStreak(context.Background(), "u1"); err != nil {
		t.Fatalf("UpdateDailyStreak: %v", err)
	}

	user := userRepo.users["u1"]
	if user.DailyStreak != 3 {
		t.Errorf("streak = %d, want 3", user.DailyStreak)
	}
	if !user.LastSignedIn.Equal(now) {
		t.Errorf("lastSignedIn = %v, want %v", user.LastSignedIn, now)
	}
}

func TestUpdateAverageScore(t *testing.T) {
	userRepo := newFakeUserRepo()
	userRepo.add(&model.User{ID: "u1", Username: "alice"})
	resultRepo := newFakeResultRepo()
	resultRepo.resultsByUser["u1"] = []model.QuizResult{
		{ID: "r1", UserID: "u1", Score: 80},
		{ID: "r2", UserID: "u1", Score: 90},
		{ID: "r3", UserID: "u1", Score: 70},
	}
	svc := NewProgressionService(userRepo, resultRepo, &fakeTxRunner{})

	if err := svc.UpdateAverageScore(context.Background(), "u1"); err != nil {
		t.Fatalf("UpdateAverageScore: %v", err)
	}
	if userRepo.lastAverage != 80 {
		t.Errorf("average = %v, want 80", userRepo.lastAverage)
	}
}

func TestUpdateAverageScoreNoResultsIsZero(t *testing.T) {
	userRepo := newFakeUserRepo()
	userRepo.add(&model.User{ID: "u1", Username: "alice"})
	svc := NewProgressionService(userRepo, newFakeResultRepo(), &fakeTxRunner{})

	if err := svc.UpdateAverageScore(context.Background(), "u1"); err != nil {
		t.Fatalf("UpdateAverageScore: %v", err)
	}
	if userRepo.setAverageCalls != 1 {
		t.Fatalf("SetAverageScore calls = %d, want 1", userRepo.setAverageCalls)
	}
	// Zero results persist 0, never NaN
	if userRepo.lastAverage != 0 {
		t.Errorf("average = %v, want 0", userRepo.lastAverage)
	}
}

func TestRecordActivity(t *testing.T) {
	userRepo := newFakeUserRepo()
	userRepo.add(&model.User{ID: "u1", Username: "alice"})
	svc := NewProgressionService(userRepo, newFakeResultRepo(), &fakeTxRunner{})

	if err := svc.RecordActivity(context.Background(), "u1", `Created a new quiz on "Go Basics"`); err != nil {
		t.Fatalf("RecordActivity: %v", err)
	}
	if got := userRepo.lastActivitySet["u1"]; got != `Created a new quiz on "Go Basics"` {
		t.Errorf("lastActivity = %q", got)
	}
}
