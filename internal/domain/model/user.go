package model

import (
	"math"
	"time"
)

const (
	// XPPerLevel is the fixed amount the level threshold grows on each level-up.
	XPPerLevel = 100

	// Starting values for a freshly registered user.
	InitialLevel         = 1
	InitialXPToNextLevel = 100
)

type User struct {
	ID             string    `json:"id"`
	Username       string    `json:"username"`
	Fullname       string    `json:"fullname"`
	Email          string    `json:"email"`
	HashedPassword string    `json:"-"` // Not exposed
	XP             int       `json:"xp"`
	Level          int       `json:"level"`
	XPToNextLevel  int       `json:"xpToNextLevel"`
	DailyStreak    int       `json:"dailyStreak"`
	AverageScore   float64   `json:"averageScore"`
	LastSignedIn   time.Time `json:"lastSignedIn"`
	LastActivity   string    `json:"lastActivity"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`

	// Populated relations, only filled in by the detail endpoints.
	Friends        []User `json:"friends,omitempty"`
	FriendRequests []User `json:"friendRequests,omitempty"`
	Quizzes        []Quiz `json:"quizzes,omitempty"`
}

// ApplyXP adds delta to the XP counter and consumes it into levels. The
// threshold grows by a fixed step per level, so the loop runs once per
// crossed level; after it finishes XP is strictly below XPToNextLevel.
func (u *User) ApplyXP(delta int) {
	u.XP += delta
	for u.XP >= u.XPToNextLevel {
		u.Level++
		u.XPToNextLevel += XPPerLevel
	}
}

// ApplyDailyStreak advances the streak relative to now. A whole-day gap of
// exactly one increments the streak, a longer gap resets it to one, and a
// same-day (or future-dated) LastSignedIn leaves it untouched. LastSignedIn
// always moves to now, so repeat calls within a day stay idempotent.
func (u *User) ApplyDailyStreak(now time.Time) {
	elapsed := now.Sub(u.LastSignedIn)
	diffDays := int(math.Floor(elapsed.Hours() / 24))

	if diffDays == 1 {
		u.DailyStreak++
	} else if diffDays > 1 {
		u.DailyStreak = 1
	}

	u.LastSignedIn = now
}
