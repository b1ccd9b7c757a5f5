package model

// LeaderboardEntry is a ranked user row. TotalScore is the provisional
// xp+streak formula; it is computed at read time and never persisted.
type LeaderboardEntry struct {
	UserID      string `json:"id"`
	Name        string `json:"name"`
	XP          int    `json:"xp"`
	DailyStreak int    `json:"dailyStreak"`
	TotalScore  int    `json:"totalScore"`
}
