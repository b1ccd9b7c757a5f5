package model

import (
	"encoding/json"
	"time"
)

type QuizResult struct {
	ID        string          `json:"id"`
	QuizID    string          `json:"quizId"`
	UserID    string          `json:"userId"`
	Answers   json.RawMessage `json:"answers"` // Opaque, shaped by the frontend
	Score     float64         `json:"score"`
	TimeSpent int             `json:"timeSpent"`
	CreatedAt time.Time       `json:"createdAt"`

	// Populated quiz, filled in by read endpoints.
	Quiz *Quiz `json:"quiz,omitempty"`
}
