package model

import "time"

type Quiz struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Slug        string     `json:"slug"`
	Description string     `json:"description"`
	Category    string     `json:"category"`
	Difficulty  string     `json:"difficulty"`
	Duration    int        `json:"duration"`
	Tags        []string   `json:"tags"`
	IsPublic    bool       `json:"isPublic"`
	Questions   []Question `json:"questions"`
	CreatedByID string     `json:"createdBy"`
	CreatedAt   time.Time  `json:"created_at"`
}

type Question struct {
	ID              string   `json:"id"`
	Question        string   `json:"question"`
	Options         []Option `json:"options"`
	CorrectOptionID string   `json:"correctOptionId"`
	Explanation     string   `json:"explanation,omitempty"`
}

type Option struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}
