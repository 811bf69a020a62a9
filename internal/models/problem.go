package models

import "time"

// Problem is an immutable catalog entry. Rows are created at catalog
// load and never mutated afterwards.
type Problem struct {
	ID            int64     `json:"id"`
	Title         string    `json:"title"`
	Content       string    `json:"content"`
	Solution      string    `json:"solution,omitempty"`
	Difficulty    int       `json:"difficulty"` // 1-10
	Topic         string    `json:"topic"`
	Subtopic      string    `json:"subtopic,omitempty"`
	EstimatedTime int       `json:"estimated_time,omitempty"` // minutes
	Keywords      []string  `json:"keywords"`
	CreatedAt     time.Time `json:"created_at"`
}

type ProblemCreate struct {
	Title         string   `json:"title"`
	Content       string   `json:"content"`
	Solution      string   `json:"solution,omitempty"`
	Difficulty    int      `json:"difficulty"`
	Topic         string   `json:"topic"`
	Subtopic      string   `json:"subtopic,omitempty"`
	EstimatedTime int      `json:"estimated_time,omitempty"`
	Keywords      []string `json:"keywords,omitempty"`
}

// ProblemFilter is a conjunction of optional predicates over the catalog.
type ProblemFilter struct {
	MinDifficulty int
	MaxDifficulty int
	Topics        []string
	ExcludeIDs    []int64
	Search        string
	Randomize     bool
	Limit         int
	Offset        int
}
