package models

import (
	"time"

	"gorm.io/datatypes"
)

// Match is a completed simulation, persisted with its full substitution log
// and box score as JSON payloads.
type Match struct {
	ID        string         `gorm:"primaryKey" json:"id"`
	HomeTeam  string         `gorm:"not null;index" json:"home_team"`
	AwayTeam  string         `gorm:"not null;index" json:"away_team"`
	HomeScore int            `gorm:"not null" json:"home_score"`
	AwayScore int            `gorm:"not null" json:"away_score"`
	Seed      int64          `gorm:"not null" json:"seed"`
	Pace      string         `json:"pace"`
	Events    datatypes.JSON `json:"events"`
	BoxScore  datatypes.JSON `json:"box_score"`
	CreatedAt time.Time      `json:"created_at"`
}

func (Match) TableName() string {
	return "matches"
}

// ScheduledMatch is a queued simulation picked up by the background scheduler.
type ScheduledMatch struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	HomeTeam  string    `gorm:"not null" json:"home_team"`
	AwayTeam  string    `gorm:"not null" json:"away_team"`
	Seed      int64     `json:"seed"`
	Status    string    `gorm:"default:pending;index" json:"status"` // pending, completed, failed
	MatchID   string    `json:"match_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (ScheduledMatch) TableName() string {
	return "scheduled_matches"
}

const (
	ScheduleStatusPending   = "pending"
	ScheduleStatusCompleted = "completed"
	ScheduleStatusFailed    = "failed"
)
