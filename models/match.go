package models

import (
	"time"
)

// Match is a fixture scouts file reports against. The web core reads
// this table for reporting only; match ingestion lives elsewhere.
type Match struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	HomeClub    string    `gorm:"size:80;not null" json:"home_club"`
	AwayClub    string    `gorm:"size:80;not null" json:"away_club"`
	Venue       *string   `gorm:"size:120" json:"venue,omitempty"`
	Competition *string   `gorm:"size:80" json:"competition,omitempty"`
	KickoffAt   time.Time `gorm:"not null;index:idx_matches_kickoff_at" json:"kickoff_at"`
	CreatedAt   time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
}

func (Match) TableName() string {
	return "matches"
}

// MatchFilter represents filter criteria for match queries
type MatchFilter struct {
	ID            *uint
	HomeClub      *string
	AwayClub      *string
	Competition   *string
	KickoffAfter  *time.Time
	KickoffBefore *time.Time
}
