package models

import (
	"time"
)

// ScoutingReport links a scout's assessment of a player, optionally at
// a specific match. Read-only for this core; report authoring is a
// separate surface.
type ScoutingReport struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	ScoutID  uint   `gorm:"not null;index:idx_scouting_reports_scout_id" json:"scout_id"`
	Scout    User   `gorm:"foreignKey:ScoutID;references:ID;constraint:OnDelete:CASCADE" json:"-"`
	PlayerID uint   `gorm:"not null;index:idx_scouting_reports_player_id" json:"player_id"`
	Player   User   `gorm:"foreignKey:PlayerID;references:ID;constraint:OnDelete:CASCADE" json:"-"`
	MatchID  *uint  `gorm:"index:idx_scouting_reports_match_id" json:"match_id,omitempty"`
	Match    *Match `gorm:"foreignKey:MatchID;references:ID" json:"-"`

	Rating  int     `gorm:"not null" json:"rating"` // 1..10
	Summary *string `gorm:"type:text" json:"summary,omitempty"`

	CreatedAt time.Time `gorm:"default:CURRENT_TIMESTAMP;index:idx_scouting_reports_created_at" json:"created_at"`
}

func (ScoutingReport) TableName() string {
	return "scouting_reports"
}

// ScoutingReportFilter represents filter criteria for report queries
type ScoutingReportFilter struct {
	ID            *uint
	ScoutID       *uint
	PlayerID      *uint
	MatchID       *uint
	MinRating     *int
	CreatedAfter  *time.Time
	CreatedBefore *time.Time
}
