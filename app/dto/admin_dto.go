package dto

import (
	"time"

	"github.com/scoutbase/scoutbase/repository"
)

// DashboardResponse is the admin landing aggregate.
type DashboardResponse struct {
	Players    int64                         `json:"players"`
	Scouts     int64                         `json:"scouts"`
	Clubs      int64                         `json:"clubs"`
	AgeBuckets []repository.AgeBucket        `json:"age_buckets"`
	TopScouts  []repository.ScoutReportCount `json:"top_scouts"`
}

// ActivityEntry is one row of the admin activity feed.
type ActivityEntry struct {
	ID        uint      `json:"id"`
	Actor     *string   `json:"actor,omitempty"`
	Action    string    `json:"action"`
	Target    *string   `json:"target,omitempty"`
	Success   bool      `json:"success"`
	IPAddress *string   `json:"ip_address,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// MatchResponse is the public view of a fixture.
type MatchResponse struct {
	ID          uint      `json:"id"`
	HomeClub    string    `json:"home_club"`
	AwayClub    string    `json:"away_club"`
	Venue       *string   `json:"venue,omitempty"`
	Competition *string   `json:"competition,omitempty"`
	KickoffAt   time.Time `json:"kickoff_at"`
}
