package models

// Preferred foot values for player profiles
const (
	FootLeft  = "left"
	FootRight = "right"
	FootBoth  = "both"
)

// PlayerProfile holds the 1:1 extension row for principals with the
// player role. It is created in the same transaction as its User and
// removed by the FK cascade when the User is deleted.
type PlayerProfile struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	UserID uint `gorm:"not null;uniqueIndex:uk_player_profiles_user_id" json:"user_id"`
	User   User `gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE" json:"-"`

	HeightCM      *int    `gorm:"column:height" json:"height,omitempty"`
	WeightKG      *int    `gorm:"column:weight" json:"weight,omitempty"`
	PreferredFoot *string `gorm:"size:10" json:"preferred_foot,omitempty"`
	Bio           *string `gorm:"type:text" json:"bio,omitempty"`
	VideoURL      *string `gorm:"size:255" json:"video_url,omitempty"`
}

func (PlayerProfile) TableName() string {
	return "player_profiles"
}

// PlayerProfileFilter represents filter criteria for profile queries
type PlayerProfileFilter struct {
	ID            *uint
	UserID        *uint
	PreferredFoot *string
}

// ValidPreferredFoot reports whether v is a known preferred_foot value.
func ValidPreferredFoot(v string) bool {
	switch v {
	case FootLeft, FootRight, FootBoth:
		return true
	}
	return false
}
