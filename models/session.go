package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/scoutbase/scoutbase/utils"
)

// Session is the server-side state behind an opaque login token. The
// sessions table is authoritative; the cache layer only accelerates
// token resolution.
type Session struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	CorrelationID uuid.UUID `gorm:"type:uuid;not null;index:idx_sessions_correlation_id" json:"correlation_id"`
	UserID        uint      `gorm:"not null;index:idx_sessions_user_id" json:"user_id"`
	User          User      `gorm:"foreignKey:UserID;references:ID" json:"user,omitempty"`

	SessionToken string  `gorm:"size:255;not null;uniqueIndex:uk_sessions_session_token" json:"-"` // Never serialize token
	IPAddress    *string `gorm:"type:inet" json:"ip_address,omitempty"`
	UserAgent    *string `gorm:"type:text" json:"user_agent,omitempty"`

	IsActive       *bool     `gorm:"default:true;index:idx_sessions_is_active" json:"is_active"`
	CreatedAt      time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	LastAccessedAt time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"last_accessed_at"`
	ExpiresAt      time.Time `gorm:"not null;index:idx_sessions_expires_at" json:"expires_at"`
}

func (Session) TableName() string {
	return "sessions"
}

// SessionFilter represents filter criteria for session queries
type SessionFilter struct {
	ID            *uint
	CorrelationID *uuid.UUID
	UserID        *uint
	IsActive      *bool
	ExpiresAfter  *time.Time
	ExpiresBefore *time.Time
}

func (s *Session) IsExpired() bool {
	return utils.UTCNow().After(s.ExpiresAt)
}

func (s *Session) IsValid() bool {
	return utils.IsTrue(s.IsActive) && !s.IsExpired()
}
