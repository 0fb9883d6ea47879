package models

import (
	"time"

	"github.com/scoutbase/scoutbase/utils"
)

// Admin log actions recorded by the flows
const (
	AdminActionSignupCompleted = "signup_completed"
	AdminActionSignupFailed    = "signup_failed"
	AdminActionLoginSuccess    = "login_success"
	AdminActionLoginFailed     = "login_failed"
	AdminActionLogout          = "logout"
	AdminActionProfileUpdated  = "profile_updated"
	AdminActionUserDeleted     = "user_deleted"
	AdminActionExportRequested = "export_requested"
)

// AdminLog is the append-only activity trail behind the admin feed.
type AdminLog struct {
	ID          uint    `gorm:"primaryKey" json:"id"`
	ActorUserID *uint   `gorm:"index:idx_admin_logs_actor_user_id" json:"actor_user_id,omitempty"`
	Actor       *User   `gorm:"foreignKey:ActorUserID;references:ID;constraint:OnDelete:SET NULL" json:"-"`
	Action      string  `gorm:"size:60;not null;index:idx_admin_logs_action" json:"action"`
	Target      *string `gorm:"size:120" json:"target,omitempty"`
	Description *string `gorm:"type:text" json:"description,omitempty"`
	Success     *bool   `gorm:"default:true" json:"success"`
	IPAddress   *string `gorm:"type:inet" json:"ip_address,omitempty"`
	RequestID   *string `gorm:"size:64" json:"request_id,omitempty"`

	CreatedAt time.Time `gorm:"default:CURRENT_TIMESTAMP;index:idx_admin_logs_created_at" json:"created_at"`
}

func (AdminLog) TableName() string {
	return "admin_logs"
}

// AdminLogFilter represents filter criteria for activity queries
type AdminLogFilter struct {
	ID            *uint
	ActorUserID   *uint
	Action        *string
	Success       *bool
	CreatedAfter  *time.Time
	CreatedBefore *time.Time
}

func (l *AdminLog) Succeeded() bool {
	return utils.IsTrue(l.Success)
}
