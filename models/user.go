// Package models contains domain entities and business models for the scouting platform
package models

import (
	"time"

	"github.com/google/uuid"
)

// User roles. Registration only accepts the first three; admin accounts
// are provisioned out of band.
const (
	RolePlayer = "player"
	RoleScout  = "scout"
	RoleClub   = "club"
	RoleAdmin  = "admin"
)

// RegistrableRoles lists the roles a self-service signup may request.
var RegistrableRoles = []string{RolePlayer, RoleScout, RoleClub}

type User struct {
	ID   uint      `gorm:"primaryKey" json:"id"`
	UUID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uk_users_uuid" json:"uuid"`

	Username     string `gorm:"size:30;not null;uniqueIndex:uk_users_username" json:"username"`
	Email        string `gorm:"size:255;not null;uniqueIndex:uk_users_email" json:"email"`
	PasswordHash string `gorm:"size:255;not null" json:"-"` // Never serialize password hash
	Role         string `gorm:"size:20;not null;index:idx_users_role" json:"role"`

	FullName    string     `gorm:"size:120;not null" json:"full_name"`
	Phone       *string    `gorm:"size:20" json:"phone,omitempty"`
	Country     *string    `gorm:"size:60;index:idx_users_country" json:"country,omitempty"`
	DateOfBirth *time.Time `gorm:"type:date" json:"date_of_birth,omitempty"`
	Position    *string    `gorm:"size:40;index:idx_users_position" json:"position,omitempty"`
	CurrentClub *string    `gorm:"size:80" json:"current_club,omitempty"`

	IsActive *bool `gorm:"default:true;index:idx_users_is_active" json:"is_active"`

	CreatedAt   time.Time  `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC');index:idx_users_created_at" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC')" json:"updated_at"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`

	// Relations
	PlayerProfile *PlayerProfile `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"player_profile,omitempty"`
	Sessions      []Session      `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

func (User) TableName() string {
	return "users"
}

// UserFilter represents filter criteria for exact-match user queries.
// Search-style filtering goes through SearchCriteria and the composer.
type UserFilter struct {
	ID            *uint
	UUID          *uuid.UUID
	Username      *string
	Email         *string
	Role          *string
	Country       *string
	Position      *string
	IsActive      *bool
	CreatedAfter  *time.Time
	CreatedBefore *time.Time
}

func (u *User) IsPlayer() bool {
	return u.Role == RolePlayer
}

func (u *User) IsScout() bool {
	return u.Role == RoleScout
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// Sanitized returns a copy safe to hand to presentation code: the
// password hash is stripped.
func (u User) Sanitized() User {
	u.PasswordHash = ""
	return u
}

// RegistrableRole reports whether role may be requested at signup.
func RegistrableRole(role string) bool {
	for _, r := range RegistrableRoles {
		if r == role {
			return true
		}
	}
	return false
}
