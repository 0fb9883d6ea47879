// Package repository provides data access layer implementations and interfaces for database operations
package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/scoutbase/scoutbase/models"
)

// RepositoryContext key for transaction in context
type contextKey string

const TxContextKey contextKey = "tx"

type Repository[T any, F any] interface {
	ByID(ctx context.Context, id uint) (*T, error)
	ByFilter(ctx context.Context, filter F, orderBy string, limit, offset int) ([]*T, error)
	Save(ctx context.Context, entity *T) error
	SaveBatch(ctx context.Context, entities []*T) error
	Count(ctx context.Context, filter F) (int64, error)
	Exists(ctx context.Context, filter F) (bool, error)
}

// UserRepository defines operations for principals and their player profiles
type UserRepository interface {
	Repository[models.User, models.UserFilter]
	ByUsername(ctx context.Context, username string) (*models.User, error)
	ByEmail(ctx context.Context, email string) (*models.User, error)
	ByUUID(ctx context.Context, id uuid.UUID) (*models.User, error)
	UsernameExists(ctx context.Context, username string) (bool, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	CreateWithProfile(ctx context.Context, user *models.User, profile *models.PlayerProfile) error
	UpdateProfile(ctx context.Context, id uint, update ProfileUpdate) error
	UpdatePassword(ctx context.Context, id uint, passwordHash string) error
	TouchLastLogin(ctx context.Context, id uint) error
	Search(ctx context.Context, base EntityBase, criteria models.SearchCriteria) ([]*models.User, error)
	CountBySearch(ctx context.Context, base EntityBase, criteria models.SearchCriteria) (int64, error)
	CountByRole(ctx context.Context, role string) (int64, error)
	Delete(ctx context.Context, id uint) error
	ProfileByUserID(ctx context.Context, userID uint) (*models.PlayerProfile, error)
	SavePlayerProfile(ctx context.Context, profile *models.PlayerProfile) error
}

// SessionRepository defines operations for login sessions
type SessionRepository interface {
	Repository[models.Session, models.SessionFilter]
	BySessionToken(ctx context.Context, token string) (*models.Session, error)
	ListActiveByUser(ctx context.Context, userID uint) ([]*models.Session, error)
	Invalidate(ctx context.Context, token string) error
	InvalidateAllForUser(ctx context.Context, userID uint) error
	TouchLastAccessed(ctx context.Context, sessionID uint) error
}

// AdminLogRepository defines operations for the activity trail
type AdminLogRepository interface {
	Repository[models.AdminLog, models.AdminLogFilter]
	ListRecent(ctx context.Context, limit, offset int) ([]*models.AdminLog, error)
	ListByActor(ctx context.Context, actorUserID uint, limit, offset int) ([]*models.AdminLog, error)
}

// ReportRepository exposes read-only aggregates over the reporting
// tables (matches, scouting_reports) and the users table.
type ReportRepository interface {
	PlayerAgeBuckets(ctx context.Context) ([]AgeBucket, error)
	ReportCountByScout(ctx context.Context, limit int) ([]ScoutReportCount, error)
	UpcomingMatches(ctx context.Context, limit int) ([]*models.Match, error)
}

// AgeBucket is one row of the player age distribution.
type AgeBucket struct {
	Bucket string `json:"bucket"`
	Count  int64  `json:"count"`
}

// ScoutReportCount is the per-scout scouting-report volume.
type ScoutReportCount struct {
	ScoutID  uint   `json:"scout_id"`
	Username string `json:"username"`
	FullName string `json:"full_name"`
	Reports  int64  `json:"reports"`
}

// ProfileUpdate is the full-replace set of mutable profile fields on a
// principal. Every field is written; callers load-modify-store if they
// want to keep a current value.
type ProfileUpdate struct {
	FullName    string
	Phone       *string
	Country     *string
	DateOfBirth *time.Time
	Position    *string
	CurrentClub *string
}
