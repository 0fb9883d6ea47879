package repository

import (
	"context"
	"errors"

	"github.com/scoutbase/scoutbase/models"
	"github.com/scoutbase/scoutbase/utils"
	"gorm.io/gorm"
)

// sessionRepository implements SessionRepository using GORM
type sessionRepository struct {
	*BaseRepository[models.Session, models.SessionFilter]
	db *gorm.DB
}

func NewSessionRepository(db *gorm.DB) SessionRepository {
	return &sessionRepository{
		BaseRepository: NewBaseRepository[models.Session, models.SessionFilter](db),
		db:             db,
	}
}

func (r *sessionRepository) applyFilter(db *gorm.DB, filter models.SessionFilter) *gorm.DB {
	if filter.ID != nil {
		db = db.Where("id = ?", *filter.ID)
	}
	if filter.CorrelationID != nil {
		db = db.Where("correlation_id = ?", *filter.CorrelationID)
	}
	if filter.UserID != nil {
		db = db.Where("user_id = ?", *filter.UserID)
	}
	if filter.IsActive != nil {
		db = db.Where("is_active = ?", *filter.IsActive)
	}
	if filter.ExpiresAfter != nil {
		db = db.Where("expires_at > ?", *filter.ExpiresAfter)
	}
	if filter.ExpiresBefore != nil {
		db = db.Where("expires_at < ?", *filter.ExpiresBefore)
	}
	return db
}

func (r *sessionRepository) ByFilter(ctx context.Context, filter models.SessionFilter, orderBy string, limit, offset int) ([]*models.Session, error) {
	var sessions []*models.Session
	db := r.applyFilter(r.getDB(ctx).Model(&models.Session{}), filter)
	if orderBy != "" {
		db = db.Order(orderBy)
	}
	if limit > 0 {
		db = db.Limit(limit)
	}
	if offset > 0 {
		db = db.Offset(offset)
	}
	err := db.Find(&sessions).Error
	return sessions, err
}

func (r *sessionRepository) Count(ctx context.Context, filter models.SessionFilter) (int64, error) {
	var count int64
	err := r.applyFilter(r.getDB(ctx).Model(&models.Session{}), filter).Count(&count).Error
	return count, err
}

func (r *sessionRepository) Exists(ctx context.Context, filter models.SessionFilter) (bool, error) {
	count, err := r.Count(ctx, filter)
	return count > 0, err
}

// BySessionToken loads the session with its user. Unknown tokens
// return nil, nil; validity (active, unexpired) is the caller's call.
func (r *sessionRepository) BySessionToken(ctx context.Context, token string) (*models.Session, error) {
	var session models.Session
	err := r.getDB(ctx).Preload("User").Preload("User.PlayerProfile").
		Where("session_token = ?", token).First(&session).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &session, nil
}

func (r *sessionRepository) ListActiveByUser(ctx context.Context, userID uint) ([]*models.Session, error) {
	active := true
	now := utils.UTCNow()
	return r.ByFilter(ctx, models.SessionFilter{
		UserID:       &userID,
		IsActive:     &active,
		ExpiresAfter: &now,
	}, "created_at DESC", 0, 0)
}

// Invalidate deactivates the session with the given token. Idempotent;
// an unknown or already-inactive token is not an error.
func (r *sessionRepository) Invalidate(ctx context.Context, token string) error {
	return r.getDB(ctx).Model(&models.Session{}).
		Where("session_token = ?", token).
		Update("is_active", false).Error
}

func (r *sessionRepository) InvalidateAllForUser(ctx context.Context, userID uint) error {
	return r.getDB(ctx).Model(&models.Session{}).
		Where("user_id = ? AND is_active = ?", userID, true).
		Update("is_active", false).Error
}

func (r *sessionRepository) TouchLastAccessed(ctx context.Context, sessionID uint) error {
	return r.getDB(ctx).Model(&models.Session{}).
		Where("id = ?", sessionID).
		Update("last_accessed_at", utils.UTCNow()).Error
}
