package repository

import (
	"context"

	"github.com/scoutbase/scoutbase/models"
	"gorm.io/gorm"
)

// adminLogRepository implements AdminLogRepository using GORM
type adminLogRepository struct {
	*BaseRepository[models.AdminLog, models.AdminLogFilter]
	db *gorm.DB
}

func NewAdminLogRepository(db *gorm.DB) AdminLogRepository {
	return &adminLogRepository{
		BaseRepository: NewBaseRepository[models.AdminLog, models.AdminLogFilter](db),
		db:             db,
	}
}

func (r *adminLogRepository) applyFilter(db *gorm.DB, filter models.AdminLogFilter) *gorm.DB {
	if filter.ID != nil {
		db = db.Where("id = ?", *filter.ID)
	}
	if filter.ActorUserID != nil {
		db = db.Where("actor_user_id = ?", *filter.ActorUserID)
	}
	if filter.Action != nil {
		db = db.Where("action = ?", *filter.Action)
	}
	if filter.Success != nil {
		db = db.Where("success = ?", *filter.Success)
	}
	if filter.CreatedAfter != nil {
		db = db.Where("created_at > ?", *filter.CreatedAfter)
	}
	if filter.CreatedBefore != nil {
		db = db.Where("created_at < ?", *filter.CreatedBefore)
	}
	return db
}

func (r *adminLogRepository) ByFilter(ctx context.Context, filter models.AdminLogFilter, orderBy string, limit, offset int) ([]*models.AdminLog, error) {
	var logs []*models.AdminLog
	db := r.applyFilter(r.getDB(ctx).Model(&models.AdminLog{}).Preload("Actor"), filter)
	if orderBy != "" {
		db = db.Order(orderBy)
	}
	if limit > 0 {
		db = db.Limit(limit)
	}
	if offset > 0 {
		db = db.Offset(offset)
	}
	err := db.Find(&logs).Error
	return logs, err
}

func (r *adminLogRepository) Count(ctx context.Context, filter models.AdminLogFilter) (int64, error) {
	var count int64
	err := r.applyFilter(r.getDB(ctx).Model(&models.AdminLog{}), filter).Count(&count).Error
	return count, err
}

func (r *adminLogRepository) Exists(ctx context.Context, filter models.AdminLogFilter) (bool, error) {
	count, err := r.Count(ctx, filter)
	return count > 0, err
}

func (r *adminLogRepository) ListRecent(ctx context.Context, limit, offset int) ([]*models.AdminLog, error) {
	return r.ByFilter(ctx, models.AdminLogFilter{}, "created_at DESC", limit, offset)
}

func (r *adminLogRepository) ListByActor(ctx context.Context, actorUserID uint, limit, offset int) ([]*models.AdminLog, error) {
	return r.ByFilter(ctx, models.AdminLogFilter{ActorUserID: &actorUserID}, "created_at DESC", limit, offset)
}
