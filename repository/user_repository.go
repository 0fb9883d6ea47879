package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/scoutbase/scoutbase/models"
	"github.com/scoutbase/scoutbase/utils"
	"gorm.io/gorm"
)

// userRepository implements UserRepository using GORM
type userRepository struct {
	*BaseRepository[models.User, models.UserFilter]
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{
		BaseRepository: NewBaseRepository[models.User, models.UserFilter](db),
		db:             db,
	}
}

func (r *userRepository) applyFilter(db *gorm.DB, filter models.UserFilter) *gorm.DB {
	if filter.ID != nil {
		db = db.Where("id = ?", *filter.ID)
	}
	if filter.UUID != nil {
		db = db.Where("uuid = ?", *filter.UUID)
	}
	if filter.Username != nil {
		db = db.Where("username = ?", *filter.Username)
	}
	if filter.Email != nil {
		db = db.Where("email = ?", *filter.Email)
	}
	if filter.Role != nil {
		db = db.Where("role = ?", *filter.Role)
	}
	if filter.Country != nil {
		db = db.Where("country = ?", *filter.Country)
	}
	if filter.Position != nil {
		db = db.Where("position = ?", *filter.Position)
	}
	if filter.IsActive != nil {
		db = db.Where("is_active = ?", *filter.IsActive)
	}
	if filter.CreatedAfter != nil {
		db = db.Where("created_at > ?", *filter.CreatedAfter)
	}
	if filter.CreatedBefore != nil {
		db = db.Where("created_at < ?", *filter.CreatedBefore)
	}
	return db
}

func (r *userRepository) ByFilter(ctx context.Context, filter models.UserFilter, orderBy string, limit, offset int) ([]*models.User, error) {
	var users []*models.User
	db := r.applyFilter(r.getDB(ctx).Model(&models.User{}), filter)
	if orderBy != "" {
		db = db.Order(orderBy)
	}
	if limit > 0 {
		db = db.Limit(limit)
	}
	if offset > 0 {
		db = db.Offset(offset)
	}
	err := db.Find(&users).Error
	return users, err
}

func (r *userRepository) Count(ctx context.Context, filter models.UserFilter) (int64, error) {
	var count int64
	err := r.applyFilter(r.getDB(ctx).Model(&models.User{}), filter).Count(&count).Error
	return count, err
}

func (r *userRepository) Exists(ctx context.Context, filter models.UserFilter) (bool, error) {
	count, err := r.Count(ctx, filter)
	return count > 0, err
}

// ByUsername returns nil, nil when no such user exists. Absence is not
// an error at this layer.
func (r *userRepository) ByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	err := r.getDB(ctx).Preload("PlayerProfile").Where("username = ?", username).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) ByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.getDB(ctx).Preload("PlayerProfile").Where("email = ?", email).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) ByUUID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var user models.User
	err := r.getDB(ctx).Preload("PlayerProfile").Where("uuid = ?", id).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) ByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	err := r.getDB(ctx).Preload("PlayerProfile").First(&user, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) UsernameExists(ctx context.Context, username string) (bool, error) {
	return r.Exists(ctx, models.UserFilter{Username: &username})
}

func (r *userRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	return r.Exists(ctx, models.UserFilter{Email: &email})
}

// CreateWithProfile inserts the user and, for players, the profile row
// in one transaction. A unique violation on username or email comes
// back as the matching duplicate sentinel; the constraint, not any
// prior existence check, decides.
func (r *userRepository) CreateWithProfile(ctx context.Context, user *models.User, profile *models.PlayerProfile) error {
	err := WithTransaction(ctx, r.db, func(txCtx context.Context) error {
		db := r.getDB(txCtx)
		if err := db.Create(user).Error; err != nil {
			return err
		}
		if profile != nil {
			profile.UserID = user.ID
			if err := db.Create(profile).Error; err != nil {
				return err
			}
		}
		return nil
	})
	return translateDuplicate(err)
}

// UpdateProfile writes the full mutable field set. A missing row is
// reported as gorm.ErrRecordNotFound; a write that affects zero rows
// after the existence check passed comes back as ErrNoRowsUpdated.
func (r *userRepository) UpdateProfile(ctx context.Context, id uint, update ProfileUpdate) error {
	db := r.getDB(ctx)

	var exists int64
	if err := db.Model(&models.User{}).Where("id = ?", id).Count(&exists).Error; err != nil {
		return err
	}
	if exists == 0 {
		return gorm.ErrRecordNotFound
	}

	result := db.Model(&models.User{}).Where("id = ?", id).Updates(map[string]any{
		"full_name":     update.FullName,
		"phone":         update.Phone,
		"country":       update.Country,
		"date_of_birth": update.DateOfBirth,
		"position":      update.Position,
		"current_club":  update.CurrentClub,
		"updated_at":    utils.UTCNow(),
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNoRowsUpdated
	}
	return nil
}

func (r *userRepository) UpdatePassword(ctx context.Context, id uint, passwordHash string) error {
	result := r.getDB(ctx).Model(&models.User{}).Where("id = ?", id).Updates(map[string]any{
		"password_hash": passwordHash,
		"updated_at":    utils.UTCNow(),
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *userRepository) TouchLastLogin(ctx context.Context, id uint) error {
	now := utils.UTCNow()
	return r.getDB(ctx).Model(&models.User{}).Where("id = ?", id).
		Update("last_login_at", now).Error
}

// Search runs a composed plan over the given base population.
func (r *userRepository) Search(ctx context.Context, base EntityBase, criteria models.SearchCriteria) ([]*models.User, error) {
	plan, err := ComposeUserQuery(base, criteria)
	if err != nil {
		return nil, fmt.Errorf("compose %s query: %w", base.Name, err)
	}
	var users []*models.User
	db := plan.Apply(r.getDB(ctx).Model(&models.User{}).Preload("PlayerProfile"))
	if err := db.Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (r *userRepository) CountByRole(ctx context.Context, role string) (int64, error) {
	return r.Count(ctx, models.UserFilter{Role: &role})
}

// CountBySearch counts the rows a composed plan would match, ignoring
// the plan's pagination. Paired with Search to report listing totals.
func (r *userRepository) CountBySearch(ctx context.Context, base EntityBase, criteria models.SearchCriteria) (int64, error) {
	plan, err := ComposeUserQuery(base, criteria)
	if err != nil {
		return 0, fmt.Errorf("compose %s query: %w", base.Name, err)
	}
	var count int64
	err = plan.ApplyFilters(r.getDB(ctx).Model(&models.User{})).Count(&count).Error
	return count, err
}

// Delete removes the user row; the profile and sessions go with it via
// ON DELETE CASCADE.
func (r *userRepository) Delete(ctx context.Context, id uint) error {
	result := r.getDB(ctx).Delete(&models.User{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *userRepository) ProfileByUserID(ctx context.Context, userID uint) (*models.PlayerProfile, error) {
	var profile models.PlayerProfile
	err := r.getDB(ctx).Where("user_id = ?", userID).First(&profile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &profile, nil
}

func (r *userRepository) SavePlayerProfile(ctx context.Context, profile *models.PlayerProfile) error {
	return r.getDB(ctx).Save(profile).Error
}
