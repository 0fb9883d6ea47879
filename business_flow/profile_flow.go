package businessflow

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/scoutbase/scoutbase/app/dto"
	"github.com/scoutbase/scoutbase/models"
	"github.com/scoutbase/scoutbase/repository"
	"gorm.io/gorm"
)

// ProfileFlow handles reading and updating the authenticated user's
// own profile.
type ProfileFlow interface {
	Get(ctx context.Context, identity *Identity) (*dto.UserResponse, error)
	Update(ctx context.Context, identity *Identity, req *dto.UpdateProfileRequest, metadata *ClientMetadata) (*dto.UserResponse, error)
}

type ProfileFlowImpl struct {
	userRepo repository.UserRepository
	db       *gorm.DB
	auditor  Auditor
}

func NewProfileFlow(userRepo repository.UserRepository, db *gorm.DB, auditor Auditor) ProfileFlow {
	return &ProfileFlowImpl{
		userRepo: userRepo,
		db:       db,
		auditor:  auditor,
	}
}

func (p *ProfileFlowImpl) Get(ctx context.Context, identity *Identity) (*dto.UserResponse, error) {
	if identity == nil {
		return nil, ErrUnauthenticated
	}
	user, err := p.userRepo.ByID(ctx, identity.UserID)
	if err != nil {
		return nil, fmt.Errorf("load user: %w", err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	resp := dto.ToUserResponse(user)
	return &resp, nil
}

// Update performs a full replace of the mutable fields, player profile
// included, in one transaction. A vanished user comes back as
// ErrUserNotFound, distinct from a write that changed nothing.
func (p *ProfileFlowImpl) Update(ctx context.Context, identity *Identity, req *dto.UpdateProfileRequest, metadata *ClientMetadata) (*dto.UserResponse, error) {
	if identity == nil {
		return nil, ErrUnauthenticated
	}

	var dob *time.Time
	if req.DateOfBirth != nil {
		parsed, err := time.Parse("2006-01-02", *req.DateOfBirth)
		if err != nil {
			return nil, NewValidationError("date_of_birth", "must be an ISO date (YYYY-MM-DD)")
		}
		dob = &parsed
	}

	update := repository.ProfileUpdate{
		FullName:    req.FullName,
		Phone:       req.Phone,
		Country:     req.Country,
		DateOfBirth: dob,
		Position:    req.Position,
		CurrentClub: req.CurrentClub,
	}

	if req.PreferredFoot != nil && !models.ValidPreferredFoot(*req.PreferredFoot) {
		return nil, NewValidationError("preferred_foot", "must be left, right or both")
	}

	err := repository.WithTransaction(ctx, p.db, func(txCtx context.Context) error {
		if err := p.userRepo.UpdateProfile(txCtx, identity.UserID, update); err != nil {
			return updateError(err)
		}

		if identity.Role != models.RolePlayer {
			return nil
		}

		profile, err := p.userRepo.ProfileByUserID(txCtx, identity.UserID)
		if err != nil {
			return fmt.Errorf("load profile: %w", err)
		}
		if profile == nil {
			profile = &models.PlayerProfile{UserID: identity.UserID}
		}
		profile.HeightCM = req.HeightCM
		profile.WeightKG = req.WeightKG
		profile.PreferredFoot = req.PreferredFoot
		profile.Bio = req.Bio
		profile.VideoURL = req.VideoURL
		if err := p.userRepo.SavePlayerProfile(txCtx, profile); err != nil {
			return fmt.Errorf("save profile: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	p.auditor.Record(ctx, &identity.UserID, models.AdminActionProfileUpdated, identity.Username, "", true, metadata)

	return p.Get(ctx, identity)
}

// updateError translates repository update failures into flow errors.
func updateError(err error) error {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrUserNotFound
	case errors.Is(err, repository.ErrNoRowsUpdated):
		return ErrUpdateFailed
	}
	return fmt.Errorf("update user: %w", err)
}
