package businessflow

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/scoutbase/scoutbase/app/dto"
	"github.com/scoutbase/scoutbase/models"
	"github.com/scoutbase/scoutbase/repository"
	"github.com/scoutbase/scoutbase/utils"
)

// SignupFlow handles self-service registration.
type SignupFlow interface {
	Register(ctx context.Context, req *dto.RegisterRequest, metadata *ClientMetadata) (*dto.UserResponse, error)
}

type SignupFlowImpl struct {
	userRepo   repository.UserRepository
	auditor    Auditor
	bcryptCost int
}

func NewSignupFlow(userRepo repository.UserRepository, auditor Auditor, bcryptCost int) SignupFlow {
	return &SignupFlowImpl{
		userRepo:   userRepo,
		auditor:    auditor,
		bcryptCost: bcryptCost,
	}
}

// Register creates the user and, for players, the profile row in one
// transaction. The pre-insert existence checks only shape the error
// message; the unique constraints are the authority, so a concurrent
// duplicate still comes back as a duplicate error, never a 500.
func (s *SignupFlowImpl) Register(ctx context.Context, req *dto.RegisterRequest, metadata *ClientMetadata) (*dto.UserResponse, error) {
	if !models.RegistrableRole(req.Role) {
		return nil, NewValidationError("role", "role must be player, scout or club")
	}
	if req.PreferredFoot != nil && !models.ValidPreferredFoot(*req.PreferredFoot) {
		return nil, NewValidationError("preferred_foot", "must be left, right or both")
	}

	if taken, err := s.userRepo.UsernameExists(ctx, req.Username); err != nil {
		return nil, fmt.Errorf("check username: %w", err)
	} else if taken {
		s.auditor.Record(ctx, nil, models.AdminActionSignupFailed, req.Username, "username taken", false, metadata)
		return nil, repository.ErrDuplicateUsername
	}
	if taken, err := s.userRepo.EmailExists(ctx, req.Email); err != nil {
		return nil, fmt.Errorf("check email: %w", err)
	} else if taken {
		s.auditor.Record(ctx, nil, models.AdminActionSignupFailed, req.Username, "email taken", false, metadata)
		return nil, repository.ErrDuplicateEmail
	}

	hash, err := utils.HashPassword(req.Password, s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	var dob *time.Time
	if req.DateOfBirth != nil {
		parsed, err := time.Parse("2006-01-02", *req.DateOfBirth)
		if err != nil {
			return nil, NewValidationError("date_of_birth", "must be an ISO date (YYYY-MM-DD)")
		}
		dob = &parsed
	}

	user := &models.User{
		UUID:         uuid.New(),
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hash,
		Role:         req.Role,
		FullName:     req.FullName,
		Phone:        req.Phone,
		Country:      req.Country,
		DateOfBirth:  dob,
		Position:     req.Position,
		CurrentClub:  req.CurrentClub,
		IsActive:     utils.ToPtr(true),
		CreatedAt:    utils.UTCNow(),
		UpdatedAt:    utils.UTCNow(),
	}

	var profile *models.PlayerProfile
	if req.Role == models.RolePlayer {
		profile = &models.PlayerProfile{
			HeightCM:      req.HeightCM,
			WeightKG:      req.WeightKG,
			PreferredFoot: req.PreferredFoot,
			Bio:           req.Bio,
			VideoURL:      req.VideoURL,
		}
	}

	if err := s.userRepo.CreateWithProfile(ctx, user, profile); err != nil {
		if repository.IsDuplicateIdentity(err) {
			s.auditor.Record(ctx, nil, models.AdminActionSignupFailed, req.Username, "duplicate on insert", false, metadata)
			return nil, err
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	user.PlayerProfile = profile
	s.auditor.Record(ctx, &user.ID, models.AdminActionSignupCompleted, req.Username, "", true, metadata)

	resp := dto.ToUserResponse(user)
	return &resp, nil
}
