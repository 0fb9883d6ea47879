package businessflow

import (
	"context"
	"fmt"
	"strings"

	"github.com/scoutbase/scoutbase/app/dto"
	"github.com/scoutbase/scoutbase/models"
	"github.com/scoutbase/scoutbase/repository"
	"github.com/scoutbase/scoutbase/utils"
)

// LoginFlow handles credential verification and session issue/teardown.
type LoginFlow interface {
	Login(ctx context.Context, req *dto.LoginRequest, metadata *ClientMetadata) (*dto.SessionResponse, error)
	Logout(ctx context.Context, identity *Identity, token string, metadata *ClientMetadata) error
	LogoutAll(ctx context.Context, identity *Identity, metadata *ClientMetadata) error
}

type LoginFlowImpl struct {
	userRepo repository.UserRepository
	gate     SessionGate
	auditor  Auditor
}

func NewLoginFlow(userRepo repository.UserRepository, gate SessionGate, auditor Auditor) LoginFlow {
	return &LoginFlowImpl{
		userRepo: userRepo,
		gate:     gate,
		auditor:  auditor,
	}
}

// Login verifies the credentials and establishes a session. An unknown
// identifier is reported as ErrUserNotFound, a hash mismatch on an
// existing account as ErrInvalidCredentials.
func (l *LoginFlowImpl) Login(ctx context.Context, req *dto.LoginRequest, metadata *ClientMetadata) (*dto.SessionResponse, error) {
	user, err := l.lookup(ctx, req.Identifier)
	if err != nil {
		return nil, fmt.Errorf("lookup user: %w", err)
	}
	// The bcrypt comparison runs on the unknown-user path too, keeping
	// response timing flat across both failure modes.
	passwordOK := utils.VerifyPassword(passwordHashOrDummy(user), req.Password)
	if user == nil {
		l.auditor.Record(ctx, nil, models.AdminActionLoginFailed, req.Identifier, "unknown identifier", false, metadata)
		return nil, ErrUserNotFound
	}
	if !passwordOK {
		l.auditor.Record(ctx, &user.ID, models.AdminActionLoginFailed, user.Username, "bad credentials", false, metadata)
		return nil, ErrInvalidCredentials
	}
	if !utils.IsTrue(user.IsActive) {
		l.auditor.Record(ctx, &user.ID, models.AdminActionLoginFailed, user.Username, "account disabled", false, metadata)
		return nil, ErrAccountDisabled
	}

	token, session, err := l.gate.Establish(ctx, user, metadata)
	if err != nil {
		return nil, fmt.Errorf("establish session: %w", err)
	}

	if err := l.userRepo.TouchLastLogin(ctx, user.ID); err != nil {
		return nil, fmt.Errorf("touch last login: %w", err)
	}
	now := utils.UTCNow()
	user.LastLoginAt = &now

	l.auditor.Record(ctx, &user.ID, models.AdminActionLoginSuccess, user.Username, "", true, metadata)

	return &dto.SessionResponse{
		Token:     token,
		ExpiresAt: session.ExpiresAt,
		User:      dto.ToUserResponse(user),
	}, nil
}

// Logout ends the presented session only.
func (l *LoginFlowImpl) Logout(ctx context.Context, identity *Identity, token string, metadata *ClientMetadata) error {
	if identity == nil {
		return ErrUnauthenticated
	}
	if err := l.gate.Invalidate(ctx, token); err != nil {
		return err
	}
	l.auditor.Record(ctx, &identity.UserID, models.AdminActionLogout, identity.Username, "", true, metadata)
	return nil
}

// LogoutAll ends every session of the authenticated user.
func (l *LoginFlowImpl) LogoutAll(ctx context.Context, identity *Identity, metadata *ClientMetadata) error {
	if identity == nil {
		return ErrUnauthenticated
	}
	if err := l.gate.InvalidateAllForUser(ctx, identity.UserID); err != nil {
		return err
	}
	l.auditor.Record(ctx, &identity.UserID, models.AdminActionLogout, identity.Username, "all sessions", true, metadata)
	return nil
}

func (l *LoginFlowImpl) lookup(ctx context.Context, identifier string) (*models.User, error) {
	if strings.Contains(identifier, "@") {
		return l.userRepo.ByEmail(ctx, identifier)
	}
	return l.userRepo.ByUsername(ctx, identifier)
}

// passwordHashOrDummy keeps the bcrypt comparison on the unknown-user
// path so response timing does not reveal whether the account exists.
func passwordHashOrDummy(user *models.User) string {
	if user != nil {
		return user.PasswordHash
	}
	return "$2a$10$7EqJtq98hPqEX7fNZaFWoOhi5B0xF1mhZ6v0C9yGqyV3n1x1Y0y6W"
}
