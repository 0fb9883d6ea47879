package businessflow

import (
	"context"
	"testing"

	"github.com/scoutbase/scoutbase/app/dto"
	"github.com/scoutbase/scoutbase/models"
	"github.com/scoutbase/scoutbase/repository"
	"github.com/scoutbase/scoutbase/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func registerRequest() *dto.RegisterRequest {
	return &dto.RegisterRequest{
		Username: "ana_garcia",
		Email:    "ana@example.com",
		Password: "a long password",
		Role:     models.RolePlayer,
		FullName: "Ana Garcia",
		Position: utils.ToPtr("winger"),
		HeightCM: utils.ToPtr(168),
	}
}

func TestRegister_PlayerGetsProfileRow(t *testing.T) {
	ctx := context.Background()
	userRepo := newFakeUserRepo()
	auditor := &recordingAuditor{}
	flow := NewSignupFlow(userRepo, auditor, bcrypt.MinCost)

	resp, err := flow.Register(ctx, registerRequest(), nil)
	require.NoError(t, err)
	assert.Equal(t, "ana_garcia", resp.Username)
	assert.Equal(t, models.RolePlayer, resp.Role)
	require.NotNil(t, resp.PlayerProfile)
	assert.Equal(t, 168, *resp.PlayerProfile.HeightCM)

	stored, err := userRepo.ByUsername(ctx, "ana_garcia")
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.NotEqual(t, "a long password", stored.PasswordHash, "password must be stored hashed")
	assert.True(t, utils.VerifyPassword(stored.PasswordHash, "a long password"))
	assert.NotNil(t, userRepo.profiles[stored.ID], "player signup creates the profile row")

	assert.Contains(t, auditor.actions, models.AdminActionSignupCompleted)
}

func TestRegister_ScoutGetsNoProfileRow(t *testing.T) {
	ctx := context.Background()
	userRepo := newFakeUserRepo()
	flow := NewSignupFlow(userRepo, nopAuditor{}, bcrypt.MinCost)

	req := registerRequest()
	req.Username = "scout_jane"
	req.Email = "jane@example.com"
	req.Role = models.RoleScout

	resp, err := flow.Register(ctx, req, nil)
	require.NoError(t, err)
	assert.Nil(t, resp.PlayerProfile)

	stored, _ := userRepo.ByUsername(ctx, "scout_jane")
	require.NotNil(t, stored)
	assert.Nil(t, userRepo.profiles[stored.ID])
}

func TestRegister_DuplicateUsernameAndEmail(t *testing.T) {
	ctx := context.Background()
	userRepo := newFakeUserRepo()
	flow := NewSignupFlow(userRepo, nopAuditor{}, bcrypt.MinCost)

	_, err := flow.Register(ctx, registerRequest(), nil)
	require.NoError(t, err)

	_, err = flow.Register(ctx, registerRequest(), nil)
	assert.ErrorIs(t, err, repository.ErrDuplicateUsername)

	req := registerRequest()
	req.Username = "different_name"
	_, err = flow.Register(ctx, req, nil)
	assert.ErrorIs(t, err, repository.ErrDuplicateEmail)
}

func TestRegister_AdminRoleRejected(t *testing.T) {
	flow := NewSignupFlow(newFakeUserRepo(), nopAuditor{}, bcrypt.MinCost)

	req := registerRequest()
	req.Role = models.RoleAdmin

	_, err := flow.Register(context.Background(), req, nil)
	require.Error(t, err)
	assert.True(t, IsValidationError(err))
}

func TestRegister_UsesConfiguredBcryptCost(t *testing.T) {
	ctx := context.Background()
	userRepo := newFakeUserRepo()
	flow := NewSignupFlow(userRepo, nopAuditor{}, bcrypt.MinCost)

	_, err := flow.Register(ctx, registerRequest(), nil)
	require.NoError(t, err)

	stored, err := userRepo.ByUsername(ctx, "ana_garcia")
	require.NoError(t, err)
	require.NotNil(t, stored)
	cost, err := bcrypt.Cost([]byte(stored.PasswordHash))
	require.NoError(t, err)
	assert.Equal(t, bcrypt.MinCost, cost, "the configured cost, not the library default, shapes the hash")
}

func TestRegister_BadPreferredFoot(t *testing.T) {
	flow := NewSignupFlow(newFakeUserRepo(), nopAuditor{}, bcrypt.MinCost)

	req := registerRequest()
	req.PreferredFoot = utils.ToPtr("ambidextrous")

	_, err := flow.Register(context.Background(), req, nil)
	require.Error(t, err)
	assert.True(t, IsValidationError(err))
}

func TestRegister_BadDateOfBirth(t *testing.T) {
	flow := NewSignupFlow(newFakeUserRepo(), nopAuditor{}, bcrypt.MinCost)

	req := registerRequest()
	req.DateOfBirth = utils.ToPtr("15/06/2004")

	_, err := flow.Register(context.Background(), req, nil)
	require.Error(t, err)
	assert.True(t, IsValidationError(err))
}
