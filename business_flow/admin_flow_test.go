package businessflow

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/scoutbase/scoutbase/app/dto"
	"github.com/scoutbase/scoutbase/models"
	"github.com/scoutbase/scoutbase/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func adminFixture() (*fakeUserRepo, *fakeSessionRepo, AdminFlow, *recordingAuditor) {
	userRepo := newFakeUserRepo()
	sessionRepo := newFakeSessionRepo()
	gate := NewSessionGate(sessionRepo, nil, time.Hour)
	auditor := &recordingAuditor{}
	flow := NewAdminFlow(userRepo, nil, nil, gate, auditor)
	return userRepo, sessionRepo, flow, auditor
}

func TestListUsers_TotalReflectsFilteredPopulation(t *testing.T) {
	ctx := context.Background()
	userRepo, _, flow, _ := adminFixture()

	for _, name := range []string{"p_one", "p_two", "p_three"} {
		userRepo.add(&models.User{
			UUID: uuid.New(), Username: name, Role: models.RolePlayer,
			FullName: name, IsActive: utils.ToPtr(true),
		})
	}
	userRepo.add(&models.User{
		UUID: uuid.New(), Username: "lone_scout", Role: models.RoleScout,
		FullName: "Lone Scout", IsActive: utils.ToPtr(true),
	})

	resp, err := flow.ListUsers(ctx, models.RolePlayer, &dto.SearchRequest{Limit: 2})
	require.NoError(t, err)

	items := resp.Items.([]dto.UserResponse)
	assert.Len(t, items, 2)
	assert.EqualValues(t, 3, resp.Pagination.Total, "total counts the filtered population, not the page and not other roles")
}

func TestListUsers_UnknownRoleRejected(t *testing.T) {
	_, _, flow, _ := adminFixture()

	_, err := flow.ListUsers(context.Background(), "referee", &dto.SearchRequest{})
	require.Error(t, err)
	assert.True(t, IsValidationError(err))
}

func TestExportUsersXLSX_RendersListing(t *testing.T) {
	ctx := context.Background()
	userRepo, _, flow, auditor := adminFixture()

	userRepo.add(&models.User{
		UUID: uuid.New(), Username: "ana_garcia", Role: models.RolePlayer,
		FullName: "Ana Garcia", Country: utils.ToPtr("Spain"),
		Position: utils.ToPtr("winger"), IsActive: utils.ToPtr(true),
	})
	userRepo.add(&models.User{
		UUID: uuid.New(), Username: "bare_player", Role: models.RolePlayer,
		FullName: "Bare Player", IsActive: utils.ToPtr(true),
	})

	identity := &Identity{UserID: 42, Username: "root", Role: models.RoleAdmin}
	raw, err := flow.ExportUsersXLSX(ctx, identity, models.RolePlayer, nil)
	require.NoError(t, err)
	require.NotEmpty(t, raw)

	wb, err := excelize.OpenReader(bytes.NewReader(raw))
	require.NoError(t, err)
	defer wb.Close()

	rows, err := wb.GetRows("Users")
	require.NoError(t, err)
	require.Len(t, rows, 3, "header plus one row per player")
	assert.Equal(t, exportHeader, rows[0])

	byUsername := make(map[string][]string)
	for _, row := range rows[1:] {
		require.GreaterOrEqual(t, len(row), 2)
		byUsername[row[1]] = row
	}
	require.Contains(t, byUsername, "ana_garcia")
	assert.Equal(t, "Spain", byUsername["ana_garcia"][5])
	require.Contains(t, byUsername, "bare_player")
	if len(byUsername["bare_player"]) > 5 {
		assert.Empty(t, byUsername["bare_player"][5], "unset optional fields render as blanks")
	}

	assert.Contains(t, auditor.actions, models.AdminActionExportRequested)
}

func TestDeleteUser_RemovesAccountAndSessions(t *testing.T) {
	ctx := context.Background()
	userRepo, sessionRepo, flow, auditor := adminFixture()

	scout := userRepo.add(&models.User{
		UUID: uuid.New(), Username: "doomed_scout", Role: models.RoleScout,
		FullName: "Doomed Scout", IsActive: utils.ToPtr(true),
	})
	gate := NewSessionGate(sessionRepo, nil, time.Hour)
	token, _, err := gate.Establish(ctx, scout, nil)
	require.NoError(t, err)

	identity := &Identity{UserID: 42, Username: "root", Role: models.RoleAdmin}
	require.NoError(t, flow.DeleteUser(ctx, identity, scout.ID, nil))

	assert.Nil(t, userRepo.users[scout.ID])
	assert.False(t, utils.IsTrue(sessionRepo.sessions[token].IsActive), "sessions die with the account")
	assert.Contains(t, auditor.actions, models.AdminActionUserDeleted)
}

func TestDeleteUser_AdminAccountsProtected(t *testing.T) {
	ctx := context.Background()
	userRepo, _, flow, _ := adminFixture()

	admin := userRepo.add(&models.User{
		UUID: uuid.New(), Username: "root", Role: models.RoleAdmin,
		FullName: "Root", IsActive: utils.ToPtr(true),
	})

	identity := &Identity{UserID: admin.ID, Username: "root", Role: models.RoleAdmin}
	err := flow.DeleteUser(ctx, identity, admin.ID, nil)
	assert.ErrorIs(t, err, ErrForbidden)
	assert.NotNil(t, userRepo.users[admin.ID])

	err = flow.DeleteUser(ctx, identity, 999999, nil)
	assert.ErrorIs(t, err, ErrUserNotFound)
}
