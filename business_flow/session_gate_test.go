package businessflow

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/scoutbase/scoutbase/models"
	"github.com/scoutbase/scoutbase/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeSessionRepo is an in-memory SessionRepository for gate tests.
type fakeSessionRepo struct {
	sessions map[string]*models.Session
	nextID   uint
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{sessions: make(map[string]*models.Session)}
}

func (f *fakeSessionRepo) ByID(ctx context.Context, id uint) (*models.Session, error) {
	for _, s := range f.sessions {
		if s.ID == id {
			return s, nil
		}
	}
	return nil, nil
}

func (f *fakeSessionRepo) ByFilter(ctx context.Context, filter models.SessionFilter, orderBy string, limit, offset int) ([]*models.Session, error) {
	var out []*models.Session
	for _, s := range f.sessions {
		if filter.UserID != nil && s.UserID != *filter.UserID {
			continue
		}
		if filter.IsActive != nil && utils.IsTrue(s.IsActive) != *filter.IsActive {
			continue
		}
		out = append(out, s)
	}
	return out, nil
}

func (f *fakeSessionRepo) Save(ctx context.Context, s *models.Session) error {
	if s.ID == 0 {
		f.nextID++
		s.ID = f.nextID
	}
	f.sessions[s.SessionToken] = s
	return nil
}

func (f *fakeSessionRepo) SaveBatch(ctx context.Context, sessions []*models.Session) error {
	for _, s := range sessions {
		if err := f.Save(ctx, s); err != nil {
			return err
		}
	}
	return nil
}

func (f *fakeSessionRepo) Count(ctx context.Context, filter models.SessionFilter) (int64, error) {
	out, _ := f.ByFilter(ctx, filter, "", 0, 0)
	return int64(len(out)), nil
}

func (f *fakeSessionRepo) Exists(ctx context.Context, filter models.SessionFilter) (bool, error) {
	n, _ := f.Count(ctx, filter)
	return n > 0, nil
}

func (f *fakeSessionRepo) BySessionToken(ctx context.Context, token string) (*models.Session, error) {
	return f.sessions[token], nil
}

func (f *fakeSessionRepo) ListActiveByUser(ctx context.Context, userID uint) ([]*models.Session, error) {
	active := true
	return f.ByFilter(ctx, models.SessionFilter{UserID: &userID, IsActive: &active}, "", 0, 0)
}

func (f *fakeSessionRepo) Invalidate(ctx context.Context, token string) error {
	if s, ok := f.sessions[token]; ok {
		s.IsActive = utils.ToPtr(false)
	}
	return nil
}

func (f *fakeSessionRepo) InvalidateAllForUser(ctx context.Context, userID uint) error {
	for _, s := range f.sessions {
		if s.UserID == userID {
			s.IsActive = utils.ToPtr(false)
		}
	}
	return nil
}

func (f *fakeSessionRepo) TouchLastAccessed(ctx context.Context, sessionID uint) error {
	return nil
}

func testUser() *models.User {
	return &models.User{
		ID:       7,
		UUID:     uuid.New(),
		Username: "ana_garcia",
		Role:     models.RolePlayer,
		IsActive: utils.ToPtr(true),
	}
}

func TestSessionGate_EstablishAndResolve(t *testing.T) {
	ctx := context.Background()
	repo := newFakeSessionRepo()
	gate := NewSessionGate(repo, nil, time.Hour)
	user := testUser()

	token, session, err := gate.Establish(ctx, user, &ClientMetadata{IPAddress: "10.0.0.1"})
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.NotZero(t, session.ID)
	assert.True(t, session.ExpiresAt.After(utils.UTCNow()))

	stored := repo.sessions[token]
	require.NotNil(t, stored, "session row must be persisted under the token")
	stored.User = *user

	identity, err := gate.Resolve(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, identity.UserID)
	assert.Equal(t, user.Username, identity.Username)
	assert.Equal(t, models.RolePlayer, identity.Role)
}

func TestSessionGate_ResolveUnknownToken(t *testing.T) {
	gate := NewSessionGate(newFakeSessionRepo(), nil, time.Hour)

	_, err := gate.Resolve(context.Background(), "no-such-token")
	assert.ErrorIs(t, err, ErrUnauthenticated)

	_, err = gate.Resolve(context.Background(), "")
	assert.ErrorIs(t, err, ErrUnauthenticated)
}

func TestSessionGate_ResolveExpiredSession(t *testing.T) {
	ctx := context.Background()
	repo := newFakeSessionRepo()
	gate := NewSessionGate(repo, nil, time.Hour)
	user := testUser()

	token, _, err := gate.Establish(ctx, user, nil)
	require.NoError(t, err)

	stored := repo.sessions[token]
	stored.User = *user
	stored.ExpiresAt = utils.UTCNow().Add(-time.Minute)

	_, err = gate.Resolve(ctx, token)
	assert.ErrorIs(t, err, ErrSessionExpired)
}

func TestSessionGate_ResolveInvalidatedSession(t *testing.T) {
	ctx := context.Background()
	repo := newFakeSessionRepo()
	gate := NewSessionGate(repo, nil, time.Hour)
	user := testUser()

	token, _, err := gate.Establish(ctx, user, nil)
	require.NoError(t, err)
	repo.sessions[token].User = *user

	require.NoError(t, gate.Invalidate(ctx, token))

	_, err = gate.Resolve(ctx, token)
	assert.ErrorIs(t, err, ErrUnauthenticated)
}

func TestSessionGate_InvalidateAllForUser(t *testing.T) {
	ctx := context.Background()
	repo := newFakeSessionRepo()
	gate := NewSessionGate(repo, nil, time.Hour)
	user := testUser()

	t1, _, err := gate.Establish(ctx, user, nil)
	require.NoError(t, err)
	t2, _, err := gate.Establish(ctx, user, nil)
	require.NoError(t, err)
	repo.sessions[t1].User = *user
	repo.sessions[t2].User = *user

	require.NoError(t, gate.InvalidateAllForUser(ctx, user.ID))

	_, err = gate.Resolve(ctx, t1)
	assert.ErrorIs(t, err, ErrUnauthenticated)
	_, err = gate.Resolve(ctx, t2)
	assert.ErrorIs(t, err, ErrUnauthenticated)
}

func TestSessionGate_RequireRole(t *testing.T) {
	gate := NewSessionGate(newFakeSessionRepo(), nil, time.Hour)

	admin := &Identity{Role: models.RoleAdmin}
	assert.NoError(t, gate.RequireRole(admin, models.RoleAdmin))
	assert.NoError(t, gate.RequireRole(admin, models.RoleScout, models.RoleAdmin))

	player := &Identity{Role: models.RolePlayer}
	assert.ErrorIs(t, gate.RequireRole(player, models.RoleAdmin), ErrForbidden)
	assert.ErrorIs(t, gate.RequireRole(nil, models.RoleAdmin), ErrUnauthenticated)
}

func TestSessionGate_TokensAreUnique(t *testing.T) {
	ctx := context.Background()
	repo := newFakeSessionRepo()
	gate := NewSessionGate(repo, nil, time.Hour)
	user := testUser()

	seen := make(map[string]bool)
	for i := 0; i < 20; i++ {
		token, _, err := gate.Establish(ctx, user, nil)
		require.NoError(t, err)
		assert.False(t, seen[token], "tokens must not repeat")
		seen[token] = true
	}
}
