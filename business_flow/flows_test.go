package businessflow

import (
	"context"

	"github.com/google/uuid"
	"github.com/scoutbase/scoutbase/models"
	"github.com/scoutbase/scoutbase/repository"
	"github.com/scoutbase/scoutbase/utils"
	"gorm.io/gorm"
)

// fakeUserRepo is an in-memory UserRepository for flow tests.
type fakeUserRepo struct {
	users    map[uint]*models.User
	profiles map[uint]*models.PlayerProfile
	nextID   uint
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		users:    make(map[uint]*models.User),
		profiles: make(map[uint]*models.PlayerProfile),
	}
}

func (f *fakeUserRepo) add(u *models.User) *models.User {
	if u.ID == 0 {
		f.nextID++
		u.ID = f.nextID
	}
	f.users[u.ID] = u
	return u
}

func (f *fakeUserRepo) ByID(ctx context.Context, id uint) (*models.User, error) {
	return f.users[id], nil
}

func (f *fakeUserRepo) ByFilter(ctx context.Context, filter models.UserFilter, orderBy string, limit, offset int) ([]*models.User, error) {
	var out []*models.User
	for _, u := range f.users {
		if filter.Role != nil && u.Role != *filter.Role {
			continue
		}
		out = append(out, u)
	}
	return out, nil
}

func (f *fakeUserRepo) Save(ctx context.Context, u *models.User) error {
	f.add(u)
	return nil
}

func (f *fakeUserRepo) SaveBatch(ctx context.Context, users []*models.User) error {
	for _, u := range users {
		f.add(u)
	}
	return nil
}

func (f *fakeUserRepo) Count(ctx context.Context, filter models.UserFilter) (int64, error) {
	out, _ := f.ByFilter(ctx, filter, "", 0, 0)
	return int64(len(out)), nil
}

func (f *fakeUserRepo) Exists(ctx context.Context, filter models.UserFilter) (bool, error) {
	n, _ := f.Count(ctx, filter)
	return n > 0, nil
}

func (f *fakeUserRepo) ByUsername(ctx context.Context, username string) (*models.User, error) {
	for _, u := range f.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) ByEmail(ctx context.Context, email string) (*models.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) ByUUID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	for _, u := range f.users {
		if u.UUID == id {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) UsernameExists(ctx context.Context, username string) (bool, error) {
	u, _ := f.ByUsername(ctx, username)
	return u != nil, nil
}

func (f *fakeUserRepo) EmailExists(ctx context.Context, email string) (bool, error) {
	u, _ := f.ByEmail(ctx, email)
	return u != nil, nil
}

func (f *fakeUserRepo) CreateWithProfile(ctx context.Context, user *models.User, profile *models.PlayerProfile) error {
	if taken, _ := f.UsernameExists(ctx, user.Username); taken {
		return repository.ErrDuplicateUsername
	}
	if taken, _ := f.EmailExists(ctx, user.Email); taken {
		return repository.ErrDuplicateEmail
	}
	f.add(user)
	if profile != nil {
		profile.UserID = user.ID
		f.profiles[user.ID] = profile
	}
	return nil
}

func (f *fakeUserRepo) UpdateProfile(ctx context.Context, id uint, update repository.ProfileUpdate) error {
	u, ok := f.users[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	u.FullName = update.FullName
	u.Phone = update.Phone
	u.Country = update.Country
	u.DateOfBirth = update.DateOfBirth
	u.Position = update.Position
	u.CurrentClub = update.CurrentClub
	return nil
}

func (f *fakeUserRepo) UpdatePassword(ctx context.Context, id uint, passwordHash string) error {
	if u, ok := f.users[id]; ok {
		u.PasswordHash = passwordHash
	}
	return nil
}

func (f *fakeUserRepo) TouchLastLogin(ctx context.Context, id uint) error {
	if u, ok := f.users[id]; ok {
		now := utils.UTCNow()
		u.LastLoginAt = &now
	}
	return nil
}

func (f *fakeUserRepo) Search(ctx context.Context, base repository.EntityBase, criteria models.SearchCriteria) ([]*models.User, error) {
	if _, err := repository.ComposeUserQuery(base, criteria); err != nil {
		return nil, err
	}
	var out []*models.User
	for _, u := range f.users {
		if len(base.Base.Args) == 1 && u.Role != base.Base.Args[0] {
			continue
		}
		out = append(out, u)
	}
	if criteria.Offset > 0 {
		if criteria.Offset >= len(out) {
			return nil, nil
		}
		out = out[criteria.Offset:]
	}
	if criteria.Limit > 0 && len(out) > criteria.Limit {
		out = out[:criteria.Limit]
	}
	return out, nil
}

func (f *fakeUserRepo) CountBySearch(ctx context.Context, base repository.EntityBase, criteria models.SearchCriteria) (int64, error) {
	unpaged := criteria
	unpaged.Limit = 0
	unpaged.Offset = 0
	out, err := f.Search(ctx, base, unpaged)
	if err != nil {
		return 0, err
	}
	return int64(len(out)), nil
}

func (f *fakeUserRepo) CountByRole(ctx context.Context, role string) (int64, error) {
	return f.Count(ctx, models.UserFilter{Role: &role})
}

func (f *fakeUserRepo) Delete(ctx context.Context, id uint) error {
	delete(f.users, id)
	delete(f.profiles, id)
	return nil
}

func (f *fakeUserRepo) ProfileByUserID(ctx context.Context, userID uint) (*models.PlayerProfile, error) {
	return f.profiles[userID], nil
}

func (f *fakeUserRepo) SavePlayerProfile(ctx context.Context, profile *models.PlayerProfile) error {
	f.profiles[profile.UserID] = profile
	return nil
}

// nopAuditor satisfies Auditor and records nothing.
type nopAuditor struct{}

func (nopAuditor) Record(ctx context.Context, actorID *uint, action, target, description string, success bool, metadata *ClientMetadata) {
}

// recordingAuditor captures actions for assertions.
type recordingAuditor struct {
	actions []string
}

func (r *recordingAuditor) Record(ctx context.Context, actorID *uint, action, target, description string, success bool, metadata *ClientMetadata) {
	r.actions = append(r.actions, action)
}
