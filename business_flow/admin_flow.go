package businessflow

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/scoutbase/scoutbase/app/dto"
	"github.com/scoutbase/scoutbase/models"
	"github.com/scoutbase/scoutbase/repository"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

// AdminFlow is the back-office surface: dashboard aggregates, full
// user listings, the activity feed, account removal and spreadsheet
// export. Every entry point assumes RequireRole(admin) already passed
// at the middleware.
type AdminFlow interface {
	Dashboard(ctx context.Context) (*dto.DashboardResponse, error)
	ListUsers(ctx context.Context, role string, req *dto.SearchRequest) (*dto.ListResponse, error)
	Activity(ctx context.Context, limit, offset int) ([]dto.ActivityEntry, error)
	UpcomingMatches(ctx context.Context, limit int) ([]dto.MatchResponse, error)
	DeleteUser(ctx context.Context, identity *Identity, userID uint, metadata *ClientMetadata) error
	ExportUsersXLSX(ctx context.Context, identity *Identity, role string, metadata *ClientMetadata) ([]byte, error)
}

type AdminFlowImpl struct {
	userRepo   repository.UserRepository
	logRepo    repository.AdminLogRepository
	reportRepo repository.ReportRepository
	gate       SessionGate
	auditor    Auditor
}

func NewAdminFlow(
	userRepo repository.UserRepository,
	logRepo repository.AdminLogRepository,
	reportRepo repository.ReportRepository,
	gate SessionGate,
	auditor Auditor,
) AdminFlow {
	return &AdminFlowImpl{
		userRepo:   userRepo,
		logRepo:    logRepo,
		reportRepo: reportRepo,
		gate:       gate,
		auditor:    auditor,
	}
}

func (a *AdminFlowImpl) Dashboard(ctx context.Context) (*dto.DashboardResponse, error) {
	players, err := a.userRepo.CountByRole(ctx, models.RolePlayer)
	if err != nil {
		return nil, fmt.Errorf("count players: %w", err)
	}
	scouts, err := a.userRepo.CountByRole(ctx, models.RoleScout)
	if err != nil {
		return nil, fmt.Errorf("count scouts: %w", err)
	}
	clubs, err := a.userRepo.CountByRole(ctx, models.RoleClub)
	if err != nil {
		return nil, fmt.Errorf("count clubs: %w", err)
	}
	buckets, err := a.reportRepo.PlayerAgeBuckets(ctx)
	if err != nil {
		return nil, fmt.Errorf("age buckets: %w", err)
	}
	topScouts, err := a.reportRepo.ReportCountByScout(ctx, 10)
	if err != nil {
		return nil, fmt.Errorf("top scouts: %w", err)
	}
	return &dto.DashboardResponse{
		Players:    players,
		Scouts:     scouts,
		Clubs:      clubs,
		AgeBuckets: buckets,
		TopScouts:  topScouts,
	}, nil
}

// ListUsers runs the admin listing for one role, or the whole table
// when role is empty.
func (a *AdminFlowImpl) ListUsers(ctx context.Context, role string, req *dto.SearchRequest) (*dto.ListResponse, error) {
	base, err := baseForRole(role)
	if err != nil {
		return nil, err
	}
	criteria := toCriteria(req)
	users, err := a.userRepo.Search(ctx, base, criteria)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", base.Name, err)
	}
	total, err := a.userRepo.CountBySearch(ctx, base, criteria)
	if err != nil {
		return nil, fmt.Errorf("count %s: %w", base.Name, err)
	}
	return &dto.ListResponse{
		Items: dto.ToUserResponses(users),
		Pagination: dto.Pagination{
			Limit:  criteria.Limit,
			Offset: criteria.Offset,
			Count:  len(users),
			Total:  total,
		},
	}, nil
}

func (a *AdminFlowImpl) Activity(ctx context.Context, limit, offset int) ([]dto.ActivityEntry, error) {
	if limit <= 0 {
		limit = 50
	}
	logs, err := a.logRepo.ListRecent(ctx, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list activity: %w", err)
	}
	entries := make([]dto.ActivityEntry, 0, len(logs))
	for _, l := range logs {
		entry := dto.ActivityEntry{
			ID:        l.ID,
			Action:    l.Action,
			Target:    l.Target,
			Success:   l.Succeeded(),
			IPAddress: l.IPAddress,
			CreatedAt: l.CreatedAt,
		}
		if l.Actor != nil {
			entry.Actor = &l.Actor.Username
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func (a *AdminFlowImpl) UpcomingMatches(ctx context.Context, limit int) ([]dto.MatchResponse, error) {
	matches, err := a.reportRepo.UpcomingMatches(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("upcoming matches: %w", err)
	}
	out := make([]dto.MatchResponse, 0, len(matches))
	for _, m := range matches {
		out = append(out, dto.MatchResponse{
			ID:          m.ID,
			HomeClub:    m.HomeClub,
			AwayClub:    m.AwayClub,
			Venue:       m.Venue,
			Competition: m.Competition,
			KickoffAt:   m.KickoffAt,
		})
	}
	return out, nil
}

// DeleteUser removes an account with its profile and sessions. Admin
// accounts cannot be removed through the API.
func (a *AdminFlowImpl) DeleteUser(ctx context.Context, identity *Identity, userID uint, metadata *ClientMetadata) error {
	user, err := a.userRepo.ByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("load user: %w", err)
	}
	if user == nil {
		return ErrUserNotFound
	}
	if user.IsAdmin() {
		return ErrForbidden
	}

	if err := a.gate.InvalidateAllForUser(ctx, userID); err != nil {
		return err
	}
	if err := a.userRepo.Delete(ctx, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("delete user: %w", err)
	}

	var actorID *uint
	if identity != nil {
		actorID = &identity.UserID
	}
	a.auditor.Record(ctx, actorID, models.AdminActionUserDeleted, user.Username, "", true, metadata)
	return nil
}

var exportHeader = []string{"ID", "Username", "Email", "Role", "Full Name", "Country", "Position", "Current Club", "Created At"}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// ExportUsersXLSX renders the user listing as a spreadsheet. The
// export is unpaginated on purpose; it is an admin-only bulk pull.
func (a *AdminFlowImpl) ExportUsersXLSX(ctx context.Context, identity *Identity, role string, metadata *ClientMetadata) ([]byte, error) {
	base, err := baseForRole(role)
	if err != nil {
		return nil, err
	}
	users, err := a.userRepo.Search(ctx, base, models.SearchCriteria{})
	if err != nil {
		return nil, fmt.Errorf("load users: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Users"
	f.SetSheetName(f.GetSheetName(0), sheet)
	for col, title := range exportHeader {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		f.SetCellValue(sheet, cell, title)
	}
	for row, u := range users {
		values := []any{
			u.ID, u.Username, u.Email, u.Role, u.FullName,
			deref(u.Country), deref(u.Position), deref(u.CurrentClub),
			u.CreatedAt.Format("2006-01-02 15:04:05"),
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			f.SetCellValue(sheet, cell, v)
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}

	var actorID *uint
	if identity != nil {
		actorID = &identity.UserID
	}
	a.auditor.Record(ctx, actorID, models.AdminActionExportRequested, base.Name, "", true, metadata)

	return buf.Bytes(), nil
}

func baseForRole(role string) (repository.EntityBase, error) {
	switch role {
	case "":
		return repository.AnyUserBase, nil
	case models.RolePlayer:
		return repository.PlayerBase, nil
	case models.RoleScout:
		return repository.ScoutBase, nil
	case models.RoleClub:
		return repository.ClubBase, nil
	}
	return repository.EntityBase{}, NewValidationError("role", "unknown role")
}
