package businessflow

import (
	"context"
	"errors"
	"fmt"

	"github.com/scoutbase/scoutbase/app/dto"
	"github.com/scoutbase/scoutbase/models"
	"github.com/scoutbase/scoutbase/repository"
	"github.com/scoutbase/scoutbase/utils"
)

// SearchFlow runs composed searches over the principal populations.
// Players are browsable by any authenticated user; the scout and club
// listings sit behind the admin surface.
type SearchFlow interface {
	SearchPlayers(ctx context.Context, req *dto.SearchRequest) (*dto.ListResponse, error)
	SearchScouts(ctx context.Context, req *dto.SearchRequest) (*dto.ListResponse, error)
	SearchClubs(ctx context.Context, req *dto.SearchRequest) (*dto.ListResponse, error)
	PlayerByUsername(ctx context.Context, username string) (*dto.UserResponse, error)
}

type SearchFlowImpl struct {
	userRepo repository.UserRepository
}

func NewSearchFlow(userRepo repository.UserRepository) SearchFlow {
	return &SearchFlowImpl{userRepo: userRepo}
}

func (s *SearchFlowImpl) SearchPlayers(ctx context.Context, req *dto.SearchRequest) (*dto.ListResponse, error) {
	return s.search(ctx, repository.PlayerBase, req)
}

func (s *SearchFlowImpl) SearchScouts(ctx context.Context, req *dto.SearchRequest) (*dto.ListResponse, error) {
	return s.search(ctx, repository.ScoutBase, req)
}

func (s *SearchFlowImpl) SearchClubs(ctx context.Context, req *dto.SearchRequest) (*dto.ListResponse, error) {
	return s.search(ctx, repository.ClubBase, req)
}

// PlayerByUsername is the public player detail lookup. Only player
// accounts are visible through it.
func (s *SearchFlowImpl) PlayerByUsername(ctx context.Context, username string) (*dto.UserResponse, error) {
	user, err := s.userRepo.ByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("load player: %w", err)
	}
	if user == nil || !user.IsPlayer() || !utils.IsTrue(user.IsActive) {
		return nil, ErrUserNotFound
	}
	resp := dto.ToUserResponse(user)
	return &resp, nil
}

func (s *SearchFlowImpl) search(ctx context.Context, base repository.EntityBase, req *dto.SearchRequest) (*dto.ListResponse, error) {
	criteria := toCriteria(req)
	users, err := s.userRepo.Search(ctx, base, criteria)
	if err != nil {
		if errors.Is(err, repository.ErrNegativeLimit) || errors.Is(err, repository.ErrNegativeOffset) {
			return nil, NewValidationError("pagination", "limit and offset must be non-negative")
		}
		return nil, fmt.Errorf("search %s: %w", base.Name, err)
	}
	return &dto.ListResponse{
		Items: dto.ToUserResponses(users),
		Pagination: dto.Pagination{
			Limit:  criteria.Limit,
			Offset: criteria.Offset,
			Count:  len(users),
		},
	}, nil
}

// toCriteria maps the transport filter to the composer's criteria and
// caps the page size.
func toCriteria(req *dto.SearchRequest) models.SearchCriteria {
	limit := req.Limit
	if limit == 0 {
		limit = utils.DefaultPageSize
	}
	if limit > utils.MaxPageSize {
		limit = utils.MaxPageSize
	}
	return models.SearchCriteria{
		Country:  req.Country,
		Position: req.Position,
		MinAge:   req.MinAge,
		MaxAge:   req.MaxAge,
		FreeText: req.Q,
		Limit:    limit,
		Offset:   req.Offset,
	}
}
