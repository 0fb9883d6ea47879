package repository

import (
	"testing"
	"time"

	"github.com/scoutbase/scoutbase/models"
	"github.com/scoutbase/scoutbase/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComposeUserQuery_EmptyCriteria(t *testing.T) {
	plan, err := ComposeUserQuery(PlayerBase, models.SearchCriteria{})
	require.NoError(t, err)

	assert.Empty(t, plan.Predicates, "empty criteria should add no predicates")
	assert.Equal(t, "role = ?", plan.Base.Base.Expr)
	assert.Equal(t, []any{models.RolePlayer}, plan.Base.Base.Args)
	assert.Equal(t, "created_at DESC", plan.OrderBy)
	assert.Zero(t, plan.Limit)
	assert.Zero(t, plan.Offset)
}

func TestComposeUserQuery_AllFields(t *testing.T) {
	criteria := models.SearchCriteria{
		Country:  "Spain",
		Position: "winger",
		MinAge:   utils.ToPtr(18),
		MaxAge:   utils.ToPtr(25),
		FreeText: "garcia",
		Limit:    20,
		Offset:   40,
	}

	plan, err := ComposeUserQuery(PlayerBase, criteria)
	require.NoError(t, err)

	require.Len(t, plan.Predicates, 4, "country, position, age, free text")
	assert.Equal(t, "country = ?", plan.Predicates[0].Expr)
	assert.Equal(t, []any{"Spain"}, plan.Predicates[0].Args)
	assert.Equal(t, "position = ?", plan.Predicates[1].Expr)
	assert.Equal(t, 20, plan.Limit)
	assert.Equal(t, 40, plan.Offset)
}

func TestComposeUserQuery_NegativePagination(t *testing.T) {
	_, err := ComposeUserQuery(PlayerBase, models.SearchCriteria{Limit: -1})
	assert.ErrorIs(t, err, ErrNegativeLimit)

	_, err = ComposeUserQuery(PlayerBase, models.SearchCriteria{Offset: -5})
	assert.ErrorIs(t, err, ErrNegativeOffset)
}

func TestComposeUserQuery_FreeTextIsParameterized(t *testing.T) {
	hostile := "'; DROP TABLE users; --"
	plan, err := ComposeUserQuery(AnyUserBase, models.SearchCriteria{FreeText: hostile})
	require.NoError(t, err)

	require.Len(t, plan.Predicates, 1)
	pred := plan.Predicates[0]
	assert.Equal(t, "(full_name ILIKE ? OR username ILIKE ? OR position ILIKE ?)", pred.Expr)
	require.Len(t, pred.Args, 3)
	for _, arg := range pred.Args {
		assert.Equal(t, "%"+hostile+"%", arg, "hostile text must stay in the args, never the SQL")
	}
}

func TestAgePredicate_BirthYearBounds(t *testing.T) {
	now := time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC)

	pred, ok := agePredicate(utils.ToPtr(18), utils.ToPtr(25), now)
	require.True(t, ok)
	assert.Equal(t, "EXTRACT(YEAR FROM date_of_birth) <= ? AND EXTRACT(YEAR FROM date_of_birth) >= ?", pred.Expr)
	assert.Equal(t, []any{2008, 2001}, pred.Args, "min age caps the birth year, max age floors it")
}

func TestAgePredicate_SingleBound(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	pred, ok := agePredicate(utils.ToPtr(21), nil, now)
	require.True(t, ok)
	assert.Equal(t, "EXTRACT(YEAR FROM date_of_birth) <= ?", pred.Expr)
	assert.Equal(t, []any{2005}, pred.Args)

	pred, ok = agePredicate(nil, utils.ToPtr(30), now)
	require.True(t, ok)
	assert.Equal(t, "EXTRACT(YEAR FROM date_of_birth) >= ?", pred.Expr)
	assert.Equal(t, []any{1996}, pred.Args)

	_, ok = agePredicate(nil, nil, now)
	assert.False(t, ok)
}

func TestEntityBases(t *testing.T) {
	assert.Equal(t, []any{models.RoleScout}, ScoutBase.Base.Args)
	assert.Equal(t, []any{models.RoleClub}, ClubBase.Base.Args)
	assert.Empty(t, AnyUserBase.Base.Expr, "the unrestricted base carries no role predicate")
}

func TestQueryPlanDescribe(t *testing.T) {
	plan, err := ComposeUserQuery(ScoutBase, models.SearchCriteria{Country: "Brazil", Limit: 10})
	require.NoError(t, err)

	desc := plan.Describe()
	assert.Contains(t, desc, "scouts")
	assert.Contains(t, desc, "role = ?")
	assert.Contains(t, desc, "country = ?")
	assert.NotContains(t, desc, "Brazil", "argument values never appear in log output")
}
