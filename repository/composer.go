package repository

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/scoutbase/scoutbase/models"
	"gorm.io/gorm"
)

// Pagination sentinels returned by ComposeUserQuery. Negative values
// are a caller bug and are rejected rather than clamped.
var (
	ErrNegativeLimit  = errors.New("limit must be non-negative")
	ErrNegativeOffset = errors.New("offset must be non-negative")
)

// Predicate is one parameterized WHERE fragment. Expr uses gorm
// placeholders; Args line up positionally.
type Predicate struct {
	Expr string
	Args []any
}

// EntityBase fixes the slice of the users table a query family
// operates over: a base predicate that is always applied first and a
// default ordering. Bases are values, not globals, so a caller always
// states which population it is querying.
type EntityBase struct {
	Name         string
	Base         Predicate
	DefaultOrder string
}

var (
	PlayerBase = EntityBase{
		Name:         "players",
		Base:         Predicate{Expr: "role = ?", Args: []any{models.RolePlayer}},
		DefaultOrder: "created_at DESC",
	}
	ScoutBase = EntityBase{
		Name:         "scouts",
		Base:         Predicate{Expr: "role = ?", Args: []any{models.RoleScout}},
		DefaultOrder: "created_at DESC",
	}
	ClubBase = EntityBase{
		Name:         "clubs",
		Base:         Predicate{Expr: "role = ?", Args: []any{models.RoleClub}},
		DefaultOrder: "created_at DESC",
	}
	AnyUserBase = EntityBase{
		Name:         "users",
		Base:         Predicate{},
		DefaultOrder: "created_at DESC",
	}
)

// QueryPlan is the composed, ready-to-run description of a search:
// the base slice, the AND-combined optional predicates, ordering and
// pagination. Plans are inert values until Apply attaches them to a
// gorm statement.
type QueryPlan struct {
	Base       EntityBase
	Predicates []Predicate
	OrderBy    string
	Limit      int
	Offset     int
}

// ComposeUserQuery translates transient search criteria into a
// QueryPlan over the given base. Each present criteria field
// contributes exactly one predicate; absent fields contribute
// nothing.
func ComposeUserQuery(base EntityBase, c models.SearchCriteria) (QueryPlan, error) {
	if c.Limit < 0 {
		return QueryPlan{}, ErrNegativeLimit
	}
	if c.Offset < 0 {
		return QueryPlan{}, ErrNegativeOffset
	}

	plan := QueryPlan{
		Base:    base,
		OrderBy: base.DefaultOrder,
		Limit:   c.Limit,
		Offset:  c.Offset,
	}

	if c.Country != "" {
		plan.Predicates = append(plan.Predicates, Predicate{
			Expr: "country = ?", Args: []any{c.Country},
		})
	}
	if c.Position != "" {
		plan.Predicates = append(plan.Predicates, Predicate{
			Expr: "position = ?", Args: []any{c.Position},
		})
	}
	if p, ok := agePredicate(c.MinAge, c.MaxAge, time.Now().UTC()); ok {
		plan.Predicates = append(plan.Predicates, p)
	}
	if c.FreeText != "" {
		plan.Predicates = append(plan.Predicates, freeTextPredicate(c.FreeText))
	}

	return plan, nil
}

// agePredicate maps age bounds onto birth-year bounds against the
// current calendar year: a minimum age caps the birth year from above,
// a maximum age floors it. Someone aged exactly minAge this year still
// matches.
func agePredicate(minAge, maxAge *int, now time.Time) (Predicate, bool) {
	if minAge == nil && maxAge == nil {
		return Predicate{}, false
	}
	year := now.Year()
	var exprs []string
	var args []any
	if minAge != nil {
		exprs = append(exprs, "EXTRACT(YEAR FROM date_of_birth) <= ?")
		args = append(args, year-*minAge)
	}
	if maxAge != nil {
		exprs = append(exprs, "EXTRACT(YEAR FROM date_of_birth) >= ?")
		args = append(args, year-*maxAge)
	}
	return Predicate{Expr: strings.Join(exprs, " AND "), Args: args}, true
}

// freeTextPredicate builds the OR-group of case-insensitive substring
// matches over the searchable text columns. The user's text is passed
// as a parameter; only the surrounding wildcards are added here.
func freeTextPredicate(text string) Predicate {
	pattern := "%" + text + "%"
	return Predicate{
		Expr: "(full_name ILIKE ? OR username ILIKE ? OR position ILIKE ?)",
		Args: []any{pattern, pattern, pattern},
	}
}

// ApplyFilters attaches only the base and optional predicates, each
// through the parameterized Where so no user text reaches the SQL
// string. Callers counting rather than paging stop here.
func (p QueryPlan) ApplyFilters(db *gorm.DB) *gorm.DB {
	if p.Base.Base.Expr != "" {
		db = db.Where(p.Base.Base.Expr, p.Base.Base.Args...)
	}
	for _, pred := range p.Predicates {
		db = db.Where(pred.Expr, pred.Args...)
	}
	return db
}

// Apply attaches the full plan to a gorm statement: the predicates
// from ApplyFilters plus ordering and pagination.
func (p QueryPlan) Apply(db *gorm.DB) *gorm.DB {
	db = p.ApplyFilters(db)
	if p.OrderBy != "" {
		db = db.Order(p.OrderBy)
	}
	if p.Limit > 0 {
		db = db.Limit(p.Limit)
	}
	if p.Offset > 0 {
		db = db.Offset(p.Offset)
	}
	return db
}

// Describe renders the plan for logs. Arguments are elided; only the
// shape is shown.
func (p QueryPlan) Describe() string {
	parts := make([]string, 0, len(p.Predicates)+1)
	if p.Base.Base.Expr != "" {
		parts = append(parts, p.Base.Base.Expr)
	}
	for _, pred := range p.Predicates {
		parts = append(parts, pred.Expr)
	}
	where := strings.Join(parts, " AND ")
	if where == "" {
		where = "TRUE"
	}
	return fmt.Sprintf("%s: WHERE %s ORDER BY %s LIMIT %d OFFSET %d",
		p.Base.Name, where, p.OrderBy, p.Limit, p.Offset)
}
