package models

// SearchCriteria is the transient optional-field filter behind player
// and scout search and the admin listings. Each present field narrows
// the result set with an AND-combined predicate.
//
// The empty string and an absent field mean the same thing: no filter.
// MinAge/MaxAge are pointers so that zero is expressible; they are
// translated to birth-year bounds at composition time. Limit and
// Offset must be non-negative; Limit 0 means unbounded.
type SearchCriteria struct {
	Country  string
	Position string
	MinAge   *int
	MaxAge   *int
	FreeText string
	Limit    int
	Offset   int
}

// IsZero reports whether no optional filter field is set.
func (c SearchCriteria) IsZero() bool {
	return c.Country == "" && c.Position == "" && c.MinAge == nil &&
		c.MaxAge == nil && c.FreeText == ""
}
