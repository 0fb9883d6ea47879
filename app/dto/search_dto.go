package dto

// SearchRequest is the query-string filter for the search and listing
// endpoints. Absent fields narrow nothing.
type SearchRequest struct {
	Country  string `query:"country" validate:"omitempty,max=60"`
	Position string `query:"position" validate:"omitempty,max=40"`
	MinAge   *int   `query:"min_age" validate:"omitempty,min=0,max=120"`
	MaxAge   *int   `query:"max_age" validate:"omitempty,min=0,max=120"`
	Q        string `query:"q" validate:"omitempty,max=120"`
	Limit    int    `query:"limit" validate:"omitempty,min=0,max=200"`
	Offset   int    `query:"offset" validate:"omitempty,min=0"`
}

// UpdateProfileRequest is the full-replace profile update payload.
// Omitted optional fields clear the stored value.
type UpdateProfileRequest struct {
	FullName    string  `json:"full_name" validate:"required,min=2,max=120"`
	Phone       *string `json:"phone,omitempty" validate:"omitempty,e164"`
	Country     *string `json:"country,omitempty" validate:"omitempty,max=60"`
	DateOfBirth *string `json:"date_of_birth,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Position    *string `json:"position,omitempty" validate:"omitempty,max=40"`
	CurrentClub *string `json:"current_club,omitempty" validate:"omitempty,max=80"`

	HeightCM      *int    `json:"height_cm,omitempty" validate:"omitempty,min=100,max=250"`
	WeightKG      *int    `json:"weight_kg,omitempty" validate:"omitempty,min=30,max=180"`
	PreferredFoot *string `json:"preferred_foot,omitempty" validate:"omitempty,oneof=left right both"`
	Bio           *string `json:"bio,omitempty" validate:"omitempty,max=2000"`
	VideoURL      *string `json:"video_url,omitempty" validate:"omitempty,url,max=255"`
}
