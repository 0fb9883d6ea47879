package dto

import (
	"time"

	"github.com/scoutbase/scoutbase/models"
)

// RegisterRequest is the self-service signup payload. Player-only
// fields are optional for scouts and clubs and ignored for them.
type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3,max=30,alphanum"`
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=8,max=72"`
	Role     string `json:"role" validate:"required,oneof=player scout club"`
	FullName string `json:"full_name" validate:"required,min=2,max=120"`

	Phone       *string `json:"phone,omitempty" validate:"omitempty,e164"`
	Country     *string `json:"country,omitempty" validate:"omitempty,max=60"`
	DateOfBirth *string `json:"date_of_birth,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Position    *string `json:"position,omitempty" validate:"omitempty,max=40"`
	CurrentClub *string `json:"current_club,omitempty" validate:"omitempty,max=80"`

	// Player profile extras
	HeightCM      *int    `json:"height_cm,omitempty" validate:"omitempty,min=100,max=250"`
	WeightKG      *int    `json:"weight_kg,omitempty" validate:"omitempty,min=30,max=180"`
	PreferredFoot *string `json:"preferred_foot,omitempty" validate:"omitempty,oneof=left right both"`
	Bio           *string `json:"bio,omitempty" validate:"omitempty,max=2000"`
	VideoURL      *string `json:"video_url,omitempty" validate:"omitempty,url,max=255"`
}

// LoginRequest accepts username or email in the identifier field.
type LoginRequest struct {
	Identifier string `json:"identifier" validate:"required,max=255"`
	Password   string `json:"password" validate:"required,max=72"`
}

// UserResponse is the public view of a principal.
type UserResponse struct {
	ID          uint       `json:"id"`
	UUID        string     `json:"uuid"`
	Username    string     `json:"username"`
	Email       string     `json:"email"`
	Role        string     `json:"role"`
	FullName    string     `json:"full_name"`
	Phone       *string    `json:"phone,omitempty"`
	Country     *string    `json:"country,omitempty"`
	DateOfBirth *string    `json:"date_of_birth,omitempty"`
	Position    *string    `json:"position,omitempty"`
	CurrentClub *string    `json:"current_club,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`

	PlayerProfile *PlayerProfileResponse `json:"player_profile,omitempty"`
}

// PlayerProfileResponse is the public view of a player profile.
type PlayerProfileResponse struct {
	HeightCM      *int    `json:"height_cm,omitempty"`
	WeightKG      *int    `json:"weight_kg,omitempty"`
	PreferredFoot *string `json:"preferred_foot,omitempty"`
	Bio           *string `json:"bio,omitempty"`
	VideoURL      *string `json:"video_url,omitempty"`
}

// SessionResponse is returned by login: the opaque token plus the
// authenticated user.
type SessionResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
	User      UserResponse `json:"user"`
}

// ToUserResponse converts a model into its public view. The password
// hash never crosses this boundary.
func ToUserResponse(u *models.User) UserResponse {
	resp := UserResponse{
		ID:          u.ID,
		UUID:        u.UUID.String(),
		Username:    u.Username,
		Email:       u.Email,
		Role:        u.Role,
		FullName:    u.FullName,
		Phone:       u.Phone,
		Country:     u.Country,
		Position:    u.Position,
		CurrentClub: u.CurrentClub,
		CreatedAt:   u.CreatedAt,
		LastLoginAt: u.LastLoginAt,
	}
	if u.DateOfBirth != nil {
		dob := u.DateOfBirth.Format("2006-01-02")
		resp.DateOfBirth = &dob
	}
	if u.PlayerProfile != nil {
		resp.PlayerProfile = &PlayerProfileResponse{
			HeightCM:      u.PlayerProfile.HeightCM,
			WeightKG:      u.PlayerProfile.WeightKG,
			PreferredFoot: u.PlayerProfile.PreferredFoot,
			Bio:           u.PlayerProfile.Bio,
			VideoURL:      u.PlayerProfile.VideoURL,
		}
	}
	return resp
}

// ToUserResponses converts a result page.
func ToUserResponses(users []*models.User) []UserResponse {
	out := make([]UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, ToUserResponse(u))
	}
	return out
}
