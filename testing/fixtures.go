package testing

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/scoutbase/scoutbase/models"
	"github.com/scoutbase/scoutbase/utils"
	"golang.org/x/crypto/bcrypt"
)

// TestPassword is the plaintext behind every fixture account.
const TestPassword = "fixture password 1"

// CreateTestUser inserts a user with the given role. Usernames are
// made unique with a counter suffix by callers when needed.
func (tdb *TestDB) CreateTestUser(username, role string) (*models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(TestPassword), bcrypt.MinCost)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		UUID:         uuid.New(),
		Username:     username,
		Email:        fmt.Sprintf("%s@example.com", username),
		PasswordHash: string(hash),
		Role:         role,
		FullName:     "Test " + username,
		IsActive:     utils.ToPtr(true),
		CreatedAt:    utils.UTCNow(),
		UpdatedAt:    utils.UTCNow(),
	}
	if err := tdb.DB.Create(user).Error; err != nil {
		return nil, fmt.Errorf("failed to create test user %s: %w", username, err)
	}
	return user, nil
}

// CreateTestPlayer inserts a player with country, position, birth
// date and a profile row.
func (tdb *TestDB) CreateTestPlayer(username, country, position string, birthYear int) (*models.User, error) {
	user, err := tdb.CreateTestUser(username, models.RolePlayer)
	if err != nil {
		return nil, err
	}

	dob := time.Date(birthYear, 6, 15, 0, 0, 0, 0, time.UTC)
	updates := map[string]any{
		"country":       country,
		"position":      position,
		"date_of_birth": dob,
	}
	if err := tdb.DB.Model(user).Updates(updates).Error; err != nil {
		return nil, err
	}
	user.Country = &country
	user.Position = &position
	user.DateOfBirth = &dob

	profile := &models.PlayerProfile{
		UserID:        user.ID,
		HeightCM:      utils.ToPtr(180),
		PreferredFoot: utils.ToPtr(models.FootRight),
	}
	if err := tdb.DB.Create(profile).Error; err != nil {
		return nil, fmt.Errorf("failed to create test profile for %s: %w", username, err)
	}
	user.PlayerProfile = profile
	return user, nil
}

// CreateTestSession inserts an active session for the user and
// returns it with its token.
func (tdb *TestDB) CreateTestSession(userID uint) (*models.Session, error) {
	token, err := utils.GenerateSecureToken(utils.SessionTokenBytes)
	if err != nil {
		return nil, err
	}

	now := utils.UTCNow()
	session := &models.Session{
		CorrelationID:  uuid.New(),
		UserID:         userID,
		SessionToken:   token,
		IsActive:       utils.ToPtr(true),
		CreatedAt:      now,
		LastAccessedAt: now,
		ExpiresAt:      now.Add(time.Hour),
	}
	if err := tdb.DB.Create(session).Error; err != nil {
		return nil, fmt.Errorf("failed to create test session: %w", err)
	}
	return session, nil
}

// CreateTestMatch inserts a fixture kicking off at the given time.
func (tdb *TestDB) CreateTestMatch(home, away string, kickoff time.Time) (*models.Match, error) {
	match := &models.Match{
		HomeClub:  home,
		AwayClub:  away,
		KickoffAt: kickoff,
	}
	if err := tdb.DB.Create(match).Error; err != nil {
		return nil, fmt.Errorf("failed to create test match: %w", err)
	}
	return match, nil
}

// CreateTestReport inserts a scouting report from scout on player.
func (tdb *TestDB) CreateTestReport(scoutID, playerID uint, rating int) (*models.ScoutingReport, error) {
	report := &models.ScoutingReport{
		ScoutID:  scoutID,
		PlayerID: playerID,
		Rating:   rating,
	}
	if err := tdb.DB.Create(report).Error; err != nil {
		return nil, fmt.Errorf("failed to create test report: %w", err)
	}
	return report, nil
}
