package repository

import (
	"context"

	"github.com/scoutbase/scoutbase/models"
	"gorm.io/gorm"
)

// reportRepository implements ReportRepository with raw aggregate
// queries. These are read-only and never run inside a transaction.
type reportRepository struct {
	db *gorm.DB
}

func NewReportRepository(db *gorm.DB) ReportRepository {
	return &reportRepository{db: db}
}

// PlayerAgeBuckets groups players into the fixed scouting age bands.
// Players without a recorded date of birth fall into "unknown".
func (r *reportRepository) PlayerAgeBuckets(ctx context.Context) ([]AgeBucket, error) {
	var buckets []AgeBucket
	err := r.db.WithContext(ctx).Raw(`
		SELECT bucket, COUNT(*) AS count FROM (
			SELECT CASE
				WHEN date_of_birth IS NULL THEN 'unknown'
				WHEN age < 18 THEN 'U18'
				WHEN age BETWEEN 18 AND 21 THEN '18-21'
				WHEN age BETWEEN 22 AND 25 THEN '22-25'
				WHEN age BETWEEN 26 AND 30 THEN '26-30'
				ELSE '30+'
			END AS bucket
			FROM (
				SELECT date_of_birth,
				       EXTRACT(YEAR FROM AGE(date_of_birth))::int AS age
				FROM users
				WHERE role = ?
			) ages
		) bucketed
		GROUP BY bucket
		ORDER BY bucket`, models.RolePlayer).Scan(&buckets).Error
	if err != nil {
		return nil, err
	}
	return buckets, nil
}

// ReportCountByScout returns scouts ordered by scouting-report volume.
func (r *reportRepository) ReportCountByScout(ctx context.Context, limit int) ([]ScoutReportCount, error) {
	var counts []ScoutReportCount
	db := r.db.WithContext(ctx).Raw(`
		SELECT u.id AS scout_id, u.username, u.full_name,
		       COUNT(sr.id) AS reports
		FROM users u
		LEFT JOIN scouting_reports sr ON sr.scout_id = u.id
		WHERE u.role = ?
		GROUP BY u.id, u.username, u.full_name
		ORDER BY reports DESC, u.username ASC
		LIMIT ?`, models.RoleScout, reportLimit(limit))
	if err := db.Scan(&counts).Error; err != nil {
		return nil, err
	}
	return counts, nil
}

func (r *reportRepository) UpcomingMatches(ctx context.Context, limit int) ([]*models.Match, error) {
	var matches []*models.Match
	err := r.db.WithContext(ctx).Model(&models.Match{}).
		Where("kickoff_at > CURRENT_TIMESTAMP").
		Order("kickoff_at ASC").
		Limit(reportLimit(limit)).
		Find(&matches).Error
	return matches, err
}

func reportLimit(limit int) int {
	if limit <= 0 {
		return 50
	}
	return limit
}
