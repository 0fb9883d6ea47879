package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/scoutbase/scoutbase/models"
	"github.com/scoutbase/scoutbase/repository"
	apptesting "github.com/scoutbase/scoutbase/testing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReportRepository_PlayerAgeBuckets(t *testing.T) {
	withTestDB(t, func(t *testing.T, tdb *apptesting.TestDB) {
		ctx := context.Background()
		repo := repository.NewReportRepository(tdb.DB)
		year := time.Now().UTC().Year()

		_, err := tdb.CreateTestPlayer("teen", "Spain", "winger", year-16)
		require.NoError(t, err)
		_, err = tdb.CreateTestPlayer("young", "Spain", "winger", year-20)
		require.NoError(t, err)
		_, err = tdb.CreateTestPlayer("veteran", "Spain", "keeper", year-35)
		require.NoError(t, err)
		_, err = tdb.CreateTestUser("no_dob_player", models.RolePlayer)
		require.NoError(t, err)
		_, err = tdb.CreateTestUser("a_scout", models.RoleScout)
		require.NoError(t, err)

		buckets, err := repo.PlayerAgeBuckets(ctx)
		require.NoError(t, err)

		byName := make(map[string]int64, len(buckets))
		for _, b := range buckets {
			byName[b.Bucket] = b.Count
		}
		assert.EqualValues(t, 1, byName["U18"])
		assert.EqualValues(t, 1, byName["18-21"])
		assert.EqualValues(t, 1, byName["30+"])
		assert.EqualValues(t, 1, byName["unknown"])
		assert.NotContains(t, byName, "22-25", "empty buckets are omitted")
	})
}

func TestReportRepository_ReportCountByScout(t *testing.T) {
	withTestDB(t, func(t *testing.T, tdb *apptesting.TestDB) {
		ctx := context.Background()
		repo := repository.NewReportRepository(tdb.DB)

		busy, err := tdb.CreateTestUser("busy_scout", models.RoleScout)
		require.NoError(t, err)
		idle, err := tdb.CreateTestUser("idle_scout", models.RoleScout)
		require.NoError(t, err)
		player, err := tdb.CreateTestPlayer("watched", "Spain", "winger", 2004)
		require.NoError(t, err)

		for i := 0; i < 3; i++ {
			_, err := tdb.CreateTestReport(busy.ID, player.ID, 7)
			require.NoError(t, err)
		}

		counts, err := repo.ReportCountByScout(ctx, 10)
		require.NoError(t, err)
		require.Len(t, counts, 2, "scouts without reports still appear")

		assert.Equal(t, busy.ID, counts[0].ScoutID)
		assert.EqualValues(t, 3, counts[0].Reports)
		assert.Equal(t, idle.ID, counts[1].ScoutID)
		assert.Zero(t, counts[1].Reports)
	})
}

func TestReportRepository_UpcomingMatches(t *testing.T) {
	withTestDB(t, func(t *testing.T, tdb *apptesting.TestDB) {
		ctx := context.Background()
		repo := repository.NewReportRepository(tdb.DB)
		now := time.Now().UTC()

		_, err := tdb.CreateTestMatch("Alpha FC", "Beta FC", now.Add(48*time.Hour))
		require.NoError(t, err)
		_, err = tdb.CreateTestMatch("Gamma FC", "Delta FC", now.Add(24*time.Hour))
		require.NoError(t, err)
		_, err = tdb.CreateTestMatch("Old FC", "Older FC", now.Add(-24*time.Hour))
		require.NoError(t, err)

		matches, err := repo.UpcomingMatches(ctx, 10)
		require.NoError(t, err)
		require.Len(t, matches, 2, "past fixtures are excluded")
		assert.Equal(t, "Gamma FC", matches[0].HomeClub, "soonest kickoff first")
	})
}
