package repositories

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"server/internal/database"
	. "server/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// testDB opens a throwaway sqlite database with the model tables migrated.
// The cache clients stay nil, which CacheBuilder treats as an empty cache.
func testDB(t *testing.T) database.DB {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	sql, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, sql.AutoMigrate(
		&JobApplication{},
		&JobOpportunity{},
		&PreferenceRecord{},
		&Suggestion{},
	))

	t.Cleanup(func() {
		if sqlDB, err := sql.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	return database.DB{SQL: sql}
}

func TestApplicationRepository_CRUD(t *testing.T) {
	repo := NewApplication(testDB(t))
	ctx := context.Background()

	app := &JobApplication{
		Position:        "Backend Engineer",
		Company:         "Initech",
		Status:          StatusApplied,
		ApplicationDate: "2024-01-01",
		Timeline:        []InterviewEvent{},
	}

	require.NoError(t, repo.Create(ctx, app))
	require.NotEmpty(t, app.ID)

	loaded, err := repo.GetByID(ctx, app.ID)
	require.NoError(t, err)
	assert.Equal(t, "Initech", loaded.Company)

	loaded.Status = StatusInterviewing
	require.NoError(t, repo.Update(ctx, loaded))

	all, err := repo.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, StatusInterviewing, all[0].Status)

	require.NoError(t, repo.Delete(ctx, app.ID))
	all, err = repo.GetAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestApplicationRepository_SoftDeleteKeepsRow(t *testing.T) {
	repo := NewApplication(testDB(t))
	ctx := context.Background()

	app := &JobApplication{
		Position: "Engineer",
		Company:  "Initech",
		Status:   StatusApplied,
		Timeline: []InterviewEvent{},
	}
	require.NoError(t, repo.Create(ctx, app))

	require.NoError(t, repo.SoftDelete(ctx, app.ID))

	all, err := repo.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1, "soft delete keeps the record in storage")
	assert.Equal(t, StatusDeleted, all[0].Status)
}

func TestApplicationRepository_MigratesLegacyRowOnLoad(t *testing.T) {
	db := testDB(t)
	repo := NewApplication(db)
	ctx := context.Background()

	// Insert a legacy-shaped row directly: flat status and dates, NULL
	// timeline column.
	require.NoError(t, db.SQL.Exec(
		`INSERT INTO applications (id, status, application_date, interview_date, created_at, updated_at)
		 VALUES (?, ?, ?, ?, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)`,
		"legacy-1", StatusInterviewing, "2024-01-01", "2024-02-01",
	).Error)

	all, err := repo.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)

	require.Len(t, all[0].Timeline, 2)
	assert.Equal(t, StageApplicationSubmitted, all[0].Timeline[0].Type)
	assert.Equal(t, StageTechnicalInterview, all[0].Timeline[1].Type)

	// The upgraded shape is written back in the background; once it lands,
	// the stored row carries the timeline.
	require.Eventually(t, func() bool {
		var stored JobApplication
		if err := db.SQL.First(&stored, "id = ?", "legacy-1").Error; err != nil {
			return false
		}
		return stored.HasTimeline()
	}, 2*time.Second, 10*time.Millisecond, "migrated record should be persisted back")

	// Loading again must not re-append events.
	again, err := repo.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, again, 1)
	assert.Len(t, again[0].Timeline, 2)
	assert.Equal(t, all[0].Timeline, again[0].Timeline, "second load must see the same events, not new ones")
}

func TestOpportunityRepository_CRUD(t *testing.T) {
	repo := NewOpportunity(testDB(t))
	ctx := context.Background()

	opp := &JobOpportunity{
		Position:     "Engineer",
		Company:      "Initech",
		Link:         "https://example.com/job",
		CapturedDate: "2024-05-01",
	}

	require.NoError(t, repo.Create(ctx, opp))

	loaded, err := repo.GetByID(ctx, opp.ID)
	require.NoError(t, err)
	assert.Equal(t, "2024-05-01", loaded.CapturedDate)

	require.NoError(t, repo.Delete(ctx, opp.ID))

	all, err := repo.GetAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestPreferencesRepository_DefaultsWhenAbsent(t *testing.T) {
	repo := NewPreferences(testDB(t))

	prefs := repo.Get(context.Background())

	assert.Equal(t, DefaultPreferences(), prefs)
}

func TestPreferencesRepository_RoundTrip(t *testing.T) {
	repo := NewPreferences(testDB(t))
	ctx := context.Background()

	prefs := DefaultPreferences()
	prefs.DefaultView = "kanban"
	prefs.DateFormat = "DD/MM/YYYY"
	prefs.CustomInterviewEvents = []string{"Trial Day"}

	require.NoError(t, repo.Save(ctx, prefs))

	loaded := repo.Get(ctx)
	assert.Equal(t, "kanban", loaded.DefaultView)
	assert.Equal(t, "DD/MM/YYYY", loaded.DateFormat)
	assert.Equal(t, []string{"Trial Day"}, loaded.CustomInterviewEvents)

	// Saving again overwrites the same blob row.
	prefs.DefaultView = "calendar"
	require.NoError(t, repo.Save(ctx, prefs))
	assert.Equal(t, "calendar", repo.Get(ctx).DefaultView)
}

func TestPreferencesRepository_CorruptBlobFallsBackToDefaults(t *testing.T) {
	db := testDB(t)
	repo := NewPreferences(db)

	require.NoError(t, db.SQL.Exec(
		`INSERT INTO preferences (id, data, created_at, updated_at)
		 VALUES (?, ?, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)`,
		DEFAULT_PREFERENCES_ID, `{not json`,
	).Error)

	assert.Equal(t, DefaultPreferences(), repo.Get(context.Background()))
}
