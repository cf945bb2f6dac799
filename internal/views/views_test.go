package views

import (
	"testing"

	"server/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func app(id, status string) models.JobApplication {
	a := models.JobApplication{Status: status}
	a.ID = id
	return a
}

func statusFixture() []models.JobApplication {
	return []models.JobApplication{
		app("a1", models.StatusApplied),
		app("a2", models.StatusInterviewing),
		app("a3", models.StatusRejected),
		app("a4", models.StatusDeleted),
	}
}

func ids(apps []models.JobApplication) []string {
	out := make([]string, 0, len(apps))
	for _, a := range apps {
		out = append(out, a.ID)
	}
	return out
}

func TestCompute_ExcludeFilter(t *testing.T) {
	result := Compute(statusFixture(), Filters{StatusExclude: []string{models.StatusRejected}})

	assert.Equal(t, []string{"a1", "a2"}, ids(result.Applications))
}

func TestCompute_DeletedAlwaysExcluded(t *testing.T) {
	tests := []struct {
		name    string
		filters Filters
	}{
		{name: "no filters", filters: Filters{}},
		{name: "deleted explicitly included", filters: Filters{StatusInclude: []string{models.StatusDeleted}}},
		{name: "legacy status deleted", filters: Filters{Status: models.StatusDeleted}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Compute(statusFixture(), tt.filters)
			assert.NotContains(t, ids(result.Applications), "a4")
		})
	}
}

func TestCompute_ExcludeTakesPrecedenceOverInclude(t *testing.T) {
	result := Compute(statusFixture(), Filters{
		StatusInclude: []string{models.StatusApplied, models.StatusInterviewing},
		StatusExclude: []string{models.StatusInterviewing},
	})

	assert.Equal(t, []string{"a1"}, ids(result.Applications))
}

func TestCompute_LegacyStatusOnlyWhenListsEmpty(t *testing.T) {
	// Legacy single status applies on its own...
	result := Compute(statusFixture(), Filters{Status: models.StatusApplied})
	assert.Equal(t, []string{"a1"}, ids(result.Applications))

	// ...but is ignored as soon as either list is set.
	result = Compute(statusFixture(), Filters{
		Status:        models.StatusApplied,
		StatusExclude: []string{models.StatusRejected},
	})
	assert.Equal(t, []string{"a1", "a2"}, ids(result.Applications))
}

func TestCompute_SearchIsCaseInsensitiveAcrossTimeline(t *testing.T) {
	withNotes := app("n1", models.StatusApplied)
	withNotes.Notes = "Referred by Jane"

	withEvent := app("n2", models.StatusApplied)
	withEvent.Timeline = []models.InterviewEvent{
		{Type: models.StageTechnicalInterview, InterviewerName: "Jane Doe"},
	}

	other := app("n3", models.StatusApplied)
	other.Company = "Initech"

	apps := []models.JobApplication{withNotes, withEvent, other}

	result := Compute(apps, Filters{Search: "jane"})
	assert.Equal(t, []string{"n1", "n2"}, ids(result.Applications))

	result = Compute(apps, Filters{Search: "  JANE "})
	assert.Equal(t, []string{"n1", "n2"}, ids(result.Applications), "search term is trimmed and lower-cased")
}

func TestCompute_PlatformFilter(t *testing.T) {
	a := app("p1", models.StatusApplied)
	a.Platform = "LinkedIn"
	b := app("p2", models.StatusApplied)
	b.Platform = "Indeed"

	result := Compute([]models.JobApplication{a, b}, Filters{Platform: "LinkedIn"})
	assert.Equal(t, []string{"p1"}, ids(result.Applications))
}

func TestCompute_DateRange(t *testing.T) {
	early := app("d1", models.StatusApplied)
	early.ApplicationDate = "2024-01-15"
	late := app("d2", models.StatusApplied)
	late.ApplicationDate = "2024-06-15"
	undated := app("d3", models.StatusApplied)

	apps := []models.JobApplication{early, late, undated}

	tests := []struct {
		name     string
		filters  Filters
		expected []string
	}{
		{name: "from bound", filters: Filters{DateFrom: "2024-03-01"}, expected: []string{"d2"}},
		{name: "to bound", filters: Filters{DateTo: "2024-03-01"}, expected: []string{"d1"}},
		{name: "inclusive bounds", filters: Filters{DateFrom: "2024-01-15", DateTo: "2024-06-15"}, expected: []string{"d1", "d2"}},
		{name: "unparsable date fails a supplied bound", filters: Filters{DateFrom: "2020-01-01"}, expected: []string{"d1", "d2"}},
		{name: "no bounds keeps undated", filters: Filters{}, expected: []string{"d1", "d2", "d3"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Compute(apps, tt.filters)
			assert.Equal(t, tt.expected, ids(result.Applications))
		})
	}
}

func TestCompute_FacetsComeFromUnfilteredSet(t *testing.T) {
	a := app("f1", models.StatusApplied)
	a.Platform = "LinkedIn"
	b := app("f2", models.StatusRejected)
	b.Platform = "Indeed"

	result := Compute([]models.JobApplication{a, b}, Filters{StatusExclude: []string{models.StatusRejected}})

	assert.Equal(t, []string{"f1"}, ids(result.Applications))
	assert.Equal(t, []string{models.StatusApplied, models.StatusRejected}, result.Statuses, "facets ignore the active filter")
	assert.Equal(t, []string{"Indeed", "LinkedIn"}, result.Platforms, "facets sort lexicographically")
}

func TestCompute_DoesNotMutateInput(t *testing.T) {
	apps := statusFixture()
	original := make([]models.JobApplication, len(apps))
	copy(original, apps)

	Compute(apps, Filters{Search: "x", StatusExclude: []string{models.StatusApplied}})

	assert.Equal(t, original, apps)
}

func TestUpcomingEvents(t *testing.T) {
	a := app("u1", models.StatusInterviewing)
	a.Company = "Initech"
	a.Timeline = []models.InterviewEvent{
		{ID: "e1", Type: models.StagePhoneScreen, Date: "2020-01-01", Status: models.EventScheduled},
		{ID: "e2", Type: models.StageTechnicalInterview, Date: "2099-06-01", Status: models.EventScheduled},
		{ID: "e3", Type: models.StageFinalInterview, Date: "2099-01-01", Status: models.EventPending},
		{ID: "e4", Type: models.StageOffer, Date: "2099-02-01", Status: models.EventCompleted},
	}

	events := UpcomingEvents([]models.JobApplication{a})

	require.Len(t, events, 2)
	assert.Equal(t, "e3", events[0].Event.ID, "ordered by date ascending")
	assert.Equal(t, "e2", events[1].Event.ID)
}
