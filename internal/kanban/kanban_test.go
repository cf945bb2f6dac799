package kanban

import (
	"testing"

	"server/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func interviewing(id string, events ...models.InterviewEvent) models.JobApplication {
	app := models.JobApplication{Status: models.StatusInterviewing, Timeline: events}
	app.ID = id
	return app
}

func TestSubStatus_CompletedEventInPast(t *testing.T) {
	app := interviewing("k1", models.InterviewEvent{
		Type:   models.StageFirstContact,
		Date:   "2020-01-10",
		Status: models.EventCompleted,
	})

	assert.Equal(t, "First Contact", SubStatus(app))
	assert.Equal(t, "Interviewing - First Contact", GroupKey(app))
}

func TestSubStatus_UpcomingScheduledWinsOverCompleted(t *testing.T) {
	app := interviewing("k2",
		models.InterviewEvent{Type: models.StageFirstContact, Date: "2020-01-10", Status: models.EventCompleted},
		models.InterviewEvent{Type: models.StageTechnicalInterview, Date: "2099-06-01", Status: models.EventScheduled},
		models.InterviewEvent{Type: models.StageFinalInterview, Date: "2099-09-01", Status: models.EventPending},
	)

	// Earliest upcoming scheduled/pending event wins.
	assert.Equal(t, "Technical Interview", SubStatus(app))
}

func TestSubStatus_PastScheduledEventIsIgnored(t *testing.T) {
	app := interviewing("k3",
		models.InterviewEvent{Type: models.StagePhoneScreen, Date: "2020-02-01", Status: models.EventScheduled},
		models.InterviewEvent{Type: models.StageFirstContact, Date: "2020-01-10", Status: models.EventCompleted},
	)

	// The stale scheduled event no longer counts as upcoming; the most
	// recent completed event takes over.
	assert.Equal(t, "First Contact", SubStatus(app))
}

func TestSubStatus_MostRecentCompletedWins(t *testing.T) {
	app := interviewing("k4",
		models.InterviewEvent{Type: models.StageFirstContact, Date: "2020-01-10", Status: models.EventCompleted},
		models.InterviewEvent{Type: models.StagePhoneScreen, Date: "2020-03-01", Status: models.EventCompleted},
	)

	assert.Equal(t, "Phone Screen", SubStatus(app))
}

func TestSubStatus_CustomEventUsesCustomName(t *testing.T) {
	app := interviewing("k5", models.InterviewEvent{
		Type:           models.StageCustom,
		CustomTypeName: "Pair Programming",
		Date:           "2020-01-10",
		Status:         models.EventCompleted,
	})

	assert.Equal(t, "Pair Programming", SubStatus(app))
}

func TestSubStatus_NoQualifyingEvents(t *testing.T) {
	tests := []struct {
		name string
		app  models.JobApplication
	}{
		{name: "empty timeline", app: interviewing("k6")},
		{name: "only cancelled events", app: interviewing("k7",
			models.InterviewEvent{Type: models.StagePhoneScreen, Date: "2020-01-10", Status: models.EventCancelled},
		)},
		{name: "not interviewing", app: models.JobApplication{Status: models.StatusApplied, Timeline: []models.InterviewEvent{
			{Type: models.StagePhoneScreen, Date: "2020-01-10", Status: models.EventCompleted},
		}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Empty(t, SubStatus(tt.app))
		})
	}
}

func TestGroupBoard_Ordering(t *testing.T) {
	applied := models.JobApplication{Status: models.StatusApplied}
	applied.ID = "b1"
	plainInterviewing := interviewing("b2")
	techRound := interviewing("b3", models.InterviewEvent{
		Type: models.StageTechnicalInterview, Date: "2020-01-10", Status: models.EventCompleted,
	})
	firstContact := interviewing("b4", models.InterviewEvent{
		Type: models.StageFirstContact, Date: "2020-01-10", Status: models.EventCompleted,
	})
	offer := models.JobApplication{Status: models.StatusOffer}
	offer.ID = "b5"
	ghosted := models.JobApplication{Status: "Ghosted"}
	ghosted.ID = "b6"
	deleted := models.JobApplication{Status: models.StatusDeleted}
	deleted.ID = "b7"

	columns := GroupBoard([]models.JobApplication{
		ghosted, offer, firstContact, techRound, plainInterviewing, applied, deleted,
	})

	keys := make([]string, 0, len(columns))
	for _, c := range columns {
		keys = append(keys, c.Key)
	}

	assert.Equal(t, []string{
		models.StatusApplied,
		models.StatusInterviewing,
		"Interviewing - First Contact",
		"Interviewing - Technical Interview",
		models.StatusOffer,
		"Ghosted",
	}, keys, "sub-groups follow plain Interviewing alphabetically; unknown statuses go last")
}

func TestGroupBoard_DeletedNeverAppears(t *testing.T) {
	deleted := models.JobApplication{Status: models.StatusDeleted}
	deleted.ID = "b8"

	columns := GroupBoard([]models.JobApplication{deleted})
	require.Empty(t, columns)
}
