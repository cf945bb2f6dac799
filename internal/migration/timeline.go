// Package migration upgrades legacy flat-status application records to the
// timeline-based shape.
//
// A record is legacy iff it has no timeline at all (NULL column), not
// merely an empty one. The upgrade synthesizes timeline events from the
// flat fields:
//
//	applicationDate ──► application_submitted / completed
//	interviewDate   ──► stage mapped from legacy status / scheduled
//	neither         ──► one fallback event dated applicationDate-or-today
//
// Re-applying to an already-migrated record is a no-op, since the timeline
// now exists and detection refuses re-entry.
package migration

import (
	"server/internal/models"
	"server/internal/utils"
)

// Migrate upgrades app in place. It reports whether anything changed so the
// caller knows to persist the record back.
func Migrate(app *models.JobApplication) bool {
	if app.HasTimeline() {
		return false
	}

	app.Timeline = buildTimeline(*app)
	return true
}

func buildTimeline(app models.JobApplication) []models.InterviewEvent {
	events := make([]models.InterviewEvent, 0, 2)

	if app.ApplicationDate != "" {
		events = append(events, models.InterviewEvent{
			ID:     utils.NewID(),
			Type:   models.StageApplicationSubmitted,
			Date:   app.ApplicationDate,
			Status: models.EventCompleted,
		})
	}

	if app.InterviewDate != "" {
		events = append(events, models.InterviewEvent{
			ID:     utils.NewID(),
			Type:   models.LegacyStageFor(app.Status),
			Date:   app.InterviewDate,
			Status: models.EventScheduled,
		})
	}

	if len(events) == 0 {
		date := app.ApplicationDate
		if date == "" {
			date = utils.Today()
		}
		events = append(events, models.InterviewEvent{
			ID:     utils.NewID(),
			Type:   models.StageApplicationSubmitted,
			Date:   date,
			Status: models.EventCompleted,
		})
	}

	return events
}
