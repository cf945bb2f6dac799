package services

import (
	"strings"

	"server/internal/models"
	"server/internal/utils"
)

// ConvertOpportunity builds a new application from a captured job lead. The
// opportunity is not mutated; deleting it afterward is the caller's second,
// independent step. There is deliberately no transaction spanning the two
// writes: a crash in between leaves a converted-but-undeleted opportunity,
// which the UI tolerates (at-least-once, not exactly-once).
func ConvertOpportunity(opp models.JobOpportunity) models.JobApplication {
	today := utils.Today()

	app := models.JobApplication{
		Position:        opp.Position,
		Company:         opp.Company,
		Salary:          opp.Salary,
		Link:            opp.Link,
		Status:          models.StatusApplied,
		ApplicationDate: today,
		Timeline: []models.InterviewEvent{
			{
				ID:     utils.NewID(),
				Type:   models.StageApplicationSubmitted,
				Date:   today,
				Status: models.EventCompleted,
			},
		},
		CustomFields: map[string]any{},
	}
	app.ID = utils.NewID()
	app.Notes = conversionNotes(opp)

	return app
}

// conversionNotes folds the lead fields that have no application column
// into the notes body, one line each.
func conversionNotes(opp models.JobOpportunity) string {
	var lines []string
	if opp.Description != "" {
		lines = append(lines, opp.Description)
	}
	if opp.Location != "" {
		lines = append(lines, "Location: "+opp.Location)
	}
	if opp.JobType != "" {
		lines = append(lines, "Job type: "+opp.JobType)
	}
	if opp.PostedDate != "" {
		lines = append(lines, "Posted: "+opp.PostedDate)
	}
	return strings.Join(lines, "\n")
}
