// Package kanban derives the board grouping for applications.
//
// Column order is fixed for the canonical statuses:
//
//	Applied ─ Interviewing ─ [Interviewing - X ...] ─ Offer ─ Rejected ─ Withdrawn ─ Hold
//
// Interviewing applications with a timeline are split into
// "Interviewing - <sub-status>" columns placed immediately after plain
// Interviewing and sorted alphabetically among themselves. Statuses outside
// the canonical list are appended, sorted alphabetically. Sub-statuses are
// display-only: they are computed from timeline state and never persisted.
package kanban

import (
	"sort"
	"strings"

	"server/internal/models"
	"server/internal/utils"
)

// Column is one board column with its applications in input order.
type Column struct {
	Key          string                  `json:"key"`
	Applications []models.JobApplication `json:"applications"`
}

// SubStatus computes the display sub-status of an Interviewing application:
// the earliest scheduled or pending event dated today-or-later, else the
// most recent completed event. Empty when neither exists.
func SubStatus(app models.JobApplication) string {
	if app.Status != models.StatusInterviewing || len(app.Timeline) == 0 {
		return ""
	}

	events := app.SortedTimeline()
	today := utils.StartOfToday()

	for _, event := range events {
		if event.Status != models.EventScheduled && event.Status != models.EventPending {
			continue
		}
		date, ok := utils.ParseLocalDate(event.Date)
		if !ok || date.Before(today) {
			continue
		}
		return event.DisplayLabel()
	}

	for i := len(events) - 1; i >= 0; i-- {
		if events[i].Status == models.EventCompleted {
			return events[i].DisplayLabel()
		}
	}

	return ""
}

// GroupKey is the column an application lands in.
func GroupKey(app models.JobApplication) string {
	if sub := SubStatus(app); sub != "" {
		return models.StatusInterviewing + " - " + sub
	}
	return app.Status
}

// GroupBoard buckets applications into ordered columns. Soft-deleted
// records never appear on the board.
func GroupBoard(apps []models.JobApplication) []Column {
	groups := make(map[string][]models.JobApplication)
	for _, app := range apps {
		if app.IsDeleted() {
			continue
		}
		key := GroupKey(app)
		groups[key] = append(groups[key], app)
	}

	canonical := make(map[string]struct{}, len(models.CanonicalStatuses))
	for _, s := range models.CanonicalStatuses {
		canonical[s] = struct{}{}
	}

	var subKeys, extraKeys []string
	for key := range groups {
		if _, ok := canonical[key]; ok {
			continue
		}
		if strings.HasPrefix(key, models.StatusInterviewing+" - ") {
			subKeys = append(subKeys, key)
		} else {
			extraKeys = append(extraKeys, key)
		}
	}
	sort.Strings(subKeys)
	sort.Strings(extraKeys)

	columns := make([]Column, 0, len(groups))
	appendColumn := func(key string) {
		if apps, ok := groups[key]; ok {
			columns = append(columns, Column{Key: key, Applications: apps})
		}
	}

	for _, status := range models.CanonicalStatuses {
		appendColumn(status)
		if status == models.StatusInterviewing {
			for _, key := range subKeys {
				appendColumn(key)
			}
		}
	}
	for _, key := range extraKeys {
		appendColumn(key)
	}

	return columns
}
