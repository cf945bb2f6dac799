// Package views computes the filtered, display-ready application list plus
// its filter facets. It is transport-agnostic pure logic: one pass over the
// full list, no mutation of its input, safe to re-invoke on every filter
// change.
package views

import (
	"sort"
	"strings"
	"time"

	"server/internal/models"
	"server/internal/utils"
)

// Filters carries every filter the list view supports. Status is the legacy
// single-select; it only applies when both include and exclude lists are
// empty.
type Filters struct {
	Search        string   `json:"search"`
	Status        string   `json:"status"`
	StatusInclude []string `json:"statusInclude"`
	StatusExclude []string `json:"statusExclude"`
	Platform      string   `json:"platform"`
	DateFrom      string   `json:"dateFrom"`
	DateTo        string   `json:"dateTo"`
}

// Result is the derived view: the filtered subset plus facet lists computed
// from the unfiltered full set, sorted lexicographically.
type Result struct {
	Applications []models.JobApplication `json:"applications"`
	Statuses     []string                `json:"statuses"`
	Platforms    []string                `json:"platforms"`
}

// Compute runs the single-pass filter/facet aggregation. Work is O(N+E) for
// N applications with E total timeline events.
func Compute(apps []models.JobApplication, filters Filters) Result {
	search := strings.ToLower(strings.TrimSpace(filters.Search))
	include := toSet(filters.StatusInclude)
	exclude := toSet(filters.StatusExclude)
	useLegacyStatus := filters.Status != "" && len(include) == 0 && len(exclude) == 0

	dateFrom, hasFrom := utils.ParseLocalDate(filters.DateFrom)
	dateTo, hasTo := utils.ParseLocalDate(filters.DateTo)

	statusSet := make(map[string]struct{})
	platformSet := make(map[string]struct{})
	filtered := make([]models.JobApplication, 0, len(apps))

	for _, app := range apps {
		// Facets come from the unfiltered set so the selection UI stays
		// stable regardless of the current filter state.
		if app.Status != "" {
			statusSet[app.Status] = struct{}{}
		}
		if app.Platform != "" {
			platformSet[app.Platform] = struct{}{}
		}

		if app.IsDeleted() {
			continue
		}

		if search != "" && !strings.Contains(searchMetadata(app), search) {
			continue
		}

		if useLegacyStatus {
			if app.Status != filters.Status {
				continue
			}
		} else {
			// Exclude takes precedence over include.
			if _, excluded := exclude[app.Status]; excluded {
				continue
			}
			if len(include) > 0 {
				if _, included := include[app.Status]; !included {
					continue
				}
			}
		}

		if filters.Platform != "" && app.Platform != filters.Platform {
			continue
		}

		if hasFrom || hasTo {
			appDate, ok := utils.ParseLocalDate(app.ApplicationDate)
			if !ok {
				continue
			}
			if hasFrom && appDate.Before(dateFrom) {
				continue
			}
			if hasTo && appDate.After(dateTo) {
				continue
			}
		}

		filtered = append(filtered, app)
	}

	return Result{
		Applications: filtered,
		Statuses:     sortedKeys(statusSet),
		Platforms:    sortedKeys(platformSet),
	}
}

// searchMetadata is the lower-cased concatenation of every searchable field
// of one application, timeline text included.
func searchMetadata(app models.JobApplication) string {
	var b strings.Builder
	for _, field := range []string{app.Position, app.Company, app.ContactName, app.Notes} {
		if field != "" {
			b.WriteString(strings.ToLower(field))
			b.WriteByte(' ')
		}
	}
	for _, event := range app.Timeline {
		for _, field := range []string{event.Notes, event.CustomTypeName, event.InterviewerName} {
			if field != "" {
				b.WriteString(strings.ToLower(field))
				b.WriteByte(' ')
			}
		}
	}
	return b.String()
}

// UpcomingEvents returns applications' scheduled or pending events from
// today onward, ordered by date, for the calendar and follow-up views.
func UpcomingEvents(apps []models.JobApplication) []ScheduledEvent {
	today := utils.StartOfToday()
	out := make([]ScheduledEvent, 0)

	for _, app := range apps {
		if app.IsDeleted() {
			continue
		}
		for _, event := range app.Timeline {
			if event.Status != models.EventScheduled && event.Status != models.EventPending {
				continue
			}
			date, ok := utils.ParseLocalDate(event.Date)
			if !ok || date.Before(today) {
				continue
			}
			out = append(out, ScheduledEvent{
				ApplicationID: app.ID,
				Company:       app.Company,
				Position:      app.Position,
				Event:         event,
				date:          date,
			})
		}
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].date.Before(out[j].date) })
	return out
}

type ScheduledEvent struct {
	ApplicationID string                `json:"applicationId"`
	Company       string                `json:"company"`
	Position      string                `json:"position"`
	Event         models.InterviewEvent `json:"event"`

	date time.Time
}

func toSet(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		if v != "" {
			set[v] = struct{}{}
		}
	}
	return set
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
