// Package sanitize cleans user-supplied free text and link fields before
// they are stored or returned to clients.
package sanitize

import (
	"net/url"
	"strings"

	"server/internal/models"

	"github.com/microcosm-cc/bluemonday"
)

// policy is bluemonday's user-generated-content allow-list: basic
// formatting and links survive, scripts and event handlers do not.
var policy = bluemonday.UGCPolicy()

// HTML strips disallowed markup from free text.
func HTML(input string) string {
	return policy.Sanitize(input)
}

// URL rejects anything that is not an absolute http(s) URL. Rejected input
// comes back empty so a javascript: link can never reach a client.
func URL(input string) string {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return ""
	}

	u, err := url.Parse(trimmed)
	if err != nil {
		return ""
	}

	switch strings.ToLower(u.Scheme) {
	case "http", "https":
		return u.String()
	}
	return ""
}

// Application cleans every free-text and link field of an application,
// including timeline notes and custom field values.
func Application(app *models.JobApplication) {
	app.Position = HTML(app.Position)
	app.Company = HTML(app.Company)
	app.Salary = HTML(app.Salary)
	app.Platform = HTML(app.Platform)
	app.ContactName = HTML(app.ContactName)
	app.Notes = HTML(app.Notes)
	app.Link = URL(app.Link)

	for i := range app.Timeline {
		app.Timeline[i].Notes = HTML(app.Timeline[i].Notes)
		app.Timeline[i].CustomTypeName = HTML(app.Timeline[i].CustomTypeName)
		app.Timeline[i].InterviewerName = HTML(app.Timeline[i].InterviewerName)
	}

	for key, value := range app.CustomFields {
		if s, ok := value.(string); ok {
			app.CustomFields[key] = HTML(s)
		}
	}
}

// Opportunity cleans a captured job lead. Capture payloads come from an
// extension scraping arbitrary pages, so everything is treated as hostile.
func Opportunity(opp *models.JobOpportunity) {
	opp.Position = HTML(opp.Position)
	opp.Company = HTML(opp.Company)
	opp.Description = HTML(opp.Description)
	opp.Location = HTML(opp.Location)
	opp.JobType = HTML(opp.JobType)
	opp.Salary = HTML(opp.Salary)
	opp.Link = URL(opp.Link)
}
