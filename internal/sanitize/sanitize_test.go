package sanitize

import (
	"testing"

	"server/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestHTML(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "plain text passes", input: "Referred by Jane", expected: "Referred by Jane"},
		{name: "script is stripped", input: `hello<script>alert(1)</script>`, expected: "hello"},
		{name: "basic formatting survives", input: "<b>urgent</b>", expected: "<b>urgent</b>"},
		{name: "event handlers are stripped", input: `<img src="x" onerror="alert(1)">`, expected: `<img src="x">`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, HTML(tt.input))
		})
	}
}

func TestURL(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "https passes", input: "https://example.com/job/1", expected: "https://example.com/job/1"},
		{name: "http passes", input: "http://example.com", expected: "http://example.com"},
		{name: "javascript rejected", input: "javascript:alert(1)", expected: ""},
		{name: "data rejected", input: "data:text/html,hi", expected: ""},
		{name: "relative rejected", input: "/jobs/1", expected: ""},
		{name: "empty stays empty", input: "  ", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, URL(tt.input))
		})
	}
}

func TestApplication(t *testing.T) {
	app := models.JobApplication{
		Notes: `great fit<script>steal()</script>`,
		Link:  "javascript:alert(1)",
		Timeline: []models.InterviewEvent{
			{Notes: `<script>x</script>panel round`, InterviewerName: "Jane<script></script>"},
		},
		CustomFields: map[string]any{
			"referrer": `<script>x</script>Bob`,
			"rating":   float64(4),
		},
	}

	Application(&app)

	assert.Equal(t, "great fit", app.Notes)
	assert.Empty(t, app.Link)
	assert.Equal(t, "panel round", app.Timeline[0].Notes)
	assert.Equal(t, "Jane", app.Timeline[0].InterviewerName)
	assert.Equal(t, "Bob", app.CustomFields["referrer"])
	assert.Equal(t, float64(4), app.CustomFields["rating"])
}
