package models

import (
	"time"

	"server/internal/utils"

	"gorm.io/datatypes"
)

type FieldType string

const (
	FieldText     FieldType = "text"
	FieldDate     FieldType = "date"
	FieldNumber   FieldType = "number"
	FieldSelect   FieldType = "select"
	FieldCheckbox FieldType = "checkbox"
	FieldURL      FieldType = "url"
)

func isFieldType(t FieldType) bool {
	switch t {
	case FieldText, FieldDate, FieldNumber, FieldSelect, FieldCheckbox, FieldURL:
		return true
	}
	return false
}

// FieldDefinition describes a user-declared custom column. Options is only
// meaningful for select fields.
type FieldDefinition struct {
	ID       string    `json:"id"`
	Label    string    `json:"label"`
	Type     FieldType `json:"type"`
	Required bool      `json:"required"`
	Options  []string  `json:"options,omitempty"`
}

// DefaultFieldIDs are the built-in application columns, in default display
// order.
var DefaultFieldIDs = []string{
	"position",
	"company",
	"salary",
	"status",
	"applicationDate",
	"interviewDate",
	"followUpDate",
	"link",
	"platform",
	"contactName",
	"notes",
}

var ViewModes = []string{"table", "timeline", "kanban", "calendar"}

type UserPreferences struct {
	EnabledFields         []string          `json:"enabledFields"`
	ColumnOrder           []string          `json:"columnOrder"`
	CustomFields          []FieldDefinition `json:"customFields"`
	DefaultView           string            `json:"defaultView"`
	DateFormat            string            `json:"dateFormat"`
	CustomInterviewEvents []string          `json:"customInterviewEvents"`
	ATSSearch             []string          `json:"atsSearch"`
}

func DefaultPreferences() UserPreferences {
	enabled := make([]string, len(DefaultFieldIDs))
	copy(enabled, DefaultFieldIDs)
	order := make([]string, len(DefaultFieldIDs))
	copy(order, DefaultFieldIDs)

	return UserPreferences{
		EnabledFields:         enabled,
		ColumnOrder:           order,
		CustomFields:          []FieldDefinition{},
		DefaultView:           "table",
		DateFormat:            string(utils.FormatISODate),
		CustomInterviewEvents: []string{},
		ATSSearch:             []string{},
	}
}

// Normalize validates every field independently, replacing anything absent,
// empty where emptiness is invalid, or outside its allowed set with the
// corresponding default. Partial corruption never discards the rest of the
// structure.
func (p UserPreferences) Normalize() UserPreferences {
	defaults := DefaultPreferences()
	out := p

	out.CustomFields = validCustomFields(p.CustomFields)

	known := make(map[string]struct{}, len(DefaultFieldIDs)+len(out.CustomFields))
	for _, id := range DefaultFieldIDs {
		known[id] = struct{}{}
	}
	for _, f := range out.CustomFields {
		known[f.ID] = struct{}{}
	}

	out.EnabledFields = knownFieldIDs(p.EnabledFields, known)
	if len(out.EnabledFields) == 0 {
		out.EnabledFields = defaults.EnabledFields
	}

	out.ColumnOrder = knownFieldIDs(p.ColumnOrder, known)
	if len(out.ColumnOrder) == 0 {
		out.ColumnOrder = defaults.ColumnOrder
	}

	if !containsString(ViewModes, p.DefaultView) {
		out.DefaultView = defaults.DefaultView
	}

	if !utils.IsDisplayFormat(p.DateFormat) {
		out.DateFormat = defaults.DateFormat
	}

	out.CustomInterviewEvents = nonEmptyStrings(p.CustomInterviewEvents)
	out.ATSSearch = nonEmptyStrings(p.ATSSearch)

	return out
}

func validCustomFields(fields []FieldDefinition) []FieldDefinition {
	out := make([]FieldDefinition, 0, len(fields))
	for _, f := range fields {
		if f.ID == "" || f.Label == "" || !isFieldType(f.Type) {
			continue
		}
		out = append(out, f)
	}
	return out
}

// knownFieldIDs keeps ids that are either built-in or backed by a custom
// field definition, dropping duplicates.
func knownFieldIDs(ids []string, known map[string]struct{}) []string {
	out := make([]string, 0, len(ids))
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := known[id]; !ok {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func nonEmptyStrings(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}

func containsString(values []string, v string) bool {
	for _, s := range values {
		if s == v {
			return true
		}
	}
	return false
}

// PreferenceRecord is the storage row for preferences: one whole-structure
// JSON blob per client id, read-whole/write-whole.
type PreferenceRecord struct {
	ID        string         `gorm:"type:varchar(64);primaryKey" json:"id"`
	Data      datatypes.JSON `gorm:"type:text"                   json:"data"`
	CreatedAt time.Time      `gorm:"autoCreateTime"              json:"createdAt"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime"              json:"updatedAt"`
}

func (PreferenceRecord) TableName() string { return "preferences" }
