package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize_InvalidDateFormatFallsBackFieldByField(t *testing.T) {
	var prefs UserPreferences
	require.NoError(t, json.Unmarshal([]byte(`{"dateFormat":"INVALID"}`), &prefs))

	got := prefs.Normalize()
	defaults := DefaultPreferences()

	assert.Equal(t, "YYYY-MM-DD", got.DateFormat, "invalid dateFormat falls back to default")
	assert.Equal(t, defaults.EnabledFields, got.EnabledFields, "other fields keep their own defaults")
	assert.Equal(t, defaults.ColumnOrder, got.ColumnOrder)
	assert.Equal(t, defaults.DefaultView, got.DefaultView)
}

func TestNormalize_ValidFieldsSurvivePartialCorruption(t *testing.T) {
	var prefs UserPreferences
	require.NoError(t, json.Unmarshal([]byte(`{"defaultView":"kanban","dateFormat":"nope","enabledFields":["company","position"]}`), &prefs))

	got := prefs.Normalize()

	assert.Equal(t, "kanban", got.DefaultView, "valid stored values are kept")
	assert.Equal(t, []string{"company", "position"}, got.EnabledFields)
	assert.Equal(t, "YYYY-MM-DD", got.DateFormat)
}

func TestNormalize_EmptyArraysAreInvalid(t *testing.T) {
	prefs := UserPreferences{
		EnabledFields: []string{},
		ColumnOrder:   []string{},
		DefaultView:   "table",
		DateFormat:    "MM/DD/YYYY",
	}

	got := prefs.Normalize()
	defaults := DefaultPreferences()

	assert.Equal(t, defaults.EnabledFields, got.EnabledFields)
	assert.Equal(t, defaults.ColumnOrder, got.ColumnOrder)
	assert.Equal(t, "MM/DD/YYYY", got.DateFormat)
}

func TestNormalize_UnknownFieldIDsNeedCustomFieldBacking(t *testing.T) {
	prefs := UserPreferences{
		EnabledFields: []string{"company", "referral", "bogus"},
		ColumnOrder:   []string{"referral", "company"},
		CustomFields: []FieldDefinition{
			{ID: "referral", Label: "Referral", Type: FieldText},
		},
		DefaultView: "table",
		DateFormat:  "YYYY-MM-DD",
	}

	got := prefs.Normalize()

	assert.Equal(t, []string{"company", "referral"}, got.EnabledFields, "ids without backing are dropped")
	assert.Equal(t, []string{"referral", "company"}, got.ColumnOrder)
}

func TestNormalize_InvalidCustomFieldsDropped(t *testing.T) {
	prefs := UserPreferences{
		CustomFields: []FieldDefinition{
			{ID: "ok", Label: "OK", Type: FieldSelect, Options: []string{"a", "b"}},
			{ID: "", Label: "missing id", Type: FieldText},
			{ID: "bad-type", Label: "Bad", Type: FieldType("blob")},
		},
		DefaultView: "table",
		DateFormat:  "YYYY-MM-DD",
	}

	got := prefs.Normalize()

	require.Len(t, got.CustomFields, 1)
	assert.Equal(t, "ok", got.CustomFields[0].ID)
}

func TestDefaultPreferences_IndependentCopies(t *testing.T) {
	a := DefaultPreferences()
	a.EnabledFields[0] = "mutated"

	b := DefaultPreferences()
	assert.Equal(t, "position", b.EnabledFields[0], "defaults must not share backing arrays")
}
