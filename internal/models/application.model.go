package models

import (
	"sort"
	"strings"

	"server/internal/utils"

	"gorm.io/datatypes"
)

// Application statuses are free-form strings in storage; these are the
// canonical values the UI writes. Soft delete is StatusDeleted, never a
// physical row removal.
const (
	StatusApplied      = "Applied"
	StatusInterviewing = "Interviewing"
	StatusOffer        = "Offer"
	StatusRejected     = "Rejected"
	StatusWithdrawn    = "Withdrawn"
	StatusHold         = "Hold"
	StatusDeleted      = "Deleted"
)

// CanonicalStatuses is the fixed board ordering. Statuses outside this list
// are appended alphabetically by the kanban grouping.
var CanonicalStatuses = []string{
	StatusApplied,
	StatusInterviewing,
	StatusOffer,
	StatusRejected,
	StatusWithdrawn,
	StatusHold,
}

// StageType classifies an interview event's phase.
type StageType string

const (
	StageApplicationSubmitted StageType = "application_submitted"
	StageFirstContact         StageType = "first_contact"
	StagePhoneScreen          StageType = "phone_screen"
	StageHRInterview          StageType = "hr_interview"
	StageTechnicalInterview   StageType = "technical_interview"
	StageCodingChallenge      StageType = "coding_challenge"
	StageBehavioralInterview  StageType = "behavioral_interview"
	StageTeamInterview        StageType = "team_interview"
	StageFinalInterview       StageType = "final_interview"
	StageReferenceCheck       StageType = "reference_check"
	StageOffer                StageType = "offer"
	StageRejected             StageType = "rejected"
	StageWithdrawn            StageType = "withdrawn"
	StageCustom               StageType = "custom"
)

// StageTypes lists every known stage kind, in rough pipeline order.
var StageTypes = []StageType{
	StageApplicationSubmitted,
	StageFirstContact,
	StagePhoneScreen,
	StageHRInterview,
	StageTechnicalInterview,
	StageCodingChallenge,
	StageBehavioralInterview,
	StageTeamInterview,
	StageFinalInterview,
	StageReferenceCheck,
	StageOffer,
	StageRejected,
	StageWithdrawn,
	StageCustom,
}

// Label renders a stage type for display: "technical_interview" becomes
// "Technical Interview".
func (t StageType) Label() string {
	words := strings.Split(string(t), "_")
	for i, w := range words {
		if w == "" {
			continue
		}
		if w == "hr" {
			words[i] = "HR"
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// legacyStageByStatus is the fixed business mapping from a flat legacy
// status to the stage type of its synthesized interview event. "Hold" and
// any unknown status intentionally fall through to application_submitted.
var legacyStageByStatus = map[string]StageType{
	StatusApplied:      StageApplicationSubmitted,
	StatusInterviewing: StageTechnicalInterview,
	StatusOffer:        StageOffer,
	StatusRejected:     StageRejected,
	StatusWithdrawn:    StageWithdrawn,
}

func LegacyStageFor(status string) StageType {
	if stage, ok := legacyStageByStatus[status]; ok {
		return stage
	}
	return StageApplicationSubmitted
}

type EventStatus string

const (
	EventCompleted EventStatus = "completed"
	EventScheduled EventStatus = "scheduled"
	EventCancelled EventStatus = "cancelled"
	EventPending   EventStatus = "pending"
)

// InterviewEvent is one entry of an application's timeline. Events are not
// ordered in storage; consumers sort by parsed date before display.
type InterviewEvent struct {
	ID              string      `json:"id"`
	Type            StageType   `json:"type"`
	Date            string      `json:"date"`
	Status          EventStatus `json:"status"`
	Notes           string      `json:"notes,omitempty"`
	CustomTypeName  string      `json:"customTypeName,omitempty"`
	InterviewerName string      `json:"interviewerName,omitempty"`
}

// DisplayLabel prefers the user's custom name for custom events.
func (e InterviewEvent) DisplayLabel() string {
	if e.Type == StageCustom && e.CustomTypeName != "" {
		return e.CustomTypeName
	}
	return e.Type.Label()
}

type JobApplication struct {
	BaseUUIDModel
	Position        string                              `gorm:"type:varchar(255)"         json:"position"`
	Company         string                              `gorm:"type:varchar(255);index"   json:"company"`
	Salary          string                              `gorm:"type:varchar(128)"         json:"salary"`
	Status          string                              `gorm:"type:varchar(64);index"    json:"status"`
	ApplicationDate string                              `gorm:"type:varchar(10)"          json:"applicationDate"`
	InterviewDate   string                              `gorm:"type:varchar(10)"          json:"interviewDate"`
	FollowUpDate    string                              `gorm:"type:varchar(10)"          json:"followUpDate"`
	Link            string                              `gorm:"type:text"                 json:"link"`
	Platform        string                              `gorm:"type:varchar(128)"         json:"platform"`
	ContactName     string                              `gorm:"type:varchar(255)"         json:"contactName"`
	Notes           string                              `gorm:"type:text"                 json:"notes"`
	Timeline        datatypes.JSONSlice[InterviewEvent] `gorm:"type:text"                 json:"timeline"`
	CustomFields    datatypes.JSONMap                   `gorm:"type:text"                 json:"customFields"`
}

func (JobApplication) TableName() string { return "applications" }

func (a JobApplication) IsDeleted() bool { return a.Status == StatusDeleted }

// HasTimeline distinguishes a migrated record from a legacy one. A NULL
// timeline column scans to nil; an explicit empty array does not.
func (a JobApplication) HasTimeline() bool { return a.Timeline != nil }

// SortedTimeline returns a copy of the timeline ordered by parsed event
// date ascending. Events with unparsable dates sort first, in stored order.
func (a JobApplication) SortedTimeline() []InterviewEvent {
	events := make([]InterviewEvent, len(a.Timeline))
	copy(events, a.Timeline)

	sort.SliceStable(events, func(i, j int) bool {
		ti, oki := utils.ParseLocalDate(events[i].Date)
		tj, okj := utils.ParseLocalDate(events[j].Date)
		if !oki || !okj {
			return !oki && okj
		}
		return ti.Before(tj)
	})

	return events
}
