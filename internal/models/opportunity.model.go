package models

// JobOpportunity is a captured job lead: created by the manual form or the
// browser-extension capture endpoint, destroyed by delete or by conversion
// into a JobApplication.
type JobOpportunity struct {
	BaseUUIDModel
	Position     string `gorm:"type:varchar(255)"       json:"position"`
	Company      string `gorm:"type:varchar(255);index" json:"company"`
	Link         string `gorm:"type:text"               json:"link"`
	Description  string `gorm:"type:text"               json:"description"`
	Location     string `gorm:"type:varchar(255)"       json:"location"`
	JobType      string `gorm:"type:varchar(128)"       json:"jobType"`
	Salary       string `gorm:"type:varchar(128)"       json:"salary"`
	PostedDate   string `gorm:"type:varchar(10)"        json:"postedDate"`
	CapturedDate string `gorm:"type:varchar(10)"        json:"capturedDate"`
}

func (JobOpportunity) TableName() string { return "opportunities" }
