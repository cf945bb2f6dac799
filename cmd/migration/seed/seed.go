package seed

import (
	"server/config"
	"server/internal/logger"
	. "server/internal/models"
	"server/internal/utils"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

func Seed(db *gorm.DB, config config.Config, log logger.Logger) error {
	log = log.Function("seed")
	log.Info("Seeding development data")

	today := utils.Today()

	applications := []JobApplication{
		{
			Position:        "Backend Engineer",
			Company:         "Acme Corp",
			Status:          StatusApplied,
			ApplicationDate: today,
			Platform:        "LinkedIn",
			Link:            "https://careers.acme.example/backend",
			Timeline: datatypes.JSONSlice[InterviewEvent]{
				{
					ID:     utils.NewID(),
					Type:   StageApplicationSubmitted,
					Date:   today,
					Status: EventCompleted,
				},
			},
		},
		{
			Position:        "Platform Engineer",
			Company:         "Globex",
			Status:          StatusInterviewing,
			ApplicationDate: today,
			Platform:        "Referral",
			Salary:          "120k-140k",
			Timeline: datatypes.JSONSlice[InterviewEvent]{
				{
					ID:     utils.NewID(),
					Type:   StageApplicationSubmitted,
					Date:   today,
					Status: EventCompleted,
				},
				{
					ID:     utils.NewID(),
					Type:   StagePhoneScreen,
					Date:   today,
					Status: EventScheduled,
				},
			},
		},
	}

	for _, application := range applications {
		var existing JobApplication
		err := db.First(&existing, "company = ? AND position = ?", application.Company, application.Position).Error
		if err == nil {
			log.Info("Application already exists", "company", application.Company, "position", application.Position)
			continue
		}
		log.Info("Seeding application", "company", application.Company, "position", application.Position)
		if err := db.Create(&application).Error; err != nil {
			log.Er("failed to create application", err, "company", application.Company)
		}
	}

	opportunities := []JobOpportunity{
		{
			Position:     "Site Reliability Engineer",
			Company:      "Initech",
			Link:         "https://jobs.initech.example/sre",
			Location:     "Remote",
			JobType:      "Full-time",
			Salary:       "130k",
			CapturedDate: today,
		},
	}

	for _, opportunity := range opportunities {
		var existing JobOpportunity
		err := db.First(&existing, "company = ? AND position = ?", opportunity.Company, opportunity.Position).Error
		if err == nil {
			log.Info("Opportunity already exists", "company", opportunity.Company, "position", opportunity.Position)
			continue
		}
		log.Info("Seeding opportunity", "company", opportunity.Company, "position", opportunity.Position)
		if err := db.Create(&opportunity).Error; err != nil {
			log.Er("failed to create opportunity", err, "company", opportunity.Company)
		}
	}

	return nil
}
