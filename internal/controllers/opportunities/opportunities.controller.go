package opportunitiesController

import (
	"context"

	"server/internal/events"
	"server/internal/logger"
	. "server/internal/models"
	"server/internal/repositories"
	"server/internal/sanitize"
	"server/internal/services"
	"server/internal/utils"
)

type OpportunityController struct {
	eventBus *events.EventBus
	oppRepo  repositories.OpportunityRepository
	appRepo  repositories.ApplicationRepository
	log      logger.Logger
}

func New(
	eventBus *events.EventBus,
	oppRepo repositories.OpportunityRepository,
	appRepo repositories.ApplicationRepository,
) *OpportunityController {
	return &OpportunityController{
		eventBus: eventBus,
		oppRepo:  oppRepo,
		appRepo:  appRepo,
		log:      logger.New("OpportunityController"),
	}
}

func (oc *OpportunityController) List(ctx context.Context) []JobOpportunity {
	opps, err := oc.oppRepo.GetAll(ctx)
	if err != nil {
		oc.log.Function("List").Er("failed to load opportunities, serving empty list", err)
		return []JobOpportunity{}
	}

	return opps
}

// Create stores a new lead from the manual form or the extension capture
// endpoint. CapturedDate is stamped here and never changes afterward.
func (oc *OpportunityController) Create(ctx context.Context, opp *JobOpportunity) error {
	log := oc.log.Function("Create")

	sanitize.Opportunity(opp)
	opp.CapturedDate = utils.Today()

	if err := oc.oppRepo.Create(ctx, opp); err != nil {
		return log.Err("failed to create opportunity", err)
	}

	oc.eventBus.Publish(events.OpportunityChanged, opp.ID)
	return nil
}

func (oc *OpportunityController) Delete(ctx context.Context, id string) error {
	log := oc.log.Function("Delete")

	if err := oc.oppRepo.Delete(ctx, id); err != nil {
		return log.Err("failed to delete opportunity", err, "id", id)
	}

	oc.eventBus.Publish(events.OpportunityDeleted, id)
	return nil
}

// Convert turns a lead into an application dated today, then deletes the
// lead. The two writes are independent: if the delete fails after the
// create succeeded, the leftover lead is reported but the new application
// stands (at-least-once, matching the storage contract).
func (oc *OpportunityController) Convert(ctx context.Context, id string) (*JobApplication, error) {
	log := oc.log.Function("Convert")

	opp, err := oc.oppRepo.GetByID(ctx, id)
	if err != nil {
		return nil, log.Err("failed to load opportunity for conversion", err, "id", id)
	}

	app := services.ConvertOpportunity(*opp)
	if err := oc.appRepo.Create(ctx, &app); err != nil {
		return nil, log.Err("failed to create application from opportunity", err, "id", id)
	}
	oc.eventBus.Publish(events.ApplicationChanged, app.ID)

	if err := oc.oppRepo.Delete(ctx, id); err != nil {
		log.Warn("converted opportunity could not be deleted", "id", id, "applicationID", app.ID, "error", err)
		return &app, nil
	}
	oc.eventBus.Publish(events.OpportunityDeleted, id)

	return &app, nil
}
