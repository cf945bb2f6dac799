package applicationsController

import (
	"context"

	"server/internal/events"
	"server/internal/kanban"
	"server/internal/logger"
	. "server/internal/models"
	"server/internal/repositories"
	"server/internal/sanitize"
	"server/internal/views"
)

type ApplicationController struct {
	eventBus *events.EventBus
	appRepo  repositories.ApplicationRepository
	log      logger.Logger
}

func New(
	eventBus *events.EventBus,
	appRepo repositories.ApplicationRepository,
) *ApplicationController {
	return &ApplicationController{
		eventBus: eventBus,
		appRepo:  appRepo,
		log:      logger.New("ApplicationController"),
	}
}

// List returns the derived view for the given filters. A storage-read
// failure degrades to an empty result rather than an error; the client
// sees an empty tracker, not a broken one.
func (ac *ApplicationController) List(ctx context.Context, filters views.Filters) views.Result {
	apps, err := ac.appRepo.GetAll(ctx)
	if err != nil {
		ac.log.Function("List").Er("failed to load applications, serving empty view", err)
		apps = nil
	}

	return views.Compute(apps, filters)
}

// Board returns the kanban columns, soft-deleted records excluded.
func (ac *ApplicationController) Board(ctx context.Context) []kanban.Column {
	apps, err := ac.appRepo.GetAll(ctx)
	if err != nil {
		ac.log.Function("Board").Er("failed to load applications, serving empty board", err)
		apps = nil
	}

	return kanban.GroupBoard(apps)
}

// Upcoming lists scheduled interview events from today onward for the
// calendar view.
func (ac *ApplicationController) Upcoming(ctx context.Context) []views.ScheduledEvent {
	apps, err := ac.appRepo.GetAll(ctx)
	if err != nil {
		ac.log.Function("Upcoming").Er("failed to load applications, serving empty schedule", err)
		apps = nil
	}

	return views.UpcomingEvents(apps)
}

func (ac *ApplicationController) Get(ctx context.Context, id string) (*JobApplication, error) {
	app, err := ac.appRepo.GetByID(ctx, id)
	if err != nil {
		return nil, ac.log.Function("Get").Err("failed to get application", err, "id", id)
	}

	return app, nil
}

func (ac *ApplicationController) Create(ctx context.Context, app *JobApplication) error {
	log := ac.log.Function("Create")

	sanitize.Application(app)
	if app.Timeline == nil {
		app.Timeline = []InterviewEvent{}
	}
	if app.Status == "" {
		app.Status = StatusApplied
	}

	if err := ac.appRepo.Create(ctx, app); err != nil {
		return log.Err("failed to create application", err)
	}

	ac.eventBus.Publish(events.ApplicationChanged, app.ID)
	return nil
}

func (ac *ApplicationController) Update(ctx context.Context, app *JobApplication) error {
	log := ac.log.Function("Update")

	sanitize.Application(app)
	if app.Timeline == nil {
		app.Timeline = []InterviewEvent{}
	}

	if err := ac.appRepo.Update(ctx, app); err != nil {
		return log.Err("failed to update application", err, "id", app.ID)
	}

	ac.eventBus.Publish(events.ApplicationChanged, app.ID)
	return nil
}

// Delete soft-deletes by default; hard removes the row entirely.
func (ac *ApplicationController) Delete(ctx context.Context, id string, hard bool) error {
	log := ac.log.Function("Delete")

	var err error
	if hard {
		err = ac.appRepo.Delete(ctx, id)
	} else {
		err = ac.appRepo.SoftDelete(ctx, id)
	}
	if err != nil {
		return log.Err("failed to delete application", err, "id", id, "hard", hard)
	}

	ac.eventBus.Publish(events.ApplicationDeleted, id)
	return nil
}
