package preferencesController

import (
	"context"

	"server/internal/events"
	"server/internal/logger"
	. "server/internal/models"
	"server/internal/repositories"
)

type PreferencesController struct {
	eventBus  *events.EventBus
	prefsRepo repositories.PreferencesRepository
	log       logger.Logger
}

func New(
	eventBus *events.EventBus,
	prefsRepo repositories.PreferencesRepository,
) *PreferencesController {
	return &PreferencesController{
		eventBus:  eventBus,
		prefsRepo: prefsRepo,
		log:       logger.New("PreferencesController"),
	}
}

func (pc *PreferencesController) Get(ctx context.Context) UserPreferences {
	return pc.prefsRepo.Get(ctx)
}

// Update persists the incoming preferences and returns the normalized
// form actually stored, so the client sees what invalid fields fell back
// to.
func (pc *PreferencesController) Update(ctx context.Context, prefs UserPreferences) (UserPreferences, error) {
	log := pc.log.Function("Update")

	normalized := prefs.Normalize()
	if err := pc.prefsRepo.Save(ctx, normalized); err != nil {
		return UserPreferences{}, log.Err("failed to save preferences", err)
	}

	pc.eventBus.Publish(events.PreferencesChanged, "")
	return normalized, nil
}
