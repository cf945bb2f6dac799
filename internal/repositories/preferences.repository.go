package repositories

import (
	"context"
	"encoding/json"
	"errors"

	"server/internal/database"
	"server/internal/logger"
	. "server/internal/models"
	"server/internal/services"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// DEFAULT_PREFERENCES_ID keys the single preferences blob. The tracker is
// single-client; a multi-profile build would key per client here.
const DEFAULT_PREFERENCES_ID = "default"

type PreferencesRepository interface {
	// Get never fails: corrupt or absent storage degrades to defaults.
	Get(ctx context.Context) UserPreferences
	Save(ctx context.Context, prefs UserPreferences) error
}

type preferencesRepository struct {
	db  database.DB
	log logger.Logger
}

func NewPreferences(db database.DB) PreferencesRepository {
	return &preferencesRepository{
		db:  db,
		log: logger.New("preferencesRepository"),
	}
}

func (r *preferencesRepository) getDB(ctx context.Context) *gorm.DB {
	if tx, ok := services.GetTransaction(ctx); ok {
		return tx
	}
	return r.db.SQLWithContext(ctx)
}

// Get loads the stored blob and normalizes it field by field. Any failure
// along the way falls back to defaults for the affected part only: a
// missing row or unparsable JSON yields full defaults, a stale schema
// yields defaults just for the fields that no longer validate.
func (r *preferencesRepository) Get(ctx context.Context) UserPreferences {
	log := r.log.Function("Get")

	var record PreferenceRecord
	err := r.getDB(ctx).First(&record, "id = ?", DEFAULT_PREFERENCES_ID).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Er("failed to read preferences, using defaults", err)
		}
		return DefaultPreferences()
	}

	var prefs UserPreferences
	if err := json.Unmarshal(record.Data, &prefs); err != nil {
		log.Er("failed to parse stored preferences, using defaults", err)
		return DefaultPreferences()
	}

	return prefs.Normalize()
}

func (r *preferencesRepository) Save(ctx context.Context, prefs UserPreferences) error {
	log := r.log.Function("Save")

	data, err := json.Marshal(prefs.Normalize())
	if err != nil {
		return log.Err("failed to marshal preferences", err)
	}

	record := PreferenceRecord{ID: DEFAULT_PREFERENCES_ID, Data: data}
	if err := r.getDB(ctx).Clauses(clause.OnConflict{UpdateAll: true}).Create(&record).Error; err != nil {
		return log.Err("failed to save preferences", err)
	}

	return nil
}
