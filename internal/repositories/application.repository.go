package repositories

import (
	"context"
	"time"

	"server/internal/database"
	"server/internal/logger"
	"server/internal/migration"
	. "server/internal/models"
	"server/internal/sanitize"
	"server/internal/services"

	"gorm.io/gorm"
)

const APPLICATION_CACHE_EXPIRY = 1 * time.Hour

type ApplicationRepository interface {
	GetByID(ctx context.Context, id string) (*JobApplication, error)
	GetAll(ctx context.Context) ([]JobApplication, error)
	Create(ctx context.Context, app *JobApplication) error
	Update(ctx context.Context, app *JobApplication) error
	SoftDelete(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
}

type applicationRepository struct {
	db  database.DB
	log logger.Logger
}

func NewApplication(db database.DB) ApplicationRepository {
	return &applicationRepository{
		db:  db,
		log: logger.New("applicationRepository"),
	}
}

func (r *applicationRepository) getDB(ctx context.Context) *gorm.DB {
	if tx, ok := services.GetTransaction(ctx); ok {
		return tx
	}
	return r.db.SQLWithContext(ctx)
}

func (r *applicationRepository) GetByID(ctx context.Context, id string) (*JobApplication, error) {
	log := r.log.Function("GetByID")

	var app JobApplication
	if err := r.getCacheByID(ctx, id, &app); err == nil {
		return &app, nil
	}

	if err := r.getDB(ctx).First(&app, "id = ?", id).Error; err != nil {
		return nil, log.Err("failed to get application by id", err, "id", id)
	}

	r.migrateLoaded(&app)

	if err := r.addToCache(ctx, &app); err != nil {
		log.Warn("failed to add application to cache", "applicationID", id, "error", err)
	}

	return &app, nil
}

// GetAll returns every stored application, soft-deleted rows included;
// filtering is the view engine's job. Legacy rows are upgraded to the
// timeline shape on the way out and persisted back in the background.
func (r *applicationRepository) GetAll(ctx context.Context) ([]JobApplication, error) {
	log := r.log.Function("GetAll")

	var apps []JobApplication
	if err := r.getDB(ctx).Order("created_at DESC").Find(&apps).Error; err != nil {
		return nil, log.Err("failed to get all applications", err)
	}

	for i := range apps {
		r.migrateLoaded(&apps[i])
	}

	return apps, nil
}

func (r *applicationRepository) Create(ctx context.Context, app *JobApplication) error {
	log := r.log.Function("Create")

	if err := r.getDB(ctx).Create(app).Error; err != nil {
		return log.Err("failed to create application", err, "application", app)
	}

	if err := r.addToCache(ctx, app); err != nil {
		log.Warn("failed to add application to cache", "applicationID", app.ID, "error", err)
	}

	return nil
}

func (r *applicationRepository) Update(ctx context.Context, app *JobApplication) error {
	log := r.log.Function("Update")

	if err := r.getDB(ctx).Save(app).Error; err != nil {
		return log.Err("failed to update application", err, "application", app)
	}

	if err := r.addToCache(ctx, app); err != nil {
		log.Warn("failed to update application in cache", "applicationID", app.ID, "error", err)
	}

	return nil
}

// SoftDelete marks the record Deleted. The row stays in storage and keeps
// appearing in GetAll; views hide it.
func (r *applicationRepository) SoftDelete(ctx context.Context, id string) error {
	log := r.log.Function("SoftDelete")

	app, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}

	app.Status = StatusDeleted
	if err := r.Update(ctx, app); err != nil {
		return log.Err("failed to soft delete application", err, "id", id)
	}

	return nil
}

func (r *applicationRepository) Delete(ctx context.Context, id string) error {
	log := r.log.Function("Delete")

	if err := r.getDB(ctx).Delete(&JobApplication{}, "id = ?", id).Error; err != nil {
		return log.Err("failed to delete application", err, "id", id)
	}

	if err := database.NewCacheBuilder(r.db.Cache.General, applicationCacheKey(id)).Delete(); err != nil {
		log.Warn("failed to remove application from cache", "applicationID", id, "error", err)
	}

	return nil
}

// migrateLoaded upgrades a legacy row in place and writes the upgraded
// shape back asynchronously, so the migration runs at most once per record
// per storage generation. The write is independent of the caller's
// request; a failure only logs.
func (r *applicationRepository) migrateLoaded(app *JobApplication) {
	if !migration.Migrate(app) {
		return
	}

	sanitize.Application(app)

	saved := *app
	go func() {
		log := r.log.Function("migrateLoaded")
		if err := r.db.SQL.Save(&saved).Error; err != nil {
			log.Er("failed to persist migrated application", err, "applicationID", saved.ID)
			return
		}
		log.Info("persisted migrated application", "applicationID", saved.ID)
	}()
}

func (r *applicationRepository) getCacheByID(ctx context.Context, id string, app *JobApplication) error {
	found, err := database.NewCacheBuilder(r.db.Cache.General, applicationCacheKey(id)).
		WithContext(ctx).
		Get(app)
	if err != nil {
		return r.log.Function("getCacheByID").
			Err("failed to get application from cache", err, "applicationID", id)
	}

	if !found {
		return r.log.Function("getCacheByID").
			Error("application not found in cache", "applicationID", id)
	}

	return nil
}

func (r *applicationRepository) addToCache(ctx context.Context, app *JobApplication) error {
	if err := database.NewCacheBuilder(r.db.Cache.General, applicationCacheKey(app.ID)).
		WithStruct(app).
		WithTTL(APPLICATION_CACHE_EXPIRY).
		WithContext(ctx).
		Set(); err != nil {
		return r.log.Function("addToCache").
			Err("failed to add application to cache", err, "applicationID", app.ID)
	}
	return nil
}

func applicationCacheKey(id string) string { return "application:" + id }
