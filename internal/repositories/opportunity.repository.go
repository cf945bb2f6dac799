package repositories

import (
	"context"
	"time"

	"server/internal/database"
	"server/internal/logger"
	. "server/internal/models"
	"server/internal/services"

	"gorm.io/gorm"
)

const OPPORTUNITY_CACHE_EXPIRY = 1 * time.Hour

type OpportunityRepository interface {
	GetByID(ctx context.Context, id string) (*JobOpportunity, error)
	GetAll(ctx context.Context) ([]JobOpportunity, error)
	Create(ctx context.Context, opp *JobOpportunity) error
	Delete(ctx context.Context, id string) error
}

type opportunityRepository struct {
	db  database.DB
	log logger.Logger
}

func NewOpportunity(db database.DB) OpportunityRepository {
	return &opportunityRepository{
		db:  db,
		log: logger.New("opportunityRepository"),
	}
}

func (r *opportunityRepository) getDB(ctx context.Context) *gorm.DB {
	if tx, ok := services.GetTransaction(ctx); ok {
		return tx
	}
	return r.db.SQLWithContext(ctx)
}

func (r *opportunityRepository) GetByID(ctx context.Context, id string) (*JobOpportunity, error) {
	log := r.log.Function("GetByID")

	var opp JobOpportunity
	found, err := database.NewCacheBuilder(r.db.Cache.General, opportunityCacheKey(id)).
		WithContext(ctx).
		Get(&opp)
	if err == nil && found {
		return &opp, nil
	}

	if err := r.getDB(ctx).First(&opp, "id = ?", id).Error; err != nil {
		return nil, log.Err("failed to get opportunity by id", err, "id", id)
	}

	if err := r.addToCache(ctx, &opp); err != nil {
		log.Warn("failed to add opportunity to cache", "opportunityID", id, "error", err)
	}

	return &opp, nil
}

func (r *opportunityRepository) GetAll(ctx context.Context) ([]JobOpportunity, error) {
	log := r.log.Function("GetAll")

	var opps []JobOpportunity
	if err := r.getDB(ctx).Order("created_at DESC").Find(&opps).Error; err != nil {
		return nil, log.Err("failed to get all opportunities", err)
	}

	return opps, nil
}

func (r *opportunityRepository) Create(ctx context.Context, opp *JobOpportunity) error {
	log := r.log.Function("Create")

	if err := r.getDB(ctx).Create(opp).Error; err != nil {
		return log.Err("failed to create opportunity", err, "opportunity", opp)
	}

	if err := r.addToCache(ctx, opp); err != nil {
		log.Warn("failed to add opportunity to cache", "opportunityID", opp.ID, "error", err)
	}

	return nil
}

func (r *opportunityRepository) Delete(ctx context.Context, id string) error {
	log := r.log.Function("Delete")

	if err := r.getDB(ctx).Delete(&JobOpportunity{}, "id = ?", id).Error; err != nil {
		return log.Err("failed to delete opportunity", err, "id", id)
	}

	if err := database.NewCacheBuilder(r.db.Cache.General, opportunityCacheKey(id)).Delete(); err != nil {
		log.Warn("failed to remove opportunity from cache", "opportunityID", id, "error", err)
	}

	return nil
}

func (r *opportunityRepository) addToCache(ctx context.Context, opp *JobOpportunity) error {
	if err := database.NewCacheBuilder(r.db.Cache.General, opportunityCacheKey(opp.ID)).
		WithStruct(opp).
		WithTTL(OPPORTUNITY_CACHE_EXPIRY).
		WithContext(ctx).
		Set(); err != nil {
		return r.log.Function("addToCache").
			Err("failed to add opportunity to cache", err, "opportunityID", opp.ID)
	}
	return nil
}

func opportunityCacheKey(id string) string { return "opportunity:" + id }
