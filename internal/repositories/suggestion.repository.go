package repositories

import (
	"context"

	"server/internal/database"
	"server/internal/logger"
	. "server/internal/models"

	"gorm.io/gorm"
)

type SuggestionRepository interface {
	Create(ctx context.Context, suggestion *Suggestion) error
	GetAll(ctx context.Context) ([]Suggestion, error)
}

type suggestionRepository struct {
	db  database.DB
	log logger.Logger
}

func NewSuggestion(db database.DB) SuggestionRepository {
	return &suggestionRepository{
		db:  db,
		log: logger.New("suggestionRepository"),
	}
}

func (r *suggestionRepository) getDB(ctx context.Context) *gorm.DB {
	return r.db.SQLWithContext(ctx)
}

func (r *suggestionRepository) Create(ctx context.Context, suggestion *Suggestion) error {
	log := r.log.Function("Create")

	if err := r.getDB(ctx).Create(suggestion).Error; err != nil {
		return log.Err("failed to create suggestion", err)
	}

	return nil
}

func (r *suggestionRepository) GetAll(ctx context.Context) ([]Suggestion, error) {
	log := r.log.Function("GetAll")

	var suggestions []Suggestion
	if err := r.getDB(ctx).Order("created_at DESC").Find(&suggestions).Error; err != nil {
		return nil, log.Err("failed to get all suggestions", err)
	}

	return suggestions, nil
}
