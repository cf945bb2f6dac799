package app

import (
	"server/config"
	"server/internal/database"
	"server/internal/events"
	"server/internal/handlers/middleware"
	"server/internal/logger"
	"server/internal/repositories"
	"server/internal/services"
	"server/internal/websockets"

	applicationsController "server/internal/controllers/applications"
	opportunitiesController "server/internal/controllers/opportunities"
	preferencesController "server/internal/controllers/preferences"
	suggestionsController "server/internal/controllers/suggestions"
)

type App struct {
	Database   database.DB
	Middleware middleware.Middleware
	Websocket  *websockets.Manager
	EventBus   *events.EventBus
	Config     config.Config

	// Services
	TransactionService *services.TransactionService

	// Repositories
	ApplicationRepo repositories.ApplicationRepository
	OpportunityRepo repositories.OpportunityRepository
	PreferencesRepo repositories.PreferencesRepository
	SuggestionRepo  repositories.SuggestionRepository

	// Controllers
	ApplicationController *applicationsController.ApplicationController
	OpportunityController *opportunitiesController.OpportunityController
	PreferencesController *preferencesController.PreferencesController
	SuggestionController  *suggestionsController.SuggestionController
}

func New() (*App, error) {
	log := logger.New("app").Function("New")

	config, err := config.InitConfig()
	if err != nil {
		return &App{}, log.Err("failed to initialize config", err)
	}

	db, err := database.New(config)
	if err != nil {
		return &App{}, log.Err("failed to create database", err)
	}

	eventBus := events.New(db.Cache.Events, config)

	// Initialize services
	transactionService := services.NewTransactionService(db)

	// Initialize repositories
	applicationRepo := repositories.NewApplication(db)
	opportunityRepo := repositories.NewOpportunity(db)
	preferencesRepo := repositories.NewPreferences(db)
	suggestionRepo := repositories.NewSuggestion(db)

	// Initialize controllers with repositories and services
	middleware := middleware.New(db, eventBus, config)
	applicationController := applicationsController.New(eventBus, applicationRepo)
	opportunityController := opportunitiesController.New(eventBus, opportunityRepo, applicationRepo)
	preferencesController := preferencesController.New(eventBus, preferencesRepo)
	suggestionController := suggestionsController.New(db, suggestionRepo)

	websocket, err := websockets.New(db, eventBus, config)
	if err != nil {
		return &App{}, log.Err("failed to create websocket manager", err)
	}

	app := &App{
		Database:              db,
		Config:                config,
		Middleware:            middleware,
		TransactionService:    transactionService,
		ApplicationRepo:       applicationRepo,
		OpportunityRepo:       opportunityRepo,
		PreferencesRepo:       preferencesRepo,
		SuggestionRepo:        suggestionRepo,
		ApplicationController: applicationController,
		OpportunityController: opportunityController,
		PreferencesController: preferencesController,
		SuggestionController:  suggestionController,
		Websocket:             websocket,
		EventBus:              eventBus,
	}

	if err := app.validate(); err != nil {
		return &App{}, log.Err("failed to validate app", err)
	}

	return app, nil
}

func (a *App) validate() error {
	log := logger.New("app").Function("validate")
	if a.Database.SQL == nil {
		return log.ErrMsg("database is nil")
	}

	if a.Config == (config.Config{}) {
		return log.ErrMsg("config is nil")
	}

	nilChecks := []any{
		a.Websocket,
		a.EventBus,
		a.TransactionService,
		a.ApplicationRepo,
		a.OpportunityRepo,
		a.PreferencesRepo,
		a.SuggestionRepo,
		a.ApplicationController,
		a.OpportunityController,
		a.PreferencesController,
		a.SuggestionController,
	}

	for _, check := range nilChecks {
		if check == nil {
			return log.ErrMsg("nil check failed")
		}
	}

	return nil
}

func (a *App) Close() (err error) {
	if a.EventBus != nil {
		if closeErr := a.EventBus.Close(); closeErr != nil {
			err = closeErr
		}
	}

	if dbErr := a.Database.Close(); dbErr != nil {
		err = dbErr
	}

	return err
}
