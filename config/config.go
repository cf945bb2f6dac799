package config

import (
	"server/internal/logger"

	"github.com/spf13/viper"
)

type Config struct {
	Environment    string
	ServerPort     string
	DatabaseDbPath string
	CacheAddress   string
	CacheGeneralDB int
	CacheSessionDB int
	CacheEventsDB  int
	SessionSecret  string
	CorsOrigins    string
}

func InitConfig() (Config, error) {
	log := logger.New("config").Function("InitConfig")

	viper.SetDefault("ENVIRONMENT", "development")
	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("DATABASE_DB_PATH", "data/tracker.db")
	viper.SetDefault("CACHE_ADDRESS", "localhost:6379")
	viper.SetDefault("CACHE_GENERAL_DB", 0)
	viper.SetDefault("CACHE_SESSION_DB", 1)
	viper.SetDefault("CACHE_EVENTS_DB", 2)
	viper.SetDefault("CORS_ORIGINS", "http://localhost:5173")

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return Config{}, log.Err("failed to read config file", err)
		}
		log.Info("No config file found, using environment and defaults")
	}

	config := Config{
		Environment:    viper.GetString("ENVIRONMENT"),
		ServerPort:     viper.GetString("SERVER_PORT"),
		DatabaseDbPath: viper.GetString("DATABASE_DB_PATH"),
		CacheAddress:   viper.GetString("CACHE_ADDRESS"),
		CacheGeneralDB: viper.GetInt("CACHE_GENERAL_DB"),
		CacheSessionDB: viper.GetInt("CACHE_SESSION_DB"),
		CacheEventsDB:  viper.GetInt("CACHE_EVENTS_DB"),
		SessionSecret:  viper.GetString("SESSION_SECRET"),
		CorsOrigins:    viper.GetString("CORS_ORIGINS"),
	}

	if err := config.validate(); err != nil {
		return Config{}, err
	}

	return config, nil
}

func (c Config) validate() error {
	log := logger.New("config").Function("validate")

	if c.DatabaseDbPath == "" {
		return log.ErrMsg("DATABASE_DB_PATH is required")
	}

	if c.CacheAddress == "" {
		return log.ErrMsg("CACHE_ADDRESS is required")
	}

	if c.SessionSecret == "" && c.Environment != "development" {
		return log.ErrMsg("SESSION_SECRET is required outside development")
	}

	return nil
}

func (c Config) IsProduction() bool {
	return c.Environment == "production"
}
