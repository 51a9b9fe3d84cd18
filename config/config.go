package config

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

type Config struct {
	Server    Server
	Database  Database
	Storage   Storage
	Interview Interview
}

type Server struct {
	Port string
}
type Database struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
}

// Storage holds the root directory for uploaded media artifacts.
type Storage struct {
	Dir string
}

// Interview holds the recording policy advertised to candidate clients.
type Interview struct {
	MaxAttempts  int
	MinTimeLimit int
	MaxTimeLimit int
}

func NewConfig() (*Config, error) {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")

	viper.AutomaticEnv()

	viper.SetDefault("STORAGE_DIR", "./public")
	viper.SetDefault("INTERVIEW_MAX_ATTEMPTS", 3)
	viper.SetDefault("INTERVIEW_MIN_TIME_LIMIT", 10)
	viper.SetDefault("INTERVIEW_MAX_TIME_LIMIT", 30)

	if err := viper.ReadInConfig(); err != nil {
		log.Warn().Err(err).Msg("Error reading config file")
	}

	var config Config

	config.Server.Port = viper.GetString("SERVER_PORT")
	config.Database.Host = viper.GetString("DATABASE_HOST")
	config.Database.Port = viper.GetString("DATABASE_PORT")
	config.Database.User = viper.GetString("DATABASE_USER")
	config.Database.Password = viper.GetString("DATABASE_PASSWORD")
	config.Database.Name = viper.GetString("DATABASE_NAME")

	config.Storage.Dir = viper.GetString("STORAGE_DIR")
	config.Interview.MaxAttempts = viper.GetInt("INTERVIEW_MAX_ATTEMPTS")
	config.Interview.MinTimeLimit = viper.GetInt("INTERVIEW_MIN_TIME_LIMIT")
	config.Interview.MaxTimeLimit = viper.GetInt("INTERVIEW_MAX_TIME_LIMIT")

	log.Info().Interface("config", config).Msg("Config loaded")
	return &config, nil

}
