package db

import (
	"context"

	"gorm.io/gorm"

	"github.com/autolux/marketplace-api/internal/config"
)

// Options describes where the database lives and how to authenticate.
type Options struct {
	Host           string
	Port           uint
	Name           string
	Username       string
	Password       string
	SecretID       string
	SSLModeDisable bool
}

func optionsFrom(cfg *config.Config) Options {
	port := cfg.DBPort
	if port == 0 {
		port = 5432 // default PostgreSQL port
	}
	return Options{
		Host:           cfg.DBHost,
		Port:           port,
		Name:           cfg.DBName,
		Username:       cfg.DBUsername,
		Password:       cfg.DBPassword,
		SecretID:       cfg.DBSecretID,
		SSLModeDisable: cfg.DBSSLModeDisable,
	}
}

func GetDB(ctx context.Context, cfg *config.Config) (*gorm.DB, error) {
	return ConnectDataBase(ctx, optionsFrom(cfg))
}
