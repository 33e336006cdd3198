package db

import (
	"context"
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func ConnectDataBase(ctx context.Context, opts Options) (*gorm.DB, error) {
	var sslMode string
	if opts.SSLModeDisable {
		sslMode = " sslmode=disable"
	}
	username, password, err := retrieveCredentials(ctx, opts)
	if err != nil {
		return nil, err
	}
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%d%s", opts.Host, username, password, opts.Name, opts.Port, sslMode)
	database, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Error),
	})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	return database, nil
}
