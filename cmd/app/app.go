package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"blogcms/internal/config"
	"blogcms/internal/database"
	"blogcms/internal/repository"
	"blogcms/internal/service"
	"blogcms/internal/storage"
)

// App connects the database (and MinIO when enabled) and wires repositories into
// services. The caller owns the returned DB and must close it.
func App(ctx context.Context, cfg *config.Config, log *logrus.Logger) (database.MethodsDB, *service.Service, error) {
	if cfg.JWTSecretKey == "" {
		return nil, nil, errors.New("JWT_SECRET_KEY is not set")
	}

	db, err := database.ConnectDB(ctx, cfg, log)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// A nil *MinIOClient must not end up inside the interface.
	var store storage.Storage
	if cfg.MinIO.Enabled {
		minioClient, err := storage.NewMinIOClient(ctx, cfg.MinIO)
		if err != nil {
			_ = db.CloseDB()
			return nil, nil, fmt.Errorf("failed to initialize minio: %w", err)
		}
		store = minioClient
		log.WithFields(logrus.Fields{
			"endpoint": cfg.MinIO.Endpoint,
			"bucket":   cfg.MinIO.BucketName,
		}).Info("image storage enabled")
	}

	repo := repository.NewRepository(db.DB)
	services := service.NewService(repo, cfg, store, log)

	return db, services, nil
}
