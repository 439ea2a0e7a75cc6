package main

import (
	"context"
	"log/slog"

	"github.com/kestrelworks/gatehouse"
	"github.com/kestrelworks/gatehouse/internal/storage"
	"github.com/kestrelworks/gatehouse/postgres"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Services holds all application services.
type Services struct {
	UserService   gatehouse.UserService
	UploadService gatehouse.UploadService
	FileStorage   gatehouse.FileStorage
}

// initServices initializes all application services.
func initServices(ctx context.Context, pool *pgxpool.Pool, cfg *Config, logger *slog.Logger) (*Services, error) {
	// Initialize database wrapper with all domain services
	db := postgres.NewDB(pool)
	logger.Info("database services initialized")

	// Initialize file storage
	fileStorage, err := initFileStorage(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}
	logger.Info("file storage initialized", slog.String("provider", cfg.StorageProvider))

	return &Services{
		UserService:   db.UserService,
		UploadService: db.UploadService,
		FileStorage:   fileStorage,
	}, nil
}

// initFileStorage creates the appropriate file storage implementation.
func initFileStorage(ctx context.Context, cfg *Config, logger *slog.Logger) (gatehouse.FileStorage, error) {
	logger.Debug("storage service configuration",
		slog.String("provider", cfg.StorageProvider),
		slog.String("local_path", cfg.StorageLocalPath),
		slog.String("s3_bucket", cfg.StorageS3Bucket),
		slog.String("s3_region", cfg.StorageS3Region))

	storageCfg := gatehouse.StorageConfig{
		Provider:  cfg.StorageProvider,
		LocalPath: cfg.StorageLocalPath,
		LocalURL:  cfg.StorageLocalURL,
		S3Bucket:  cfg.StorageS3Bucket,
		S3Region:  cfg.StorageS3Region,
		S3BaseURL: cfg.StorageS3BaseURL,
	}

	return storage.New(ctx, logger, storageCfg)
}
