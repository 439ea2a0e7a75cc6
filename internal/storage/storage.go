// Package storage provides local disk and S3 implementations of
// gatehouse.FileStorage.
package storage

import (
	"context"
	"fmt"
	"log/slog"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/kestrelworks/gatehouse"
)

// New creates a file storage instance based on the provider configuration.
func New(ctx context.Context, logger *slog.Logger, cfg gatehouse.StorageConfig) (gatehouse.FileStorage, error) {
	switch cfg.Provider {
	case "s3":
		awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.S3Region))
		if err != nil {
			return nil, fmt.Errorf("loading AWS config: %w", err)
		}
		client := s3.NewFromConfig(awsCfg)
		logger.Info("initialized S3 storage",
			slog.String("bucket", cfg.S3Bucket),
			slog.String("region", cfg.S3Region))
		return NewS3Storage(client, cfg.S3Bucket, cfg.S3Region, cfg.S3BaseURL), nil
	default:
		store, err := NewLocalStorage(cfg.LocalPath, cfg.LocalURL)
		if err != nil {
			return nil, err
		}
		logger.Info("initialized local storage",
			slog.String("path", cfg.LocalPath),
			slog.String("url", cfg.LocalURL))
		return store, nil
	}
}
