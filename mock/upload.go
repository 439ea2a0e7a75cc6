package mock

import (
	"context"

	"github.com/google/uuid"
	"github.com/kestrelworks/gatehouse"
)

// Compile-time interface check
var _ gatehouse.UploadService = (*UploadService)(nil)

// UploadService is a mock implementation of gatehouse.UploadService.
type UploadService struct {
	FindUploadByIDFn func(ctx context.Context, id uuid.UUID) (*gatehouse.UploadRecord, error)
	FindUploadsFn    func(ctx context.Context, filter gatehouse.UploadFilter) ([]*gatehouse.UploadRecord, int, error)
	CreateUploadFn   func(ctx context.Context, upload *gatehouse.UploadRecord) error
	DeleteUploadFn   func(ctx context.Context, id uuid.UUID) error
}

func (s *UploadService) FindUploadByID(ctx context.Context, id uuid.UUID) (*gatehouse.UploadRecord, error) {
	if s.FindUploadByIDFn != nil {
		return s.FindUploadByIDFn(ctx, id)
	}
	return nil, gatehouse.NotFound("Upload not found")
}

func (s *UploadService) FindUploads(ctx context.Context, filter gatehouse.UploadFilter) ([]*gatehouse.UploadRecord, int, error) {
	if s.FindUploadsFn != nil {
		return s.FindUploadsFn(ctx, filter)
	}
	return []*gatehouse.UploadRecord{}, 0, nil
}

func (s *UploadService) CreateUpload(ctx context.Context, upload *gatehouse.UploadRecord) error {
	if s.CreateUploadFn != nil {
		return s.CreateUploadFn(ctx, upload)
	}
	return nil
}

func (s *UploadService) DeleteUpload(ctx context.Context, id uuid.UUID) error {
	if s.DeleteUploadFn != nil {
		return s.DeleteUploadFn(ctx, id)
	}
	return nil
}
