package gatehouse

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// UploadCandidate is a file offered for upload, before any decision has been
// made about it.
type UploadCandidate struct {
	// Name is the client-supplied filename. Required except for pasted
	// content (see IsPastedWithoutName).
	Name string `json:"name"`

	// ContentType is the client's MIME hint. Informational only; the
	// authorization decision is driven by the filename suffix.
	ContentType string `json:"content_type,omitempty"`

	// IsPrivateMessage marks a candidate destined for a private message.
	IsPrivateMessage bool `json:"is_private_message"`

	// IsPastedWithoutName marks raw clipboard content that arrived with no
	// filename. Pasted content is always image data; such candidates are
	// evaluated as if named "image.png".
	IsPastedWithoutName bool `json:"is_pasted_without_name"`
}

// EffectiveName returns the filename used for classification and
// authorization checks.
func (c UploadCandidate) EffectiveName() string {
	if c.Name == "" && c.IsPastedWithoutName {
		return "image.png"
	}
	return c.Name
}

// UploadRecord is the metadata of a completed upload.
type UploadRecord struct {
	ID               uuid.UUID `json:"id"`
	UserID           uuid.UUID `json:"user_id"`
	OriginalFilename string    `json:"original_filename"`
	URL              string    `json:"url"`
	ShortURL         string    `json:"short_url,omitempty"`
	ThumbnailWidth   int       `json:"thumbnail_width,omitempty"`
	ThumbnailHeight  int       `json:"thumbnail_height,omitempty"`
	Filesize         int64     `json:"filesize"`
	Type             MediaType `json:"type"`
	CreatedAt        time.Time `json:"created_at"`
}

// UploadFilter defines criteria for listing uploads.
type UploadFilter struct {
	UserID *uuid.UUID

	// Pagination
	Offset int
	Limit  int
}

// UploadService defines persistence operations for completed uploads.
type UploadService interface {
	// FindUploadByID retrieves an upload by its ID.
	// Returns ENOTFOUND if the upload does not exist.
	FindUploadByID(ctx context.Context, id uuid.UUID) (*UploadRecord, error)

	// FindUploads retrieves uploads matching the filter criteria.
	// Returns the matching uploads and total count.
	FindUploads(ctx context.Context, filter UploadFilter) ([]*UploadRecord, int, error)

	// CreateUpload creates a new upload record.
	// Note: the actual file transfer is handled by FileStorage.
	CreateUpload(ctx context.Context, upload *UploadRecord) error

	// DeleteUpload deletes an upload record.
	// Returns ENOTFOUND if the upload does not exist.
	DeleteUpload(ctx context.Context, id uuid.UUID) error
}
