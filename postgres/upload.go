package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/kestrelworks/gatehouse"
)

// Compile-time check that UploadService implements gatehouse.UploadService.
var _ gatehouse.UploadService = (*UploadService)(nil)

// UploadService implements gatehouse.UploadService using PostgreSQL.
type UploadService struct {
	db *DB
}

const uploadColumns = `id, user_id, original_filename, url, short_url,
	thumbnail_width, thumbnail_height, filesize, media_type, created_at`

func scanUpload(row pgx.Row) (*gatehouse.UploadRecord, error) {
	var rec gatehouse.UploadRecord
	var mediaType string
	err := row.Scan(
		&rec.ID,
		&rec.UserID,
		&rec.OriginalFilename,
		&rec.URL,
		&rec.ShortURL,
		&rec.ThumbnailWidth,
		&rec.ThumbnailHeight,
		&rec.Filesize,
		&mediaType,
		&rec.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	rec.Type = gatehouse.MediaType(mediaType)
	return &rec, nil
}

func (s *UploadService) FindUploadByID(ctx context.Context, id uuid.UUID) (*gatehouse.UploadRecord, error) {
	row := s.db.pool.QueryRow(ctx,
		`SELECT `+uploadColumns+` FROM uploads WHERE id = $1`, id)

	rec, err := scanUpload(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, gatehouse.NotFound("Upload not found")
		}
		return nil, gatehouse.Internal("Failed to fetch upload", err)
	}
	return rec, nil
}

func (s *UploadService) FindUploads(ctx context.Context, filter gatehouse.UploadFilter) ([]*gatehouse.UploadRecord, int, error) {
	if filter.UserID == nil {
		return nil, 0, gatehouse.Invalid("User ID is required")
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}

	rows, err := s.db.pool.Query(ctx,
		`SELECT `+uploadColumns+` FROM uploads
		 WHERE user_id = $1
		 ORDER BY created_at DESC
		 OFFSET $2 LIMIT $3`,
		*filter.UserID, filter.Offset, limit)
	if err != nil {
		return nil, 0, gatehouse.Internal("Failed to list uploads", err)
	}
	defer rows.Close()

	var uploads []*gatehouse.UploadRecord
	for rows.Next() {
		rec, err := scanUpload(rows)
		if err != nil {
			return nil, 0, gatehouse.Internal("Failed to scan upload", err)
		}
		uploads = append(uploads, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, gatehouse.Internal("Failed to list uploads", err)
	}

	var total int
	err = s.db.pool.QueryRow(ctx,
		`SELECT count(*) FROM uploads WHERE user_id = $1`, *filter.UserID).Scan(&total)
	if err != nil {
		return nil, 0, gatehouse.Internal("Failed to count uploads", err)
	}

	return uploads, total, nil
}

func (s *UploadService) CreateUpload(ctx context.Context, upload *gatehouse.UploadRecord) error {
	if upload.ID == uuid.Nil {
		upload.ID = uuid.New()
	}
	if upload.CreatedAt.IsZero() {
		upload.CreatedAt = time.Now().UTC()
	}

	_, err := s.db.pool.Exec(ctx,
		`INSERT INTO uploads (id, user_id, original_filename, url, short_url,
			thumbnail_width, thumbnail_height, filesize, media_type, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		upload.ID,
		upload.UserID,
		upload.OriginalFilename,
		upload.URL,
		upload.ShortURL,
		upload.ThumbnailWidth,
		upload.ThumbnailHeight,
		upload.Filesize,
		string(upload.Type),
		upload.CreatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return gatehouse.NotFound("User not found")
		}
		if isUniqueViolation(err) {
			return gatehouse.Conflict("Upload already exists")
		}
		return gatehouse.Internal("Failed to create upload", err)
	}
	return nil
}

func (s *UploadService) DeleteUpload(ctx context.Context, id uuid.UUID) error {
	tag, err := s.db.pool.Exec(ctx, `DELETE FROM uploads WHERE id = $1`, id)
	if err != nil {
		return gatehouse.Internal("Failed to delete upload", err)
	}
	if tag.RowsAffected() == 0 {
		return gatehouse.NotFound("Upload not found")
	}
	return nil
}
