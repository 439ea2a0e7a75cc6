package postgres

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/kestrelworks/gatehouse"
)

// Compile-time check that UserService implements gatehouse.UserService.
var _ gatehouse.UserService = (*UserService)(nil)

// UserService implements gatehouse.UserService using PostgreSQL.
type UserService struct {
	db *DB
}

func scanUser(row pgx.Row) (*gatehouse.User, error) {
	var user gatehouse.User
	err := row.Scan(
		&user.ID,
		&user.Username,
		&user.Staff,
		&user.TrustLevel,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *UserService) FindUserByID(ctx context.Context, id uuid.UUID) (*gatehouse.User, error) {
	row := s.db.pool.QueryRow(ctx,
		`SELECT id, username, staff, trust_level, created_at, updated_at
		 FROM users WHERE id = $1`, id)

	user, err := scanUser(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, gatehouse.NotFound("User not found")
		}
		return nil, gatehouse.Internal("Failed to fetch user", err)
	}
	return user, nil
}

func (s *UserService) FindUserByAPIKey(ctx context.Context, key string) (*gatehouse.User, error) {
	row := s.db.pool.QueryRow(ctx,
		`SELECT id, username, staff, trust_level, created_at, updated_at
		 FROM users WHERE api_key_hash = $1`, hashAPIKey(key))

	user, err := scanUser(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, gatehouse.NotFound("User not found")
		}
		return nil, gatehouse.Internal("Failed to fetch user", err)
	}
	return user, nil
}

func (s *UserService) CreateUser(ctx context.Context, user *gatehouse.User) (string, error) {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now

	apiKey, err := generateAPIKey()
	if err != nil {
		return "", gatehouse.Internal("Failed to generate API key", err)
	}

	_, err = s.db.pool.Exec(ctx,
		`INSERT INTO users (id, username, staff, trust_level, api_key_hash, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		user.ID, user.Username, user.Staff, user.TrustLevel, hashAPIKey(apiKey),
		user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return "", gatehouse.Conflict("Username already exists")
		}
		return "", gatehouse.Internal("Failed to create user", err)
	}

	return apiKey, nil
}

// generateAPIKey produces a 32-byte random key, hex encoded.
func generateAPIKey() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

// hashAPIKey returns the stored form of an API key. Keys are high-entropy
// random values, so a plain digest is sufficient.
func hashAPIKey(key string) string {
	sum := sha256.Sum256([]byte(key))
	return hex.EncodeToString(sum[:])
}
