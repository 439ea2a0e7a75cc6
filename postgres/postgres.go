// Package postgres provides PostgreSQL implementations of domain service
// interfaces.
package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/kestrelworks/gatehouse"
)

// DB wraps the database connection pool and exposes domain services.
type DB struct {
	pool *pgxpool.Pool

	// Domain services (initialized in NewDB)
	UserService   gatehouse.UserService
	UploadService gatehouse.UploadService
}

// NewDB creates a new database wrapper with all services initialized.
func NewDB(pool *pgxpool.Pool) *DB {
	db := &DB{pool: pool}
	db.UserService = &UserService{db: db}
	db.UploadService = &UploadService{db: db}
	return db
}

// Pool returns the underlying connection pool.
// Use sparingly - prefer using service methods.
func (db *DB) Pool() *pgxpool.Pool {
	return db.pool
}

// Close closes the database connection pool.
func (db *DB) Close() {
	db.pool.Close()
}

// isUniqueViolation checks if an error is a PostgreSQL unique constraint violation.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" // unique_violation
	}
	return false
}

// isForeignKeyViolation checks if an error is a PostgreSQL foreign key violation.
func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23503" // foreign_key_violation
	}
	return false
}
