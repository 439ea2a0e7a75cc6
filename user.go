package gatehouse

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// User represents a requester in the system.
type User struct {
	ID         uuid.UUID `json:"id"`
	Username   string    `json:"username"`
	Staff      bool      `json:"staff"`
	TrustLevel int       `json:"trust_level"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// IsNewUser reports whether the user is still subject to new-user upload
// restrictions.
func (u *User) IsNewUser() bool {
	return !u.Staff && u.TrustLevel == 0
}

// Requester is the privilege surface the upload validator consults. A nil
// Requester means the caller is anonymous or unknown: not staff, and exempt
// from the new-user check.
type Requester interface {
	// IsStaff reports elevated privilege, making the additive staff-only
	// extension list applicable.
	IsStaff() bool

	// CanUpload reports whether new-user restrictions permit uploading
	// files of the given media type.
	CanUpload(t MediaType) bool
}

// UploadPrivileges binds a user to the site settings that govern new-user
// restrictions, satisfying Requester.
type UploadPrivileges struct {
	User     *User
	Settings *SiteUploadSettings
}

func (p UploadPrivileges) IsStaff() bool {
	return p.User != nil && p.User.Staff
}

func (p UploadPrivileges) CanUpload(t MediaType) bool {
	if p.User == nil || !p.User.IsNewUser() {
		return true
	}
	if t == MediaTypeAttachment {
		return p.Settings.NewUserCanAttachFiles
	}
	return p.Settings.NewUserCanEmbedMedia
}

// UserService defines operations for managing users.
type UserService interface {
	// FindUserByID retrieves a user by their ID.
	// Returns ENOTFOUND if the user does not exist.
	FindUserByID(ctx context.Context, id uuid.UUID) (*User, error)

	// FindUserByAPIKey retrieves the user owning the given API key.
	// Returns ENOTFOUND if no user owns the key.
	FindUserByAPIKey(ctx context.Context, key string) (*User, error)

	// CreateUser creates a new user and returns the generated API key.
	// Returns ECONFLICT if the username already exists.
	CreateUser(ctx context.Context, user *User) (apiKey string, err error)
}
