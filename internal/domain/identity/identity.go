package identity

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// Roles known to the auth service.
const (
	RoleStudent   = "STUDENT"
	RoleFaculty   = "FACULTY"
	RoleDeptAdmin = "DEPT_ADMIN"
	RoleHeadAdmin = "HEAD_ADMIN"
)

var (
	ErrUserNotFound    = errors.New("identity user not found")
	ErrCollegeNotFound = errors.New("identity college not found")
)

// User is the identity record owned by the auth service. Fields the profile
// store has no local equivalent for (avatar, email, roles, joined_at) pass
// through enrichment untouched.
type User struct {
	ID         uuid.UUID  `json:"id"`
	Name       string     `json:"name"`
	Email      string     `json:"email"`
	AvatarURL  string     `json:"avatar_url"`
	CollegeID  *uuid.UUID `json:"college_id"`
	Department string     `json:"department"`
	Year       string     `json:"year"`
	Roles      []string   `json:"roles"`
	JoinedAt   *time.Time `json:"joined_at"`
}

type College struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	Location string    `json:"location"`
}

// Gateway is the outbound contract against the auth service. Every call
// carries a bounded timeout; callers decide whether a failure degrades or
// propagates.
type Gateway interface {
	GetUser(ctx context.Context, id uuid.UUID) (*User, error)
	ListUsers(ctx context.Context) ([]User, error)
	GetCollege(ctx context.Context, id uuid.UUID) (*College, error)
	ListColleges(ctx context.Context) ([]College, error)
	UpdateUserName(ctx context.Context, id uuid.UUID, name string) error
}
