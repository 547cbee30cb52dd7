// Package user provides the user aggregate for the marketplace. Every
// user can both buy courses and publish their own; there is no separate
// creator account type.
package user

import (
	"fmt"
	"time"

	vo "studia/internal/domain/user/value_objects"
	"studia/internal/shared/id"
)

// Role controls administrative access.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// IsValid checks if the role is a known value.
func (r Role) IsValid() bool {
	return r == RoleUser || r == RoleAdmin
}

// String returns the string representation of the role.
func (r Role) String() string {
	return string(r)
}

// User represents the user aggregate root.
type User struct {
	id            uint
	sid           string
	email         *vo.Email
	name          *vo.Name
	role          Role
	status        vo.Status
	passwordHash  *string
	googleID      *string
	emailVerified bool
	version       int
	createdAt     time.Time
	updatedAt     time.Time
}

// NewUser creates an active user registered with email and password.
func NewUser(email *vo.Email, name *vo.Name, passwordHash string) (*User, error) {
	if email == nil {
		return nil, ErrEmailRequired
	}
	if name == nil {
		return nil, ErrNameRequired
	}
	if passwordHash == "" {
		return nil, ErrPasswordHashRequired
	}

	sid, err := id.NewUserSID()
	if err != nil {
		return nil, fmt.Errorf("failed to generate user SID: %w", err)
	}

	now := time.Now()
	return &User{
		sid:          sid,
		email:        email,
		name:         name,
		role:         RoleUser,
		status:       vo.StatusActive,
		passwordHash: &passwordHash,
		version:      1,
		createdAt:    now,
		updatedAt:    now,
	}, nil
}

// NewGoogleUser creates an active user signed up via Google OAuth. The
// account has no password until the user sets one.
func NewGoogleUser(email *vo.Email, name *vo.Name, googleID string) (*User, error) {
	if email == nil {
		return nil, ErrEmailRequired
	}
	if name == nil {
		return nil, ErrNameRequired
	}
	if googleID == "" {
		return nil, ErrGoogleIDRequired
	}

	sid, err := id.NewUserSID()
	if err != nil {
		return nil, fmt.Errorf("failed to generate user SID: %w", err)
	}

	now := time.Now()
	return &User{
		sid:           sid,
		email:         email,
		name:          name,
		role:          RoleUser,
		status:        vo.StatusActive,
		googleID:      &googleID,
		emailVerified: true,
		version:       1,
		createdAt:     now,
		updatedAt:     now,
	}, nil
}

// UserReconstructParams carries persisted state back into the aggregate.
type UserReconstructParams struct {
	ID            uint
	SID           string
	Email         *vo.Email
	Name          *vo.Name
	Role          Role
	Status        vo.Status
	PasswordHash  *string
	GoogleID      *string
	EmailVerified bool
	Version       int
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// ReconstructUser rebuilds a user from persistence.
func ReconstructUser(p UserReconstructParams) (*User, error) {
	if p.ID == 0 {
		return nil, fmt.Errorf("user ID cannot be zero")
	}
	if p.Email == nil {
		return nil, ErrEmailRequired
	}
	if !p.Role.IsValid() {
		return nil, fmt.Errorf("invalid user role: %s", p.Role)
	}

	return &User{
		id:            p.ID,
		sid:           p.SID,
		email:         p.Email,
		name:          p.Name,
		role:          p.Role,
		status:        p.Status,
		passwordHash:  p.PasswordHash,
		googleID:      p.GoogleID,
		emailVerified: p.EmailVerified,
		version:       p.Version,
		createdAt:     p.CreatedAt,
		updatedAt:     p.UpdatedAt,
	}, nil
}

// ID returns the internal user ID.
func (u *User) ID() uint {
	return u.id
}

// SetID sets the user ID (only for persistence layer use)
func (u *User) SetID(id uint) error {
	if u.id != 0 {
		return fmt.Errorf("user ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("user ID cannot be zero")
	}
	u.id = id
	return nil
}

// SID returns the public user identifier.
func (u *User) SID() string {
	return u.sid
}

// Email returns the email value object.
func (u *User) Email() *vo.Email {
	return u.email
}

// Name returns the name value object.
func (u *User) Name() *vo.Name {
	return u.name
}

// Role returns the user's role.
func (u *User) Role() Role {
	return u.role
}

// Status returns the account status.
func (u *User) Status() vo.Status {
	return u.status
}

// PasswordHash returns the bcrypt hash, nil for OAuth-only accounts.
func (u *User) PasswordHash() *string {
	return u.passwordHash
}

// GoogleID returns the linked Google account ID, nil when unlinked.
func (u *User) GoogleID() *string {
	return u.googleID
}

// IsEmailVerified reports whether the email address was confirmed.
func (u *User) IsEmailVerified() bool {
	return u.emailVerified
}

// Version returns the aggregate version for optimistic locking.
func (u *User) Version() int {
	return u.version
}

// CreatedAt returns the creation timestamp.
func (u *User) CreatedAt() time.Time {
	return u.createdAt
}

// UpdatedAt returns the last modification timestamp.
func (u *User) UpdatedAt() time.Time {
	return u.updatedAt
}

// CanLogin reports whether the account may authenticate.
func (u *User) CanLogin() bool {
	return u.status == vo.StatusActive
}

// IsAdmin reports whether the user has administrative access.
func (u *User) IsAdmin() bool {
	return u.role == RoleAdmin
}

// VerifyEmail marks the email address as confirmed.
func (u *User) VerifyEmail() {
	if u.emailVerified {
		return
	}
	u.emailVerified = true
	u.touch()
}

// ChangePasswordHash replaces the stored password hash.
func (u *User) ChangePasswordHash(hash string) error {
	if hash == "" {
		return ErrPasswordHashRequired
	}
	u.passwordHash = &hash
	u.touch()
	return nil
}

// LinkGoogleAccount attaches a Google identity to the account.
func (u *User) LinkGoogleAccount(googleID string) error {
	if googleID == "" {
		return ErrGoogleIDRequired
	}
	if u.googleID != nil && *u.googleID != googleID {
		return ErrGoogleAccountMismatch
	}
	u.googleID = &googleID
	u.emailVerified = true
	u.touch()
	return nil
}

// UpdateName replaces the display name.
func (u *User) UpdateName(name *vo.Name) error {
	if name == nil {
		return ErrNameRequired
	}
	u.name = name
	u.touch()
	return nil
}

// Suspend blocks the account from logging in.
func (u *User) Suspend() error {
	if err := u.status.TransitionTo(vo.StatusSuspended); err != nil {
		return err
	}
	u.touch()
	return nil
}

// Reactivate restores a suspended account.
func (u *User) Reactivate() error {
	if err := u.status.TransitionTo(vo.StatusActive); err != nil {
		return err
	}
	u.touch()
	return nil
}

func (u *User) touch() {
	u.updatedAt = time.Now()
	u.version++
}
