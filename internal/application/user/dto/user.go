// Package dto holds the read models returned by the user use cases.
package dto

import (
	"time"

	"studia/internal/domain/user"
)

// UserView is the API-facing representation of a user.
type UserView struct {
	SID           string    `json:"id"`
	Email         string    `json:"email"`
	Name          string    `json:"name"`
	Role          string    `json:"role"`
	EmailVerified bool      `json:"email_verified"`
	CreatedAt     time.Time `json:"created_at"`
}

// NewUserView builds the view of a user.
func NewUserView(u *user.User) UserView {
	name := ""
	if u.Name() != nil {
		name = u.Name().String()
	}
	return UserView{
		SID:           u.SID(),
		Email:         u.Email().String(),
		Name:          name,
		Role:          u.Role().String(),
		EmailVerified: u.IsEmailVerified(),
		CreatedAt:     u.CreatedAt(),
	}
}
