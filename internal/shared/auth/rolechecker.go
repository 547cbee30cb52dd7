package auth

import "studia/internal/domain/user"

// IsAdmin checks if the role carries administrative access
func IsAdmin(role string) bool {
	return role == user.RoleAdmin.String()
}

// HasRole checks if the role is one of the allowed roles
func HasRole(role string, allowed ...string) bool {
	for _, r := range allowed {
		if role == r {
			return true
		}
	}
	return false
}
