package models

import "github.com/golang-jwt/jwt/v5"

// Claims is the JWT claims structure supplied by the identity collaborator.
// This core never authenticates or issues tokens; it only consumes the
// resolved requester's id, role, department and clearance level.
type Claims struct {
	jwt.RegisteredClaims       // Standard JWT claims (sub, iss, aud, exp, iat, etc.)
	Role                 string `json:"role"` // "authenticated" or "admin"
	DepartmentID         int64  `json:"department_id"`
	Level                int    `json:"level"`
}

// GetUserID returns the user ID from the JWT subject claim.
func (c *Claims) GetUserID() string {
	return c.Subject
}

// IsAdmin reports whether the requester bypasses visibility restrictions.
func (c *Claims) IsAdmin() bool {
	return c.Role == "admin"
}

// Visibility derives the requester's visibility context: admins see
// everything, everyone else sees published entities of their own department
// at or below their clearance level.
func (c *Claims) Visibility() VisibilityContext {
	if c.IsAdmin() {
		return Unrestricted()
	}
	dept := c.DepartmentID
	level := c.Level
	return VisibilityContext{
		OnlyPublished: true,
		DepartmentID:  &dept,
		ViewerLevel:   &level,
	}
}
