package auth

import "atrium/internal/domain/models"

// Verifier validates bearer tokens issued by the external identity
// collaborator and extracts the requester's claims. This core never issues
// credentials of its own.
type Verifier interface {
	VerifyToken(tokenString string) (*models.Claims, error)
	Close() error
}
