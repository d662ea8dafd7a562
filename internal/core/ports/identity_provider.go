package ports

import (
	"foodtruck/internal/core/domain/model/kernel"
)

// Roles carried in access tokens.
const (
	RoleUser     = "user"
	RoleOperator = "operator"
)

// Principal is the verified identity behind a request.
type Principal struct {
	UserID kernel.UUID
	Role   string
}

// IsOperator reports whether the principal may use the operator surface.
func (p Principal) IsOperator() bool {
	return p.Role == RoleOperator
}

// IdentityProvider verifies a bearer token and extracts the principal.
type IdentityProvider interface {
	Verify(token string) (Principal, error)
}
