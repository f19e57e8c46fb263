package ports

import (
	"context"

	"github.com/schooladmin/school-api/internal/core/domain"
)

// AuthService verifies presented credentials against the directory.
type AuthService interface {
	// Verify returns the principal for a matching username/secret pair.
	// Unknown usernames and mismatched secrets both fail with
	// domain.ErrInvalidCredentials so callers cannot probe for registered
	// usernames.
	Verify(ctx context.Context, username, secret string) (domain.Principal, error)
}
