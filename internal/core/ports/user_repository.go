package ports

import (
	"context"

	"github.com/schooladmin/school-api/internal/core/domain"
)

// UserRepository is the directory of identity records, keyed uniquely by
// username. Create must treat the uniqueness check and the insert as one
// atomic unit: concurrent creates with the same username yield exactly one
// success, the rest fail with domain.ErrUsernameTaken.
type UserRepository interface {
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	FindAll(ctx context.Context) ([]*domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
}
