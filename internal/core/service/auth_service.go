package service

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"

	"github.com/schooladmin/school-api/internal/core/domain"
	"github.com/schooladmin/school-api/internal/core/ports"
)

// dummyHash is a well-formed bcrypt hash compared against when the username
// is unknown, so that path costs roughly the same as a secret mismatch and
// does not reveal which usernames are registered.
const dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// AuthService verifies presented credentials against the user directory.
type AuthService struct {
	users ports.UserRepository
}

func NewAuthService(users ports.UserRepository) *AuthService {
	return &AuthService{users: users}
}

// Verify looks up the user and compares the presented secret against the
// stored hash. All failure modes collapse into domain.ErrInvalidCredentials.
func (s *AuthService) Verify(ctx context.Context, username, secret string) (domain.Principal, error) {
	if username == "" || secret == "" {
		return domain.Principal{}, domain.ErrInvalidCredentials
	}

	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			_ = bcrypt.CompareHashAndPassword([]byte(dummyHash), []byte(secret))
			return domain.Principal{}, domain.ErrInvalidCredentials
		}
		return domain.Principal{}, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(secret)) != nil {
		return domain.Principal{}, domain.ErrInvalidCredentials
	}

	return user.Principal(), nil
}
