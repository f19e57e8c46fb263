package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/schooladmin/school-api/internal/core/domain"
	"github.com/schooladmin/school-api/internal/core/ports"
)

// StudentService implements the student lifecycle against the directory.
type StudentService struct {
	users      ports.UserRepository
	bcryptCost int
}

func NewStudentService(users ports.UserRepository, bcryptCost int) *StudentService {
	if bcryptCost <= 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &StudentService{users: users, bcryptCost: bcryptCost}
}

func projectUser(u *domain.User) ports.StudentView {
	return ports.StudentView{
		Username: u.Username,
		Name:     u.Name,
		Role:     u.Role,
	}
}

// List returns every directory record projected to its public view.
func (s *StudentService) List(ctx context.Context) ([]ports.StudentView, error) {
	users, err := s.users.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	views := make([]ports.StudentView, 0, len(users))
	for _, u := range users {
		views = append(views, projectUser(u))
	}
	return views, nil
}

// GetOwn returns the caller's own projected record.
func (s *StudentService) GetOwn(ctx context.Context, principal domain.Principal) (ports.StudentView, error) {
	user, err := s.users.FindByUsername(ctx, principal.Username)
	if err != nil {
		return ports.StudentView{}, err
	}
	return projectUser(user), nil
}

// Create hashes the password and inserts a new STUDENT record. The
// uniqueness check is the repository's atomic Create; a duplicate surfaces
// as domain.ErrUsernameTaken and leaves the directory unchanged.
func (s *StudentService) Create(ctx context.Context, in ports.CreateStudentInput) (ports.StudentView, error) {
	if strings.TrimSpace(in.Username) == "" {
		return ports.StudentView{}, fmt.Errorf("%w: username is required", domain.ErrStudentInvalid)
	}
	if in.Password == "" {
		return ports.StudentView{}, fmt.Errorf("%w: password is required", domain.ErrStudentInvalid)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.bcryptCost)
	if err != nil {
		return ports.StudentView{}, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now().UTC()
	user := &domain.User{
		ID:           uuid.NewString(),
		Username:     in.Username,
		Name:         in.Name,
		PasswordHash: string(hash),
		Role:         domain.RoleStudent,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		return ports.StudentView{}, err
	}
	return projectUser(created), nil
}
