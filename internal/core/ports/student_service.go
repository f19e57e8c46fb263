package ports

import (
	"context"

	"github.com/schooladmin/school-api/internal/core/domain"
)

// StudentView is the public projection of a user record. The password hash
// never appears here.
type StudentView struct {
	Username string      `json:"username"`
	Name     string      `json:"name"`
	Role     domain.Role `json:"role"`
}

// CreateStudentInput carries the fields of a create request.
type CreateStudentInput struct {
	Username string
	Password string
	Name     string
}

// StudentService implements the student lifecycle operations. Authorization
// happens before these are called; the service still owns input validation
// and the atomicity of creation.
type StudentService interface {
	List(ctx context.Context) ([]StudentView, error)
	GetOwn(ctx context.Context, principal domain.Principal) (StudentView, error)
	Create(ctx context.Context, in CreateStudentInput) (StudentView, error)
}
