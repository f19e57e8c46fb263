package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/schooladmin/school-api/internal/core/domain"
	"github.com/schooladmin/school-api/internal/core/ports"
)

func TestStudentService_Create_Success(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewStudentService(repo, bcrypt.MinCost)

	view, err := svc.Create(context.Background(), ports.CreateStudentInput{
		Username: "s2",
		Password: "p",
		Name:     "S Two",
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if view.Username != "s2" || view.Name != "S Two" || view.Role != domain.RoleStudent {
		t.Fatalf("unexpected view: %+v", view)
	}

	stored, err := repo.FindByUsername(context.Background(), "s2")
	if err != nil {
		t.Fatalf("created user not stored: %v", err)
	}
	if stored.ID == "" {
		t.Fatalf("expected an opaque id to be minted")
	}
	if stored.Role != domain.RoleStudent {
		t.Fatalf("role must be fixed to STUDENT, got %s", stored.Role)
	}
	if stored.PasswordHash == "p" {
		t.Fatalf("password stored in plaintext")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("p")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
}

func TestStudentService_Create_EmptyUsername(t *testing.T) {
	svc := NewStudentService(newStubUserRepo(), bcrypt.MinCost)

	for _, username := range []string{"", "   "} {
		if _, err := svc.Create(context.Background(), ports.CreateStudentInput{Username: username, Password: "p"}); !errors.Is(err, domain.ErrStudentInvalid) {
			t.Fatalf("username %q: expected ErrStudentInvalid, got %v", username, err)
		}
	}
}

func TestStudentService_Create_Duplicate(t *testing.T) {
	repo := newStubUserRepo()
	repo.seed(t, "s1", "pass", "Test Student", domain.RoleStudent)
	svc := NewStudentService(repo, bcrypt.MinCost)

	_, err := svc.Create(context.Background(), ports.CreateStudentInput{Username: "s1", Password: "p", Name: "Dup"})
	if !errors.Is(err, domain.ErrUsernameTaken) {
		t.Fatalf("expected ErrUsernameTaken, got %v", err)
	}

	// No partial insert: the original record is untouched.
	stored, err := repo.FindByUsername(context.Background(), "s1")
	if err != nil {
		t.Fatalf("seed record lost: %v", err)
	}
	if stored.Name != "Test Student" {
		t.Fatalf("existing record modified: %+v", stored)
	}
}

func TestStudentService_Create_ConcurrentSameUsername(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewStudentService(repo, bcrypt.MinCost)

	const attempts = 16
	var wg sync.WaitGroup
	errs := make([]error, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.Create(context.Background(), ports.CreateStudentInput{Username: "race", Password: "p", Name: "Race"})
		}(i)
	}
	wg.Wait()

	successes := 0
	for _, err := range errs {
		switch {
		case err == nil:
			successes++
		case errors.Is(err, domain.ErrUsernameTaken):
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if successes != 1 {
		t.Fatalf("expected exactly one success, got %d", successes)
	}
}

func TestStudentService_List_ProjectsAllUsers(t *testing.T) {
	repo := newStubUserRepo()
	repo.seed(t, "t1", "pass", "Test Teacher", domain.RoleTeacher)
	repo.seed(t, "s1", "pass", "Test Student", domain.RoleStudent)
	svc := NewStudentService(repo, bcrypt.MinCost)

	views, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(views) != 2 {
		t.Fatalf("expected 2 views, got %d", len(views))
	}
	for _, v := range views {
		if v.Username == "" || v.Role == "" {
			t.Fatalf("incomplete view: %+v", v)
		}
	}
}

func TestStudentService_GetOwn(t *testing.T) {
	repo := newStubUserRepo()
	repo.seed(t, "s1", "pass", "Test Student", domain.RoleStudent)
	svc := NewStudentService(repo, bcrypt.MinCost)

	view, err := svc.GetOwn(context.Background(), domain.NewPrincipal("s1", domain.RoleStudent))
	if err != nil {
		t.Fatalf("GetOwn returned error: %v", err)
	}
	if view.Username != "s1" || view.Name != "Test Student" || view.Role != domain.RoleStudent {
		t.Fatalf("unexpected view: %+v", view)
	}
}
