package ports

import (
	"context"

	"github.com/csg33k/employee-registry/internal/domain"
)

// EmployeeRepository defines persistence operations behind the employees
// resource.
type EmployeeRepository interface {
	ListEmployees(ctx context.Context) ([]domain.Employee, error)
	// GetEmployee returns domain.ErrNotFound when no record has id.
	GetEmployee(ctx context.Context, id int64) (*domain.Employee, error)
	// CreateEmployee assigns e.ID.
	CreateEmployee(ctx context.Context, e *domain.Employee) error
	UpdateEmployee(ctx context.Context, e *domain.Employee) error
	DeleteEmployee(ctx context.Context, id int64) error
}

// EmployeeService is the record service the screens and the CLI use to
// reach the remote employees resource.
type EmployeeService interface {
	List(ctx context.Context) ([]domain.Employee, error)
	Get(ctx context.Context, id int64) (*domain.Employee, error)
	// Create sends e without an id; the server assigns one.
	Create(ctx context.Context, e *domain.Employee) error
	Update(ctx context.Context, e *domain.Employee) error
	Delete(ctx context.Context, id int64) error
}
