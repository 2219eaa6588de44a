package usecase

import (
	"context"

	"currypoint/internal/domain/entity"
	"currypoint/internal/domain/repository"
)

// CustomerFilter narrows ListCustomers. Search matches name and email case
// insensitively and phone as a substring.
type CustomerFilter struct {
	Search string
}

// CreateCustomerInput is the admin form for a new customer. A nil Points
// grants the welcome bonus.
type CreateCustomerInput struct {
	Name     string
	Phone    string
	Email    string
	Password string
	Points   *int
}

// UpdateCustomerInput changes the editable fields of a customer. An empty
// Password keeps the current one.
type UpdateCustomerInput struct {
	Name     string
	Phone    string
	Email    string
	Password string
	Points   int
}

// CustomerOutput pairs the affected customer with the pending remote write.
type CustomerOutput struct {
	Customer *entity.Customer
	Write    *repository.WriteResult
}

// CustomerUsecase is the administrator's customer management surface.
type CustomerUsecase interface {
	ListCustomers(ctx context.Context, filter CustomerFilter) ([]entity.Customer, error)
	GetCustomer(ctx context.Context, id int) (*entity.Customer, error)
	CreateCustomer(ctx context.Context, input CreateCustomerInput) (*CustomerOutput, error)
	UpdateCustomer(ctx context.Context, id int, input UpdateCustomerInput) (*CustomerOutput, error)
	DeleteCustomer(ctx context.Context, id int) (*repository.WriteResult, error)
	ToggleCustomerActive(ctx context.Context, id int) (*CustomerOutput, error)
}
