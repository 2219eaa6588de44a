package impl

import (
	"context"
	"log/slog"
	"slices"
	"strings"

	deliverycontext "currypoint/internal/delivery/context"
	"currypoint/internal/domain/entity"
	domainerrors "currypoint/internal/domain/errors"
	"currypoint/internal/domain/repository"
	"currypoint/internal/domain/service"
	"currypoint/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

type customerService struct {
	store  repository.LedgerStore
	hasher service.PasswordHasher
	now    Clock
	logger *slog.Logger
}

// CustomerServiceParams holds dependencies for CustomerService, injected by Fx.
type CustomerServiceParams struct {
	fx.In

	Store  repository.LedgerStore
	Hasher service.PasswordHasher
	Logger *slog.Logger
	Clock  Clock `optional:"true"`
}

func NewCustomerService(params CustomerServiceParams) usecase.CustomerUsecase {
	return &customerService{
		store:  params.Store,
		hasher: params.Hasher,
		now:    clockOrDefault(params.Clock),
		logger: params.Logger,
	}
}

func (srv *customerService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

func (srv *customerService) ListCustomers(ctx context.Context, filter usecase.CustomerFilter) ([]entity.Customer, error) {
	customers := srv.store.Customers(ctx)

	term := strings.TrimSpace(filter.Search)
	if term == "" {
		return customers, nil
	}

	lower := strings.ToLower(term)

	return slices.DeleteFunc(customers, func(c entity.Customer) bool {
		return !strings.Contains(strings.ToLower(c.Name), lower) &&
			!strings.Contains(c.Phone, term) &&
			!strings.Contains(strings.ToLower(c.Email), lower)
	}), nil
}

func (srv *customerService) GetCustomer(ctx context.Context, id int) (*entity.Customer, error) {
	customers := srv.store.Customers(ctx)

	idx, err := customerIndex(customers, id)
	if err != nil {
		return nil, err
	}

	return &customers[idx], nil
}

// CreateCustomer adds an active customer. Without explicit points the welcome bonus is granted.
func (srv *customerService) CreateCustomer(ctx context.Context, input usecase.CreateCustomerInput) (*usecase.CustomerOutput, error) {
	if err := requireFields(map[string]string{
		"name":     input.Name,
		"phone":    input.Phone,
		"email":    input.Email,
		"password": input.Password,
	}); err != nil {
		return nil, err
	}
	if input.Points != nil && *input.Points < 0 {
		return nil, domainerrors.ErrValidationFailed.WithDetails("points must not be negative")
	}

	hashed, err := srv.hasher.Hash(input.Password)
	if err != nil {
		return nil, errors.Wrap(domainerrors.ErrPasswordHashFailed, err.Error())
	}

	var created entity.Customer
	result, err := srv.store.Execute(ctx, func(unit repository.LedgerUnit) error {
		customers := unit.Customers(ctx)
		if phoneTaken(customers, input.Phone, 0) {
			return domainerrors.ErrPhoneAlreadyExists
		}

		points := unit.Settings(ctx).WelcomeBonusPoints
		if input.Points != nil && *input.Points > 0 {
			points = *input.Points
		}

		today := entity.FormatDate(srv.now())
		created = entity.Customer{
			ID:        entity.NextID(customers),
			Name:      input.Name,
			Phone:     input.Phone,
			Email:     input.Email,
			Password:  hashed,
			Points:    points,
			IsActive:  true,
			CreatedAt: today,
			LastVisit: today,
		}
		unit.SetCustomers(append(customers, created))

		return nil
	})
	if err != nil {
		return nil, err
	}

	srv.log(ctx).Info("Customer created", slog.Int("customerID", created.ID))

	return &usecase.CustomerOutput{Customer: &created, Write: result}, nil
}

func (srv *customerService) UpdateCustomer(ctx context.Context, id int, input usecase.UpdateCustomerInput) (*usecase.CustomerOutput, error) {
	if err := requireFields(map[string]string{
		"name":  input.Name,
		"phone": input.Phone,
		"email": input.Email,
	}); err != nil {
		return nil, err
	}
	if input.Points < 0 {
		return nil, domainerrors.ErrValidationFailed.WithDetails("points must not be negative")
	}

	hashed := ""
	if input.Password != "" {
		var err error
		if hashed, err = srv.hasher.Hash(input.Password); err != nil {
			return nil, errors.Wrap(domainerrors.ErrPasswordHashFailed, err.Error())
		}
	}

	var updated entity.Customer
	result, err := srv.store.Execute(ctx, func(unit repository.LedgerUnit) error {
		customers := unit.Customers(ctx)

		idx, err := customerIndex(customers, id)
		if err != nil {
			return err
		}
		if phoneTaken(customers, input.Phone, id) {
			return domainerrors.ErrPhoneAlreadyExists
		}

		c := &customers[idx]
		c.Name = input.Name
		c.Phone = input.Phone
		c.Email = input.Email
		c.Points = input.Points
		if hashed != "" {
			c.Password = hashed
		}
		unit.SetCustomers(customers)
		updated = *c

		return nil
	})
	if err != nil {
		return nil, err
	}

	srv.log(ctx).Info("Customer updated", slog.Int("customerID", id))

	return &usecase.CustomerOutput{Customer: &updated, Write: result}, nil
}

func (srv *customerService) DeleteCustomer(ctx context.Context, id int) (*repository.WriteResult, error) {
	result, err := srv.store.Execute(ctx, func(unit repository.LedgerUnit) error {
		customers := unit.Customers(ctx)

		idx, err := customerIndex(customers, id)
		if err != nil {
			return err
		}
		unit.SetCustomers(slices.Delete(customers, idx, idx+1))

		return nil
	})
	if err != nil {
		return nil, err
	}

	srv.log(ctx).Info("Customer deleted", slog.Int("customerID", id))

	return result, nil
}

func (srv *customerService) ToggleCustomerActive(ctx context.Context, id int) (*usecase.CustomerOutput, error) {
	var toggled entity.Customer
	result, err := srv.store.Execute(ctx, func(unit repository.LedgerUnit) error {
		customers := unit.Customers(ctx)

		idx, err := customerIndex(customers, id)
		if err != nil {
			return err
		}
		customers[idx].IsActive = !customers[idx].IsActive
		unit.SetCustomers(customers)
		toggled = customers[idx]

		return nil
	})
	if err != nil {
		return nil, err
	}

	srv.log(ctx).Info("Customer active state toggled", slog.Int("customerID", id), slog.Bool("active", toggled.IsActive))

	return &usecase.CustomerOutput{Customer: &toggled, Write: result}, nil
}
