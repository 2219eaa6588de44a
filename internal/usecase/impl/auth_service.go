package impl

import (
	"context"
	"log/slog"

	"currypoint/config"
	deliverycontext "currypoint/internal/delivery/context"
	"currypoint/internal/domain/entity"
	domainerrors "currypoint/internal/domain/errors"
	"currypoint/internal/domain/repository"
	"currypoint/internal/domain/service"
	"currypoint/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// authService implements the AuthUsecase interface.
type authService struct {
	store        repository.LedgerStore
	hasher       service.PasswordHasher
	tokenService service.TokenService
	adminPhone   string
	now          Clock
	logger       *slog.Logger
}

// AuthServiceParams holds dependencies for AuthService, injected by Fx.
type AuthServiceParams struct {
	fx.In

	Store        repository.LedgerStore
	Hasher       service.PasswordHasher
	TokenService service.TokenService
	Config       *config.Config
	Logger       *slog.Logger
	Clock        Clock `optional:"true"`
}

// NewAuthService is the constructor for authService.
func NewAuthService(params AuthServiceParams) usecase.AuthUsecase {
	adminPhone := ""
	if params.Config != nil && params.Config.Auth != nil {
		adminPhone = params.Config.Auth.AdminPhone
	}

	return &authService{
		store:        params.Store,
		hasher:       params.Hasher,
		tokenService: params.TokenService,
		adminPhone:   adminPhone,
		now:          clockOrDefault(params.Clock),
		logger:       params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *authService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// roleFor resolves the role a customer acts in.
func (srv *authService) roleFor(customer *entity.Customer) entity.Role {
	if srv.adminPhone != "" && customer.Phone == srv.adminPhone {
		return entity.RoleAdmin
	}

	return entity.RoleCustomer
}

// Register creates a customer holding the welcome bonus and logs them in.
func (srv *authService) Register(ctx context.Context, input usecase.RegisterInput) (*usecase.AuthOutput, error) {
	if err := requireFields(map[string]string{
		"name":     input.Name,
		"phone":    input.Phone,
		"email":    input.Email,
		"password": input.Password,
	}); err != nil {
		return nil, err
	}

	// Hashed before taking the ledger lock.
	hashed, err := srv.hasher.Hash(input.Password)
	if err != nil {
		srv.log(ctx).Error("Failed to hash password during registration", slog.Any("error", err))

		return nil, errors.Wrap(domainerrors.ErrPasswordHashFailed, err.Error())
	}

	var registered entity.Customer
	_, err = srv.store.Execute(ctx, func(unit repository.LedgerUnit) error {
		customers := unit.Customers(ctx)
		if phoneTaken(customers, input.Phone, 0) {
			return domainerrors.ErrPhoneAlreadyExists
		}

		today := entity.FormatDate(srv.now())
		registered = entity.Customer{
			ID:        entity.NextID(customers),
			Name:      input.Name,
			Phone:     input.Phone,
			Email:     input.Email,
			Password:  hashed,
			Points:    unit.Settings(ctx).WelcomeBonusPoints,
			IsActive:  true,
			CreatedAt: today,
			LastVisit: today,
		}
		unit.SetCustomers(append(customers, registered))

		return nil
	})
	if err != nil {
		srv.log(ctx).Warn("Registration rejected", slog.String("phone", input.Phone), slog.Any("error", err))

		return nil, err
	}

	srv.log(ctx).Info("Customer registered", slog.Int("customerID", registered.ID))

	return srv.issue(ctx, &registered)
}

// Login checks the credentials of an active customer and records the visit.
func (srv *authService) Login(ctx context.Context, input usecase.LoginInput) (*usecase.AuthOutput, error) {
	if err := requireFields(map[string]string{"phone": input.Phone, "password": input.Password}); err != nil {
		return nil, err
	}

	var customer entity.Customer
	_, err := srv.store.Execute(ctx, func(unit repository.LedgerUnit) error {
		customers := unit.Customers(ctx)
		idx := -1
		for i := range customers {
			if customers[i].Phone == input.Phone {
				idx = i

				break
			}
		}
		if idx < 0 || !srv.hasher.Check(input.Password, customers[idx].Password) {
			return domainerrors.ErrInvalidCredentials
		}
		if !customers[idx].IsActive {
			return domainerrors.ErrCustomerInactive
		}

		customers[idx].LastVisit = entity.FormatDate(srv.now())
		unit.SetCustomers(customers)
		customer = customers[idx]

		return nil
	})
	if err != nil {
		srv.log(ctx).Warn("Login rejected", slog.String("phone", input.Phone), slog.Any("error", err))

		return nil, err
	}

	return srv.issue(ctx, &customer)
}

func (srv *authService) issue(ctx context.Context, customer *entity.Customer) (*usecase.AuthOutput, error) {
	role := srv.roleFor(customer)

	token, expiresAt, err := srv.tokenService.GenerateToken(customer.ID, role)
	if err != nil {
		srv.log(ctx).Error("Failed to generate access token", slog.Int("customerID", customer.ID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to generate access token")
	}

	return &usecase.AuthOutput{
		Customer:    customer,
		Role:        role,
		AccessToken: token,
		ExpiresAt:   expiresAt,
	}, nil
}
