package impl

import (
	"context"
	"testing"
	"time"

	"currypoint/config"
	"currypoint/internal/domain/entity"
	domainerrors "currypoint/internal/domain/errors"
	"currypoint/internal/domain/repository"
	mockSvc "currypoint/internal/mocks/service"
	"currypoint/internal/usecase"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type authServiceFixtures struct {
	service usecase.AuthUsecase
	ledger  repository.LedgerStore
	tokens  *mockSvc.MockTokenService
}

func createTestAuthService(t *testing.T) authServiceFixtures {
	return createTestAuthServiceOver(t, newTestLedger(t))
}

func createTestAuthServiceOver(t *testing.T, ledger repository.LedgerStore) authServiceFixtures {
	tokens := mockSvc.NewMockTokenService(t)

	service := NewAuthService(AuthServiceParams{
		Store:        ledger,
		Hasher:       newTestHasher(),
		TokenService: tokens,
		Config:       &config.Config{Auth: &config.AuthConfig{AdminPhone: "+91 9999999999"}},
		Logger:       newDiscardLogger(),
		Clock:        fixedClock,
	})

	return authServiceFixtures{service: service, ledger: ledger, tokens: tokens}
}

func TestAuthService_Register_Success(t *testing.T) {
	fx := createTestAuthService(t)
	ctx := context.Background()
	expiresAt := testNow.Add(24 * time.Hour)

	fx.tokens.EXPECT().GenerateToken(3, entity.RoleCustomer).Return("access-token", expiresAt, nil).Once()

	out, err := fx.service.Register(ctx, usecase.RegisterInput{
		Name:     "Priya Sharma",
		Phone:    "+91 9123456780",
		Email:    "priya@example.com",
		Password: "secret",
	})
	require.NoError(t, err)

	assert.Equal(t, "access-token", out.AccessToken)
	assert.Equal(t, expiresAt, out.ExpiresAt)
	assert.Equal(t, entity.RoleCustomer, out.Role)
	assert.Equal(t, 3, out.Customer.ID)
	assert.Equal(t, 50, out.Customer.Points, "welcome bonus")
	assert.True(t, out.Customer.IsActive)
	assert.False(t, out.Customer.IsVip)
	assert.Zero(t, out.Customer.TotalSpent)
	assert.Equal(t, "2025-06-01", out.Customer.CreatedAt)
	assert.Equal(t, "2025-06-01", out.Customer.LastVisit)
	assert.NotEqual(t, "secret", out.Customer.Password, "stored hashed")

	customers := fx.ledger.Customers(ctx)
	require.Len(t, customers, 3)
	assert.Equal(t, "Priya Sharma", customers[2].Name)
}

func TestAuthService_Register_Rejections(t *testing.T) {
	tests := []struct {
		name    string
		input   usecase.RegisterInput
		wantErr error
	}{
		{
			name:    "duplicate phone",
			input:   usecase.RegisterInput{Name: "John", Phone: "+91 9876543210", Email: "j@example.com", Password: "x"},
			wantErr: domainerrors.ErrPhoneAlreadyExists,
		},
		{
			name:    "missing email",
			input:   usecase.RegisterInput{Name: "John", Phone: "+91 9000000000", Password: "x"},
			wantErr: domainerrors.ErrValidationFailed,
		},
		{
			name:    "missing password",
			input:   usecase.RegisterInput{Name: "John", Phone: "+91 9000000000", Email: "j@example.com"},
			wantErr: domainerrors.ErrValidationFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fx := createTestAuthService(t)
			ctx := context.Background()

			_, err := fx.service.Register(ctx, tt.input)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Len(t, fx.ledger.Customers(ctx), 2, "nothing written")
		})
	}
}

func TestAuthService_Login(t *testing.T) {
	tests := []struct {
		name     string
		phone    string
		password string
		wantRole entity.Role
		wantID   int
	}{
		{name: "customer", phone: "+91 9876543210", password: "1234", wantRole: entity.RoleCustomer, wantID: 1},
		{name: "administrator", phone: "+91 9999999999", password: "admin", wantRole: entity.RoleAdmin, wantID: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fx := createTestAuthService(t)
			ctx := context.Background()

			fx.tokens.EXPECT().GenerateToken(tt.wantID, tt.wantRole).Return("token", testNow, nil).Once()

			out, err := fx.service.Login(ctx, usecase.LoginInput{Phone: tt.phone, Password: tt.password})
			require.NoError(t, err)
			assert.Equal(t, tt.wantRole, out.Role)
			assert.Equal(t, tt.wantID, out.Customer.ID)
			assert.Equal(t, "2025-06-01", out.Customer.LastVisit)

			customers := fx.ledger.Customers(ctx)
			assert.Equal(t, "2025-06-01", customers[entity.FindByID(customers, tt.wantID)].LastVisit)
		})
	}
}

func TestAuthService_Login_Rejections(t *testing.T) {
	fx := createTestAuthService(t)
	ctx := context.Background()

	_, err := fx.service.Login(ctx, usecase.LoginInput{Phone: "+91 9876543210", Password: "wrong"})
	assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)

	_, err = fx.service.Login(ctx, usecase.LoginInput{Phone: "+91 0000000000", Password: "1234"})
	assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)

	_, err = fx.service.Login(ctx, usecase.LoginInput{Phone: "", Password: "1234"})
	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)

	_, err = fx.ledger.Execute(ctx, func(unit repository.LedgerUnit) error {
		customers := unit.Customers(ctx)
		customers[0].IsActive = false
		unit.SetCustomers(customers)

		return nil
	})
	require.NoError(t, err)

	_, err = fx.service.Login(ctx, usecase.LoginInput{Phone: "+91 9876543210", Password: "1234"})
	assert.ErrorIs(t, err, domainerrors.ErrCustomerInactive)
}

func TestAuthService_Login_TokenFailure(t *testing.T) {
	fx := createTestAuthService(t)

	fx.tokens.EXPECT().GenerateToken(1, entity.RoleCustomer).Return("", time.Time{}, errors.New("signing failed")).Once()

	_, err := fx.service.Login(context.Background(), usecase.LoginInput{Phone: "+91 9876543210", Password: "1234"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "signing failed")
}

func TestAuthService_HybridLedger(t *testing.T) {
	ledger, remote := newHybridTestLedger(t)
	fx := createTestAuthServiceOver(t, ledger)
	ctx := context.Background()

	fx.tokens.EXPECT().GenerateToken(3, entity.RoleCustomer).Return("token", testNow, nil).Twice()

	_, err := fx.service.Register(ctx, usecase.RegisterInput{
		Name:     "Priya Sharma",
		Phone:    "+91 9123456780",
		Email:    "priya@example.com",
		Password: "secret",
	})
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		docs, err := remote.List(ctx, repository.CollectionCustomers)

		return err == nil && len(docs) == 3
	}, 2*time.Second, 10*time.Millisecond)

	out, err := fx.service.Login(ctx, usecase.LoginInput{Phone: "+91 9123456780", Password: "secret"})
	require.NoError(t, err)
	assert.Equal(t, 3, out.Customer.ID)
	assert.Equal(t, 50, out.Customer.Points)

	_, err = fx.service.Register(ctx, usecase.RegisterInput{Name: "Again", Phone: "+91 9123456780", Email: "again@example.com", Password: "x"})
	assert.ErrorIs(t, err, domainerrors.ErrPhoneAlreadyExists)
	assert.Len(t, fx.ledger.Customers(ctx), 3)
}
