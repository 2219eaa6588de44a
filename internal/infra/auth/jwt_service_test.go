package auth

import (
	"testing"
	"time"

	"currypoint/config"
	"currypoint/internal/domain/entity"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestConfig() *config.Config {
	cfg := &config.Config{Auth: &config.AuthConfig{TokenTTL: time.Hour}}
	cfg.SecretKey.Access = "test_access_secret_key_very_long_for_testing"

	return cfg
}

func TestJWTService_GenerateAndValidate(t *testing.T) {
	svc, err := NewJWTService(newTestConfig())
	require.NoError(t, err)

	token, expiresAt, err := svc.GenerateToken(7, entity.RoleAdmin)
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, 5*time.Second)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, 7, claims.CustomerID)
	assert.Equal(t, entity.RoleAdmin, claims.Role)
	assert.Equal(t, "7", claims.Subject)
}

func TestJWTService_MissingSecret(t *testing.T) {
	_, err := NewJWTService(&config.Config{})
	assert.Error(t, err)
}

func TestJWTService_RejectsGarbage(t *testing.T) {
	svc, err := NewJWTService(newTestConfig())
	require.NoError(t, err)

	claims, err := svc.ValidateToken("clearly-not-a-jwt")
	assert.Error(t, err)
	assert.Nil(t, claims)
}

func TestJWTService_RejectsOtherSecret(t *testing.T) {
	svc, err := NewJWTService(newTestConfig())
	require.NoError(t, err)

	other := newTestConfig()
	other.SecretKey.Access = "another_secret_entirely_for_this_test"
	otherSvc, err := NewJWTService(other)
	require.NoError(t, err)

	token, _, err := otherSvc.GenerateToken(1, entity.RoleCustomer)
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)
	assert.Error(t, err)
}

func TestJWTService_RejectsExpired(t *testing.T) {
	svc, err := NewJWTService(newTestConfig())
	require.NoError(t, err)

	impl := svc.(*jwtService)
	impl.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	token, _, err := impl.GenerateToken(1, entity.RoleCustomer)
	require.NoError(t, err)

	impl.now = time.Now
	_, err = svc.ValidateToken(token)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestJWTService_RejectsUnknownRole(t *testing.T) {
	svc, err := NewJWTService(newTestConfig())
	require.NoError(t, err)

	token, _, err := svc.GenerateToken(1, entity.Role("merchant"))
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)
	assert.Error(t, err)
}
