package usecase

import (
	"context"
	"testing"

	"rental-store/internal/data/repository/repotest"
	"rental-store/internal/dto/request"
	"rental-store/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newUserService(t *testing.T) (UserService, utils.TokenManager) {
	t.Helper()

	tokens, err := utils.NewTokenManager(utils.JWTConfig{Secret: "test-secret", ExpiryHours: 1})
	require.NoError(t, err)

	_, repo := repotest.New()
	return NewUserService(repo.User, tokens, zap.NewNop()), tokens
}

func TestUserService(t *testing.T) {
	ctx := context.Background()

	t.Run("register issues a token for the new user", func(t *testing.T) {
		svc, tokens := newUserService(t)

		resp, err := svc.Register(ctx, &request.RegisterRequest{Name: "user one", Email: "user1@example.com", Password: "12345"})
		require.NoError(t, err)
		assert.Equal(t, "user1@example.com", resp.User.Email)

		identity, err := tokens.Validate(resp.Token)
		require.NoError(t, err)
		assert.Equal(t, resp.User.ID, identity.UserID.Hex())
		assert.False(t, identity.IsAdmin)

		profile, err := svc.GetProfile(ctx, identity.UserID)
		require.NoError(t, err)
		assert.Equal(t, "user one", profile.Name)
	})

	t.Run("duplicate email", func(t *testing.T) {
		svc, _ := newUserService(t)

		_, err := svc.Register(ctx, &request.RegisterRequest{Name: "user one", Email: "user1@example.com", Password: "12345"})
		require.NoError(t, err)

		_, err = svc.Register(ctx, &request.RegisterRequest{Name: "user two", Email: "USER1@example.com", Password: "12345"})
		require.ErrorIs(t, err, ErrInvalidOperation)
		assert.EqualError(t, err, "User already registered.")
	})

	t.Run("login", func(t *testing.T) {
		svc, tokens := newUserService(t)

		registered, err := svc.Register(ctx, &request.RegisterRequest{Name: "user one", Email: "user1@example.com", Password: "secret1"})
		require.NoError(t, err)

		token, err := svc.Login(ctx, &request.LoginRequest{Email: "user1@example.com", Password: "secret1"})
		require.NoError(t, err)
		identity, err := tokens.Validate(token)
		require.NoError(t, err)
		assert.Equal(t, registered.User.ID, identity.UserID.Hex())

		_, err = svc.Login(ctx, &request.LoginRequest{Email: "user1@example.com", Password: "wrong-password"})
		assert.EqualError(t, err, "Invalid email or password.")

		_, err = svc.Login(ctx, &request.LoginRequest{Email: "nobody@example.com", Password: "secret1"})
		assert.EqualError(t, err, "Invalid email or password.")
	})

	t.Run("register validation", func(t *testing.T) {
		svc, _ := newUserService(t)

		_, err := svc.Register(ctx, &request.RegisterRequest{Name: "abc", Email: "not-an-email", Password: "123"})
		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Contains(t, verr.Fields, "name")
		assert.Contains(t, verr.Fields, "email")
		assert.Contains(t, verr.Fields, "password")
	})
}
