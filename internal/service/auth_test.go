package service

import (
	"context"
	"testing"

	"inkwell/internal/models"
	"inkwell/internal/repository"
	"inkwell/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func setupAuthService(t *testing.T) *AuthService {
	t.Helper()
	db := testutil.SetupTestDB(t)
	_, rdb := testutil.SetupRedis(t)
	return NewAuthService(repository.NewUserRepository(db), rdb, "test-secret")
}

func registerInput() RegisterInput {
	return RegisterInput{
		Name:                 "Jordan Reyes",
		Email:                "jordan@example.com",
		Password:             "secret1",
		PasswordConfirmation: "secret1",
	}
}

func TestRegister(t *testing.T) {
	svc := setupAuthService(t)
	ctx := context.Background()

	user, token, err := svc.Register(ctx, registerInput())
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.NotZero(t, user.ID)
	assert.NotEmpty(t, token)

	// Password must be stored hashed, never verbatim.
	assert.NotEqual(t, "secret1", user.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("secret1")))

	// The issued token authenticates as the new user.
	userID, err := svc.VerifyToken(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, userID)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc := setupAuthService(t)
	ctx := context.Background()

	_, _, err := svc.Register(ctx, registerInput())
	require.NoError(t, err)

	_, _, err = svc.Register(ctx, registerInput())
	require.Error(t, err)
	assert.True(t, models.IsCode(err, models.CodeValidation))
	assert.Contains(t, models.FieldsOf(err)["email"], "Email has already been taken")
}

func TestRegisterValidationFailureCreatesNothing(t *testing.T) {
	db := testutil.SetupTestDB(t)
	_, rdb := testutil.SetupRedis(t)
	svc := NewAuthService(repository.NewUserRepository(db), rdb, "test-secret")
	ctx := context.Background()

	in := registerInput()
	in.PasswordConfirmation = "different"
	_, _, err := svc.Register(ctx, in)
	require.Error(t, err)
	assert.True(t, models.IsCode(err, models.CodeValidation))

	var count int64
	require.NoError(t, db.Model(&models.User{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestLogin(t *testing.T) {
	svc := setupAuthService(t)
	ctx := context.Background()

	registered, _, err := svc.Register(ctx, registerInput())
	require.NoError(t, err)

	user, token, err := svc.Login(ctx, LoginInput{Email: "jordan@example.com", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, registered.ID, user.ID)
	assert.NotEmpty(t, token)
}

func TestLoginWrongPassword(t *testing.T) {
	svc := setupAuthService(t)
	ctx := context.Background()

	_, _, err := svc.Register(ctx, registerInput())
	require.NoError(t, err)

	_, _, err = svc.Login(ctx, LoginInput{Email: "jordan@example.com", Password: "wrong-pass"})
	require.Error(t, err)
	assert.True(t, models.IsCode(err, models.CodeCredentials))
}

func TestLoginUnknownEmail(t *testing.T) {
	svc := setupAuthService(t)

	_, _, err := svc.Login(context.Background(), LoginInput{Email: "ghost@example.com", Password: "secret1"})
	require.Error(t, err)
	assert.True(t, models.IsCode(err, models.CodeCredentials),
		"unknown email must be indistinguishable from a wrong password")
}

func TestLoginMalformedInputIsValidationNotCredentials(t *testing.T) {
	svc := setupAuthService(t)

	_, _, err := svc.Login(context.Background(), LoginInput{Email: "not-an-email", Password: "abc"})
	require.Error(t, err)
	assert.True(t, models.IsCode(err, models.CodeValidation))
}

func TestLogoutRevokesAllTokens(t *testing.T) {
	svc := setupAuthService(t)
	ctx := context.Background()

	user, first, err := svc.Register(ctx, registerInput())
	require.NoError(t, err)
	_, second, err := svc.Login(ctx, LoginInput{Email: "jordan@example.com", Password: "secret1"})
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, user.ID))

	for _, token := range []string{first, second} {
		_, err := svc.VerifyToken(ctx, token)
		require.Error(t, err)
		assert.True(t, models.IsCode(err, models.CodeUnauthorized))
	}

	// A fresh login after logout issues a valid token.
	_, fresh, err := svc.Login(ctx, LoginInput{Email: "jordan@example.com", Password: "secret1"})
	require.NoError(t, err)
	userID, err := svc.VerifyToken(ctx, fresh)
	require.NoError(t, err)
	assert.Equal(t, user.ID, userID)
}

func TestLogoutWithoutRedisFails(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := NewAuthService(repository.NewUserRepository(db), nil, "test-secret")

	err := svc.Logout(context.Background(), 1)
	require.Error(t, err)
	assert.True(t, models.IsCode(err, models.CodeInternal))
}

func TestVerifyTokenRejectsGarbage(t *testing.T) {
	svc := setupAuthService(t)

	for _, token := range []string{"", "not-a-jwt", "aaa.bbb.ccc"} {
		_, err := svc.VerifyToken(context.Background(), token)
		require.Error(t, err)
		assert.True(t, models.IsCode(err, models.CodeUnauthorized))
	}
}

func TestVerifyTokenRejectsWrongSecret(t *testing.T) {
	db := testutil.SetupTestDB(t)
	_, rdb := testutil.SetupRedis(t)
	users := repository.NewUserRepository(db)
	issuer := NewAuthService(users, rdb, "secret-a")
	verifier := NewAuthService(users, rdb, "secret-b")
	ctx := context.Background()

	token, err := issuer.IssueToken(ctx, 42)
	require.NoError(t, err)

	_, err = verifier.VerifyToken(ctx, token)
	require.Error(t, err)
	assert.True(t, models.IsCode(err, models.CodeUnauthorized))
}

func TestProfile(t *testing.T) {
	svc := setupAuthService(t)
	ctx := context.Background()

	user, _, err := svc.Register(ctx, registerInput())
	require.NoError(t, err)

	got, err := svc.Profile(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.Email, got.Email)

	_, err = svc.Profile(ctx, 9999)
	require.Error(t, err)
	assert.True(t, models.IsCode(err, models.CodeNotFound))
}
