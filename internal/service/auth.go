package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"inkwell/internal/middleware"
	"inkwell/internal/models"
	"inkwell/internal/repository"
	"inkwell/internal/validation"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"
)

const (
	tokenIssuer   = "inkwell-api"
	tokenAudience = "inkwell-client"
	tokenLifetime = 7 * 24 * time.Hour
)

const msgEmailTaken = "Email has already been taken"

// AuthService registers users, verifies credentials and manages bearer tokens.
//
// Tokens are HS256 JWTs stamped with the user's revocation epoch at issue
// time. Logout bumps the epoch in Redis, which invalidates every outstanding
// token for that user at once while tokens issued afterwards stay valid.
type AuthService struct {
	users  repository.UserRepository
	rdb    *redis.Client
	secret string
}

// NewAuthService creates an AuthService backed by the given user store and
// Redis client.
func NewAuthService(users repository.UserRepository, rdb *redis.Client, secret string) *AuthService {
	return &AuthService{users: users, rdb: rdb, secret: secret}
}

// RegisterInput carries the register request fields.
type RegisterInput struct {
	Name                 string `json:"name"`
	Email                string `json:"email"`
	Password             string `json:"password"`
	PasswordConfirmation string `json:"password_confirmation"`
}

// LoginInput carries the login request fields.
type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register validates the input, creates the user with a hashed password and
// issues a token. Validation failure creates nothing.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*models.User, string, error) {
	errs := validation.Registration(in.Name, in.Email, in.Password, in.PasswordConfirmation)

	if len(errs["email"]) == 0 {
		exists, err := s.users.EmailExists(ctx, in.Email)
		if err != nil {
			return nil, "", err
		}
		if exists {
			errs.Add("email", msgEmailTaken)
		}
	}

	if errs.Any() {
		return nil, "", models.NewValidationError(errs)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", models.NewInternalError(err)
	}

	user := &models.User{
		Name:     in.Name,
		Email:    in.Email,
		Password: string(hashed),
	}
	if err := s.users.Create(ctx, user); err != nil {
		// A concurrent register can slip past the existence check; surface it
		// as the same field error.
		if errors.Is(err, repository.ErrDuplicateEmail) {
			errs.Add("email", msgEmailTaken)
			return nil, "", models.NewValidationError(errs)
		}
		return nil, "", err
	}

	token, err := s.IssueToken(ctx, user.ID)
	if err != nil {
		return nil, "", err
	}

	middleware.AuthTokensIssued.WithLabelValues("register").Inc()
	return user, token, nil
}

// Login validates the input and verifies credentials. A well-formed request
// with a wrong email or password yields a credentials error, distinct from
// field-level validation errors. Each successful login issues a fresh token;
// earlier tokens remain valid.
func (s *AuthService) Login(ctx context.Context, in LoginInput) (*models.User, string, error) {
	errs := validation.Credentials(in.Email, in.Password)
	if errs.Any() {
		return nil, "", models.NewValidationError(errs)
	}

	user, err := s.users.GetByEmail(ctx, in.Email)
	if err != nil {
		return nil, "", err
	}
	if user == nil {
		return nil, "", models.NewCredentialsError()
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(in.Password)); err != nil {
		return nil, "", models.NewCredentialsError()
	}

	token, err := s.IssueToken(ctx, user.ID)
	if err != nil {
		return nil, "", err
	}

	middleware.AuthTokensIssued.WithLabelValues("login").Inc()
	return user, token, nil
}

// Profile returns the authenticated user's record.
func (s *AuthService) Profile(ctx context.Context, userID uint) (*models.User, error) {
	return s.users.GetByID(ctx, userID)
}

// Logout revokes all outstanding tokens for the user by bumping the
// revocation epoch.
func (s *AuthService) Logout(ctx context.Context, userID uint) error {
	if s.rdb == nil {
		return models.NewInternalError(errors.New("token revocation store unavailable"))
	}
	if err := s.rdb.Incr(ctx, epochKey(userID)).Err(); err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

// IssueToken creates a signed bearer token for the user, stamped with the
// current revocation epoch.
func (s *AuthService) IssueToken(ctx context.Context, userID uint) (string, error) {
	if s.secret == "" {
		return "", models.NewInternalError(errors.New("JWT secret not configured"))
	}

	epoch, err := s.currentEpoch(ctx, userID)
	if err != nil {
		return "", models.NewInternalError(err)
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"sub":   strconv.FormatUint(uint64(userID), 10),
		"iss":   tokenIssuer,
		"aud":   tokenAudience,
		"iat":   now.Unix(),
		"nbf":   now.Unix(),
		"exp":   now.Add(tokenLifetime).Unix(),
		"jti":   generateJTI(),
		"epoch": epoch,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.secret))
	if err != nil {
		return "", models.NewInternalError(err)
	}
	return signed, nil
}

// VerifyToken parses and validates a bearer token and returns the user ID it
// authenticates. Tokens whose epoch is behind the user's current revocation
// epoch have been revoked by logout.
func (s *AuthService) VerifyToken(ctx context.Context, tokenString string) (uint, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return []byte(s.secret), nil
	})
	if err != nil || !token.Valid {
		return 0, models.NewUnauthorizedError("Invalid or expired token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, models.NewUnauthorizedError("Invalid token claims")
	}

	if issuer, issuerOk := claims["iss"].(string); !issuerOk || issuer != tokenIssuer {
		return 0, models.NewUnauthorizedError("Invalid token issuer")
	}
	if audience, audienceOk := claims["aud"].(string); !audienceOk || audience != tokenAudience {
		return 0, models.NewUnauthorizedError("Invalid token audience")
	}

	sub, ok := claims["sub"].(string)
	if !ok {
		return 0, models.NewUnauthorizedError("Invalid subject claim")
	}
	userID, err := strconv.ParseUint(sub, 10, 32)
	if err != nil {
		return 0, models.NewUnauthorizedError("Invalid user ID in token")
	}

	tokenEpoch := int64(0)
	if v, epochOk := claims["epoch"].(float64); epochOk {
		tokenEpoch = int64(v)
	}
	current, err := s.currentEpoch(ctx, uint(userID))
	if err != nil {
		return 0, models.NewInternalError(err)
	}
	if tokenEpoch < current {
		return 0, models.NewUnauthorizedError("Token has been revoked")
	}

	return uint(userID), nil
}

// currentEpoch reads the user's revocation epoch, zero when never logged out.
// Without Redis the epoch is always zero and revocation degrades to a no-op;
// Logout refuses to run in that state so the degradation is visible.
func (s *AuthService) currentEpoch(ctx context.Context, userID uint) (int64, error) {
	if s.rdb == nil {
		return 0, nil
	}
	val, err := s.rdb.Get(ctx, epochKey(userID)).Result()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	epoch, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return 0, err
	}
	return epoch, nil
}

func epochKey(userID uint) string {
	return fmt.Sprintf("auth:epoch:%d", userID)
}

// generateJTI creates a unique JWT ID to prevent replay attacks.
func generateJTI() string {
	return fmt.Sprintf("%d-%s", time.Now().Unix(), uuid.New().String()[:8])
}
