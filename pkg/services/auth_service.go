package services

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	srvErrors "sqlrunner/pkg/errors"
	"sqlrunner/pkg/models"
	"sqlrunner/pkg/repositories"
)

// authService implements AuthService with bcrypt password hashing and HS256
// bearer tokens.
type authService struct {
	users    repositories.UserRepository
	secret   []byte
	tokenTTL time.Duration
	logger   zerolog.Logger
}

// NewAuthService creates a new auth service. tokenTTL bounds the lifetime of
// issued tokens.
func NewAuthService(users repositories.UserRepository, secret string, tokenTTL time.Duration, logger zerolog.Logger) AuthService {
	return &authService{
		users:    users,
		secret:   []byte(secret),
		tokenTTL: tokenTTL,
		logger:   logger,
	}
}

// Signup registers a new account. Username and email must be unique.
func (s *authService) Signup(ctx context.Context, req *models.SignupRequest) (*models.User, error) {
	if req.Username == "" || req.Password == "" {
		return nil, srvErrors.New(srvErrors.CodeInvalidRequest, "username and password are required")
	}

	if _, err := s.users.GetByUsername(ctx, req.Username); err == nil {
		return nil, srvErrors.ErrUserExists
	} else if !srvErrors.IsNotFound(err) {
		return nil, err
	}

	if req.Email != "" {
		if _, err := s.users.GetByEmail(ctx, req.Email); err == nil {
			return nil, srvErrors.ErrEmailExists
		} else if !srvErrors.IsNotFound(err) {
			return nil, err
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, srvErrors.Wrap(err, srvErrors.CodeInternal, "failed to hash password")
	}

	record := &models.UserRecord{
		User: models.User{
			UserID:    uuid.NewString(),
			Username:  req.Username,
			Email:     req.Email,
			FullName:  req.FullName,
			CreatedAt: time.Now().UTC(),
			IsActive:  true,
		},
		HashedPassword: string(hash),
	}
	if err := s.users.Create(ctx, record); err != nil {
		return nil, err
	}

	s.logger.Info().Str("username", req.Username).Msg("New user registered")

	user := record.User
	return &user, nil
}

// Login validates credentials and issues a bearer token.
func (s *authService) Login(ctx context.Context, username, password string) (*models.LoginResponse, error) {
	record, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if srvErrors.IsNotFound(err) {
			return nil, srvErrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(record.HashedPassword), []byte(password)) != nil {
		return nil, srvErrors.ErrInvalidCredentials
	}

	if !record.IsActive {
		return nil, srvErrors.ErrUserInactive
	}

	token, err := s.mintToken(username)
	if err != nil {
		return nil, srvErrors.Wrap(err, srvErrors.CodeInternal, "failed to sign token")
	}

	s.logger.Info().Str("username", username).Msg("User logged in")

	return &models.LoginResponse{
		AccessToken: token,
		TokenType:   "bearer",
		Username:    record.Username,
		FullName:    record.FullName,
	}, nil
}

// VerifyToken validates a bearer token and returns the subject. The subject
// must still exist as an active account.
func (s *authService) VerifyToken(ctx context.Context, tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, errors.New("unexpected signing method")
		}
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid {
		return "", srvErrors.ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", srvErrors.ErrInvalidToken
	}
	subject, ok := claims["sub"].(string)
	if !ok || subject == "" {
		return "", srvErrors.ErrInvalidToken
	}

	record, err := s.users.GetByUsername(ctx, subject)
	if err != nil {
		if srvErrors.IsNotFound(err) {
			return "", srvErrors.ErrUserNotFound
		}
		return "", err
	}
	if !record.IsActive {
		return "", srvErrors.ErrUserInactive
	}

	return subject, nil
}

// GetUser returns the public profile for a username.
func (s *authService) GetUser(ctx context.Context, username string) (*models.User, error) {
	record, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	user := record.User
	return &user, nil
}

func (s *authService) mintToken(username string) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": username,
		"iat": now.Unix(),
		"exp": now.Add(s.tokenTTL).Unix(),
	})
	return token.SignedString(s.secret)
}
