// Package service provides business logic layer for user module.
package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/festy23/nations_league/internal/user/model"
	"github.com/festy23/nations_league/internal/user/repository"
	"github.com/festy23/nations_league/internal/user/token"
)

// Service defines the interface for account operations.
type Service interface {
	// Register creates a representative account and signs it in.
	Register(ctx context.Context, req *model.RegisterRequest) (*model.AuthResponse, error)

	// Login verifies credentials and issues a token.
	Login(ctx context.Context, req *model.LoginRequest) (*model.AuthResponse, error)

	// Me returns the account behind userID.
	Me(ctx context.Context, userID string) (*model.User, error)

	// Authenticate verifies a token and that its user still exists.
	Authenticate(ctx context.Context, rawToken string) (*model.Claims, error)

	// EnsureAdmin creates an admin account unless the e-mail is already registered.
	// The boolean reports whether a new account was created.
	EnsureAdmin(ctx context.Context, email, password string) (*model.User, bool, error)
}

type service struct {
	repo       repository.Repository
	tokens     *token.Manager
	bcryptCost int
	logger     *zap.SugaredLogger
}

// New creates a new user service instance.
func New(
	repo repository.Repository,
	tokens *token.Manager,
	bcryptCost int,
	logger *zap.SugaredLogger,
) Service {
	return &service{
		repo:       repo,
		tokens:     tokens,
		bcryptCost: bcryptCost,
		logger:     logger,
	}
}

// Register creates a representative account and signs it in.
func (s *service) Register(ctx context.Context, req *model.RegisterRequest) (*model.AuthResponse, error) {
	user, err := s.newUser(req.Email, req.Password, model.RoleRepresentative)
	if err != nil {
		return nil, err
	}
	user.Country = req.Country
	user.Manager = req.Manager
	user.FederationName = req.FederationName

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}
	s.logger.Infow("representative registered", "user_id", user.ID, "country", user.Country)

	return s.authResponse(user)
}

// Login verifies credentials and issues a token.
func (s *service) Login(ctx context.Context, req *model.LoginRequest) (*model.AuthResponse, error) {
	user, err := s.repo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			return nil, model.ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, model.ErrInvalidCredentials
	}

	return s.authResponse(user)
}

// Me returns the account behind userID.
func (s *service) Me(ctx context.Context, userID string) (*model.User, error) {
	return s.repo.GetByID(ctx, userID)
}

// Authenticate verifies a token and that its user still exists.
func (s *service) Authenticate(ctx context.Context, rawToken string) (*model.Claims, error) {
	claims, err := s.tokens.Parse(rawToken)
	if err != nil {
		return nil, err
	}

	user, err := s.repo.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			return nil, model.ErrInvalidToken
		}
		return nil, err
	}

	return &model.Claims{UserID: user.ID, Role: user.Role}, nil
}

// EnsureAdmin creates an admin account unless the e-mail is already registered.
func (s *service) EnsureAdmin(ctx context.Context, email, password string) (*model.User, bool, error) {
	existing, err := s.repo.GetByEmail(ctx, email)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, model.ErrUserNotFound) {
		return nil, false, err
	}

	user, err := s.newUser(email, password, model.RoleAdmin)
	if err != nil {
		return nil, false, err
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, false, err
	}
	s.logger.Infow("admin account created", "user_id", user.ID, "email", user.Email)

	return user, true, nil
}

func (s *service) newUser(email, password string, role model.Role) (*model.User, error) {
	email = model.NormalizeEmail(email)
	if email == "" {
		return nil, model.ErrInvalidEmail
	}
	if len(password) < model.MinPasswordLength {
		return nil, model.ErrWeakPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	return &model.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
	}, nil
}

func (s *service) authResponse(user *model.User) (*model.AuthResponse, error) {
	signed, err := s.tokens.Issue(user.ID, user.Role)
	if err != nil {
		return nil, err
	}
	return &model.AuthResponse{
		ID:    user.ID,
		Token: signed,
		Role:  user.Role,
		Email: user.Email,
	}, nil
}
