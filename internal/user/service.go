package user

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"

	"petshop-be/internal/auth"
	"petshop-be/internal/logger"

	"go.uber.org/zap"
)

// TokenIssuer signs access tokens for authenticated sessions.
type TokenIssuer interface {
	Generate(s auth.Session) (string, error)
}

type Service interface {
	Register(ctx context.Context, name, email, password string) (string, *Profile, error)
	Login(ctx context.Context, email, password string) (string, *Profile, error)
	GetProfile(ctx context.Context, userID string) (*Profile, error)
	UpdateProfile(ctx context.Context, params UpdateProfileParams) (*Profile, error)
}

type service struct {
	repo   Repository
	tokens TokenIssuer
}

func NewService(repo Repository, tokens TokenIssuer) Service {
	return &service{repo: repo, tokens: tokens}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *service) Register(ctx context.Context, name, email, password string) (string, *Profile, error) {
	log := logger.FromCtx(ctx)

	email = normalizeEmail(email)
	name = strings.TrimSpace(name)
	if _, err := mail.ParseAddress(email); err != nil {
		return "", nil, fmt.Errorf("%w: invalid email", ErrInvalidInput)
	}
	if name == "" {
		return "", nil, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if len(password) < MinPasswordLength {
		return "", nil, fmt.Errorf("%w: password must be at least %d characters", ErrInvalidInput, MinPasswordLength)
	}

	hashed, err := HashPassword(password)
	if err != nil {
		log.Error("failed to hash password", zap.Error(err))
		return "", nil, err
	}

	u, err := s.repo.Create(ctx, email, hashed, auth.RoleUser)
	if err != nil {
		log.Error("failed to create user", zap.String("email", email), zap.Error(err))
		return "", nil, err
	}

	p, err := s.repo.CreateProfile(ctx, &Profile{ID: u.ID, Email: u.Email, Name: name, Role: u.Role})
	if err != nil {
		log.Error("failed to create profile", zap.String("user_id", u.ID), zap.Error(err))
		return "", nil, err
	}

	token, err := s.tokens.Generate(auth.Session{UserID: u.ID, Email: u.Email, Role: u.Role})
	if err != nil {
		log.Error("failed to generate jwt", zap.String("user_id", u.ID), zap.Error(err))
		return "", nil, err
	}

	log.Info("register service completed",
		zap.String("user_id", u.ID),
		zap.String("email", email),
	)
	return token, p, nil
}

func (s *service) Login(ctx context.Context, email, password string) (string, *Profile, error) {
	log := logger.FromCtx(ctx)

	u, err := s.repo.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			log.Info("login with unknown email")
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, err
	}

	if !CheckPasswordHash(password, u.Password) {
		log.Info("password not match", zap.String("user_id", u.ID))
		return "", nil, ErrInvalidCredentials
	}

	p, err := s.repo.GetProfile(ctx, u.ID)
	if errors.Is(err, ErrProfileNotFound) {
		// accounts created before profiles existed get one on first login
		p, err = s.repo.CreateProfile(ctx, &Profile{
			ID:    u.ID,
			Email: u.Email,
			Name:  strings.Split(u.Email, "@")[0],
			Role:  u.Role,
		})
	}
	if err != nil {
		return "", nil, err
	}

	token, err := s.tokens.Generate(auth.Session{UserID: u.ID, Email: u.Email, Role: u.Role})
	if err != nil {
		return "", nil, err
	}
	return token, p, nil
}

func (s *service) GetProfile(ctx context.Context, userID string) (*Profile, error) {
	return s.repo.GetProfile(ctx, userID)
}

func (s *service) UpdateProfile(ctx context.Context, params UpdateProfileParams) (*Profile, error) {
	if params.Name != nil {
		trimmed := strings.TrimSpace(*params.Name)
		if trimmed == "" {
			return nil, fmt.Errorf("%w: name is required", ErrInvalidInput)
		}
		params.Name = &trimmed
	}
	return s.repo.UpdateProfile(ctx, params)
}
