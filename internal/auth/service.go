package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/agriquote/agriquote-backend/internal/users"
	pkgAuth "github.com/agriquote/agriquote-backend/pkg/auth"
	"github.com/agriquote/agriquote-backend/pkg/config"
	"github.com/agriquote/agriquote-backend/pkg/db/models"
	pkgerrors "github.com/agriquote/agriquote-backend/pkg/errors"
	"github.com/agriquote/agriquote-backend/pkg/logger"
)

// Service defines the behavior needed by the auth controller.
type Service interface {
	Login(ctx context.Context, req LoginRequest) (*LoginResponse, error)
	Register(ctx context.Context, req RegisterRequest) (*LoginResponse, error)
}

type userRegistry interface {
	FindByPhone(ctx context.Context, phone string) (*models.User, error)
	Register(ctx context.Context, input users.RegisterInput) (*models.User, error)
}

type service struct {
	users  userRegistry
	jwtCfg config.JWTConfig
	logg   *logger.Logger
	now    func() time.Time
}

// ServiceParams bundles the dependencies required to build an auth service.
type ServiceParams struct {
	Users     userRegistry
	JWTConfig config.JWTConfig
	Logger    *logger.Logger
}

// NewService constructs a login service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Users == nil {
		return nil, fmt.Errorf("user registry is required")
	}
	if params.JWTConfig.Secret == "" {
		return nil, fmt.Errorf("jwt secret is required")
	}
	logg := params.Logger
	if logg == nil {
		logg = logger.Nop()
	}
	return &service{users: params.Users, jwtCfg: params.JWTConfig, logg: logg, now: time.Now}, nil
}

// Login is phone-only; there is no password step.
func (s *service) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	user, err := s.users.FindByPhone(ctx, req.Phone)
	if err != nil {
		return nil, err
	}
	resp, err := s.issue(user)
	if err != nil {
		return nil, err
	}
	s.logg.Info(s.logg.WithFields(ctx, map[string]any{"user_id": user.ID, "actor_role": string(user.Role)}), "auth.login")
	return resp, nil
}

// Register only accepts self-service roles.
func (s *service) Register(ctx context.Context, req RegisterRequest) (*LoginResponse, error) {
	if !req.Role.SelfService() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "role must be CUSTOMER or DEALER").
			WithDetails(map[string]any{"field": "role"})
	}
	user, err := s.users.Register(ctx, users.RegisterInput{
		Name:         req.Name,
		Phone:        req.Phone,
		Role:         req.Role,
		Address:      req.Address,
		ShowroomName: req.ShowroomName,
		Brands:       req.Brands,
	})
	if err != nil {
		return nil, err
	}
	return s.issue(user)
}

func (s *service) issue(user *models.User) (*LoginResponse, error) {
	now := s.now()
	token, err := pkgAuth.MintAccessToken(s.jwtCfg, now, pkgAuth.AccessTokenPayload{
		UserID: user.ID,
		Role:   user.Role,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mint jwt")
	}
	return &LoginResponse{
		AccessToken: token,
		ExpiresAt:   now.Add(time.Duration(s.jwtCfg.ExpirationMinutes) * time.Minute).Unix(),
		User:        user,
	}, nil
}
