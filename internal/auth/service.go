// Package auth
package auth

import (
	"context"
	"crypto/subtle"
	"time"

	"uptimebar/internal/config"
	"uptimebar/internal/domain"
	"uptimebar/internal/logger"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

type Service struct {
	repo domain.UserRepository
	cfg  *config.Config
	log  logger.Logger
}

func NewService(repo domain.UserRepository, cfg *config.Config, log logger.Logger) *Service {
	return &Service{repo: repo, cfg: cfg, log: log}
}

func (s *Service) Login(ctx context.Context, req domain.LoginRequest) (*domain.AuthResponse, error) {
	user, err := s.repo.GetUserByName(ctx, req.Username)
	if err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	claims := jwt.MapClaims{
		"sub":  user.ID,
		"name": user.Username,
		"role": string(user.Role),
		"exp":  time.Now().Add(s.cfg.JWTExpiry).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		return nil, err
	}

	return &domain.AuthResponse{
		User:        user,
		AccessToken: tokenString,
	}, nil
}

// PrincipalFromToken resolves a bearer credential. The static widget token
// is checked first, in constant time, then the credential is parsed as a
// signed JWT.
func (s *Service) PrincipalFromToken(token string) (domain.Principal, error) {
	if s.cfg.WidgetAPIToken != "" &&
		subtle.ConstantTimeCompare([]byte(token), []byte(s.cfg.WidgetAPIToken)) == 1 {
		return domain.Principal{Name: "widget", Role: domain.RoleWidget}, nil
	}

	claims, err := domain.ValidateToken(token, s.cfg.JWTSecret)
	if err != nil {
		return domain.Principal{}, domain.ErrUnauthorized
	}

	name, _ := claims["name"].(string)
	rawRole, _ := claims["role"].(string)

	role, ok := domain.ParseRole(rawRole)
	if !ok {
		return domain.Principal{}, domain.ErrUnauthorized
	}

	return domain.Principal{Name: name, Role: role}, nil
}

// EnsureAdmin seeds the first operator account. Without a configured
// password a random one is generated and logged once, so a fresh install is
// reachable.
func (s *Service) EnsureAdmin(ctx context.Context) error {
	count, err := s.repo.CountUsers(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	password := s.cfg.AdminPassword
	generated := false
	if password == "" {
		token, err := domain.GenerateToken()
		if err != nil {
			return err
		}
		password = token
		generated = true
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	user := &domain.User{
		Username: s.cfg.AdminUser,
		Password: string(hash),
		Role:     domain.RoleAdmin,
	}
	if err := s.repo.CreateUser(ctx, user); err != nil {
		return err
	}

	if generated {
		s.log.Warn("auth: created admin user with a generated password",
			"username", user.Username,
			"password", password,
		)
	} else {
		s.log.Info("auth: created admin user", "username", user.Username)
	}

	return nil
}
