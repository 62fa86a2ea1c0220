package auth

import (
	"context"
	"errors"
	"net/http"

	"github.com/sebuszqo/ExpenseTracker/internal/user"
	"go.uber.org/zap"
)

var (
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrAccountNotActivated = errors.New("account is not activated")
	ErrInternalError       = errors.New("internal Server Error")
)

type Service interface {
	Login(ctx context.Context, email, password string) (*user.User, string, error)
	SessionMiddleware() func(http.Handler) http.Handler
}

type service struct {
	userService user.Service
	jwtManager  JWTManagerInterface
	cookie      CookieConfig
	log         *zap.Logger
}

func NewAuthService(userService user.Service, jwtManager JWTManagerInterface, cookie CookieConfig, log *zap.Logger) Service {
	return &service{
		userService: userService,
		jwtManager:  jwtManager,
		cookie:      cookie,
		log:         log.With(zap.String("component", "auth_service")),
	}
}

// Login verifies the credentials and issues a signed session token. Unknown
// emails and wrong passwords are reported the same way.
func (s *service) Login(ctx context.Context, email, password string) (*user.User, string, error) {
	existingUser, err := s.userService.Login(ctx, email, password)
	if err != nil {
		switch {
		case errors.Is(err, user.ErrUserNotFound), errors.Is(err, user.ErrInvalidCredentials):
			return nil, "", ErrInvalidCredentials
		case errors.Is(err, user.ErrAccountNotActivated):
			return nil, "", ErrAccountNotActivated
		default:
			return nil, "", ErrInternalError
		}
	}

	token, err := s.jwtManager.GenerateSessionJWT(existingUser.ID)
	if err != nil {
		s.log.Error("error during JWT generation", zap.Error(err))
		return nil, "", ErrInternalError
	}

	return existingUser, token, nil
}
