package user

import (
	"context"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	emailService "github.com/sebuszqo/ExpenseTracker/internal/email"
	"github.com/sebuszqo/ExpenseTracker/internal/ownership"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const (
	bcryptCost           = 12
	defaultActivationTTL = 24 * time.Hour
)

type Service interface {
	Register(ctx context.Context, req RegisterRequest) (*User, error)
	Login(ctx context.Context, email, password string) (*User, error)
	Activate(ctx context.Context, token string) error
	GetUserByID(ctx context.Context, id int64) (*User, error)
	AuthorizeByID(actorID, ownerID int64) error
}

type Config struct {
	RequireActivation bool
	ActivationTTL     time.Duration
	// ActivationURL is the base the token is appended to in the email link.
	ActivationURL string
}

type service struct {
	repo         Repository
	emailService emailService.EmailSender
	cfg          Config
	log          *zap.Logger
	now          func() time.Time
}

func NewUserService(repo Repository, emailService emailService.EmailSender, cfg Config, log *zap.Logger) Service {
	if cfg.ActivationTTL <= 0 {
		cfg.ActivationTTL = defaultActivationTTL
	}
	cfg.ActivationURL = strings.TrimRight(cfg.ActivationURL, "/")

	return &service{
		repo:         repo,
		emailService: emailService,
		cfg:          cfg,
		log:          log.With(zap.String("component", "user_service")),
		now:          time.Now,
	}
}

// passwordDigest shrinks a password to a fixed 44 bytes, under bcrypt's
// 72 byte input limit.
func passwordDigest(password string) []byte {
	sum := sha256.Sum256([]byte(password))
	digest := make([]byte, base64.StdEncoding.EncodedLen(len(sum)))
	base64.StdEncoding.Encode(digest, sum[:])
	return digest
}

func hashPassword(password string) (string, error) {
	hashedPasswordBytes, err := bcrypt.GenerateFromPassword(passwordDigest(password), bcryptCost)
	return string(hashedPasswordBytes), err
}

func doPasswordsMatch(hashedPassword, currPassword string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hashedPassword), passwordDigest(currPassword))
	return err == nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *service) Register(ctx context.Context, req RegisterRequest) (*User, error) {
	req.Email = normalizeEmail(req.Email)
	if err := validateRegisterRequest(req); err != nil {
		return nil, err
	}

	// The unique constraint still guards the window between this check and
	// the insert.
	existingUser, err := s.repo.getUserByEmail(ctx, req.Email)
	if err != nil && !errors.Is(err, ErrUserNotFound) {
		s.log.Error("could not check for existing user", zap.Error(err))
		return nil, ErrInternalError
	}
	if existingUser != nil {
		return nil, ErrEmailAlreadyExists
	}

	passwordHash, err := hashPassword(req.Password)
	if err != nil {
		s.log.Error("could not hash password", zap.Error(err))
		return nil, ErrInternalError
	}

	user := &User{
		Email:        req.Email,
		Username:     req.Username,
		PasswordHash: passwordHash,
	}
	activation := &AccountActivation{
		Token:      uuid.NewString(),
		Expiration: s.now().Add(s.cfg.ActivationTTL),
	}

	if err := s.repo.createUserWithActivation(ctx, user, activation); err != nil {
		if errors.Is(err, ErrEmailAlreadyExists) {
			return nil, ErrEmailAlreadyExists
		}
		s.log.Error("could not create user", zap.Error(err))
		return nil, ErrInternalError
	}

	s.emailService.QueueEmail(user.Email, emailService.ActivationEmailData{
		UserName:       user.Username,
		ActivationLink: s.activationLink(activation.Token),
		ValidFor:       s.cfg.ActivationTTL,
	})

	s.log.Info("user registered", zap.Int64("user_id", user.ID))
	return user, nil
}

func (s *service) activationLink(token string) string {
	return fmt.Sprintf("%s/%s", s.cfg.ActivationURL, token)
}

func (s *service) Login(ctx context.Context, email, password string) (*User, error) {
	existingUser, err := s.repo.getUserByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		s.log.Error("could not get user by email", zap.Error(err))
		return nil, ErrInternalError
	}

	if !doPasswordsMatch(existingUser.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}

	if s.cfg.RequireActivation && !existingUser.Activated {
		return nil, ErrAccountNotActivated
	}

	return existingUser, nil
}

func (s *service) Activate(ctx context.Context, token string) error {
	if token == "" {
		return ErrActivationTokenNotFound
	}

	activation, err := s.repo.getActivationByToken(ctx, token)
	if err != nil {
		if errors.Is(err, ErrActivationTokenNotFound) {
			return ErrActivationTokenNotFound
		}
		s.log.Error("could not get account activation", zap.Error(err))
		return ErrInternalError
	}

	// Expired tokens are kept; nothing sweeps them.
	if activation.Expired(s.now()) {
		return ErrActivationTokenExpired
	}

	if err := s.repo.activateUser(ctx, activation); err != nil {
		if errors.Is(err, ErrActivationTokenNotFound) || errors.Is(err, ErrUserNotFound) {
			return ErrActivationTokenNotFound
		}
		s.log.Error("could not activate user", zap.Error(err), zap.Int64("user_id", activation.UserID))
		return ErrInternalError
	}

	s.log.Info("user activated", zap.Int64("user_id", activation.UserID))
	return nil
}

func (s *service) GetUserByID(ctx context.Context, id int64) (*User, error) {
	user, err := s.repo.getUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		s.log.Error("could not get user by id", zap.Error(err), zap.Int64("user_id", id))
		return nil, ErrInternalError
	}
	return user, nil
}

func (s *service) AuthorizeByID(actorID, ownerID int64) error {
	return ownership.AuthorizeByID(actorID, ownerID)
}
