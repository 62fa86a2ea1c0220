package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt"
)

var (
	ErrInvalidJWTToken = errors.New("JWT token is invalid")
	ErrExpiredJWTToken = errors.New("JWT token is expired")
)

const defaultSessionDuration = 720 * time.Hour

type JWTManagerInterface interface {
	GenerateSessionJWT(userID int64) (string, error)
	ValidateSessionToken(tokenString string) (int64, error)
	Duration() time.Duration
}

type SessionTokenCustomClaims struct {
	UserID int64 `json:"user_id"`
	jwt.StandardClaims
}

type JWTManager struct {
	secret   []byte
	duration time.Duration
	now      func() time.Time
}

func NewJWTManager(secret string, duration time.Duration) *JWTManager {
	if duration <= 0 {
		duration = defaultSessionDuration
	}
	return &JWTManager{
		secret:   []byte(secret),
		duration: duration,
		now:      time.Now,
	}
}

func (j *JWTManager) Duration() time.Duration {
	return j.duration
}

func (j *JWTManager) GenerateSessionJWT(userID int64) (string, error) {
	now := j.now()
	claims := &SessionTokenCustomClaims{
		UserID: userID,
		StandardClaims: jwt.StandardClaims{
			Subject:   strconv.FormatInt(userID, 10),
			IssuedAt:  now.Unix(),
			ExpiresAt: now.Add(j.duration).Unix(),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(j.secret)
}

func (j *JWTManager) ValidateSessionToken(tokenString string) (int64, error) {
	token, err := jwt.ParseWithClaims(tokenString, &SessionTokenCustomClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return j.secret, nil
	})

	if err != nil {
		var validationErr *jwt.ValidationError
		if errors.As(err, &validationErr) {
			if validationErr.Errors&(jwt.ValidationErrorExpired) != 0 {
				return 0, ErrExpiredJWTToken
			}
		}
		return 0, ErrInvalidJWTToken
	}

	claims, ok := token.Claims.(*SessionTokenCustomClaims)
	if !ok || !token.Valid || claims.UserID <= 0 {
		return 0, ErrInvalidJWTToken
	}

	return claims.UserID, nil
}
