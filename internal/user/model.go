package user

import "time"

type User struct {
	ID           int64  `json:"id"`
	Email        string `json:"email"`
	Username     string `json:"username"`
	PasswordHash string `json:"-"`
	Activated    bool   `json:"activated"`
}

type AccountActivation struct {
	ID         int64
	Token      string
	UserID     int64
	Expiration time.Time
}

func (a *AccountActivation) Expired(now time.Time) bool {
	return a.Expiration.Before(now)
}

type RegisterRequest struct {
	Email           string `json:"email"`
	Username        string `json:"username"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}
