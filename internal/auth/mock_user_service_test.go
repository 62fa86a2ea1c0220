package auth

import (
	"context"

	"github.com/sebuszqo/ExpenseTracker/internal/user"
)

type MockUserService struct {
	LoginFn func(ctx context.Context, email, password string) (*user.User, error)
}

func (m *MockUserService) Register(ctx context.Context, req user.RegisterRequest) (*user.User, error) {
	panic("implement me")
}

func (m *MockUserService) Login(ctx context.Context, email, password string) (*user.User, error) {
	return m.LoginFn(ctx, email, password)
}

func (m *MockUserService) Activate(ctx context.Context, token string) error {
	panic("implement me")
}

func (m *MockUserService) GetUserByID(ctx context.Context, id int64) (*user.User, error) {
	panic("implement me")
}

func (m *MockUserService) AuthorizeByID(actorID, ownerID int64) error {
	panic("implement me")
}
