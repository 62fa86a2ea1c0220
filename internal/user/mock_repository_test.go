package user

import (
	"context"
	"sync"

	emailService "github.com/sebuszqo/ExpenseTracker/internal/email"
)

type memoryRepository struct {
	mu          sync.Mutex
	nextID      int64
	users       map[int64]*User
	activations map[string]*AccountActivation
	createErr   error
}

func newMemoryRepository() *memoryRepository {
	return &memoryRepository{
		users:       make(map[int64]*User),
		activations: make(map[string]*AccountActivation),
	}
}

func (m *memoryRepository) createUserWithActivation(_ context.Context, user *User, activation *AccountActivation) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.createErr != nil {
		return m.createErr
	}
	for _, u := range m.users {
		if u.Email == user.Email {
			return ErrEmailAlreadyExists
		}
	}

	m.nextID++
	user.ID = m.nextID
	activation.ID = m.nextID
	activation.UserID = user.ID

	stored := *user
	m.users[user.ID] = &stored
	storedActivation := *activation
	m.activations[activation.Token] = &storedActivation
	return nil
}

func (m *memoryRepository) getUserByEmail(_ context.Context, email string) (*User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == email {
			found := *u
			return &found, nil
		}
	}
	return nil, ErrUserNotFound
}

func (m *memoryRepository) getUserByID(_ context.Context, id int64) (*User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return nil, ErrUserNotFound
	}
	found := *u
	return &found, nil
}

func (m *memoryRepository) getActivationByToken(_ context.Context, token string) (*AccountActivation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.activations[token]
	if !ok {
		return nil, ErrActivationTokenNotFound
	}
	found := *a
	return &found, nil
}

func (m *memoryRepository) activateUser(_ context.Context, activation *AccountActivation) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[activation.UserID]
	if !ok {
		return ErrUserNotFound
	}
	if _, ok := m.activations[activation.Token]; !ok {
		return ErrActivationTokenNotFound
	}
	u.Activated = true
	delete(m.activations, activation.Token)
	return nil
}

func (m *memoryRepository) userCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.users)
}

func (m *memoryRepository) activationFor(userID int64) *AccountActivation {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, a := range m.activations {
		if a.UserID == userID {
			found := *a
			return &found
		}
	}
	return nil
}

type queuedEmail struct {
	to   string
	data emailService.EmailData
}

type fakeEmailSender struct {
	mu     sync.Mutex
	queued []queuedEmail
}

func (f *fakeEmailSender) QueueEmail(to string, data emailService.EmailData) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.queued = append(f.queued, queuedEmail{to: to, data: data})
}

func (f *fakeEmailSender) Queued() []queuedEmail {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]queuedEmail(nil), f.queued...)
}
