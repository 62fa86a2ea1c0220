package reference

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

type Service interface {
	GetCurrencyTypes(ctx context.Context) ([]CurrencyType, error)
	GetRecurrenceTypes(ctx context.Context) ([]RecurrenceType, error)
	DoesCurrencyTypeExist(ctx context.Context, id int64) (bool, error)
	DoesRecurrenceTypeExist(ctx context.Context, id int64) (bool, error)
	RefreshCache(ctx context.Context) error
}

// service keeps the reference tables in memory for listing. Existence checks
// go to the store so a row added out-of-band is usable before the next
// refresh.
type service struct {
	repo Repository
	log  *zap.Logger

	mu          sync.RWMutex
	loaded      bool
	currencies  []CurrencyType
	recurrences []RecurrenceType
}

func NewReferenceService(ctx context.Context, repo Repository, log *zap.Logger) (Service, error) {
	s := &service{
		repo: repo,
		log:  log.With(zap.String("component", "reference_service")),
	}

	if err := s.RefreshCache(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *service) RefreshCache(ctx context.Context) error {
	currencies, err := s.repo.GetCurrencyTypes(ctx)
	if err != nil {
		return err
	}
	recurrences, err := s.repo.GetRecurrenceTypes(ctx)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.currencies = currencies
	s.recurrences = recurrences
	s.loaded = true
	return nil
}

func (s *service) GetCurrencyTypes(ctx context.Context) ([]CurrencyType, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.loaded {
		return s.repo.GetCurrencyTypes(ctx)
	}
	return append([]CurrencyType(nil), s.currencies...), nil
}

func (s *service) GetRecurrenceTypes(ctx context.Context) ([]RecurrenceType, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.loaded {
		return s.repo.GetRecurrenceTypes(ctx)
	}
	return append([]RecurrenceType(nil), s.recurrences...), nil
}

func (s *service) DoesCurrencyTypeExist(ctx context.Context, id int64) (bool, error) {
	return s.repo.DoesCurrencyTypeExistByID(ctx, id)
}

func (s *service) DoesRecurrenceTypeExist(ctx context.Context, id int64) (bool, error) {
	return s.repo.DoesRecurrenceTypeExistByID(ctx, id)
}
