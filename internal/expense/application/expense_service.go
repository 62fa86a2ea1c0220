package application

import (
	"context"
	"errors"
	"strings"
	"sync"

	appErrors "github.com/sebuszqo/ExpenseTracker/internal/errors"
	"github.com/sebuszqo/ExpenseTracker/internal/expense/domain"
	expenseErrors "github.com/sebuszqo/ExpenseTracker/internal/expense/errors"
	"github.com/sebuszqo/ExpenseTracker/internal/ownership"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var ErrInternalError = errors.New("internal Server Error")

// ReferenceServiceInterface answers whether reference rows exist.
type ReferenceServiceInterface interface {
	DoesCurrencyTypeExist(ctx context.Context, id int64) (bool, error)
	DoesRecurrenceTypeExist(ctx context.Context, id int64) (bool, error)
}

type ExpenseService struct {
	repo             domain.ExpenseRepository
	referenceService ReferenceServiceInterface
	log              *zap.Logger
}

func NewExpenseService(repo domain.ExpenseRepository, referenceService ReferenceServiceInterface, log *zap.Logger) *ExpenseService {
	return &ExpenseService{
		repo:             repo,
		referenceService: referenceService,
		log:              log.With(zap.String("component", "expense_service")),
	}
}

// existenceCheck is one independent lookup run by checkReferences.
type existenceCheck struct {
	field string
	check func(ctx context.Context) (bool, error)
}

// checkReferences runs the checks concurrently and records every missing
// reference in fe. A lookup failure aborts with that error.
func checkReferences(ctx context.Context, fe appErrors.FieldErrors, checks ...existenceCheck) error {
	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)

	for _, c := range checks {
		c := c
		g.Go(func() error {
			exists, err := c.check(gctx)
			if err != nil {
				return err
			}
			if !exists {
				mu.Lock()
				fe.Add(c.field, "does not exist")
				mu.Unlock()
			}
			return nil
		})
	}
	return g.Wait()
}

func (s *ExpenseService) currencyCheck(id int64) existenceCheck {
	return existenceCheck{field: "currency_type_id", check: func(ctx context.Context) (bool, error) {
		return s.referenceService.DoesCurrencyTypeExist(ctx, id)
	}}
}

func (s *ExpenseService) recurrenceCheck(id int64) existenceCheck {
	return existenceCheck{field: "recurrence_type_id", check: func(ctx context.Context) (bool, error) {
		return s.referenceService.DoesRecurrenceTypeExist(ctx, id)
	}}
}

// CreateExpense stores a new expense owned by userID. Any owner carried by the
// request is ignored.
func (s *ExpenseService) CreateExpense(ctx context.Context, userID int64, req domain.CreateExpenseRequest) (int64, error) {
	fe := appErrors.FieldErrors{}
	startDate := req.Validate(fe)
	if len(fe) > 0 {
		return 0, expenseErrors.NewInvalidExpenseError(fe)
	}

	checks := []existenceCheck{s.recurrenceCheck(req.RecurrenceTypeID), s.currencyCheck(req.CurrencyTypeID)}
	if req.PredefinedExpenseID != nil {
		predefinedID := *req.PredefinedExpenseID
		checks = append(checks, existenceCheck{field: "predefined_expense_id", check: func(ctx context.Context) (bool, error) {
			return s.repo.DoesPredefinedExpenseExistByID(ctx, predefinedID)
		}})
	}
	if err := checkReferences(ctx, fe, checks...); err != nil {
		s.log.Error("could not validate expense references", zap.Error(err))
		return 0, ErrInternalError
	}
	if len(fe) > 0 {
		return 0, expenseErrors.NewInvalidExpenseError(fe)
	}

	expense := &domain.Expense{
		Name:                strings.TrimSpace(req.Name),
		Description:         req.Description,
		Value:               req.Value,
		StartDate:           startDate,
		UserID:              userID,
		CurrencyTypeID:      req.CurrencyTypeID,
		RecurrenceTypeID:    req.RecurrenceTypeID,
		PredefinedExpenseID: req.PredefinedExpenseID,
	}
	if err := s.repo.Save(ctx, expense); err != nil {
		s.log.Error("could not save expense", zap.Error(err), zap.Int64("user_id", userID))
		return 0, ErrInternalError
	}

	return expense.ID, nil
}

func (s *ExpenseService) GetUserExpenses(ctx context.Context, requestingUserID, targetUserID int64) ([]domain.Expense, error) {
	if err := ownership.AuthorizeByID(requestingUserID, targetUserID); err != nil {
		return nil, expenseErrors.ErrNotAuthorized
	}

	expenses, err := s.repo.FindByUser(ctx, targetUserID)
	if err != nil {
		s.log.Error("could not get user expenses", zap.Error(err), zap.Int64("user_id", targetUserID))
		return nil, ErrInternalError
	}
	return expenses, nil
}

// GetExpense returns the expense if it exists and belongs to userID.
func (s *ExpenseService) GetExpense(ctx context.Context, userID, expenseID int64) (*domain.Expense, error) {
	expense, err := s.GetExpenseByID(ctx, expenseID)
	if err != nil {
		return nil, err
	}
	if err := ownership.AuthorizeByID(userID, expense.UserID); err != nil {
		return nil, expenseErrors.ErrNotAuthorized
	}
	return expense, nil
}

// GetExpenseByID performs no ownership check.
func (s *ExpenseService) GetExpenseByID(ctx context.Context, expenseID int64) (*domain.Expense, error) {
	expense, err := s.repo.FindByID(ctx, expenseID)
	if err != nil {
		if errors.Is(err, expenseErrors.ErrExpenseNotFound) {
			return nil, expenseErrors.ErrExpenseNotFound
		}
		s.log.Error("could not get expense", zap.Error(err), zap.Int64("expense_id", expenseID))
		return nil, ErrInternalError
	}
	return expense, nil
}

func (s *ExpenseService) DeleteExpense(ctx context.Context, userID, expenseID int64) error {
	if _, err := s.GetExpense(ctx, userID, expenseID); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, expenseID); err != nil {
		if errors.Is(err, expenseErrors.ErrExpenseNotFound) {
			return expenseErrors.ErrExpenseNotFound
		}
		s.log.Error("could not delete expense", zap.Error(err), zap.Int64("expense_id", expenseID))
		return ErrInternalError
	}
	return nil
}

// CreatePredefinedExpense adds a catalog entry. The catalog is global, so no
// ownership applies.
func (s *ExpenseService) CreatePredefinedExpense(ctx context.Context, req domain.CreatePredefinedExpenseRequest) (int64, error) {
	fe := appErrors.FieldErrors{}
	req.Validate(fe)
	if len(fe) > 0 {
		return 0, expenseErrors.NewInvalidExpenseError(fe)
	}

	if err := checkReferences(ctx, fe, s.recurrenceCheck(req.RecurrenceTypeID), s.currencyCheck(req.CurrencyTypeID)); err != nil {
		s.log.Error("could not validate predefined expense references", zap.Error(err))
		return 0, ErrInternalError
	}
	if len(fe) > 0 {
		return 0, expenseErrors.NewInvalidExpenseError(fe)
	}

	predefined := &domain.PredefinedExpense{
		Name:             strings.TrimSpace(req.Name),
		Description:      req.Description,
		Value:            req.Value,
		CurrencyTypeID:   req.CurrencyTypeID,
		RecurrenceTypeID: req.RecurrenceTypeID,
	}
	if err := s.repo.SavePredefined(ctx, predefined); err != nil {
		s.log.Error("could not save predefined expense", zap.Error(err))
		return 0, ErrInternalError
	}
	return predefined.ID, nil
}

func (s *ExpenseService) GetPredefinedExpenses(ctx context.Context) ([]domain.PredefinedExpense, error) {
	predefined, err := s.repo.FindPredefined(ctx)
	if err != nil {
		s.log.Error("could not get predefined expenses", zap.Error(err))
		return nil, ErrInternalError
	}
	return predefined, nil
}
