package application

import (
	"context"
	"errors"
	"strings"

	appErrors "github.com/sebuszqo/ExpenseTracker/internal/errors"
	"github.com/sebuszqo/ExpenseTracker/internal/expense/domain"
	expenseErrors "github.com/sebuszqo/ExpenseTracker/internal/expense/errors"
	"github.com/sebuszqo/ExpenseTracker/internal/ownership"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type ExpenseServiceInterface interface {
	GetExpenseByID(ctx context.Context, expenseID int64) (*domain.Expense, error)
}

type TransactionService struct {
	repo             domain.TransactionRepository
	expenseService   ExpenseServiceInterface
	referenceService ReferenceServiceInterface
	log              *zap.Logger
}

func NewTransactionService(repo domain.TransactionRepository, expenseService ExpenseServiceInterface, referenceService ReferenceServiceInterface, log *zap.Logger) *TransactionService {
	return &TransactionService{
		repo:             repo,
		expenseService:   expenseService,
		referenceService: referenceService,
		log:              log.With(zap.String("component", "transaction_service")),
	}
}

// CreateTransaction records a contribution against an expense owned by userID.
// A missing expense or currency is invalid data; an expense owned by someone
// else is not authorized.
func (s *TransactionService) CreateTransaction(ctx context.Context, userID int64, req domain.CreateTransactionRequest) (int64, error) {
	fe := appErrors.FieldErrors{}
	date := req.Validate(fe)
	if len(fe) > 0 {
		return 0, expenseErrors.NewInvalidTransactionError(fe)
	}

	var (
		currencyExists bool
		expense        *domain.Expense
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		currencyExists, err = s.referenceService.DoesCurrencyTypeExist(gctx, req.CurrencyTypeID)
		return err
	})
	g.Go(func() error {
		found, err := s.expenseService.GetExpenseByID(gctx, req.ExpenseID)
		if errors.Is(err, expenseErrors.ErrExpenseNotFound) {
			return nil
		}
		expense = found
		return err
	})
	if err := g.Wait(); err != nil {
		s.log.Error("could not validate transaction references", zap.Error(err))
		return 0, ErrInternalError
	}

	if !currencyExists {
		fe.Add("currency_type_id", "does not exist")
	}
	if expense == nil {
		fe.Add("expense_id", "does not exist")
	}
	if len(fe) > 0 {
		return 0, expenseErrors.NewInvalidTransactionError(fe)
	}

	if err := ownership.AuthorizeByID(userID, expense.UserID); err != nil {
		return 0, expenseErrors.ErrNotAuthorized
	}

	transaction := &domain.Transaction{
		DonorName:      strings.TrimSpace(req.DonorName),
		Value:          req.Value,
		Date:           date,
		CurrencyTypeID: req.CurrencyTypeID,
		ExpenseID:      req.ExpenseID,
	}
	if err := s.repo.Save(ctx, transaction); err != nil {
		s.log.Error("could not save transaction", zap.Error(err), zap.Int64("expense_id", req.ExpenseID))
		return 0, ErrInternalError
	}
	return transaction.ID, nil
}

func (s *TransactionService) DeleteTransaction(ctx context.Context, userID, transactionID int64) error {
	transaction, err := s.repo.FindByID(ctx, transactionID)
	if err != nil {
		if errors.Is(err, expenseErrors.ErrTransactionNotFound) {
			return expenseErrors.ErrTransactionNotFound
		}
		s.log.Error("could not get transaction", zap.Error(err), zap.Int64("transaction_id", transactionID))
		return ErrInternalError
	}

	expense, err := s.expenseService.GetExpenseByID(ctx, transaction.ExpenseID)
	if err != nil {
		if errors.Is(err, expenseErrors.ErrExpenseNotFound) {
			// the parent went away together with the transaction
			return expenseErrors.ErrTransactionNotFound
		}
		return ErrInternalError
	}

	if err := ownership.AuthorizeByID(userID, expense.UserID); err != nil {
		return expenseErrors.ErrNotAuthorized
	}

	if err := s.repo.Delete(ctx, transactionID); err != nil {
		if errors.Is(err, expenseErrors.ErrTransactionNotFound) {
			return expenseErrors.ErrTransactionNotFound
		}
		s.log.Error("could not delete transaction", zap.Error(err), zap.Int64("transaction_id", transactionID))
		return ErrInternalError
	}
	return nil
}

func (s *TransactionService) GetExpenseTransactions(ctx context.Context, userID, expenseID int64) (*domain.ExpenseTransactions, error) {
	expense, err := s.expenseService.GetExpenseByID(ctx, expenseID)
	if err != nil {
		return nil, err
	}
	if err := ownership.AuthorizeByID(userID, expense.UserID); err != nil {
		return nil, expenseErrors.ErrNotAuthorized
	}

	transactions, err := s.repo.FindByExpense(ctx, expenseID)
	if err != nil {
		s.log.Error("could not get expense transactions", zap.Error(err), zap.Int64("expense_id", expenseID))
		return nil, ErrInternalError
	}
	return domain.NewExpenseTransactions(expense, transactions), nil
}
