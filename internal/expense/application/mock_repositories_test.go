package application

import (
	"context"
	"sync"

	"github.com/sebuszqo/ExpenseTracker/internal/expense/domain"
	expenseErrors "github.com/sebuszqo/ExpenseTracker/internal/expense/errors"
	"github.com/shopspring/decimal"
)

type MockExpenseRepository struct {
	mu         sync.Mutex
	nextID     int64
	Expenses   map[int64]*domain.Expense
	Predefined map[int64]*domain.PredefinedExpense
	// PerYear is the multiplier per recurrence type id.
	PerYear      map[int64]decimal.NullDecimal
	Transactions *MockTransactionRepository
}

func NewMockExpenseRepository() *MockExpenseRepository {
	return &MockExpenseRepository{
		Expenses:   make(map[int64]*domain.Expense),
		Predefined: make(map[int64]*domain.PredefinedExpense),
		PerYear: map[int64]decimal.NullDecimal{
			1: decimal.NewNullDecimal(decimal.NewFromInt(12)),
			2: decimal.NewNullDecimal(decimal.NewFromInt(1)),
			3: decimal.NewNullDecimal(decimal.RequireFromString("0.5")),
		},
	}
}

func (m *MockExpenseRepository) Save(_ context.Context, expense *domain.Expense) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	expense.ID = m.nextID
	stored := *expense
	m.Expenses[expense.ID] = &stored
	return nil
}

func (m *MockExpenseRepository) FindByID(_ context.Context, expenseID int64) (*domain.Expense, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	expense, ok := m.Expenses[expenseID]
	if !ok {
		return nil, expenseErrors.ErrExpenseNotFound
	}
	found := *expense
	found.RecurrencePerYear = m.PerYear[found.RecurrenceTypeID]
	found.ComputeAnnualValue()
	return &found, nil
}

func (m *MockExpenseRepository) FindByUser(_ context.Context, userID int64) ([]domain.Expense, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	expenses := []domain.Expense{}
	for id := int64(1); id <= m.nextID; id++ {
		expense, ok := m.Expenses[id]
		if !ok || expense.UserID != userID {
			continue
		}
		found := *expense
		found.RecurrencePerYear = m.PerYear[found.RecurrenceTypeID]
		found.ComputeAnnualValue()
		expenses = append(expenses, found)
	}
	return expenses, nil
}

func (m *MockExpenseRepository) Delete(_ context.Context, expenseID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.Expenses[expenseID]; !ok {
		return expenseErrors.ErrExpenseNotFound
	}
	delete(m.Expenses, expenseID)
	if m.Transactions != nil {
		m.Transactions.deleteByExpense(expenseID)
	}
	return nil
}

func (m *MockExpenseRepository) SavePredefined(_ context.Context, predefined *domain.PredefinedExpense) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	predefined.ID = int64(len(m.Predefined) + 1)
	stored := *predefined
	m.Predefined[predefined.ID] = &stored
	return nil
}

func (m *MockExpenseRepository) FindPredefined(context.Context) ([]domain.PredefinedExpense, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	predefined := []domain.PredefinedExpense{}
	for id := int64(1); id <= int64(len(m.Predefined)); id++ {
		predefined = append(predefined, *m.Predefined[id])
	}
	return predefined, nil
}

func (m *MockExpenseRepository) DoesPredefinedExpenseExistByID(_ context.Context, predefinedID int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.Predefined[predefinedID]
	return ok, nil
}

type MockTransactionRepository struct {
	mu           sync.Mutex
	nextID       int64
	Transactions map[int64]*domain.Transaction
}

func NewMockTransactionRepository() *MockTransactionRepository {
	return &MockTransactionRepository{Transactions: make(map[int64]*domain.Transaction)}
}

func (m *MockTransactionRepository) Save(_ context.Context, transaction *domain.Transaction) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	transaction.ID = m.nextID
	stored := *transaction
	m.Transactions[transaction.ID] = &stored
	return nil
}

func (m *MockTransactionRepository) FindByID(_ context.Context, transactionID int64) (*domain.Transaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	transaction, ok := m.Transactions[transactionID]
	if !ok {
		return nil, expenseErrors.ErrTransactionNotFound
	}
	found := *transaction
	return &found, nil
}

func (m *MockTransactionRepository) FindByExpense(_ context.Context, expenseID int64) ([]domain.Transaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	transactions := []domain.Transaction{}
	for id := int64(1); id <= m.nextID; id++ {
		if t, ok := m.Transactions[id]; ok && t.ExpenseID == expenseID {
			transactions = append(transactions, *t)
		}
	}
	return transactions, nil
}

func (m *MockTransactionRepository) Delete(_ context.Context, transactionID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.Transactions[transactionID]; !ok {
		return expenseErrors.ErrTransactionNotFound
	}
	delete(m.Transactions, transactionID)
	return nil
}

func (m *MockTransactionRepository) deleteByExpense(expenseID int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, t := range m.Transactions {
		if t.ExpenseID == expenseID {
			delete(m.Transactions, id)
		}
	}
}

func (m *MockTransactionRepository) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Transactions)
}

// MockReferenceService knows currencies 1 and 2 and recurrences 1 to 3.
type MockReferenceService struct {
	// Barrier, when set, makes every check wait until all expected checks
	// are in flight.
	Barrier *sync.WaitGroup
	Err     error
}

func (m *MockReferenceService) wait() {
	if m.Barrier != nil {
		m.Barrier.Done()
		m.Barrier.Wait()
	}
}

func (m *MockReferenceService) DoesCurrencyTypeExist(_ context.Context, id int64) (bool, error) {
	m.wait()
	return id == 1 || id == 2, m.Err
}

func (m *MockReferenceService) DoesRecurrenceTypeExist(_ context.Context, id int64) (bool, error) {
	m.wait()
	return id >= 1 && id <= 3, m.Err
}
