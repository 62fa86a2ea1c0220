package reference

import "github.com/shopspring/decimal"

type CurrencyType struct {
	ID           int64  `json:"id"`
	Abbreviation string `json:"abbreviation"`
}

// RecurrenceType classifies how often an expense recurs. PerYear is null for
// recurrences that cannot be annualized.
type RecurrenceType struct {
	ID      int64               `json:"id"`
	Name    string              `json:"name"`
	PerYear decimal.NullDecimal `json:"per_year"`
}
