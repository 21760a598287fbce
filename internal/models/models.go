// Package models defines the records exchanged with the finance backend:
// categories, incomes, expenses and per-category budgets.
package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Named is implemented by every entity that can be referenced by id and
// displayed by name.
type Named interface {
	GetID() int64
	GetName() string
}

// Category groups incomes, expenses and budgets.
type Category struct {
	ID          int64  `json:"id" yaml:"id" csv:"id"`
	Name        string `json:"name" yaml:"name" csv:"name"`
	Description string `json:"description" yaml:"description" csv:"description"`
}

// GetID implements Named.
func (c Category) GetID() int64 { return c.ID }

// GetName implements Named.
func (c Category) GetName() string { return c.Name }

// NamedEntity is a bare id/name projection, usable as a lookup for any
// referenced collection.
type NamedEntity struct {
	ID   int64
	Name string
}

// GetID implements Named.
func (n NamedEntity) GetID() int64 { return n.ID }

// GetName implements Named.
func (n NamedEntity) GetName() string { return n.Name }

// Income is money received from a free-text source.
type Income struct {
	ID         int64           `json:"id"`
	CategoryID int64           `json:"category_id"`
	Amount     decimal.Decimal `json:"amount"`
	Date       time.Time       `json:"date"`
	Source     string          `json:"source"`
}

// Expense is money spent in a category.
type Expense struct {
	ID         int64           `json:"id"`
	Name       string          `json:"name"`
	CategoryID int64           `json:"category_id"`
	Amount     decimal.Decimal `json:"amount"`
	Date       time.Time       `json:"date"`
}

// Budget is a spending limit for one category over an inclusive date range.
// Spent is computed by the backend, or locally with budgetfilter.DeriveSpent.
type Budget struct {
	ID         int64           `json:"id"`
	CategoryID int64           `json:"category_id"`
	Amount     decimal.Decimal `json:"amount"`
	Spent      decimal.Decimal `json:"spent"`
	StartDate  time.Time       `json:"start_date"`
	EndDate    time.Time       `json:"end_date"`
}

// Remaining returns the part of the budget not yet spent. It is negative
// when the budget is exceeded.
func (b Budget) Remaining() decimal.Decimal {
	return b.Amount.Sub(b.Spent)
}

// Covers reports whether t falls within the budget's inclusive range.
func (b Budget) Covers(t time.Time) bool {
	return !t.Before(b.StartDate) && !t.After(b.EndDate)
}
