package core

import (
	"errors"
	"strings"
	"time"
)

var (
	ErrInvalidAmount      = errors.New("invalid amount")
	ErrEmptyDescription   = errors.New("empty description")
	ErrEmptyUserID        = errors.New("empty user id")
	ErrInvalidCategory    = errors.New("invalid category")
	ErrUnknownCategory    = errors.New("category is the unknown sentinel")
	ErrInvalidBudgetLimit = errors.New("invalid budget limit")
)

type (
	// Expense is a confirmed purchase owned by a user. CreatedAt is assigned
	// by the store; an Expense is immutable once persisted.
	Expense struct {
		ID          string
		UserID      string
		Description string
		Amount      Money
		Category    Category
		CreatedAt   time.Time
	}

	// Budget is a monthly spending limit for one (user, category) pair.
	// There is no explicit period column: a budget applies to the calendar
	// month its CreatedAt falls in.
	Budget struct {
		ID           string
		UserID       string
		Category     Category
		MonthlyLimit Money
		CreatedAt    time.Time
	}

	// Interpretation is what the language model made of a free-text message.
	// Reply carries the model's answer for the user verbatim.
	Interpretation struct {
		Description string
		Amount      Money
		Category    Category
		Reply       string
	}
)

// Validate checks an expense right before persistence. Category must belong
// to the closed set: drafts still carrying the unknown sentinel stay pending
// until the user confirms a real category. Amount zero is allowed: a draft
// the interpreter could not price is still persistable once the user
// confirms its category.
func (e Expense) Validate() error {
	if strings.TrimSpace(e.UserID) == "" {
		return ErrEmptyUserID
	}
	if strings.TrimSpace(e.Description) == "" {
		return ErrEmptyDescription
	}
	if e.Amount.Cents < 0 {
		return ErrInvalidAmount
	}
	if e.Category.IsUnknown() {
		return ErrUnknownCategory
	}
	if !e.Category.Valid() {
		return ErrInvalidCategory
	}
	return nil
}

// Validate checks a budget before persistence.
func (b Budget) Validate() error {
	if strings.TrimSpace(b.UserID) == "" {
		return ErrEmptyUserID
	}
	if !b.Category.Valid() {
		return ErrInvalidCategory
	}
	if b.MonthlyLimit.Cents <= 0 {
		return ErrInvalidBudgetLimit
	}
	return nil
}

// NeedsConfirmation reports whether the interpretation must be held as a
// pending draft instead of being persisted: either the model could not pick
// a category, or its reply is asking the user something (question mark as a
// proxy for a disambiguation question).
func (i Interpretation) NeedsConfirmation() bool {
	return i.Category.IsUnknown() || strings.Contains(i.Reply, "?")
}

// SameMonth reports whether t falls in the same calendar month and year as
// ref. Budget scoping and month-to-date sums both hinge on this comparison.
func SameMonth(t, ref time.Time) bool {
	return t.Month() == ref.Month() && t.Year() == ref.Year()
}

// LooksLikeUserID applies the registration format check: 36 characters with
// at least one hyphen. It is intentionally shallow; anything UUID-shaped is
// accepted as an identifier.
func LooksLikeUserID(s string) bool {
	return len(s) == 36 && strings.Contains(s, "-")
}
