package shared

import "errors"

// Money represents a monetary amount in the smallest currency unit (cents).
// It is a value object: immutable, compared by value.
type Money struct {
	amount   int64
	currency string
}

// NewMoney creates a Money value.
func NewMoney(amount int64, currency string) *Money {
	return &Money{
		amount:   amount,
		currency: currency,
	}
}

// Amount returns the amount in the smallest currency unit.
func (m Money) Amount() int64 {
	return m.amount
}

// Currency returns the ISO currency code.
func (m Money) Currency() string {
	return m.currency
}

// Add returns a new Money with the sum of both amounts.
func (m Money) Add(other Money) (*Money, error) {
	if m.currency != other.currency {
		return nil, errors.New("cannot add money with different currencies")
	}

	return &Money{
		amount:   m.amount + other.amount,
		currency: m.currency,
	}, nil
}

// Multiply returns a new Money scaled by a non-negative factor.
func (m Money) Multiply(factor int) (*Money, error) {
	if factor < 0 {
		return nil, errors.New("cannot multiply money by a negative factor")
	}
	if factor != 0 && m.amount > 0 && m.amount > (1<<62)/int64(factor) {
		return nil, errors.New("money multiplication overflow")
	}

	return &Money{
		amount:   m.amount * int64(factor),
		currency: m.currency,
	}, nil
}

// IsNegative reports whether the amount is below zero.
func (m Money) IsNegative() bool {
	return m.amount < 0
}

// Equals compares two Money values by amount and currency.
func (m Money) Equals(other Money) bool {
	return m.amount == other.amount && m.currency == other.currency
}

// Principal identifies the authenticated caller of an operation.
// The API layer resolves it from the request; every application service
// takes it as an explicit argument instead of reading ambient state.
type Principal struct {
	UserID string
	Email  string
}

// IsZero reports whether no principal was resolved for the request.
func (p Principal) IsZero() bool {
	return p.UserID == "" && p.Email == ""
}

// Actor returns the identifier recorded in audit trails such as the
// order status history. Email is preferred, falling back to the user id.
func (p Principal) Actor() string {
	if p.Email != "" {
		return p.Email
	}
	return p.UserID
}
