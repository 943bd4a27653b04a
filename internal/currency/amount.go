// Package currency provides type-safe amounts in the chain's native currency.
// The raw value is always nanomina, the smallest integer subunit; display
// values are nanomina divided by 10^9.
package currency

import (
	"errors"
	"math/big"

	"github.com/shopspring/decimal"
)

const (
	// Symbol is the display ticker of the native currency.
	Symbol = "MINA"
	// Decimals is the fixed decimal exponent between nanomina and display units.
	Decimals = 9
)

// Common errors
var (
	ErrNilRaw         = errors.New("currency: nil raw value")
	ErrNegativeAmount = errors.New("currency: negative amount")
	ErrInvalidNano    = errors.New("currency: invalid nanomina string")
	ErrDivisionByZero = errors.New("currency: division by zero")
)

// Amount is an immutable value object holding a nanomina quantity.
type Amount struct {
	raw *big.Int
}

// NewAmount creates an Amount from a raw nanomina value.
func NewAmount(raw *big.Int) Amount {
	if raw == nil {
		panic(ErrNilRaw)
	}
	if raw.Sign() < 0 {
		panic(ErrNegativeAmount)
	}
	return Amount{raw: new(big.Int).Set(raw)} // defensive copy
}

// Zero returns a zero Amount.
func Zero() Amount {
	return Amount{raw: big.NewInt(0)}
}

// FromUint64 creates an Amount from a uint64 nanomina value.
func FromUint64(raw uint64) Amount {
	return Amount{raw: new(big.Int).SetUint64(raw)}
}

// ParseNano parses a decimal nanomina string as returned by the upstream
// GraphQL APIs (amounts and fees arrive as strings of integer subunits).
func ParseNano(s string) (Amount, error) {
	if s == "" {
		return Zero(), nil
	}
	raw, ok := new(big.Int).SetString(s, 10)
	if !ok || raw.Sign() < 0 {
		return Amount{}, ErrInvalidNano
	}
	return Amount{raw: raw}, nil
}

// Raw returns a copy of the raw nanomina value.
func (a Amount) Raw() *big.Int {
	if a.raw == nil {
		return big.NewInt(0)
	}
	return new(big.Int).Set(a.raw)
}

// IsZero returns true if the amount is zero.
func (a Amount) IsZero() bool {
	return a.raw == nil || a.raw.Sign() == 0
}

// Add returns a + b.
func (a Amount) Add(b Amount) Amount {
	sum := new(big.Int).Add(a.Raw(), b.Raw())
	return Amount{raw: sum}
}

// DivInt returns the integer division a / divisor.
func (a Amount) DivInt(divisor int64) (Amount, error) {
	if divisor == 0 {
		return Amount{}, ErrDivisionByZero
	}
	if divisor < 0 {
		return Amount{}, ErrNegativeAmount
	}
	return Amount{raw: new(big.Int).Div(a.Raw(), big.NewInt(divisor))}, nil
}

// Cmp compares two amounts: -1 if a < b, 0 if equal, 1 if a > b.
func (a Amount) Cmp(b Amount) int {
	return a.Raw().Cmp(b.Raw())
}

// ToDecimal converts the amount to display units. This is a boundary
// function for UI and export, not for arithmetic.
func (a Amount) ToDecimal() decimal.Decimal {
	if a.raw == nil {
		return decimal.Zero
	}
	return decimal.NewFromBigInt(a.raw, -Decimals)
}

// String renders the display value with the ticker, e.g. "12.5 MINA".
func (a Amount) String() string {
	return a.ToDecimal().String() + " " + Symbol
}
