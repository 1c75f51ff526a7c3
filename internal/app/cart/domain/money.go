package domain

import (
	"fmt"
	"math"
	"math/big"
	"strings"
)

// Money represents a monetary value with precise decimal arithmetic using big.Rat.
// It stores the value as a rational number (numerator/denominator) to avoid
// floating-point precision issues when summing line totals.
type Money struct {
	rat *big.Rat
}

// NewMoney creates a new Money instance from numerator and denominator.
// Example: NewMoney(249900, 100) represents $2499.00
func NewMoney(numerator, denominator int64) (*Money, error) {
	if denominator == 0 {
		return nil, fmt.Errorf("denominator cannot be zero")
	}
	if denominator < 0 {
		return nil, fmt.Errorf("denominator must be positive")
	}

	return &Money{rat: big.NewRat(numerator, denominator)}, nil
}

// ZeroMoney returns a Money of value zero.
func ZeroMoney() *Money {
	return &Money{rat: big.NewRat(0, 1)}
}

// ParseMoney converts a price snapshot into Money. Catalog callers hand over
// plain decimal strings ("12.5"); legacy cart payloads carry currency-formatted
// strings ("$12.50", "12,50 TND"). Normalization happens here, at ingestion,
// so totals never re-parse on read.
func ParseMoney(s string) (*Money, error) {
	cleaned := strings.TrimSpace(s)
	cleaned = strings.TrimLeft(cleaned, "$€£")
	if i := strings.IndexByte(cleaned, ' '); i >= 0 {
		cleaned = cleaned[:i]
	}
	cleaned = strings.ReplaceAll(cleaned, ",", ".")

	if cleaned == "" {
		return nil, fmt.Errorf("empty price value")
	}

	rat, ok := new(big.Rat).SetString(cleaned)
	if !ok {
		return nil, fmt.Errorf("invalid price value %q", s)
	}
	return &Money{rat: rat}, nil
}

// Numerator returns the numerator, or an error when it exceeds int64 bounds.
func (m *Money) Numerator() (int64, error) {
	num := m.rat.Num()
	if !num.IsInt64() {
		return 0, ErrMoneyOverflow
	}
	return num.Int64(), nil
}

// Denominator returns the denominator, or an error when it exceeds int64 bounds.
func (m *Money) Denominator() (int64, error) {
	denom := m.rat.Denom()
	if !denom.IsInt64() {
		return 0, ErrMoneyOverflow
	}
	return denom.Int64(), nil
}

// IsSafeForStorage reports whether both numerator and denominator fit in int64.
// Ingestion boundaries reject anything larger before it reaches fingerprints,
// totals, or persistence.
func (m *Money) IsSafeForStorage() bool {
	return m.rat.Num().IsInt64() && m.rat.Denom().IsInt64()
}

// Add adds two Money values and returns a new Money instance.
func (m *Money) Add(other *Money) *Money {
	return &Money{rat: new(big.Rat).Add(m.rat, other.rat)}
}

// MultiplyInt multiplies this Money value by an integer quantity.
func (m *Money) MultiplyInt(n int64) *Money {
	factor := new(big.Rat).SetInt64(n)
	return &Money{rat: new(big.Rat).Mul(m.rat, factor)}
}

// IsZero returns true if the money value is zero.
func (m *Money) IsZero() bool {
	return m.rat.Sign() == 0
}

// IsNegative returns true if the money value is negative.
func (m *Money) IsNegative() bool {
	return m.rat.Sign() < 0
}

// Equals returns true if this Money value equals another.
func (m *Money) Equals(other *Money) bool {
	return m.rat.Cmp(other.rat) == 0
}

// Float64 returns an approximate float64 representation (for display only, not calculations).
func (m *Money) Float64() float64 {
	f, _ := m.rat.Float64()
	if math.IsInf(f, 0) {
		return 0
	}
	return f
}

// String returns a fixed two-decimal representation of the money value.
func (m *Money) String() string {
	return m.rat.FloatString(2)
}

// Copy creates a deep copy of this Money instance.
func (m *Money) Copy() *Money {
	return &Money{rat: new(big.Rat).Set(m.rat)}
}

// MinorUnits returns the value in minor currency units (cents), rounded to the
// nearest unit. Payment gateways take amounts this way.
func (m *Money) MinorUnits() int64 {
	cents := new(big.Rat).Mul(m.rat, big.NewRat(100, 1))
	num := new(big.Rat).Set(cents)
	f, _ := num.Float64()
	return int64(math.Round(f))
}
