// Package form turns untyped operator input into strictly typed values.
// Inputs may be raw strings from a form or flag, or already-typed numbers.
package form

import (
	"math"
	"strconv"
	"strings"

	"github.com/fekuna/omnipos-ledger/internal/apperror"
	"github.com/shopspring/decimal"
	"github.com/spf13/cast"
)

// Text returns the trimmed string form of v.
func Text(field string, v any) (string, error) {
	if v == nil {
		return "", nil
	}
	s, err := cast.ToStringE(v)
	if err != nil {
		return "", apperror.Validation(field, "not a text value")
	}
	return strings.TrimSpace(s), nil
}

// RequiredText is Text that rejects blanks.
func RequiredText(field string, v any) (string, error) {
	s, err := Text(field, v)
	if err != nil {
		return "", err
	}
	if s == "" {
		return "", apperror.Validation(field, "must not be empty")
	}
	return s, nil
}

// Int parses a base-10 integer. Fractional or exotic notations are rejected.
func Int(field string, v any) (int64, error) {
	switch n := v.(type) {
	case int, int8, int16, int32, int64, uint8, uint16, uint32:
		return cast.ToInt64E(n)
	case float64:
		if n != float64(int64(n)) {
			return 0, apperror.Validation(field, "must be an integer")
		}
		return int64(n), nil
	case float32:
		if n != float32(int64(n)) {
			return 0, apperror.Validation(field, "must be an integer")
		}
		return int64(n), nil
	}
	s, err := Text(field, v)
	if err != nil {
		return 0, err
	}
	if s == "" {
		return 0, apperror.Validation(field, "must not be empty")
	}
	i, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, apperror.Validation(field, "must be an integer")
	}
	return i, nil
}

// NonNegativeInt is Int constrained to >= 0.
func NonNegativeInt(field string, v any) (int64, error) {
	i, err := Int(field, v)
	if err != nil {
		return 0, err
	}
	if i < 0 {
		return 0, apperror.Validation(field, "must not be negative")
	}
	return i, nil
}

// PositiveInt is Int constrained to > 0.
func PositiveInt(field string, v any) (int64, error) {
	i, err := Int(field, v)
	if err != nil {
		return 0, err
	}
	if i <= 0 {
		return 0, apperror.Validation(field, "must be greater than zero")
	}
	return i, nil
}

// Decimal parses an exact decimal number.
func Decimal(field string, v any) (decimal.Decimal, error) {
	switch n := v.(type) {
	case decimal.Decimal:
		return n, nil
	case float64:
		if math.IsNaN(n) || math.IsInf(n, 0) {
			return decimal.Zero, apperror.Validation(field, "must be a finite number")
		}
		return decimal.NewFromFloat(n), nil
	case float32:
		return Decimal(field, float64(n))
	case int, int8, int16, int32, int64, uint8, uint16, uint32:
		i, err := cast.ToInt64E(n)
		if err != nil {
			return decimal.Zero, apperror.Validation(field, "must be a number")
		}
		return decimal.NewFromInt(i), nil
	}
	s, err := Text(field, v)
	if err != nil {
		return decimal.Zero, err
	}
	if s == "" {
		return decimal.Zero, apperror.Validation(field, "must not be empty")
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, apperror.Validation(field, "must be a number")
	}
	return d, nil
}

// NonNegativeDecimal is Decimal constrained to >= 0.
func NonNegativeDecimal(field string, v any) (decimal.Decimal, error) {
	d, err := Decimal(field, v)
	if err != nil {
		return decimal.Zero, err
	}
	if d.IsNegative() {
		return decimal.Zero, apperror.Validation(field, "must not be negative")
	}
	return d, nil
}
