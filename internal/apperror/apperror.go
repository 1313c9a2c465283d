// Package apperror defines the failure kinds returned by every ledger
// operation. Callers match them with errors.Is against the Err* sentinels
// or inspect the details with errors.As.
package apperror

import (
	"errors"
	"fmt"
	"strings"

	pkgerrors "github.com/pkg/errors"
)

type Kind int

const (
	KindUnknown Kind = iota
	KindValidation
	KindNotFound
	KindDuplicateKey
	KindInUse
	KindInsufficientStock
	KindInvalidTransactionType
	KindStoreIO
	KindCancelled
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation_error"
	case KindNotFound:
		return "not_found"
	case KindDuplicateKey:
		return "duplicate_key"
	case KindInUse:
		return "in_use"
	case KindInsufficientStock:
		return "insufficient_stock"
	case KindInvalidTransactionType:
		return "invalid_transaction_type"
	case KindStoreIO:
		return "store_io_error"
	case KindCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// Error is the single error type crossing the ledger boundary.
type Error struct {
	Kind   Kind
	Entity string
	Field  string
	// Count is the number of dependent rows for KindInUse.
	Count int64
	// Available is the stock on hand for KindInsufficientStock.
	Available int64
	// Op names the store operation for KindStoreIO.
	Op  string
	Msg string
	Err error
}

var (
	ErrValidation             = &Error{Kind: KindValidation}
	ErrNotFound               = &Error{Kind: KindNotFound}
	ErrDuplicateKey           = &Error{Kind: KindDuplicateKey}
	ErrInUse                  = &Error{Kind: KindInUse}
	ErrInsufficientStock      = &Error{Kind: KindInsufficientStock}
	ErrInvalidTransactionType = &Error{Kind: KindInvalidTransactionType}
	ErrStoreIO                = &Error{Kind: KindStoreIO}
	ErrCancelled              = &Error{Kind: KindCancelled}
)

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(e.Kind.String())
	if e.Msg != "" {
		b.WriteString(": ")
		b.WriteString(e.Msg)
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches any *Error of the same kind, so the sentinels work with errors.Is.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

func Validation(field, msg string) error {
	return &Error{Kind: KindValidation, Field: field, Msg: fmt.Sprintf("%s: %s", field, msg)}
}

func NotFound(entity string, id int64) error {
	return &Error{Kind: KindNotFound, Entity: entity, Msg: fmt.Sprintf("%s %d not found", entity, id)}
}

func DuplicateKey(entity, field, value string) error {
	return &Error{
		Kind:   KindDuplicateKey,
		Entity: entity,
		Field:  field,
		Msg:    fmt.Sprintf("%s with %s %q already exists", entity, field, value),
	}
}

func InUse(entity string, count int64, dependents string) error {
	return &Error{
		Kind:   KindInUse,
		Entity: entity,
		Count:  count,
		Msg:    fmt.Sprintf("%s is referenced by %d %s", entity, count, dependents),
	}
}

func InsufficientStock(available int64) error {
	return &Error{
		Kind:      KindInsufficientStock,
		Entity:    "product",
		Available: available,
		Msg:       fmt.Sprintf("available: %d", available),
	}
}

func InvalidTransactionType(kind string) error {
	return &Error{Kind: KindInvalidTransactionType, Msg: fmt.Sprintf("%q", kind)}
}

// Cancelled reports an operation abandoned before it reached the store.
// The context error stays reachable through errors.Is.
func Cancelled(err error) error {
	return &Error{Kind: KindCancelled, Msg: "operation not started", Err: err}
}

// StoreIO wraps a persistence failure with stack context. Errors that are
// already ledger errors pass through unchanged.
func StoreIO(op string, err error) error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return err
	}
	return &Error{Kind: KindStoreIO, Op: op, Msg: op, Err: pkgerrors.WithStack(err)}
}

// KindOf returns the kind of err, or KindUnknown for foreign errors.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// IsFatal reports whether err must terminate the process: a store failure
// while opening or closing the store.
func IsFatal(err error) bool {
	var e *Error
	if !errors.As(err, &e) {
		return false
	}
	return e.Kind == KindStoreIO && (e.Op == OpInitialize || e.Op == OpClose)
}

const (
	OpInitialize = "initialize"
	OpClose      = "close"
)
