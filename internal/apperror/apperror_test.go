package apperror

import (
	"context"
	"errors"
	"fmt"
	"io"
	"testing"
)

func TestIs_MatchesByKind(t *testing.T) {
	testCases := []struct {
		name   string
		err    error
		target error
		want   bool
	}{
		{"validation", Validation("quantity", "not an integer"), ErrValidation, true},
		{"not found", NotFound("product", 7), ErrNotFound, true},
		{"duplicate", DuplicateKey("category", "name", "Tools"), ErrDuplicateKey, true},
		{"in use", InUse("category", 3, "product(s)"), ErrInUse, true},
		{"insufficient", InsufficientStock(15), ErrInsufficientStock, true},
		{"invalid type", InvalidTransactionType("refund"), ErrInvalidTransactionType, true},
		{"store io", StoreIO("insert", io.ErrUnexpectedEOF), ErrStoreIO, true},
		{"cancelled", Cancelled(context.Canceled), ErrCancelled, true},
		{"cancelled keeps cause", Cancelled(context.Canceled), context.Canceled, true},
		{"cancelled is not store io", Cancelled(context.Canceled), ErrStoreIO, false},
		{"kind mismatch", NotFound("product", 1), ErrInUse, false},
		{"wrapped", fmt.Errorf("delete: %w", InUse("product", 2, "transaction(s)")), ErrInUse, true},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := errors.Is(tc.err, tc.target); got != tc.want {
				t.Errorf("errors.Is = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestDetailsSurviveAs(t *testing.T) {
	var e *Error
	if !errors.As(InsufficientStock(15), &e) || e.Available != 15 {
		t.Fatalf("Available not carried: %+v", e)
	}
	if !errors.As(InUse("product", 4, "transaction(s)"), &e) || e.Count != 4 {
		t.Fatalf("Count not carried: %+v", e)
	}
}

func TestStoreIO(t *testing.T) {
	if StoreIO("x", nil) != nil {
		t.Error("StoreIO(nil) should be nil")
	}
	orig := NotFound("category", 9)
	if got := StoreIO("update", orig); got != orig {
		t.Error("ledger errors must pass through StoreIO unchanged")
	}
	err := StoreIO("select", io.EOF)
	if !errors.Is(err, io.EOF) {
		t.Error("StoreIO must keep the cause reachable")
	}
	if KindOf(err) != KindStoreIO {
		t.Errorf("KindOf = %v", KindOf(err))
	}
}

func TestIsFatal(t *testing.T) {
	if !IsFatal(StoreIO(OpInitialize, io.EOF)) {
		t.Error("initialize failure should be fatal")
	}
	if !IsFatal(StoreIO(OpClose, io.EOF)) {
		t.Error("close failure should be fatal")
	}
	if IsFatal(StoreIO("insert purchase", io.EOF)) {
		t.Error("ordinary store failure should not be fatal")
	}
	if IsFatal(StoreIO(OpInitialize, Cancelled(context.Canceled))) {
		t.Error("cancellation before initialize should not be fatal")
	}
	if IsFatal(NotFound("product", 1)) {
		t.Error("not found should not be fatal")
	}
}
