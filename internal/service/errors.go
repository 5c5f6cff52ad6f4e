package service

import (
	"errors"
	"fmt"

	"github.com/hance08/canopy/internal/store"
)

var (
	ErrValidation          = errors.New("service: validation failed")
	ErrAccountNotFound     = errors.New("service: account not found")
	ErrEntryNotFound       = errors.New("service: ledger entry not found")
	ErrAccountExists       = errors.New("service: account already exists")
	ErrInsufficientBalance = errors.New("service: insufficient balance")
	ErrConflict            = errors.New("service: concurrent update conflict")
	ErrStoreUnavailable    = errors.New("service: store unavailable")
	ErrFeeSinkMissing      = errors.New("service: fee sink account missing")
)

// Code is the stable identifier reported alongside a failed operation.
type Code string

const (
	CodeOK                  Code = "ok"
	CodeValidation          Code = "validation"
	CodeNotFound            Code = "not_found"
	CodeAlreadyExists       Code = "already_exists"
	CodeInsufficientBalance Code = "insufficient_balance"
	CodeConflict            Code = "conflict"
	CodeStoreUnavailable    Code = "store_unavailable"
	CodeInternal            Code = "internal"
)

// ValidationError represents a rejected input field.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("service: invalid %s: %s", e.Field, e.Message)
}

func (e ValidationError) Is(target error) bool {
	return target == ErrValidation
}

func invalid(field, format string, args ...any) error {
	return ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// InsufficientBalanceError reports the payer snapshot that failed the check.
type InsufficientBalanceError struct {
	AccountID string
	Balance   int64
	Amount    int64
}

func (e InsufficientBalanceError) Error() string {
	return fmt.Sprintf("service: account %s balance %d is below %d", e.AccountID, e.Balance, e.Amount)
}

func (e InsufficientBalanceError) Is(target error) bool {
	return target == ErrInsufficientBalance
}

// AccountNotFoundError names the missing account.
type AccountNotFoundError struct {
	AccountID string
}

func (e *AccountNotFoundError) Error() string {
	return "service: account " + e.AccountID + " not found"
}

func (e *AccountNotFoundError) Is(target error) bool {
	return target == ErrAccountNotFound
}

func CodeOf(err error) Code {
	switch {
	case err == nil:
		return CodeOK
	case errors.Is(err, ErrValidation):
		return CodeValidation
	case IsNotFound(err):
		return CodeNotFound
	case errors.Is(err, ErrAccountExists):
		return CodeAlreadyExists
	case errors.Is(err, ErrInsufficientBalance):
		return CodeInsufficientBalance
	case errors.Is(err, ErrConflict):
		return CodeConflict
	case errors.Is(err, ErrStoreUnavailable):
		return CodeStoreUnavailable
	default:
		return CodeInternal
	}
}

func IsNotFound(err error) bool {
	return errors.Is(err, ErrAccountNotFound) ||
		errors.Is(err, ErrEntryNotFound)
}

// IsRetryable reports whether the caller may resubmit the operation as is.
func IsRetryable(err error) bool {
	return errors.Is(err, ErrConflict)
}

// IsRejection reports business rejections, as opposed to system failures.
func IsRejection(err error) bool {
	switch CodeOf(err) {
	case CodeValidation, CodeNotFound, CodeAlreadyExists, CodeInsufficientBalance:
		return true
	}
	return false
}

// storeErr translates a store failure into the service taxonomy.
func storeErr(err error, op string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, store.ErrConflict):
		return fmt.Errorf("%s: %w", op, ErrConflict)
	case errors.Is(err, store.ErrAccountExists):
		return fmt.Errorf("%s: %w", op, ErrAccountExists)
	default:
		return fmt.Errorf("%s: %w: %w", op, ErrStoreUnavailable, err)
	}
}
