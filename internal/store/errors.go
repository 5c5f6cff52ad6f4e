package store

import "errors"

var (
	ErrAccountExists       = errors.New("account already exists")
	ErrRecordNotFound      = errors.New("record not found")
	ErrConstraintViolation = errors.New("database constraint violation")
	ErrConflict            = errors.New("concurrent update conflict")
	ErrInTransaction       = errors.New("store is already in a transaction")
)
