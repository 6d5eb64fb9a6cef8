package domain

import (
	"errors"
	"fmt"
)

var (
	ErrTransactionNotFound = errors.New("transaction not found")
	ErrNilConfigure        = errors.New("storage configure callback is nil")
	ErrAlreadyBound        = errors.New("storage gateway is already bound")
)

// InvalidTransitionError is returned for any transition not present in the
// status graph. It is never retried: it means caller misuse or a duplicate
// provider callback.
type InvalidTransitionError struct {
	TransactionID string
	From          TransactionStatus
	To            TransactionStatus
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid transition %s -> %s for transaction %s", e.From, e.To, e.TransactionID)
}

// DuplicateStepError is returned when an initializer step name is already
// registered in the chain.
type DuplicateStepError struct {
	Name string
}

func (e *DuplicateStepError) Error() string {
	return fmt.Sprintf("initializer step %q is already registered", e.Name)
}

// MigrationError marks a failed schema migration. Migrations applied before
// the failing one stay committed.
type MigrationError struct {
	Step string
	Err  error
}

func (e *MigrationError) Error() string {
	return fmt.Sprintf("migration step %q failed: %v", e.Step, e.Err)
}

func (e *MigrationError) Unwrap() error {
	return e.Err
}

// StorageError wraps I/O, connectivity and constraint failures coming out of
// the storage gateway.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s failed: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}
