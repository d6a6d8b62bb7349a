// Package store persists risk records for the HTTP API.
package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/hashicorp/go-hclog"

	"github.com/riskreg/riskreg/internal/register"
	"github.com/riskreg/riskreg/internal/risk"
	sharederrors "github.com/riskreg/riskreg/pkg/shared/errors"
)

// Supported drivers.
const (
	DriverMemory   = "memory"
	DriverSQLite   = "sqlite3"
	DriverPostgres = "postgres"
)

// ErrNotFound is returned when a record id does not exist.
var ErrNotFound = errors.New("risk record not found")

// Store keeps records in insertion order and assigns their ids.
type Store interface {
	// Create validates the input, stamps score and level, and stores the record.
	Create(ctx context.Context, in risk.Input) (risk.Record, error)
	// List returns the records passing filter in insertion order.
	List(ctx context.Context, filter register.Filter) ([]risk.Record, error)
	Get(ctx context.Context, id int64) (risk.Record, error)
	Delete(ctx context.Context, id int64) error
	Ping(ctx context.Context) error
	Close() error
}

// New opens the store for the given driver.
func New(driver, dsn string, logger hclog.Logger) (Store, error) {
	switch driver {
	case DriverMemory:
		return NewMemory(), nil
	case DriverSQLite, DriverPostgres:
		return OpenSQL(driver, dsn, logger)
	default:
		return nil, sharederrors.NewNotImplementedError("store", driver)
	}
}

// prepare validates and normalizes an input before it is stored.
func prepare(in risk.Input) (risk.Input, error) {
	in = in.Normalize()
	if err := in.Validate(); err != nil {
		return in, &ValidationError{Err: err}
	}
	return in, nil
}

// ValidationError wraps a rejected submission.
type ValidationError struct {
	Err error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid risk input: %v", e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}
