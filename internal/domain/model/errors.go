package model

import (
	"errors"
	"fmt"
)

// Sentinel error kinds shared across layers.
var (
	// ErrDataSource marks a failed connection or query. It aborts the pass.
	ErrDataSource = errors.New("data source error")
	// ErrNotFound is returned by detail lookups with no matching record.
	ErrNotFound = errors.New("competitor not found")
)

// DataSourceError records which data source operation failed.
type DataSourceError struct {
	Op  string
	Err error
}

// NewDataSourceError wraps err for operation op. A nil err yields nil.
func NewDataSourceError(op string, err error) error {
	if err == nil {
		return nil
	}
	return &DataSourceError{Op: op, Err: err}
}

func (e *DataSourceError) Error() string {
	return fmt.Sprintf("%s: %s: %v", ErrDataSource, e.Op, e.Err)
}

func (e *DataSourceError) Unwrap() error { return e.Err }

// Is makes errors.Is(err, ErrDataSource) hold for every DataSourceError.
func (e *DataSourceError) Is(target error) bool {
	return target == ErrDataSource
}
