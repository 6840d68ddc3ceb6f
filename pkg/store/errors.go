package store

import (
	"errors"
	"fmt"
)

// Common sentinel errors
var (
	// ErrUnknownNode means a query referenced a node id that does not
	// exist or belongs to a different airport than the query scope.
	ErrUnknownNode = errors.New("unknown node")
	// ErrDanglingReference means an edge endpoint does not exist yet.
	ErrDanglingReference = errors.New("dangling reference")
	// ErrCrossAirportEdge means the two endpoints belong to different airports.
	ErrCrossAirportEdge = errors.New("cross-airport edge")
	// ErrEdgeNotFound means the requested edge does not exist.
	ErrEdgeNotFound = errors.New("edge not found")
	// ErrStoreUnavailable is the infrastructure-level failure class,
	// distinguishable from schema and structural errors. It is the only
	// error the retry helper will retry.
	ErrStoreUnavailable = errors.New("store unavailable")
)

// StoreError provides structured error information for store operations.
type StoreError struct {
	Op      string // operation that failed (e.g. "UpsertEdge", "Clear")
	Entity  string // entity type ("node", "edge", "airport")
	ID      string // entity ID, if applicable
	Cause   error  // underlying error
	Context string // additional context
}

// Error implements the error interface.
func (e *StoreError) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("%s %s %s: %v", e.Op, e.Entity, e.ID, e.Cause)
	}
	if e.Context != "" {
		return fmt.Sprintf("%s %s (%s): %v", e.Op, e.Entity, e.Context, e.Cause)
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.Entity, e.Cause)
}

// Unwrap returns the underlying cause for error chain support.
func (e *StoreError) Unwrap() error {
	return e.Cause
}

// Is reports whether the target error matches this error or its cause.
func (e *StoreError) Is(target error) bool {
	if target == nil {
		return false
	}
	return errors.Is(e.Cause, target)
}

func nodeError(op, id string, cause error) error {
	return &StoreError{Op: op, Entity: "node", ID: id, Cause: cause}
}

func edgeError(op string, cause error, format string, args ...any) error {
	return &StoreError{Op: op, Entity: "edge", Cause: cause, Context: fmt.Sprintf(format, args...)}
}

func unavailableError(op string) error {
	return &StoreError{Op: op, Entity: "store", Cause: ErrStoreUnavailable, Context: "store is closed"}
}

// IsUnavailable reports whether the error is infrastructure-level and
// therefore a candidate for retry.
func IsUnavailable(err error) bool {
	return errors.Is(err, ErrStoreUnavailable)
}
