package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// Draft errors
	ErrInvalidAmount       = errors.New("amount must be positive")
	ErrWalletNotFound      = errors.New("wallet not found")
	ErrCategoryRequired    = errors.New("expense requires a category")
	ErrDestinationRequired = errors.New("transfer requires a destination wallet")
	ErrSameWallet          = errors.New("cannot transfer to the same wallet")
	ErrUnknownType         = errors.New("unknown transaction type")
	ErrUnknownFrequency    = errors.New("unknown recurring frequency")

	// Snapshot errors
	ErrSnapshotNotFound = errors.New("snapshot not found")
)

// ValidationError reports every problem found in a draft or an
// imported aggregate, not just the first. The original state is
// untouched whenever one is returned.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Problems, "; ")
}

func (e *ValidationError) add(format string, args ...any) {
	e.Problems = append(e.Problems, fmt.Sprintf(format, args...))
}

func (e *ValidationError) orNil() *ValidationError {
	if len(e.Problems) == 0 {
		return nil
	}
	return e
}

// FormatError reports undeserializable persisted or imported bytes.
type FormatError struct {
	Reason string
	Err    error
}

func (e *FormatError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("format error: %s: %v", e.Reason, e.Err)
	}
	return "format error: " + e.Reason
}

func (e *FormatError) Unwrap() error { return e.Err }

// CollaboratorError reports a failed or unusable external call. It is
// caught at the boundary and never propagates into ledger state.
type CollaboratorError struct {
	Collaborator string
	Err          error
}

func (e *CollaboratorError) Error() string {
	return fmt.Sprintf("%s collaborator: %v", e.Collaborator, e.Err)
}

func (e *CollaboratorError) Unwrap() error { return e.Err }
