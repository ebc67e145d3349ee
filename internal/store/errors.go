package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrAccountNotFound is returned when no stored account has the
	// requested identifier.
	ErrAccountNotFound = errors.New("account was not found")

	// ErrEncodingRow is returned when part of a document cannot be
	// serialised into its column representation.
	ErrEncodingRow = errors.New("failed to encode document row")

	// ErrDecodingRow is returned when a stored JSON column no longer decodes
	// into the document model.
	ErrDecodingRow = errors.New("failed to decode document row")
)

// Low-level database operation errors. These are returned (or wrapped) by
// repository methods when a SQL-level operation fails before any domain logic
// can be applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a SELECT against the
	// database fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	ErrBeginningTransaction = errors.New("failed to begin transaction")

	// ErrCommitingTransaction is returned when committing an open transaction
	// fails. The transaction is considered rolled back at this point.
	ErrCommitingTransaction = errors.New("failed to commit transaction")

	// ErrExecutingStatement is returned when executing a DML statement
	// (INSERT, DELETE) fails.
	ErrExecutingStatement = errors.New("failed to executing statement")

	ErrScanningRow  = errors.New("failed to scan row")
	ErrScanningRows = errors.New("failed to scan rows")
)
