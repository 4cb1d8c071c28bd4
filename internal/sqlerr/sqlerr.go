// Package sqlerr handles database driver errors.
//
// It parses cryptic error codes from the database driver and converts
// them into user-friendly messages (e.g., converting a "foreign key
// violation" into a "Bad Request" error).
package sqlerr

import "github.com/jackc/pgx/v5/pgconn"

// Code classifies database failures the API cares about.
type Code int

const (
	// Other covers everything not explicitly mapped.
	Other Code = iota
	ForeignKeyViolation
	UniqueViolation
	NotNullViolation
	CheckViolation
)

// Severity mirrors the severity field reported by PostgreSQL.
type Severity int

const (
	SeverityUnknown Severity = iota
	SeverityError
	SeverityFatal
	SeverityPanic
)

// Error is the normalized database error the rest of the app works with.
// It keeps the original SQLSTATE and constraint metadata so callers can
// build precise client-facing messages.
type Error struct {
	Code           Code
	Severity       Severity
	DatabaseCode   string
	Message        string
	SchemaName     string
	TableName      string
	ColumnName     string
	DataTypeName   string
	ConstraintName string

	driverErr *pgconn.PgError
}

func (e *Error) Error() string {
	return e.Message
}

// Unwrap exposes the underlying driver error for errors.As chains.
func (e *Error) Unwrap() error {
	if e.driverErr == nil {
		return nil
	}
	return e.driverErr
}

// MapCode maps a PostgreSQL SQLSTATE to a Code.
//
// SQLSTATE reference: class 23 is integrity constraint violations.
func MapCode(sqlstate string) Code {
	switch sqlstate {
	case "23503":
		return ForeignKeyViolation
	case "23505":
		return UniqueViolation
	case "23502":
		return NotNullViolation
	case "23514":
		return CheckViolation
	default:
		return Other
	}
}

// MapSeverity maps the severity string from the server to a Severity.
func MapSeverity(severity string) Severity {
	switch severity {
	case "ERROR":
		return SeverityError
	case "FATAL":
		return SeverityFatal
	case "PANIC":
		return SeverityPanic
	default:
		return SeverityUnknown
	}
}
