package storage

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"github.com/mattn/go-sqlite3"
)

// Violation is the decoded form of a failed write.
type Violation int

const (
	// ViolationNone means err is not a constraint violation.
	ViolationNone Violation = iota
	// ViolationUnique means a unique constraint rejected the write.
	ViolationUnique
	// ViolationForeignKey means a referenced row does not exist.
	ViolationForeignKey
)

func (v Violation) String() string {
	switch v {
	case ViolationUnique:
		return "unique"
	case ViolationForeignKey:
		return "foreign_key"
	default:
		return "none"
	}
}

// SQLSTATE codes shared by lib/pq and pgx.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// ClassifyViolation inspects the driver error carried by err.
func ClassifyViolation(err error) Violation {
	if err == nil {
		return ViolationNone
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return fromSQLState(string(pqErr.Code))
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return fromSQLState(pgErr.Code)
	}

	var liteErr sqlite3.Error
	if errors.As(err, &liteErr) {
		switch liteErr.ExtendedCode {
		case sqlite3.ErrConstraintUnique, sqlite3.ErrConstraintPrimaryKey:
			return ViolationUnique
		case sqlite3.ErrConstraintForeignKey:
			return ViolationForeignKey
		}
		return ViolationNone
	}

	return fromMessage(err.Error())
}

func fromSQLState(code string) Violation {
	switch code {
	case pgUniqueViolation:
		return ViolationUnique
	case pgForeignKeyViolation:
		return ViolationForeignKey
	default:
		return ViolationNone
	}
}

// fromMessage covers wrappers that flatten the driver error into text.
func fromMessage(msg string) Violation {
	msg = strings.ToLower(msg)
	switch {
	case strings.Contains(msg, "unique constraint failed"),
		strings.Contains(msg, "duplicate key value violates unique constraint"):
		return ViolationUnique
	case strings.Contains(msg, "foreign key constraint failed"),
		strings.Contains(msg, "violates foreign key constraint"):
		return ViolationForeignKey
	default:
		return ViolationNone
	}
}
