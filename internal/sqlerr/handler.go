package sqlerr

import (
	"database/sql"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/deppfellow/social-network/internal/errs"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// notFoundTableTag prefixes the table name in wrapped no-rows errors.
const notFoundTableTag = "table:"

var (
	uniqueKeyRe    = regexp.MustCompile(`_([^_]+)_(?:key|ukey)$`)
	foreignKeyRe   = regexp.MustCompile(`^[^_]+_(.+_id)_fkey$`)
	referencedByRe = regexp.MustCompile(`^update or delete on table "([^"]+)"`)
)

// ErrCode reports the Code of the first *Error in err's chain, or Other.
func ErrCode(err error) Code {
	var sqlErr *Error
	if errors.As(err, &sqlErr) {
		return sqlErr.Code
	}
	return Other
}

// ConvertPgError converts a raw PostgreSQL error into an *Error.
func ConvertPgError(src *pgconn.PgError) *Error {
	return &Error{
		Code:           MapCode(src.Code),
		Severity:       MapSeverity(src.Severity),
		DatabaseCode:   src.Code,
		Message:        src.Message,
		SchemaName:     src.SchemaName,
		TableName:      src.TableName,
		ColumnName:     src.ColumnName,
		DataTypeName:   src.DataTypeName,
		ConstraintName: src.ConstraintName,
		driverErr:      src,
	}
}

// HandleError converts a database error into an *errs.HTTPError.
//
//   - *errs.HTTPError is returned unchanged.
//   - Constraint violations become 400s coded <ENTITY>_<ACTION>, except a
//     parent row still referenced by children, which is a 409 <ENTITY>_IN_USE.
//   - No-rows errors become 404s. A "table:<name>:" marker in the message
//     names the entity, e.g. "User not found".
//   - Anything else becomes a 500.
func HandleError(err error) error {
	var httpErr *errs.HTTPError
	if errors.As(err, &httpErr) {
		return err
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return violationError(ConvertPgError(pgErr))
	}

	if errors.Is(err, pgx.ErrNoRows) || errors.Is(err, sql.ErrNoRows) {
		if _, rest, ok := strings.Cut(err.Error(), notFoundTableTag); ok {
			table, _, _ := strings.Cut(rest, ":")
			return errs.NewNotFoundError(entityName(table)+" not found", true, nil)
		}
		return errs.NewNotFoundError("Resource not found", false, nil)
	}

	return errs.NewInternalServerError()
}

func violationError(e *Error) error {
	switch e.Code {
	case ForeignKeyViolation:
		if m := referencedByRe.FindStringSubmatch(e.Message); m != nil {
			code := errorCode(m[1], "IN_USE")
			msg := fmt.Sprintf("The %s is still referenced by other records", entityName(m[1]))
			return errs.NewConflictError(msg, true, &code)
		}

		referenced := e.ColumnName
		if referenced == "" {
			referenced = extractColumnForForeignKey(e.ConstraintName)
		}
		if referenced == "" {
			referenced = e.TableName
		}
		code := errorCode(e.TableName, "NOT_FOUND")
		msg := fmt.Sprintf("The referenced %s does not exist", entityName(referenced))
		return errs.NewBadRequestError(msg, false, &code, nil, nil)

	case UniqueViolation:
		identifier := "identifier"
		if column := extractColumnForUniqueViolation(e.ConstraintName); column != "" {
			identifier = humanizeText(column)
		}
		code := errorCode(e.TableName, "ALREADY_EXISTS")
		msg := fmt.Sprintf("A %s with this %s already exists", entityName(e.TableName), identifier)
		return errs.NewBadRequestError(msg, true, &code, nil, nil)

	case NotNullViolation:
		field := humanizeText(e.ColumnName)
		if field == "" {
			field = "field"
		}
		code := errorCode(e.TableName, "REQUIRED")
		fieldErrors := []errs.FieldError{{Field: strings.ToLower(e.ColumnName), Error: "is required"}}
		return errs.NewBadRequestError("The "+field+" is required", true, &code, fieldErrors, nil)

	case CheckViolation:
		msg := "One or more values do not meet required conditions"
		if field := humanizeText(e.ColumnName); field != "" {
			msg = "The " + field + " value does not meet required conditions"
		}
		code := errorCode(e.TableName, "INVALID")
		return errs.NewBadRequestError(msg, true, &code, nil, nil)

	case InvalidText, NumericOutOfRange:
		code := errorCode(e.TableName, "INVALID")
		return errs.NewBadRequestError("One or more values have an invalid format", true, &code, nil, nil)

	default:
		return errs.NewInternalServerError()
	}
}

// errorCode builds codes like POST_NOT_FOUND from a table name.
func errorCode(table, action string) string {
	domain := "RECORD"
	if table != "" {
		domain = strings.ToUpper(singular(table))
	}
	return domain + "_" + action
}

// entityName turns "posts" into "Post" and "user_id" into "User".
func entityName(name string) string {
	if name == "" {
		return "record"
	}
	if column, ok := strings.CutSuffix(strings.ToLower(name), "_id"); ok {
		return humanizeText(column)
	}
	return humanizeText(singular(name))
}

func singular(table string) string {
	if len(table) > 1 {
		return strings.TrimSuffix(strings.TrimSuffix(table, "s"), "S")
	}
	return table
}

// humanizeText turns "email_address" into "Email Address".
func humanizeText(text string) string {
	return cases.Title(language.English).String(strings.ReplaceAll(text, "_", " "))
}

// extractColumnForUniqueViolation infers the column from constraint names
// shaped like unique_<table>_<column> or <table>_<column>_key.
func extractColumnForUniqueViolation(constraintName string) string {
	if rest, ok := strings.CutPrefix(constraintName, "unique_"); ok {
		if i := strings.LastIndex(rest, "_"); i >= 0 {
			return rest[i+1:]
		}
	}

	if m := uniqueKeyRe.FindStringSubmatch(constraintName); m != nil {
		return m[1]
	}
	return ""
}

// extractColumnForForeignKey infers the referencing column from constraint
// names shaped like <table>_<column>_fkey, e.g. posts_user_id_fkey.
func extractColumnForForeignKey(constraintName string) string {
	if m := foreignKeyRe.FindStringSubmatch(constraintName); m != nil {
		return m[1]
	}
	return ""
}
