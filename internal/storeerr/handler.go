package storeerr

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/deppfellow/emp-records/internal/errs"
	"github.com/deppfellow/emp-records/internal/model"
	"github.com/jackc/pgx/v5/pgconn"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Error codes for record failures.
var (
	CodeRecordNotFound  = "RECORD_NOT_FOUND"
	CodeRecordInvalidID = "RECORD_INVALID_ID"
	CodeRecordInvalid   = "RECORD_INVALID"
)

// HandleError converts a repository or driver error into an *errs.HTTPError.
//
// The mapping is:
//   - *errs.HTTPError: unchanged
//   - *model.ValidationError: 400 with field errors
//   - model.ErrInvalidID: 400
//   - model.ErrNotFound: 404
//   - *pgconn.PgError: by SQLSTATE, 400 for constraint violations
//   - everything else, including model.ErrStoreUnavailable: 500
//
// Messages never include the underlying cause.
func HandleError(err error) error {
	var httpErr *errs.HTTPError
	if errors.As(err, &httpErr) {
		return httpErr
	}

	var validationErr *model.ValidationError
	if errors.As(err, &validationErr) {
		fieldErrors := make([]errs.FieldError, 0, len(validationErr.Issues))
		for _, issue := range validationErr.Issues {
			fieldErrors = append(fieldErrors, errs.FieldError{Field: issue.Field, Error: issue.Message})
		}
		return errs.NewBadRequestError("Validation failed", true, &CodeRecordInvalid, fieldErrors)
	}

	switch {
	case errors.Is(err, model.ErrInvalidID):
		return errs.NewBadRequestError("Invalid record id", true, &CodeRecordInvalidID, nil)
	case errors.Is(err, model.ErrNotFound):
		return errs.NewNotFoundError("Record not found", true, &CodeRecordNotFound)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return handlePgError(ConvertPgError(pgErr))
	}

	return errs.NewInternalServerError()
}

func handlePgError(sqlErr *Error) error {
	errorCode := generateErrorCode(sqlErr.TableName, sqlErr.Code)
	userMessage := formatUserFriendlyMessage(sqlErr)

	switch sqlErr.Code {
	case ForeignKeyViolation:
		return errs.NewBadRequestError(userMessage, false, &errorCode, nil)

	case UniqueViolation:
		if column := extractColumn(sqlErr.ConstraintName); column != "" {
			userMessage = strings.ReplaceAll(userMessage, "identifier", humanizeText(column))
		}
		return errs.NewBadRequestError(userMessage, true, &errorCode, nil)

	case NotNullViolation:
		fieldErrors := []errs.FieldError{{
			Field: strings.ToLower(sqlErr.ColumnName),
			Error: "is required",
		}}
		return errs.NewBadRequestError(userMessage, true, &errorCode, fieldErrors)

	case CheckViolation:
		var fieldErrors []errs.FieldError
		if column := checkColumn(sqlErr); column != "" {
			fieldErrors = []errs.FieldError{{Field: column, Error: "is invalid"}}
		}
		return errs.NewBadRequestError(userMessage, true, &errorCode, fieldErrors)

	case InvalidTextRepresentation:
		return errs.NewBadRequestError("Invalid record id", true, &CodeRecordInvalidID, nil)

	default:
		return errs.NewInternalServerError()
	}
}

// generateErrorCode builds <DOMAIN>_<ACTION>, e.g. RECORD_ALREADY_EXISTS.
func generateErrorCode(tableName string, errType Code) string {
	if tableName == "" {
		tableName = "RECORD"
	}

	domain := strings.ToUpper(tableName)
	if strings.HasSuffix(domain, "S") && len(domain) > 1 {
		domain = domain[:len(domain)-1]
	}

	action := "ERROR"
	switch errType {
	case ForeignKeyViolation:
		action = "NOT_FOUND"
	case UniqueViolation:
		action = "ALREADY_EXISTS"
	case NotNullViolation:
		action = "REQUIRED"
	case CheckViolation:
		action = "INVALID"
	}

	return fmt.Sprintf("%s_%s", domain, action)
}

func formatUserFriendlyMessage(sqlErr *Error) string {
	entityName := getEntityName(sqlErr.TableName, sqlErr.ColumnName)

	switch sqlErr.Code {
	case ForeignKeyViolation:
		return fmt.Sprintf("The referenced %s does not exist", entityName)

	case UniqueViolation:
		return fmt.Sprintf("A %s with this identifier already exists", entityName)

	case NotNullViolation:
		fieldName := humanizeText(sqlErr.ColumnName)
		if fieldName == "" {
			fieldName = "field"
		}
		return fmt.Sprintf("The %s is required", fieldName)

	case CheckViolation:
		if fieldName := humanizeText(checkColumn(sqlErr)); fieldName != "" {
			return fmt.Sprintf("The %s value does not meet required conditions", fieldName)
		}
		return "One or more values do not meet required conditions"

	default:
		return "An error occurred while processing your request"
	}
}

// getEntityName prefers a *_id column, then the singular table name.
func getEntityName(tableName, columnName string) string {
	if columnName != "" && strings.HasSuffix(strings.ToLower(columnName), "_id") {
		entity := strings.TrimSuffix(strings.ToLower(columnName), "_id")
		return humanizeText(entity)
	}

	if tableName != "" {
		entity := tableName
		if strings.HasSuffix(entity, "s") && len(entity) > 1 {
			entity = entity[:len(entity)-1]
		}
		return humanizeText(entity)
	}

	return "record"
}

// humanizeText turns "created_at" into "Created At".
func humanizeText(text string) string {
	if text == "" {
		return ""
	}
	return cases.Title(language.English).String(strings.ReplaceAll(text, "_", " "))
}

var constraintColumn = regexp.MustCompile(`_([^_]+)_(?:key|ukey|check)$`)

// extractColumn reads the column out of constraint names such as
// records_seq_key, records_level_check or unique_records_name.
func extractColumn(constraintName string) string {
	if constraintName == "" {
		return ""
	}

	if strings.HasPrefix(constraintName, "unique_") {
		parts := strings.Split(constraintName, "_")
		if len(parts) >= 3 {
			return parts[len(parts)-1]
		}
	}

	if matches := constraintColumn.FindStringSubmatch(constraintName); len(matches) > 1 {
		return matches[1]
	}
	return ""
}

func checkColumn(sqlErr *Error) string {
	if sqlErr.ColumnName != "" {
		return strings.ToLower(sqlErr.ColumnName)
	}
	return extractColumn(sqlErr.ConstraintName)
}
