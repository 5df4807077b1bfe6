package storeerr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/deppfellow/emp-records/internal/errs"
	"github.com/deppfellow/emp-records/internal/model"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func asHTTP(t *testing.T, err error) *errs.HTTPError {
	t.Helper()
	var httpErr *errs.HTTPError
	require.ErrorAs(t, err, &httpErr)
	return httpErr
}

func TestHandleErrorDomainErrors(t *testing.T) {
	cases := []struct {
		name    string
		err     error
		status  int
		code    string
		message string
	}{
		{"not found", fmt.Errorf("get: %w", model.ErrNotFound), http.StatusNotFound, "RECORD_NOT_FOUND", "Record not found"},
		{"invalid id", fmt.Errorf("%w: %q", model.ErrInvalidID, "x"), http.StatusBadRequest, "RECORD_INVALID_ID", "Invalid record id"},
		{"unavailable", fmt.Errorf("list: %w: %w", model.ErrStoreUnavailable, errors.New("dial tcp: refused")), http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", "Internal Server Error"},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", "Internal Server Error"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			httpErr := asHTTP(t, HandleError(tc.err))
			assert.Equal(t, tc.status, httpErr.Status)
			assert.Equal(t, tc.code, httpErr.Code)
			assert.Equal(t, tc.message, httpErr.Message)
			assert.NotContains(t, httpErr.Message, "refused")
		})
	}
}

func TestHandleErrorValidation(t *testing.T) {
	err := fmt.Errorf("insert: %w", &model.ValidationError{Issues: []model.Issue{
		{Field: "name", Message: "is required"},
		{Field: "level", Message: "must be one of: Intern Junior Senior"},
	}})

	httpErr := asHTTP(t, HandleError(err))
	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
	assert.Equal(t, "RECORD_INVALID", httpErr.Code)
	require.Len(t, httpErr.Errors, 2)
	assert.Equal(t, "name", httpErr.Errors[0].Field)
}

func TestHandleErrorPassesHTTPErrorThrough(t *testing.T) {
	orig := errs.NewForbiddenError("Origin not allowed", true)
	assert.Same(t, orig, HandleError(fmt.Errorf("wrapped: %w", orig)))
}

func TestHandleErrorPostgres(t *testing.T) {
	t.Run("check violation names the column", func(t *testing.T) {
		err := fmt.Errorf("insert record: %w", &pgconn.PgError{
			Code:           "23514",
			Severity:       "ERROR",
			TableName:      "records",
			ConstraintName: "records_level_check",
		})
		httpErr := asHTTP(t, HandleError(err))
		assert.Equal(t, http.StatusBadRequest, httpErr.Status)
		assert.Equal(t, "RECORD_INVALID", httpErr.Code)
		assert.Equal(t, "The Level value does not meet required conditions", httpErr.Message)
		require.Len(t, httpErr.Errors, 1)
		assert.Equal(t, "level", httpErr.Errors[0].Field)
	})

	t.Run("not null violation", func(t *testing.T) {
		httpErr := asHTTP(t, HandleError(&pgconn.PgError{Code: "23502", TableName: "records", ColumnName: "position"}))
		assert.Equal(t, "RECORD_REQUIRED", httpErr.Code)
		assert.Equal(t, "The Position is required", httpErr.Message)
	})

	t.Run("unique violation", func(t *testing.T) {
		httpErr := asHTTP(t, HandleError(&pgconn.PgError{Code: "23505", TableName: "records", ConstraintName: "records_seq_key"}))
		assert.Equal(t, "RECORD_ALREADY_EXISTS", httpErr.Code)
		assert.Equal(t, "A Record with this Seq already exists", httpErr.Message)
	})

	t.Run("bad uuid text", func(t *testing.T) {
		httpErr := asHTTP(t, HandleError(&pgconn.PgError{Code: "22P02"}))
		assert.Equal(t, http.StatusBadRequest, httpErr.Status)
		assert.Equal(t, "RECORD_INVALID_ID", httpErr.Code)
	})

	t.Run("connection failure is a 500", func(t *testing.T) {
		httpErr := asHTTP(t, HandleError(&pgconn.PgError{Code: "08006", Message: "connection failure"}))
		assert.Equal(t, http.StatusInternalServerError, httpErr.Status)
		assert.NotContains(t, httpErr.Message, "connection")
	})
}

func TestMapCodeAndSeverity(t *testing.T) {
	assert.Equal(t, UniqueViolation, MapCode("23505"))
	assert.Equal(t, ConnectionException, MapCode("08001"))
	assert.Equal(t, Other, MapCode("42P01"))
	assert.Equal(t, SeverityFatal, MapSeverity("fatal"))
	assert.Equal(t, SeverityUnknown, MapSeverity("NOTICE"))
	assert.Equal(t, CheckViolation, ErrCode(fmt.Errorf("x: %w", &pgconn.PgError{Code: "23514"})))
	assert.Equal(t, Other, ErrCode(errors.New("plain")))
}

func TestConvertPgErrorUnwraps(t *testing.T) {
	src := &pgconn.PgError{Code: "23505", Message: "duplicate key"}
	converted := ConvertPgError(src)
	assert.Equal(t, "23505: duplicate key", converted.Error())
	assert.ErrorIs(t, converted, src)
}
