package util

import (
	"errors"
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToDomainError_PassesThroughDomainErrors(t *testing.T) {
	original := NewConflict("identifiers do not match", nil)

	mapped := ToDomainError(original)
	require.NotNil(t, mapped)
	assert.Equal(t, "409", mapped.Code)
	assert.Equal(t, http.StatusConflict, mapped.HTTPStatus)
}

func TestToDomainError_MapsFiberErrors(t *testing.T) {
	mapped := ToDomainError(fiber.ErrNotFound)
	require.NotNil(t, mapped)
	assert.Equal(t, "404", mapped.Code)
	assert.Equal(t, http.StatusNotFound, mapped.HTTPStatus)
	assert.Equal(t, "resource not found", mapped.Message)

	mapped = ToDomainError(fiber.ErrMethodNotAllowed)
	require.NotNil(t, mapped)
	assert.Equal(t, "405", mapped.Code)
	assert.Equal(t, http.StatusMethodNotAllowed, mapped.HTTPStatus)
}

func TestToDomainError_MapsNoRowsToNotFound(t *testing.T) {
	mapped := ToDomainError(pgx.ErrNoRows)
	require.NotNil(t, mapped)
	assert.Equal(t, "404", mapped.Code)
}

func TestToDomainError_MapsUniqueViolationToValidation(t *testing.T) {
	mapped := ToDomainError(&pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"})
	require.NotNil(t, mapped)
	assert.Equal(t, "400", mapped.Code)
	assert.Equal(t, http.StatusBadRequest, mapped.HTTPStatus)
}

func TestToDomainError_UnknownBecomesInternal(t *testing.T) {
	mapped := ToDomainError(errors.New("connection reset"))
	require.NotNil(t, mapped)
	assert.Equal(t, "500", mapped.Code)
	assert.Equal(t, "internal server error", mapped.Message, "internals must not leak to clients")
}
