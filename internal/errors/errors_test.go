package errors

import (
	stdErrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetadataFor(t *testing.T) {
	tests := []struct {
		code       Code
		wantStatus int
	}{
		{code: CodeValidation, wantStatus: http.StatusBadRequest},
		{code: CodeNotFound, wantStatus: http.StatusNotFound},
		{code: CodeStateConflict, wantStatus: http.StatusUnprocessableEntity},
		{code: CodeDependency, wantStatus: http.StatusServiceUnavailable},
		{code: Code("SOMETHING_ELSE"), wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			assert.Equal(t, tt.wantStatus, MetadataFor(tt.code).HTTPStatus)
		})
	}
}

func TestWrapAndAs(t *testing.T) {
	cause := stdErrors.New("connection refused")
	err := fmt.Errorf("repo.ListProducts: %w", Wrap(CodeDependency, cause, "catalog unavailable"))

	typed := As(err)
	require.NotNil(t, typed)
	assert.Equal(t, CodeDependency, typed.Code())
	assert.Equal(t, "catalog unavailable", typed.Message())
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "repo.ListProducts: DEPENDENCY_ERROR: catalog unavailable: connection refused", err.Error())
}

func TestAsPlainError(t *testing.T) {
	assert.Nil(t, As(nil))
	assert.Nil(t, As(stdErrors.New("plain")))
}

func TestWithDetails(t *testing.T) {
	err := New(CodeValidation, "validation failed").WithDetails(map[string]string{"product_id": "is required"})
	assert.Equal(t, map[string]string{"product_id": "is required"}, err.Details())

	var nilErr *Error
	assert.Nil(t, nilErr.WithDetails("x"))
	assert.Equal(t, CodeInternal, nilErr.Code())
}
