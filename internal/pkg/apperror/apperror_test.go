package apperror

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPStatusMapping(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want int
	}{
		{"validation", Validation("bad input"), 400},
		{"plan required", PlanRequired(), 400},
		{"not found", NotFound("gone"), 404},
		{"quota exceeded", QuotaExceeded("over"), 403},
		{"conflict", Conflict("dup"), 409},
		{"internal", Internal(errors.New("boom")), 500},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.HTTPStatus())
		})
	}
}

func TestErrorStringHidesNothingInternally(t *testing.T) {
	cause := errors.New("pq: connection refused")
	err := Internal(cause)

	assert.Contains(t, err.Error(), "connection refused")
	assert.ErrorIs(t, err, cause)
}

func TestAsUnwrapsThroughWrapping(t *testing.T) {
	base := NotFound("File not found or unauthorized")
	wrapped := fmt.Errorf("delete: %w", base)

	got, ok := As(wrapped)
	require.True(t, ok)
	assert.Equal(t, KindNotFound, got.Kind)
	assert.Equal(t, base.Message, got.Message)

	_, ok = As(errors.New("plain"))
	assert.False(t, ok)
}

func TestWithDetails(t *testing.T) {
	err := Validation("invalid payload").WithDetails(map[string]interface{}{"field": "email"})
	assert.Equal(t, "email", err.Details["field"])
}
