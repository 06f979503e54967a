package taskerr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKind_StatusCode(t *testing.T) {
	tests := []struct {
		kind Kind
		want int
	}{
		{KindRequest, http.StatusBadRequest},
		{KindValidation, http.StatusUnprocessableEntity},
		{KindNotFound, http.StatusNotFound},
		{KindForbidden, http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.kind.StatusCode())
			assert.Equal(t, tt.want, newError(tt.kind, "x", "").StatusCode())
		})
	}
}

func TestConstructors_EmptyMessageGetsDefault(t *testing.T) {
	for _, e := range []*Error{Request("", ""), Validation("", ""), NotFound("", ""), Forbidden("", "")} {
		assert.NotEmpty(t, e.Message, e.Kind.String())
	}
}

func TestError_IsMatchesKind(t *testing.T) {
	err := fmt.Errorf("wrapped: %w", NotFound("Task not found", "id=x"))

	assert.True(t, errors.Is(err, ErrNotFound))
	assert.False(t, errors.Is(err, ErrForbidden))

	got, ok := As(err)
	require.True(t, ok)
	assert.Equal(t, "Task not found", got.Message)
	assert.Equal(t, "id=x", got.Detail)
}

func TestCoerce(t *testing.T) {
	t.Run("domain error passes through", func(t *testing.T) {
		orig := Forbidden("nope", "")
		assert.Same(t, orig, Coerce(orig, "Failed to fetch tasks"))
	})

	t.Run("foreign error becomes request", func(t *testing.T) {
		got := Coerce(errors.New("connection refused"), "Failed to fetch tasks")
		assert.Equal(t, KindRequest, got.Kind)
		assert.Equal(t, "Failed to fetch tasks: connection refused", got.Message)
		assert.Equal(t, "connection refused", got.Detail)
	})

	t.Run("nil stays nil", func(t *testing.T) {
		assert.Nil(t, Coerce(nil, "x"))
	})
}

func TestFromStatus(t *testing.T) {
	listKinds := []Kind{KindNotFound, KindForbidden}

	assert.Equal(t, KindNotFound, FromStatus(404, "m", "", listKinds...).Kind)
	assert.Equal(t, KindForbidden, FromStatus(403, "m", "", listKinds...).Kind)
	// 422 is not a list outcome.
	assert.Equal(t, KindRequest, FromStatus(422, "m", "", listKinds...).Kind)
	assert.Equal(t, KindRequest, FromStatus(500, "m", "", listKinds...).Kind)
	assert.Equal(t, KindValidation, FromStatus(422, "m", "", KindValidation).Kind)
}
