package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatus(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{Validation("Workout type is required"), http.StatusBadRequest},
		{NotFound("Invalid workout type", nil), http.StatusBadRequest},
		{Collaborator("advisor failed", errors.New("exit status 1")), http.StatusInternalServerError},
		{Internal("boom", nil), http.StatusInternalServerError},
		{errors.New("plain"), http.StatusInternalServerError},
		{fmt.Errorf("wrapped: %w", Validation("bad")), http.StatusBadRequest},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Status(tc.err), tc.err.Error())
	}
}

func TestIsMatchesKind(t *testing.T) {
	err := fmt.Errorf("handler: %w", Collaborator("advisor failed", errors.New("timeout")))

	assert.True(t, errors.Is(err, ErrCollaborator))
	assert.False(t, errors.Is(err, ErrValidation))
}

func TestUnwrapReachesCause(t *testing.T) {
	cause := errors.New("exit status 2")
	err := Collaborator("advisor failed", cause)
	assert.ErrorIs(t, err, cause)
}

func TestMessage(t *testing.T) {
	assert.Equal(t, "Missing required fields", Message(Validation("Missing required fields"), "x"))
	assert.Equal(t, "fallback", Message(errors.New("secret detail"), "fallback"))
	assert.Equal(t, "fallback", Message(Internal("", nil), "fallback"))
}

func TestErrorString(t *testing.T) {
	assert.Equal(t, "[VALIDATION_ERROR] bad", Validation("bad").Error())
	assert.Equal(t, "[INTERNAL_ERROR] boom: cause", Internal("boom", errors.New("cause")).Error())
}
