package apperr

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindSurvivesWrapping(t *testing.T) {
	err := fmt.Errorf("validation failed: %w", Validation("name is required"))

	assert.True(t, IsValidation(err))
	assert.False(t, IsNotFound(err))
	assert.Equal(t, "validation", Kind(err))
	assert.Equal(t, "validation failed: name is required", err.Error())
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"validation", Validation("bad"), http.StatusBadRequest},
		{"conflict", fmt.Errorf("create: %w", Conflict("team name already exists")), http.StatusBadRequest},
		{"not found", NotFound("team not found"), http.StatusNotFound},
		{"store failure", fmt.Errorf("connection reset"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HTTPStatus(tt.err))
		})
	}
}

func TestMessage(t *testing.T) {
	assert.Equal(t, "team not found", Message(fmt.Errorf("get: %w", NotFound("team not found"))))
	assert.Equal(t, "slot taken", Message(fmt.Errorf("commit: %w", Conflict("slot taken"))))
	assert.Equal(t, "internal error", Message(fmt.Errorf("dial tcp: refused")))
}
