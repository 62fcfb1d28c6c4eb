package engine

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolutionError(t *testing.T) {
	err := &ResolutionError{ID: "tailwindcss/unknown", Base: "/"}
	assert.Equal(t, `unsupported import "tailwindcss/unknown"`, err.Error())
	assert.ErrorIs(t, err, ErrUnsupportedImport)

	wrapped := fmt.Errorf("compile: %w", err)
	assert.ErrorIs(t, wrapped, ErrUnsupportedImport)

	var target *ResolutionError
	require.True(t, errors.As(wrapped, &target))
	assert.Equal(t, "tailwindcss/unknown", target.ID)
}
