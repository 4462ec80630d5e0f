package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateDTO(t *testing.T) {
	type sample struct {
		Name string `validate:"required,max=5"`
	}

	t.Run("valid struct passes", func(t *testing.T) {
		assert.NoError(t, ValidateDTO(&sample{Name: "abc"}))
	})

	t.Run("rule failure names the field and tag", func(t *testing.T) {
		err := ValidateDTO(&sample{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Name")
		assert.Contains(t, err.Error(), "required")
	})

	t.Run("non-struct input is an error", func(t *testing.T) {
		assert.Error(t, ValidateDTO(42))
	})
}
