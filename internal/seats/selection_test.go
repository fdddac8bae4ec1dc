package seats

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToggleAddsAndRemoves(t *testing.T) {
	selection := Toggle(nil, "A1", nil)
	assert.Equal(t, []string{"A1"}, selection)

	selection = Toggle(selection, "F3", nil)
	assert.Equal(t, []string{"A1", "F3"}, selection)

	// Toggling the same seat twice is a no-op overall
	selection = Toggle(selection, "A1", nil)
	assert.Equal(t, []string{"F3"}, selection)
}

func TestToggleBookedSeatIsNoOp(t *testing.T) {
	booked := map[string]bool{"B2": true}

	selection := Toggle([]string{"A1"}, "B2", booked)
	assert.Equal(t, []string{"A1"}, selection)
}

func TestToggleInvalidSeatIsNoOp(t *testing.T) {
	selection := Toggle([]string{"A1"}, "Z99", nil)
	assert.Equal(t, []string{"A1"}, selection)

	selection = Toggle(selection, "", nil)
	assert.Equal(t, []string{"A1"}, selection)
}

func TestToggleDoesNotMutateInput(t *testing.T) {
	original := []string{"A1", "B2", "C3"}

	Toggle(original, "B2", nil)
	assert.Equal(t, []string{"A1", "B2", "C3"}, original)

	Toggle(original, "D4", nil)
	assert.Equal(t, []string{"A1", "B2", "C3"}, original)
}

func TestTogglePreservesOrder(t *testing.T) {
	selection := []string{"A1", "B2", "C3"}

	selection = Toggle(selection, "B2", nil)
	assert.Equal(t, []string{"A1", "C3"}, selection)
}
