package stock

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStagedQuantity_AddThenRemoveClamps(t *testing.T) {
	staged := NewStagedQuantity(10)
	assert.Equal(t, 10, staged.Working())
	assert.False(t, staged.Dirty())

	staged.Add(5)
	assert.Equal(t, 15, staged.Working())
	assert.True(t, staged.Dirty())

	staged.Remove(20)
	assert.Equal(t, 0, staged.Working())
	assert.Equal(t, 10, staged.Persisted())
}

func TestStagedQuantity_IgnoresNonPositiveAmounts(t *testing.T) {
	staged := NewStagedQuantity(4)
	staged.Add(0)
	staged.Add(-3)
	staged.Remove(0)
	staged.Remove(-1)
	assert.Equal(t, 4, staged.Working())
	assert.False(t, staged.Dirty())
}

func TestStagedQuantity_Reset(t *testing.T) {
	staged := NewStagedQuantity(7)
	staged.Remove(7)
	assert.Equal(t, 0, staged.Working())

	staged.Reset()
	assert.Equal(t, 7, staged.Working())
	assert.False(t, staged.Dirty())
}

func TestStagedQuantity_NegativePersistedClampsToZero(t *testing.T) {
	staged := NewStagedQuantity(-3)
	assert.Equal(t, 0, staged.Persisted())
	assert.Equal(t, 0, staged.Working())
}
