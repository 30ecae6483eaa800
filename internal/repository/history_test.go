package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func marker(applied *[]int, n int) Compensation {
	return func(tx *gorm.DB) error {
		*applied = append(*applied, n)
		return nil
	}
}

func TestHistoryPopOrderAndBound(t *testing.T) {
	var applied []int
	h := NewHistory(2)
	h.Push(marker(&applied, 1))
	h.Push(marker(&applied, 2))
	h.Push(marker(&applied, 3)) // evicts 1

	assert.Equal(t, 2, h.Len())
	for {
		c, ok := h.Pop()
		if !ok {
			break
		}
		require.NoError(t, c(nil))
	}
	assert.Equal(t, []int{3, 2}, applied, "newest first, oldest evicted")
}

func TestHistoryMinimumCapacityIsOne(t *testing.T) {
	var applied []int
	h := NewHistory(0)
	h.Push(marker(&applied, 1))
	h.Push(marker(&applied, 2))
	assert.Equal(t, 1, h.Len())
}

func TestHistoryPopEmpty(t *testing.T) {
	h := NewHistory(1)
	_, ok := h.Pop()
	assert.False(t, ok)
}
