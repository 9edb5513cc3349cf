package helpers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalculateSkipLimit(t *testing.T) {
	skip, limit := CalculateSkipLimit(1, 10)
	assert.Equal(t, int64(0), skip)
	assert.Equal(t, int64(10), limit)

	skip, limit = CalculateSkipLimit(3, 25)
	assert.Equal(t, int64(50), skip)
	assert.Equal(t, int64(25), limit)

	// out-of-range inputs fall back to defaults
	skip, limit = CalculateSkipLimit(0, 0)
	assert.Equal(t, int64(0), skip)
	assert.Equal(t, int64(DefaultPageSize), limit)

	_, limit = CalculateSkipLimit(1, MaxPageSize+1)
	assert.Equal(t, int64(DefaultPageSize), limit)
}

func TestNewPaginationInfo(t *testing.T) {
	info := NewPaginationInfo(45, 2, 10)
	assert.Equal(t, 2, info.CurrentPage)
	assert.Equal(t, 5, info.TotalPages)
	assert.Equal(t, 10, info.PageSize)
	assert.Equal(t, int64(45), info.TotalItems)

	// an empty result set still reports one page
	info = NewPaginationInfo(0, 1, 10)
	assert.Equal(t, 1, info.TotalPages)

	// the current page is clamped to the last page
	info = NewPaginationInfo(5, 9, 10)
	assert.Equal(t, 1, info.CurrentPage)
}
