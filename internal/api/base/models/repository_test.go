package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPaginateResult(t *testing.T) {
	r := NewPaginateResult([]string{"a", "b"}, 2, 2, 5)
	assert.Equal(t, int64(3), r.TotalPage)
	assert.Equal(t, int64(2), r.ItemCount)

	empty := NewPaginateResult([]string{}, 1, 10, 0)
	assert.Equal(t, int64(0), empty.TotalPage)
}
