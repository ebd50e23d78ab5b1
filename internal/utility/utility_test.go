package utility

import (
	"testing"

	"agri_holding/internal/common"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	assert.Equal(t, "farm-records", Slugify("Farm Records"))
	assert.Equal(t, "kashari-dairy-q3-2026", Slugify("  Kashari Dairy: Q3 / 2026 "))
	assert.Equal(t, "records", Slugify("!!!"))
	assert.Equal(t, "caf-loans", Slugify("Café loans"))
}

func TestContains(t *testing.T) {
	assert.True(t, Contains([]int{1, 2}, 2))
	assert.False(t, Contains([]int{1, 2}, 3))
}

func TestValidateEmail(t *testing.T) {
	assert.NoError(t, ValidateEmail("manager@muheesi.co.ug"))
	assert.ErrorIs(t, ValidateEmail("not-an-email"), common.ErrInvalidEmail)
}
