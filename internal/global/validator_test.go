package global

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInitValidator_CustomTags(t *testing.T) {
	InitValidator()

	assert.NoError(t, Validate.Var("Kanoni coffee", "no_xss"))
	assert.Error(t, Validate.Var("<script>alert(1)</script>", "no_xss"))

	assert.NoError(t, Validate.Var("", "field_name"))
	assert.NoError(t, Validate.Var("daily_production", "field_name"))
	assert.NoError(t, Validate.Var("location.district", "field_name"))
	assert.Error(t, Validate.Var("1name", "field_name"))
	assert.Error(t, Validate.Var("name; DROP TABLE farms", "field_name"))
}

func TestInitValidator_OnlyRegistersUsedTags(t *testing.T) {
	InitValidator()

	assert.Panics(t, func() { _ = Validate.Var("farm-records", "entity") })
	assert.Panics(t, func() { _ = Validate.Var("x", "no_sql_injection") })
}
