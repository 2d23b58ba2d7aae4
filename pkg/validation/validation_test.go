package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateEmail(t *testing.T) {
	assert.NoError(t, ValidateEmail("user@example.com"))
	assert.NoError(t, ValidateEmail("  user@example.com  "))
	assert.Error(t, ValidateEmail(""))
	assert.Error(t, ValidateEmail("not-an-email"))
	assert.Error(t, ValidateEmail("user@"))
	assert.Error(t, ValidateEmail(strings.Repeat("a", 250)+"@example.com"))
}

func TestValidateItemName(t *testing.T) {
	assert.NoError(t, ValidateItemName("Garden Rake"))
	assert.Error(t, ValidateItemName(""))
	assert.Error(t, ValidateItemName("   "))
	assert.Error(t, ValidateItemName(strings.Repeat("x", 201)))
}

func TestValidateCategory(t *testing.T) {
	assert.NoError(t, ValidateCategory("Tools"))
	// Category is optional.
	assert.NoError(t, ValidateCategory(""))
	assert.Error(t, ValidateCategory(strings.Repeat("x", 101)))
}

func TestValidateItemID(t *testing.T) {
	assert.NoError(t, ValidateItemID("a1b2-c3_d4"))
	assert.Error(t, ValidateItemID(""))
	assert.Error(t, ValidateItemID("has space"))
	assert.Error(t, ValidateItemID("../escape"))
	assert.Error(t, ValidateItemID(strings.Repeat("x", 129)))
}
