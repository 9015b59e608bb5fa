package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidEmail(t *testing.T) {
	assert.True(t, IsValidEmail("user@example.com"))
	assert.True(t, IsValidEmail("first.last@sub.example.gr"))
	assert.False(t, IsValidEmail(""))
	assert.False(t, IsValidEmail("no-at-sign"))
	assert.False(t, IsValidEmail("a b@example.com"))
	assert.False(t, IsValidEmail("user@nodot"))
}

func TestIsValidPassword(t *testing.T) {
	assert.True(t, IsValidPassword("S3cret!pass"))
	assert.False(t, IsValidPassword("short1!"))
	assert.False(t, IsValidPassword("lettersonly!"))
	assert.False(t, IsValidPassword("12345678!"))
	assert.False(t, IsValidPassword("Letters123"))
}

func TestIsValidPhone(t *testing.T) {
	assert.True(t, IsValidPhone("+306912345678"))
	assert.True(t, IsValidPhone("2101234567"))
	assert.False(t, IsValidPhone(""))
	assert.False(t, IsValidPhone("123"))
	assert.False(t, IsValidPhone("+30 691 234 5678"))
}
