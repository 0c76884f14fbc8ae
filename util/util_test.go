package util

import (
	"github.com/stretchr/testify/assert"
	"testing"
)

func TestIsSymbol(t *testing.T) {
	for _, b := range []byte("{}()[].,;+-*/&|<>=~") {
		assert.True(t, IsSymbol(b), string(b))
	}
	for _, b := range []byte("aZ_0 \"'!@#$%^?:") {
		assert.False(t, IsSymbol(b), string(b))
	}
}

func TestIsSpace(t *testing.T) {
	for _, b := range []byte(" \t\n\f\r") {
		assert.True(t, IsSpace(b))
	}
	assert.False(t, IsSpace('\v'))
	assert.False(t, IsSpace('a'))
}

func TestIsLetterOrUnderscoreOrNumber(t *testing.T) {
	testData := []struct {
		b      byte
		expect bool
	}{
		{'a', true},
		{'Z', true},
		{'_', true},
		{'7', true},
		{'$', false},
		{'"', false},
	}
	for _, data := range testData {
		assert.Equal(t, data.expect, IsLetterOrUnderscoreOrNumber(data.b), string(data.b))
	}
	assert.True(t, IsLetterOrUnderscore('_'))
	assert.False(t, IsLetterOrUnderscore('1'))
	assert.True(t, IsNumber('0'))
	assert.False(t, IsNumber('a'))
}
