package utils

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUnpack2(t *testing.T) {
	a, b := Unpack2([]string{"strconv", "Itoa", "x"})
	assert.Equal(t, "strconv", a)
	assert.Equal(t, "Itoa", b)

	a, b = Unpack2([]string{"main"})
	assert.Equal(t, "main", a)
	assert.Empty(t, b)

	a, b = Unpack2([]string(nil))
	assert.Empty(t, a)
	assert.Empty(t, b)
}

func TestIsInRange(t *testing.T) {
	assert.True(t, IsInRange[int64](math.MinInt8, -128, math.MaxInt8))
	assert.False(t, IsInRange[int64](math.MinInt8, 128, math.MaxInt8))
	assert.True(t, IsInRange(0, 0, 0))
	assert.False(t, IsInRange(0.0, -0.5, 1.0))
}
