package helpers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStrPanic(t *testing.T) {
	assert.Equal(t, "x", StrPanic("x", "boom"))
	assert.PanicsWithValue(t, "boom", func() { StrPanic("", "boom") })
}

func TestNilPanic(t *testing.T) {
	v := 1
	assert.Same(t, &v, NilPanic(&v, "boom"))
	assert.Equal(t, 0, NilPanic(0, "boom"))

	var p *int
	assert.PanicsWithValue(t, "boom", func() { NilPanic(p, "boom") })

	var m map[string]string
	assert.PanicsWithValue(t, "boom", func() { NilPanic(m, "boom") })

	var f func()
	assert.PanicsWithValue(t, "boom", func() { NilPanic(f, "boom") })

	var i any
	assert.PanicsWithValue(t, "boom", func() { NilPanic(i, "boom") })
}
