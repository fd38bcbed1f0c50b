package id

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewMonotonic(t *testing.T) {
	t.Parallel()

	prev := New()
	for i := 0; i < 100; i++ {
		next := New()
		assert.Len(t, next, 26)
		assert.Greater(t, next, prev)
		prev = next
	}
}
