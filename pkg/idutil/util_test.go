package idutil

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewIDIncreasing(t *testing.T) {
	prev := NewID()
	for i := 0; i < 100; i++ {
		id := NewID()
		require.Greater(t, id, prev)
		prev = id
	}
}
