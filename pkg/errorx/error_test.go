package errorx

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	err := New(NotFound, "Not found post %d", 5)
	require.Equal(t, "Not found post 5", err.Error())
	require.Equal(t, NotFound, err.Code)
}

func TestIs(t *testing.T) {
	err := fmt.Errorf("wrapped: %w", New(Unauthenticated, "Need login"))
	require.True(t, Is(err, Unauthenticated))
	require.False(t, Is(err, NotFound))
	require.False(t, Is(fmt.Errorf("plain"), NotFound))
	require.False(t, Is(Unknown, NotFound))
}
