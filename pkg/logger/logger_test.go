package logger

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	level, err := ParseLevel("")
	require.NoError(t, err)
	require.Equal(t, INFO, level)

	level, err = ParseLevel("Warning")
	require.NoError(t, err)
	require.Equal(t, WARNING, level)

	_, err = ParseLevel("verbose")
	require.Error(t, err)
}
