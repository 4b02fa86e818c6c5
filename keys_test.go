package trellis_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/trellis"
)

func TestKeyString(t *testing.T) {
	require.Equal(t, "trellis context key: RequestIDKey", trellis.RequestIDKey.String())
}

func TestKeyDoesNotCollideWithString(t *testing.T) {
	// Arrange
	ctx := context.WithValue(context.Background(), trellis.RequestIDKey, "abc")

	// Act
	typed := ctx.Value(trellis.RequestIDKey)
	untyped := ctx.Value("RequestIDKey")

	// Assert
	require.Equal(t, "abc", typed)
	require.Nil(t, untyped)
}
