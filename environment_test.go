package trellis_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/trellis"
)

func TestEnvironmentValid(t *testing.T) {
	for _, tc := range []struct {
		name  string
		input trellis.Environment
		valid bool
	}{
		{"Development", trellis.Development, true},
		{"Production", trellis.Production, true},
		{"Testing", trellis.Testing, true},
		{"Zero-Value", trellis.Environment(""), false},
		{"Lowercase", trellis.Environment("production"), false},
	} {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.input.Valid()
			if tc.valid {
				require.Nil(t, err)
				return
			}
			require.ErrorIs(t, err, trellis.ErrNotValid)
		})
	}
}

func TestEnvVarOr(t *testing.T) {
	// Arrange
	t.Setenv("TRELLIS_TEST_BOOL", "TRUE")
	t.Setenv("TRELLIS_TEST_DURATION", "3s")
	t.Setenv("TRELLIS_TEST_ENV", "staging")
	t.Setenv("TRELLIS_TEST_INT", "nope")
	t.Setenv("TRELLIS_TEST_INT64", "1048576")
	t.Setenv("TRELLIS_TEST_STRING", "")

	// Act + Assert
	require.True(t, trellis.EnvVarOrBool("TRELLIS_TEST_BOOL", false))
	require.Equal(t, 3*time.Second, trellis.EnvVarOrDuration("TRELLIS_TEST_DURATION", time.Second))
	require.Equal(t, trellis.Staging, trellis.EnvVarOrEnv("TRELLIS_TEST_ENV", trellis.Development))
	require.Equal(t, 7, trellis.EnvVarOrInt("TRELLIS_TEST_INT", 7))
	require.Equal(t, int64(1<<20), trellis.EnvVarOrInt64("TRELLIS_TEST_INT64", 0))
	require.Equal(t, "fallback", trellis.EnvVarOrString("TRELLIS_TEST_STRING", "fallback"))
}
