package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomz197/asteroids-sim/internal/config"
)

func TestGetEnv(t *testing.T) {
	t.Setenv("SIM_TEST_STR", "hello")
	assert.Equal(t, "hello", config.GetEnv("SIM_TEST_STR", "x"))
	assert.Equal(t, "x", config.GetEnv("SIM_TEST_UNSET", "x"))
}

func TestGetEnvTyped(t *testing.T) {
	t.Setenv("SIM_TEST_INT", "12")
	t.Setenv("SIM_TEST_FLOAT", "0.25")
	t.Setenv("SIM_TEST_BOOL", "1")
	t.Setenv("SIM_TEST_EMPTY", "")

	n, err := config.GetEnvInt("SIM_TEST_INT", 3)
	require.NoError(t, err)
	assert.Equal(t, 12, n)

	f, err := config.GetEnvFloat("SIM_TEST_FLOAT", 1)
	require.NoError(t, err)
	assert.InDelta(t, 0.25, f, 1e-12)

	b, err := config.GetEnvBool("SIM_TEST_BOOL", false)
	require.NoError(t, err)
	assert.True(t, b)

	n, err = config.GetEnvInt("SIM_TEST_EMPTY", 3)
	require.NoError(t, err)
	assert.Equal(t, 3, n, "empty falls back")

	_, err = config.GetEnvInt("SIM_TEST_FLOAT", 3)
	assert.Error(t, err)
}
