package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword(t *testing.T) {
	hp := HashPassword("corect horse batery staple")

	parsed, err := ParsePasswordString(hp.String())
	require.NoError(t, err)
	assert.Equal(t, hp, parsed)

	ok, err := CheckPassword("corect horse batery staple", parsed)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = CheckPassword("hunter2", parsed)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestParseArgon2idConfig(t *testing.T) {
	cfg, err := ParseArgon2idConfig("t=1,m=40960,p=1,l=64")
	require.NoError(t, err)
	assert.Equal(t, Argon2idConfig{Time: 1, Memory: 40960, Threads: 1, KeyLength: 64}, cfg)
	assert.Equal(t, "t=1,m=40960,p=1,l=64", cfg.String())

	_, err = ParseArgon2idConfig("nonsense")
	assert.Error(t, err)
}
