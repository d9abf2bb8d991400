package redis_client

import (
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConnect(t *testing.T) {
	server := miniredis.RunT(t)

	t.Setenv("HKMTR_REDIS_ADDRESS", server.Addr())
	t.Setenv("HKMTR_REDIS_DATABASE", "")

	require.NoError(t, Connect())
	t.Cleanup(func() { Client.Close() })

	assert.Equal(t, server.Addr(), Client.Options().Addr)
}

func TestConnectionOptions(t *testing.T) {
	t.Setenv("HKMTR_REDIS_ADDRESS", "")
	t.Setenv("HKMTR_REDIS_PASSWORD", "secret")
	t.Setenv("HKMTR_REDIS_DATABASE", "3")

	options, err := connectionOptions()
	require.NoError(t, err)
	assert.Equal(t, "localhost:6379", options.Addr)
	assert.Equal(t, "secret", options.Password)
	assert.Equal(t, 3, options.DB)

	t.Setenv("HKMTR_REDIS_DATABASE", "three")
	_, err = connectionOptions()
	assert.Error(t, err)
}
