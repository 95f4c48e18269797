package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	os.Unsetenv("VC_HASH_ALGORITHM")
	os.Unsetenv("VC_SDJWT_MEDIA_TYPE")

	d, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "sha-256", d.HashAlgorithm)
	assert.Equal(t, "vc+sd-jwt", d.SDJWTMediaType)
	assert.Equal(t, "application/vc+cose", d.SDCWTMediaType)
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("VC_HASH_ALGORITHM", "sha-512")

	d, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "sha-512", d.HashAlgorithm)
}

func TestCurrent_ReflectsEnvOverride(t *testing.T) {
	t.Setenv("VC_TRACING_SERVICE_NAME", "vc-issuer")

	d := Current()
	assert.Equal(t, "vc-issuer", d.TracingService)
}
