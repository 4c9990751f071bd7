package entrypoint

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mimiru/mimiru/internal/config"
)

func TestResolveCSRFSecret_ExplicitSecretWins(t *testing.T) {
	secret, generated, err := resolveCSRFSecret(config.Auth{
		CSRFSecret:    "explicit-csrf-secret",
		SessionSecret: "session-secret",
	})

	require.NoError(t, err)
	assert.False(t, generated)
	assert.Equal(t, []byte("explicit-csrf-secret"), secret)
}

func TestResolveCSRFSecret_FallsBackToSessionSecret(t *testing.T) {
	secret, generated, err := resolveCSRFSecret(config.Auth{
		SessionSecret: "session-secret",
	})

	require.NoError(t, err)
	assert.False(t, generated)
	assert.Equal(t, []byte("session-secret"), secret)
}

func TestResolveCSRFSecret_GeneratesWhenUnconfigured(t *testing.T) {
	secret, generated, err := resolveCSRFSecret(config.Auth{})

	require.NoError(t, err)
	assert.True(t, generated)
	assert.Len(t, secret, 32)
}
