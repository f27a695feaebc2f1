package identity

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/polkiloo/eventhub/internal/config"
)

func TestNewDirectory(t *testing.T) {
	dir := newDirectory(clientParams{Config: &config.Config{}, Logger: testLogger()})
	client, ok := dir.(*Client)
	require.True(t, ok)
	require.Nil(t, client.users)

	dir = newDirectory(clientParams{Config: &config.Config{ClerkSecretKey: "sk_test"}, Logger: testLogger()})
	require.NotNil(t, dir.(*Client).users)
}

func TestNewWebhookVerifier(t *testing.T) {
	v, err := newWebhookVerifier(&config.Config{})
	require.NoError(t, err)
	require.Nil(t, v)

	v, err = newWebhookVerifier(&config.Config{ClerkWebhookSecret: testWebhookSecret})
	require.NoError(t, err)
	require.NotNil(t, v)
}
