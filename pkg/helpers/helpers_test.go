package helpers

import (
	"context"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("secret1")
	require.NoError(t, err)
	assert.NotEqual(t, "secret1", hash)
	assert.True(t, CompareHashAndPassword(hash, "secret1"))
	assert.False(t, CompareHashAndPassword(hash, "secret2"))
	assert.False(t, CompareHashAndPassword("not-a-hash", "secret1"))
}

func TestCompareDummyPassword_DoesNotPanic(t *testing.T) {
	assert.NotPanics(t, func() { CompareDummyPassword("whatever") })
}

func TestRabbitPublisher_NilIsClosed(t *testing.T) {
	var p *RabbitPublisher
	assert.ErrorIs(t, p.PublishJSON(context.Background(), map[string]string{"a": "b"}), ErrPublisherClosed)
	assert.NotPanics(t, p.Close)
}

func TestPublicURL(t *testing.T) {
	assert.Equal(t, "https://storage.googleapis.com/bucket/uploads/a.png", PublicURL("bucket", "uploads/a.png"))
}

func TestNewLogger_Levels(t *testing.T) {
	assert.Equal(t, logrus.DebugLevel, NewLogger("app", "development", "").GetLevel())
	assert.Equal(t, logrus.InfoLevel, NewLogger("app", "production", "").GetLevel())
	assert.Equal(t, logrus.WarnLevel, NewLogger("app", "production", "warn").GetLevel())
	assert.Equal(t, logrus.InfoLevel, NewLogger("app", "production", "loud").GetLevel())
}
