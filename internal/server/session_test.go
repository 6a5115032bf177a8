package server

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-screener/internal/credentials"
)

func TestSessionCodecRoundTrip(t *testing.T) {
	codec := NewSessionCodec("test-secret-at-least-16-chars")

	expiry := time.Now().Add(time.Hour).Truncate(time.Second)
	original := credentials.Session{
		AccessToken:  "ya29.access",
		RefreshToken: "1//refresh",
		Expiry:       expiry,
	}

	signed, err := codec.Encode(original)
	require.NoError(t, err)
	require.NotEmpty(t, signed)

	decoded, err := codec.Decode(signed)
	require.NoError(t, err)
	assert.Equal(t, original.AccessToken, decoded.AccessToken)
	assert.Equal(t, original.RefreshToken, decoded.RefreshToken)
	assert.True(t, expiry.Equal(decoded.Expiry))
}

func TestSessionCodecRejectsTamperedToken(t *testing.T) {
	codec := NewSessionCodec("test-secret-at-least-16-chars")

	signed, err := codec.Encode(credentials.Session{AccessToken: "a", RefreshToken: "r"})
	require.NoError(t, err)

	_, err = codec.Decode(signed + "x")
	assert.Error(t, err)
}

func TestSessionCodecRejectsWrongSecret(t *testing.T) {
	codec := NewSessionCodec("test-secret-at-least-16-chars")
	other := NewSessionCodec("another-secret-also-16-chars")

	signed, err := codec.Encode(credentials.Session{AccessToken: "a", RefreshToken: "r"})
	require.NoError(t, err)

	_, err = other.Decode(signed)
	assert.Error(t, err)
}

func TestSessionCodecRejectsEmptyToken(t *testing.T) {
	codec := NewSessionCodec("test-secret-at-least-16-chars")

	_, err := codec.Decode("")
	assert.Error(t, err)
}
