package objectstore

import (
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestPresigner(t *testing.T) *Presigner {
	t.Helper()

	p, err := NewPresigner(t.Context(), Config{
		Bucket:    "posters-test",
		Region:    "us-east-1",
		AccessKey: "test-access-key",
		SecretKey: "test-secret-key",
		Endpoint:  "http://127.0.0.1:9000",
	})
	require.NoError(t, err, "presigner should build without talking to the network")
	return p
}

func Test_Presigner(t *testing.T) {
	t.Parallel()

	t.Run("fail without bucket", func(t *testing.T) {
		_, err := NewPresigner(t.Context(), Config{})
		require.Error(t, err)
	})

	t.Run("presign GET", func(t *testing.T) {
		p := newTestPresigner(t)

		signed, err := p.PresignedURL(t.Context(), "posters/alien.jpg", OperationGet, 15*time.Minute)
		require.NoError(t, err)

		u, err := url.Parse(signed)
		require.NoError(t, err)
		assert.Contains(t, u.Path, "posters-test", "path style url should carry the bucket")
		assert.Contains(t, u.Path, "posters/alien.jpg")
		assert.Equal(t, "900", u.Query().Get("X-Amz-Expires"), "expiry should be the requested seconds")
		assert.NotEmpty(t, u.Query().Get("X-Amz-Signature"))
	})

	t.Run("presign PUT", func(t *testing.T) {
		p := newTestPresigner(t)

		signed, err := p.PresignedURL(t.Context(), "posters/alien.jpg", OperationPut, 0)
		require.NoError(t, err)

		u, err := url.Parse(signed)
		require.NoError(t, err)
		assert.Equal(t, "3600", u.Query().Get("X-Amz-Expires"), "zero expiry should fall back to the one hour default")
	})

	t.Run("invalid operation", func(t *testing.T) {
		p := newTestPresigner(t)

		_, err := p.PresignedURL(t.Context(), "posters/alien.jpg", Operation("DELETE"), time.Minute)
		require.Error(t, err)
	})
}

func Test_PosterKey(t *testing.T) {
	t.Parallel()

	first := PosterKey()
	second := PosterKey()

	assert.True(t, strings.HasPrefix(first, "posters/"), "keys live under the posters prefix")
	assert.NotEqual(t, first, second, "every key should be unique")
}
