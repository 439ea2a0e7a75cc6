package storage

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStorageRoundTrip(t *testing.T) {
	ctx := context.Background()
	store, err := NewLocalStorage(t.TempDir(), "http://localhost:8080/uploads")
	require.NoError(t, err)

	url, err := store.Upload(ctx, "uploads/u1/photo.png", strings.NewReader("pngdata"), "image/png")
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080/uploads/uploads/u1/photo.png", url)

	exists, err := store.Exists(ctx, "uploads/u1/photo.png")
	require.NoError(t, err)
	assert.True(t, exists)

	require.NoError(t, store.Delete(ctx, "uploads/u1/photo.png"))

	exists, err = store.Exists(ctx, "uploads/u1/photo.png")
	require.NoError(t, err)
	assert.False(t, exists)

	// Deleting a missing file is not an error.
	assert.NoError(t, store.Delete(ctx, "uploads/u1/photo.png"))
}
