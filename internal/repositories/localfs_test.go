package repositories

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type readerWithError struct{}

func (readerWithError) Read(_ []byte) (int, error) {
	return 0, errors.New("test error")
}

func newLocalStore(t *testing.T) *LocalStore {
	t.Helper()
	s, err := NewLocalStore(t.TempDir(), "http://localhost:5001/blobs/", getLogger().WithField("test", t.Name()))
	require.NoError(t, err)
	return s
}

func TestLocalStore_PutOpenDelete(t *testing.T) {
	s := newLocalStore(t)
	ctx := context.Background()
	name := "1700000000000000000_notes.txt"

	err := s.Put(ctx, name, strings.NewReader("Now you see me"), PutOptions{
		ContentType: "text/plain",
		Size:        -1,
		Metadata:    map[string]string{"accessType": "private"},
	})
	require.NoError(t, err)

	info, err := s.Stat(ctx, name)
	require.NoError(t, err)
	assert.Equal(t, &BlobInfo{Size: 14, ContentType: "text/plain"}, info)

	rc, err := s.Open(ctx, name)
	require.NoError(t, err)
	b, err := io.ReadAll(rc)
	require.NoError(t, err)
	require.NoError(t, rc.Close())
	assert.Equal(t, "Now you see me", string(b))

	require.NoError(t, s.Delete(ctx, name))
	_, err = s.Stat(ctx, name)
	assert.ErrorIs(t, err, ErrBlobNotFound)

	_, err = s.Open(ctx, name)
	assert.ErrorIs(t, err, ErrBlobNotFound)
	assert.ErrorIs(t, s.Delete(ctx, name), ErrBlobNotFound)
}

func TestLocalStore_FailedWriteLeavesNothing(t *testing.T) {
	s := newLocalStore(t)
	ctx := context.Background()
	name := "1700000000000000001_broken.bin"

	err := s.Put(ctx, name, readerWithError{}, PutOptions{Size: -1})
	assert.ErrorIs(t, err, ErrCantWriteBlob)

	_, err = s.Stat(ctx, name)
	assert.ErrorIs(t, err, ErrBlobNotFound)

	entries, err := os.ReadDir(filepath.Join(s.root, objectsDir))
	require.NoError(t, err)
	assert.Empty(t, entries, "temp file must be removed")
}

func TestLocalStore_CancelledContext(t *testing.T) {
	s := newLocalStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := s.Put(ctx, "1_cancelled.txt", strings.NewReader("data"), PutOptions{Size: -1})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestLocalStore_InvalidNames(t *testing.T) {
	s := newLocalStore(t)
	ctx := context.Background()
	for _, name := range []string{"", ".", "..", "../escape", `a\b`, "dir/file"} {
		t.Run(name, func(t *testing.T) {
			err := s.Put(ctx, name, strings.NewReader("x"), PutOptions{Size: 1})
			assert.ErrorIs(t, err, ErrInvalidBlobName)
			_, err = s.Open(ctx, name)
			assert.ErrorIs(t, err, ErrInvalidBlobName)
		})
	}
}

func TestLocalStore_URL(t *testing.T) {
	s := newLocalStore(t)
	assert.Equal(t, "http://localhost:5001/blobs/1_my%20report.pdf", s.URL("1_my report.pdf"))
}
