package storage

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStorage_SaveOpenDelete(t *testing.T) {
	ctx := context.Background()
	s, err := NewLocalStorage(t.TempDir(), "http://localhost:8080/uploads/")
	require.NoError(t, err)

	key, err := s.Save(ctx, "leave/abc.pdf", strings.NewReader("%PDF-1.4"), "application/pdf")
	require.NoError(t, err)
	assert.Equal(t, "leave/abc.pdf", key)
	assert.Equal(t, "http://localhost:8080/uploads/leave/abc.pdf", s.URL(key))

	f, err := s.Open(ctx, key)
	require.NoError(t, err)
	content, err := io.ReadAll(f)
	require.NoError(t, f.Close())
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.4", string(content))

	require.NoError(t, s.Delete(ctx, key))
	require.NoError(t, s.Delete(ctx, key))

	_, err = s.Open(ctx, key)
	assert.Error(t, err)
}

func TestLocalStorage_RejectsTraversal(t *testing.T) {
	s, err := NewLocalStorage(t.TempDir(), "http://localhost/uploads")
	require.NoError(t, err)

	_, err = s.Save(context.Background(), "../outside.txt", strings.NewReader("x"), "text/plain")
	assert.ErrorIs(t, err, ErrInvalidPath)
}
