package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/SscSPs/pos_ledger/internal/core/ports/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFSStore_Put(t *testing.T) {
	root := t.TempDir()
	store, err := NewFSStore(root)
	require.NoError(t, err)

	loc, err := store.Put(context.Background(), "owner-1/receipts/INV-00001.html", &services.Artifact{
		Name:        "INV-00001.html",
		ContentType: "text/html",
		Body:        []byte("<html></html>"),
	})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "owner-1", "receipts", "INV-00001.html"), loc)

	content, err := os.ReadFile(loc)
	require.NoError(t, err)
	assert.Equal(t, "<html></html>", string(content))
}

func TestFSStore_RejectsEscapingKeys(t *testing.T) {
	store, err := NewFSStore(t.TempDir())
	require.NoError(t, err)

	for _, key := range []string{"", "../outside.html", "/etc/passwd"} {
		_, err := store.Put(context.Background(), key, &services.Artifact{Body: []byte("x")})
		assert.Error(t, err, key)
	}
}
