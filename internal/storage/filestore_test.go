package storage

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMinioStore_RequiresEndpointAndBucket(t *testing.T) {
	_, err := NewMinioStore(Config{Bucket: "docs"})
	assert.Error(t, err)

	_, err = NewMinioStore(Config{Endpoint: "localhost:9000"})
	assert.Error(t, err)
}

func TestMinioStore_RejectsEmptyKey(t *testing.T) {
	s, err := NewMinioStore(Config{Endpoint: "localhost:9000", Bucket: "docs", SkipTLSVerify: true})
	require.NoError(t, err)

	ctx := context.Background()
	assert.ErrorIs(t, s.Put(ctx, "  ", "application/pdf", strings.NewReader("x"), 1), ErrEmptyKey)
	_, err = s.Get(ctx, "")
	assert.ErrorIs(t, err, ErrEmptyKey)
	assert.ErrorIs(t, s.Remove(ctx, ""), ErrEmptyKey)
}
