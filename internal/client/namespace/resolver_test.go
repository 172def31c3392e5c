package namespace

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nvoronin/daybook/internal/logging"
)

type fakeKV struct {
	data   map[string][]byte
	getErr error
}

func newFakeKV() *fakeKV {
	return &fakeKV{data: make(map[string][]byte)}
}

func (f *fakeKV) Get(ctx context.Context, key string) ([]byte, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.data[key], nil
}

func (f *fakeKV) Set(ctx context.Context, key string, value []byte) error {
	f.data[key] = value
	return nil
}

func (f *fakeKV) Delete(ctx context.Context, key string) error {
	delete(f.data, key)
	return nil
}

func testLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestResolver_DefaultsAndPersists(t *testing.T) {
	kv := newFakeKV()
	r := NewResolver(kv, testLogger())
	ctx := context.Background()

	owner, err := r.Current(ctx)
	require.NoError(t, err)
	assert.Equal(t, DefaultOwner, owner)
	assert.Equal(t, []byte(DefaultOwner), kv.data[ownerKey], "the default is written back, not regenerated")

	// Stable across calls.
	again, err := r.Current(ctx)
	require.NoError(t, err)
	assert.Equal(t, owner, again)
}

func TestResolver_ReturnsStoredOwner(t *testing.T) {
	kv := newFakeKV()
	kv.data[ownerKey] = []byte("research-box")
	r := NewResolver(kv, testLogger())

	owner, err := r.Current(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "research-box", owner)
}

func TestResolver_Store(t *testing.T) {
	kv := newFakeKV()
	r := NewResolver(kv, testLogger())
	ctx := context.Background()

	require.NoError(t, r.Store(ctx, "shared-lab"))

	owner, err := r.Current(ctx)
	require.NoError(t, err)
	assert.Equal(t, "shared-lab", owner)
}

func TestResolver_StoreRejectsEmpty(t *testing.T) {
	r := NewResolver(newFakeKV(), testLogger())

	assert.ErrorIs(t, r.Store(context.Background(), "  "), ErrEmptyOwner)
}

func TestResolver_StorageFailureFallsBackToDefault(t *testing.T) {
	kv := newFakeKV()
	kv.getErr = errors.New("storage disabled")
	r := NewResolver(kv, testLogger())

	owner, err := r.Current(context.Background())
	require.NoError(t, err)
	assert.Equal(t, DefaultOwner, owner)
}
