package syncstate

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nvoronin/daybook/internal/models"
)

type fakeKV struct {
	data map[string][]byte
}

func newFakeKV() *fakeKV {
	return &fakeKV{data: make(map[string][]byte)}
}

func (f *fakeKV) Get(ctx context.Context, key string) ([]byte, error) {
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

func TestTracker_FreshByDefault(t *testing.T) {
	tr := NewTracker(newFakeKV())

	pulled, err := tr.WasPulled(context.Background(), models.KindTasks, "primary")
	require.NoError(t, err)
	assert.False(t, pulled)
}

func TestTracker_MarkPulled(t *testing.T) {
	tr := NewTracker(newFakeKV())
	ctx := context.Background()

	require.NoError(t, tr.MarkPulled(ctx, models.KindTasks, "primary"))

	pulled, err := tr.WasPulled(ctx, models.KindTasks, "primary")
	require.NoError(t, err)
	assert.True(t, pulled)

	last, err := tr.LastPulledAt(ctx, models.KindTasks, "primary")
	require.NoError(t, err)
	assert.False(t, last.IsZero())
}

func TestTracker_ScopedByKindAndOwner(t *testing.T) {
	tr := NewTracker(newFakeKV())
	ctx := context.Background()

	require.NoError(t, tr.MarkPulled(ctx, models.KindTasks, "owner-a"))

	pulled, _ := tr.WasPulled(ctx, models.KindTodos, "owner-a")
	assert.False(t, pulled, "another collection stays fresh")

	pulled, _ = tr.WasPulled(ctx, models.KindTasks, "owner-b")
	assert.False(t, pulled, "another owner stays fresh")
}

func TestTracker_Reset(t *testing.T) {
	tr := NewTracker(newFakeKV())
	ctx := context.Background()

	require.NoError(t, tr.MarkPulled(ctx, models.KindTasks, "primary"))
	require.NoError(t, tr.Reset(ctx, models.KindTasks, "primary"))

	pulled, _ := tr.WasPulled(ctx, models.KindTasks, "primary")
	assert.False(t, pulled)

	last, err := tr.LastPulledAt(ctx, models.KindTasks, "primary")
	require.NoError(t, err)
	assert.True(t, last.IsZero())
}

func TestTracker_ResetAll(t *testing.T) {
	tr := NewTracker(newFakeKV())
	ctx := context.Background()

	for _, kind := range models.Kinds() {
		require.NoError(t, tr.MarkPulled(ctx, kind, "owner-a"))
	}
	require.NoError(t, tr.MarkPulled(ctx, models.KindTasks, "owner-b"))

	require.NoError(t, tr.ResetAll(ctx, "owner-a"))

	for _, kind := range models.Kinds() {
		pulled, _ := tr.WasPulled(ctx, kind, "owner-a")
		assert.False(t, pulled, "kind %s must be reset", kind)
	}

	pulled, _ := tr.WasPulled(ctx, models.KindTasks, "owner-b")
	assert.True(t, pulled, "other owners keep their history")
}
