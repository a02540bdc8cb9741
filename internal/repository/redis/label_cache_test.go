package redis

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCache struct {
	values   map[string]string
	ttls     map[string]time.Duration
	readErr  error
	writeErr error
}

func newFakeCache() *fakeCache {
	return &fakeCache{values: map[string]string{}, ttls: map[string]time.Duration{}}
}

func (f *fakeCache) MGet(_ context.Context, keys ...string) *redis.SliceCmd {
	if f.readErr != nil {
		return redis.NewSliceResult(nil, f.readErr)
	}
	out := make([]interface{}, len(keys))
	for i, k := range keys {
		if v, ok := f.values[k]; ok {
			out[i] = v
		}
	}
	return redis.NewSliceResult(out, nil)
}

func (f *fakeCache) Set(_ context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd {
	if f.writeErr != nil {
		return redis.NewStatusResult("", f.writeErr)
	}
	f.values[key] = value.(string)
	f.ttls[key] = expiration
	return redis.NewStatusResult("OK", nil)
}

type fakeLabels struct {
	names map[string]string
	asked [][]string
	err   error
}

func (f *fakeLabels) lookup(ids []string) (map[string]string, error) {
	f.asked = append(f.asked, ids)
	if f.err != nil {
		return nil, f.err
	}
	out := map[string]string{}
	for _, id := range ids {
		if n, ok := f.names[id]; ok {
			out[id] = n
		}
	}
	return out, nil
}

func (f *fakeLabels) DepartmentNames(_ context.Context, _ string, ids []string) (map[string]string, error) {
	return f.lookup(ids)
}

func (f *fakeLabels) DesignationTitles(_ context.Context, _ string, ids []string) (map[string]string, error) {
	return f.lookup(ids)
}

var quietLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

func TestLabelCache_MissThenHit(t *testing.T) {
	// Setup
	cache := newFakeCache()
	source := &fakeLabels{names: map[string]string{"d1": "Engineering", "d2": "People"}}
	lc := NewLabelCache(source, cache, time.Minute, quietLogger)
	ctx := context.Background()

	// Act
	first, err := lc.DepartmentNames(ctx, "co-1", []string{"d1", "d2"})
	require.NoError(t, err)
	second, err := lc.DepartmentNames(ctx, "co-1", []string{"d1", "d2"})
	require.NoError(t, err)

	// Assert
	want := map[string]string{"d1": "Engineering", "d2": "People"}
	assert.Equal(t, want, first)
	assert.Equal(t, want, second)
	assert.Len(t, source.asked, 1)
	assert.Equal(t, time.Minute, cache.ttls["hris:label:department:co-1:d1"])
}

func TestLabelCache_PartialHit(t *testing.T) {
	cache := newFakeCache()
	cache.values["hris:label:designation:co-1:s1"] = "Accountant"
	source := &fakeLabels{names: map[string]string{"s2": "Engineering Lead"}}
	lc := NewLabelCache(source, cache, 0, quietLogger)

	titles, err := lc.DesignationTitles(context.Background(), "co-1", []string{"s1", "s2"})

	require.NoError(t, err)
	assert.Equal(t, map[string]string{"s1": "Accountant", "s2": "Engineering Lead"}, titles)
	assert.Equal(t, [][]string{{"s2"}}, source.asked)
	assert.Equal(t, DefaultLabelTTL, cache.ttls["hris:label:designation:co-1:s2"])
}

func TestLabelCache_KeysAreScopedByCompany(t *testing.T) {
	cache := newFakeCache()
	cache.values["hris:label:department:co-2:d1"] = "Other company"
	source := &fakeLabels{names: map[string]string{"d1": "Engineering"}}
	lc := NewLabelCache(source, cache, time.Minute, quietLogger)

	names, err := lc.DepartmentNames(context.Background(), "co-1", []string{"d1"})

	require.NoError(t, err)
	assert.Equal(t, "Engineering", names["d1"])
}

func TestLabelCache_RedisDownFallsBack(t *testing.T) {
	cache := newFakeCache()
	cache.readErr = errors.New("dial tcp: connection refused")
	cache.writeErr = errors.New("dial tcp: connection refused")
	source := &fakeLabels{names: map[string]string{"d1": "Engineering"}}
	lc := NewLabelCache(source, cache, time.Minute, quietLogger)

	names, err := lc.DepartmentNames(context.Background(), "co-1", []string{"d1"})

	require.NoError(t, err)
	assert.Equal(t, map[string]string{"d1": "Engineering"}, names)
}

func TestLabelCache_SourceError(t *testing.T) {
	boom := errors.New("record store down")
	lc := NewLabelCache(&fakeLabels{err: boom}, newFakeCache(), time.Minute, quietLogger)

	_, err := lc.DepartmentNames(context.Background(), "co-1", []string{"d1"})

	assert.ErrorIs(t, err, boom)
}

func TestLabelCache_NoIDs(t *testing.T) {
	source := &fakeLabels{}
	lc := NewLabelCache(source, newFakeCache(), time.Minute, quietLogger)

	names, err := lc.DepartmentNames(context.Background(), "co-1", nil)

	require.NoError(t, err)
	assert.Empty(t, names)
	assert.Empty(t, source.asked)
}
