package dashboard

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(ttl time.Duration) *Store {
	cfg := testConfig()
	return NewStore(ttl, func() *Controller {
		return NewController(cfg, &fakeFetcher{})
	})
}

func TestStoreCreateAndGet(t *testing.T) {
	s := newTestStore(time.Minute)

	id, ctrl := s.Create()
	require.NotEmpty(t, id)
	require.NotNil(t, ctrl)

	got, ok := s.Get(id)
	require.True(t, ok)
	assert.Same(t, ctrl, got)

	_, ok = s.Get("unknown")
	assert.False(t, ok)
	assert.Equal(t, 1, s.Len())
}

func TestStoreSessionsAreIsolated(t *testing.T) {
	s := newTestStore(time.Minute)

	_, first := s.Create()
	_, second := s.Create()

	first.SelectSector("Pharma")
	assert.Equal(t, "Pharma", first.Snapshot().Sector)
	assert.Equal(t, "Healthcare", second.Snapshot().Sector)
}

func TestStoreExpiresIdleSessions(t *testing.T) {
	s := newTestStore(20 * time.Millisecond)

	id, _ := s.Create()
	time.Sleep(50 * time.Millisecond)

	_, ok := s.Get(id)
	assert.False(t, ok)
}
