package directory

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestDirectory_AddAndGet(t *testing.T) {
	d := New()
	d.AddUser("u1", "tok", "sec", time.Time{})
	rec, ok := d.Get("u1")
	require.True(t, ok)
	require.Equal(t, "tok", rec.AccessToken)
	require.Equal(t, "sec", rec.AccessTokenSecret)

	_, ok = d.Get("missing")
	require.False(t, ok)
}

func TestDirectory_PartialRecords(t *testing.T) {
	d := New()
	d.SetShard("u1", "s1")
	d.SetNoteStoreURL("u1", "https://example.com/shard/s1/notestore")

	rec, ok := d.Get("u1")
	require.True(t, ok)
	require.Equal(t, "s1", rec.Shard)
	require.Empty(t, rec.AccessToken)

	_, usable := d.Usable("u1")
	require.False(t, usable)

	d.AddUser("u1", "tok", "sec", time.Time{})
	d.SetWebAPIURLPrefix("u1", "https://example.com/shard/s1/")
	rec, usable = d.Usable("u1")
	require.True(t, usable)
	require.Equal(t, "s1", rec.Shard)
	require.Equal(t, "https://example.com/shard/s1/", rec.WebAPIURLPrefix)
}

func TestDirectory_ExpiredTokenNotUsable(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	d := New()
	d.now = func() time.Time { return now }
	d.AddUser("old", "tok", "sec", now.Add(-time.Minute))
	d.AddUser("live", "tok", "sec", now.Add(time.Hour))

	_, ok := d.Usable("old")
	require.False(t, ok)
	_, ok = d.Usable("live")
	require.True(t, ok)
}

func TestDirectory_GetReturnsCopy(t *testing.T) {
	d := New()
	d.AddUser("u1", "tok", "sec", time.Time{})
	rec, _ := d.Get("u1")
	rec.AccessToken = "changed"
	again, _ := d.Get("u1")
	require.Equal(t, "tok", again.AccessToken)
}

func TestDirectory_ConcurrentWrites(t *testing.T) {
	d := New()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			d.AddUser("u1", "tok", "sec", time.Time{})
			d.SetShard("u1", "s1")
			_, _ = d.Usable("u1")
		}()
	}
	wg.Wait()
	require.Equal(t, 1, d.Len())
}
