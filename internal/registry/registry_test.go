package registry

import (
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) (*Store, afero.Fs) {
	t.Helper()
	fs := afero.NewMemMapFs()
	store, err := NewStore(fs, "/data/servers.json", nil)
	require.NoError(t, err)
	return store, fs
}

func TestAddAndList(t *testing.T) {
	store, _ := newTestStore(t)

	assert.Empty(t, store.List())

	conn, err := store.Add(ServerConnection{
		Name:   "Home Sonarr",
		URL:    "http://localhost:8989",
		APIKey: "abc",
		Kind:   KindSonarr,
		Active: true,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, conn.ID)
	assert.False(t, conn.CreatedAt.IsZero())

	list := store.List()
	require.Len(t, list, 1)
	assert.Equal(t, "Home Sonarr", list[0].Name)
	assert.Equal(t, "http://localhost:8989", list[0].URL)
	assert.Equal(t, "abc", list[0].APIKey)
	assert.Equal(t, KindSonarr, list[0].Kind)

	require.NoError(t, store.Delete(conn.ID))
	assert.Empty(t, store.List())
}

func TestAddValidation(t *testing.T) {
	store, _ := newTestStore(t)

	tests := []struct {
		name string
		conn ServerConnection
	}{
		{"missing name", ServerConnection{URL: "http://x", APIKey: "k", Kind: KindSonarr}},
		{"missing url", ServerConnection{Name: "n", APIKey: "k", Kind: KindSonarr}},
		{"missing api key", ServerConnection{Name: "n", URL: "http://x", Kind: KindSonarr}},
		{"bad kind", ServerConnection{Name: "n", URL: "http://x", APIKey: "k", Kind: "lidarr"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := store.Add(tt.conn)
			assert.Error(t, err)
		})
	}

	assert.Empty(t, store.List())
}

func TestDeleteLeavesOthersUntouched(t *testing.T) {
	store, _ := newTestStore(t)

	first, err := store.Add(ServerConnection{Name: "Sonarr", URL: "http://a:8989", APIKey: "k1", Kind: KindSonarr})
	require.NoError(t, err)
	second, err := store.Add(ServerConnection{Name: "Radarr", URL: "http://b:7878", APIKey: "k2", Kind: KindRadarr})
	require.NoError(t, err)

	require.NoError(t, store.Delete(first.ID))

	list := store.List()
	require.Len(t, list, 1)
	assert.Equal(t, second.ID, list[0].ID)
	assert.Equal(t, "Radarr", list[0].Name)
}

func TestDeleteUnknownID(t *testing.T) {
	store, _ := newTestStore(t)
	assert.ErrorIs(t, store.Delete("nope"), ErrNotFound)
}

func TestUpdate(t *testing.T) {
	store, _ := newTestStore(t)

	conn, err := store.Add(ServerConnection{Name: "Sonarr", URL: "http://a:8989", APIKey: "k1", Kind: KindSonarr, Active: true})
	require.NoError(t, err)

	conn.Name = "Den Sonarr"
	conn.Active = false
	require.NoError(t, store.Update(conn))

	got, err := store.Get(conn.ID)
	require.NoError(t, err)
	assert.Equal(t, "Den Sonarr", got.Name)
	assert.False(t, got.Active)
	assert.Equal(t, conn.CreatedAt.Unix(), got.CreatedAt.Unix())

	missing := conn
	missing.ID = "nope"
	assert.ErrorIs(t, store.Update(missing), ErrNotFound)
}

func TestFailedSaveLeavesStoreUnchanged(t *testing.T) {
	// Seed one record on a writable fs, then reopen read-only so every
	// persist attempt fails.
	base := afero.NewMemMapFs()
	seeded, err := NewStore(base, "/data/servers.json", nil)
	require.NoError(t, err)
	existing, err := seeded.Add(ServerConnection{Name: "Home Sonarr", URL: "http://a:8989", APIKey: "k1", Kind: KindSonarr, Active: true})
	require.NoError(t, err)

	store, err := NewStore(afero.NewReadOnlyFs(base), "/data/servers.json", nil)
	require.NoError(t, err)
	require.Len(t, store.List(), 1)

	_, err = store.Add(ServerConnection{Name: "Den Radarr", URL: "http://b:7878", APIKey: "k2", Kind: KindRadarr})
	require.Error(t, err)
	list := store.List()
	require.Len(t, list, 1, "failed add must not leave the record in memory")
	assert.Equal(t, existing.ID, list[0].ID)

	changed := existing
	changed.Name = "Renamed"
	require.Error(t, store.Update(changed))
	got, err := store.Get(existing.ID)
	require.NoError(t, err)
	assert.Equal(t, "Home Sonarr", got.Name, "failed update must not change the record in memory")

	require.Error(t, store.Delete(existing.ID))
	assert.Len(t, store.List(), 1, "failed delete must not remove the record from memory")
}

func TestPersistenceAcrossReload(t *testing.T) {
	fs := afero.NewMemMapFs()

	store, err := NewStore(fs, "/data/servers.json", nil)
	require.NoError(t, err)

	conn, err := store.Add(ServerConnection{Name: "Sonarr", URL: "http://a:8989", APIKey: "k1", Kind: KindSonarr})
	require.NoError(t, err)

	reloaded, err := NewStore(fs, "/data/servers.json", nil)
	require.NoError(t, err)

	list := reloaded.List()
	require.Len(t, list, 1)
	assert.Equal(t, conn.ID, list[0].ID)
	assert.Equal(t, "k1", list[0].APIKey)
}

func TestLoadCorruptFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/data/servers.json", []byte("{broken"), 0600))

	_, err := NewStore(fs, "/data/servers.json", nil)
	assert.Error(t, err)
}

func TestWatch(t *testing.T) {
	store, _ := newTestStore(t)

	ch, cancel := store.Watch()
	defer cancel()

	conn, err := store.Add(ServerConnection{Name: "Home Sonarr", URL: "http://localhost:8989", APIKey: "abc", Kind: KindSonarr})
	require.NoError(t, err)

	select {
	case list := <-ch:
		require.Len(t, list, 1)
		assert.Equal(t, "Home Sonarr", list[0].Name)
	case <-time.After(time.Second):
		t.Fatal("expected a list after add")
	}

	require.NoError(t, store.Delete(conn.ID))

	select {
	case list := <-ch:
		assert.Empty(t, list)
	case <-time.After(time.Second):
		t.Fatal("expected a list after delete")
	}
}

func TestKindDefaults(t *testing.T) {
	assert.Equal(t, 8989, KindSonarr.DefaultPort())
	assert.Equal(t, 7878, KindRadarr.DefaultPort())
	assert.Equal(t, "/api/v3/system/status", KindSonarr.StatusPath())
	assert.True(t, KindSonarr.Valid())
	assert.False(t, Kind("plex").Valid())
}
