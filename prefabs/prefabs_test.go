package prefabs

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadEntityBuildSpecPerson(t *testing.T) {
	spec, err := LoadEntityBuildSpec("person.yaml")
	require.NoError(t, err)
	assert.Equal(t, "person", spec.Name)
	require.Contains(t, spec.Components, "moveable")

	mv, err := DecodeComponentSpec[MoveableComponentSpec](spec.Components["moveable"])
	require.NoError(t, err)
	assert.Greater(t, mv.Speed, 0.0)

	body, err := DecodeComponentSpec[PhysicsBodyComponentSpec](spec.Components["physics_body"])
	require.NoError(t, err)
	assert.Greater(t, body.Width, 0.0)
	assert.Greater(t, body.Height, 0.0)
}

func TestLoadSpecMissing(t *testing.T) {
	_, err := LoadEntityBuildSpec("nope.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "prefabs: load nope.yaml")
}

func TestDecodeComponentSpecNil(t *testing.T) {
	got, err := DecodeComponentSpec[RoutineComponentSpec](nil)
	require.NoError(t, err)
	assert.Equal(t, RoutineComponentSpec{}, got)
}

func TestLoadScript(t *testing.T) {
	for _, name := range []string{"wander.tengo", "scripts/wander.tengo", "prefabs/scripts/wander.tengo"} {
		t.Run(name, func(t *testing.T) {
			data, err := LoadScript(name)
			require.NoError(t, err)
			assert.Contains(t, string(data), "pick := func(engine)")
		})
	}
}

func TestFileKinds(t *testing.T) {
	assert.True(t, IsSpecFile("levels/shelter.yaml"))
	assert.True(t, IsSpecFile("a.YML"))
	assert.False(t, IsSpecFile("a.tengo"))
	assert.True(t, IsScriptFile("prefabs/scripts/wander.tengo"))
	assert.False(t, IsScriptFile("notes.txt"))
}

func TestWatcherReportsWrites(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(dir)
	require.NoError(t, err)
	defer w.Close()

	path := filepath.Join(dir, "room.yaml")
	require.NoError(t, os.WriteFile(path, []byte("name: x\n"), 0o644))
	// Ignored: not a layout, prefab, or script.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))

	select {
	case name := <-w.Events:
		assert.Equal(t, path, name)
	case <-time.After(2 * time.Second):
		t.Fatal("no event for room.yaml")
	}
}

func TestWatcherReportsLastOfQuickWrites(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(dir)
	require.NoError(t, err)
	defer w.Close()

	// Truncate, then fill in two parts, all inside one debounce period.
	path := filepath.Join(dir, "person.yaml")
	require.NoError(t, os.WriteFile(path, nil, 0o644))
	time.Sleep(debounce / 5)
	require.NoError(t, os.WriteFile(path, []byte("name: "), 0o644))
	time.Sleep(debounce / 5)
	require.NoError(t, os.WriteFile(path, []byte("name: person\n"), 0o644))

	select {
	case name := <-w.Events:
		assert.Equal(t, path, name)
		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "name: person\n", string(data))
	case <-time.After(2 * time.Second):
		t.Fatal("no event for person.yaml")
	}

	select {
	case name := <-w.Events:
		t.Fatalf("second event for %s", name)
	case <-time.After(3 * debounce):
	}
}

func TestWatcherCloseClosesChannels(t *testing.T) {
	w, err := NewWatcher(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, w.Close())
	require.NoError(t, w.Close())

	_, ok := <-w.Events
	assert.False(t, ok)
	assert.Empty(t, w.Drain())
}

func TestNewWatcherMissingDir(t *testing.T) {
	_, err := NewWatcher(filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
}
