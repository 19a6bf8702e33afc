package session

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBackends(t *testing.T) {
	for _, backend := range Backends() {
		t.Run(backend, func(t *testing.T) {
			s, err := Open(backend, t.TempDir(), "term-1")
			require.NoError(t, err)
			t.Cleanup(func() { s.Close() })

			_, ok, err := s.Get("k")
			require.NoError(t, err)
			assert.False(t, ok)

			require.NoError(t, s.Set("k", "v1"))
			require.NoError(t, s.Set("k", "v2"))
			require.NoError(t, s.Set("other", "x"))
			v, ok, err := s.Get("k")
			require.NoError(t, err)
			assert.True(t, ok)
			assert.Equal(t, "v2", v)

			require.NoError(t, s.Clear())
			_, ok, err = s.Get("k")
			require.NoError(t, err)
			assert.False(t, ok)
			_, ok, err = s.Get("other")
			require.NoError(t, err)
			assert.False(t, ok)
		})
	}
}

func TestSessionsAreIsolated(t *testing.T) {
	for _, backend := range []string{BackendFile, BackendSQLite} {
		t.Run(backend, func(t *testing.T) {
			dir := t.TempDir()
			a, err := Open(backend, dir, "a")
			require.NoError(t, err)
			defer a.Close()
			b, err := Open(backend, dir, "b")
			require.NoError(t, err)
			defer b.Close()

			require.NoError(t, a.Set("k", "from-a"))
			_, ok, err := b.Get("k")
			require.NoError(t, err)
			assert.False(t, ok)

			require.NoError(t, b.Set("k", "from-b"))
			require.NoError(t, b.Clear())
			v, ok, err := a.Get("k")
			require.NoError(t, err)
			assert.True(t, ok)
			assert.Equal(t, "from-a", v)
		})
	}
}

func TestSessionSurvivesReopen(t *testing.T) {
	for _, backend := range []string{BackendFile, BackendSQLite} {
		t.Run(backend, func(t *testing.T) {
			dir := t.TempDir()
			s, err := Open(backend, dir, "shell")
			require.NoError(t, err)
			require.NoError(t, s.Set("k", "kept"))
			require.NoError(t, s.Close())

			again, err := Open(backend, dir, "shell")
			require.NoError(t, err)
			defer again.Close()
			v, ok, err := again.Get("k")
			require.NoError(t, err)
			assert.True(t, ok)
			assert.Equal(t, "kept", v)
		})
	}
}

func TestFileNameIsSanitized(t *testing.T) {
	dir := t.TempDir()
	f, err := NewFile(dir, "../../etc/passwd")
	require.NoError(t, err)
	assert.Equal(t, dir, filepath.Dir(f.path))
}

func TestFileCorruptSessionIsEmpty(t *testing.T) {
	dir := t.TempDir()
	f, err := NewFile(dir, "x")
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(f.path, []byte("{trunc"), 0o600))

	_, ok, err := f.Get("k")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, f.Set("k", "v"))
	v, ok, err := f.Get("k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "v", v)
}

func TestOpenErrors(t *testing.T) {
	_, err := Open("redis", t.TempDir(), "x")
	assert.ErrorContains(t, err, "unknown session backend")

	_, err = Open(BackendMemory, "", "  ")
	assert.Error(t, err)
}

func TestDefaultID(t *testing.T) {
	t.Setenv(EnvSession, "my-term")
	assert.Equal(t, "my-term", DefaultID())

	t.Setenv(EnvSession, "")
	assert.Regexp(t, `^ppid-\d+$`, DefaultID())
}
