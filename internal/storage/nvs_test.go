package storage

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ffutop/persistance/internal/nvs"
)

func TestNVSStorage_SaveLoad(t *testing.T) {
	s := NewNVSStorage(nvs.NewMemoryPartition())

	require.NoError(t, s.Save("v1", "settings"))
	got, err := s.Load("settings")
	require.NoError(t, err)
	require.Equal(t, "v1", got)

	require.NoError(t, s.Save("v2", "settings"))
	got, err = s.Load("settings")
	require.NoError(t, err)
	require.Equal(t, "v2", got)
}

func TestNVSStorage_LoadNeverSaved(t *testing.T) {
	s := NewNVSStorage(nvs.NewMemoryPartition())

	got, err := s.Load("settings")
	require.ErrorIs(t, err, ErrEmpty)
	require.Empty(t, got)
}

func TestNVSStorage_KeepsMultiLineValues(t *testing.T) {
	s := NewNVSStorage(nvs.NewMemoryPartition())

	require.NoError(t, s.Save("a\nb", "ml"))
	got, err := s.Load("ml")
	require.NoError(t, err)
	require.Equal(t, "a\nb", got)
}

func TestNVSStorage_Remove(t *testing.T) {
	s := NewNVSStorage(nvs.NewMemoryPartition())

	require.NoError(t, s.Save("x", "one"))
	require.NoError(t, s.Remove("one"))
	_, err := s.Load("one")
	require.ErrorIs(t, err, ErrEmpty)

	require.ErrorIs(t, s.Remove("one"), ErrEmpty)
}

func TestNVSStorage_RemoveAllIsolation(t *testing.T) {
	p := nvs.NewMemoryPartition()
	s := NewNVSStorage(p)

	require.NoError(t, s.Save("x", "one"))
	require.NoError(t, s.Save("y", "two"))
	require.NoError(t, p.Put("one", "extra", "z"))

	require.NoError(t, s.RemoveAll("one"))

	_, err := s.Load("one")
	require.ErrorIs(t, err, ErrEmpty)
	_, err = p.Get("one", "extra")
	require.ErrorIs(t, err, nvs.ErrNotFound)

	got, err := s.Load("two")
	require.NoError(t, err)
	require.Equal(t, "y", got)
}

func TestNVSStorage_InvalidNamespace(t *testing.T) {
	s := NewNVSStorage(nvs.NewMemoryPartition())

	err := s.Save("x", "/this/path/is/too/long.txt")
	require.ErrorIs(t, err, ErrNotMounted)
	require.ErrorIs(t, err, nvs.ErrInvalidName)
}

func TestNVSStorage_Unmounted(t *testing.T) {
	s := NewNVSStorage(nil)

	require.ErrorIs(t, s.Save("x", "ns"), ErrNotMounted)
	_, err := s.Load("ns")
	require.ErrorIs(t, err, ErrNotMounted)
	require.ErrorIs(t, s.RemoveAll("ns"), ErrNotMounted)
}

func TestNVSStorage_NoSpace(t *testing.T) {
	p, err := nvs.OpenMmapPartition(filepath.Join(t.TempDir(), "nvs.bin"), 64)
	require.NoError(t, err)
	s := NewNVSStorage(p)
	defer s.Close()

	err = s.Save(string(make([]byte, 128)), "big")
	require.ErrorIs(t, err, ErrIO)
	require.ErrorIs(t, err, nvs.ErrNoSpace)
}

func TestNVSStorage_JSONReserved(t *testing.T) {
	s := NewNVSStorage(nvs.NewMemoryPartition())

	require.True(t, errors.Is(s.SaveJSON([]byte(`{}`), "j"), errors.ErrUnsupported))
	_, err := s.LoadJSON("j")
	require.Equal(t, KindUnsupported, KindOf(err))
}
