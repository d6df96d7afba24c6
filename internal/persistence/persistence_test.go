package persistence

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/ffutop/persistance/internal/model"
	"github.com/ffutop/persistance/internal/nvs"
	"github.com/ffutop/persistance/internal/storage"
)

// textSource is a data model whose text form is a plain string.
type textSource struct {
	text         string
	deserialized []string
	failDecode   bool
}

func (s *textSource) Serialize() (string, error) { return s.text, nil }

func (s *textSource) Deserialize(data string) error {
	s.deserialized = append(s.deserialized, data)
	if s.failDecode {
		return errors.New("bad data")
	}
	s.text = data
	return nil
}

func (s *textSource) SerializeJSON() (json.RawMessage, error) { return json.Marshal(s.text) }
func (s *textSource) DeserializeJSON(doc json.RawMessage) error {
	return json.Unmarshal(doc, &s.text)
}

// spyStorage records calls and returns canned results.
type spyStorage struct {
	saves, loads int
	saved        map[string]string
	loadResult   *string
}

func newSpyStorage() *spyStorage { return &spyStorage{saved: make(map[string]string)} }

func (s *spyStorage) Save(data, path string) error {
	s.saves++
	s.saved[path] = data
	return nil
}

func (s *spyStorage) Load(path string) (string, error) {
	s.loads++
	if s.loadResult != nil {
		return *s.loadResult, nil
	}
	return s.saved[path], nil
}

func (s *spyStorage) SaveJSON(json.RawMessage, string) error   { return errors.ErrUnsupported }
func (s *spyStorage) LoadJSON(string) (json.RawMessage, error) { return nil, errors.ErrUnsupported }
func (s *spyStorage) Close() error                             { return nil }

// backends returns one instance of each storage variant.
func backends() map[string]func() storage.Storage {
	return map[string]func() storage.Storage{
		"fs": func() storage.Storage {
			return storage.NewFSStorage("memfs", afero.NewMemMapFs())
		},
		"nvs": func() storage.Storage {
			return storage.NewNVSStorage(nvs.NewMemoryPartition())
		},
	}
}

func pathFor(backend string) string {
	if backend == "fs" {
		return "/settings.txt"
	}
	return "settings"
}

func settingsGen() *rapid.Generator[*model.DeviceSettings] {
	return rapid.Custom(func(t *rapid.T) *model.DeviceSettings {
		s := model.NewDeviceSettings(rapid.StringMatching(`[a-zA-Z0-9 _\n-]{0,24}`).Draw(t, "name"), byte(rapid.IntRange(1, 247).Draw(t, "slave")))
		s.BaudRate = rapid.SampledFrom([]int{4800, 9600, 19200, 38400, 115200}).Draw(t, "baud")
		s.Parity = rapid.SampledFrom([]string{"N", "E", "O"}).Draw(t, "parity")
		s.StopBits = rapid.IntRange(1, 2).Draw(t, "stop")
		regs := rapid.MapOf(rapid.Uint16(), rapid.Uint16()).Draw(t, "registers")
		for addr, v := range regs {
			s.SetRegister(addr, v)
		}
		return s
	})
}

func TestPersistence_RoundTrip(t *testing.T) {
	for name, open := range backends() {
		t.Run(name, func(t *testing.T) {
			rapid.Check(t, func(rt *rapid.T) {
				store := open()
				defer store.Close()

				want := settingsGen().Draw(rt, "settings")
				if err := NewWithStorage(want, store).SaveData(pathFor(name)); err != nil {
					rt.Fatalf("SaveData failed: %v", err)
				}

				got := &model.DeviceSettings{}
				text, err := NewWithStorage(got, store).LoadData(pathFor(name))
				if err != nil {
					rt.Fatalf("LoadData failed: %v", err)
				}
				if text == "" {
					rt.Fatal("LoadData returned empty text")
				}
				require.Equal(rt, want, got)
			})
		})
	}
}

func TestPersistence_Overwrite(t *testing.T) {
	for name, open := range backends() {
		t.Run(name, func(t *testing.T) {
			rapid.Check(t, func(rt *rapid.T) {
				store := open()
				defer store.Close()

				first := rapid.Uint32().Draw(rt, "first")
				second := rapid.Uint32().Draw(rt, "second")

				c := &model.BootCounter{Count: first}
				p := NewWithStorage(c, store)
				require.NoError(rt, p.SaveData(pathFor(name)))
				c.Count = second
				require.NoError(rt, p.SaveData(pathFor(name)))

				c.Count = 0
				text, err := p.LoadData(pathFor(name))
				require.NoError(rt, err)
				require.Equal(rt, second, c.Count)
				require.NotContains(rt, text, "\n")
			})
		})
	}
}

func TestPersistence_Unbound(t *testing.T) {
	spy := newSpyStorage()
	src := &textSource{text: "keep"}

	noStorage := New(src)
	require.ErrorIs(t, noStorage.SaveData("p"), storage.ErrUnbound)
	text, err := noStorage.LoadData("p")
	require.ErrorIs(t, err, storage.ErrUnbound)
	require.Empty(t, text)

	noSource := NewWithStorage(nil, spy)
	require.ErrorIs(t, noSource.SaveData("p"), storage.ErrUnbound)
	_, err = noSource.LoadData("p")
	require.ErrorIs(t, err, storage.ErrUnbound)

	require.Zero(t, spy.saves)
	require.Zero(t, spy.loads)
	require.Equal(t, "keep", src.text)
	require.Empty(t, src.deserialized)
}

func TestPersistence_Setters(t *testing.T) {
	spy := newSpyStorage()
	p := New(nil)
	p.SetStorage(spy)
	p.SetDataSource(&textSource{text: "late"})

	require.NoError(t, p.SaveData("p"))
	require.Equal(t, "late", spy.saved["p"])

	other := &textSource{}
	p.SetDataSource(other)
	text, err := p.LoadData("p")
	require.NoError(t, err)
	require.Equal(t, "late", text)
	require.Equal(t, "late", other.text)
}

func TestPersistence_EmptyLoad(t *testing.T) {
	for name, open := range backends() {
		t.Run(name, func(t *testing.T) {
			src := &textSource{text: "untouched"}
			text, err := NewWithStorage(src, open()).LoadData(pathFor(name))

			require.ErrorIs(t, err, storage.ErrEmpty)
			require.Empty(t, text)
			require.Empty(t, src.deserialized)
			require.Equal(t, "untouched", src.text)
		})
	}

	t.Run("backend returns empty text", func(t *testing.T) {
		empty := ""
		spy := newSpyStorage()
		spy.loadResult = &empty
		src := &textSource{}

		_, err := NewWithStorage(src, spy).LoadData("p")
		require.ErrorIs(t, err, storage.ErrEmpty)
		require.Empty(t, src.deserialized)
	})
}

func TestPersistence_MultiLineTruncatedOnFilesystem(t *testing.T) {
	store := storage.NewFSStorage("memfs", afero.NewMemMapFs())
	src := &textSource{text: "line one\nline two"}
	p := NewWithStorage(src, store)

	require.NoError(t, p.SaveData("/m.txt"))
	text, err := p.LoadData("/m.txt")
	require.NoError(t, err)
	require.Equal(t, "line one", text)
	require.Equal(t, []string{"line one"}, src.deserialized)
}

func TestPersistence_SaveDataJSONStoresText(t *testing.T) {
	spy := newSpyStorage()
	src := &textSource{text: "plain"}
	p := NewWithStorage(src, spy)

	require.NoError(t, p.SaveDataJSON("p"))
	require.Equal(t, "plain", spy.saved["p"])
	require.Equal(t, 1, spy.saves)
}

func TestPersistence_DeserializeFailure(t *testing.T) {
	spy := newSpyStorage()
	spy.saved["p"] = "garbage"
	src := &textSource{failDecode: true}

	text, err := NewWithStorage(src, spy).LoadData("p")
	require.Error(t, err)
	require.Equal(t, "garbage", text)
	require.Zero(t, storage.KindOf(err))
	require.True(t, strings.Contains(err.Error(), "deserialize"))
}

func TestPersistence_StorageErrorsPassThrough(t *testing.T) {
	store := storage.NewNVSStorage(nil)
	p := NewWithStorage(&textSource{text: "x"}, store)

	require.ErrorIs(t, p.SaveData("ns"), storage.ErrNotMounted)
	_, err := p.LoadData("ns")
	require.Equal(t, storage.KindMount, storage.KindOf(err))
}
