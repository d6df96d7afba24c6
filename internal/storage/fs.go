// Copyright (c) 2026 Li Jinling. All rights reserved.
// This software may be modified and distributed under the terms
// of the BSD-3 Clause License. See the LICENSE file for details.

package storage

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/afero"
)

// FSStorage implements persistence on a filesystem.
// Each path holds a single line of text terminated by '\n'.
type FSStorage struct {
	name    string
	fs      afero.Fs
	mounted bool
}

// NewFSStorage mounts fsys and returns a storage on it.
// A mount failure is logged, not returned: every later call fails with ErrNotMounted.
func NewFSStorage(name string, fsys afero.Fs) *FSStorage {
	s := &FSStorage{
		name: name,
		fs:   fsys,
	}
	if err := s.mount(); err != nil {
		slog.Error("Filesystem mount failed", "medium", name, "err", err)
	}
	return s
}

func (s *FSStorage) mount() error {
	if s.fs == nil {
		return errors.New("no filesystem driver")
	}
	fi, err := s.fs.Stat("/")
	if err != nil {
		return err
	}
	if !fi.IsDir() {
		return fmt.Errorf("root is not a directory")
	}
	s.mounted = true
	return nil
}

// Name returns the medium name used in diagnostics.
func (s *FSStorage) Name() string { return s.name }

// Mounted reports whether the filesystem is usable.
func (s *FSStorage) Mounted() bool { return s.mounted }

// Save writes data followed by a newline to path, truncating the file.
func (s *FSStorage) Save(data, path string) error {
	if !s.mounted {
		slog.Warn("Filesystem not mounted", "medium", s.name, "path", path)
		return NewError(KindMount, "save", path, nil)
	}

	f, err := s.fs.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		slog.Warn("Failed to open file for writing", "medium", s.name, "path", path, "err", err)
		return NewError(KindIO, "save", path, err)
	}
	if _, err := io.WriteString(f, data+"\n"); err != nil {
		f.Close()
		slog.Warn("Failed to write file", "medium", s.name, "path", path, "err", err)
		return NewError(KindIO, "save", path, err)
	}
	if err := f.Close(); err != nil {
		return NewError(KindIO, "save", path, err)
	}
	return nil
}

// Load returns the first line stored at path, without its terminator.
func (s *FSStorage) Load(path string) (string, error) {
	if !s.mounted {
		slog.Warn("Filesystem not mounted", "medium", s.name, "path", path)
		return "", NewError(KindMount, "load", path, nil)
	}

	f, err := s.fs.Open(path)
	if err != nil {
		slog.Warn("Failed to open file for reading", "medium", s.name, "path", path, "err", err)
		if errors.Is(err, fs.ErrNotExist) {
			return "", NewError(KindEmpty, "load", path, err)
		}
		return "", NewError(KindIO, "load", path, err)
	}
	defer f.Close()

	line, err := bufio.NewReader(f).ReadString('\n')
	if err != nil && err != io.EOF {
		return "", NewError(KindIO, "load", path, err)
	}
	line = strings.TrimSuffix(line, "\n")
	if line == "" {
		return "", NewError(KindEmpty, "load", path, nil)
	}
	return line, nil
}

func (s *FSStorage) SaveJSON(doc json.RawMessage, path string) error {
	return reserved("save json", path)
}

func (s *FSStorage) LoadJSON(path string) (json.RawMessage, error) {
	return nil, reserved("load json", path)
}

// Close unmounts the filesystem.
func (s *FSStorage) Close() error {
	s.mounted = false
	return nil
}

func reserved(op, path string) error {
	return NewError(KindUnsupported, op, path, errors.ErrUnsupported)
}

var _ Storage = (*FSStorage)(nil)
