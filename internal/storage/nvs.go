// Copyright (c) 2026 Li Jinling. All rights reserved.
// This software may be modified and distributed under the terms
// of the BSD-3 Clause License. See the LICENSE file for details.

package storage

import (
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/ffutop/persistance/internal/nvs"
)

// valueKey is the key every namespace stores its text under.
const valueKey = "data"

// NVSStorage implements persistence on a key-value partition.
// The path names a namespace; each call opens it, does one get or put,
// and ends the handle before returning.
type NVSStorage struct {
	part nvs.Partition
}

// NewNVSStorage returns a storage on p. A nil p behaves as an unmounted medium.
func NewNVSStorage(p nvs.Partition) *NVSStorage {
	return &NVSStorage{part: p}
}

func (s *NVSStorage) Save(data, path string) error {
	prefs, err := s.begin("save", path, false)
	if err != nil {
		return err
	}
	defer prefs.End()

	if err := prefs.PutString(valueKey, data); err != nil {
		slog.Warn("Failed to write namespace", "namespace", path, "err", err)
		return NewError(KindIO, "save", path, err)
	}
	return nil
}

func (s *NVSStorage) Load(path string) (string, error) {
	prefs, err := s.begin("load", path, true)
	if err != nil {
		return "", err
	}
	defer prefs.End()

	data, err := prefs.GetString(valueKey)
	if errors.Is(err, nvs.ErrNotFound) {
		return "", NewError(KindEmpty, "load", path, err)
	}
	if err != nil {
		slog.Warn("Failed to read namespace", "namespace", path, "err", err)
		return "", NewError(KindIO, "load", path, err)
	}
	if data == "" {
		return "", NewError(KindEmpty, "load", path, nil)
	}
	return data, nil
}

// Remove deletes the value stored in namespace path.
func (s *NVSStorage) Remove(path string) error {
	prefs, err := s.begin("remove", path, false)
	if err != nil {
		return err
	}
	defer prefs.End()

	if err := prefs.Remove(valueKey); err != nil {
		if errors.Is(err, nvs.ErrNotFound) {
			return NewError(KindEmpty, "remove", path, err)
		}
		return NewError(KindIO, "remove", path, err)
	}
	return nil
}

// RemoveAll clears namespace path. Other namespaces are not affected.
func (s *NVSStorage) RemoveAll(path string) error {
	prefs, err := s.begin("remove all", path, false)
	if err != nil {
		return err
	}
	defer prefs.End()

	if err := prefs.Clear(); err != nil {
		return NewError(KindIO, "remove all", path, err)
	}
	return nil
}

func (s *NVSStorage) SaveJSON(doc json.RawMessage, path string) error {
	return reserved("save json", path)
}

func (s *NVSStorage) LoadJSON(path string) (json.RawMessage, error) {
	return nil, reserved("load json", path)
}

// Close closes the partition.
func (s *NVSStorage) Close() error {
	if s.part == nil {
		return nil
	}
	err := s.part.Close()
	s.part = nil
	return err
}

func (s *NVSStorage) begin(op, path string, readOnly bool) (*nvs.Preferences, error) {
	if s.part == nil {
		slog.Warn("NVS partition not mounted", "namespace", path)
		return nil, NewError(KindMount, op, path, nvs.ErrClosed)
	}
	prefs, err := nvs.Begin(s.part, path, readOnly)
	if err != nil {
		if readOnly && errors.Is(err, nvs.ErrNotFound) {
			return nil, NewError(KindEmpty, op, path, err)
		}
		slog.Warn("Failed to open namespace", "namespace", path, "err", err)
		return nil, NewError(KindMount, op, path, err)
	}
	return prefs, nil
}

var (
	_ Storage = (*NVSStorage)(nil)
	_ Remover = (*NVSStorage)(nil)
)
