// Copyright (c) 2026 Li Jinling. All rights reserved.
// This software may be modified and distributed under the terms
// of the BSD-3 Clause License. See the LICENSE file for details.

// Package persistence saves and restores a data model through whichever
// storage medium the binary was built with.
package persistence

import (
	"fmt"
	"log/slog"

	"github.com/ffutop/persistance/internal/storage"
)

// Persistence binds one data source to one storage.
// Neither is owned: closing the storage is the caller's job.
type Persistence struct {
	storage storage.Storage
	source  Serializable
}

// New returns a facade with no storage bound yet.
func New(source Serializable) *Persistence {
	return &Persistence{source: source}
}

// NewWithStorage returns a facade bound to both collaborators.
func NewWithStorage(source Serializable, s storage.Storage) *Persistence {
	return &Persistence{source: source, storage: s}
}

// SetStorage binds or replaces the storage.
func (p *Persistence) SetStorage(s storage.Storage) { p.storage = s }

// SetDataSource binds or replaces the data source.
func (p *Persistence) SetDataSource(source Serializable) { p.source = source }

// SaveData serializes the data source and stores the text at path.
func (p *Persistence) SaveData(path string) error {
	return p.save("save", path)
}

// SaveDataJSON currently behaves exactly like SaveData: the text form is stored,
// not the JSON document. See DESIGN.md before relying on it.
func (p *Persistence) SaveDataJSON(path string) error {
	return p.save("save json", path)
}

func (p *Persistence) save(op, path string) error {
	if err := p.bound(op, path); err != nil {
		return err
	}

	data, err := p.source.Serialize()
	if err != nil {
		return fmt.Errorf("%s %s: serialize: %w", op, path, err)
	}
	return p.storage.Save(data, path)
}

// LoadData loads the text at path and feeds it to the data source.
// It returns the loaded text. Empty text is reported as storage.ErrEmpty and
// the data source is left untouched.
func (p *Persistence) LoadData(path string) (string, error) {
	if err := p.bound("load", path); err != nil {
		return "", err
	}

	data, err := p.storage.Load(path)
	if err != nil {
		return "", err
	}
	if data == "" {
		return "", storage.NewError(storage.KindEmpty, "load", path, nil)
	}

	if err := p.source.Deserialize(data); err != nil {
		slog.Warn("Failed to deserialize stored data", "path", path, "err", err)
		return data, fmt.Errorf("load %s: deserialize: %w", path, err)
	}
	return data, nil
}

func (p *Persistence) bound(op, path string) error {
	if p.storage == nil || p.source == nil {
		return storage.NewError(storage.KindUnbound, op, path, nil)
	}
	return nil
}
