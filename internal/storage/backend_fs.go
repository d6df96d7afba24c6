// Copyright (c) 2026 Li Jinling. All rights reserved.
// This software may be modified and distributed under the terms
// of the BSD-3 Clause License. See the LICENSE file for details.

//go:build !nvs

package storage

import (
	"log/slog"

	"github.com/ffutop/persistance/internal/config"
)

// Variant names the storage compiled into New.
const Variant = "fs"

// New returns the filesystem storage. Build with -tags nvs for the key-value storage.
func New(cfg config.StorageConfig) Storage {
	name, fsys := filesystem(cfg)
	slog.Info("Initializing filesystem storage", "medium", name, "root", cfg.Root)
	return NewFSStorage(name, fsys)
}
