// Copyright (c) 2026 Li Jinling. All rights reserved.
// This software may be modified and distributed under the terms
// of the BSD-3 Clause License. See the LICENSE file for details.

//go:build nvs

package storage

import (
	"log/slog"

	"github.com/ffutop/persistance/internal/config"
)

// Variant names the storage compiled into New.
const Variant = "nvs"

// New returns the key-value storage. A partition that fails to open is
// logged and leaves the storage unmounted.
func New(cfg config.StorageConfig) Storage {
	name, p, err := partition(cfg)
	if err != nil {
		slog.Error("NVS partition mount failed", "medium", name, "err", err)
		return NewNVSStorage(nil)
	}
	slog.Info("Initializing NVS storage", "medium", name)
	return NewNVSStorage(p)
}
