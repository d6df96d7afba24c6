// Copyright (c) 2026 Li Jinling. All rights reserved.
// This software may be modified and distributed under the terms
// of the BSD-3 Clause License. See the LICENSE file for details.

package storage

import "encoding/json"

// Storage defines the contract every persistence medium implements.
// Implementations are not safe for concurrent use.
type Storage interface {
	// Save writes data at path, replacing anything stored there before.
	Save(data, path string) error

	// Load returns the text stored at path, up to the first line terminator.
	Load(path string) (string, error)

	// SaveJSON and LoadJSON are reserved. All media return errors.ErrUnsupported.
	SaveJSON(doc json.RawMessage, path string) error
	LoadJSON(path string) (json.RawMessage, error)

	// Close releases the medium.
	Close() error
}

// Remover is implemented by media that can delete stored values.
type Remover interface {
	// Remove deletes the value stored at path.
	Remove(path string) error
	// RemoveAll clears every value in the namespace named path.
	RemoveAll(path string) error
}
