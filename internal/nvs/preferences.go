// Copyright (c) 2026 Li Jinling. All rights reserved.
// This software may be modified and distributed under the terms
// of the BSD-3 Clause License. See the LICENSE file for details.

package nvs

import (
	"fmt"
)

// Preferences is a handle on one namespace of a Partition.
// It is valid between Begin and End.
type Preferences struct {
	part      Partition
	namespace string
	readOnly  bool
	open      bool
}

// Begin opens namespace on p. A read-only handle on a namespace that
// holds no keys fails with ErrNotFound.
func Begin(p Partition, namespace string, readOnly bool) (*Preferences, error) {
	if p == nil {
		return nil, ErrClosed
	}
	if err := validateName(namespace); err != nil {
		return nil, err
	}
	if readOnly {
		ok, err := p.Exists(namespace)
		if err != nil {
			return nil, fmt.Errorf("open namespace %q: %w", namespace, err)
		}
		if !ok {
			return nil, fmt.Errorf("open namespace %q: %w", namespace, ErrNotFound)
		}
	}
	return &Preferences{
		part:      p,
		namespace: namespace,
		readOnly:  readOnly,
		open:      true,
	}, nil
}

// Namespace returns the namespace this handle was opened on.
func (h *Preferences) Namespace() string { return h.namespace }

// GetString returns the value stored under key.
func (h *Preferences) GetString(key string) (string, error) {
	if err := h.check(key, false); err != nil {
		return "", err
	}
	return h.part.Get(h.namespace, key)
}

// PutString stores value under key.
func (h *Preferences) PutString(key, value string) error {
	if err := h.check(key, true); err != nil {
		return err
	}
	return h.part.Put(h.namespace, key, value)
}

// Remove deletes key.
func (h *Preferences) Remove(key string) error {
	if err := h.check(key, true); err != nil {
		return err
	}
	return h.part.Delete(h.namespace, key)
}

// Clear deletes every key in the namespace.
func (h *Preferences) Clear() error {
	if !h.open {
		return ErrNotOpen
	}
	if h.readOnly {
		return ErrReadOnly
	}
	return h.part.Clear(h.namespace)
}

// End closes the handle. Further calls fail with ErrNotOpen.
func (h *Preferences) End() {
	h.open = false
}

func (h *Preferences) check(key string, write bool) error {
	if !h.open {
		return ErrNotOpen
	}
	if write && h.readOnly {
		return ErrReadOnly
	}
	return validateName(key)
}
