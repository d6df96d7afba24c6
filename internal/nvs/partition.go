// Copyright (c) 2026 Li Jinling. All rights reserved.
// This software may be modified and distributed under the terms
// of the BSD-3 Clause License. See the LICENSE file for details.

// Package nvs emulates an ESP32-style non-volatile storage partition:
// string values addressed by a namespace and a key.
package nvs

import (
	"errors"
	"fmt"
)

// MaxNameLen is the longest namespace or key name a partition accepts.
const MaxNameLen = 15

var (
	ErrNotFound    = errors.New("nvs: not found")
	ErrInvalidName = errors.New("nvs: invalid name")
	ErrNoSpace     = errors.New("nvs: not enough space")
	ErrCorrupt     = errors.New("nvs: partition corrupt")
	ErrClosed      = errors.New("nvs: partition closed")
	ErrNotOpen     = errors.New("nvs: handle not open")
	ErrReadOnly    = errors.New("nvs: handle is read-only")
)

// Partition stores string values grouped into namespaces.
type Partition interface {
	// Get returns the value of key in namespace, or ErrNotFound.
	Get(namespace, key string) (string, error)

	// Put stores value under key in namespace, replacing any previous value.
	Put(namespace, key, value string) error

	// Delete removes key from namespace, or returns ErrNotFound.
	Delete(namespace, key string) error

	// Clear removes every key of namespace. Other namespaces are untouched.
	Clear(namespace string) error

	// Exists reports whether namespace holds at least one key.
	Exists(namespace string) (bool, error)

	Close() error
}

func validateName(name string) error {
	if name == "" || len(name) > MaxNameLen {
		return fmt.Errorf("%w: %q must be 1-%d bytes", ErrInvalidName, name, MaxNameLen)
	}
	return nil
}

// table is the in-memory view shared by the RAM and mmap partitions.
type table map[string]map[string]string

func (t table) get(namespace, key string) (string, error) {
	v, ok := t[namespace][key]
	if !ok {
		return "", ErrNotFound
	}
	return v, nil
}

func (t table) put(namespace, key, value string) {
	ns, ok := t[namespace]
	if !ok {
		ns = make(map[string]string)
		t[namespace] = ns
	}
	ns[key] = value
}

func (t table) delete(namespace, key string) error {
	ns, ok := t[namespace]
	if !ok {
		return ErrNotFound
	}
	if _, ok := ns[key]; !ok {
		return ErrNotFound
	}
	delete(ns, key)
	if len(ns) == 0 {
		delete(t, namespace)
	}
	return nil
}

func (t table) clear(namespace string) {
	delete(t, namespace)
}

func (t table) exists(namespace string) bool {
	return len(t[namespace]) > 0
}
