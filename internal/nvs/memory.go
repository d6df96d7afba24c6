// Copyright (c) 2026 Li Jinling. All rights reserved.
// This software may be modified and distributed under the terms
// of the BSD-3 Clause License. See the LICENSE file for details.

package nvs

// MemoryPartition is a RAM-only partition (non-persistent).
type MemoryPartition struct {
	data   table
	closed bool
}

func NewMemoryPartition() *MemoryPartition {
	return &MemoryPartition{data: make(table)}
}

func (p *MemoryPartition) Get(namespace, key string) (string, error) {
	if p.closed {
		return "", ErrClosed
	}
	return p.data.get(namespace, key)
}

func (p *MemoryPartition) Put(namespace, key, value string) error {
	if p.closed {
		return ErrClosed
	}
	p.data.put(namespace, key, value)
	return nil
}

func (p *MemoryPartition) Delete(namespace, key string) error {
	if p.closed {
		return ErrClosed
	}
	return p.data.delete(namespace, key)
}

func (p *MemoryPartition) Clear(namespace string) error {
	if p.closed {
		return ErrClosed
	}
	p.data.clear(namespace)
	return nil
}

func (p *MemoryPartition) Exists(namespace string) (bool, error) {
	if p.closed {
		return false, ErrClosed
	}
	return p.data.exists(namespace), nil
}

func (p *MemoryPartition) Close() error {
	p.closed = true
	return nil
}
