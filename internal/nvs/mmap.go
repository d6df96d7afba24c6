// Copyright (c) 2026 Li Jinling. All rights reserved.
// This software may be modified and distributed under the terms
// of the BSD-3 Clause License. See the LICENSE file for details.

package nvs

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/edsrzf/mmap-go"
)

// MmapPartition implements a partition on a memory-mapped image file.
// Every mutation re-encodes the image in place and flushes it to disk.
//
// See layout.go for the image format.
type MmapPartition struct {
	path string
	size int
	file *os.File
	data mmap.MMap
	tbl  table
}

// OpenMmapPartition maps the image at path, creating and sizing it if necessary.
// size <= 0 selects DefaultPartitionSize.
func OpenMmapPartition(path string, size int) (*MmapPartition, error) {
	if size <= 0 {
		size = DefaultPartitionSize
	}
	if size <= headerSize {
		return nil, fmt.Errorf("partition size %d too small", size)
	}

	// Open file, creating if necessary
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open partition file: %w", err)
	}

	// Ensure file size
	fi, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, err
	}
	if fi.Size() != int64(size) {
		if fi.Size() > int64(size) {
			f.Close()
			return nil, fmt.Errorf("partition file is %d bytes, larger than %d", fi.Size(), size)
		}
		if err := f.Truncate(int64(size)); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to resize partition file: %w", err)
		}
	}

	data, err := mmap.Map(f, mmap.RDWR, 0)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("mmap failed: %w", err)
	}

	tbl, err := decodeImage(data)
	if err != nil {
		data.Unmap()
		f.Close()
		return nil, err
	}

	return &MmapPartition{
		path: path,
		size: size,
		file: f,
		data: data,
		tbl:  tbl,
	}, nil
}

// Path returns the image file path.
func (p *MmapPartition) Path() string { return p.path }

func (p *MmapPartition) Get(namespace, key string) (string, error) {
	if p.data == nil {
		return "", ErrClosed
	}
	return p.tbl.get(namespace, key)
}

func (p *MmapPartition) Put(namespace, key, value string) error {
	if p.data == nil {
		return ErrClosed
	}
	// the image format only holds valid names
	if err := validateName(namespace); err != nil {
		return err
	}
	if err := validateName(key); err != nil {
		return err
	}
	prev, had := p.tbl[namespace][key]
	p.tbl.put(namespace, key, value)
	if err := p.commit(); err != nil {
		// keep the table in step with the image
		if had {
			p.tbl.put(namespace, key, prev)
		} else {
			p.tbl.delete(namespace, key)
		}
		return err
	}
	return nil
}

func (p *MmapPartition) Delete(namespace, key string) error {
	if p.data == nil {
		return ErrClosed
	}
	if err := p.tbl.delete(namespace, key); err != nil {
		return err
	}
	return p.commit()
}

func (p *MmapPartition) Clear(namespace string) error {
	if p.data == nil {
		return ErrClosed
	}
	if !p.tbl.exists(namespace) {
		return nil
	}
	p.tbl.clear(namespace)
	return p.commit()
}

func (p *MmapPartition) Exists(namespace string) (bool, error) {
	if p.data == nil {
		return false, ErrClosed
	}
	return p.tbl.exists(namespace), nil
}

// commit writes the table into the mapping and flushes it.
func (p *MmapPartition) commit() error {
	img, err := encodeImage(p.tbl, p.size)
	if err != nil {
		return err
	}
	copy(p.data, img)
	if err := p.data.Flush(); err != nil {
		slog.Error("Failed to flush nvs partition", "path", p.path, "err", err)
		return fmt.Errorf("flush partition: %w", err)
	}
	return nil
}

// Close unmaps and closes the file.
func (p *MmapPartition) Close() error {
	var err error
	if p.data != nil {
		if e := p.data.Unmap(); e != nil {
			err = e
		}
		p.data = nil
	}
	if p.file != nil {
		if e := p.file.Close(); e != nil {
			err = e
		}
		p.file = nil
	}
	return err
}
