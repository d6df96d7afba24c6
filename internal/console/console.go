// Copyright (c) 2014 Quoc-Viet Nguyen. All rights reserved.
// Copyright (c) 2026 Li Jinling. All rights reserved.
// This software may be modified and distributed under the terms
// of the BSD-3 Clause License. See the LICENSE file for details.

// Package console sends diagnostic output to a serial port, the way
// firmware prints to its UART.
package console

import (
	"fmt"
	"io"
	"sync"

	"github.com/grid-x/serial"

	"github.com/ffutop/persistance/internal/config"
)

// Console is a write-only serial port. It connects on first write.
type Console struct {
	// Serial port configuration.
	serial.Config

	mu sync.Mutex
	// port is platform-dependent data structure for serial port.
	port io.WriteCloser
}

// New maps the serial settings onto a Console. No port is opened yet.
func New(cfg config.SerialConfig) *Console {
	c := &Console{}
	c.Config.Address = cfg.Device
	c.Config.BaudRate = cfg.BaudRate
	c.Config.DataBits = cfg.DataBits
	c.Config.StopBits = cfg.StopBits
	c.Config.Parity = cfg.Parity
	c.Config.Timeout = cfg.Timeout
	return c
}

// Connect opens the serial port if it is not open.
func (c *Console) Connect() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.connect()
}

// connect opens the port. Caller must hold the mutex.
func (c *Console) connect() error {
	if c.port == nil {
		port, err := serial.Open(&c.Config)
		if err != nil {
			return fmt.Errorf("could not open %s: %w", c.Config.Address, err)
		}
		c.port = port
	}
	return nil
}

// Write sends p to the port.
func (c *Console) Write(p []byte) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.connect(); err != nil {
		return 0, err
	}
	n, err := c.port.Write(p)
	if err != nil {
		// reopen on the next write
		c.close()
	}
	return n, err
}

func (c *Console) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.close()
}

// close closes the port if it is open. Caller must hold the mutex.
func (c *Console) close() (err error) {
	if c.port != nil {
		err = c.port.Close()
		c.port = nil
	}
	return
}
