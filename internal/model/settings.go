// Copyright (c) 2026 Li Jinling. All rights reserved.
// This software may be modified and distributed under the terms
// of the BSD-3 Clause License. See the LICENSE file for details.

package model

import (
	"encoding/json"
	"fmt"
	"strings"
)

// DeviceSettings is the persisted configuration of a field device.
type DeviceSettings struct {
	Name     string `json:"name"`
	SlaveID  byte   `json:"slave_id"`
	BaudRate int    `json:"baud_rate"`
	DataBits int    `json:"data_bits"`
	Parity   string `json:"parity"` // N, E, O
	StopBits int    `json:"stop_bits"`

	// Holding register snapshot keyed by address.
	Registers map[uint16]uint16 `json:"registers,omitempty"`
}

// NewDeviceSettings returns settings with the usual 19200 8N1 line.
func NewDeviceSettings(name string, slaveID byte) *DeviceSettings {
	return &DeviceSettings{
		Name:     name,
		SlaveID:  slaveID,
		BaudRate: 19200,
		DataBits: 8,
		Parity:   "N",
		StopBits: 1,
	}
}

// SetRegister records a holding register value.
func (s *DeviceSettings) SetRegister(address, value uint16) {
	if s.Registers == nil {
		s.Registers = make(map[uint16]uint16)
	}
	s.Registers[address] = value
}

// Validate checks the serial line parameters.
func (s *DeviceSettings) Validate() error {
	if s.SlaveID == 0 || s.SlaveID > 247 {
		return fmt.Errorf("slave id %d out of range 1-247", s.SlaveID)
	}
	switch s.Parity {
	case "N", "E", "O":
	default:
		return fmt.Errorf("invalid parity %q", s.Parity)
	}
	if s.DataBits < 5 || s.DataBits > 8 {
		return fmt.Errorf("invalid data bits %d", s.DataBits)
	}
	if s.StopBits != 1 && s.StopBits != 2 {
		return fmt.Errorf("invalid stop bits %d", s.StopBits)
	}
	if s.BaudRate <= 0 {
		return fmt.Errorf("invalid baud rate %d", s.BaudRate)
	}
	return nil
}

// Serialize renders the settings as single-line JSON.
func (s *DeviceSettings) Serialize() (string, error) {
	b, err := json.Marshal(s)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Deserialize replaces s with the settings decoded from data.
// s is left unchanged when data is invalid.
func (s *DeviceSettings) Deserialize(data string) error {
	var next DeviceSettings
	if err := json.Unmarshal([]byte(data), &next); err != nil {
		return fmt.Errorf("decode settings: %w", err)
	}
	next.Parity = strings.ToUpper(next.Parity)
	if err := next.Validate(); err != nil {
		return err
	}
	*s = next
	return nil
}

func (s *DeviceSettings) SerializeJSON() (json.RawMessage, error) {
	return json.Marshal(s)
}

func (s *DeviceSettings) DeserializeJSON(doc json.RawMessage) error {
	return s.Deserialize(string(doc))
}
