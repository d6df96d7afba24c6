// Copyright (c) 2026 Li Jinling. All rights reserved.
// This software may be modified and distributed under the terms
// of the BSD-3 Clause License. See the LICENSE file for details.

package model

import (
	"encoding/json"
	"strconv"
)

// BootCounter counts device starts. Its text form is the decimal count.
type BootCounter struct {
	Count uint32
}

func (c *BootCounter) Increment() { c.Count++ }

func (c *BootCounter) Serialize() (string, error) {
	return strconv.FormatUint(uint64(c.Count), 10), nil
}

func (c *BootCounter) Deserialize(data string) error {
	n, err := strconv.ParseUint(data, 10, 32)
	if err != nil {
		return err
	}
	c.Count = uint32(n)
	return nil
}

func (c *BootCounter) SerializeJSON() (json.RawMessage, error) {
	return json.Marshal(map[string]uint32{"count": c.Count})
}

func (c *BootCounter) DeserializeJSON(doc json.RawMessage) error {
	var v struct {
		Count uint32 `json:"count"`
	}
	if err := json.Unmarshal(doc, &v); err != nil {
		return err
	}
	c.Count = v.Count
	return nil
}
