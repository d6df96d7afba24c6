// Copyright (c) 2026 Li Jinling. All rights reserved.
// This software may be modified and distributed under the terms
// of the BSD-3 Clause License. See the LICENSE file for details.

package persistence

import "encoding/json"

// TextSerializable round-trips a value through text.
type TextSerializable interface {
	Serialize() (string, error)
	Deserialize(data string) error
}

// JSONSerializable round-trips a value through a JSON document.
type JSONSerializable interface {
	SerializeJSON() (json.RawMessage, error)
	DeserializeJSON(doc json.RawMessage) error
}

// Serializable is a data model the facade can persist.
type Serializable interface {
	TextSerializable
	JSONSerializable
}
