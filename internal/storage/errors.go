// Copyright (c) 2026 Li Jinling. All rights reserved.
// This software may be modified and distributed under the terms
// of the BSD-3 Clause License. See the LICENSE file for details.

package storage

import (
	"errors"
	"fmt"
)

// Kind classifies a persistence failure.
type Kind int

const (
	// KindMount means the medium could not be mounted or the namespace could not be opened.
	KindMount Kind = iota + 1
	// KindIO means a read or write failed, or no handle was open.
	KindIO
	// KindEmpty means nothing is stored at the path, or the stored text is empty.
	KindEmpty
	// KindUnbound means the facade has no backend or no data source attached.
	KindUnbound
	// KindUnsupported marks the reserved JSON operations.
	KindUnsupported
)

func (k Kind) String() string {
	switch k {
	case KindMount:
		return "mount"
	case KindIO:
		return "io"
	case KindEmpty:
		return "empty"
	case KindUnbound:
		return "unbound"
	case KindUnsupported:
		return "unsupported"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Sentinels matched by errors.Is against any *Error of the same kind.
var (
	ErrNotMounted = errors.New("storage: medium not mounted")
	ErrIO         = errors.New("storage: read/write failed")
	ErrEmpty      = errors.New("storage: nothing stored")
	ErrUnbound    = errors.New("storage: no backend or data source bound")
)

// Error is the result of a failed storage or facade operation.
type Error struct {
	Kind Kind
	Op   string
	Path string
	Err  error
}

func (e *Error) Error() string {
	msg := e.Op
	if e.Path != "" {
		msg += " " + e.Path
	}
	msg += ": " + e.Kind.String()
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

// Is reports whether target is the sentinel for e's kind.
func (e *Error) Is(target error) bool {
	switch target {
	case ErrNotMounted:
		return e.Kind == KindMount
	case ErrIO:
		return e.Kind == KindIO
	case ErrEmpty:
		return e.Kind == KindEmpty
	case ErrUnbound:
		return e.Kind == KindUnbound
	case errors.ErrUnsupported:
		return e.Kind == KindUnsupported
	}
	return false
}

// KindOf returns the kind of the first *Error in err's chain, or 0.
func KindOf(err error) Kind {
	var se *Error
	if errors.As(err, &se) {
		return se.Kind
	}
	return 0
}

// NewError builds an *Error.
func NewError(kind Kind, op, path string, err error) *Error {
	return &Error{Kind: kind, Op: op, Path: path, Err: err}
}
