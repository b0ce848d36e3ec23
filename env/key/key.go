// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package key provides types for dotted property keys.
package key

import (
	"strings"
)

// Separator joins the segments of a nested property key.
const Separator = "."

// Keyer is a common interface all property key types must implement.
type Keyer interface {
	Key() string
}

// Chain represents a nested key, outermost segment first.
type Chain []Keyer

// Key implements the [Keyer] interface.
func (k Chain) Key() string {
	ss := make([]string, len(k))
	for i := 0; i < len(k); i++ {
		ss[i] = k[i].Key()
	}
	return strings.Join(ss, Separator)
}

// Append returns a new Chain with name added as the innermost segment.
// The receiver is never modified.
func (k Chain) Append(name string) Chain {
	c := make(Chain, len(k), len(k)+1)
	copy(c, k)
	return append(c, Name(name))
}

// Name represents a single key segment.
type Name string

// Key implements the [Keyer] interface.
func (k Name) Key() string {
	return string(k)
}

// Split parses a dotted property key into a Chain. Empty segments
// are kept so that Split(k).Key() == k always holds.
func Split(dotted string) Chain {
	parts := strings.Split(dotted, Separator)
	c := make(Chain, len(parts))
	for i, p := range parts {
		c[i] = Name(p)
	}
	return c
}
