// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package env

import (
	"sort"
)

// Source is a named, read only set of properties.
type Source interface {
	Name() string
	Property(key string) (string, bool)
}

// EnumerableSource is a Source which can also list the keys it holds.
type EnumerableSource interface {
	Source

	// Keys returns the property keys in lexical order.
	Keys() []string
}

// MapSource is an immutable Source backed by a map.
type MapSource struct {
	name  string
	props map[string]string
}

// NewMapSource copies props into a new MapSource. Later changes to
// props are not visible through the returned source.
func NewMapSource(name string, props map[string]string) *MapSource {
	m := make(map[string]string, len(props))
	for k, v := range props {
		m[k] = v
	}
	return &MapSource{
		name:  name,
		props: m,
	}
}

// Name implements the [Source] interface.
func (s *MapSource) Name() string {
	return s.name
}

// Property implements the [Source] interface.
func (s *MapSource) Property(key string) (string, bool) {
	v, ok := s.props[key]
	return v, ok
}

// Keys implements the [EnumerableSource] interface.
func (s *MapSource) Keys() []string {
	keys := make([]string, 0, len(s.props))
	for k := range s.props {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Len returns the number of properties held by the source.
func (s *MapSource) Len() int {
	return len(s.props)
}

// CompositeSource presents several sources as a single named Source.
// Members are consulted in order and the first match wins.
type CompositeSource struct {
	name    string
	members []Source
}

// NewCompositeSource returns a CompositeSource over a copy of members.
func NewCompositeSource(name string, members ...Source) *CompositeSource {
	ms := make([]Source, len(members))
	copy(ms, members)
	return &CompositeSource{
		name:    name,
		members: ms,
	}
}

// Name implements the [Source] interface.
func (s *CompositeSource) Name() string {
	return s.name
}

// Property implements the [Source] interface.
func (s *CompositeSource) Property(key string) (string, bool) {
	for _, m := range s.members {
		v, ok := m.Property(key)
		if ok {
			return v, true
		}
	}
	return "", false
}

// Keys implements the [EnumerableSource] interface. Members which
// are not enumerable contribute no keys.
func (s *CompositeSource) Keys() []string {
	seen := make(map[string]struct{})
	for _, m := range s.members {
		es, ok := m.(EnumerableSource)
		if !ok {
			continue
		}
		for _, k := range es.Keys() {
			seen[k] = struct{}{}
		}
	}
	keys := make([]string, 0, len(seen))
	for k := range seen {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Members returns a copy of the composed sources in lookup order.
func (s *CompositeSource) Members() []Source {
	ms := make([]Source, len(s.members))
	copy(ms, s.members)
	return ms
}
