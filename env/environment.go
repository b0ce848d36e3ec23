// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package env

import (
	"dario.cat/mergo"
)

// Environment is an ordered list of sources. The source at index 0 has
// the highest priority. An Environment is not safe for concurrent
// mutation.
type Environment struct {
	sources []Source
}

// NewEnvironment returns an Environment holding srcs in the given
// priority order.
func NewEnvironment(srcs ...Source) *Environment {
	ss := make([]Source, 0, len(srcs))
	for _, src := range srcs {
		if src == nil {
			continue
		}
		ss = append(ss, src)
	}
	return &Environment{sources: ss}
}

// AddFirst registers src with the highest priority. It does nothing
// on a nil Environment.
func (e *Environment) AddFirst(src Source) {
	if e == nil || src == nil {
		return
	}
	e.sources = append([]Source{src}, e.sources...)
}

// AddLast registers src with the lowest priority. Sources already
// registered under the same name are left in place and shadow src
// on [Environment.Get].
func (e *Environment) AddLast(src Source) {
	if e == nil || src == nil {
		return
	}
	e.sources = append(e.sources, src)
}

// Get returns the highest priority source registered under name.
func (e *Environment) Get(name string) (Source, bool) {
	if e == nil {
		return nil, false
	}
	for _, src := range e.sources {
		if src.Name() == name {
			return src, true
		}
	}
	return nil, false
}

// Contains reports whether any source is registered under name.
func (e *Environment) Contains(name string) bool {
	_, ok := e.Get(name)
	return ok
}

// Remove unregisters the highest priority source registered under name
// and returns it.
func (e *Environment) Remove(name string) (Source, bool) {
	return e.RemoveFunc(func(src Source) bool {
		return src.Name() == name
	})
}

// RemoveFunc unregisters the highest priority source for which match
// returns true and returns it.
func (e *Environment) RemoveFunc(match func(Source) bool) (Source, bool) {
	if e == nil {
		return nil, false
	}
	for i, src := range e.sources {
		if !match(src) {
			continue
		}
		e.sources = append(e.sources[:i:i], e.sources[i+1:]...)
		return src, true
	}
	return nil, false
}

// Sources returns a copy of the registered sources in priority order.
func (e *Environment) Sources() []Source {
	if e == nil {
		return nil
	}
	ss := make([]Source, len(e.sources))
	copy(ss, e.sources)
	return ss
}

// Names returns the registered source names in priority order.
func (e *Environment) Names() []string {
	if e == nil {
		return nil
	}
	names := make([]string, len(e.sources))
	for i, src := range e.sources {
		names[i] = src.Name()
	}
	return names
}

// Len returns the number of registered sources.
func (e *Environment) Len() int {
	if e == nil {
		return 0
	}
	return len(e.sources)
}

// Property resolves key against the sources in priority order.
func (e *Environment) Property(key string) (string, bool) {
	if e == nil {
		return "", false
	}
	for _, src := range e.sources {
		v, ok := src.Property(key)
		if ok {
			return v, true
		}
	}
	return "", false
}

// PropertyOr resolves key or returns def if no source holds it.
func (e *Environment) PropertyOr(key, def string) string {
	v, ok := e.Property(key)
	if !ok {
		return def
	}
	return v
}

// ContainsProperty reports whether key resolves through any source.
func (e *Environment) ContainsProperty(key string) bool {
	_, ok := e.Property(key)
	return ok
}

// Flatten returns every property resolvable through an [EnumerableSource],
// with higher priority sources winning for shared keys.
func (e *Environment) Flatten() (map[string]string, error) {
	flat := make(map[string]string)
	if e == nil {
		return flat, nil
	}

	// walk from lowest to highest priority so overrides land last
	for i := len(e.sources) - 1; i >= 0; i-- {
		es, ok := e.sources[i].(EnumerableSource)
		if !ok {
			continue
		}

		props := make(map[string]string)
		for _, k := range es.Keys() {
			v, _ := es.Property(k)
			props[k] = v
		}

		err := mergo.Merge(&flat, props, mergo.WithOverride)
		if err != nil {
			return nil, MergeError{Source: es.Name(), Cause: err}
		}
	}
	return flat, nil
}

// Map returns the flattened view expanded into nested maps by
// splitting keys on ".".
func (e *Environment) Map() (map[string]any, error) {
	flat, err := e.Flatten()
	if err != nil {
		return nil, err
	}
	return expand(flat)
}
