// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package env

import (
	"fmt"
	"sort"

	"github.com/z5labs/bootenv/env/key"
)

// Store represents a general key value structure.
type Store interface {
	Set(key.Keyer, any) error
}

// flatStore records every value under its dotted key.
type flatStore map[string]string

func (m flatStore) Set(k key.Keyer, v any) error {
	m[k.Key()] = fmt.Sprint(v)
	return nil
}

// nestedStore records values in nested maps, one level per key segment.
type nestedStore map[string]any

func (m nestedStore) Set(k key.Keyer, v any) error {
	return set(m, k, v)
}

func set(m map[string]any, k key.Keyer, v any) error {
	switch x := k.(type) {
	case key.Name:
		if _, isMap := m[string(x)].(map[string]any); isMap {
			return UnexpectedKeyValueTypeError{
				Key:          string(x),
				ExpectedType: "leaf value",
			}
		}
		m[string(x)] = v
	case key.Chain:
		return setKeyChain(m, x, v)
	default:
		return UnknownKeyerError{Key: k}
	}
	return nil
}

func setKeyChain(m map[string]any, chain key.Chain, v any) error {
	if len(chain) == 0 {
		return EmptyKeyChainError{Value: v}
	}

	root := chain[0]
	if len(chain) == 1 {
		return set(m, root, v)
	}

	old, ok := m[root.Key()]
	if !ok {
		old = make(map[string]any)
		m[root.Key()] = old
	}

	subM, ok := old.(map[string]any)
	if !ok {
		return UnexpectedKeyValueTypeError{
			Key:          root.Key(),
			ExpectedType: "map[string]any",
		}
	}
	return set(subM, chain[1:], v)
}

func expand(flat map[string]string) (map[string]any, error) {
	keys := make([]string, 0, len(flat))
	for k := range flat {
		keys = append(keys, k)
	}
	// deterministic errors for conflicting shapes
	sort.Strings(keys)

	m := make(nestedStore)
	for _, k := range keys {
		err := m.Set(key.Split(k), flat[k])
		if err != nil {
			return nil, err
		}
	}
	return m, nil
}

// walk flattens a decoded document into store. Sequences are addressed
// by index on their parent key, e.g. "servers[0].host".
func walk(v any, store Store, chain key.Chain) error {
	switch x := v.(type) {
	case map[string]any:
		for k, sub := range x {
			err := walk(sub, store, chain.Append(k))
			if err != nil {
				return err
			}
		}
	case map[any]any:
		for k, sub := range x {
			err := walk(sub, store, chain.Append(fmt.Sprint(k)))
			if err != nil {
				return err
			}
		}
	case []any:
		if len(chain) == 0 {
			return EmptyKeyChainError{Value: v}
		}
		parent := chain[:len(chain)-1]
		last := chain[len(chain)-1].Key()
		for i, sub := range x {
			err := walk(sub, store, parent.Append(fmt.Sprintf("%s[%d]", last, i)))
			if err != nil {
				return err
			}
		}
	case nil:
		if len(chain) == 0 {
			return nil
		}
		return store.Set(chain, "")
	default:
		if len(chain) == 0 {
			return EmptyKeyChainError{Value: v}
		}
		return store.Set(chain, x)
	}
	return nil
}

func flatten(doc map[string]any) (map[string]string, error) {
	m := make(flatStore)
	err := walk(doc, m, nil)
	if err != nil {
		return nil, err
	}
	return m, nil
}
