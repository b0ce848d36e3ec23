// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package env

import (
	"encoding/json"
	"io"
	"os"
	"strings"

	"github.com/z5labs/bootenv/env/key"
	"github.com/z5labs/bootenv/internal/try"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// FromEnviron returns a source holding the environment variables
// available to the current process.
func FromEnviron(name string) *MapSource {
	return fromEnviron(name, os.Environ())
}

func fromEnviron(name string, environ []string) *MapSource {
	props := make(map[string]string, len(environ))
	for _, pair := range environ {
		k, v, ok := strings.Cut(pair, "=")
		if !ok {
			continue
		}
		props[k] = v
	}
	return NewMapSource(name, props)
}

// FromYaml parses a YAML document from r into a source. Nested
// mappings become dotted keys. If r implements [io.Closer] it
// will be closed.
func FromYaml(name string, r io.Reader) (_ *MapSource, err error) {
	defer try.Close(&err, r)

	b, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	doc := make(map[string]any)
	err = yaml.Unmarshal(b, &doc)
	if err != nil {
		return nil, InvalidYamlError{Cause: err}
	}

	props, err := flatten(doc)
	if err != nil {
		return nil, err
	}
	return NewMapSource(name, props), nil
}

// FromJson parses a JSON object from r into a source. Nested
// objects become dotted keys. If r implements [io.Closer] it
// will be closed.
func FromJson(name string, r io.Reader) (_ *MapSource, err error) {
	defer try.Close(&err, r)

	b, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	doc := make(map[string]any)
	err = json.Unmarshal(b, &doc)
	if err != nil {
		return nil, InvalidJsonError{Cause: err}
	}

	props, err := flatten(doc)
	if err != nil {
		return nil, err
	}
	return NewMapSource(name, props), nil
}

// FromViper snapshots every key currently known to v into a source.
// Viper lowercases keys, so the resulting source does too.
func FromViper(name string, v *viper.Viper) (*MapSource, error) {
	m := make(flatStore)
	for _, k := range v.AllKeys() {
		err := walk(v.Get(k), m, key.Split(k))
		if err != nil {
			return nil, err
		}
	}
	return NewMapSource(name, m), nil
}
