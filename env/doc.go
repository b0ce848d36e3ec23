// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package env models a process environment as an ordered list of named
// property sources.
//
// Every [Source] maps string keys to string values. An [Environment] resolves
// a key by asking its sources in priority order and returning the first match,
// where the source at index 0 has the highest priority and [Environment.AddLast]
// appends at the lowest priority.
//
// # Sources
//
// Sources can be built directly from a map:
//
//	src := env.NewMapSource("defaults", map[string]string{
//	    "server.port": "8080",
//	})
//
// or adapted from other representations, e.g. process environment variables,
// YAML and JSON documents, or a [github.com/spf13/viper.Viper] instance. Nested
// documents are flattened into dotted keys.
//
// [FromFile] picks the YAML or JSON adapter by file extension.
//
// # Resolved view
//
// [Environment.Flatten] merges every enumerable source into one map and
// [Environment.Map] expands it back into nested maps.
package env
