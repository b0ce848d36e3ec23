// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package env

import (
	"io/fs"
	"path"
	"strings"
)

// FromFile reads the document at p in fsys into a source. The ".yaml",
// ".yml" and ".json" extensions select [FromYaml] and [FromJson]; any
// other extension is an [UnsupportedFormatError].
func FromFile(name string, fsys fs.FS, p string) (*MapSource, error) {
	switch strings.ToLower(path.Ext(p)) {
	case ".yaml", ".yml":
		f, err := fsys.Open(p)
		if err != nil {
			return nil, err
		}
		return FromYaml(name, f)
	case ".json":
		f, err := fsys.Open(p)
		if err != nil {
			return nil, err
		}
		return FromJson(name, f)
	default:
		return nil, UnsupportedFormatError{Path: p}
	}
}

// Supported reports whether [FromFile] has an adapter for p.
func Supported(p string) bool {
	switch strings.ToLower(path.Ext(p)) {
	case ".yaml", ".yml", ".json":
		return true
	}
	return false
}
