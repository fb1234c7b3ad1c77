/***********************************************************************************************************************
 *
 *   MIT License
 *
 *   Copyright (c) 2021 Nicolas JUHEL
 *
 *   Permission is hereby granted, free of charge, to any person obtaining a copy
 *   of this software and associated documentation files (the "Software"), to deal
 *   in the Software without restriction, including without limitation the rights
 *   to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 *   copies of the Software, and to permit persons to whom the Software is
 *   furnished to do so, subject to the following conditions:
 *
 *   The above copyright notice and this permission notice shall be included in all
 *   copies or substantial portions of the Software.
 *
 *   THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 *   IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 *   FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 *   AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 *   LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 *   OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 *   SOFTWARE.
 *
 *
 **********************************************************************************************************************/

// Package pathtrans encodes filesystem paths as archive record names and
// decodes them back. An absolute path is stored as "abs" followed by the
// path verbatim; a relative path is stored as "rel/" followed by the
// cleaned path, so a record name alone is enough to tell which kind of
// path produced it without a separate archive field.
package pathtrans

import (
	"path/filepath"
	"strings"
)

const (
	absPrefix = "abs"
	relPrefix = "rel/"
)

// ToArchive converts a filesystem path into its archive record name.
// Separators are normalized to forward slashes so archives stay
// portable across platforms regardless of where they were written.
func ToArchive(path string) string {
	if filepath.IsAbs(path) {
		return absPrefix + filepath.ToSlash(path)
	}
	return relPrefix + filepath.ToSlash(filepath.Clean(path))
}

// FromArchive converts an archive record name back into a filesystem
// path in the host platform's native representation. Names produced
// outside this package's convention (no "abs" or "rel/" prefix) are
// returned unchanged.
func FromArchive(name string) string {
	switch {
	case strings.HasPrefix(name, relPrefix):
		return filepath.FromSlash(name[len(relPrefix):])
	case name == "rel":
		return "."
	case strings.HasPrefix(name, absPrefix):
		return filepath.FromSlash(name[len(absPrefix):])
	default:
		return name
	}
}
