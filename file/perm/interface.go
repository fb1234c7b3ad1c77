/*
 * MIT License
 *
 * Copyright (c) 2025 Nicolas JUHEL
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 */

// Package perm is the Unix permission bits every crawled and restored
// file carries through this engine: crawl.FileInfo.Mode is a Perm read
// straight off os.Lstat, the tar framer writes it into each payload
// header, and restore.writeEntry chmods the destination back to it.
package perm

import (
	"os"
	"strconv"
)

// Perm is a Unix permission-and-mode value, layout-compatible with
// os.FileMode so crawl and the tar framer can convert between them
// with a plain cast.
type Perm os.FileMode

// Parse accepts either an octal string ("0644") or a symbolic one
// ("-rw-r--r--", with an optional leading file-type character).
func Parse(s string) (Perm, error) {
	return parseString(s)
}

// ParseFileMode lifts an os.FileMode (as returned by os.Lstat) into a Perm.
func ParseFileMode(p os.FileMode) Perm {
	return Perm(p)
}

// ParseInt accepts the permission written as its octal digits typed
// into a decimal int, e.g. ParseInt(644) -> Perm(0o644), the way a
// YAML or CLI-flag value that looks octal is usually entered.
func ParseInt(i int) (Perm, error) {
	return parseString(strconv.FormatInt(int64(i), 10))
}

// ParseInt64 is ParseInt for an int64 input.
func ParseInt64(i int64) (Perm, error) {
	return parseString(strconv.FormatInt(i, 10))
}

// ParseByte parses a permission string given as raw bytes, the form
// every Unmarshal* method in encode.go receives it in.
func ParseByte(p []byte) (Perm, error) {
	return parseString(string(p))
}
