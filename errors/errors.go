/*
 * MIT License
 *
 * Copyright (c) 2020 Nicolas JUHEL
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

package errors

import "fmt"

type wrapped struct {
	code  Code
	msg   string
	path  string
	cause error
}

func (e *wrapped) Error() string {
	if e.path != "" && e.msg != "" {
		return fmt.Sprintf("%s: %s: %s", e.code, e.path, e.msg)
	} else if e.path != "" {
		return fmt.Sprintf("%s: %s", e.code, e.path)
	} else if e.msg != "" {
		return fmt.Sprintf("%s: %s", e.code, e.msg)
	}
	return e.code.String()
}

func (e *wrapped) Code() Code {
	return e.code
}

func (e *wrapped) Path() string {
	return e.path
}

func (e *wrapped) Unwrap() error {
	return e.cause
}

func (e *wrapped) IsCode(code Code) bool {
	return e.code == code
}

func (e *wrapped) HasCode(code Code) bool {
	if e.code == code {
		return true
	}
	if p, ok := e.cause.(Error); ok {
		return p.HasCode(code)
	}
	return false
}

// IoError builds a CodeIO error for a failed operation on a path.
func IoError(op, path string, cause error) Error {
	return WithPath(CodeIO, op, path, cause)
}

// FormatError builds a CodeFormat error describing a malformed archive.
func FormatError(reason string) Error {
	return New(CodeFormat, reason)
}

// ConfigError builds a CodeConfig error describing an invalid configuration.
func ConfigError(reason string) Error {
	return New(CodeConfig, reason)
}

// FileAccessError builds a CodeFileAccess error for a single unreadable file.
func FileAccessError(path string, cause error) Error {
	return WithPath(CodeFileAccess, "cannot access file", path, cause)
}

// NotFound builds a CodeNotFound error for a restore target missing from
// the resolved archive chain.
func NotFound(path string) Error {
	return WithPath(CodeNotFound, "not present in archive chain", path, nil)
}

// AlreadyExists builds a CodeAlreadyExists error for a destination that
// exists and force was not requested.
func AlreadyExists(path string) Error {
	return WithPath(CodeAlreadyExists, "already exists", path, nil)
}

// Cancelled builds the sentinel CodeCancelled error returned by progress
// callbacks and propagated by writers/readers to unwind cooperatively.
func Cancelled() Error {
	return New(CodeCancelled, "operation cancelled")
}

// NoBackup builds a CodeNoBackup error for a directory with no matching
// archive files.
func NoBackup(dir string) Error {
	return WithPath(CodeNoBackup, "no matching archive found", dir, nil)
}

// IsCancelled reports whether err is, or wraps, the Cancelled sentinel.
func IsCancelled(err error) bool {
	if e, ok := err.(Error); ok {
		return e.HasCode(CodeCancelled)
	}
	return false
}
