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

// Error extends the standard error with a Code, an optional path the error
// concerns, and a chain of parent causes. It is compatible with errors.Is /
// errors.As through Unwrap.
type Error interface {
	error

	// Code returns the classification of this error.
	Code() Code

	// Path returns the filesystem or archive path this error concerns, or
	// "" if not applicable.
	Path() string

	// Unwrap returns the immediate parent cause, or nil.
	Unwrap() error

	// IsCode reports whether this error (not its parents) has the given code.
	IsCode(code Code) bool

	// HasCode reports whether this error or any parent in its chain has
	// the given code.
	HasCode(code Code) bool
}

// New builds an Error of the given code with the given message and no path.
func New(code Code, message string) Error {
	return &wrapped{code: code, msg: message}
}

// Wrap builds an Error of the given code, chaining cause as its parent. If
// cause is nil, Wrap behaves like New.
func Wrap(code Code, message string, cause error) Error {
	return &wrapped{code: code, msg: message, cause: cause}
}

// WithPath builds an Error of the given code carrying the given path,
// chaining cause as its parent.
func WithPath(code Code, message string, path string, cause error) Error {
	return &wrapped{code: code, msg: message, path: path, cause: cause}
}
