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

// Package errors provides the error taxonomy shared by every component of the
// backup engine: a small numeric Code classifying what went wrong, an exit
// code for the CLI, and parent-error chaining so a low-level cause (a file
// that could not be read, a malformed archive header) can be reported
// alongside the higher-level operation that failed.
package errors

// Code classifies an error into one of the kinds the engine can produce.
// Every Code maps to a distinct process exit code (see Code.ExitCode).
type Code uint8

const (
	// CodeUnknown is the zero value: an error with no specific classification.
	CodeUnknown Code = iota

	// CodeIO covers filesystem or compressor-backend failures on the
	// archive file itself. Fatal: the caller closes and deletes the
	// partial archive.
	CodeIO

	// CodeFormat covers a malformed archive: a missing config or list
	// record, or a list that cannot be decoded.
	CodeFormat

	// CodeConfig covers an invalid or out-of-range configuration: bad
	// quality, unreadable regex, missing includes.
	CodeConfig

	// CodeFileAccess covers a single file that could not be read or
	// stat'd during crawl or payload streaming. Non-fatal per file.
	CodeFileAccess

	// CodeNotFound covers a restore target that is not present anywhere
	// in the resolved archive chain.
	CodeNotFound

	// CodeAlreadyExists covers a destination that exists and force was
	// not set.
	CodeAlreadyExists

	// CodeCancelled covers cooperative cancellation signaled by the
	// orchestrator through a progress callback.
	CodeCancelled

	// CodeNoBackup covers archive discovery finding no matching files in
	// a directory.
	CodeNoBackup
)

// String returns a lowercase label for the code, used in log fields and
// one-line CLI error messages.
func (c Code) String() string {
	switch c {
	case CodeIO:
		return "io_error"
	case CodeFormat:
		return "format_error"
	case CodeConfig:
		return "config_error"
	case CodeFileAccess:
		return "file_access_error"
	case CodeNotFound:
		return "not_found"
	case CodeAlreadyExists:
		return "already_exists"
	case CodeCancelled:
		return "cancelled"
	case CodeNoBackup:
		return "no_backup"
	default:
		return "unknown_error"
	}
}

// ExitCode returns the process exit code a CLI command should use when this
// is the outermost error surfaced to the user (see spec §7).
func (c Code) ExitCode() int {
	switch c {
	case CodeUnknown:
		return 1
	case CodeIO:
		return 2
	case CodeFormat:
		return 3
	case CodeConfig:
		return 4
	case CodeFileAccess:
		return 5
	case CodeNotFound:
		return 6
	case CodeAlreadyExists:
		return 7
	case CodeCancelled:
		return 8
	case CodeNoBackup:
		return 9
	default:
		return 1
	}
}
