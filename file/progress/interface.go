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

// Package progress wraps *os.File with byte-counting callbacks so backup
// and restore can report streaming progress to a caller without either
// of them knowing what a terminal, a GUI, or a no-op looks like.
package progress

import (
	"io"
	"os"

	"github.com/aggrathon/simplebackup/errors"
)

const DefaultBuffSize = 32 * 1024 // see io.copyBuffer

type FctIncrement func(size int64)
type FctReset func(size, current int64)
type FctEOF func()

type GenericIO interface {
	io.ReadCloser
	io.ReadSeeker
	io.ReadWriteCloser
	io.ReadWriteSeeker
	io.WriteCloser
	io.WriteSeeker
	io.Reader
	io.ReaderFrom
	io.ReaderAt
	io.Writer
	io.WriterAt
	io.WriterTo
	io.Seeker
	io.StringWriter
	io.Closer
	io.ByteReader
	io.ByteWriter
}

type File interface {
	// CloseDelete closes the file and removes it, regardless of IsTemp.
	CloseDelete() error
	Path() string
	Stat() (os.FileInfo, error)
	// SizeBOF returns the current offset from the start of the file.
	SizeBOF() (size int64, err error)
	// SizeEOF returns the number of bytes remaining after the current offset.
	SizeEOF() (size int64, err error)
	Truncate(size int64) error
	Sync() error
}

type TempFile interface {
	// IsTemp reports whether Close also deletes the file.
	IsTemp() bool
}

// Progress is a file handle that reports byte-level progress through
// optional callbacks while satisfying every standard I/O interface, so
// it can be handed to io.Copy/io.ReadAll exactly like an *os.File.
type Progress interface {
	GenericIO
	File
	TempFile

	// RegisterFctIncrement registers the callback invoked after every
	// successful Read/Write with the number of bytes that call
	// transferred.
	RegisterFctIncrement(fct FctIncrement)
	// RegisterFctReset registers the callback invoked when Seek or
	// Truncate moves the tracked position, with the size observed and
	// the new offset.
	RegisterFctReset(fct FctReset)
	// RegisterFctEOF registers the callback invoked once a Read returns
	// io.EOF.
	RegisterFctEOF(fct FctEOF)
	SetBufferSize(size int32)
	// SetRegisterProgress copies this handle's registered callbacks onto f,
	// letting a reader's progress reporting carry over to a paired writer.
	SetRegisterProgress(f Progress)
	// Reset replays the reset callback with the given total size (the
	// file's own size if max < 1) and the current offset.
	Reset(max int64)
}

// New opens name with the given flags and permissions.
func New(name string, flags int, perm os.FileMode) (Progress, error) {
	fh, e := os.OpenFile(name, flags, perm)
	if e != nil {
		return nil, errors.FileAccessError(name, e)
	}
	return newProgress(fh, false), nil
}

// Unique creates a new file in basePath following pattern's os.CreateTemp
// rules. Unlike Temp, the file is not auto-deleted on Close.
func Unique(basePath, pattern string) (Progress, error) {
	fh, e := os.CreateTemp(basePath, pattern)
	if e != nil {
		return nil, errors.IoError("create", basePath, e)
	}
	return newProgress(fh, false), nil
}

// Temp creates a scratch file in the default temp directory that is
// removed automatically when the returned handle is closed.
func Temp(pattern string) (Progress, error) {
	fh, e := os.CreateTemp("", pattern)
	if e != nil {
		return nil, errors.IoError("create", pattern, e)
	}
	return newProgress(fh, true), nil
}

// Open opens name for reading, failing if it does not already exist.
func Open(name string) (Progress, error) {
	fh, e := os.Open(name)
	if e != nil {
		return nil, errors.FileAccessError(name, e)
	}
	return newProgress(fh, false), nil
}

// Create creates (or truncates) name for writing.
func Create(name string) (Progress, error) {
	fh, e := os.Create(name)
	if e != nil {
		return nil, errors.IoError("create", name, e)
	}
	return newProgress(fh, false), nil
}
