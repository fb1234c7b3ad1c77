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

package progress

import (
	"io"
	"os"
	"path/filepath"
	"sync/atomic"

	"github.com/aggrathon/simplebackup/errors"
)

// progress wraps one open *os.File with atomically-registered progress
// callbacks. fh follows the tar package's naming for a raw file handle;
// it is nilled out by clean once the file is closed so double-closes
// and post-close I/O fail with a classified error instead of a panic.
type progress struct {
	fh   *os.File
	temp bool

	buf *atomic.Int32

	onIncrement *atomic.Value
	onReset     *atomic.Value
	onEOF       *atomic.Value
}

func newProgress(fh *os.File, temp bool) *progress {
	return &progress{
		fh:          fh,
		temp:        temp,
		buf:         new(atomic.Int32),
		onIncrement: new(atomic.Value),
		onReset:     new(atomic.Value),
		onEOF:       new(atomic.Value),
	}
}

func errClosed() error {
	return errors.New(errors.CodeFileAccess, "progress: use of closed or nil file")
}

func (o *progress) SetBufferSize(size int32) {
	o.buf.Store(size)
}

func (o *progress) getBufferSize(size int) int {
	if size > 0 {
		return size
	} else if o == nil {
		return DefaultBuffSize
	}

	i := o.buf.Load()
	if i < 1024 {
		return DefaultBuffSize
	}
	return int(i)
}

// IsTemp reports whether this handle was created by Temp, meaning Close
// deletes it rather than leaving it on disk.
func (o *progress) IsTemp() bool {
	return o != nil && o.temp
}

func (o *progress) Path() string {
	return filepath.Clean(o.fh.Name())
}

func (o *progress) Stat() (os.FileInfo, error) {
	if o == nil || o.fh == nil {
		return nil, errClosed()
	}

	i, e := o.fh.Stat()
	if e != nil {
		return i, errors.FileAccessError(o.fh.Name(), e)
	}
	return i, nil
}

func (o *progress) SizeBOF() (size int64, err error) {
	if o == nil || o.fh == nil {
		return 0, errClosed()
	}

	return o.seek(0, io.SeekCurrent)
}

func (o *progress) SizeEOF() (size int64, err error) {
	if o == nil || o.fh == nil {
		return 0, errClosed()
	}

	var (
		e error
		a int64 // current position
		b int64 // end position
	)

	if a, e = o.seek(0, io.SeekCurrent); e != nil {
		return 0, e
	} else if b, e = o.seek(0, io.SeekEnd); e != nil {
		return 0, e
	} else if _, e = o.seek(a, io.SeekStart); e != nil {
		return 0, e
	}
	return b - a, nil
}

func (o *progress) Truncate(size int64) error {
	if o == nil || o.fh == nil {
		return errClosed()
	}

	e := o.fh.Truncate(size)
	o.reset()

	if e != nil {
		return errors.IoError("truncate", o.fh.Name(), e)
	}
	return nil
}

func (o *progress) Sync() error {
	if o == nil || o.fh == nil {
		return errClosed()
	}

	if e := o.fh.Sync(); e != nil {
		return errors.IoError("sync", o.fh.Name(), e)
	}
	return nil
}
