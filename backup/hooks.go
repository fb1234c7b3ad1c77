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

package backup

import (
	"github.com/aggrathon/simplebackup/crawl"
	"github.com/aggrathon/simplebackup/file/progress"
)

// Hooks lets a caller observe and steer a running backup without
// coupling this package to any particular UI. Every field is optional.
type Hooks struct {
	// Increment is called, via progress.Progress, as bytes of the
	// current file are read from disk.
	Increment progress.FctIncrement
	// File is called once per included file, after its payload (if
	// any) has been streamed into the archive, with the crawled
	// FileInfo and the error that occurred writing it (nil on
	// success). A file skipped because it could not be read is still
	// reported here, with the read error.
	File func(info crawl.FileInfo, err error)
	// List is called once, immediately after the file-list record has
	// been written, before any payload record.
	List func()
	// Cancelled is polled between files; returning true aborts the
	// backup and deletes the partial archive.
	Cancelled func() bool
}

func (h Hooks) cancelled() bool {
	return h.Cancelled != nil && h.Cancelled()
}

func (h Hooks) file(info crawl.FileInfo, err error) {
	if h.File != nil {
		h.File(info, err)
	}
}

func (h Hooks) list() {
	if h.List != nil {
		h.List()
	}
}
