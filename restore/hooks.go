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

package restore

import (
	"github.com/aggrathon/simplebackup/archive/manifest"
	"github.com/aggrathon/simplebackup/archive/tar"
	"github.com/aggrathon/simplebackup/file/progress"
)

// Hooks lets a caller observe and steer a running restore, mirroring
// backup.Hooks's per-file and post-list shape so the CLI and any future
// GUI drive both operations the same way.
type Hooks struct {
	// Increment is called, via progress.Progress, as bytes of the
	// current file are written to its destination.
	Increment progress.FctIncrement
	// File is called once per payload record restored, after it has
	// been written to its destination, with the record's archive
	// header (name, size, mode, mtime), the destination path, and the
	// write error (nil on success).
	File func(entry *tar.Entry, dest string, err error)
	// List is called once per archive opened while restoring, right
	// after its config and file-list records have been read — the
	// restore analogue of backup.Hooks.List, since each archive in an
	// incremental chain carries its own independently-read list.
	List func(m *manifest.Manifest)
	// Cancelled is polled between entries; returning true aborts the
	// restore.
	Cancelled func() bool
}

func (h Hooks) cancelled() bool {
	return h.Cancelled != nil && h.Cancelled()
}

func (h Hooks) file(entry *tar.Entry, dest string, err error) {
	if h.File != nil {
		h.File(entry, dest, err)
	}
}

func (h Hooks) list(m *manifest.Manifest) {
	if h.List != nil {
		h.List(m)
	}
}
