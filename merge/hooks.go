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

package merge

import "github.com/aggrathon/simplebackup/filelist"

// Hooks mirrors backup.Hooks' per-file and post-list shape ("same
// callback contract as the Writer") so the CLI drives backup, restore,
// and merge progress uniformly. Unlike backup's Hooks, there is no
// Increment field: a merged payload is re-framed straight from its
// owning source's tar.Entry into the destination writer, never passing
// through a file/progress handle to hang a byte counter on.
type Hooks struct {
	// File is called once per merged entry, after its payload has been
	// re-framed into the destination archive, with the entry and the
	// write error (nil on success).
	File func(entry filelist.Entry, err error)
	// List is called once, after the merged file-list record has been
	// written, before any payload record.
	List func()
	// Cancelled is polled between files; returning true aborts the
	// merge and deletes the partial destination archive.
	Cancelled func() bool
}

func (h Hooks) cancelled() bool {
	return h.Cancelled != nil && h.Cancelled()
}

func (h Hooks) file(entry filelist.Entry, err error) {
	if h.File != nil {
		h.File(entry, err)
	}
}

func (h Hooks) list() {
	if h.List != nil {
		h.List()
	}
}
