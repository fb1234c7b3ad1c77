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
	"container/heap"

	"github.com/aggrathon/simplebackup/archive/pathtrans"
	"github.com/aggrathon/simplebackup/archive/tar"
	"github.com/aggrathon/simplebackup/errors"
	"github.com/aggrathon/simplebackup/filelist"
	"github.com/aggrathon/simplebackup/logger"
)

// workItem is one file handed to a reader goroutine: its position in
// the included-entries sequence (so results can be reordered) and the
// entry itself.
type workItem struct {
	index int
	entry filelist.Entry
}

// result is a completed read, carrying its original index so the
// archive-writer goroutine can restore crawl order before writing —
// the writer must emit entries in a fixed order even though the reader
// pool finishes them in whatever order disk I/O allows.
type result struct {
	index int
	entry filelist.Entry
	data  []byte
	err   error
}

// resultHeap orders buffered results by index, giving the writer a
// min-heap it can drain in order as each missing index arrives.
type resultHeap []result

func (h resultHeap) Len() int            { return len(h) }
func (h resultHeap) Less(i, j int) bool  { return h[i].index < h[j].index }
func (h resultHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *resultHeap) Push(x interface{}) { *h = append(*h, x.(result)) }
func (h *resultHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// writePayloadsParallel reads included files across threads worker
// goroutines while a single goroutine owns the archive writer, draining
// completed reads through a reorder buffer so records land in the same
// order a sequential backup would produce (spec.md §4.5's reorder-buffer
// design, grounded directly in its concurrency sketch).
func writePayloadsParallel(w *tar.Writer, list filelist.Vec, threads int, hooks Hooks, log logger.Logger) error {
	var included []filelist.Entry
	for _, e := range list {
		if e.Included {
			included = append(included, e)
		}
	}
	if len(included) == 0 {
		return nil
	}

	work := make(chan workItem)
	results := make(chan result)
	done := make(chan struct{})
	defer close(done)

	for i := 0; i < threads; i++ {
		go func() {
			for {
				select {
				case item, ok := <-work:
					if !ok {
						return
					}
					data, err := readFile(item.entry.Info.Path, hooks)
					select {
					case results <- result{index: item.index, entry: item.entry, data: data, err: err}:
					case <-done:
						return
					}
				case <-done:
					return
				}
			}
		}()
	}

	go func() {
		defer close(work)
		for i, e := range included {
			select {
			case work <- workItem{index: i, entry: e}:
			case <-done:
				return
			}
		}
	}()

	buffer := &resultHeap{}
	heap.Init(buffer)
	next := 0
	for next < len(included) {
		if hooks.cancelled() {
			return errors.Cancelled()
		}

		res := <-results
		heap.Push(buffer, res)

		for buffer.Len() > 0 && (*buffer)[0].index == next {
			r := heap.Pop(buffer).(result)
			if r.err != nil {
				log.WithFields(logger.Fields{"path": r.entry.Info.Path}).Warn("skipping unreadable file: " + r.err.Error())
				hooks.file(r.entry.Info, r.err)
				next++
				continue
			}
			name := pathtrans.ToArchive(r.entry.Info.Path)
			writeErr := w.AppendFileBytes(name, r.data, r.entry.Info.Mode, r.entry.Info.ModTime)
			hooks.file(r.entry.Info, writeErr)
			if writeErr != nil {
				return writeErr
			}
			next++
		}
	}
	return nil
}
