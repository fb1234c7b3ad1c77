/***********************************************************************************************************************
 *
 *   MIT License
 *
 *   Copyright (c) 2021 Nicolas JUHEL
 *
 *   Permission is hereby granted, free of charge, to any person obtaining a copy
 *   of this software and associated documentation files (the "Software"), to deal
 *   in the Software without restriction, including without limitation the rights
 *   to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 *   copies of the Software, and to permit persons to whom the Software is
 *   furnished to do so, subject to the following conditions:
 *
 *   The above copyright notice and this permission notice shall be included in all
 *   copies or substantial portions of the Software.
 *
 *   THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 *   IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 *   FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 *   AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 *   LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 *   OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 *   SOFTWARE.
 *
 *
 **********************************************************************************************************************/

// Package mapCloser provides a thread-safe manager for multiple io.Closer
// instances, optionally bound to a context so cancellation triggers cleanup.
// Restore's chain walk uses it to track archive Readers opened while
// following a backup chain, so a single Close (or a cancelled context)
// releases every file handle opened along the way.
package mapCloser

import (
	"context"
	"io"
)

// Closer is a thread-safe manager for multiple io.Closer instances.
// It provides automatic cleanup when the associated context is cancelled
// and allows manual resource management through Add, Get, Clean, and Close methods.
// All methods are safe for concurrent use.
type Closer interface {
	// Add registers one or more io.Closer instances for management.
	// If the Closer is already closed, this is a no-op. Nil closers are
	// accepted but filtered out during Get() and Close().
	Add(clo ...io.Closer)

	// Get returns a copy of all registered io.Closer instances, excluding nil values.
	Get() []io.Closer

	// Len returns the count of closers currently registered.
	Len() int

	// Clean removes all registered closers without closing them.
	Clean()

	// Clone creates an independent copy of this Closer with the same
	// registered closers. The clone does not share the parent's context.
	Clone() Closer

	// Close closes all registered io.Closer instances and returns an
	// aggregated error if any closer fails to close. Safe to call more
	// than once; only the first call closes anything.
	Close() error
}

// New creates a Closer with no bound context; only an explicit Close()
// call triggers cleanup.
func New() Closer {
	return &closer{items: make([]io.Closer, 0, 4)}
}

// NewContext creates a Closer that also closes itself, in the background,
// as soon as ctx is done. Use this to tie an open archive chain's lifetime
// to a backup/restore operation's cancellation context.
func NewContext(ctx context.Context) Closer {
	c := &closer{items: make([]io.Closer, 0, 4)}
	go func() {
		<-ctx.Done()
		_ = c.Close()
	}()
	return c
}
