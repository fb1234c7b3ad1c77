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
	"errors"
	"io"
)

func (o *progress) RegisterFctIncrement(fct FctIncrement) {
	if fct == nil {
		fct = func(size int64) {}
	}
	o.onIncrement.Store(fct)
}

func (o *progress) RegisterFctReset(fct FctReset) {
	if fct == nil {
		fct = func(size, current int64) {}
	}
	o.onReset.Store(fct)
}

func (o *progress) RegisterFctEOF(fct FctEOF) {
	if fct == nil {
		fct = func() {}
	}
	o.onEOF.Store(fct)
}

// SetRegisterProgress copies every callback currently registered on o
// onto f, so a source handle can hand its progress reporting straight
// to a destination handle.
func (o *progress) SetRegisterProgress(f Progress) {
	if i := o.onIncrement.Load(); i != nil {
		f.RegisterFctIncrement(i.(FctIncrement))
	}
	if i := o.onReset.Load(); i != nil {
		f.RegisterFctReset(i.(FctReset))
	}
	if i := o.onEOF.Load(); i != nil {
		f.RegisterFctEOF(i.(FctEOF))
	}
}

func (o *progress) inc(n int64) {
	if o == nil {
		return
	}
	if f := o.onIncrement.Load(); f != nil {
		f.(FctIncrement)(n)
	}
}

func (o *progress) finish() {
	if o == nil {
		return
	}
	if f := o.onEOF.Load(); f != nil {
		f.(FctEOF)()
	}
}

func (o *progress) reset() {
	o.Reset(0)
}

// Reset replays the reset callback with max (or, if max < 1, the
// file's own size) as the total and the current offset as the
// position — used after Seek and Truncate, both of which make any
// running increment count meaningless.
func (o *progress) Reset(max int64) {
	if o == nil {
		return
	}

	f := o.onReset.Load()
	if f == nil {
		return
	}

	if max < 1 {
		i, e := o.Stat()
		if e != nil {
			return
		}
		max = i.Size()
	}

	if s, e := o.SizeBOF(); e == nil && s >= 0 {
		f.(FctReset)(max, s)
	}
}

func (o *progress) analyze(i int, e error) (n int, err error) {
	if o == nil {
		return i, e
	}

	if i != 0 {
		o.inc(int64(i))
	}
	if e != nil && errors.Is(e, io.EOF) {
		o.finish()
	}
	return i, e
}
