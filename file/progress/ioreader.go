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
	"math"
)

func (o *progress) Read(p []byte) (n int, err error) {
	if o == nil || o.fh == nil {
		return 0, errClosed()
	}

	return o.analyze(o.fh.Read(p))
}

func (o *progress) ReadAt(p []byte, off int64) (n int, err error) {
	if o == nil || o.fh == nil {
		return 0, errClosed()
	}

	return o.analyze(o.fh.ReadAt(p, off))
}

// ReadFrom copies r into the underlying file in getBufferSize chunks,
// crediting every chunk written to the increment callback exactly as
// Write would.
func (o *progress) ReadFrom(r io.Reader) (n int64, err error) {
	if o == nil || r == nil || o.fh == nil {
		return 0, errClosed()
	}

	size := o.getBufferSize(0)
	if l, ok := r.(*io.LimitedReader); ok && int64(size) > l.N {
		switch {
		case l.N < 1:
			size = 1
		case l.N > math.MaxInt:
			size = math.MaxInt
		default:
			size = int(l.N)
		}
	}

	buf := make([]byte, o.getBufferSize(size))

	for {
		var (
			nr int
			nw int
			er error
			ew error
		)

		nr, er = r.Read(buf)
		if nr > 0 {
			nw, ew = o.Write(buf[:nr])
		}

		n += int64(nw)

		switch {
		case er != nil && errors.Is(er, io.EOF):
			o.finish()
			return n, nil
		case er != nil:
			return n, er
		case ew != nil:
			return n, ew
		case nw < 0 || nw < nr:
			return n, errors.New("progress: invalid write result")
		case nr != nw:
			return n, io.ErrShortWrite
		}

		clear(buf)
	}
}
