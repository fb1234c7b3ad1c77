/*
 * MIT License
 *
 * Copyright (c) 2025 Nicolas JUHEL
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

func (o *progress) Write(p []byte) (n int, err error) {
	if o == nil || o.fh == nil {
		return 0, errClosed()
	}

	return o.analyze(o.fh.Write(p))
}

func (o *progress) WriteAt(p []byte, off int64) (n int, err error) {
	if o == nil || o.fh == nil {
		return 0, errClosed()
	}

	return o.analyze(o.fh.WriteAt(p, off))
}

// WriteTo drains the file into w, crediting every chunk read to the
// increment callback and firing the EOF callback once the source is
// exhausted, mirroring ReadFrom's write-side bookkeeping.
func (o *progress) WriteTo(w io.Writer) (n int64, err error) {
	if o == nil || w == nil || o.fh == nil {
		return 0, errClosed()
	}

	buf := make([]byte, o.getBufferSize(0))

	for {
		var (
			nr int
			nw int
			er error
			ew error
		)

		nr, er = o.fh.Read(buf)
		if nr > 0 {
			nw, ew = w.Write(buf[:nr])
			o.inc(int64(nw))
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
		case nw < nr:
			return n, io.ErrShortWrite
		case nw != nr:
			return n, errors.New("progress: invalid write result")
		}

		clear(buf)
	}
}

func (o *progress) WriteString(s string) (n int, err error) {
	if o == nil || o.fh == nil {
		return 0, errClosed()
	}

	return o.analyze(o.fh.WriteString(s))
}
