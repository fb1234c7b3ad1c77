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
	"os"

	"github.com/aggrathon/simplebackup/errors"
)

func (o *progress) clean(e error) error {
	if o == nil {
		return nil
	}

	o.fh = nil
	return e
}

// Close closes the file. A handle opened by Temp also removes itself
// from disk, so a deferred Close is enough to clean up scratch files.
func (o *progress) Close() error {
	if o == nil || o.fh == nil {
		return nil
	}

	name := o.Path()
	temp := o.temp
	if e := o.clean(o.fh.Close()); e != nil {
		return errors.IoError("close", name, e)
	}
	if temp {
		return os.Remove(name)
	}
	return nil
}

// CloseDelete closes the file and removes it from disk unconditionally,
// regardless of whether it was created through Temp.
func (o *progress) CloseDelete() error {
	if o == nil || o.fh == nil {
		return nil
	}

	name := o.Path()
	if e := o.clean(o.fh.Close()); e != nil {
		return errors.IoError("close", name, e)
	}

	if len(name) < 1 {
		return nil
	}
	if e := os.Remove(name); e != nil {
		return errors.IoError("remove", name, e)
	}
	return nil
}
