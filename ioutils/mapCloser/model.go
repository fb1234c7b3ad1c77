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

package mapCloser

import (
	"fmt"
	"io"
	"strings"
	"sync"
)

type closer struct {
	m     sync.Mutex
	items []io.Closer
	done  bool
}

func (o *closer) Add(clo ...io.Closer) {
	if o == nil {
		return
	}

	o.m.Lock()
	defer o.m.Unlock()

	if o.done {
		return
	}

	for _, c := range clo {
		if c != nil {
			o.items = append(o.items, c)
		}
	}
}

func (o *closer) Get() []io.Closer {
	if o == nil {
		return nil
	}

	o.m.Lock()
	defer o.m.Unlock()

	res := make([]io.Closer, len(o.items))
	copy(res, o.items)
	return res
}

func (o *closer) Len() int {
	if o == nil {
		return 0
	}

	o.m.Lock()
	defer o.m.Unlock()

	return len(o.items)
}

func (o *closer) Clean() {
	if o == nil {
		return
	}

	o.m.Lock()
	defer o.m.Unlock()

	if o.done {
		return
	}

	o.items = o.items[:0]
}

func (o *closer) Clone() Closer {
	if o == nil {
		return nil
	}

	o.m.Lock()
	defer o.m.Unlock()

	if o.done {
		return nil
	}

	cp := make([]io.Closer, len(o.items))
	copy(cp, o.items)

	return &closer{items: cp}
}

func (o *closer) Close() error {
	if o == nil {
		return fmt.Errorf("not initialized")
	}

	o.m.Lock()
	if o.done {
		o.m.Unlock()
		return nil
	}
	o.done = true
	items := o.items
	o.items = nil
	o.m.Unlock()

	var errs []string
	for _, c := range items {
		if c == nil {
			continue
		}
		if err := c.Close(); err != nil {
			errs = append(errs, err.Error())
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, ", "))
	}

	return nil
}
