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
	"io"

	"github.com/aggrathon/simplebackup/errors"
	"github.com/aggrathon/simplebackup/file/progress"
)

// readFile reads path fully into memory through a progress.Progress
// handle so hooks.Increment, when set, observes read progress the same
// way it would for a much larger file streamed in chunks.
func readFile(path string, hooks Hooks) ([]byte, error) {
	p, err := progress.Open(path)
	if err != nil {
		return nil, errors.FileAccessError(path, err)
	}
	defer p.Close()

	if hooks.Increment != nil {
		p.RegisterFctIncrement(hooks.Increment)
	}

	data, err := io.ReadAll(p)
	if err != nil {
		return nil, errors.FileAccessError(path, err)
	}
	return data, nil
}
