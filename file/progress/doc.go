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

/*
Package progress is the file handle every streaming path in this engine
reads or writes through: backup.readFile wraps the source file in
Open, restore.writeEntry wraps the destination in Create, both register
an Increment callback through backup.Hooks / restore.Hooks, and the
bytes reported are exactly the ones that crossed the archive boundary.

	p, err := progress.Open(path)
	if err != nil {
	    return err
	}
	defer p.Close()
	p.RegisterFctIncrement(func(n int64) { bar.Add(n) })
	data, err := io.ReadAll(p)

Temp produces a scratch file that deletes itself on Close, used nowhere
else in this package but available to callers that need to stage a
payload before committing it (e.g. a future atomic-rename restore path).
*/
package progress
