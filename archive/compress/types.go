/*
 *  MIT License
 *
 *  Copyright (c) 2020 Nicolas JUHEL
 *
 *  Permission is hereby granted, free of charge, to any person obtaining a copy
 *  of this software and associated documentation files (the "Software"), to deal
 *  in the Software without restriction, including without limitation the rights
 *  to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 *  copies of the Software, and to permit persons to whom the Software is
 *  furnished to do so, subject to the following conditions:
 *
 *  The above copyright notice and this permission notice shall be included in all
 *  copies or substantial portions of the Software.
 *
 *  THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 *  IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 *  FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 *  AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 *  LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 *  OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 *  SOFTWARE.
 *
 */

package compress

type Algorithm uint8

const (
	None Algorithm = iota
	Bzip2
	Gzip
	LZ4
	XZ
	Brotli
)

// DefaultQuality is the quality level used when a caller does not
// specify one explicitly.
const DefaultQuality = 11

// MinQuality and MaxQuality bound the spec's 1..=22 quality range.
// Only Brotli consults the value; the other algorithms ignore it.
const (
	MinQuality = 1
	MaxQuality = 22
)

func List() []Algorithm {
	return []Algorithm{
		None,
		Bzip2,
		Gzip,
		LZ4,
		XZ,
		Brotli,
	}
}

// FromExtension maps an archive filename's trailing extension (.br,
// .gz, .bz2, .lz4, .xz) to its Algorithm, defaulting to Brotli — the
// family this engine writes new archives in — when the suffix is
// unrecognized. Archive discovery keys off the filename rather than a
// magic-number header since Brotli carries none.
func FromExtension(name string) Algorithm {
	switch {
	case hasSuffix(name, Gzip.Extension()):
		return Gzip
	case hasSuffix(name, Bzip2.Extension()):
		return Bzip2
	case hasSuffix(name, LZ4.Extension()):
		return LZ4
	case hasSuffix(name, XZ.Extension()):
		return XZ
	default:
		return Brotli
	}
}

func hasSuffix(s, suffix string) bool {
	return len(s) >= len(suffix) && s[len(s)-len(suffix):] == suffix
}

func ListString() []string {
	var (
		lst = List()
		res = make([]string, len(lst))
	)
	for i := range lst {
		res[i] = lst[i].String()
	}
	return res
}

func (a Algorithm) IsNone() bool {
	return a == None
}

func (a Algorithm) String() string {
	switch a {
	case Gzip:
		return "gzip"
	case Bzip2:
		return "bzip2"
	case LZ4:
		return "lz4"
	case XZ:
		return "xz"
	case Brotli:
		return "brotli"
	default:
		return "none"
	}
}

func (a Algorithm) Extension() string {
	switch a {
	case Gzip:
		return ".gz"
	case Bzip2:
		return ".bz2"
	case LZ4:
		return ".lz4"
	case XZ:
		return ".xz"
	case Brotli:
		return ".br"
	default:
		return ""
	}
}

// ClampQuality maps the spec's 1..=22 compression-quality range onto the
// scale Brotli actually accepts (0..=11), halving and clamping. Other
// algorithms ignore quality entirely, matching the teacher's existing
// gzip/lz4/xz/bzip2 writers which take no level parameter here.
func ClampQuality(quality int) int {
	if quality < MinQuality {
		quality = MinQuality
	}
	if quality > MaxQuality {
		quality = MaxQuality
	}
	q := quality / 2
	if q < 0 {
		q = 0
	}
	if q > 11 {
		q = 11
	}
	return q
}
