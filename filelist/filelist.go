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

// Package filelist holds the in-memory and on-archive representation of a
// backup's selected file set: an ordered (included, FileInfo) sequence and
// its two serialization generations (v1 names-only, v2 inclusion-flag +
// name). Every file is listed, changed or not, so the archive's manifest
// is always complete.
package filelist

import (
	"io"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/aggrathon/simplebackup/crawl"
	"github.com/aggrathon/simplebackup/errors"
)

// Version distinguishes the two on-archive list encodings.
type Version uint8

const (
	// V1 is the legacy one-path-per-line encoding; every entry is
	// implicitly included.
	V1 Version = 1
	// V2 is the current "<flag>,<path>" encoding.
	V2 Version = 2
)

// Filename returns the archive record name a list of this version is
// stored under.
func (v Version) Filename() string {
	if v == V1 {
		return "files.csv"
	}
	return "files_v2.csv"
}

// FilenameToVersion maps an archive record name back to its Version, or
// ok=false if name is neither list filename.
func FilenameToVersion(name string) (Version, bool) {
	switch name {
	case "files.csv":
		return V1, true
	case "files_v2.csv":
		return V2, true
	default:
		return 0, false
	}
}

// Entry pairs one crawled file with whether its payload was (or will be)
// written into the archive.
type Entry struct {
	Included bool
	Info     crawl.FileInfo
}

// Vec is the ordered, sorted-by-path file list built during a backup and
// consumed by the Writer, or decoded back from an archive.
type Vec []Entry

// Sort orders entries by their display path, matching the order payload
// records are written/read in.
func (v Vec) Sort() {
	sort.Slice(v, func(i, j int) bool { return v[i].Info.Display < v[j].Info.Display })
}

// BuildFromCrawl drains a Crawler, tagging each file Included if cutoff
// is nil or the file's ModTime is at or after cutoff (spec.md §4.5 step
// 5). Crawl errors are non-fatal: they are reported to onError (which
// may be nil) and the crawl continues.
func BuildFromCrawl(c *crawl.Crawler, cutoff *time.Time, onError func(error)) (Vec, error) {
	var list Vec
	for {
		fi, err := c.Next()
		if err != nil {
			if err == io.EOF {
				break
			}
			if onError != nil {
				onError(err)
			}
			continue
		}
		included := cutoff == nil || !fi.ModTime.Before(*cutoff)
		list = append(list, Entry{Included: included, Info: *fi})
	}
	list.Sort()
	return list, nil
}

// EncodeV2 renders the list in the current "<flag>,<path>" format, one
// entry per line with no trailing newline, forward-slashed for
// portability across platforms.
func (v Vec) EncodeV2() []byte {
	var b strings.Builder
	for i, e := range v {
		if i > 0 {
			b.WriteByte('\n')
		}
		if e.Included {
			b.WriteByte('1')
		} else {
			b.WriteByte('0')
		}
		b.WriteByte(',')
		b.WriteString(toPortable(e.Info.Display))
	}
	return []byte(b.String())
}

// EncodeV1 renders the list in the legacy one-path-per-line format.
// Every entry is written regardless of its Included flag, since v1 has
// no way to represent "unchanged": callers writing v1 archives should
// restrict the Vec to included entries first.
func (v Vec) EncodeV1() []byte {
	var b strings.Builder
	for i, e := range v {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(toPortable(e.Info.Display))
	}
	return []byte(b.String())
}

func toPortable(s string) string {
	return strings.ReplaceAll(s, "\\", "/")
}

// Decode dispatches on the archive record name to DecodeV1 or DecodeV2.
func Decode(name string, data []byte) (Vec, Version, error) {
	version, ok := FilenameToVersion(name)
	if !ok {
		return nil, 0, errors.FormatError("unrecognized file list name: " + name)
	}
	var (
		list Vec
		err  error
	)
	if version == V1 {
		list, err = DecodeV1(data)
	} else {
		list, err = DecodeV2(data)
	}
	return list, version, err
}

// DecodeV1 parses the legacy one-path-per-line encoding. Every decoded
// entry is Included since v1 carries no flag.
func DecodeV1(data []byte) (Vec, error) {
	if len(data) == 0 {
		return nil, nil
	}
	lines := strings.Split(string(data), "\n")
	list := make(Vec, 0, len(lines))
	for _, line := range lines {
		if line == "" {
			continue
		}
		list = append(list, Entry{
			Included: true,
			Info:     crawl.FileInfo{Path: filepath.FromSlash(line), Display: line},
		})
	}
	return list, nil
}

// DecodeV2 parses the "<flag>,<path>" encoding.
func DecodeV2(data []byte) (Vec, error) {
	if len(data) == 0 {
		return nil, nil
	}
	lines := strings.Split(string(data), "\n")
	list := make(Vec, 0, len(lines))
	for _, line := range lines {
		if line == "" {
			continue
		}
		idx := strings.IndexByte(line, ',')
		if idx < 0 {
			return nil, errors.FormatError("malformed file list entry: " + line)
		}
		flag := line[:idx]
		path := line[idx+1:]
		included, err := strconv.ParseBool(flag)
		if err != nil {
			return nil, errors.FormatError("malformed file list flag: " + flag)
		}
		list = append(list, Entry{
			Included: included,
			Info:     crawl.FileInfo{Path: filepath.FromSlash(path), Display: path},
		})
	}
	return list, nil
}

// Included returns the subset of v with Included == true, in the same
// order.
func (v Vec) Included() Vec {
	out := make(Vec, 0, len(v))
	for _, e := range v {
		if e.Included {
			out = append(out, e)
		}
	}
	return out
}

// Paths returns the display paths of every entry in v.
func (v Vec) Paths() []string {
	out := make([]string, len(v))
	for i, e := range v {
		out[i] = e.Info.Display
	}
	return out
}
