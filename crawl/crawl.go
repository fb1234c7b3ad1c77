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

// Package crawl walks a user-selected subset of the filesystem, applying
// include/exclude/regex rules, and yields a deterministic, lexicographically
// ordered stream of FileInfo records. The Crawler holds its work as an
// explicit stack rather than a lazy iterator, since Go has no native
// coroutines; Next produces one item (or an error, or io.EOF) per call.
package crawl

import (
	"io"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"time"

	"github.com/aggrathon/simplebackup/backupdate"
	"github.com/aggrathon/simplebackup/errors"
	"github.com/aggrathon/simplebackup/file/perm"
)

// FileInfo is an immutable record of one crawled file: its native-form
// path, a display string used for matching and manifest encoding, the
// naive local modification time it was stamped with, its size, and its
// permission bits.
type FileInfo struct {
	Path    string
	Display string
	ModTime time.Time
	Size    int64
	Mode    perm.Perm
}

// Crawler produces a lazy, sorted sequence of FileInfo by walking
// include roots depth-first, skipping anything covered by exclude or
// matched by a regex pattern.
type Crawler struct {
	include []string // sorted descending; last element pops next (ascending)
	exclude []string // sorted descending
	regex   []*regexp.Regexp
	stack   []string
}

// New builds a Crawler from the given rule set. Paths are absolutized
// unless local is true, matching spec.md §3's "local paths" option.
// Regex patterns are compiled eagerly so a bad pattern fails fast.
func New(include, exclude, regexes []string, local bool) (*Crawler, error) {
	inc, err := preparePaths(include, local)
	if err != nil {
		return nil, err
	}
	exc, err := preparePaths(exclude, local)
	if err != nil {
		return nil, err
	}

	compiled := make([]*regexp.Regexp, 0, len(regexes))
	for _, pattern := range regexes {
		re, err := regexp.Compile(pattern)
		if err != nil {
			return nil, errors.ConfigError("invalid regex " + pattern + ": " + err.Error())
		}
		compiled = append(compiled, re)
	}

	return &Crawler{include: inc, exclude: exc, regex: compiled}, nil
}

func preparePaths(paths []string, local bool) ([]string, error) {
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		if !local {
			abs, err := filepath.Abs(p)
			if err != nil {
				return nil, errors.IoError("absolutize", p, err)
			}
			p = abs
		} else {
			p = filepath.Clean(p)
		}
		out = append(out, p)
	}
	// Descending sort so popping the last element yields ascending order.
	sort.Sort(sort.Reverse(sort.StringSlice(out)))
	return out, nil
}

// Next returns the next file in lexicographic depth-first order. It
// returns io.EOF once the crawl is exhausted. A non-EOF error reports a
// single unreadable path (spec.md §4.4's "error item"); the caller
// should keep calling Next to continue the crawl past it.
func (c *Crawler) Next() (*FileInfo, error) {
	for {
		for len(c.stack) > 0 {
			path := c.stack[len(c.stack)-1]
			c.stack = c.stack[:len(c.stack)-1]

			info, err := os.Lstat(path)
			if err != nil {
				return nil, errors.FileAccessError(path, err)
			}

			if !info.IsDir() {
				return &FileInfo{
					Path:    path,
					Display: filepath.ToSlash(path),
					ModTime: backupdate.SystemToNaive(info.ModTime()),
					Size:    info.Size(),
					Mode:    perm.ParseFileMode(info.Mode()),
				}, nil
			}

			children, err := c.listDir(path)
			if err != nil {
				return nil, err
			}
			// Push in descending order so popping yields ascending order.
			for i := len(children) - 1; i >= 0; i-- {
				c.stack = append(c.stack, children[i])
			}
		}

		if len(c.include) == 0 {
			return nil, io.EOF
		}
		next := c.include[len(c.include)-1]
		c.include = c.include[:len(c.include)-1]
		c.stack = append(c.stack, next)
	}
}

// listDir reads dir's children, drops anything excluded or regex-matched,
// and advances the include stack past any root already covered by this
// listing.
func (c *Crawler) listDir(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.FileAccessError(dir, err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, filepath.Join(dir, e.Name()))
	}
	sort.Strings(names)

	kept := make([]string, 0, len(names))
	for _, child := range names {
		for len(c.include) > 0 && c.include[len(c.include)-1] <= child {
			c.include = c.include[:len(c.include)-1]
		}

		filtered := false
		for len(c.exclude) > 0 {
			top := c.exclude[len(c.exclude)-1]
			if top == child {
				c.exclude = c.exclude[:len(c.exclude)-1]
				filtered = true
				break
			} else if top < child {
				c.exclude = c.exclude[:len(c.exclude)-1]
				continue
			}
			break
		}
		if filtered {
			continue
		}

		if c.matchesRegex(child) {
			continue
		}
		kept = append(kept, child)
	}
	return kept, nil
}

func (c *Crawler) matchesRegex(path string) bool {
	s := filepath.ToSlash(path)
	for _, re := range c.regex {
		if re.MatchString(s) {
			return true
		}
	}
	return false
}

// Includes reports whether path would be selected by this rule set,
// independent of enumeration order — a check of a single candidate path
// without running a full crawl.
func Includes(include, exclude, regexes []string, local bool, path string) (bool, error) {
	target := path
	if !local {
		abs, err := filepath.Abs(path)
		if err != nil {
			return false, errors.IoError("absolutize", path, err)
		}
		target = abs
	} else {
		target = filepath.Clean(target)
	}

	for _, pattern := range regexes {
		re, err := regexp.Compile(pattern)
		if err != nil {
			return false, errors.ConfigError("invalid regex " + pattern + ": " + err.Error())
		}
		if re.MatchString(filepath.ToSlash(target)) {
			return false, nil
		}
	}

	for _, e := range exclude {
		root := e
		if !local {
			if abs, err := filepath.Abs(e); err == nil {
				root = abs
			}
		} else {
			root = filepath.Clean(root)
		}
		if isPrefixPath(root, target) {
			return false, nil
		}
	}

	for _, inc := range include {
		root := inc
		if !local {
			if abs, err := filepath.Abs(inc); err == nil {
				root = abs
			}
		} else {
			root = filepath.Clean(root)
		}
		if isPrefixPath(root, target) {
			return true, nil
		}
	}
	return false, nil
}

// isPrefixPath reports whether target is root itself or a descendant of
// it, respecting path-separator boundaries so "src2" is not considered
// under "src".
func isPrefixPath(root, target string) bool {
	if root == target {
		return true
	}
	sep := string(filepath.Separator)
	prefix := root
	if prefix != sep {
		prefix += sep
	}
	return len(target) > len(prefix) && target[:len(prefix)] == prefix
}
