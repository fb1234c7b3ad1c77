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

// Package chain discovers the sequence of archives that make up an
// incremental backup family: files named "<name>_<timestamp><ext>"
// inside a common directory, ordered by the timestamp embedded in
// their filename rather than filesystem metadata.
package chain

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/aggrathon/simplebackup/archive/compress"
	"github.com/aggrathon/simplebackup/backupdate"
	"github.com/aggrathon/simplebackup/errors"
)

// Member is one archive discovered in a chain directory.
type Member struct {
	Path string
	Name string // base filename, without directory
	Time time.Time
}

// ParseFilename extracts the name and stamp from an archive base
// filename of the form "<name>_<timestamp><ext>". ok is false if name
// does not match that pattern (e.g. it has no recognizable timestamp),
// in which case it is not part of any chain.
func ParseFilename(name, ext string) (prefix string, stamp time.Time, ok bool) {
	base := name
	if ext != "" && strings.HasSuffix(base, ext) {
		base = base[:len(base)-len(ext)]
	} else if ext != "" {
		return "", time.Time{}, false
	}

	idx := strings.LastIndex(base, "_")
	for idx > 0 {
		candidate := base[idx+1:]
		if t, matched, _ := backupdate.Parse(candidate); matched && len(candidate) == len(backupdate.SerializeLayout) {
			return base[:idx], t, true
		}
		idx = strings.LastIndex(base[:idx], "_")
	}
	return "", time.Time{}, false
}

// Discover lists every archive in dir whose filename matches
// "<prefix>_<timestamp><ext>", sorted ascending by embedded timestamp
// (oldest first).
func Discover(dir, prefix, ext string) ([]Member, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.FileAccessError(dir, err)
	}

	var members []Member
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		p, stamp, ok := ParseFilename(name, ext)
		if !ok || p != prefix {
			continue
		}
		members = append(members, Member{
			Path: filepath.Join(dir, name),
			Name: name,
			Time: stamp,
		})
	}

	sort.Slice(members, func(i, j int) bool { return members[i].Time.Before(members[j].Time) })
	return members, nil
}

// Latest returns the most recent member of the chain in dir, or
// errors.NoBackup if none exist.
func Latest(dir, prefix, ext string) (Member, error) {
	members, err := Discover(dir, prefix, ext)
	if err != nil {
		return Member{}, err
	}
	if len(members) == 0 {
		return Member{}, errors.NoBackup(dir)
	}
	return members[len(members)-1], nil
}

// PreviousTo returns the most recent member strictly older than
// before, or errors.NoBackup if the chain has no such member. It is
// the step used to walk a restore chain backward, one predecessor at a
// time.
func PreviousTo(dir, prefix, ext string, before time.Time) (Member, error) {
	members, err := Discover(dir, prefix, ext)
	if err != nil {
		return Member{}, err
	}
	for i := len(members) - 1; i >= 0; i-- {
		if members[i].Time.Before(before) {
			return members[i], nil
		}
	}
	return Member{}, errors.NoBackup(dir)
}

// PreviousFile returns the member immediately preceding the archive at
// path in its own chain directory. The archive's compression extension
// (".br", ".gz", ...) is detected from its name and combined with
// ".tar" to form the pattern shared by every member of its chain.
func PreviousFile(path string) (Member, error) {
	dir := filepath.Dir(path)
	name := filepath.Base(path)
	ext := ".tar" + compress.FromExtension(name).Extension()
	prefix, stamp, ok := ParseFilename(name, ext)
	if !ok {
		return Member{}, errors.FormatError("not a chain member: " + name)
	}
	return PreviousTo(dir, prefix, ext, stamp)
}
