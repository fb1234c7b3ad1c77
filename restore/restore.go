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

// Package restore opens a backup archive, reads its config and file
// list up front, and selectively streams payload records out to the
// filesystem. For an incremental chain, it walks backward through
// predecessor archives (via the chain package's discovery logic) to
// satisfy requested paths this archive's own list marks unchanged.
package restore

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/aggrathon/simplebackup/archive/manifest"
	"github.com/aggrathon/simplebackup/archive/pathtrans"
	"github.com/aggrathon/simplebackup/archive/tar"
	"github.com/aggrathon/simplebackup/chain"
	"github.com/aggrathon/simplebackup/errors"
	"github.com/aggrathon/simplebackup/file/progress"
	"github.com/aggrathon/simplebackup/ioutils/mapCloser"
)

// Reader streams one archive's payload records, having already read
// its config and file list. It is not safe for concurrent use.
type Reader struct {
	path     string
	r        *tar.Reader
	Manifest *manifest.Manifest
}

// Open opens path and reads its config and file-list records
// (spec.md §4.6's get_meta), leaving the stream positioned at the
// first payload record.
func Open(path string) (*Reader, error) {
	r, m, err := manifest.Open(path)
	if err != nil {
		return nil, err
	}
	return &Reader{path: path, r: r, Manifest: m}, nil
}

// Close releases the underlying archive handle.
func (rd *Reader) Close() error {
	return rd.r.Close()
}

// GetMeta returns the config and file list read at Open, without
// touching the payload stream.
func (rd *Reader) GetMeta() *manifest.Manifest {
	return rd.Manifest
}

// RestoreThis streams through this archive's payload records once,
// writing every one whose decoded path matches the requested
// selection (every payload record, if paths is empty) to outputDir
// (or its original location if outputDir is ""), optionally flattened
// to its basename. It returns errors.NotFound if any explicitly
// requested path is absent from this archive's payload.
func (rd *Reader) RestoreThis(paths []string, outputDir string, flatten, force bool, hooks Hooks) error {
	remaining := toSet(paths)
	found, err := rd.restoreEntries(remaining, outputDir, flatten, force, hooks)
	if err != nil {
		return err
	}
	for p := range found {
		delete(remaining, p)
	}
	if len(paths) > 0 && len(remaining) > 0 {
		return errors.NotFound(firstOf(remaining))
	}
	return nil
}

// RestoreAll behaves like RestoreThis but, once this archive is
// exhausted, opens the predecessor archive (chain.PreviousFile) and
// restores from it any requested paths not yet satisfied, continuing
// backward through the whole chain. If paths is empty, the full
// selection is this archive's own file list, so unchanged entries are
// recovered from their owning ancestor transparently.
func (rd *Reader) RestoreAll(paths []string, outputDir string, flatten, force bool, hooks Hooks) error {
	selection := paths
	if len(selection) == 0 {
		selection = rd.Manifest.List.Paths()
	}
	remaining := toSet(selection)

	closer := mapCloser.New()
	defer closer.Close()

	cur := rd
	for {
		if hooks.cancelled() {
			return errors.Cancelled()
		}
		found, err := cur.restoreEntries(remaining, outputDir, flatten, force, hooks)
		if err != nil {
			return err
		}
		for p := range found {
			delete(remaining, p)
		}
		if len(remaining) == 0 {
			return nil
		}

		prev, err := chain.PreviousFile(cur.path)
		if err != nil {
			if e, ok := err.(errors.Error); ok && e.IsCode(errors.CodeNoBackup) {
				break
			}
			return err
		}
		next, err := Open(prev.Path)
		if err != nil {
			return err
		}
		if cur != rd {
			closer.Add(cur)
		}
		closer.Add(next)
		cur = next
	}

	return errors.NotFound(firstOf(remaining))
}

// restoreEntries consumes this reader's remaining payload records,
// writing every one whose decoded path is present in wanted (or every
// record, if wanted is empty) and returning the set of paths it
// satisfied.
func (rd *Reader) restoreEntries(wanted map[string]bool, outputDir string, flatten, force bool, hooks Hooks) (map[string]bool, error) {
	hooks.list(rd.Manifest)
	found := make(map[string]bool)
	matchAll := len(wanted) == 0
	for {
		if hooks.cancelled() {
			return found, errors.Cancelled()
		}
		entry, err := rd.r.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return found, err
		}

		path := pathtrans.FromArchive(entry.Name)
		if !matchAll && !wanted[path] {
			continue
		}

		dest, err := destinationFor(path, outputDir, flatten)
		if err != nil {
			return found, err
		}
		writeErr := writeEntry(dest, entry, force, hooks)
		hooks.file(entry, dest, writeErr)
		if writeErr != nil {
			return found, writeErr
		}
		found[path] = true
	}
	return found, nil
}

// destinationFor resolves where a payload record decoded to path
// should land: its basename under outputDir when flattening, its
// relative suffix under outputDir when given one, or its original
// location otherwise.
func destinationFor(path, outputDir string, flatten bool) (string, error) {
	if flatten {
		if outputDir == "" {
			return filepath.Base(path), nil
		}
		return filepath.Join(outputDir, filepath.Base(path)), nil
	}
	if outputDir == "" {
		return path, nil
	}
	return filepath.Join(outputDir, relativeSuffix(path)), nil
}

// relativeSuffix strips path's volume name (a no-op outside Windows)
// and leading separator so it can be joined under an arbitrary output
// directory without escaping it.
func relativeSuffix(path string) string {
	path = filepath.Clean(path)
	if vol := filepath.VolumeName(path); vol != "" {
		path = path[len(vol):]
	}
	return strings.TrimPrefix(path, string(filepath.Separator))
}

func writeEntry(dest string, entry *tar.Entry, force bool, hooks Hooks) error {
	if !force {
		if _, err := os.Stat(dest); err == nil {
			return errors.AlreadyExists(dest)
		}
	}
	if dir := filepath.Dir(dest); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errors.IoError("mkdir", dir, err)
		}
	}

	w, err := progress.Create(dest)
	if err != nil {
		return errors.IoError("create", dest, err)
	}
	defer w.Close()
	if hooks.Increment != nil {
		w.RegisterFctIncrement(hooks.Increment)
	}

	if _, err := io.Copy(w, entry); err != nil {
		return errors.IoError("write", dest, err)
	}
	_ = os.Chmod(dest, entry.Mode.FileMode())
	return nil
}

func toSet(paths []string) map[string]bool {
	set := make(map[string]bool, len(paths))
	for _, p := range paths {
		set[p] = true
	}
	return set
}

func firstOf(set map[string]bool) string {
	for p := range set {
		return p
	}
	return ""
}
