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

// Package merge consolidates a chain of archives into a single archive
// holding, for each path seen in any source, its newest version. The
// merged archive's payload is a byte-for-byte re-frame of the owning
// source's record, copied without fully materializing it in memory.
package merge

import (
	"io"
	"os"
	"sort"
	"time"

	"github.com/aggrathon/simplebackup/archive/compress"
	"github.com/aggrathon/simplebackup/archive/manifest"
	"github.com/aggrathon/simplebackup/archive/pathtrans"
	"github.com/aggrathon/simplebackup/archive/tar"
	"github.com/aggrathon/simplebackup/config"
	"github.com/aggrathon/simplebackup/errors"
	"github.com/aggrathon/simplebackup/filelist"
	"github.com/aggrathon/simplebackup/logger"
)

// Options configures a merge run.
type Options struct {
	// Output is either a directory (the merged archive's name is
	// derived from Name plus a timestamp) or a path ending in the
	// target algorithm's extension, used verbatim.
	Output string
	// Name is the filename prefix used when Output is a directory.
	// Defaults to the newest source's own Name.
	Name string
	// All keeps every path ever seen across the sources; otherwise the
	// merge is restricted to paths present in the newest source's list.
	All bool
	// Delete removes the source archives on success; otherwise they
	// are renamed with a ".bak" suffix.
	Delete bool
	// Force permits overwriting an existing destination archive.
	Force bool
	Quality   int
	Threads   int
	Algorithm compress.Algorithm
}

type source struct {
	path   string
	cfg    *config.Config
	list   filelist.Vec
	reader *tar.Reader
}

// Run merges the archives at paths (oldest to newest by their own
// recorded timestamp) according to opts, returning the path of the
// consolidated archive it wrote.
func Run(paths []string, opts Options, log logger.Logger, hooks Hooks) (string, error) {
	if log == nil {
		log = logger.Discard()
	}
	if len(paths) == 0 {
		return "", errors.ConfigError("merge requires at least one source archive")
	}

	sources, err := openSources(paths)
	if err != nil {
		return "", err
	}
	defer closeSources(sources)

	sortSourcesByTime(sources)

	if err := checkConsistency(sources); err != nil {
		return "", err
	}

	merged, owners := buildMergedList(sources, opts.All)

	newest := sources[len(sources)-1]
	mergedCfg := *newest.cfg
	now := time.Now()
	mergedCfg.Time = &now
	mergedCfg.Incremental = false
	if opts.Name != "" {
		mergedCfg.Name = opts.Name
	}
	if opts.Quality != 0 {
		mergedCfg.Quality = opts.Quality
	}
	if opts.Threads != 0 {
		mergedCfg.Threads = opts.Threads
	}
	if !opts.Algorithm.IsNone() {
		mergedCfg.Algorithm = opts.Algorithm
	}
	if opts.Output != "" {
		mergedCfg.Output = opts.Output
	}

	output := mergedCfg.GetOutput(now)
	if !opts.Force {
		if _, err := os.Stat(output); err == nil {
			return "", errors.AlreadyExists(output)
		}
	}

	w, err := tar.Create(output, mergedCfg.Algorithm, mergedCfg.Quality)
	if err != nil {
		return "", err
	}

	if err := writeArchive(w, &mergedCfg, merged, owners, sources, hooks); err != nil {
		_ = w.Abort()
		_ = os.Remove(output)
		return "", err
	}
	if err := w.Close(); err != nil {
		_ = os.Remove(output)
		return "", err
	}

	if err := finishSources(sources, opts.Delete); err != nil {
		log.WithFields(logger.Fields{"error": err.Error()}).Warn("could not finalize one or more source archives")
	}

	log.WithFields(logger.Fields{"archive": output, "files": len(merged)}).Info("merge complete")
	return output, nil
}

func openSources(paths []string) ([]*source, error) {
	out := make([]*source, 0, len(paths))
	for _, p := range paths {
		r, m, err := manifest.Open(p)
		if err != nil {
			return out, err
		}
		out = append(out, &source{path: p, cfg: m.Config, list: m.List, reader: r})
	}
	return out, nil
}

func closeSources(sources []*source) {
	for _, s := range sources {
		if s.reader != nil {
			_ = s.reader.Close()
		}
	}
}

func sortSourcesByTime(sources []*source) {
	sort.SliceStable(sources, func(i, j int) bool {
		return timeOf(sources[i]).Before(timeOf(sources[j]))
	})
}

func timeOf(s *source) time.Time {
	if s.cfg.Time != nil {
		return *s.cfg.Time
	}
	return time.Time{}
}

// checkConsistency rejects sources whose include roots differ, since
// deduplicating paths across unrelated selections would be meaningless
// (spec.md §4.7 step 1).
func checkConsistency(sources []*source) error {
	base := append([]string(nil), sources[0].cfg.Include...)
	sort.Strings(base)
	for _, s := range sources[1:] {
		candidate := append([]string(nil), s.cfg.Include...)
		sort.Strings(candidate)
		if !equalStrings(base, candidate) {
			return errors.ConfigError("cannot merge archives with different include roots: " + sources[0].path + " vs " + s.path)
		}
	}
	return nil
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

type mergedEntry struct {
	info      filelist.Entry
	sourceIdx int
}

// buildMergedList implements spec.md §4.7 step 2: upsert every source's
// included entries into a path -> newest-version map, in chronological
// order, then (unless all) restrict to paths present in the newest
// source's own list. The returned owners slice gives, for each entry
// in the returned Vec (same index), which element of sources holds its
// payload.
func buildMergedList(sources []*source, all bool) (filelist.Vec, []int) {
	merged := make(map[string]mergedEntry)
	for idx, s := range sources {
		for _, e := range s.list {
			if !e.Included {
				continue
			}
			cur, exists := merged[e.Info.Display]
			if !exists || !e.Info.ModTime.Before(cur.info.Info.ModTime) {
				merged[e.Info.Display] = mergedEntry{info: e, sourceIdx: idx}
			}
		}
	}

	if !all {
		allowed := make(map[string]bool, len(sources[len(sources)-1].list))
		for _, e := range sources[len(sources)-1].list {
			allowed[e.Info.Display] = true
		}
		for path := range merged {
			if !allowed[path] {
				delete(merged, path)
			}
		}
	}

	type pair struct {
		entry filelist.Entry
		owner int
	}
	pairs := make([]pair, 0, len(merged))
	for _, me := range merged {
		entry := me.info
		entry.Included = true
		pairs = append(pairs, pair{entry: entry, owner: me.sourceIdx})
	}
	sort.Slice(pairs, func(i, j int) bool { return pairs[i].entry.Info.Display < pairs[j].entry.Info.Display })

	list := make(filelist.Vec, len(pairs))
	owners := make([]int, len(pairs))
	for i, p := range pairs {
		list[i] = p.entry
		owners[i] = p.owner
	}
	return list, owners
}

// writeArchive writes the config record, the merged list record, and
// then every payload in list order, pulling each one's bytes from its
// owning source via a streaming re-frame through the destination's
// compressor.
func writeArchive(w *tar.Writer, cfg *config.Config, merged filelist.Vec, owners []int, sources []*source, hooks Hooks) error {
	cfgData, err := cfg.ToYAML()
	if err != nil {
		return err
	}
	if err := w.AppendData("config.yml", cfgData); err != nil {
		return err
	}
	if err := w.AppendData(filelist.V2.Filename(), merged.EncodeV2()); err != nil {
		return err
	}
	hooks.list()

	for i, entry := range merged {
		if hooks.cancelled() {
			return errors.Cancelled()
		}
		src := sources[owners[i]]
		tarEntry, err := nextMatching(src, entry.Info.Display)
		if err != nil {
			return err
		}
		if tarEntry == nil {
			continue
		}
		name := pathtrans.ToArchive(entry.Info.Path)
		writeErr := w.AppendStream(name, tarEntry.Size, tarEntry.Mode, tarEntry.ModTime, tarEntry)
		hooks.file(entry, writeErr)
		if writeErr != nil {
			return writeErr
		}
	}
	return nil
}

// nextMatching advances src's payload stream, discarding records that
// belong to paths superseded by a later source, until it finds the
// record for path (or the stream is exhausted).
func nextMatching(src *source, path string) (*tar.Entry, error) {
	for {
		e, err := src.reader.Next()
		if err == io.EOF {
			return nil, nil
		}
		if err != nil {
			return nil, err
		}
		if pathtrans.FromArchive(e.Name) == path {
			return e, nil
		}
	}
}

// finishSources deletes or renames every source archive once the merge
// has succeeded, per spec.md §4.7 step 4.
func finishSources(sources []*source, del bool) error {
	var firstErr error
	for _, s := range sources {
		if s.reader != nil {
			_ = s.reader.Close()
			s.reader = nil
		}
		var err error
		if del {
			err = os.Remove(s.path)
		} else {
			err = os.Rename(s.path, s.path+".bak")
		}
		if err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
