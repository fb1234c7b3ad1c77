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

// Package backup drives a single backup run: resolve the output path,
// crawl the selected files, tag them against an incremental reference
// time, and write a config record, a file-list record, and one payload
// record per changed file into a fresh archive.
package backup

import (
	"os"
	"time"

	"github.com/aggrathon/simplebackup/archive/manifest"
	"github.com/aggrathon/simplebackup/archive/pathtrans"
	"github.com/aggrathon/simplebackup/archive/tar"
	"github.com/aggrathon/simplebackup/chain"
	"github.com/aggrathon/simplebackup/config"
	"github.com/aggrathon/simplebackup/crawl"
	"github.com/aggrathon/simplebackup/errors"
	"github.com/aggrathon/simplebackup/filelist"
	"github.com/aggrathon/simplebackup/logger"
)

// Run performs one backup according to cfg, returning the archive path
// it wrote. It implements spec.md §4.5: resolve output, optionally
// resolve an incremental reference time from the existing chain, crawl
// and tag the selection, then write the archive.
func Run(cfg *config.Config, log logger.Logger, hooks Hooks) (string, error) {
	if log == nil {
		log = logger.Discard()
	}
	if err := cfg.Validate(); err != nil {
		return "", err
	}

	now := time.Now()
	output := cfg.GetOutput(now)

	if !cfg.Force {
		if _, err := os.Stat(output); err == nil {
			return "", errors.AlreadyExists(output)
		}
	}

	cutoff, err := resolveCutoff(cfg, log)
	if err != nil {
		return "", err
	}

	c, err := crawl.New(cfg.Include, cfg.Exclude, cfg.Regex, cfg.Local)
	if err != nil {
		return "", err
	}

	list, err := filelist.BuildFromCrawl(c, cutoff, func(e error) {
		log.WithFields(logger.Fields{"error": e.Error()}).Warn("skipping unreadable path")
	})
	if err != nil {
		return "", err
	}

	w, err := tar.Create(output, cfg.Algorithm, cfg.Quality)
	if err != nil {
		return "", err
	}

	stamped := *cfg
	if stamped.Time == nil {
		t := now
		stamped.Time = &t
	}
	cfgData, err := stamped.ToYAML()
	if err != nil {
		_ = w.Abort()
		_ = os.Remove(output)
		return "", err
	}
	if err := w.AppendData("config.yml", cfgData); err != nil {
		_ = w.Abort()
		_ = os.Remove(output)
		return "", err
	}
	if err := w.AppendData(filelist.V2.Filename(), list.EncodeV2()); err != nil {
		_ = w.Abort()
		_ = os.Remove(output)
		return "", err
	}
	hooks.list()

	writeErr := writePayloads(w, list, cfg.Threads, hooks, log)
	if writeErr != nil {
		_ = w.Abort()
		_ = os.Remove(output)
		return "", writeErr
	}

	if err := w.Close(); err != nil {
		_ = os.Remove(output)
		return "", err
	}

	log.WithFields(logger.Fields{"archive": output, "files": len(list)}).Info("backup complete")
	return output, nil
}

// resolveCutoff finds the reference time new files are compared against
// for an incremental backup: an explicit cfg.Time override, or the
// stamped config.Time of the chain's latest archive. Non-incremental
// backups and chains with no predecessor return a nil cutoff, meaning
// "include everything".
func resolveCutoff(cfg *config.Config, log logger.Logger) (*time.Time, error) {
	if !cfg.Incremental {
		return nil, nil
	}
	if cfg.Time != nil {
		t := *cfg.Time
		return &t, nil
	}

	latest, err := chain.Latest(cfg.OutputDir(), cfg.Name, cfg.Extension())
	if err != nil {
		if e, ok := err.(errors.Error); ok && e.IsCode(errors.CodeNoBackup) {
			log.Info("no previous backup found, performing a full backup")
			return nil, nil
		}
		return nil, err
	}

	r, m, err := manifest.Open(latest.Path)
	if err != nil {
		return nil, err
	}
	_ = r.Close()

	if m.Config.Time != nil {
		t := *m.Config.Time
		return &t, nil
	}
	return &latest.Time, nil
}

func writePayloads(w *tar.Writer, list filelist.Vec, threads int, hooks Hooks, log logger.Logger) error {
	if threads > 1 {
		return writePayloadsParallel(w, list, threads, hooks, log)
	}
	return writePayloadsSequential(w, list, hooks, log)
}

func writePayloadsSequential(w *tar.Writer, list filelist.Vec, hooks Hooks, log logger.Logger) error {
	for _, entry := range list {
		if !entry.Included {
			continue
		}
		if hooks.cancelled() {
			return errors.Cancelled()
		}

		data, err := readFile(entry.Info.Path, hooks)
		if err != nil {
			log.WithFields(logger.Fields{"path": entry.Info.Path}).Warn("skipping unreadable file: " + err.Error())
			hooks.file(entry.Info, err)
			continue
		}
		name := pathtrans.ToArchive(entry.Info.Path)
		writeErr := w.AppendFileBytes(name, data, entry.Info.Mode, entry.Info.ModTime)
		hooks.file(entry.Info, writeErr)
		if writeErr != nil {
			return writeErr
		}
	}
	return nil
}
