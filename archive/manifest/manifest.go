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

// Package manifest reads the two records every archive starts with: the
// config.yml blob and the file list. Both must appear, in that order,
// before any payload record — an archive missing either is corrupt.
package manifest

import (
	"io"

	"github.com/aggrathon/simplebackup/archive/tar"
	"github.com/aggrathon/simplebackup/config"
	"github.com/aggrathon/simplebackup/errors"
	"github.com/aggrathon/simplebackup/filelist"
)

// Manifest is an archive's config and file list, read up front so the
// caller can decide what to do before streaming any payload record.
type Manifest struct {
	Config  *config.Config
	List    filelist.Vec
	Version filelist.Version
}

// Open opens path and reads its two header records. The returned Reader
// is positioned right after the file list, ready for the caller to read
// payload records with Next; the caller owns closing it.
func Open(path string) (*tar.Reader, *Manifest, error) {
	r, err := tar.Open(path)
	if err != nil {
		return nil, nil, err
	}

	cfgEntry, err := r.Next()
	if err != nil {
		_ = r.Close()
		if err == io.EOF {
			return nil, nil, errors.FormatError("empty archive: " + path)
		}
		return nil, nil, err
	}
	if cfgEntry.Name != "config.yml" {
		_ = r.Close()
		return nil, nil, errors.FormatError("archive missing config.yml as first record: " + path)
	}
	cfgData, err := io.ReadAll(cfgEntry)
	if err != nil {
		_ = r.Close()
		return nil, nil, errors.IoError("read", path, err)
	}
	cfg, err := config.FromYAML(cfgData)
	if err != nil {
		_ = r.Close()
		return nil, nil, err
	}

	listEntry, err := r.Next()
	if err != nil {
		_ = r.Close()
		if err == io.EOF {
			return nil, nil, errors.FormatError("archive missing file list: " + path)
		}
		return nil, nil, err
	}
	version, ok := filelist.FilenameToVersion(listEntry.Name)
	if !ok {
		_ = r.Close()
		return nil, nil, errors.FormatError("archive missing file list as second record: " + path)
	}
	listData, err := io.ReadAll(listEntry)
	if err != nil {
		_ = r.Close()
		return nil, nil, errors.IoError("read", path, err)
	}
	list, _, err := filelist.Decode(listEntry.Name, listData)
	if err != nil {
		_ = r.Close()
		return nil, nil, err
	}

	return r, &Manifest{Config: cfg, List: list, Version: version}, nil
}
