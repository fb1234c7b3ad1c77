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

package main

import (
	"fmt"

	"github.com/aggrathon/simplebackup/archive/manifest"
	"github.com/aggrathon/simplebackup/archive/tar"
	"github.com/aggrathon/simplebackup/backup"
	"github.com/aggrathon/simplebackup/config"
	"github.com/aggrathon/simplebackup/crawl"
	"github.com/aggrathon/simplebackup/filelist"
	"github.com/aggrathon/simplebackup/logger"
	"github.com/aggrathon/simplebackup/merge"
	"github.com/aggrathon/simplebackup/restore"
)

// backupHooks wires a backup.Hooks that prints the path of each file as
// it is processed when cfg.Verbose is set, matching the teacher's
// practice of letting Config itself decide how chatty a run is.
func backupHooks(cfg *config.Config, log logger.Logger) backup.Hooks {
	if !cfg.Verbose {
		return backup.Hooks{}
	}
	return backup.Hooks{
		File: func(info crawl.FileInfo, err error) {
			if err != nil {
				fmt.Println(info.Path, "skipped:", err)
				return
			}
			fmt.Println(info.Path)
		},
	}
}

func restoreHooks(verbose bool) restore.Hooks {
	if !verbose {
		return restore.Hooks{}
	}
	return restore.Hooks{
		List: func(m *manifest.Manifest) {
			fmt.Println("restoring from", m.Config.Name)
		},
		File: func(entry *tar.Entry, dest string, err error) {
			if err != nil {
				fmt.Println(dest, "failed:", err)
				return
			}
			fmt.Println(dest)
		},
	}
}

func mergeHooks(verbose bool) merge.Hooks {
	if !verbose {
		return merge.Hooks{}
	}
	return merge.Hooks{
		File: func(entry filelist.Entry, err error) {
			if err != nil {
				fmt.Println(entry.Info.Display, "failed:", err)
				return
			}
			fmt.Println(entry.Info.Display)
		},
	}
}
