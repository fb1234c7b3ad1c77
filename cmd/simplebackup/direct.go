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

	"github.com/spf13/cobra"

	"github.com/aggrathon/simplebackup/backup"
	"github.com/aggrathon/simplebackup/config"
)

// newDirectCmd runs a one-off backup straight from flags, for callers
// who do not want to maintain a standalone config file (spec.md §6's
// "direct" entry point).
func newDirectCmd() *cobra.Command {
	var (
		exclude     []string
		regex       []string
		output      string
		name        string
		incremental bool
		local       bool
		force       bool
		verbose     bool
		quality     int
		threads     int
		algorithm   string
	)

	cmd := &cobra.Command{
		Use:   "direct <path>...",
		Short: "Run a backup directly from flags, without a config file",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.New()
			cfg.Include = args
			cfg.Exclude = exclude
			cfg.Regex = regex
			if output != "" {
				cfg.Output = output
			}
			if name != "" {
				cfg.Name = name
			}
			cfg.Incremental = incremental
			cfg.Local = local
			cfg.Force = force
			cfg.Verbose = verbose
			if quality != 0 {
				cfg.Quality = quality
			}
			if threads != 0 {
				cfg.Threads = threads
			}
			if algorithm != "" {
				alg, err := parseAlgorithm(algorithm)
				if err != nil {
					return err
				}
				cfg.Algorithm = alg
			}

			log := newLogger()
			archive, err := backup.Run(cfg, log, backupHooks(cfg, log))
			if err != nil {
				return err
			}
			fmt.Println(archive)
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&exclude, "exclude", nil, "path to exclude from the backup (repeatable)")
	cmd.Flags().StringSliceVar(&regex, "regex", nil, "regex whose matching paths are excluded (repeatable)")
	cmd.Flags().StringVar(&output, "output", ".", "output directory or archive path")
	cmd.Flags().StringVar(&name, "name", "", "archive filename prefix")
	cmd.Flags().BoolVar(&incremental, "incremental", false, "only store files changed since the latest archive")
	cmd.Flags().BoolVar(&local, "local", false, "keep paths as given instead of making them absolute")
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing destination archive")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "print each file as it is archived")
	cmd.Flags().IntVar(&quality, "quality", 0, "compression quality 1-22 (default 11)")
	cmd.Flags().IntVar(&threads, "threads", 0, "number of payload worker threads (default 1)")
	cmd.Flags().StringVar(&algorithm, "algorithm", "", "compression algorithm: brotli, gzip, lz4, xz, bzip2")

	return cmd
}
