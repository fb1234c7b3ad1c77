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
	"github.com/spf13/cobra"

	"github.com/aggrathon/simplebackup/archive/compress"
	"github.com/aggrathon/simplebackup/config"
	"github.com/aggrathon/simplebackup/errors"
)

func newConfigCmd() *cobra.Command {
	var (
		include     []string
		exclude     []string
		regex       []string
		output      string
		name        string
		incremental bool
		local       bool
		quality     int
		threads     int
		algorithm   string
	)

	cmd := &cobra.Command{
		Use:   "config <path>",
		Short: "Write a new config file for later use with 'backup'",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.New()
			cfg.Include = include
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
			if err := cfg.Validate(); err != nil {
				return err
			}
			return cfg.Save(args[0])
		},
	}

	cmd.Flags().StringSliceVar(&include, "include", nil, "path to include in the backup (repeatable)")
	cmd.Flags().StringSliceVar(&exclude, "exclude", nil, "path to exclude from the backup (repeatable)")
	cmd.Flags().StringSliceVar(&regex, "regex", nil, "regex whose matching paths are excluded (repeatable)")
	cmd.Flags().StringVar(&output, "output", "", "output directory or archive path")
	cmd.Flags().StringVar(&name, "name", "", "archive filename prefix")
	cmd.Flags().BoolVar(&incremental, "incremental", false, "only store files changed since the latest archive")
	cmd.Flags().BoolVar(&local, "local", false, "keep paths as given instead of making them absolute")
	cmd.Flags().IntVar(&quality, "quality", 0, "compression quality 1-22 (default 11)")
	cmd.Flags().IntVar(&threads, "threads", 0, "number of payload worker threads (default 1)")
	cmd.Flags().StringVar(&algorithm, "algorithm", "", "compression algorithm: brotli, gzip, lz4, xz, bzip2")

	return cmd
}

func parseAlgorithm(s string) (compress.Algorithm, error) {
	for _, a := range compress.List() {
		if a.String() == s {
			return a, nil
		}
	}
	return compress.None, errors.ConfigError("unknown algorithm: " + s)
}
