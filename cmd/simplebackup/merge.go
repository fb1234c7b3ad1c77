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

	"github.com/aggrathon/simplebackup/merge"
)

func newMergeCmd() *cobra.Command {
	var (
		output    string
		name      string
		all       bool
		del       bool
		force     bool
		verbose   bool
		quality   int
		threads   int
		algorithm string
	)

	cmd := &cobra.Command{
		Use:   "merge <archive>...",
		Short: "Consolidate a chain of archives into a single archive",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := merge.Options{
				Output:  output,
				Name:    name,
				All:     all,
				Delete:  del,
				Force:   force,
				Quality: quality,
				Threads: threads,
			}
			if algorithm != "" {
				alg, err := parseAlgorithm(algorithm)
				if err != nil {
					return err
				}
				opts.Algorithm = alg
			}

			log := newLogger()
			archive, err := merge.Run(args, opts, log, mergeHooks(verbose))
			if err != nil {
				return err
			}
			fmt.Println(archive)
			return nil
		},
	}

	cmd.Flags().StringVar(&output, "output", "", "output directory or archive path (default: newest source's own output)")
	cmd.Flags().StringVar(&name, "name", "", "archive filename prefix (default: newest source's own name)")
	cmd.Flags().BoolVar(&all, "all", false, "keep every path ever seen, not just those in the newest source's list")
	cmd.Flags().BoolVar(&del, "delete", false, "delete source archives on success instead of renaming them to .bak")
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing destination archive")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "print each file as it is merged")
	cmd.Flags().IntVar(&quality, "quality", 0, "compression quality 1-22 (default: newest source's own quality)")
	cmd.Flags().IntVar(&threads, "threads", 0, "number of worker threads (default: newest source's own thread count)")
	cmd.Flags().StringVar(&algorithm, "algorithm", "", "compression algorithm: brotli, gzip, lz4, xz, bzip2")

	return cmd
}
