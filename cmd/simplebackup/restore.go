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

	"github.com/aggrathon/simplebackup/restore"
)

func newRestoreCmd() *cobra.Command {
	var (
		output    string
		flatten   bool
		force     bool
		verbose   bool
		thisOnly  bool
		files     []string
	)

	cmd := &cobra.Command{
		Use:   "restore <archive>",
		Short: "Restore files out of an archive, walking its incremental chain as needed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rd, err := restore.Open(args[0])
			if err != nil {
				return err
			}
			defer rd.Close()

			hooks := restoreHooks(verbose)
			if thisOnly {
				return rd.RestoreThis(files, output, flatten, force, hooks)
			}
			return rd.RestoreAll(files, output, flatten, force, hooks)
		},
	}

	cmd.Flags().StringVar(&output, "output", "", "destination directory (default: each file's original location)")
	cmd.Flags().BoolVar(&flatten, "flatten", false, "restore every file as its basename, discarding directory structure")
	cmd.Flags().BoolVar(&force, "force", false, "overwrite existing destination files")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "print each file as it is restored")
	cmd.Flags().BoolVar(&thisOnly, "this-only", false, "restore only from this archive, without walking the chain")
	cmd.Flags().StringSliceVar(&files, "file", nil, "restore only this path (repeatable); default is every file")

	return cmd
}
