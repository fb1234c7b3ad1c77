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
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/aggrathon/simplebackup/backup"
	"github.com/aggrathon/simplebackup/config"
)

func newBackupCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "backup <config.yml>",
		Short: "Run a backup from a config file written by 'config'",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(args[0])
			if err != nil {
				return err
			}
			resolveRelativeIncludes(cfg)
			if force {
				cfg.Force = true
			}

			log := newLogger()
			hooks := backupHooks(cfg, log)
			archive, err := backup.Run(cfg, log, hooks)
			if err != nil {
				return err
			}
			fmt.Println(archive)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing destination archive")
	return cmd
}

// resolveRelativeIncludes joins any non-absolute Include/Exclude entry
// against the config file's own directory, so a config file can be
// invoked from anywhere.
func resolveRelativeIncludes(cfg *config.Config) {
	if cfg.Origin == "" {
		return
	}
	for i, p := range cfg.Include {
		if !filepath.IsAbs(p) {
			cfg.Include[i] = filepath.Join(cfg.Origin, p)
		}
	}
	for i, p := range cfg.Exclude {
		if !filepath.IsAbs(p) {
			cfg.Exclude[i] = filepath.Join(cfg.Origin, p)
		}
	}
}
