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
	"os"

	"github.com/spf13/cobra"

	"github.com/aggrathon/simplebackup/errors"
	"github.com/aggrathon/simplebackup/logger"
)

var (
	flagLogLevel string
	flagLogFile  string
	flagNoColor  bool
)

var rootCmd = &cobra.Command{
	Use:           "simplebackup",
	Short:         "A local, file-system backup engine with incremental chains and merging",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "log level: panic, fatal, error, warn, info, debug")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "additionally duplicate log output to this file")
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "disable colored log output")

	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newBackupCmd())
	rootCmd.AddCommand(newDirectCmd())
	rootCmd.AddCommand(newRestoreCmd())
	rootCmd.AddCommand(newMergeCmd())
}

// Execute runs the CLI, mapping any returned errors.Error to its exit
// code per spec.md §7 before the process exits.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fail(err)
	}
}

func newLogger() logger.Logger {
	l, err := logger.New(logger.Options{
		Level:        logger.GetLevelString(flagLogLevel),
		DisableColor: flagNoColor,
		LogFile:      flagLogFile,
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	return l
}

// fail logs err at a severity derived from its classified code and exits
// with that code's process exit status, or 1 for an error this engine
// did not itself produce.
func fail(err error) {
	if err == nil {
		return
	}
	log := newLogger()
	e, ok := err.(errors.Error)
	if !ok {
		log.Error(err.Error())
		os.Exit(1)
	}
	switch logger.LevelForCode(e.Code()) {
	case logger.InfoLevel:
		log.Info(err.Error())
	case logger.WarnLevel:
		log.Warn(err.Error())
	default:
		log.Error(err.Error())
	}
	os.Exit(e.Code().ExitCode())
}
