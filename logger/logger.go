/***********************************************************************************************************************
 *
 *   MIT License
 *
 *   Copyright (c) 2021 Nicolas JUHEL
 *
 *   Permission is hereby granted, free of charge, to any person obtaining a copy
 *   of this software and associated documentation files (the "Software"), to deal
 *   in the Software without restriction, including without limitation the rights
 *   to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 *   copies of the Software, and to permit persons to whom the Software is
 *   furnished to do so, subject to the following conditions:
 *
 *   The above copyright notice and this permission notice shall be included in all
 *   copies or substantial portions of the Software.
 *
 *   THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 *   IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 *   FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 *   AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 *   LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 *   OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 *   SOFTWARE.
 *
 *
 **********************************************************************************************************************/

// Package logger wraps logrus with the leveled, field-friendly entry API
// used throughout the backup engine: one process-wide Logger, structured
// fields per call site, and an optional secondary file sink.
package logger

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// Fields attaches structured context to a single log entry.
type Fields map[string]interface{}

// Logger is the logging facade passed into backup.Run and merge.Run so
// each can report progress and errors uniformly.
type Logger interface {
	WithFields(f Fields) Logger
	Debug(msg string)
	Info(msg string)
	Warn(msg string)
	Error(msg string)
	SetLevel(lvl Level)
}

type logger struct {
	l *logrus.Logger
	f logrus.Fields
}

// New builds a Logger from Options. Output always includes stderr; if
// opt.LogFile is set, entries are duplicated to that file as well.
func New(opt Options) (Logger, error) {
	l := logrus.New()
	l.SetLevel(opt.Level.Logrus())
	l.SetFormatter(newFormatter(opt.DisableColor))
	l.SetOutput(os.Stderr)

	if opt.LogFile != "" {
		fh, err := os.OpenFile(opt.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, err
		}
		l.SetOutput(io.MultiWriter(os.Stderr, fh))
	}

	return &logger{l: l, f: logrus.Fields{}}, nil
}

// Discard returns a Logger that emits nothing, used by backup.Run and
// merge.Run when they are given a nil Logger.
func Discard() Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return &logger{l: l, f: logrus.Fields{}}
}

func (g *logger) WithFields(f Fields) Logger {
	merged := make(logrus.Fields, len(g.f)+len(f))
	for k, v := range g.f {
		merged[k] = v
	}
	for k, v := range f {
		merged[k] = v
	}
	return &logger{l: g.l, f: merged}
}

func (g *logger) entry() *logrus.Entry {
	return g.l.WithFields(g.f)
}

func (g *logger) Debug(msg string) { g.entry().Debug(msg) }
func (g *logger) Info(msg string)  { g.entry().Info(msg) }
func (g *logger) Warn(msg string)  { g.entry().Warn(msg) }
func (g *logger) Error(msg string) { g.entry().Error(msg) }

func (g *logger) SetLevel(lvl Level) {
	g.l.SetLevel(lvl.Logrus())
}
