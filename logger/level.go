/*
MIT License

Copyright (c) 2019 Nicolas JUHEL

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in all
copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
SOFTWARE.
*/

package logger

import (
	"math"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/aggrathon/simplebackup/errors"
)

// Level orders the severities this engine logs at, from the loudest
// (Panic) to the quietest (Debug).
type Level uint8

const (
	// PanicLevel results in a Panic() call (trace + fatal).
	PanicLevel Level = iota
	// FatalLevel results in os.Exit with an error.
	FatalLevel
	// ErrorLevel means the caller aborted the current operation.
	ErrorLevel
	// WarnLevel means the caller skipped something but kept going, e.g. a
	// single unreadable file during a crawl.
	WarnLevel
	// InfoLevel has no impact on the caller's process: start/stop of an
	// operation, a resolved output path, a count of files written.
	InfoLevel
	// DebugLevel is only useful to track down a problem later.
	DebugLevel
	// NilLevel never logs anything and cannot be passed to SetLevel.
	NilLevel
)

// levelFlag is the spelling --log-level (and config.yml's log_level, if
// set) accepts for each Level, independent of the human-readable label
// String returns for a log line.
var levelFlag = map[Level]string{
	PanicLevel: "panic",
	FatalLevel: "fatal",
	ErrorLevel: "error",
	WarnLevel:  "warn",
	InfoLevel:  "info",
	DebugLevel: "debug",
}

// GetLevelListString lists every accepted --log-level spelling, in
// severity order, for use in flag help text.
func GetLevelListString() []string {
	return []string{
		levelFlag[PanicLevel],
		levelFlag[FatalLevel],
		levelFlag[ErrorLevel],
		levelFlag[WarnLevel],
		levelFlag[InfoLevel],
		levelFlag[DebugLevel],
	}
}

// GetLevelString resolves a --log-level flag value (or config.yml
// log_level field) to a Level, matching case-insensitively on the exact
// spelling first and a prefix second ("warn" and "w" both resolve to
// WarnLevel). An unrecognized value resolves to InfoLevel.
func GetLevelString(l string) Level {
	l = strings.ToLower(strings.TrimSpace(l))
	if l == "" {
		return InfoLevel
	}
	for lvl, name := range levelFlag {
		if name == l {
			return lvl
		}
	}
	for lvl, name := range levelFlag {
		if strings.HasPrefix(name, l) {
			return lvl
		}
	}
	return InfoLevel
}

// LevelForCode picks the severity an error of the given code should be
// logged at: cancellation is expected operator behavior (Info), a single
// skipped file is a Warn, everything else aborted the run (Error).
func LevelForCode(c errors.Code) Level {
	switch c {
	case errors.CodeCancelled:
		return InfoLevel
	case errors.CodeFileAccess:
		return WarnLevel
	default:
		return ErrorLevel
	}
}

// Uint8 Convert the current Level type to a uint8 value. E.g. FatalLevel becomes 1.
func (l Level) Uint8() uint8 {
	return uint8(l)
}

// String Convert the current Level type to a string. E.g. PanicLevel becomes "Critical Error".
func (l Level) String() string {
	//nolint exhaustive
	switch l {
	case DebugLevel:
		return "Debug"
	case InfoLevel:
		return "Info"
	case WarnLevel:
		return "Warning"
	case ErrorLevel:
		return "Error"
	case FatalLevel:
		return "Fatal Error"
	case PanicLevel:
		return "Critical Error"
	case NilLevel:
		return ""
	}

	return "unknown"
}

func (l Level) Logrus() logrus.Level {
	switch l {
	case DebugLevel:
		return logrus.DebugLevel
	case InfoLevel:
		return logrus.InfoLevel
	case WarnLevel:
		return logrus.WarnLevel
	case ErrorLevel:
		return logrus.ErrorLevel
	case FatalLevel:
		return logrus.FatalLevel
	case PanicLevel:
		return logrus.PanicLevel
	default:
		return math.MaxInt32
	}
}
