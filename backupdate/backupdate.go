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

// Package backupdate parses and formats the timestamps that appear in
// archive filenames and the persisted file list, and converts a
// filesystem modification time into the naive local time the rest of
// the backup engine stamps files with.
package backupdate

import (
	"time"

	"github.com/aggrathon/simplebackup/errors"
)

// SerializeLayout is the one format this engine ever writes: archive
// filenames and list-file timestamps are both second precision,
// local time, with no timezone offset.
const SerializeLayout = "2006-01-02_15-04-05"

// parseLayouts is tried in order until one matches. It mirrors, long
// form before compact and four-digit year before two-digit, the
// formats a user may type on the command line.
var parseLayouts = []string{
	"2006-01-02_15-04-05",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	"06-01-02 15:04:05",
	"06-01-02 15:04",
	"06-01-02",
	"2006.01.02 15:04:05",
	"2006.01.02 15:04",
	"2006.01.02",
	"06.01.02 15:04:05",
	"06.01.02 15:04",
	"06.01.02",
	"20060102150405",
	"200601021504",
	"20060102",
	"060102150405",
	"0601021504",
	"060102",
}

// Parse tries input against every accepted format in turn, returning
// the first match as a naive (location-free, local-wall-clock) time.
// An empty string parses to the zero Time with ok=false, representing
// "no time" rather than an error.
func Parse(input string) (t time.Time, ok bool, err error) {
	if input == "" {
		return time.Time{}, false, nil
	}
	for _, layout := range parseLayouts {
		if parsed, e := time.ParseInLocation(layout, input, time.Local); e == nil {
			return parsed, true, nil
		}
	}
	return time.Time{}, false, errors.ConfigError("unrecognized timestamp format: " + input)
}

// Format renders t in SerializeLayout, the one format archive
// filenames and the list file ever use.
func Format(t time.Time) string {
	return t.Format(SerializeLayout)
}

// SystemToNaive strips t's monotonic reading and normalizes it to the
// local timezone at second precision, matching the precision archive
// filenames and the file list carry.
func SystemToNaive(t time.Time) time.Time {
	return t.Round(time.Second).Local()
}
