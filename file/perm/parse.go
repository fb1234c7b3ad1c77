/*
 * MIT License
 *
 * Copyright (c) 2025 Nicolas JUHEL
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

package perm

import (
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/aggrathon/simplebackup/errors"
)

func parseString(s string) (Perm, error) {
	s = stripQuotes(s)

	v, e := strconv.ParseUint(s, 8, 32)
	if e != nil {
		return parseLetterString(s)
	}
	if v > math.MaxUint32 {
		return Perm(0), errors.ConfigError("invalid permission: " + s)
	}
	return Perm(v), nil
}

func stripQuotes(s string) string {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, "\"", "")
	s = strings.ReplaceAll(s, "'", "")
	return s
}

// parseLetterString parses the ls -l symbolic form, e.g. "-rw-r--r--"
// or, with a leading file-type character, "drwxr-xr-x".
func parseLetterString(s string) (Perm, error) {
	s = stripQuotes(s)

	if len(s) != 9 && len(s) != 10 {
		return 0, errors.ConfigError("invalid permission: " + s)
	}

	var mode os.FileMode
	start := uint8(0)

	if len(s) == 10 {
		bit, err := fileTypeBit(s[0])
		if err != nil {
			return 0, err
		}
		mode |= bit
		start = 1
	}

	for i := uint8(0); i < 3; i++ {
		group := s[start+i*3 : start+i*3+3]
		value, err := parsePermGroup(group)
		if err != nil {
			return 0, err
		}
		mode |= os.FileMode(value) << uint(6-i*3)
	}

	return Perm(mode), nil
}

func fileTypeBit(c byte) (os.FileMode, error) {
	switch c {
	case '-':
		return 0, nil
	case 'd':
		return os.ModeDir, nil
	case 'l':
		return os.ModeSymlink, nil
	case 'c':
		return os.ModeDevice | os.ModeCharDevice, nil
	case 'b':
		return os.ModeDevice, nil
	case 'p':
		return os.ModeNamedPipe, nil
	case 's':
		return os.ModeSocket, nil
	case 'D':
		return os.ModeIrregular, nil
	default:
		return 0, errors.ConfigError("invalid permission file type character: " + string(c))
	}
}

func parsePermGroup(chars string) (uint8, error) {
	var value uint8

	switch chars[0] {
	case 'r':
		value += 4
	case '-':
	default:
		return 0, errors.ConfigError("invalid permission read character: " + string(chars[0]))
	}

	switch chars[1] {
	case 'w':
		value += 2
	case '-':
	default:
		return 0, errors.ConfigError("invalid permission write character: " + string(chars[1]))
	}

	switch chars[2] {
	case 'x':
		value += 1
	case '-':
	default:
		return 0, errors.ConfigError("invalid permission execute character: " + string(chars[2]))
	}

	return value, nil
}

func (p *Perm) parseString(s string) error {
	v, e := parseString(s)
	if e != nil {
		return e
	}
	*p = v
	return nil
}

func (p *Perm) unmarshall(val []byte) error {
	v, e := ParseByte(val)
	if e != nil {
		return e
	}
	*p = v
	return nil
}
