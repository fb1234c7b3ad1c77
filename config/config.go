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

// Package config holds the backup specification shared by the crawler,
// writer, reader and merger: include/exclude/regex selection, the output
// target, and the knobs (quality, threads, algorithm) that steer the
// archive codec. It round-trips through YAML the same way the rest of
// this engine's ambient configuration does.
package config

import (
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"sort"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/aggrathon/simplebackup/archive/compress"
	"github.com/aggrathon/simplebackup/backupdate"
	"github.com/aggrathon/simplebackup/errors"
)

// DefaultName is the archive filename prefix used when neither a config
// file nor a CLI flag supplies one.
const DefaultName = "backup"

// Config is the backup specification: what to include, how to compress
// it, and where to write (or read) the archive. The zero value is not
// ready to use; call New or Validate before acting on it.
type Config struct {
	Include     []string            `yaml:"include"`
	Exclude     []string            `yaml:"exclude"`
	Regex       []string            `yaml:"regex"`
	Output      string              `yaml:"output"`
	Name        string              `yaml:"name"`
	Verbose     bool                `yaml:"verbose"`
	Force       bool                `yaml:"force"`
	Incremental bool                `yaml:"incremental"`
	Quality     int                 `yaml:"quality"`
	Threads     int                 `yaml:"threads"`
	Local       bool                `yaml:"local"`
	Algorithm   compress.Algorithm  `yaml:"algorithm"`
	Time        *time.Time          `yaml:"-"`
	Origin      string              `yaml:"-"`
}

// yamlConfig mirrors Config but carries Time as the text layout the
// archive's config.yml blob uses, since time.Time's default YAML
// encoding is RFC3339 rather than backupdate.SerializeLayout.
type yamlConfig struct {
	Include     []string           `yaml:"include"`
	Exclude     []string           `yaml:"exclude"`
	Regex       []string           `yaml:"regex"`
	Output      string             `yaml:"output"`
	Name        string             `yaml:"name"`
	Verbose     bool               `yaml:"verbose"`
	Force       bool               `yaml:"force"`
	Incremental bool               `yaml:"incremental"`
	Quality     int                `yaml:"quality"`
	Threads     int                `yaml:"threads"`
	Local       bool               `yaml:"local"`
	Algorithm   compress.Algorithm `yaml:"algorithm"`
	Time        string             `yaml:"time"`
}

// New returns a Config with the engine's defaults: brotli at its default
// quality, a single worker thread, and the "backup" name prefix.
func New() *Config {
	return &Config{
		Name:      DefaultName,
		Quality:   compress.DefaultQuality,
		Threads:   1,
		Algorithm: compress.Brotli,
		Output:    ".",
	}
}

// Extension returns the archive filename suffix for this config's
// algorithm, e.g. ".tar.br" for the default brotli algorithm.
func (c *Config) Extension() string {
	return ".tar" + c.Algorithm.Extension()
}

// Sort normalizes Include and Exclude into unique, lexicographically
// sorted slices, as spec.md's Config invariants require.
func (c *Config) Sort() {
	c.Include = sortUnique(c.Include)
	c.Exclude = sortUnique(c.Exclude)
}

func sortUnique(in []string) []string {
	if len(in) == 0 {
		return in
	}
	cp := append([]string(nil), in...)
	sort.Strings(cp)
	out := cp[:1]
	for _, s := range cp[1:] {
		if s != out[len(out)-1] {
			out = append(out, s)
		}
	}
	return out
}

// Validate enforces spec.md §3's invariants: include is non-empty,
// quality and threads are in range, and every regex pattern compiles.
// It also sorts Include/Exclude as a side effect, matching the
// teacher's practice of normalizing a Config just before it is used.
func (c *Config) Validate() error {
	c.Sort()
	if len(c.Include) == 0 {
		return errors.ConfigError("include is empty")
	}
	if c.Quality < compress.MinQuality || c.Quality > compress.MaxQuality {
		return errors.ConfigError("quality must be between 1 and 22")
	}
	max := runtime.NumCPU()
	if c.Threads < 1 || c.Threads > max {
		return errors.ConfigError("threads must be between 1 and the number of CPUs")
	}
	for _, pattern := range c.Regex {
		if _, err := regexp.Compile(pattern); err != nil {
			return errors.ConfigError("invalid regex " + pattern + ": " + err.Error())
		}
	}
	if c.Name == "" {
		c.Name = DefaultName
	}
	return nil
}

// GetOutput computes the concrete archive path for a backup started at
// now: Output verbatim if it already ends in this config's archive
// extension, or Output joined with a name_timestamp.ext filename.
func (c *Config) GetOutput(now time.Time) string {
	if strings.HasSuffix(c.Output, c.Extension()) {
		return c.Output
	}
	filename := c.Name + "_" + backupdate.Format(now) + c.Extension()
	return filepath.Join(c.Output, filename)
}

// OutputDir returns the directory archive discovery should scan: Output
// itself when it is a directory target, or Output's parent when it
// names an archive file directly.
func (c *Config) OutputDir() string {
	if strings.HasSuffix(c.Output, c.Extension()) {
		return filepath.Dir(c.Output)
	}
	return c.Output
}

// ToYAML serializes c as the archive's config.yml blob. Time is
// rendered with backupdate.Format (or empty for "no time"), matching
// spec.md §6's config-file timestamp convention.
func (c *Config) ToYAML() ([]byte, error) {
	c.Sort()
	y := yamlConfig{
		Include: c.Include, Exclude: c.Exclude, Regex: c.Regex,
		Output: c.Output, Name: c.Name, Verbose: c.Verbose, Force: c.Force,
		Incremental: c.Incremental, Quality: c.Quality, Threads: c.Threads,
		Local: c.Local, Algorithm: c.Algorithm,
	}
	if c.Time != nil {
		y.Time = backupdate.Format(*c.Time)
	}
	data, err := yaml.Marshal(&y)
	if err != nil {
		return nil, errors.Wrap(errors.CodeConfig, "marshal config", err)
	}
	return data, nil
}

// FromYAML deserializes a config.yml blob as written by ToYAML.
func FromYAML(data []byte) (*Config, error) {
	var y yamlConfig
	if err := yaml.Unmarshal(data, &y); err != nil {
		return nil, errors.Wrap(errors.CodeFormat, "unmarshal config", err)
	}
	c := &Config{
		Include: y.Include, Exclude: y.Exclude, Regex: y.Regex,
		Output: y.Output, Name: y.Name, Verbose: y.Verbose, Force: y.Force,
		Incremental: y.Incremental, Quality: y.Quality, Threads: y.Threads,
		Local: y.Local, Algorithm: y.Algorithm,
	}
	if t, ok, err := backupdate.Parse(y.Time); err != nil {
		return nil, errors.Wrap(errors.CodeFormat, "parse config time", err)
	} else if ok {
		c.Time = &t
	}
	if c.Threads < 1 {
		c.Threads = 1
	}
	if c.Algorithm.IsNone() {
		c.Algorithm = compress.Brotli
	}
	return c, nil
}

// Load reads and deserializes a standalone .yml config file (as written
// by the CLI's "config" command), stamping Origin so relative
// Include/Exclude paths can be resolved against the file's directory.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.IoError("read", path, err)
	}
	c, err := FromYAML(data)
	if err != nil {
		return nil, err
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	c.Origin = filepath.Dir(abs)
	return c, nil
}

// Save serializes c and writes it to path, creating or truncating the
// file as needed.
func (c *Config) Save(path string) error {
	data, err := c.ToYAML()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.IoError("write", path, err)
	}
	return nil
}
