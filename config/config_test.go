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

package config_test

import (
	"path/filepath"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/aggrathon/simplebackup/archive/compress"
	. "github.com/aggrathon/simplebackup/config"
)

var _ = Describe("Config", func() {
	It("applies engine defaults", func() {
		c := New()
		Expect(c.Name).To(Equal("backup"))
		Expect(c.Quality).To(Equal(compress.DefaultQuality))
		Expect(c.Threads).To(Equal(1))
		Expect(c.Algorithm).To(Equal(compress.Brotli))
		Expect(c.Extension()).To(Equal(".tar.br"))
	})

	It("sorts and dedupes include/exclude", func() {
		c := New()
		c.Include = []string{"b", "a", "b", "c"}
		c.Sort()
		Expect(c.Include).To(Equal([]string{"a", "b", "c"}))
	})

	Describe("Validate", func() {
		It("rejects an empty include set", func() {
			c := New()
			Expect(c.Validate()).To(HaveOccurred())
		})

		It("rejects an out-of-range quality", func() {
			c := New()
			c.Include = []string{"."}
			c.Quality = 23
			Expect(c.Validate()).To(HaveOccurred())
		})

		It("rejects an invalid regex", func() {
			c := New()
			c.Include = []string{"."}
			c.Regex = []string{"("}
			Expect(c.Validate()).To(HaveOccurred())
		})

		It("accepts a well-formed config", func() {
			c := New()
			c.Include = []string{"."}
			Expect(c.Validate()).NotTo(HaveOccurred())
		})
	})

	Describe("GetOutput", func() {
		now := time.Date(2024, time.March, 7, 13, 45, 9, 0, time.Local)

		It("derives a timestamped filename inside a directory output", func() {
			c := New()
			c.Output = "/tmp/backups"
			c.Name = "nightly"
			Expect(c.GetOutput(now)).To(Equal(filepath.Join("/tmp/backups", "nightly_2024-03-07_13-45-09.tar.br")))
		})

		It("uses an explicit archive path verbatim", func() {
			c := New()
			c.Output = "/tmp/backups/explicit.tar.br"
			Expect(c.GetOutput(now)).To(Equal("/tmp/backups/explicit.tar.br"))
		})
	})

	Describe("YAML round-trip", func() {
		It("preserves every field including the optional time", func() {
			c := New()
			c.Include = []string{"b", "a"}
			c.Exclude = []string{"z"}
			c.Regex = []string{".*\\.tmp"}
			c.Name = "nightly"
			c.Verbose = true
			c.Force = true
			c.Incremental = true
			c.Quality = 9
			c.Threads = 2
			c.Local = true
			t := time.Date(2024, time.March, 7, 13, 45, 9, 0, time.Local)
			c.Time = &t

			data, err := c.ToYAML()
			Expect(err).NotTo(HaveOccurred())

			got, err := FromYAML(data)
			Expect(err).NotTo(HaveOccurred())
			Expect(got.Include).To(Equal([]string{"a", "b"}))
			Expect(got.Exclude).To(Equal(c.Exclude))
			Expect(got.Regex).To(Equal(c.Regex))
			Expect(got.Name).To(Equal(c.Name))
			Expect(got.Verbose).To(Equal(c.Verbose))
			Expect(got.Force).To(Equal(c.Force))
			Expect(got.Incremental).To(Equal(c.Incremental))
			Expect(got.Quality).To(Equal(c.Quality))
			Expect(got.Threads).To(Equal(c.Threads))
			Expect(got.Local).To(Equal(c.Local))
			Expect(got.Time.Equal(*c.Time)).To(BeTrue())
		})

		It("treats an empty time as no time", func() {
			c := New()
			c.Include = []string{"."}
			data, err := c.ToYAML()
			Expect(err).NotTo(HaveOccurred())
			got, err := FromYAML(data)
			Expect(err).NotTo(HaveOccurred())
			Expect(got.Time).To(BeNil())
		})
	})

	Describe("Load/Save", func() {
		It("round-trips through a file and stamps Origin", func() {
			dir := GinkgoT().TempDir()
			c := New()
			c.Include = []string{"."}
			path := filepath.Join(dir, "config.yml")
			Expect(c.Save(path)).NotTo(HaveOccurred())

			got, err := Load(path)
			Expect(err).NotTo(HaveOccurred())
			Expect(got.Include).To(Equal(c.Include))
			Expect(got.Origin).To(Equal(dir))
		})
	})
})
