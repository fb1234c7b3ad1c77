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

package backup_test

import (
	"io"
	"os"
	"path/filepath"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/aggrathon/simplebackup/archive/manifest"
	. "github.com/aggrathon/simplebackup/backup"
	"github.com/aggrathon/simplebackup/config"
	"github.com/aggrathon/simplebackup/crawl"
	"github.com/aggrathon/simplebackup/errors"
)

func newCfg(src, dst string) *config.Config {
	c := config.New()
	c.Include = []string{src}
	c.Output = dst
	c.Local = true
	return c
}

var _ = Describe("Run", func() {
	var src, dst string

	BeforeEach(func() {
		src = GinkgoT().TempDir()
		dst = GinkgoT().TempDir()
		Expect(os.WriteFile(filepath.Join(src, "a.txt"), []byte("hello"), 0o644)).NotTo(HaveOccurred())
		Expect(os.WriteFile(filepath.Join(src, "b.txt"), []byte("world"), 0o644)).NotTo(HaveOccurred())
	})

	It("writes a full archive containing every selected file", func() {
		cfg := newCfg(src, dst)
		path, err := Run(cfg, nil, Hooks{})
		Expect(err).NotTo(HaveOccurred())
		Expect(path).To(BeAnExistingFile())

		r, m, err := manifest.Open(path)
		Expect(err).NotTo(HaveOccurred())
		defer r.Close()
		Expect(m.List).To(HaveLen(2))
		Expect(m.List.Included()).To(HaveLen(2))
	})

	It("refuses to overwrite an existing archive without Force", func() {
		cfg := newCfg(src, dst)
		cfg.Name = "dup"
		cfg.Output = filepath.Join(dst, "dup.tar.br")
		Expect(os.WriteFile(cfg.Output, []byte("x"), 0o644)).NotTo(HaveOccurred())

		_, err := Run(cfg, nil, Hooks{})
		Expect(err).To(HaveOccurred())
		e, ok := err.(errors.Error)
		Expect(ok).To(BeTrue())
		Expect(e.IsCode(errors.CodeAlreadyExists)).To(BeTrue())
	})

	It("tags only files newer than the chain's reference time on an incremental run", func() {
		// Move b.txt out of the first backup's own second: the cutoff has
		// second precision and includes files stamped at it.
		old := time.Now().Add(-time.Hour)
		Expect(os.Chtimes(filepath.Join(src, "b.txt"), old, old)).NotTo(HaveOccurred())

		cfg := newCfg(src, dst)
		first, err := Run(cfg, nil, Hooks{})
		Expect(err).NotTo(HaveOccurred())

		time.Sleep(1100 * time.Millisecond)
		Expect(os.WriteFile(filepath.Join(src, "a.txt"), []byte("changed"), 0o644)).NotTo(HaveOccurred())

		cfg2 := newCfg(src, dst)
		cfg2.Incremental = true
		second, err := Run(cfg2, nil, Hooks{})
		Expect(err).NotTo(HaveOccurred())
		Expect(second).NotTo(Equal(first))

		r, m, err := manifest.Open(second)
		Expect(err).NotTo(HaveOccurred())
		defer r.Close()
		Expect(m.List).To(HaveLen(2))
		for _, e := range m.List {
			if filepath.Base(e.Info.Display) == "a.txt" {
				Expect(e.Included).To(BeTrue())
			} else {
				Expect(e.Included).To(BeFalse())
			}
		}
	})

	It("excludes files matched by a regex pattern", func() {
		Expect(os.WriteFile(filepath.Join(src, "c.log"), []byte("noise"), 0o644)).NotTo(HaveOccurred())
		cfg := newCfg(src, dst)
		cfg.Regex = []string{`\.log$`}
		path, err := Run(cfg, nil, Hooks{})
		Expect(err).NotTo(HaveOccurred())

		r, m, err := manifest.Open(path)
		Expect(err).NotTo(HaveOccurred())
		defer r.Close()
		for _, e := range m.List {
			Expect(filepath.Ext(e.Info.Display)).NotTo(Equal(".log"))
		}
	})

	It("invokes the File hook for every included file and honors cancellation", func() {
		cfg := newCfg(src, dst)
		var seen []crawl.FileInfo
		calls := 0
		_, err := Run(cfg, nil, Hooks{
			File: func(info crawl.FileInfo, fileErr error) {
				Expect(fileErr).NotTo(HaveOccurred())
				seen = append(seen, info)
			},
			Cancelled: func() bool {
				calls++
				return calls > 1
			},
		})
		Expect(err).To(HaveOccurred())
		e, ok := err.(errors.Error)
		Expect(ok).To(BeTrue())
		Expect(e.IsCode(errors.CodeCancelled)).To(BeTrue())
		Expect(seen).To(HaveLen(1))

		entries, err := os.ReadDir(dst)
		Expect(err).NotTo(HaveOccurred())
		Expect(entries).To(BeEmpty())
	})

	It("invokes the List hook once after the file-list record is written", func() {
		cfg := newCfg(src, dst)
		calls := 0
		_, err := Run(cfg, nil, Hooks{
			List: func() { calls++ },
		})
		Expect(err).NotTo(HaveOccurred())
		Expect(calls).To(Equal(1))
	})

	It("writes the same payload bytes whether or not multiple threads are used", func() {
		cfg := newCfg(src, dst)
		cfg.Name = "par"
		cfg.Threads = 2
		path, err := Run(cfg, nil, Hooks{})
		Expect(err).NotTo(HaveOccurred())

		r, m, err := manifest.Open(path)
		Expect(err).NotTo(HaveOccurred())
		defer r.Close()
		Expect(m.List).To(HaveLen(2))

		seen := map[string]string{}
		for {
			e, err := r.Next()
			if err == io.EOF {
				break
			}
			Expect(err).NotTo(HaveOccurred())
			data, _ := io.ReadAll(e)
			seen[e.Name] = string(data)
		}
		Expect(seen).To(HaveLen(2))
		Expect(seen).To(ConsistOf("hello", "world"))
	})
})
