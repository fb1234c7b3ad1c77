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

package restore_test

import (
	"os"
	"path/filepath"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/aggrathon/simplebackup/backup"
	"github.com/aggrathon/simplebackup/config"
	"github.com/aggrathon/simplebackup/errors"
	. "github.com/aggrathon/simplebackup/restore"
)

func newCfg(src, dst string) *config.Config {
	c := config.New()
	c.Include = []string{src}
	c.Output = dst
	c.Local = true
	return c
}

var _ = Describe("Reader", func() {
	var src, dst, out string

	BeforeEach(func() {
		src = GinkgoT().TempDir()
		dst = GinkgoT().TempDir()
		out = GinkgoT().TempDir()
		Expect(os.MkdirAll(filepath.Join(src, "sub"), 0o755)).NotTo(HaveOccurred())
		Expect(os.WriteFile(filepath.Join(src, "a.txt"), []byte("hello"), 0o644)).NotTo(HaveOccurred())
		Expect(os.WriteFile(filepath.Join(src, "sub", "b.txt"), []byte("world"), 0o644)).NotTo(HaveOccurred())
	})

	It("restores every file to its original relative location under an output directory", func() {
		cfg := newCfg(src, dst)
		archive, err := backup.Run(cfg, nil, backup.Hooks{})
		Expect(err).NotTo(HaveOccurred())

		rd, err := Open(archive)
		Expect(err).NotTo(HaveOccurred())
		defer rd.Close()

		Expect(rd.RestoreAll(nil, out, false, false, Hooks{})).To(Succeed())

		a, err := os.ReadFile(filepath.Join(out, src, "a.txt"))
		Expect(err).NotTo(HaveOccurred())
		Expect(string(a)).To(Equal("hello"))
		b, err := os.ReadFile(filepath.Join(out, src, "sub", "b.txt"))
		Expect(err).NotTo(HaveOccurred())
		Expect(string(b)).To(Equal("world"))
	})

	It("flattens every restored file to its basename, discarding directory structure", func() {
		cfg := newCfg(src, dst)
		archive, err := backup.Run(cfg, nil, backup.Hooks{})
		Expect(err).NotTo(HaveOccurred())

		rd, err := Open(archive)
		Expect(err).NotTo(HaveOccurred())
		defer rd.Close()

		Expect(rd.RestoreAll(nil, out, true, false, Hooks{})).To(Succeed())

		Expect(filepath.Join(out, "a.txt")).To(BeAnExistingFile())
		Expect(filepath.Join(out, "b.txt")).To(BeAnExistingFile())
		Expect(filepath.Join(out, "src")).NotTo(BeADirectory())
	})

	It("refuses to overwrite an existing destination file without force", func() {
		cfg := newCfg(src, dst)
		archive, err := backup.Run(cfg, nil, backup.Hooks{})
		Expect(err).NotTo(HaveOccurred())

		Expect(os.MkdirAll(filepath.Join(out, src, "sub"), 0o755)).NotTo(HaveOccurred())
		Expect(os.WriteFile(filepath.Join(out, src, "sub", "b.txt"), []byte("preexisting"), 0o644)).NotTo(HaveOccurred())

		rd, err := Open(archive)
		Expect(err).NotTo(HaveOccurred())
		defer rd.Close()

		err = rd.RestoreAll(nil, out, false, false, Hooks{})
		Expect(err).To(HaveOccurred())
		e, ok := err.(errors.Error)
		Expect(ok).To(BeTrue())
		Expect(e.IsCode(errors.CodeAlreadyExists)).To(BeTrue())
	})

	It("returns NotFound for a path absent from the whole chain", func() {
		cfg := newCfg(src, dst)
		archive, err := backup.Run(cfg, nil, backup.Hooks{})
		Expect(err).NotTo(HaveOccurred())

		rd, err := Open(archive)
		Expect(err).NotTo(HaveOccurred())
		defer rd.Close()

		err = rd.RestoreAll([]string{filepath.Join(src, "missing.txt")}, out, false, false, Hooks{})
		Expect(err).To(HaveOccurred())
		e, ok := err.(errors.Error)
		Expect(ok).To(BeTrue())
		Expect(e.IsCode(errors.CodeNotFound)).To(BeTrue())
	})

	It("recovers a file unchanged since a full backup by opening the predecessor archive", func() {
		// Keep sub/b.txt out of the incremental payload: the cutoff has
		// second precision and includes files stamped at it.
		old := time.Now().Add(-time.Hour)
		Expect(os.Chtimes(filepath.Join(src, "sub", "b.txt"), old, old)).NotTo(HaveOccurred())

		full := newCfg(src, dst)
		full.Name = "chain"
		_, err := backup.Run(full, nil, backup.Hooks{})
		Expect(err).NotTo(HaveOccurred())

		time.Sleep(1100 * time.Millisecond)
		Expect(os.WriteFile(filepath.Join(src, "a.txt"), []byte("changed"), 0o644)).NotTo(HaveOccurred())

		incr := newCfg(src, dst)
		incr.Name = "chain"
		incr.Incremental = true
		second, err := backup.Run(incr, nil, backup.Hooks{})
		Expect(err).NotTo(HaveOccurred())

		rd, err := Open(second)
		Expect(err).NotTo(HaveOccurred())
		defer rd.Close()

		Expect(rd.RestoreAll(nil, out, false, false, Hooks{})).To(Succeed())

		a, err := os.ReadFile(filepath.Join(out, src, "a.txt"))
		Expect(err).NotTo(HaveOccurred())
		Expect(string(a)).To(Equal("changed"))
		b, err := os.ReadFile(filepath.Join(out, src, "sub", "b.txt"))
		Expect(err).NotTo(HaveOccurred())
		Expect(string(b)).To(Equal("world"))
	})

	It("RestoreThis only satisfies paths physically present in this archive", func() {
		// Keep sub/b.txt out of the incremental payload: the cutoff has
		// second precision and includes files stamped at it.
		old := time.Now().Add(-time.Hour)
		Expect(os.Chtimes(filepath.Join(src, "sub", "b.txt"), old, old)).NotTo(HaveOccurred())

		full := newCfg(src, dst)
		full.Name = "chain2"
		_, err := backup.Run(full, nil, backup.Hooks{})
		Expect(err).NotTo(HaveOccurred())

		time.Sleep(1100 * time.Millisecond)
		Expect(os.WriteFile(filepath.Join(src, "a.txt"), []byte("changed"), 0o644)).NotTo(HaveOccurred())

		incr := newCfg(src, dst)
		incr.Name = "chain2"
		incr.Incremental = true
		second, err := backup.Run(incr, nil, backup.Hooks{})
		Expect(err).NotTo(HaveOccurred())

		rd, err := Open(second)
		Expect(err).NotTo(HaveOccurred())
		defer rd.Close()

		err = rd.RestoreThis([]string{filepath.Join(src, "sub", "b.txt")}, out, false, false, Hooks{})
		Expect(err).To(HaveOccurred())
		e, ok := err.(errors.Error)
		Expect(ok).To(BeTrue())
		Expect(e.IsCode(errors.CodeNotFound)).To(BeTrue())
	})
})
