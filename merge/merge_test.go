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

package merge_test

import (
	"io"
	"os"
	"path/filepath"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/aggrathon/simplebackup/archive/manifest"
	"github.com/aggrathon/simplebackup/backup"
	"github.com/aggrathon/simplebackup/config"
	. "github.com/aggrathon/simplebackup/merge"
)

func newCfg(src, dst string) *config.Config {
	c := config.New()
	c.Include = []string{src}
	c.Output = dst
	c.Local = true
	return c
}

func payloadOf(path string) map[string]string {
	r, m, err := manifest.Open(path)
	Expect(err).NotTo(HaveOccurred())
	defer r.Close()

	out := make(map[string]string, len(m.List))
	for {
		e, err := r.Next()
		if err == io.EOF {
			break
		}
		Expect(err).NotTo(HaveOccurred())
		data, _ := io.ReadAll(e)
		out[e.Name] = string(data)
	}
	return out
}

var _ = Describe("Run", func() {
	var src, dst string
	var full, incr string

	BeforeEach(func() {
		src = GinkgoT().TempDir()
		dst = GinkgoT().TempDir()
		Expect(os.WriteFile(filepath.Join(src, "a.txt"), []byte("hello"), 0o644)).NotTo(HaveOccurred())
		Expect(os.WriteFile(filepath.Join(src, "b.txt"), []byte("world"), 0o644)).NotTo(HaveOccurred())

		fullCfg := newCfg(src, dst)
		fullCfg.Name = "chain"
		var err error
		full, err = backup.Run(fullCfg, nil, backup.Hooks{})
		Expect(err).NotTo(HaveOccurred())

		time.Sleep(1100 * time.Millisecond)
		Expect(os.WriteFile(filepath.Join(src, "a.txt"), []byte("changed"), 0o644)).NotTo(HaveOccurred())

		incrCfg := newCfg(src, dst)
		incrCfg.Name = "chain"
		incrCfg.Incremental = true
		incr, err = backup.Run(incrCfg, nil, backup.Hooks{})
		Expect(err).NotTo(HaveOccurred())
	})

	It("keeps the union of paths, with each path's payload from its newest source", func() {
		output := GinkgoT().TempDir()
		merged, err := Run([]string{full, incr}, Options{Output: output, Force: true}, nil, Hooks{})
		Expect(err).NotTo(HaveOccurred())
		Expect(merged).To(BeAnExistingFile())

		payload := payloadOf(merged)
		Expect(payload).To(HaveLen(2))

		r, m, err := manifest.Open(merged)
		Expect(err).NotTo(HaveOccurred())
		defer r.Close()
		Expect(m.List.Paths()).To(ConsistOf(
			filepath.Join(src, "a.txt"),
			filepath.Join(src, "b.txt"),
		))

		for name, data := range payload {
			switch filepath.Base(name) {
			case "a.txt":
				Expect(data).To(Equal("changed"))
			case "b.txt":
				Expect(data).To(Equal("world"))
			}
		}
	})

	It("renames source archives to .bak instead of deleting them by default", func() {
		output := GinkgoT().TempDir()
		_, err := Run([]string{full, incr}, Options{Output: output, Force: true}, nil, Hooks{})
		Expect(err).NotTo(HaveOccurred())

		Expect(full).NotTo(BeAnExistingFile())
		Expect(full + ".bak").To(BeAnExistingFile())
		Expect(incr).NotTo(BeAnExistingFile())
		Expect(incr + ".bak").To(BeAnExistingFile())
	})

	It("deletes source archives when Delete is set", func() {
		output := GinkgoT().TempDir()
		_, err := Run([]string{full, incr}, Options{Output: output, Force: true, Delete: true}, nil, Hooks{})
		Expect(err).NotTo(HaveOccurred())

		Expect(full).NotTo(BeAnExistingFile())
		Expect(full + ".bak").NotTo(BeAnExistingFile())
		Expect(incr).NotTo(BeAnExistingFile())
		Expect(incr + ".bak").NotTo(BeAnExistingFile())
	})

	It("requires at least one source archive", func() {
		_, err := Run(nil, Options{}, nil, Hooks{})
		Expect(err).To(HaveOccurred())
	})
})
