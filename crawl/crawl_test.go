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

package crawl_test

import (
	"io"
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	. "github.com/aggrathon/simplebackup/crawl"
)

func mkTree(root string) {
	must := func(err error) {
		if err != nil {
			panic(err)
		}
	}
	must(os.MkdirAll(filepath.Join(root, "sub"), 0o755))
	must(os.MkdirAll(filepath.Join(root, "excluded"), 0o755))
	must(os.WriteFile(filepath.Join(root, "a.txt"), []byte("a"), 0o644))
	must(os.WriteFile(filepath.Join(root, "sub", "b.txt"), []byte("b"), 0o644))
	must(os.WriteFile(filepath.Join(root, "sub", "c.md"), []byte("c"), 0o644))
	must(os.WriteFile(filepath.Join(root, "excluded", "d.txt"), []byte("d"), 0o644))
}

func drain(c *Crawler) ([]*FileInfo, error) {
	var got []*FileInfo
	for {
		fi, err := c.Next()
		if err == io.EOF {
			return got, nil
		}
		if err != nil {
			return got, err
		}
		got = append(got, fi)
	}
}

var _ = Describe("Crawler", func() {
	var root string

	BeforeEach(func() {
		root = GinkgoT().TempDir()
		mkTree(root)
	})

	It("produces a lexicographically sorted, depth-first sequence", func() {
		c, err := New([]string{root}, nil, nil, true)
		Expect(err).NotTo(HaveOccurred())
		got, err := drain(c)
		Expect(err).NotTo(HaveOccurred())

		var paths []string
		for _, fi := range got {
			paths = append(paths, fi.Path)
		}
		for i := 1; i < len(paths); i++ {
			Expect(paths[i-1] < paths[i]).To(BeTrue())
		}
	})

	It("excludes a directory and regex-matched files", func() {
		c, err := New(
			[]string{root},
			[]string{filepath.Join(root, "excluded")},
			[]string{`.*\.md$`},
			true,
		)
		Expect(err).NotTo(HaveOccurred())
		got, err := drain(c)
		Expect(err).NotTo(HaveOccurred())

		var paths []string
		for _, fi := range got {
			paths = append(paths, fi.Path)
		}
		Expect(paths).To(ContainElement(filepath.Join(root, "a.txt")))
		Expect(paths).To(ContainElement(filepath.Join(root, "sub", "b.txt")))
		Expect(paths).NotTo(ContainElement(filepath.Join(root, "sub", "c.md")))
		Expect(paths).NotTo(ContainElement(filepath.Join(root, "excluded", "d.txt")))
	})

	It("is deterministic across repeated crawls", func() {
		run := func() []string {
			c, err := New([]string{root}, nil, nil, true)
			Expect(err).NotTo(HaveOccurred())
			got, err := drain(c)
			Expect(err).NotTo(HaveOccurred())
			var paths []string
			for _, fi := range got {
				paths = append(paths, fi.Path)
			}
			return paths
		}
		Expect(run()).To(Equal(run()))
	})

	It("keeps relative paths verbatim when local is set", func() {
		cwd, err := os.Getwd()
		Expect(err).NotTo(HaveOccurred())
		Expect(os.Chdir(root)).NotTo(HaveOccurred())
		defer os.Chdir(cwd)

		c, err := New([]string{"a.txt"}, nil, nil, true)
		Expect(err).NotTo(HaveOccurred())
		got, err := drain(c)
		Expect(err).NotTo(HaveOccurred())
		Expect(got).To(HaveLen(1))
		Expect(got[0].Path).To(Equal("a.txt"))
	})

	It("absolutizes paths unless local is set", func() {
		cwd, err := os.Getwd()
		Expect(err).NotTo(HaveOccurred())
		Expect(os.Chdir(root)).NotTo(HaveOccurred())
		defer os.Chdir(cwd)

		c, err := New([]string{"a.txt"}, nil, nil, false)
		Expect(err).NotTo(HaveOccurred())
		got, err := drain(c)
		Expect(err).NotTo(HaveOccurred())
		Expect(got).To(HaveLen(1))
		Expect(filepath.IsAbs(got[0].Path)).To(BeTrue())
	})

	It("surfaces an access error for a missing path without aborting the whole crawl", func() {
		// Sorts before a.txt, so the crawl reaches it first.
		missing := filepath.Join(root, "0-does-not-exist")
		c, err := New([]string{missing, filepath.Join(root, "a.txt")}, nil, nil, true)
		Expect(err).NotTo(HaveOccurred())

		_, err = c.Next()
		Expect(err).To(HaveOccurred())

		fi, err := c.Next()
		Expect(err).NotTo(HaveOccurred())
		Expect(fi.Path).To(Equal(filepath.Join(root, "a.txt")))
	})
})

var _ = Describe("Includes", func() {
	var root string

	BeforeEach(func() {
		root = GinkgoT().TempDir()
		mkTree(root)
	})

	It("matches paths under an include root", func() {
		ok, err := Includes([]string{root}, nil, nil, true, filepath.Join(root, "a.txt"))
		Expect(err).NotTo(HaveOccurred())
		Expect(ok).To(BeTrue())
	})

	It("rejects paths under an exclude root", func() {
		ok, err := Includes([]string{root}, []string{filepath.Join(root, "excluded")}, nil, true, filepath.Join(root, "excluded", "d.txt"))
		Expect(err).NotTo(HaveOccurred())
		Expect(ok).To(BeFalse())
	})

	It("rejects regex-matched paths", func() {
		ok, err := Includes([]string{root}, nil, []string{`.*\.md$`}, true, filepath.Join(root, "sub", "c.md"))
		Expect(err).NotTo(HaveOccurred())
		Expect(ok).To(BeFalse())
	})

	It("rejects paths outside every include root", func() {
		ok, err := Includes([]string{filepath.Join(root, "sub")}, nil, nil, true, filepath.Join(root, "a.txt"))
		Expect(err).NotTo(HaveOccurred())
		Expect(ok).To(BeFalse())
	})
})
