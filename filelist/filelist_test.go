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

package filelist_test

import (
	"os"
	"path/filepath"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/aggrathon/simplebackup/crawl"
	. "github.com/aggrathon/simplebackup/filelist"
)

var _ = Describe("Version", func() {
	It("maps filenames to versions and back", func() {
		Expect(V1.Filename()).To(Equal("files.csv"))
		Expect(V2.Filename()).To(Equal("files_v2.csv"))

		v, ok := FilenameToVersion("files.csv")
		Expect(ok).To(BeTrue())
		Expect(v).To(Equal(V1))

		v, ok = FilenameToVersion("files_v2.csv")
		Expect(ok).To(BeTrue())
		Expect(v).To(Equal(V2))

		_, ok = FilenameToVersion("nope.csv")
		Expect(ok).To(BeFalse())
	})
})

var _ = Describe("BuildFromCrawl", func() {
	It("tags entries included or not against a cutoff and sorts by path", func() {
		root := GinkgoT().TempDir()
		old := filepath.Join(root, "old.txt")
		fresh := filepath.Join(root, "fresh.txt")
		Expect(os.WriteFile(old, []byte("a"), 0o644)).NotTo(HaveOccurred())
		Expect(os.WriteFile(fresh, []byte("b"), 0o644)).NotTo(HaveOccurred())

		cutoff := time.Now().Add(-time.Hour)
		Expect(os.Chtimes(old, cutoff.Add(-48*time.Hour), cutoff.Add(-48*time.Hour))).NotTo(HaveOccurred())
		Expect(os.Chtimes(fresh, cutoff.Add(time.Hour), cutoff.Add(time.Hour))).NotTo(HaveOccurred())

		c, err := crawl.New([]string{root}, nil, nil, true)
		Expect(err).NotTo(HaveOccurred())

		list, err := BuildFromCrawl(c, &cutoff, nil)
		Expect(err).NotTo(HaveOccurred())
		Expect(list).To(HaveLen(2))
		Expect(list[0].Info.Path).To(Equal(fresh))
		Expect(list[0].Included).To(BeTrue())
		Expect(list[1].Info.Path).To(Equal(old))
		Expect(list[1].Included).To(BeFalse())
	})

	It("includes everything when cutoff is nil", func() {
		root := GinkgoT().TempDir()
		Expect(os.WriteFile(filepath.Join(root, "a.txt"), []byte("a"), 0o644)).NotTo(HaveOccurred())

		c, err := crawl.New([]string{root}, nil, nil, true)
		Expect(err).NotTo(HaveOccurred())

		list, err := BuildFromCrawl(c, nil, nil)
		Expect(err).NotTo(HaveOccurred())
		Expect(list).To(HaveLen(1))
		Expect(list[0].Included).To(BeTrue())
	})
})

var _ = Describe("V2 encoding", func() {
	It("round-trips flags and forward-slashed paths", func() {
		list := Vec{
			{Included: true, Info: crawl.FileInfo{Display: "a/b.txt"}},
			{Included: false, Info: crawl.FileInfo{Display: "c.txt"}},
		}
		data := list.EncodeV2()
		Expect(string(data)).To(Equal("1,a/b.txt\n0,c.txt"))

		decoded, err := DecodeV2(data)
		Expect(err).NotTo(HaveOccurred())
		Expect(decoded).To(HaveLen(2))
		Expect(decoded[0].Included).To(BeTrue())
		Expect(decoded[0].Info.Display).To(Equal("a/b.txt"))
		Expect(decoded[1].Included).To(BeFalse())
		Expect(decoded[1].Info.Display).To(Equal("c.txt"))
	})

	It("rejects a malformed line", func() {
		_, err := DecodeV2([]byte("not-a-flag,path"))
		Expect(err).To(HaveOccurred())
	})

	It("decodes through Decode by dispatching on filename", func() {
		list := Vec{{Included: true, Info: crawl.FileInfo{Display: "a.txt"}}}
		data := list.EncodeV2()
		decoded, version, err := Decode("files_v2.csv", data)
		Expect(err).NotTo(HaveOccurred())
		Expect(version).To(Equal(V2))
		Expect(decoded).To(HaveLen(1))
	})
})

var _ = Describe("V1 encoding", func() {
	It("round-trips as an implicitly-included name list", func() {
		list := Vec{
			{Included: true, Info: crawl.FileInfo{Display: "a.txt"}},
			{Included: true, Info: crawl.FileInfo{Display: "b.txt"}},
		}
		data := list.EncodeV1()
		Expect(string(data)).To(Equal("a.txt\nb.txt"))

		decoded, version, err := Decode("files.csv", data)
		Expect(err).NotTo(HaveOccurred())
		Expect(version).To(Equal(V1))
		Expect(decoded).To(HaveLen(2))
		Expect(decoded[0].Included).To(BeTrue())
		Expect(decoded[1].Included).To(BeTrue())
	})
})

var _ = Describe("Decode", func() {
	It("rejects an unrecognized record name", func() {
		_, _, err := Decode("whatever.csv", []byte("x"))
		Expect(err).To(HaveOccurred())
	})
})

var _ = Describe("Included and Paths", func() {
	It("filters and projects", func() {
		list := Vec{
			{Included: true, Info: crawl.FileInfo{Display: "a.txt"}},
			{Included: false, Info: crawl.FileInfo{Display: "b.txt"}},
		}
		Expect(list.Included()).To(HaveLen(1))
		Expect(list.Paths()).To(Equal([]string{"a.txt", "b.txt"}))
	})
})
