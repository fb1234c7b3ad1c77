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

package pathtrans_test

import (
	"runtime"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	. "github.com/aggrathon/simplebackup/archive/pathtrans"
)

var _ = Describe("ToArchive / FromArchive", func() {
	Context("absolute paths", func() {
		It("round-trips through the abs prefix", func() {
			var abs string
			if runtime.GOOS == "windows" {
				abs = `C:\data\file.txt`
			} else {
				abs = "/data/file.txt"
			}
			name := ToArchive(abs)
			Expect(name).To(HavePrefix("abs"))
			Expect(FromArchive(name)).To(Equal(abs))
		})

		It("never leaves a backslash in the archive name", func() {
			if runtime.GOOS != "windows" {
				Skip("backslash separators only arise on windows")
			}
			name := ToArchive(`C:\data\sub\file.txt`)
			Expect(name).NotTo(ContainSubstring(`\`))
		})
	})

	Context("relative paths", func() {
		It("cleans and prefixes with rel/", func() {
			name := ToArchive("a/./b/../c.txt")
			Expect(name).To(Equal("rel/a/c.txt"))
			Expect(FromArchive(name)).To(Equal(FromArchive("rel/a/c.txt")))
		})

		It("decodes bare rel to the current directory", func() {
			Expect(FromArchive("rel")).To(Equal("."))
		})
	})

	Context("unrecognized names", func() {
		It("returns the name unchanged", func() {
			Expect(FromArchive("weird")).To(Equal("weird"))
		})
	})
})
