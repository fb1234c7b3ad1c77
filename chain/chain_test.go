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

package chain_test

import (
	"os"
	"path/filepath"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	. "github.com/aggrathon/simplebackup/chain"
	"github.com/aggrathon/simplebackup/errors"
)

func touch(dir, name string) string {
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, []byte("x"), 0o644); err != nil {
		panic(err)
	}
	return p
}

var _ = Describe("ParseFilename", func() {
	It("splits the name prefix from its embedded timestamp", func() {
		prefix, stamp, ok := ParseFilename("nightly_2024-03-07_13-45-09.tar.br", ".tar.br")
		Expect(ok).To(BeTrue())
		Expect(prefix).To(Equal("nightly"))
		Expect(stamp).To(Equal(time.Date(2024, time.March, 7, 13, 45, 9, 0, time.Local)))
	})

	It("rejects a name with no timestamp", func() {
		_, _, ok := ParseFilename("nightly.tar.br", ".tar.br")
		Expect(ok).To(BeFalse())
	})

	It("rejects a name with the wrong extension", func() {
		_, _, ok := ParseFilename("nightly_2024-03-07_13-45-09.tar.br", ".tar.gz")
		Expect(ok).To(BeFalse())
	})
})

var _ = Describe("Discover", func() {
	It("lists chain members sorted oldest first, ignoring unrelated files", func() {
		dir := GinkgoT().TempDir()
		touch(dir, "nightly_2024-03-07_13-45-09.tar.br")
		touch(dir, "nightly_2024-01-01_00-00-00.tar.br")
		touch(dir, "nightly_2024-06-15_08-30-00.tar.br")
		touch(dir, "other_2024-05-01_00-00-00.tar.br")
		touch(dir, "readme.txt")

		members, err := Discover(dir, "nightly", ".tar.br")
		Expect(err).NotTo(HaveOccurred())
		Expect(members).To(HaveLen(3))
		Expect(members[0].Name).To(Equal("nightly_2024-01-01_00-00-00.tar.br"))
		Expect(members[1].Name).To(Equal("nightly_2024-03-07_13-45-09.tar.br"))
		Expect(members[2].Name).To(Equal("nightly_2024-06-15_08-30-00.tar.br"))
	})
})

var _ = Describe("Latest", func() {
	It("returns the most recent member", func() {
		dir := GinkgoT().TempDir()
		touch(dir, "nightly_2024-01-01_00-00-00.tar.br")
		touch(dir, "nightly_2024-06-15_08-30-00.tar.br")

		latest, err := Latest(dir, "nightly", ".tar.br")
		Expect(err).NotTo(HaveOccurred())
		Expect(latest.Name).To(Equal("nightly_2024-06-15_08-30-00.tar.br"))
	})

	It("reports NoBackup when the chain is empty", func() {
		dir := GinkgoT().TempDir()
		_, err := Latest(dir, "nightly", ".tar.br")
		Expect(err).To(HaveOccurred())
		e, ok := err.(errors.Error)
		Expect(ok).To(BeTrue())
		Expect(e.IsCode(errors.CodeNoBackup)).To(BeTrue())
	})
})

var _ = Describe("PreviousTo", func() {
	It("walks back to the newest member strictly older than a reference time", func() {
		dir := GinkgoT().TempDir()
		touch(dir, "nightly_2024-01-01_00-00-00.tar.br")
		touch(dir, "nightly_2024-03-07_13-45-09.tar.br")
		touch(dir, "nightly_2024-06-15_08-30-00.tar.br")

		prev, err := PreviousTo(dir, "nightly", ".tar.br", time.Date(2024, time.March, 7, 13, 45, 9, 0, time.Local))
		Expect(err).NotTo(HaveOccurred())
		Expect(prev.Name).To(Equal("nightly_2024-01-01_00-00-00.tar.br"))
	})

	It("reports NoBackup when nothing precedes the reference time", func() {
		dir := GinkgoT().TempDir()
		touch(dir, "nightly_2024-06-15_08-30-00.tar.br")

		_, err := PreviousTo(dir, "nightly", ".tar.br", time.Date(2024, time.January, 1, 0, 0, 0, 0, time.Local))
		Expect(err).To(HaveOccurred())
	})
})

var _ = Describe("PreviousFile", func() {
	It("finds the predecessor of a chain member by path", func() {
		dir := GinkgoT().TempDir()
		touch(dir, "nightly_2024-01-01_00-00-00.tar.br")
		latest := touch(dir, "nightly_2024-06-15_08-30-00.tar.br")

		prev, err := PreviousFile(latest)
		Expect(err).NotTo(HaveOccurred())
		Expect(prev.Name).To(Equal("nightly_2024-01-01_00-00-00.tar.br"))
	})

	It("rejects a path that is not itself a chain member", func() {
		dir := GinkgoT().TempDir()
		p := touch(dir, "not-a-chain-member.tar.br")
		_, err := PreviousFile(p)
		Expect(err).To(HaveOccurred())
	})
})
