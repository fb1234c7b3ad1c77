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

package backupdate_test

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	. "github.com/aggrathon/simplebackup/backupdate"
)

var _ = Describe("Parse / Format", func() {
	ref := time.Date(2024, time.March, 7, 13, 45, 9, 0, time.Local)

	It("round-trips the canonical serialize layout", func() {
		s := Format(ref)
		Expect(s).To(Equal("2024-03-07_13-45-09"))

		t, ok, err := Parse(s)
		Expect(err).NotTo(HaveOccurred())
		Expect(ok).To(BeTrue())
		Expect(t.Equal(ref)).To(BeTrue())
	})

	DescribeTable("accepted input formats",
		func(input string, want time.Time) {
			got, ok, err := Parse(input)
			Expect(err).NotTo(HaveOccurred())
			Expect(ok).To(BeTrue())
			Expect(got.Equal(want)).To(BeTrue())
		},
		Entry("underscore datetime", "2024-03-07_13-45-09", ref),
		Entry("space datetime", "2024-03-07 13:45:09", ref),
		Entry("space datetime without seconds",
			"2024-03-07 13:45",
			time.Date(2024, time.March, 7, 13, 45, 0, 0, time.Local)),
		Entry("date only",
			"2024-03-07",
			time.Date(2024, time.March, 7, 0, 0, 0, 0, time.Local)),
		Entry("two-digit year", "24-03-07 13:45:09", ref),
		Entry("dot-separated", "2024.03.07 13:45:09", ref),
		Entry("compact numeric", "20240307134509", ref),
		Entry("compact numeric, no seconds",
			"202403071345",
			time.Date(2024, time.March, 7, 13, 45, 0, 0, time.Local)),
		Entry("compact date only",
			"20240307",
			time.Date(2024, time.March, 7, 0, 0, 0, 0, time.Local)),
	)

	It("treats an empty string as no time", func() {
		t, ok, err := Parse("")
		Expect(err).NotTo(HaveOccurred())
		Expect(ok).To(BeFalse())
		Expect(t.IsZero()).To(BeTrue())
	})

	It("rejects unrecognized input", func() {
		_, ok, err := Parse("not-a-date")
		Expect(ok).To(BeFalse())
		Expect(err).To(HaveOccurred())
	})
})

var _ = Describe("SystemToNaive", func() {
	It("rounds to second precision in local time", func() {
		t := time.Date(2024, time.March, 7, 13, 45, 9, 500_000_000, time.UTC)
		got := SystemToNaive(t)
		Expect(got.Nanosecond()).To(Equal(0))
		Expect(got.Location()).To(Equal(time.Local))
	})
})
