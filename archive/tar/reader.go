/*
 *  MIT License
 *
 *  Copyright (c) 2020 Nicolas JUHEL
 *
 *  Permission is hereby granted, free of charge, to any person obtaining a copy
 *  of this software and associated documentation files (the "Software"), to deal
 *  in the Software without restriction, including without limitation the rights
 *  to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 *  copies of the Software, and to permit persons to whom the Software is
 *  furnished to do so, subject to the following conditions:
 *
 *  The above copyright notice and this permission notice shall be included in all
 *  copies or substantial portions of the Software.
 *
 *  THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 *  IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 *  FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 *  AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 *  LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 *  OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 *  SOFTWARE.
 *
 */

package tar

import (
	stdtar "archive/tar"
	"io"
	"os"
	"time"

	"github.com/aggrathon/simplebackup/archive/compress"
	"github.com/aggrathon/simplebackup/errors"
	"github.com/aggrathon/simplebackup/file/perm"
)

// Reader streams an archive's records in sequence. Entries must be
// consumed (or explicitly skipped) in order; there is no index to
// jump to an arbitrary record.
type Reader struct {
	fh   *os.File
	dec  io.ReadCloser
	tr   *stdtar.Reader
	algo compress.Algorithm
}

// Open opens path for reading. The compression algorithm is chosen
// from path's extension (compress.FromExtension) rather than by
// sniffing the file's header, since Brotli — this engine's default
// write format — carries no magic number to detect.
func Open(path string) (*Reader, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, errors.IoError("open", path, err)
	}

	algo := compress.FromExtension(path)
	dec, err := algo.Reader(fh)
	if err != nil {
		_ = fh.Close()
		return nil, errors.IoError("decompress", path, err)
	}

	return &Reader{
		fh:   fh,
		dec:  dec,
		tr:   stdtar.NewReader(dec),
		algo: algo,
	}, nil
}

// Entry is one record surfaced by Next: its archive-internal name and
// a handle the caller may Read from (and need not exhaust — the next
// Next call discards any unread payload bytes, mirroring the spec's
// "skipping consumes the payload bytes without materializing them").
type Entry struct {
	Name    string
	Size    int64
	ModTime time.Time
	Mode    perm.Perm
	r       *stdtar.Reader
}

func (e *Entry) Read(p []byte) (int, error) {
	return e.r.Read(p)
}

// Next returns the next record, or io.EOF once the archive is
// exhausted. It is the caller's responsibility to fully read or
// discard the returned Entry's bytes before calling Next again; the
// underlying tar.Reader handles skipping any unread remainder.
func (r *Reader) Next() (*Entry, error) {
	hdr, err := r.tr.Next()
	if err == io.EOF {
		return nil, io.EOF
	}
	if err != nil {
		return nil, errors.FormatError("corrupt archive: " + err.Error())
	}
	return &Entry{
		Name:    hdr.Name,
		Size:    hdr.Size,
		ModTime: hdr.ModTime,
		Mode:    perm.ParseFileMode(hdr.FileInfo().Mode()),
		r:       r.tr,
	}, nil
}

// Close releases the decompressor and the underlying file handle.
func (r *Reader) Close() error {
	err1 := r.dec.Close()
	err2 := r.fh.Close()
	if err1 != nil {
		return errors.IoError("close decompressor", r.fh.Name(), err1)
	}
	if err2 != nil {
		return errors.IoError("close file", r.fh.Name(), err2)
	}
	return nil
}
