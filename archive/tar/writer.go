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

// Package tar layers framed records (via the standard library's tar
// format) on top of a compress.Algorithm, giving archives the
// create/append_data/append_file/close and read/entries() contract the
// backup engine needs: a config record first, a file-list record
// second, payload records after, all scanned sequentially with no
// index.
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

// Writer creates an archive by appending framed records in sequence.
// The first call must write the config record, the second the file
// list; append_file opens and streams its source file as each
// subsequent payload record.
type Writer struct {
	fh   *os.File
	comp io.WriteCloser
	tw   *stdtar.Writer
}

// Create opens path for writing and layers the framer atop algo's
// compressor at the given quality. Quality is ignored by algorithms
// other than compress.Brotli.
func Create(path string, algo compress.Algorithm, quality int) (*Writer, error) {
	fh, err := os.Create(path)
	if err != nil {
		return nil, errors.IoError("create", path, err)
	}

	comp, err := algo.Writer(fh, quality)
	if err != nil {
		_ = fh.Close()
		return nil, errors.IoError("compress", path, err)
	}

	return &Writer{
		fh:   fh,
		comp: comp,
		tw:   stdtar.NewWriter(comp),
	}, nil
}

// AppendData writes a synthesized record with no filesystem file
// backing, e.g. the config blob or the file list.
func (w *Writer) AppendData(name string, data []byte) error {
	hdr := &stdtar.Header{
		Name:    name,
		Size:    int64(len(data)),
		Mode:    0o644,
		ModTime: time.Now(),
	}

	if err := w.tw.WriteHeader(hdr); err != nil {
		return errors.IoError("write header", name, err)
	}
	if _, err := w.tw.Write(data); err != nil {
		return errors.IoError("write data", name, err)
	}
	return nil
}

// AppendFile opens path and streams its bytes into a record named
// archiveName (the path-translated form of path, per archive/pathtrans).
// If path cannot be opened or stat'd, returns a FileAccessError and
// writes nothing — the caller decides whether to continue the backup,
// leaving the file listed but payload-absent.
func (w *Writer) AppendFile(path string, archiveName string) error {
	fh, err := os.Open(path)
	if err != nil {
		return errors.FileAccessError(path, err)
	}
	defer fh.Close()

	info, err := fh.Stat()
	if err != nil {
		return errors.FileAccessError(path, err)
	}

	hdr, err := stdtar.FileInfoHeader(info, "")
	if err != nil {
		return errors.FileAccessError(path, err)
	}
	hdr.Name = archiveName

	if err := w.tw.WriteHeader(hdr); err != nil {
		return errors.IoError("write header", path, err)
	}
	if _, err := io.Copy(w.tw, fh); err != nil {
		return errors.IoError("write data", path, err)
	}
	return nil
}

// AppendFileBytes writes a payload record for an already-read file: the
// parallel backup writer's worker goroutines read each source file into
// memory off the critical path, leaving only this header-plus-copy call
// on the single goroutine that owns the archive.
func (w *Writer) AppendFileBytes(archiveName string, data []byte, mode perm.Perm, modTime time.Time) error {
	hdr := &stdtar.Header{
		Name:    archiveName,
		Size:    int64(len(data)),
		Mode:    int64(mode),
		ModTime: modTime,
	}
	if err := w.tw.WriteHeader(hdr); err != nil {
		return errors.IoError("write header", archiveName, err)
	}
	if _, err := w.tw.Write(data); err != nil {
		return errors.IoError("write data", archiveName, err)
	}
	return nil
}

// AppendStream copies size bytes from r into a new record named
// archiveName, preserving mode and modTime. Merge uses this to re-frame
// a source archive's payload record into the consolidated archive
// without materializing it in memory.
func (w *Writer) AppendStream(archiveName string, size int64, mode perm.Perm, modTime time.Time, r io.Reader) error {
	hdr := &stdtar.Header{
		Name:    archiveName,
		Size:    size,
		Mode:    int64(mode),
		ModTime: modTime,
	}
	if err := w.tw.WriteHeader(hdr); err != nil {
		return errors.IoError("write header", archiveName, err)
	}
	if _, err := io.CopyN(w.tw, r, size); err != nil {
		return errors.IoError("write data", archiveName, err)
	}
	return nil
}

// Close flushes the framer, finalizes the compressor, fsyncs the
// underlying handle, and drops it. Callers that abort or cancel a
// backup should remove the partial file themselves instead of calling
// Close, per spec.
func (w *Writer) Close() error {
	if err := w.tw.Close(); err != nil {
		_ = w.comp.Close()
		_ = w.fh.Close()
		return errors.IoError("close framer", w.fh.Name(), err)
	}
	if err := w.comp.Close(); err != nil {
		_ = w.fh.Close()
		return errors.IoError("close compressor", w.fh.Name(), err)
	}
	if err := w.fh.Sync(); err != nil {
		_ = w.fh.Close()
		return errors.IoError("fsync", w.fh.Name(), err)
	}
	if err := w.fh.Close(); err != nil {
		return errors.IoError("close file", w.fh.Name(), err)
	}
	return nil
}

// Abort discards the archive without fsyncing, for use when a backup
// is cancelled partway through. The caller still owns deleting the
// partial file from disk.
func (w *Writer) Abort() error {
	_ = w.tw.Close()
	_ = w.comp.Close()
	return w.fh.Close()
}
