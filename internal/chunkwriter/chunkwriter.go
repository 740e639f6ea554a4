// Package chunkwriter writes large CSV outputs in bounded chunks.
//
// Rows are buffered in memory and written whenever the buffer grows past the
// chunk size. The first write creates (or truncates) the file and writes the
// header; later writes append. Every row is prefixed with a running index so
// the file reads back like an indexed table.
package chunkwriter

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

// DefaultChunkSize is used when New is given a non-positive chunk size.
const DefaultChunkSize = 1000

// Writer buffers rows and flushes them to a CSV file in chunks. It is not
// safe for concurrent use.
type Writer struct {
	path      string
	chunkSize int
	header    []string

	chunk   [][]string
	idx     int
	written bool
}

// New returns a Writer for path. Nothing touches the disk until the first
// chunk is written.
func New(path string, chunkSize int, header []string) *Writer {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	return &Writer{path: path, chunkSize: chunkSize, header: header}
}

// Path returns the output path.
func (w *Writer) Path() string { return w.path }

// Rows returns the number of rows written to disk so far.
func (w *Writer) Rows() int { return w.idx }

// Add buffers rows and writes the buffer once it exceeds the chunk size.
func (w *Writer) Add(rows ...[]string) error {
	w.chunk = append(w.chunk, rows...)
	if len(w.chunk) > w.chunkSize {
		return w.write()
	}
	return nil
}

// Finish writes whatever is buffered. A writer that never received a row
// still produces a file holding the header.
func (w *Writer) Finish() error {
	return w.write()
}

// write flushes the buffered chunk. On failure the buffer and the running
// index are left untouched and an appended file is cut back to its previous
// size, so a retried write numbers rows exactly once.
func (w *Writer) write() (err error) {
	flag := os.O_WRONLY | os.O_CREATE | os.O_APPEND
	var size int64
	if !w.written {
		flag = os.O_WRONLY | os.O_CREATE | os.O_TRUNC
		if err := os.MkdirAll(filepath.Dir(w.path), 0o755); err != nil {
			return fmt.Errorf("failed to create output directory for %s: %w", w.path, err)
		}
	} else if info, statErr := os.Stat(w.path); statErr == nil {
		size = info.Size()
	}
	f, err := os.OpenFile(w.path, flag, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", w.path, err)
	}
	defer func() {
		if err == nil {
			return
		}
		f.Close()
		if w.written && size > 0 {
			_ = os.Truncate(w.path, size)
		}
	}()

	cw := csv.NewWriter(f)
	if !w.written {
		if err := cw.Write(append([]string{""}, w.header...)); err != nil {
			return fmt.Errorf("failed to write header to %s: %w", w.path, err)
		}
	}
	for i, row := range w.chunk {
		record := append([]string{strconv.Itoa(w.idx + i)}, row...)
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write row %d to %s: %w", w.idx+i, w.path, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("failed to flush %s: %w", w.path, err)
	}
	if err := f.Close(); err != nil {
		return err
	}

	w.idx += len(w.chunk)
	w.written = true
	w.chunk = nil
	return nil
}
