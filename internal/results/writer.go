// Package results writes one delimited row per solving attempt.
package results

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/SeamusWaldron/pocketcube/internal/solver"
)

// ErrClosed is returned by Write after Close.
var ErrClosed = errors.New("results: writer closed")

// Header is the first row of every results file.
var Header = []string{"attempt", "highest_fitness", "duration_ms", "solved"}

// Writer appends attempt results to a delimited file. It implements
// solver.Recorder.
type Writer struct {
	path string
	file *os.File
	csv  *csv.Writer
}

var _ solver.Recorder = (*Writer)(nil)

// NewWriter creates (or truncates) the file at path and writes the header.
// A zero delimiter means a comma.
func NewWriter(path string, delimiter rune) (*Writer, error) {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create results directory: %w", err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create results file: %w", err)
	}

	w := &Writer{path: path, file: f, csv: csv.NewWriter(f)}
	if delimiter != 0 {
		w.csv.Comma = delimiter
	}

	if err := w.writeRow(Header); err != nil {
		f.Close()
		return nil, err
	}
	return w, nil
}

// Path returns the file path.
func (w *Writer) Path() string { return w.path }

// Write appends one row and flushes it.
func (w *Writer) Write(r solver.AttemptResult) error {
	return w.writeRow([]string{
		strconv.Itoa(r.Attempt),
		strconv.Itoa(r.HighestFitness),
		strconv.FormatInt(r.Duration.Milliseconds(), 10),
		strconv.FormatBool(r.Solved),
	})
}

// Record implements solver.Recorder.
func (w *Writer) Record(r solver.AttemptResult) error {
	return w.Write(r)
}

func (w *Writer) writeRow(row []string) error {
	if w.csv == nil {
		return ErrClosed
	}
	if err := w.csv.Write(row); err != nil {
		return fmt.Errorf("failed to write results row: %w", err)
	}
	w.csv.Flush()
	if err := w.csv.Error(); err != nil {
		return fmt.Errorf("failed to flush results: %w", err)
	}
	return nil
}

// Close flushes and closes the file. Closing twice is a no-op.
func (w *Writer) Close() error {
	if w.csv == nil {
		return nil
	}
	w.csv.Flush()
	err := w.csv.Error()
	w.csv = nil

	if cerr := w.file.Close(); err == nil {
		err = cerr
	}
	return err
}
