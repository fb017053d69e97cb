package corpus

import (
	"bufio"
	"context"
	"fmt"
	"os"

	"github.com/goccy/go-json"

	"github.com/bookfinder/bookfinder-server/internal/logger"
)

// maxLineBytes bounds a single corpus line. Book records with long
// descriptions and large shelf arrays run well past bufio's 64KB default.
const maxLineBytes = 4 * 1024 * 1024

// ErrStop can be returned by a scan callback to end the scan early
// without reporting an error.
var ErrStop = fmt.Errorf("corpus: stop scan")

// Reader streams records from a newline-delimited JSON file. Each Scan call
// reopens the file from the start, so the same Reader can drive multiple
// passes over one dump.
type Reader struct {
	path string
	log  *logger.Logger
}

// NewReader creates a reader for the file at path.
func NewReader(path string, log *logger.Logger) *Reader {
	return &Reader{path: path, log: log}
}

// Path returns the file this reader scans.
func (r *Reader) Path() string {
	return r.path
}

// ScanStats summarizes one pass over a file.
type ScanStats struct {
	Lines     int // lines read, including malformed ones
	Malformed int // lines that failed to decode and were skipped
}

// Scan streams the file line by line, invoking fn for each decoded record.
// Malformed lines are logged and skipped, never fatal. The scan stops when
// fn returns ErrStop (no error reported) or any other error (propagated),
// or when ctx is cancelled.
func (r *Reader) Scan(ctx context.Context, fn func(rec Record) error) (ScanStats, error) {
	var stats ScanStats

	f, err := os.Open(r.path)
	if err != nil {
		return stats, fmt.Errorf("open corpus file: %w", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 64*1024), maxLineBytes)

	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return stats, err
		}

		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		stats.Lines++

		var rec Record
		if err := json.Unmarshal(line, &rec); err != nil {
			stats.Malformed++
			r.log.Warn("skipping malformed corpus line",
				"file", r.path,
				"line", stats.Lines,
				"error", err)
			continue
		}

		if err := fn(rec); err != nil {
			if err == ErrStop {
				return stats, nil
			}
			return stats, err
		}
	}

	if err := scanner.Err(); err != nil {
		return stats, fmt.Errorf("read corpus file: %w", err)
	}
	return stats, nil
}
