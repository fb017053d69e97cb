package corpus

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bookfinder/bookfinder-server/internal/logger"
)

func writeCorpus(t *testing.T, lines string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "dump.json")
	require.NoError(t, os.WriteFile(path, []byte(lines), 0o644))
	return path
}

func TestReader_Scan(t *testing.T) {
	path := writeCorpus(t, `{"book_id":"1","title":"Dune"}
{"book_id":"2","title":"Hyperion"}
`)
	r := NewReader(path, logger.Discard())

	var ids []string
	stats, err := r.Scan(context.Background(), func(rec Record) error {
		ids = append(ids, rec.Str("book_id"))
		return nil
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"1", "2"}, ids)
	assert.Equal(t, 2, stats.Lines)
	assert.Equal(t, 0, stats.Malformed)
}

func TestReader_Scan_SkipsMalformedLines(t *testing.T) {
	path := writeCorpus(t, `{"book_id":"1"}
not json at all
{"book_id":"2"}
`)
	r := NewReader(path, logger.Discard())

	var count int
	stats, err := r.Scan(context.Background(), func(rec Record) error {
		count++
		return nil
	})
	require.NoError(t, err)

	assert.Equal(t, 2, count)
	assert.Equal(t, 1, stats.Malformed)
	assert.Equal(t, 3, stats.Lines)
}

func TestReader_Scan_EarlyStop(t *testing.T) {
	path := writeCorpus(t, `{"book_id":"1"}
{"book_id":"2"}
{"book_id":"3"}
`)
	r := NewReader(path, logger.Discard())

	var count int
	_, err := r.Scan(context.Background(), func(rec Record) error {
		count++
		if count == 2 {
			return ErrStop
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestReader_Scan_Restartable(t *testing.T) {
	path := writeCorpus(t, `{"book_id":"1"}
`)
	r := NewReader(path, logger.Discard())

	for i := 0; i < 2; i++ {
		stats, err := r.Scan(context.Background(), func(Record) error { return nil })
		require.NoError(t, err)
		assert.Equal(t, 1, stats.Lines)
	}
}

func TestReader_Scan_MissingFile(t *testing.T) {
	r := NewReader(filepath.Join(t.TempDir(), "nope.json"), logger.Discard())

	_, err := r.Scan(context.Background(), func(Record) error { return nil })
	assert.Error(t, err)
}

func TestReader_Scan_ContextCancelled(t *testing.T) {
	path := writeCorpus(t, `{"book_id":"1"}
{"book_id":"2"}
`)
	r := NewReader(path, logger.Discard())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := r.Scan(ctx, func(Record) error { return nil })
	assert.ErrorIs(t, err, context.Canceled)
}
