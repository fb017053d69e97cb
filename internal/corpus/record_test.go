package corpus

import (
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, line string) Record {
	t.Helper()
	var rec Record
	require.NoError(t, json.Unmarshal([]byte(line), &rec))
	return rec
}

func TestRecord_Str(t *testing.T) {
	rec := decode(t, `{"a":" hello ","b":42,"c":4.5,"d":null,"e":["x"]}`)

	assert.Equal(t, "hello", rec.Str("a"))
	assert.Equal(t, "42", rec.Str("b"))
	assert.Equal(t, "4.5", rec.Str("c"))
	assert.Equal(t, "", rec.Str("d"))
	assert.Equal(t, "", rec.Str("e"))
	assert.Equal(t, "", rec.Str("missing"))
}

func TestRecord_Int64(t *testing.T) {
	rec := decode(t, `{"n":1234,"s":"567","pad":" 89 ","bad":"12x","f":3.9,"null":null}`)

	assert.Equal(t, int64(1234), rec.Int64("n"))
	assert.Equal(t, int64(567), rec.Int64("s"))
	assert.Equal(t, int64(89), rec.Int64("pad"))
	assert.Equal(t, int64(0), rec.Int64("bad"))
	assert.Equal(t, int64(3), rec.Int64("f"))
	assert.Equal(t, int64(0), rec.Int64("null"))
	assert.Equal(t, int64(0), rec.Int64("missing"))
}

func TestRecord_Float(t *testing.T) {
	rec := decode(t, `{"n":4.12,"s":"3.97","bad":"high","null":null}`)

	assert.InDelta(t, 4.12, rec.Float("n"), 1e-9)
	assert.InDelta(t, 3.97, rec.Float("s"), 1e-9)
	assert.Zero(t, rec.Float("bad"))
	assert.Zero(t, rec.Float("null"))
	assert.Zero(t, rec.Float("missing"))
}

func TestRecord_List(t *testing.T) {
	rec := decode(t, `{"shelves":[{"name":"fantasy","count":"12"},{"name":"owned","count":"3"},"junk"],"scalar":7}`)

	shelves := rec.List("shelves")
	require.Len(t, shelves, 2)
	assert.Equal(t, "fantasy", shelves[0].Str("name"))
	assert.Equal(t, 12, shelves[0].Int("count"))

	assert.Nil(t, rec.List("scalar"))
	assert.Nil(t, rec.List("missing"))
}

func TestRecord_Strings(t *testing.T) {
	rec := decode(t, `{"ids":["1","2",3,"4"]}`)

	assert.Equal(t, []string{"1", "2", "4"}, rec.Strings("ids"))
}
