package recommend

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bookfinder/bookfinder-server/internal/domain"
)

func rec(id, title string, ratings int64) domain.Recommendation {
	return domain.Recommendation{
		Book: domain.Book{BookID: id, Title: title, RatingsCount: ratings},
	}
}

func TestDedupe_KeepsFirstPosition(t *testing.T) {
	in := []domain.Recommendation{
		rec("A", "Foo: A Memoir", 10),
		rec("B", "foo", 50),
	}

	out := Dedupe(in)
	require.Len(t, out, 1)
	// the better-known edition replaces the first occurrence in place
	assert.Equal(t, "B", out[0].BookID)
}

func TestDedupe_LowerRatedDuplicateDropped(t *testing.T) {
	in := []domain.Recommendation{
		rec("A", "Dune", 500),
		rec("B", "Dune (Deluxe Edition)", 100),
	}

	out := Dedupe(in)
	require.Len(t, out, 1)
	assert.Equal(t, "A", out[0].BookID)
}

func TestDedupe_EqualRatingsKeepsFirst(t *testing.T) {
	in := []domain.Recommendation{
		rec("A", "Dune", 100),
		rec("B", "dune", 100),
	}

	out := Dedupe(in)
	require.Len(t, out, 1)
	assert.Equal(t, "A", out[0].BookID)
}

func TestDedupe_DistinctTitlesUntouched(t *testing.T) {
	in := []domain.Recommendation{
		rec("A", "Dune", 100),
		rec("B", "Hyperion", 50),
		rec("C", "Ubik", 10),
	}

	out := Dedupe(in)
	assert.Len(t, out, 3)
	assert.Equal(t, "A", out[0].BookID)
	assert.Equal(t, "B", out[1].BookID)
	assert.Equal(t, "C", out[2].BookID)
}

func TestDedupe_UntitledEntriesNeverCollide(t *testing.T) {
	in := []domain.Recommendation{
		rec("A", "", 100),
		rec("B", "", 50),
	}

	out := Dedupe(in)
	assert.Len(t, out, 2)
}
