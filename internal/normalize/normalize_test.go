package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDedupeKey(t *testing.T) {
	tests := []struct {
		name       string
		title      string
		titleClean string
		bookID     string
		want       string
	}{
		{
			name:       "prefers series-free title",
			title:      "The Hobbit (Middle-earth, #1)",
			titleClean: "The Hobbit",
			bookID:     "b1",
			want:       "the hobbit",
		},
		{
			name:   "falls back to title",
			title:  "Dune",
			bookID: "b2",
			want:   "dune",
		},
		{
			name:       "cuts subtitle at colon",
			titleClean: "Foo: A Memoir",
			bookID:     "b3",
			want:       "foo",
		},
		{
			name:       "cuts dashed subtitle",
			titleClean: "Dune - Deluxe Edition",
			bookID:     "b4",
			want:       "dune",
		},
		{
			name:       "cuts parenthetical",
			titleClean: "Dune (40th Anniversary)",
			bookID:     "b5",
			want:       "dune",
		},
		{
			name:       "leading marker kept whole",
			titleClean: "(untitled)",
			bookID:     "b6",
			want:       "(untitled)",
		},
		{
			name:       "folds diacritics",
			titleClean: "Les Misérables",
			bookID:     "b7",
			want:       "les miserables",
		},
		{
			name:   "empty title falls back to book id",
			bookID: "b8",
			want:   "b8",
		},
		{
			name:       "whitespace only falls back to book id",
			titleClean: "   ",
			bookID:     "b9",
			want:       "b9",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DedupeKey(tt.title, tt.titleClean, tt.bookID)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDedupeKey_SubtitleVariantsCollapse(t *testing.T) {
	a := DedupeKey("", "Foo: A Memoir", "A")
	b := DedupeKey("foo", "", "B")
	assert.Equal(t, a, b)
}

func TestQuery(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"plain", "the hobbit", "the hobbit"},
		{"strips lucene operators", `harry +potter -azkaban`, "harry potter azkaban"},
		{"strips grouping and wildcards", `(dune*) OR "arrakis?"`, "dune OR arrakis"},
		{"strips colons and slashes", "sci-fi: a/b", "sci fi a b"},
		{"collapses whitespace", "  a    b  ", "a b"},
		{"empty", "", ""},
		{"only specials", `+-!(){}[]^"~*?:\/`, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Query(tt.raw))
		})
	}
}
