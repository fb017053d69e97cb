package recommend

import (
	"github.com/bookfinder/bookfinder-server/internal/domain"
	"github.com/bookfinder/bookfinder-server/internal/normalize"
)

// Dedupe collapses entries that are editions of the same work, keyed on the
// normalized title. The surviving entry keeps the position of the first
// occurrence; a later duplicate replaces it in place only when it has a
// strictly higher ratings count, so the better-known edition wins without
// reshuffling the ranking.
func Dedupe(recs []domain.Recommendation) []domain.Recommendation {
	if len(recs) < 2 {
		return recs
	}

	positions := make(map[string]int, len(recs))
	out := make([]domain.Recommendation, 0, len(recs))

	for _, rec := range recs {
		key := normalize.DedupeKey(rec.Title, rec.TitleClean, rec.BookID)
		if pos, seen := positions[key]; seen {
			if rec.RatingsCount > out[pos].RatingsCount {
				out[pos] = rec
			}
			continue
		}
		positions[key] = len(out)
		out = append(out, rec)
	}
	return out
}
