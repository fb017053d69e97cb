package search

import (
	"context"
	"fmt"
	"strings"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/search/query"
)

// Suggestion is one typeahead hit.
type Suggestion struct {
	BookID  string  `json:"book_id"`
	Title   string  `json:"title"`
	Genre   string  `json:"genre,omitempty"`
	PubYear int     `json:"pub_year,omitempty"`
	Score   float64 `json:"score"`
}

// Suggest returns typeahead completions for a partial title. Exact word
// matches rank above prefix completions, which rank above fuzzy matches
// for typo tolerance.
func (s *Index) Suggest(ctx context.Context, prefix string, limit int) ([]Suggestion, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		return []Suggestion{}, nil
	}
	if limit <= 0 {
		limit = 10
	}

	var queries []query.Query

	titleMatch := bleve.NewMatchQuery(prefix)
	titleMatch.SetField("title")
	titleMatch.SetBoost(3.0)
	queries = append(queries, titleMatch)

	prefixQuery := bleve.NewPrefixQuery(strings.ToLower(prefix))
	prefixQuery.SetField("title")
	prefixQuery.SetBoost(1.5)
	queries = append(queries, prefixQuery)

	if len(prefix) >= 3 {
		fuzzyQuery := bleve.NewFuzzyQuery(prefix)
		fuzzyQuery.SetFuzziness(1)
		fuzzyQuery.SetField("title")
		fuzzyQuery.SetBoost(0.5)
		queries = append(queries, fuzzyQuery)
	}

	request := bleve.NewSearchRequestOptions(bleve.NewDisjunctionQuery(queries...), limit, 0, false)
	request.Fields = []string{"title", "genre", "pub_year"}

	result, err := s.index.SearchInContext(ctx, request)
	if err != nil {
		return nil, fmt.Errorf("execute suggest query: %w", err)
	}

	suggestions := make([]Suggestion, 0, len(result.Hits))
	for _, hit := range result.Hits {
		suggestion := Suggestion{
			BookID: hit.ID,
			Score:  hit.Score,
		}
		if t, ok := hit.Fields["title"].(string); ok {
			suggestion.Title = t
		}
		if g, ok := hit.Fields["genre"].(string); ok {
			suggestion.Genre = g
		}
		if y, ok := hit.Fields["pub_year"].(float64); ok {
			suggestion.PubYear = int(y)
		}
		suggestions = append(suggestions, suggestion)
	}
	return suggestions, nil
}
