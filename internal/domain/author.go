package domain

// Author represents an author node. Nodes are created identity-only during
// book ingestion; name and rating metadata arrive in a later enrichment pass,
// so every field except the ID may be empty.
type Author struct {
	AuthorID      string  `json:"author_id"`
	Name          string  `json:"name,omitempty"`
	AverageRating float64 `json:"average_rating,omitempty"`
	RatingsCount  int64   `json:"ratings_count,omitempty"`
}
