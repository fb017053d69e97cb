package domain

// Genre is a corpus segment loaded into the graph, e.g. "young_adult".
type Genre struct {
	Key       string `json:"key"`
	Name      string `json:"name"`
	BookCount int64  `json:"book_count"`
}
