package domain

// Shelf is a reader-curated shelf attached to a book, with the number of
// readers who shelved the book there.
type Shelf struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}
