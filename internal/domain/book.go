// Package domain contains the core business entities for the BookFinder catalog graph.
package domain

// Book represents a book node in the catalog graph.
type Book struct {
	BookID        string  `json:"book_id"`
	Title         string  `json:"title"`
	TitleClean    string  `json:"title_clean,omitempty"`
	Description   string  `json:"description,omitempty"`
	AverageRating float64 `json:"average_rating"`
	RatingsCount  int64   `json:"ratings_count"`
	NumPages      int     `json:"num_pages,omitempty"`
	Publisher     string  `json:"publisher,omitempty"`
	PubYear       int     `json:"pub_year,omitempty"`
	ImageURL      string  `json:"image_url,omitempty"`
	URL           string  `json:"url,omitempty"`
	WorkID        string  `json:"work_id,omitempty"`
	ISBN          string  `json:"isbn,omitempty"`
	ISBN13        string  `json:"isbn13,omitempty"`
	ASIN          string  `json:"asin,omitempty"`
	Genre         string  `json:"genre,omitempty"`
}

// DisplayTitle returns the series-free title when available.
func (b *Book) DisplayTitle() string {
	if b.TitleClean != "" {
		return b.TitleClean
	}
	return b.Title
}

// BookDetail is a book together with its immediate graph context.
type BookDetail struct {
	Book
	Authors   []AuthorRef `json:"authors"`
	Shelves   []Shelf     `json:"shelves"`
	SeriesIDs []string    `json:"series_ids"`
}

// SearchHit is a book with its full-text relevance score.
type SearchHit struct {
	Book
	Score float64 `json:"score"`
}

// AuthorRef is an author as attached to a specific book.
type AuthorRef struct {
	AuthorID string `json:"author_id"`
	Name     string `json:"name,omitempty"`
	Role     string `json:"role,omitempty"`
}

// Review is a reader review attached to a book.
type Review struct {
	ReviewID  string `json:"review_id"`
	UserID    string `json:"user_id"`
	Rating    int    `json:"rating"`
	Text      string `json:"text,omitempty"`
	NVotes    int    `json:"n_votes"`
	NComments int    `json:"n_comments"`
	DateAdded string `json:"date_added,omitempty"`
}
