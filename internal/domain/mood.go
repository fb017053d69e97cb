package domain

// Mood is a curated reading mood backed by a set of shelf names.
type Mood struct {
	Key         string   `json:"key"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Color       string   `json:"color"`
	Shelves     []string `json:"shelves"`
}
