package domain

// Series represents a series node. The corpus only carries series IDs on
// books, so a series has no metadata beyond its identity.
type Series struct {
	SeriesID string `json:"series_id"`
}
