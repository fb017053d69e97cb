package domain

// Strategy identifies a recommendation approach.
type Strategy string

// Recommendation strategies.
const (
	StrategyGraph         Strategy = "graph"
	StrategyShelf         Strategy = "shelf"
	StrategyCollaborative Strategy = "collaborative"
	StrategyHybrid        Strategy = "hybrid"
)

// Valid reports whether s names a known strategy.
func (s Strategy) Valid() bool {
	switch s {
	case StrategyGraph, StrategyShelf, StrategyCollaborative, StrategyHybrid:
		return true
	}
	return false
}

// Recommendation is a scored candidate book produced by a strategy.
// Score semantics depend on the strategy: path counts for graph walks,
// shared-shelf counts for shelf overlap, co-reader counts for
// collaborative, and a normalized weighted blend for hybrid.
type Recommendation struct {
	Book
	Score    float64  `json:"score"`
	Strategy Strategy `json:"strategy"`
}
