package domain

// Node colors used by the visualization endpoints.
const (
	ColorBook   = "#4A90D9"
	ColorAuthor = "#E8913A"
	ColorShelf  = "#5CB85C"
	ColorSeries = "#9B59B6"
	ColorUser   = "#95A5A6"
	ColorEdge   = "#CCCCCC"
)

// GraphNode is a node in a visualization subgraph. IDs are prefixed with
// the node type ("book_", "author_", ...) so mixed-type graphs stay unique.
type GraphNode struct {
	ID    string  `json:"id"`
	Label string  `json:"label"`
	Type  string  `json:"type"`
	Color string  `json:"color"`
	Size  float64 `json:"size,omitempty"`
}

// GraphEdge is a directed edge between two visualization nodes.
type GraphEdge struct {
	Source string `json:"source"`
	Target string `json:"target"`
	Type   string `json:"type"`
	Color  string `json:"color"`
}

// Graph is a renderable subgraph centered on some entity.
type Graph struct {
	Nodes []GraphNode `json:"nodes"`
	Edges []GraphEdge `json:"edges"`
}
