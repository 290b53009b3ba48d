package knowledge

import (
	"context"

	"schemapath/internal/pathgraph"
)

// Summarizer defines the interface for generating natural-language analysis
// of a path graph.
type Summarizer interface {
	// ExplainRoutes describes every table and relationship on the routes
	// between the graph's source and destination.
	ExplainRoutes(ctx context.Context, graph *pathgraph.Graph) (string, error)
	// ExplainImpact describes what a change to the given table would touch.
	ExplainImpact(ctx context.Context, table string, ancestors, descendants []string) (string, error)
}
