package render

import (
	"fmt"
	"strings"

	"schemapath/internal/pathgraph"
)

// Mermaid renders the graph as a mermaid flow chart, left to right so the
// columns read as route progress. Parent and child edges are solid and
// labeled; generic associations are dotted.
func Mermaid(g *pathgraph.Graph) string {
	var sb strings.Builder
	sb.WriteString("```mermaid\n")
	sb.WriteString("graph LR\n")

	if g.IsEmpty() {
		fmt.Fprintf(&sb, "    empty[\"no route from %s to %s\"]\n", g.Source().Name, g.Destination().Name)
		sb.WriteString("```\n")
		return sb.String()
	}

	for _, n := range sortedNodes(g) {
		fmt.Fprintf(&sb, "    %s[%q]\n", sanitizeID(n.Table.Name), n.Table.Name)
	}

	for _, e := range sortedEdges(g) {
		from := sanitizeID(e.From.Table.Name)
		to := sanitizeID(e.To.Table.Name)
		switch e.Type {
		case pathgraph.EdgeParent:
			fmt.Fprintf(&sb, "    %s -->|parent| %s\n", from, to)
		case pathgraph.EdgeChild:
			fmt.Fprintf(&sb, "    %s -->|child| %s\n", from, to)
		default:
			fmt.Fprintf(&sb, "    %s -.-> %s\n", from, to)
		}
	}

	sb.WriteString("```\n")
	return sb.String()
}
