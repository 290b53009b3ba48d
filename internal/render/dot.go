package render

import (
	"fmt"
	"sort"
	"strings"

	"schemapath/internal/pathgraph"
)

// DOT renders the graph in Graphviz dot format. Nodes of one column share a
// rank so the layout mirrors the frontier layering.
func DOT(g *pathgraph.Graph) string {
	var sb strings.Builder
	sb.WriteString("digraph pathgraph {\n")
	sb.WriteString("    rankdir=LR;\n")
	sb.WriteString("    node [shape=box];\n")

	if !g.IsEmpty() {
		for column := 0; column <= g.MaxColumn(); column++ {
			nodes := g.NodesAt(column)
			if len(nodes) == 0 {
				continue
			}
			names := make([]string, 0, len(nodes))
			for _, n := range nodes {
				names = append(names, n.Table.Name)
			}
			sort.Strings(names)

			fmt.Fprintf(&sb, "    { rank=same;")
			for _, name := range names {
				fmt.Fprintf(&sb, " %q;", name)
			}
			sb.WriteString(" }\n")
		}

		for _, e := range sortedEdges(g) {
			attrs := ""
			switch e.Type {
			case pathgraph.EdgeParent:
				attrs = ` [label="parent"]`
			case pathgraph.EdgeChild:
				attrs = ` [label="child"]`
			default:
				attrs = ` [style=dashed]`
			}
			fmt.Fprintf(&sb, "    %q -> %q%s;\n", e.From.Table.Name, e.To.Table.Name, attrs)
		}
	}

	sb.WriteString("}\n")
	return sb.String()
}
