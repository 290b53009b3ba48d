// Package render turns a constructed path graph into diagram and data
// formats for downstream visualization.
package render

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"schemapath/internal/pathgraph"
)

// Format names an output format.
type Format string

const (
	FormatMermaid Format = "mermaid"
	FormatDOT     Format = "dot"
	FormatJSON    Format = "json"
)

// Render produces the graph in the requested format.
func Render(g *pathgraph.Graph, format Format) (string, error) {
	switch format {
	case FormatMermaid:
		return Mermaid(g), nil
	case FormatDOT:
		return DOT(g), nil
	case FormatJSON:
		return JSON(g)
	}
	return "", fmt.Errorf("unsupported format: %s", format)
}

// sortedNodes returns all nodes ordered by column, then name.
func sortedNodes(g *pathgraph.Graph) []*pathgraph.Node {
	nodes := g.Nodes()
	sort.Slice(nodes, func(i, j int) bool {
		if nodes[i].Column == nodes[j].Column {
			return nodes[i].Table.Name < nodes[j].Table.Name
		}
		return nodes[i].Column < nodes[j].Column
	})
	return nodes
}

// sortedEdges returns all edges ordered by source, then target.
func sortedEdges(g *pathgraph.Graph) []pathgraph.Edge {
	edges := g.Edges()
	sort.Slice(edges, func(i, j int) bool {
		if edges[i].From.Table.Name == edges[j].From.Table.Name {
			return edges[i].To.Table.Name < edges[j].To.Table.Name
		}
		return edges[i].From.Table.Name < edges[j].From.Table.Name
	})
	return edges
}

var idPattern = regexp.MustCompile(`[^a-z0-9_]`)

func sanitizeID(v string) string {
	v = strings.TrimSpace(strings.ToLower(v))
	if v == "" {
		return "node"
	}
	v = idPattern.ReplaceAllString(strings.ReplaceAll(v, "-", "_"), "_")
	if v == "" {
		return "node"
	}
	if v[0] >= '0' && v[0] <= '9' {
		v = "n_" + v
	}
	return v
}
