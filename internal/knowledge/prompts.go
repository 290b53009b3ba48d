package knowledge

import (
	"fmt"
	"sort"
	"strings"

	"schemapath/internal/pathgraph"
)

// PromptBuilder constructs standardized prompts for the different analysis
// commands.
type PromptBuilder struct{}

func (pb *PromptBuilder) BuildExplainRoutesPrompt(graph *pathgraph.Graph) string {
	var sb strings.Builder
	sb.WriteString("Role: Database Architect. Task: Explain the join routes between two tables to a developer unfamiliar with the schema.\n\n")
	fmt.Fprintf(&sb, "Source table: %s\nDestination table: %s\n\n", graph.Source().Name, graph.Destination().Name)

	sb.WriteString("Tables on the routes, by distance from the source:\n")
	for column := 0; column <= graph.MaxColumn(); column++ {
		names := make([]string, 0)
		for _, node := range graph.NodesAt(column) {
			names = append(names, node.Table.Name)
		}
		sort.Strings(names)
		fmt.Fprintf(&sb, "- step %d: %s\n", column, strings.Join(names, ", "))
	}

	sb.WriteString("\nRelationships:\n")
	edges := graph.Edges()
	sort.Slice(edges, func(i, j int) bool {
		if edges[i].From.Table.Name != edges[j].From.Table.Name {
			return edges[i].From.Table.Name < edges[j].From.Table.Name
		}
		return edges[i].To.Table.Name < edges[j].To.Table.Name
	})
	for _, edge := range edges {
		fmt.Fprintf(&sb, "- %s -> %s (%s)\n", edge.From.Table.Name, edge.To.Table.Name, edgeTypeName(edge.Type))
	}

	sb.WriteString("\n**INSTRUCTION**:\n")
	sb.WriteString("1. Summarize in one paragraph how the source connects to the destination.\n")
	sb.WriteString("2. For each route, explain the role of the intermediate tables.\n")
	sb.WriteString("3. Point out which joins follow foreign keys toward parents and which fan out to children.\n")

	return sb.String()
}

func (pb *PromptBuilder) BuildExplainImpactPrompt(table string, ancestors, descendants []string) string {
	var sb strings.Builder
	sb.WriteString("Role: Database Architect. Task: Explain the blast radius of changing a table.\n\n")
	fmt.Fprintf(&sb, "Table under change: %s\n", table)
	fmt.Fprintf(&sb, "Tables feeding into it: %s\n", strings.Join(ancestors, ", "))
	fmt.Fprintf(&sb, "Tables depending on it: %s\n\n", strings.Join(descendants, ", "))

	sb.WriteString("**INSTRUCTION**:\n")
	sb.WriteString("1. Describe in plain language what a schema change to this table would affect.\n")
	sb.WriteString("2. Call out the riskiest downstream tables and why.\n")

	return sb.String()
}

func edgeTypeName(t pathgraph.EdgeType) string {
	switch t {
	case pathgraph.EdgeParent:
		return "foreign key to parent"
	case pathgraph.EdgeChild:
		return "referenced by child"
	default:
		return "association"
	}
}
