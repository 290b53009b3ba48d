// Package analysis answers impact questions over a constructed path graph.
package analysis

import (
	"fmt"
	"sort"

	"schemapath/internal/datamodel"
	"schemapath/internal/pathgraph"
)

// ImpactReport lists the tables upstream and downstream of a selected table
// within one path graph.
type ImpactReport struct {
	Table       *datamodel.Table
	Ancestors   []*pathgraph.Node
	Descendants []*pathgraph.Node
}

// Analyzer performs impact analysis on a path graph.
type Analyzer struct {
	g *pathgraph.Graph
}

// NewAnalyzer creates a new analyzer.
func NewAnalyzer(g *pathgraph.Graph) *Analyzer {
	return &Analyzer{g: g}
}

// AnalyzeTable computes the ancestor and descendant sets of the given table.
// The table itself is part of neither set.
func (a *Analyzer) AnalyzeTable(table *datamodel.Table) (*ImpactReport, error) {
	node := a.g.NodeOf(table)
	if node == nil {
		return nil, fmt.Errorf("table %s is not on any route between %s and %s",
			table.Name, a.g.Source().Name, a.g.Destination().Name)
	}

	report := &ImpactReport{Table: table}
	for t := range node.PrevClosure() {
		if t == table {
			continue
		}
		report.Ancestors = append(report.Ancestors, a.g.NodeOf(t))
	}
	for t := range node.NextClosure() {
		if t == table {
			continue
		}
		report.Descendants = append(report.Descendants, a.g.NodeOf(t))
	}

	sortNodes(report.Ancestors)
	sortNodes(report.Descendants)
	return report, nil
}

func sortNodes(nodes []*pathgraph.Node) {
	sort.Slice(nodes, func(i, j int) bool {
		if nodes[i].Column == nodes[j].Column {
			return nodes[i].Table.Name < nodes[j].Table.Name
		}
		return nodes[i].Column < nodes[j].Column
	})
}
