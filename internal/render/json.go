package render

import (
	"bytes"
	"encoding/json"
	"fmt"

	"schemapath/internal/pathgraph"
)

// jsonGraph is the serialized shape consumed by visualization frontends.
type jsonGraph struct {
	Source      string     `json:"source"`
	Destination string     `json:"destination"`
	Empty       bool       `json:"empty"`
	Columns     int        `json:"columns"`
	Nodes       []jsonNode `json:"nodes"`
	Edges       []jsonEdge `json:"edges"`
}

type jsonNode struct {
	Table  string `json:"table"`
	Column int    `json:"column"`
}

type jsonEdge struct {
	From string `json:"from"`
	To   string `json:"to"`
	Type string `json:"type"`
}

// JSON renders the graph as indented JSON with deterministic ordering.
func JSON(g *pathgraph.Graph) (string, error) {
	out := jsonGraph{
		Source:      g.Source().Name,
		Destination: g.Destination().Name,
		Empty:       g.IsEmpty(),
		Columns:     g.MaxColumn() + 1,
		Nodes:       []jsonNode{},
		Edges:       []jsonEdge{},
	}

	for _, n := range sortedNodes(g) {
		out.Nodes = append(out.Nodes, jsonNode{Table: n.Table.Name, Column: n.Column})
	}
	for _, e := range sortedEdges(g) {
		out.Edges = append(out.Edges, jsonEdge{
			From: e.From.Table.Name,
			To:   e.To.Table.Name,
			Type: e.Type.String(),
		})
	}

	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(out); err != nil {
		return "", fmt.Errorf("failed to encode graph: %w", err)
	}
	return buf.String(), nil
}
