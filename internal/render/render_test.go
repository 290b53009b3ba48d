package render

import (
	"encoding/json"
	"testing"

	"schemapath/internal/datamodel"
	"schemapath/internal/pathgraph"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildGraph(t *testing.T) (*datamodel.DataModel, *pathgraph.Graph) {
	t.Helper()
	m := datamodel.New()
	m.AddAssociation("orders", "customers", datamodel.KindToParent, false)
	m.AddAssociation("customers", "regions", datamodel.KindToParent, false)

	g := pathgraph.New(m, m.Table("orders"), m.Table("regions"), nil, nil)
	require.False(t, g.IsEmpty())
	return m, g
}

func TestMermaid(t *testing.T) {
	_, g := buildGraph(t)
	out := Mermaid(g)

	assert.Contains(t, out, "graph LR")
	assert.Contains(t, out, `orders["orders"]`)
	assert.Contains(t, out, `customers["customers"]`)
	assert.Contains(t, out, "orders -->|parent| customers")
	assert.Contains(t, out, "customers -->|parent| regions")
}

func TestMermaid_Empty(t *testing.T) {
	m := datamodel.New()
	m.AddTable("a")
	m.AddTable("b")
	g := pathgraph.New(m, m.Table("a"), m.Table("b"), nil, nil)
	require.True(t, g.IsEmpty())

	out := Mermaid(g)
	assert.Contains(t, out, "no route from a to b")
}

func TestDOT(t *testing.T) {
	_, g := buildGraph(t)
	out := DOT(g)

	assert.Contains(t, out, "digraph pathgraph {")
	assert.Contains(t, out, `{ rank=same; "orders"; }`)
	assert.Contains(t, out, `{ rank=same; "customers"; }`)
	assert.Contains(t, out, `"orders" -> "customers" [label="parent"];`)
}

func TestJSON(t *testing.T) {
	_, g := buildGraph(t)
	out, err := JSON(g)
	require.NoError(t, err)

	var decoded struct {
		Source      string `json:"source"`
		Destination string `json:"destination"`
		Empty       bool   `json:"empty"`
		Columns     int    `json:"columns"`
		Nodes       []struct {
			Table  string `json:"table"`
			Column int    `json:"column"`
		} `json:"nodes"`
		Edges []struct {
			From string `json:"from"`
			To   string `json:"to"`
			Type string `json:"type"`
		} `json:"edges"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))

	assert.Equal(t, "orders", decoded.Source)
	assert.Equal(t, "regions", decoded.Destination)
	assert.False(t, decoded.Empty)
	assert.Equal(t, 3, decoded.Columns)
	require.Len(t, decoded.Nodes, 3)
	assert.Equal(t, "orders", decoded.Nodes[0].Table)
	assert.Equal(t, 0, decoded.Nodes[0].Column)
	require.Len(t, decoded.Edges, 2)
	assert.Equal(t, "parent", decoded.Edges[0].Type)
}

func TestRender_UnknownFormat(t *testing.T) {
	_, g := buildGraph(t)
	_, err := Render(g, Format("svg"))
	assert.Error(t, err)
}
