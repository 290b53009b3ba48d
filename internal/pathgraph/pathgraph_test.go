package pathgraph

import (
	"testing"

	"schemapath/internal/datamodel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGraph_DiamondRoutes(t *testing.T) {
	m := datamodel.New()
	m.AddAssociation("a", "b", datamodel.KindPlain, false)
	m.AddAssociation("b", "c", datamodel.KindPlain, false)
	m.AddAssociation("a", "c", datamodel.KindPlain, false)

	g := New(m, m.Table("a"), m.Table("c"), nil, nil)
	require.False(t, g.IsEmpty())

	t.Run("Layering", func(t *testing.T) {
		assert.Equal(t, 0, g.NodeOf(m.Table("a")).Column)
		assert.Equal(t, 1, g.NodeOf(m.Table("c")).Column)
	})

	t.Run("Detour pruned in second pass", func(t *testing.T) {
		// b and c share column 1, so b's edge to c violates strict column
		// progression and b never reaches the destination.
		assert.Nil(t, g.NodeOf(m.Table("b")))
		assert.Len(t, g.Edges(), 1)
	})
}

func TestGraph_CycleBecomesSingleEdge(t *testing.T) {
	m := datamodel.New()
	m.Connect("a", "b", datamodel.KindToParent, false)

	g := New(m, m.Table("a"), m.Table("b"), nil, nil)
	require.False(t, g.IsEmpty())

	a := g.NodeOf(m.Table("a"))
	b := g.NodeOf(m.Table("b"))
	require.NotNil(t, a)
	require.NotNil(t, b)

	assert.Equal(t, 0, a.Column)
	assert.Equal(t, 1, b.Column)
	assert.Len(t, g.Edges(), 1)
	assert.Empty(t, b.Next(), "the back edge b->a must be dropped")

	edgeType, ok := g.EdgeTypeOf(a, b)
	require.True(t, ok)
	assert.Equal(t, EdgeParent, edgeType)

	_, ok = g.EdgeTypeOf(b, a)
	assert.False(t, ok)
}

func TestGraph_ExclusionBlocksOnlyRoute(t *testing.T) {
	m := datamodel.New()
	m.AddAssociation("a", "b", datamodel.KindPlain, false)
	m.AddAssociation("b", "c", datamodel.KindPlain, false)

	excluded := map[*datamodel.Table]bool{m.Table("b"): true}
	g := New(m, m.Table("a"), m.Table("c"), excluded, nil)

	assert.True(t, g.IsEmpty())
	assert.Nil(t, g.NodeOf(m.Table("a")))
	assert.Empty(t, g.NodesAt(0))
	assert.Empty(t, g.Nodes())
	assert.Empty(t, g.Edges())
	assert.Equal(t, -1, g.MaxColumn())
}

func TestGraph_IgnoredAssociationNotFollowed(t *testing.T) {
	m := datamodel.New()
	m.AddAssociation("a", "b", datamodel.KindPlain, true)

	g := New(m, m.Table("a"), m.Table("b"), nil, nil)
	assert.True(t, g.IsEmpty())
}

func TestGraph_WaypointCollapsesFrontier(t *testing.T) {
	m := datamodel.New()
	m.AddAssociation("a", "b", datamodel.KindPlain, false)
	m.AddAssociation("a", "x", datamodel.KindPlain, false)
	m.AddAssociation("x", "c", datamodel.KindPlain, false)
	m.AddAssociation("b", "c", datamodel.KindPlain, false)

	g := New(m, m.Table("a"), m.Table("c"), nil, []*datamodel.Table{m.Table("x")})
	require.False(t, g.IsEmpty())

	// Once x becomes due at column 1 the frontier collapses to {x}; the b
	// branch is discarded even though b->c exists.
	assert.Nil(t, g.NodeOf(m.Table("b")))
	assert.Equal(t, 1, g.NodeOf(m.Table("x")).Column)
	assert.Equal(t, 2, g.NodeOf(m.Table("c")).Column)
	assert.Len(t, g.Edges(), 2)
}

func TestGraph_WaypointOrdering(t *testing.T) {
	m := datamodel.New()
	m.AddAssociation("a", "w1", datamodel.KindPlain, false)
	m.AddAssociation("w1", "b", datamodel.KindPlain, false)
	m.AddAssociation("b", "w2", datamodel.KindPlain, false)
	m.AddAssociation("w2", "c", datamodel.KindPlain, false)

	t.Run("In order", func(t *testing.T) {
		g := New(m, m.Table("a"), m.Table("c"), nil,
			[]*datamodel.Table{m.Table("w1"), m.Table("w2")})
		require.False(t, g.IsEmpty())

		w1 := g.NodeOf(m.Table("w1"))
		w2 := g.NodeOf(m.Table("w2"))
		require.NotNil(t, w1)
		require.NotNil(t, w2)
		assert.Less(t, w1.Column, w2.Column)
	})

	t.Run("Unsatisfiable order is no route", func(t *testing.T) {
		g := New(m, m.Table("a"), m.Table("c"), nil,
			[]*datamodel.Table{m.Table("w2"), m.Table("w1")})
		assert.True(t, g.IsEmpty())
	})
}

func TestGraph_ExcludedWaypointDroppedFromQueue(t *testing.T) {
	m := datamodel.New()
	m.AddAssociation("a", "b", datamodel.KindPlain, false)
	m.AddAssociation("a", "x", datamodel.KindPlain, false)
	m.AddAssociation("x", "c", datamodel.KindPlain, false)
	m.AddAssociation("b", "c", datamodel.KindPlain, false)

	// An excluded waypoint leaves the queue like an unknown one would; the
	// remaining routes avoid it.
	excluded := map[*datamodel.Table]bool{m.Table("x"): true}
	g := New(m, m.Table("a"), m.Table("c"), excluded,
		[]*datamodel.Table{m.Table("x")})

	require.False(t, g.IsEmpty())
	assert.Nil(t, g.NodeOf(m.Table("x")))
	assert.NotNil(t, g.NodeOf(m.Table("b")))
}

func TestGraph_WaypointListTolerance(t *testing.T) {
	m := datamodel.New()
	m.AddAssociation("a", "x", datamodel.KindPlain, false)
	m.AddAssociation("x", "c", datamodel.KindPlain, false)

	foreign := &datamodel.Table{Name: "x"}

	g := New(m, m.Table("a"), m.Table("c"), nil,
		[]*datamodel.Table{foreign, m.Table("x"), m.Table("x")})
	require.False(t, g.IsEmpty(), "unknown and duplicate waypoints are ignored")
	assert.Equal(t, 1, g.NodeOf(m.Table("x")).Column)
}

func TestGraph_ConflictDegradesToAssociation(t *testing.T) {
	m := datamodel.New()
	m.AddAssociation("a", "b", datamodel.KindToParent, false)
	m.AddAssociation("a", "b", datamodel.KindToChild, false)

	g := New(m, m.Table("a"), m.Table("b"), nil, nil)
	require.False(t, g.IsEmpty())

	edgeType, ok := g.EdgeTypeOf(g.NodeOf(m.Table("a")), g.NodeOf(m.Table("b")))
	require.True(t, ok)
	assert.Equal(t, EdgeAssociation, edgeType)
}

func TestGraph_SourceEqualsDestination(t *testing.T) {
	m := datamodel.New()
	m.Connect("a", "b", datamodel.KindToParent, false)

	g := New(m, m.Table("a"), m.Table("a"), nil, nil)
	require.False(t, g.IsEmpty())

	assert.Len(t, g.Nodes(), 1)
	assert.Equal(t, 0, g.NodeOf(m.Table("a")).Column)
	assert.Empty(t, g.Edges())
}

func TestGraph_Acyclic(t *testing.T) {
	m := datamodel.New()
	m.Connect("a", "b", datamodel.KindToParent, false)
	m.Connect("b", "c", datamodel.KindToParent, false)
	m.Connect("c", "a", datamodel.KindToParent, false)
	m.Connect("b", "d", datamodel.KindToChild, false)
	m.Connect("c", "d", datamodel.KindToChild, false)

	g := New(m, m.Table("a"), m.Table("d"), nil, nil)
	require.False(t, g.IsEmpty())

	// Every edge strictly advances the column, so following next links can
	// never revisit a node.
	for _, e := range g.Edges() {
		assert.Equal(t, e.From.Column+1, e.To.Column)
	}
}

func TestGraph_EveryNodeOnSomeRoute(t *testing.T) {
	m := datamodel.New()
	m.Connect("a", "b", datamodel.KindToParent, false)
	m.Connect("a", "x", datamodel.KindToParent, false)
	m.Connect("x", "y", datamodel.KindToParent, false)
	m.Connect("b", "c", datamodel.KindToParent, false)

	g := New(m, m.Table("a"), m.Table("c"), nil, nil)
	require.False(t, g.IsEmpty())

	// The x/y branch never reaches c, so the second pass removes it.
	assert.Nil(t, g.NodeOf(m.Table("x")))
	assert.Nil(t, g.NodeOf(m.Table("y")))

	source := g.NodeOf(m.Table("a"))
	dest := g.NodeOf(m.Table("c"))
	require.NotNil(t, source)
	require.NotNil(t, dest)

	forward := source.NextClosure()
	backward := dest.PrevClosure()
	for _, n := range g.Nodes() {
		assert.True(t, forward[n.Table], "%s must be reachable from the source", n)
		assert.True(t, backward[n.Table], "%s must reach the destination", n)
	}
}

func TestNode_Closures(t *testing.T) {
	m := datamodel.New()
	m.AddAssociation("a", "b", datamodel.KindPlain, false)
	m.AddAssociation("b", "c", datamodel.KindPlain, false)

	g := New(m, m.Table("a"), m.Table("c"), nil, nil)
	require.False(t, g.IsEmpty())

	b := g.NodeOf(m.Table("b"))
	require.NotNil(t, b)

	next := b.NextClosure()
	assert.True(t, next[m.Table("b")])
	assert.True(t, next[m.Table("c")])
	assert.False(t, next[m.Table("a")])

	prev := b.PrevClosure()
	assert.True(t, prev[m.Table("a")])
	assert.True(t, prev[m.Table("b")])
	assert.False(t, prev[m.Table("c")])
}
