// Package pathgraph computes the union of all equal-length routes between
// two tables of a data model as a layered directed acyclic graph. Columns
// are discovery depths; an edge only ever connects column c to column c+1,
// which is what keeps the result acyclic.
package pathgraph

import (
	"fmt"

	"schemapath/internal/datamodel"
)

// EdgeType classifies a directed edge between two nodes.
type EdgeType int

const (
	// EdgeParent means the edge follows a reference to a parent table.
	EdgeParent EdgeType = iota
	// EdgeChild means the edge follows a reference to a child table.
	EdgeChild
	// EdgeAssociation is the generic classification, used for undirected
	// relationships and whenever conflicting classifications collide on the
	// same node pair.
	EdgeAssociation
)

func (t EdgeType) String() string {
	switch t {
	case EdgeParent:
		return "parent"
	case EdgeChild:
		return "child"
	default:
		return "association"
	}
}

// Node places one table at one column of a constructed graph. A graph holds
// at most one Node per table.
type Node struct {
	Table  *datamodel.Table
	Column int

	next map[*Node]bool
	prev map[*Node]bool
}

func newNode(table *datamodel.Table, column int) *Node {
	return &Node{
		Table:  table,
		Column: column,
		next:   make(map[*Node]bool),
		prev:   make(map[*Node]bool),
	}
}

func (n *Node) String() string {
	return fmt.Sprintf("%s:%d", n.Table.Name, n.Column)
}

// Next returns the outgoing neighbors of n.
func (n *Node) Next() []*Node {
	result := make([]*Node, 0, len(n.next))
	for m := range n.next {
		result = append(result, m)
	}
	return result
}

// Prev returns the incoming neighbors of n.
func (n *Node) Prev() []*Node {
	result := make([]*Node, 0, len(n.prev))
	for m := range n.prev {
		result = append(result, m)
	}
	return result
}

// CollectPrevClosure adds every table that reaches n, including n's own
// table, to closure. Tables already present in closure are not revisited.
func (n *Node) CollectPrevClosure(closure map[*datamodel.Table]bool) {
	n.collectClosure(closure, func(m *Node) map[*Node]bool { return m.prev })
}

// CollectNextClosure adds every table reachable from n, including n's own
// table, to closure.
func (n *Node) CollectNextClosure(closure map[*datamodel.Table]bool) {
	n.collectClosure(closure, func(m *Node) map[*Node]bool { return m.next })
}

// collectClosure walks neighbor links with an explicit work list so deep
// graphs cannot exhaust the call stack, guarded by the closure set itself.
func (n *Node) collectClosure(closure map[*datamodel.Table]bool, neighbors func(*Node) map[*Node]bool) {
	stack := []*Node{n}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if closure[cur.Table] {
			continue
		}
		closure[cur.Table] = true
		for next := range neighbors(cur) {
			stack = append(stack, next)
		}
	}
}

// PrevClosure returns the set of tables that reach n, including n's own.
func (n *Node) PrevClosure() map[*datamodel.Table]bool {
	closure := make(map[*datamodel.Table]bool)
	n.CollectPrevClosure(closure)
	return closure
}

// NextClosure returns the set of tables reachable from n, including n's own.
func (n *Node) NextClosure() map[*datamodel.Table]bool {
	closure := make(map[*datamodel.Table]bool)
	n.CollectNextClosure(closure)
	return closure
}

type edgeKey struct {
	from *Node
	to   *Node
}

// Edge is an enumerable view of one classified edge, used by renderers.
type Edge struct {
	From *Node
	To   *Node
	Type EdgeType
}

// Graph is the layered union of equal-length routes between a source and a
// destination table. It is immutable once New returns; an empty graph means
// no route exists.
type Graph struct {
	source      *datamodel.Table
	destination *datamodel.Table

	nodePerTable map[*datamodel.Table]*Node
	edgeTypes    map[edgeKey]EdgeType
}

// New constructs the path graph for the given query. The builder runs twice:
// the first pass discovers everything reachable from the source, the second
// pass reruns the same algorithm with every table that cannot reach the
// destination excluded, so the final layering and edge classification are
// exactly what the algorithm natively produces for the narrowed table set.
//
// Waypoints not present in the model are ignored, as are duplicates beyond
// the first occurrence. A waypoint that exists in the model but cannot be
// visited in order leaves the waypoint queue unconsumed; that is treated as
// "no route" and yields the empty graph.
func New(model *datamodel.DataModel, source, destination *datamodel.Table, excluded map[*datamodel.Table]bool, waypoints []*datamodel.Table) *Graph {
	g := &Graph{
		source:       source,
		destination:  destination,
		nodePerTable: make(map[*datamodel.Table]*Node),
		edgeTypes:    make(map[edgeKey]EdgeType),
	}

	stations := make([]*datamodel.Table, 0, len(waypoints))
	seen := make(map[*datamodel.Table]bool, len(waypoints))
	for _, w := range waypoints {
		if !model.Contains(w) || seen[w] {
			continue
		}
		seen[w] = true
		stations = append(stations, w)
	}

	unconsumed := g.build(excluded, stations)
	destNode := g.nodePerTable[destination]
	if destNode == nil {
		g.reset()
		return g
	}

	destClosure := make(map[*datamodel.Table]bool)
	destNode.CollectPrevClosure(destClosure)

	narrowed := make(map[*datamodel.Table]bool, model.Size())
	for _, t := range model.Tables() {
		if !destClosure[t] {
			narrowed[t] = true
		}
	}
	for t, ok := range excluded {
		if ok {
			narrowed[t] = true
		}
	}

	unconsumed += g.build(narrowed, stations)
	if unconsumed > 0 {
		g.reset()
	}
	return g
}

// build runs one frontier-expansion pass and returns the number of required
// waypoints left unconsumed when the frontier emptied.
func (g *Graph) build(excluded map[*datamodel.Table]bool, waypoints []*datamodel.Table) int {
	g.reset()

	column := 0
	current := map[*datamodel.Table]bool{g.source: true}
	g.nodePerTable[g.source] = newNode(g.source, column)

	stations := make([]*datamodel.Table, 0, len(waypoints))
	for _, w := range waypoints {
		if w == g.source || w == g.destination || excluded[w] {
			continue
		}
		stations = append(stations, w)
	}

	for len(current) > 0 {
		// A due waypoint collapses the frontier: every surviving route must
		// pass through it, so all other frontier members stop expanding.
		if len(stations) > 0 && current[stations[0]] {
			current = map[*datamodel.Table]bool{stations[0]: true}
			stations = stations[1:]
		}

		next := make(map[*datamodel.Table]bool)
		for table := range current {
			node := g.nodePerTable[table]
			for _, a := range table.Associations {
				if a.Ignored {
					continue
				}
				target := a.Destination
				if excluded[target] {
					continue
				}
				targetNode := g.nodePerTable[target]
				if targetNode != nil && targetNode.Column != column+1 {
					// Linking would break strict column progression; cycles
					// and cross-column shortcuts are dropped here.
					continue
				}
				next[target] = true
				if targetNode == nil {
					targetNode = newNode(target, column+1)
					g.nodePerTable[target] = targetNode
				}

				edgeType := EdgeAssociation
				if a.DestinationBeforeSource() {
					edgeType = EdgeParent
				} else if a.SourceBeforeDestination() {
					edgeType = EdgeChild
				}
				key := edgeKey{from: node, to: targetNode}
				if old, ok := g.edgeTypes[key]; ok && old != edgeType {
					edgeType = EdgeAssociation
				}
				g.edgeTypes[key] = edgeType

				node.next[targetNode] = true
				targetNode.prev[node] = true
			}
		}
		column++
		current = next
	}
	return len(stations)
}

func (g *Graph) reset() {
	g.nodePerTable = make(map[*datamodel.Table]*Node)
	g.edgeTypes = make(map[edgeKey]EdgeType)
}

// Source returns the query's source table.
func (g *Graph) Source() *datamodel.Table {
	return g.source
}

// Destination returns the query's destination table.
func (g *Graph) Destination() *datamodel.Table {
	return g.destination
}

// IsEmpty reports whether no route exists between source and destination.
func (g *Graph) IsEmpty() bool {
	return len(g.nodePerTable) == 0
}

// NodeOf returns the node of a given table, or nil if the table is not part
// of any route.
func (g *Graph) NodeOf(table *datamodel.Table) *Node {
	return g.nodePerTable[table]
}

// NodesAt returns all nodes at a given column. Order is unspecified; callers
// needing a stable order must sort.
func (g *Graph) NodesAt(column int) []*Node {
	var result []*Node
	for _, n := range g.nodePerTable {
		if n.Column == column {
			result = append(result, n)
		}
	}
	return result
}

// Nodes returns every node of the graph in unspecified order.
func (g *Graph) Nodes() []*Node {
	result := make([]*Node, 0, len(g.nodePerTable))
	for _, n := range g.nodePerTable {
		result = append(result, n)
	}
	return result
}

// EdgeTypeOf returns the classification of the edge from one node to
// another. The second result is false when no such edge exists.
func (g *Graph) EdgeTypeOf(from, to *Node) (EdgeType, bool) {
	t, ok := g.edgeTypes[edgeKey{from: from, to: to}]
	return t, ok
}

// Edges returns every classified edge in unspecified order.
func (g *Graph) Edges() []Edge {
	result := make([]Edge, 0, len(g.edgeTypes))
	for key, t := range g.edgeTypes {
		result = append(result, Edge{From: key.from, To: key.to, Type: t})
	}
	return result
}

// MaxColumn returns the highest column index present, or -1 for the empty
// graph.
func (g *Graph) MaxColumn() int {
	max := -1
	for _, n := range g.nodePerTable {
		if n.Column > max {
			max = n.Column
		}
	}
	return max
}
