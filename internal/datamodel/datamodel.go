// Package datamodel holds the relational schema: tables and the directed,
// typed associations between them. It is the input side of the path
// computation; path construction itself lives in internal/pathgraph.
package datamodel

import "fmt"

// AssociationKind classifies how the two ends of an association depend on
// each other for insert ordering.
type AssociationKind int

const (
	// KindPlain is an undirected relationship, typically a join table.
	KindPlain AssociationKind = iota
	// KindToParent points at a referenced table: the destination row must
	// exist before the source row (a foreign key held by the source).
	KindToParent
	// KindToChild is the reversal of KindToParent.
	KindToChild
)

func (k AssociationKind) String() string {
	switch k {
	case KindToParent:
		return "parent"
	case KindToChild:
		return "child"
	default:
		return "association"
	}
}

// ParseKind converts the serialized form back into an AssociationKind.
func ParseKind(s string) (AssociationKind, error) {
	switch s {
	case "parent":
		return KindToParent, nil
	case "child":
		return KindToChild, nil
	case "association", "":
		return KindPlain, nil
	}
	return KindPlain, fmt.Errorf("unknown association kind %q", s)
}

// Association is a directed link from one table to another.
type Association struct {
	Source      *Table
	Destination *Table
	Kind        AssociationKind
	Ignored     bool

	// Reversal is the opposite direction of the same relationship, set when
	// both directions were materialized together via Connect.
	Reversal *Association
}

// DestinationBeforeSource reports whether the destination row must be
// inserted before the source row.
func (a *Association) DestinationBeforeSource() bool {
	return a.Kind == KindToParent
}

// SourceBeforeDestination reports whether the source row must be inserted
// before the destination row.
func (a *Association) SourceBeforeDestination() bool {
	return a.Kind == KindToChild
}

// Table is a named entity in the schema. Identity is the pointer: a
// DataModel holds exactly one Table per name, so tables compare with ==.
type Table struct {
	Name         string
	Associations []*Association
}

func (t *Table) String() string {
	return t.Name
}

// DataModel is the registry of all tables in one schema.
type DataModel struct {
	tables map[string]*Table
	order  []string
}

// New creates an empty data model.
func New() *DataModel {
	return &DataModel{tables: make(map[string]*Table)}
}

// AddTable returns the table with the given name, creating it if needed.
func (m *DataModel) AddTable(name string) *Table {
	if t, ok := m.tables[name]; ok {
		return t
	}
	t := &Table{Name: name}
	m.tables[name] = t
	m.order = append(m.order, name)
	return t
}

// Table looks up a table by name. Returns nil if the name is unknown.
func (m *DataModel) Table(name string) *Table {
	return m.tables[name]
}

// Contains reports whether t belongs to this model.
func (m *DataModel) Contains(t *Table) bool {
	if t == nil {
		return false
	}
	return m.tables[t.Name] == t
}

// Tables enumerates all tables in registration order.
func (m *DataModel) Tables() []*Table {
	result := make([]*Table, 0, len(m.order))
	for _, name := range m.order {
		result = append(result, m.tables[name])
	}
	return result
}

// Size returns the number of tables.
func (m *DataModel) Size() int {
	return len(m.tables)
}

// AddAssociation registers a single directed association. Source and
// destination tables are created on demand.
func (m *DataModel) AddAssociation(source, destination string, kind AssociationKind, ignored bool) *Association {
	a := &Association{
		Source:      m.AddTable(source),
		Destination: m.AddTable(destination),
		Kind:        kind,
		Ignored:     ignored,
	}
	a.Source.Associations = append(a.Source.Associations, a)
	return a
}

// Connect registers a relationship together with its reversal, so the graph
// can be walked in both directions. A KindToParent association reverses to
// KindToChild and vice versa; KindPlain reverses to itself.
func (m *DataModel) Connect(source, destination string, kind AssociationKind, ignored bool) *Association {
	a := m.AddAssociation(source, destination, kind, ignored)
	b := m.AddAssociation(destination, source, reverseKind(kind), ignored)
	a.Reversal = b
	b.Reversal = a
	return a
}

func reverseKind(kind AssociationKind) AssociationKind {
	switch kind {
	case KindToParent:
		return KindToChild
	case KindToChild:
		return KindToParent
	default:
		return KindPlain
	}
}
