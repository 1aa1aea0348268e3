package goparquet

import (
	"strings"

	"github.com/pqcore/parquet-core/parquet"
)

// ColumnDescriptor describes one leaf of a schema tree: everything a page
// pipeline needs to decode that leaf's values without walking the tree.
type ColumnDescriptor struct {
	Path                []string
	PhysicalType        parquet.Type
	TypeLength          int32 // meaningful only for FIXED_LEN_BYTE_ARRAY
	Repetition          parquet.FieldRepetitionType
	LogicalType         *parquet.LogicalType
	MaxDefinitionLevel  int32
	MaxRepetitionLevel  int32
	SchemaIndex         int // index of this leaf's SchemaElement in the flattened preorder list
}

// FlatName joins Path with '.', the conventional flat column name.
func (c *ColumnDescriptor) FlatName() string {
	return strings.Join(c.Path, ".")
}

// SchemaDescriptor is the parsed, flattened form of FileMetaData.Schema: a
// tree of groups whose leaves are ColumnDescriptors in file (preorder)
// order.
type SchemaDescriptor struct {
	elements []*parquet.SchemaElement
	columns  []*ColumnDescriptor
}

// Columns returns the leaves in schema (preorder) order.
func (s *SchemaDescriptor) Columns() []*ColumnDescriptor {
	return s.columns
}

// Elements returns the flattened preorder SchemaElement list, exactly as
// it appears (or will appear) in FileMetaData.Schema.
func (s *SchemaDescriptor) Elements() []*parquet.SchemaElement {
	return s.elements
}

// ColumnByName finds a leaf by its dotted flat name.
func (s *SchemaDescriptor) ColumnByName(name string) *ColumnDescriptor {
	for _, c := range s.columns {
		if c.FlatName() == name {
			return c
		}
	}
	return nil
}

// NewSchemaDescriptor walks a flattened preorder SchemaElement list (as
// read from a footer) the same way the format's own readers must: element
// 0 is the root group, num_children on each group tells the walker how
// many of the following elements belong to it. Repetition levels bump the
// running max-def/max-rep exactly at group boundaries, per §3's invariant.
func NewSchemaDescriptor(elements []*parquet.SchemaElement) (*SchemaDescriptor, error) {
	if len(elements) == 0 {
		return nil, newError(OutOfSpec, "schema: empty element list")
	}
	root := elements[0]
	if root.NumChildren == nil {
		return nil, newError(OutOfSpec, "schema: root element has no num_children")
	}
	s := &SchemaDescriptor{elements: elements}
	pos := 1
	var walk func(path []string, dLevel, rLevel int32, count int) error
	walk = func(path []string, dLevel, rLevel int32, count int) error {
		for i := 0; i < count; i++ {
			if pos >= len(elements) {
				return newError(OutOfSpec, "schema: element list truncated")
			}
			el := elements[pos]
			pos++
			childPath := append(append([]string{}, path...), el.Name)

			nd, nr := dLevel, rLevel
			switch rep := repetitionOf(el); rep {
			case parquet.FieldRepetitionType_OPTIONAL:
				nd++
			case parquet.FieldRepetitionType_REPEATED:
				nd++
				nr++
			}

			if el.NumChildren != nil && *el.NumChildren > 0 {
				if err := walk(childPath, nd, nr, int(*el.NumChildren)); err != nil {
					return err
				}
				continue
			}
			if el.Type == nil {
				return newError(OutOfSpec, "schema: leaf %q has no physical type", strings.Join(childPath, "."))
			}
			var typeLength int32
			if el.TypeLength != nil {
				typeLength = *el.TypeLength
			}
			s.columns = append(s.columns, &ColumnDescriptor{
				Path:               childPath,
				PhysicalType:       *el.Type,
				TypeLength:         typeLength,
				Repetition:         repetitionOf(el),
				LogicalType:        el.LogicalType,
				MaxDefinitionLevel: nd,
				MaxRepetitionLevel: nr,
				SchemaIndex:        pos - 1,
			})
		}
		return nil
	}
	if err := walk(nil, 0, 0, int(*root.NumChildren)); err != nil {
		return nil, err
	}
	if pos != len(elements) {
		return nil, newError(OutOfSpec, "schema: %d trailing elements not reachable from root", len(elements)-pos)
	}
	return s, nil
}

func repetitionOf(el *parquet.SchemaElement) parquet.FieldRepetitionType {
	if el.RepetitionType == nil {
		return parquet.FieldRepetitionType_REQUIRED
	}
	return *el.RepetitionType
}

// SchemaBuilder assembles a SchemaDescriptor for writing: callers add
// leaves in the order they should appear as row-group columns, and the
// builder synthesizes a single flat root group around them. It does not
// attempt to reconstruct nested group structure — nesting is the typed
// record layer's concern, out of scope here (§1 Non-goals).
type SchemaBuilder struct {
	root parquet.SchemaElement
	cols []*ColumnDescriptor
}

// NewSchemaBuilder starts a builder with the given root group name.
func NewSchemaBuilder(rootName string) *SchemaBuilder {
	zero := int32(0)
	return &SchemaBuilder{
		root: parquet.SchemaElement{Name: rootName, NumChildren: &zero},
	}
}

// AddColumn appends a leaf field directly under the root.
func (b *SchemaBuilder) AddColumn(name string, physType parquet.Type, repetition parquet.FieldRepetitionType, logicalType *parquet.LogicalType) {
	dLevel, rLevel := int32(0), int32(0)
	switch repetition {
	case parquet.FieldRepetitionType_OPTIONAL:
		dLevel = 1
	case parquet.FieldRepetitionType_REPEATED:
		dLevel, rLevel = 1, 1
	}
	b.cols = append(b.cols, &ColumnDescriptor{
		Path:               []string{name},
		PhysicalType:       physType,
		Repetition:         repetition,
		LogicalType:        logicalType,
		MaxDefinitionLevel: dLevel,
		MaxRepetitionLevel: rLevel,
	})
	n := *b.root.NumChildren + 1
	b.root.NumChildren = &n
}

// Build renders the accumulated columns into a flattened SchemaDescriptor
// with correctly assigned SchemaIndex values, ready to embed in a
// FileMetaData.
func (b *SchemaBuilder) Build() (*SchemaDescriptor, error) {
	if len(b.cols) == 0 {
		return nil, newError(InvalidParameter, "schema builder: no columns added")
	}
	elements := make([]*parquet.SchemaElement, 0, len(b.cols)+1)
	root := b.root
	elements = append(elements, &root)
	for i, c := range b.cols {
		pt := c.PhysicalType
		rt := c.Repetition
		el := &parquet.SchemaElement{
			Type:           &pt,
			RepetitionType: &rt,
			Name:           c.Path[0],
			LogicalType:    c.LogicalType,
		}
		if pt == parquet.Type_FIXED_LEN_BYTE_ARRAY {
			el.TypeLength = &c.TypeLength
		}
		c.SchemaIndex = i + 1
		elements = append(elements, el)
	}
	return NewSchemaDescriptor(elements)
}
