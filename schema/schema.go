// Package schema resolves logical field names to their index-level
// descriptors. Resolution happens once at collector construction;
// unmapped names fall back to a raw string field of the same name.
package schema

import "github.com/hupe1980/facetgo/fielddata"

// Field is the resolved descriptor for one facet field. Immutable after
// resolution.
type Field struct {
	// Name is the logical name the facet was requested with.
	Name string
	// IndexName is the storage-level field name values are read from.
	IndexName string
	// Type selects the columnar representation.
	Type fielddata.Type
}

// Resolver maps logical field names to index-level descriptors.
type Resolver interface {
	// Resolve returns the mapping for name, or false when the field has
	// no schema mapping.
	Resolve(name string) (Field, bool)
}

// ResolveOrDefault resolves name through r, falling back to a raw string
// field stored under the logical name when r is nil or has no mapping.
func ResolveOrDefault(r Resolver, name string) Field {
	if r != nil {
		if f, ok := r.Resolve(name); ok {
			return f
		}
	}
	return Field{Name: name, IndexName: name, Type: fielddata.TypeString}
}

// StaticResolver is a fixed logical-name -> Field table.
type StaticResolver map[string]Field

// Resolve implements Resolver.
func (sr StaticResolver) Resolve(name string) (Field, bool) {
	f, ok := sr[name]
	return f, ok
}
