// Package base ships the reference operation pack: value access, comparison,
// arithmetic, boolean logic, composition, case matching, pattern matching and
// array transforms. Every operation consumes the schema.Operation contract;
// the engine core never special-cases any of them.
package base

import "github.com/jexpr/jexpr/pkg/schema"

// New returns a fresh copy of the base pack. Callers may override individual
// entries before handing the pack to an engine; the shared definitions are
// never mutated.
func New() schema.Pack {
	pack := make(schema.Pack)
	groups := [][]schema.Operation{
		accessOperations(),
		comparisonOperations(),
		arithmeticOperations(),
		booleanOperations(),
		compositionOperations(),
		caseOperations(),
		patternOperations(),
		arrayOperations(),
	}
	for _, group := range groups {
		for _, op := range group {
			pack[op.Name] = op
		}
	}
	return pack
}
