package models

import (
	"fmt"
	"reflect"
)

// ValueConverter transforms a raw value into a presentation-friendly form.
// The diff engine never invokes converters; it only attaches them to
// differences so that formatters can apply them downstream.
type ValueConverter func(value any) any

// Difference records a single mismatch between two compared values.
// A Difference is only ever created when the two values were judged
// non-equal, including the case where exactly one side is nil.
type Difference struct {
	// Type is the runtime type of the compared value. When one side is
	// nil it is the type of the non-nil side; when both reads produced
	// nil it falls back to the declared member type.
	Type reflect.Type

	// PropertyName is the member's simple name
	PropertyName string

	// Path is the dotted path from the comparison root, e.g.
	// "Address.City". Collection indices are not part of the path.
	Path string

	// ArrayIndex is set only when the mismatch occurred inside a
	// collection, at this positional index
	ArrayIndex *int

	// LeftValue is the raw value observed on the left side (may be nil)
	LeftValue any

	// RightValue is the raw value observed on the right side (may be nil)
	RightValue any

	// ValueConverter is an optional presentation hook carried through
	// from the member's declaration; opaque to the engine
	ValueConverter ValueConverter
}

// HasIndex reports whether the difference occurred inside a collection
func (d *Difference) HasIndex() bool {
	return d.ArrayIndex != nil
}

// String returns a short one-line description of the difference
func (d *Difference) String() string {
	if d.ArrayIndex != nil {
		return fmt.Sprintf("%s[%d]: %v != %v", d.Path, *d.ArrayIndex, d.LeftValue, d.RightValue)
	}
	return fmt.Sprintf("%s: %v != %v", d.Path, d.LeftValue, d.RightValue)
}
