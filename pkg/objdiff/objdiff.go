// Package objdiff computes a structured list of differences between
// two values of (normally) the same type, walking their object graphs
// recursively: accessor methods, exported fields, nested objects and
// collections. The walk is a single synchronous recursion; each call
// is independent and safe to run concurrently with other calls as long
// as the compared graphs are not mutated during the walk.
package objdiff

import (
	"fmt"
	"reflect"

	"github.com/sdejongh/diffnorris/pkg/introspect"
	"github.com/sdejongh/diffnorris/pkg/models"
)

// DefaultMaxDepth is the recursion bound applied by New
const DefaultMaxDepth = 32

// Introspector supplies the runtime type information the engine needs:
// ordered member enumeration, value reads, type-level exclusion checks
// and converter resolution. introspect.Reflector is the default
// implementation; a generated descriptor table could serve equally.
type Introspector interface {
	// Members returns the comparable members of t in a stable order,
	// properties before fields
	Members(t reflect.Type, include introspect.Include) []introspect.Member

	// MemberByName looks up a member of t by its simple name
	MemberByName(t reflect.Type, name string, include introspect.Include) (introspect.Member, bool)

	// Read resolves a member's value. Property reads fail softly
	// (nil value, no error); field read errors abort the comparison.
	Read(instance any, m introspect.Member) (any, error)

	// Excluded reports whether a type opted out of comparison
	Excluded(t reflect.Type) bool

	// Hook resolves a member's optional value converter
	Hook(m introspect.Member) models.ValueConverter
}

// Differ holds the settings for a comparison. The zero value is not
// ready to use; call New and adjust fields as needed.
type Differ struct {
	// MaxDepth bounds recursion depth. 0 means unbounded; the cycle
	// guard still guarantees termination. Reaching the bound truncates
	// the walk silently, it is not an error.
	MaxDepth int

	// AllowTypeMismatch permits comparing values of different runtime
	// types. When false such a comparison fails with
	// *InvalidComparisonError.
	AllowTypeMismatch bool

	// Options selects which member categories are visited
	Options models.Options

	// Ignore excludes members by simple name or full dotted path
	Ignore models.IgnoreFilter

	// Introspector supplies member enumeration and value reads
	Introspector Introspector
}

// New creates a Differ with default settings: depth 32, strict type
// matching, all member categories, nothing ignored, reflection-based
// introspection.
func New() *Differ {
	return &Differ{
		MaxDepth:     DefaultMaxDepth,
		Options:      models.CompareAll,
		Ignore:       models.NewIgnoreFilter(),
		Introspector: introspect.NewReflector(),
	}
}

// Diff compares two values and returns the differences in discovery
// order: properties before fields, declaration order within each
// category, collection elements in iteration order. Identical inputs
// always yield an identical, order-stable list.
func (d *Differ) Diff(left, right any) ([]models.Difference, error) {
	intr := d.Introspector
	if intr == nil {
		intr = introspect.NewReflector()
	}
	// The visited set and the difference list live for exactly one
	// invocation tree; reusing them across calls would suppress
	// legitimate comparisons.
	w := &walker{
		differ:  d,
		intr:    intr,
		visited: make(map[visitKey]struct{}),
	}
	if err := w.walk(left, right, 0, ""); err != nil {
		return nil, err
	}
	return w.diffs, nil
}

// Diff compares two values with default settings
func Diff(left, right any) ([]models.Difference, error) {
	return New().Diff(left, right)
}

// DiffIgnoring compares two values with default settings, skipping
// members whose simple name or dotted path appears in ignore
func DiffIgnoring(left, right any, ignore ...string) ([]models.Difference, error) {
	d := New()
	d.Ignore = models.NewIgnoreFilter(ignore...)
	return d.Diff(left, right)
}

// InvalidComparisonError reports an attempt to compare two values of
// different runtime types without opting in to heterogeneous
// comparison. It signals caller misuse, not a transient condition.
type InvalidComparisonError struct {
	LeftType  reflect.Type
	RightType reflect.Type
}

func (e *InvalidComparisonError) Error() string {
	return fmt.Sprintf("cannot compare %s with %s: runtime types differ (set AllowTypeMismatch to compare anyway)",
		e.LeftType, e.RightType)
}
