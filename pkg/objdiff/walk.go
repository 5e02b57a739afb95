package objdiff

import (
	"reflect"

	"github.com/sdejongh/diffnorris/pkg/introspect"
	"github.com/sdejongh/diffnorris/pkg/models"
)

// visitKey identifies a reference value for cycle detection
type visitKey struct {
	addr uintptr
	typ  reflect.Type
}

// walker carries the recursion-scoped state of one Diff invocation:
// the growing difference list and the set of left-side identities
// already expanded
type walker struct {
	differ  *Differ
	intr    Introspector
	visited map[visitKey]struct{}
	diffs   []models.Difference
}

// walk is the traversal engine. It enumerates the members of the pair
// at the given depth and path, reads both sides of each member and
// hands the aligned values to the comparator. Nested objects re-enter
// walk through the comparator with depth+1.
func (w *walker) walk(left, right any, depth int, path string) error {
	leftNil, rightNil := isNilValue(left), isNilValue(right)
	if leftNil && rightNil {
		return nil
	}

	lt, rt := reflect.TypeOf(left), reflect.TypeOf(right)
	if !leftNil && !rightNil && lt != rt && !w.differ.AllowTypeMismatch {
		return &InvalidComparisonError{LeftType: lt, RightType: rt}
	}

	if w.differ.MaxDepth > 0 && depth >= w.differ.MaxDepth {
		// Silent truncation, not an error
		return nil
	}

	// Members are enumerated from the left side; the right side takes
	// over only when the left is nil.
	subject, subjectType := left, lt
	if leftNil {
		subject, subjectType = right, rt
	}

	if w.intr.Excluded(subjectType) {
		return nil
	}
	switch indirectType(subjectType).Kind() {
	case reflect.Func, reflect.Chan, reflect.UnsafePointer:
		// Not comparable
		return nil
	}

	// Roots can be collections or plain scalars (decoded documents
	// mostly are); members reach the comparator through enumeration
	// below instead.
	switch classify(subject) {
	case classSequence, classMapping:
		if !w.differ.Options.Has(models.CompareCollections) {
			return nil
		}
		return w.compareValue(subjectType, "", path, nil, left, right, nil, depth)
	case classScalar:
		if depth == 0 && path == "" && !leftNil && !rightNil && lt == rt {
			if !isMatch(left, right) {
				w.emit(subjectType, "", "", nil, left, right, nil)
			}
		}
		return nil
	case classSkip:
		return nil
	}

	// Cycle guard, keyed off the left value only: right-side-only
	// cycles are not separately tracked.
	if !leftNil && !w.enter(left) {
		return nil
	}

	include := introspect.Include{
		Properties: w.differ.Options.Has(models.CompareProperties),
		Fields:     w.differ.Options.Has(models.CompareFields),
	}
	sameType := leftNil || rightNil || lt == rt

	for _, m := range w.intr.Members(subjectType, include) {
		childPath := joinPath(path, m.Name)
		if m.Ignored || w.differ.Ignore.Match(m.Name, childPath) {
			continue
		}

		var leftVal, rightVal any
		var err error
		if !leftNil {
			leftVal, err = w.intr.Read(left, m)
			if err != nil {
				return err
			}
		}
		if !rightNil {
			rm := m
			if !sameType {
				// Heterogeneous comparison reports only members present
				// under the same name on both sides.
				found := false
				rm, found = w.intr.MemberByName(rt, m.Name, include)
				if !found {
					continue
				}
			}
			rightVal, err = w.intr.Read(right, rm)
			if err != nil {
				return err
			}
		}

		if err := w.compareValue(m.Type, m.Name, childPath, w.intr.Hook(m), leftVal, rightVal, nil, depth); err != nil {
			return err
		}
	}
	return nil
}

// enter records a reference value in the visited set. It returns false
// when the value was already expanded higher up the recursion, which
// breaks reference cycles. Values without reference identity always
// enter.
func (w *walker) enter(v any) bool {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice:
		if rv.IsNil() {
			return true
		}
		key := visitKey{addr: rv.Pointer(), typ: rv.Type()}
		if _, seen := w.visited[key]; seen {
			return false
		}
		w.visited[key] = struct{}{}
	}
	return true
}

// joinPath builds the dotted path of a member; the root has no prefix
func joinPath(parent, name string) string {
	if parent == "" {
		return name
	}
	return parent + "." + name
}

// indirectType unwraps pointer types
func indirectType(t reflect.Type) reflect.Type {
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t
}
