package objdiff

import (
	"fmt"
	"reflect"
	"sort"

	"github.com/sdejongh/diffnorris/pkg/models"
)

// valueClass is the comparison strategy for a value
type valueClass int

const (
	classScalar valueClass = iota
	classSequence
	classMapping
	classObject
	classSkip
)

// classify picks the comparison strategy for a value. Pointers are
// unwrapped first. Structs exposing an Equal method (time.Time and
// friends) compare as scalars; other structs recurse as objects.
func classify(v any) valueClass {
	rv := reflect.ValueOf(v)
	if !rv.IsValid() {
		return classScalar
	}
	t := indirectType(rv.Type())
	switch t.Kind() {
	case reflect.Slice, reflect.Array:
		return classSequence
	case reflect.Map:
		return classMapping
	case reflect.Func, reflect.Chan, reflect.UnsafePointer:
		return classSkip
	case reflect.Struct:
		if hasEqualMethod(t) {
			return classScalar
		}
		return classObject
	default:
		return classScalar
	}
}

// compareValue is the value comparator and emitter. Given the aligned
// left/right values of one member (or collection element), it decides
// equality and appends differences. It re-checks the ignore filter
// because collection recursion enters here without passing through
// member enumeration.
func (w *walker) compareValue(declared reflect.Type, name, path string, hook models.ValueConverter, left, right any, index *int, depth int) error {
	if w.differ.Ignore.Match(name, path) {
		return nil
	}

	leftNil, rightNil := isNilValue(left), isNilValue(right)
	if leftNil && rightNil {
		return nil
	}
	if leftNil != rightNil {
		// One side nil: emit immediately, no structural descent
		w.emit(declared, name, path, index, left, right, hook)
		return nil
	}

	if lt, rt := reflect.TypeOf(left), reflect.TypeOf(right); lt != rt {
		if !w.differ.AllowTypeMismatch {
			return &InvalidComparisonError{LeftType: lt, RightType: rt}
		}
		if classify(left) == classScalar {
			// A changed runtime type is itself the difference
			w.emit(declared, name, path, index, left, right, hook)
			return nil
		}
	}

	switch classify(left) {
	case classSequence:
		if !w.differ.Options.Has(models.CompareCollections) {
			return nil
		}
		return w.compareSequence(name, path, hook, left, right, depth)
	case classMapping:
		if !w.differ.Options.Has(models.CompareCollections) {
			return nil
		}
		return w.compareMapping(name, path, hook, left, right, depth)
	case classObject:
		return w.walk(left, right, depth+1, path)
	case classSkip:
		return nil
	default:
		if !isMatch(left, right) {
			w.emit(declared, name, path, index, left, right, hook)
		}
		return nil
	}
}

// compareSequence walks two slices or arrays in positional lock-step.
// Elements are aligned by index, never by identity. Each excess left
// element emits one difference with a nil right value; excess right
// elements are not reported.
func (w *walker) compareSequence(name, path string, hook models.ValueConverter, left, right any, depth int) error {
	if !w.enter(left) {
		return nil
	}

	lv := indirectValue(reflect.ValueOf(left))
	rv := indirectValue(reflect.ValueOf(right))

	rlen := 0
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		rlen = rv.Len()
	}

	for i := 0; i < lv.Len(); i++ {
		idx := i
		elem := lv.Index(i).Interface()
		if i >= rlen {
			w.emit(lv.Type().Elem(), name, path, &idx, elem, nil, hook)
			continue
		}
		relem := rv.Index(i).Interface()
		if err := w.compareValue(lv.Type().Elem(), name, path, hook, elem, relem, &idx, depth); err != nil {
			return err
		}
	}
	return nil
}

// compareMapping walks two maps as positional sequences of key/value
// pairs. Keys are sorted by their printed form so the walk is
// deterministic despite Go's randomized map iteration. At each
// position the keys and the values are compared independently, sharing
// the member's path.
func (w *walker) compareMapping(name, path string, hook models.ValueConverter, left, right any, depth int) error {
	if !w.enter(left) {
		return nil
	}

	lv := indirectValue(reflect.ValueOf(left))
	rv := indirectValue(reflect.ValueOf(right))

	lkeys := sortedKeys(lv)
	var rkeys []reflect.Value
	if rv.Kind() == reflect.Map {
		rkeys = sortedKeys(rv)
	}

	for i, lk := range lkeys {
		idx := i
		lval := lv.MapIndex(lk).Interface()

		var rkey, rval any
		if i < len(rkeys) {
			rkey = rkeys[i].Interface()
			rval = rv.MapIndex(rkeys[i]).Interface()
		}

		if err := w.compareValue(lv.Type().Key(), name, path, hook, lk.Interface(), rkey, &idx, depth); err != nil {
			return err
		}
		if err := w.compareValue(lv.Type().Elem(), name, path, hook, lval, rval, &idx, depth); err != nil {
			return err
		}
	}
	return nil
}

// emit appends one difference. The recorded type is the runtime type
// of the non-nil side, falling back to the declared member type.
func (w *walker) emit(declared reflect.Type, name, path string, index *int, left, right any, hook models.ValueConverter) {
	typ := declared
	if !isNilValue(left) {
		typ = reflect.TypeOf(left)
	} else if !isNilValue(right) {
		typ = reflect.TypeOf(right)
	}

	var idx *int
	if index != nil {
		v := *index
		idx = &v
	}

	w.diffs = append(w.diffs, models.Difference{
		Type:           typ,
		PropertyName:   name,
		Path:           path,
		ArrayIndex:     idx,
		LeftValue:      left,
		RightValue:     right,
		ValueConverter: hook,
	})
}

// isMatch decides scalar equality: nil equals nil, one nil never
// matches, a type exposing Equal decides itself, everything else goes
// through reflect.DeepEqual.
func isMatch(left, right any) bool {
	leftNil, rightNil := isNilValue(left), isNilValue(right)
	if leftNil && rightNil {
		return true
	}
	if leftNil != rightNil {
		return false
	}
	if eq, ok := callEqual(left, right); ok {
		return eq
	}
	return reflect.DeepEqual(left, right)
}

// callEqual invokes left.Equal(right) when left exposes an Equal
// method taking exactly the right value's type and returning bool
func callEqual(left, right any) (eq, ok bool) {
	lv := reflect.ValueOf(left)
	if !lv.IsValid() {
		return false, false
	}
	method := lv.MethodByName("Equal")
	if !method.IsValid() && lv.Kind() != reflect.Pointer {
		ptr := reflect.New(lv.Type())
		ptr.Elem().Set(lv)
		method = ptr.MethodByName("Equal")
	}
	if !method.IsValid() {
		return false, false
	}
	mt := method.Type()
	rv := reflect.ValueOf(right)
	if mt.NumIn() != 1 || mt.NumOut() != 1 || mt.Out(0).Kind() != reflect.Bool {
		return false, false
	}
	if !rv.IsValid() || rv.Type() != mt.In(0) {
		return false, false
	}
	return method.Call([]reflect.Value{rv})[0].Bool(), true
}

// hasEqualMethod reports whether t (or *t) has an Equal(t) bool method
func hasEqualMethod(t reflect.Type) bool {
	method, ok := t.MethodByName("Equal")
	if !ok {
		method, ok = reflect.PointerTo(t).MethodByName("Equal")
	}
	if !ok {
		return false
	}
	ft := method.Func.Type()
	return ft.NumIn() == 2 && ft.In(1) == t && ft.NumOut() == 1 && ft.Out(0).Kind() == reflect.Bool
}

// isNilValue reports whether v is nil or holds a nil reference
func isNilValue(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface, reflect.Func, reflect.Chan:
		return rv.IsNil()
	}
	return false
}

// indirectValue unwraps pointers; nil callers are filtered out before
// this point
func indirectValue(v reflect.Value) reflect.Value {
	for v.Kind() == reflect.Pointer {
		v = v.Elem()
	}
	return v
}

// sortedKeys returns a map's keys ordered by their printed form
func sortedKeys(mv reflect.Value) []reflect.Value {
	keys := mv.MapKeys()
	sort.Slice(keys, func(i, j int) bool {
		return fmt.Sprint(keys[i].Interface()) < fmt.Sprint(keys[j].Interface())
	})
	return keys
}
