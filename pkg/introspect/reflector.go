// Package introspect provides the runtime type introspection used by
// the diff engine: ordered member enumeration, guarded value reads and
// tag-based comparison markers.
package introspect

import (
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/sdejongh/diffnorris/pkg/models"
)

// MemberKind identifies the category a member belongs to
type MemberKind string

const (
	// KindProperty is a getter-style accessor method
	KindProperty MemberKind = "property"
	// KindField is an exported struct field
	KindField MemberKind = "field"
)

// Member describes one comparable member of a type
type Member struct {
	// Name is the member's simple name
	Name string

	// Type is the declared type: the field type, or the getter's
	// single result type
	Type reflect.Type

	// Kind is the member category
	Kind MemberKind

	// Ignored is set when the member carries a diff:"-" tag
	Ignored bool

	// Converter is the name of a registered value converter, taken
	// from a diff:"convert=NAME" tag (empty when absent)
	Converter string
}

// Ignorer marks a type as excluded from comparison wholesale.
// Implement it with an empty method to opt a type out of traversal.
type Ignorer interface {
	DiffIgnore()
}

// Include selects which member categories to enumerate
type Include struct {
	Properties bool
	Fields     bool
}

var ignorerType = reflect.TypeOf((*Ignorer)(nil)).Elem()
var errorType = reflect.TypeOf((*error)(nil)).Elem()

// Getter method names that describe the value rather than belong to it
var skippedGetters = map[string]struct{}{
	"String":     {},
	"GoString":   {},
	"Error":      {},
	"DiffIgnore": {},
}

// Reflector implements member introspection on top of the reflect
// package. Member lists are derived data and cached per type; a single
// Reflector is safe for concurrent use.
type Reflector struct {
	mu         sync.RWMutex
	converters map[string]models.ValueConverter
	cache      sync.Map // reflect.Type -> []Member
}

// NewReflector creates a reflector with an empty converter registry
func NewReflector() *Reflector {
	return &Reflector{
		converters: make(map[string]models.ValueConverter),
	}
}

// RegisterConverter registers a named value converter that members can
// reference through a diff:"convert=NAME" tag
func (r *Reflector) RegisterConverter(name string, fn models.ValueConverter) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.converters[name] = fn
}

// Hook resolves a member's converter tag against the registry.
// Returns nil when the member has no converter or the name is unknown.
func (r *Reflector) Hook(m Member) models.ValueConverter {
	if m.Converter == "" {
		return nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.converters[m.Converter]
}

// Excluded reports whether a type opted out of comparison by
// implementing Ignorer
func (r *Reflector) Excluded(t reflect.Type) bool {
	if t == nil {
		return false
	}
	if t.Implements(ignorerType) {
		return true
	}
	if t.Kind() != reflect.Pointer && reflect.PointerTo(t).Implements(ignorerType) {
		return true
	}
	return false
}

// Members returns the comparable members of t, filtered by include.
// Properties come first (in reflect's method order, which is sorted by
// name), then fields in declaration order. Unexported fields are never
// enumerated; they are the backing storage of accessor methods and
// reporting them would duplicate the property diff.
func (r *Reflector) Members(t reflect.Type, include Include) []Member {
	all := r.allMembers(t)
	members := make([]Member, 0, len(all))
	for _, m := range all {
		switch m.Kind {
		case KindProperty:
			if include.Properties {
				members = append(members, m)
			}
		case KindField:
			if include.Fields {
				members = append(members, m)
			}
		}
	}
	return members
}

// MemberByName looks up a single member of t by its simple name
func (r *Reflector) MemberByName(t reflect.Type, name string, include Include) (Member, bool) {
	for _, m := range r.Members(t, include) {
		if m.Name == name {
			return m, true
		}
	}
	return Member{}, false
}

// allMembers computes (or fetches from cache) the full member list of t
func (r *Reflector) allMembers(t reflect.Type) []Member {
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == nil || t.Kind() != reflect.Struct {
		return nil
	}

	if cached, ok := r.cache.Load(t); ok {
		return cached.([]Member)
	}

	var members []Member

	// Getter-style accessors: exported niladic methods with exactly one
	// non-error result. The pointer method set covers both receiver kinds.
	pt := reflect.PointerTo(t)
	for i := 0; i < pt.NumMethod(); i++ {
		method := pt.Method(i)
		if !method.IsExported() {
			continue
		}
		if _, skip := skippedGetters[method.Name]; skip {
			continue
		}
		ft := method.Func.Type()
		if ft.NumIn() != 1 || ft.NumOut() != 1 {
			continue
		}
		if ft.Out(0) == errorType {
			continue
		}
		members = append(members, Member{
			Name: method.Name,
			Type: ft.Out(0),
			Kind: KindProperty,
		})
	}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}
		m := Member{
			Name: field.Name,
			Type: field.Type,
			Kind: KindField,
		}
		parseTag(field.Tag.Get("diff"), &m)
		members = append(members, m)
	}

	r.cache.Store(t, members)
	return members
}

// parseTag applies a diff struct tag to a member.
// Recognized forms: "-" and "convert=NAME", comma-separated.
func parseTag(tag string, m *Member) {
	for _, part := range strings.Split(tag, ",") {
		part = strings.TrimSpace(part)
		switch {
		case part == "-":
			m.Ignored = true
		case strings.HasPrefix(part, "convert="):
			m.Converter = strings.TrimPrefix(part, "convert=")
		}
	}
}

// Read resolves a member's value on an instance.
//
// Property reads fail softly: a getter that panics yields a nil value
// and no error, indistinguishable from a genuinely absent value. Field
// reads fail hard: any problem resolving the field aborts the
// comparison. Reading any member of a nil instance is caller misuse
// and fails fast.
func (r *Reflector) Read(instance any, m Member) (any, error) {
	if instance == nil {
		return nil, &models.ValidationError{Field: m.Name, Message: "cannot read member of nil instance"}
	}
	rv := reflect.ValueOf(instance)
	if !rv.IsValid() {
		return nil, &models.ValidationError{Field: m.Name, Message: "cannot read member of invalid instance"}
	}
	if m.Kind == KindProperty {
		return readProperty(rv, m)
	}
	return readField(rv, m)
}

func readProperty(rv reflect.Value, m Member) (val any, err error) {
	defer func() {
		if recover() != nil {
			val, err = nil, nil
		}
	}()

	method := rv.MethodByName(m.Name)
	if !method.IsValid() && rv.Kind() != reflect.Pointer {
		// Pointer-receiver getter on a value: call it on an addressable copy
		ptr := reflect.New(rv.Type())
		ptr.Elem().Set(rv)
		method = ptr.MethodByName(m.Name)
	}
	if !method.IsValid() {
		return nil, nil
	}

	out := method.Call(nil)
	return out[0].Interface(), nil
}

func readField(rv reflect.Value, m Member) (any, error) {
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil, fmt.Errorf("cannot read field %s of nil %s", m.Name, rv.Type())
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return nil, fmt.Errorf("cannot read field %s of non-struct type %s", m.Name, rv.Type())
	}
	field := rv.FieldByName(m.Name)
	if !field.IsValid() {
		return nil, fmt.Errorf("type %s has no field %s", rv.Type(), m.Name)
	}
	return field.Interface(), nil
}
