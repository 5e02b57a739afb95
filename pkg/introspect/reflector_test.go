package introspect

import (
	"reflect"
	"testing"

	"github.com/sdejongh/diffnorris/pkg/models"
)

type sample struct {
	counter int
	Label   string
	Secret  string `diff:"-"`
	Token   string `diff:"convert=mask"`
}

func (s sample) Counter() int {
	return s.counter
}

func (s *sample) Doubled() int {
	return s.counter * 2
}

func (s sample) String() string {
	return s.Label
}

func (s sample) Pair() (int, int) {
	return s.counter, s.counter
}

func (s sample) Validate() error {
	return nil
}

func TestReflector_Members(t *testing.T) {
	r := NewReflector()
	members := r.Members(reflect.TypeOf(sample{}), Include{Properties: true, Fields: true})

	var names []string
	for _, m := range members {
		names = append(names, m.Name)
	}

	// Properties sorted by name, then fields in declaration order.
	// String, Pair and Validate are not getters; counter is unexported.
	want := []string{"Counter", "Doubled", "Label", "Secret", "Token"}
	if !reflect.DeepEqual(names, want) {
		t.Errorf("Members() = %v, want %v", names, want)
	}

	kinds := map[string]MemberKind{}
	for _, m := range members {
		kinds[m.Name] = m.Kind
	}
	if kinds["Counter"] != KindProperty || kinds["Doubled"] != KindProperty {
		t.Error("getter methods not classified as properties")
	}
	if kinds["Label"] != KindField {
		t.Error("Label not classified as a field")
	}
}

func TestReflector_MembersPointerType(t *testing.T) {
	r := NewReflector()
	direct := r.Members(reflect.TypeOf(sample{}), Include{Properties: true, Fields: true})
	viaPtr := r.Members(reflect.TypeOf(&sample{}), Include{Properties: true, Fields: true})

	if !reflect.DeepEqual(direct, viaPtr) {
		t.Errorf("Members(*T) = %v, want same as Members(T) = %v", viaPtr, direct)
	}
}

func TestReflector_MembersInclude(t *testing.T) {
	r := NewReflector()
	typ := reflect.TypeOf(sample{})

	tests := []struct {
		name    string
		include Include
		want    int
	}{
		{"PropertiesOnly", Include{Properties: true}, 2},
		{"FieldsOnly", Include{Fields: true}, 3},
		{"Neither", Include{}, 0},
		{"Both", Include{Properties: true, Fields: true}, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := len(r.Members(typ, tt.include)); got != tt.want {
				t.Errorf("Members() returned %d members, want %d", got, tt.want)
			}
		})
	}
}

func TestReflector_MemberByName(t *testing.T) {
	r := NewReflector()
	typ := reflect.TypeOf(sample{})
	include := Include{Properties: true, Fields: true}

	m, ok := r.MemberByName(typ, "Label", include)
	if !ok {
		t.Fatal("MemberByName(Label) not found")
	}
	if m.Kind != KindField || m.Type.Kind() != reflect.String {
		t.Errorf("MemberByName(Label) = %+v", m)
	}

	if _, ok := r.MemberByName(typ, "Nope", include); ok {
		t.Error("MemberByName(Nope) found a member")
	}

	// A member filtered out by include is also not found by name
	if _, ok := r.MemberByName(typ, "Label", Include{Properties: true}); ok {
		t.Error("MemberByName(Label) found despite Fields being excluded")
	}
}

func TestReflector_Tags(t *testing.T) {
	r := NewReflector()
	include := Include{Fields: true}

	secret, ok := r.MemberByName(reflect.TypeOf(sample{}), "Secret", include)
	if !ok || !secret.Ignored {
		t.Errorf("Secret member = %+v, want Ignored", secret)
	}

	token, ok := r.MemberByName(reflect.TypeOf(sample{}), "Token", include)
	if !ok || token.Converter != "mask" {
		t.Errorf("Token member = %+v, want Converter mask", token)
	}
}

func TestReflector_Read(t *testing.T) {
	r := NewReflector()
	include := Include{Properties: true, Fields: true}
	typ := reflect.TypeOf(sample{})
	instance := sample{counter: 3, Label: "hello"}

	t.Run("Field", func(t *testing.T) {
		m, _ := r.MemberByName(typ, "Label", include)
		v, err := r.Read(instance, m)
		if err != nil {
			t.Fatalf("Read() error = %v", err)
		}
		if v != "hello" {
			t.Errorf("Read(Label) = %v, want hello", v)
		}
	})

	t.Run("FieldThroughPointer", func(t *testing.T) {
		m, _ := r.MemberByName(typ, "Label", include)
		v, err := r.Read(&instance, m)
		if err != nil {
			t.Fatalf("Read() error = %v", err)
		}
		if v != "hello" {
			t.Errorf("Read(Label) = %v, want hello", v)
		}
	})

	t.Run("ValueReceiverProperty", func(t *testing.T) {
		m, _ := r.MemberByName(typ, "Counter", include)
		v, err := r.Read(instance, m)
		if err != nil {
			t.Fatalf("Read() error = %v", err)
		}
		if v != 3 {
			t.Errorf("Read(Counter) = %v, want 3", v)
		}
	})

	t.Run("PointerReceiverPropertyOnValue", func(t *testing.T) {
		m, _ := r.MemberByName(typ, "Doubled", include)
		v, err := r.Read(instance, m)
		if err != nil {
			t.Fatalf("Read() error = %v", err)
		}
		if v != 6 {
			t.Errorf("Read(Doubled) = %v, want 6", v)
		}
	})

	t.Run("NilInstance", func(t *testing.T) {
		m, _ := r.MemberByName(typ, "Label", include)
		_, err := r.Read(nil, m)
		if err == nil {
			t.Fatal("Read(nil) expected an error")
		}
		if _, ok := err.(*models.ValidationError); !ok {
			t.Errorf("Read(nil) error = %T, want *models.ValidationError", err)
		}
	})
}

type panicky struct{}

func (panicky) Boom() string {
	panic("boom")
}

func TestReflector_ReadPropertyPanicIsSoft(t *testing.T) {
	r := NewReflector()
	m, ok := r.MemberByName(reflect.TypeOf(panicky{}), "Boom", Include{Properties: true})
	if !ok {
		t.Fatal("Boom member not found")
	}

	v, err := r.Read(panicky{}, m)
	if err != nil {
		t.Fatalf("Read() error = %v, want soft nil", err)
	}
	if v != nil {
		t.Errorf("Read(Boom) = %v, want nil", v)
	}
}

type optedOut struct{}

func (optedOut) DiffIgnore() {}

type optedOutPtr struct{}

func (*optedOutPtr) DiffIgnore() {}

func TestReflector_Excluded(t *testing.T) {
	r := NewReflector()

	tests := []struct {
		name string
		typ  reflect.Type
		want bool
	}{
		{"ValueReceiver", reflect.TypeOf(optedOut{}), true},
		{"PointerReceiver", reflect.TypeOf(optedOutPtr{}), true},
		{"PointerToValueReceiver", reflect.TypeOf(&optedOut{}), true},
		{"PlainStruct", reflect.TypeOf(sample{}), false},
		{"Scalar", reflect.TypeOf(0), false},
		{"Nil", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := r.Excluded(tt.typ); got != tt.want {
				t.Errorf("Excluded(%v) = %v, want %v", tt.typ, got, tt.want)
			}
		})
	}
}

func TestReflector_Hook(t *testing.T) {
	r := NewReflector()
	r.RegisterConverter("mask", func(any) any { return "xxx" })

	t.Run("Registered", func(t *testing.T) {
		hook := r.Hook(Member{Converter: "mask"})
		if hook == nil {
			t.Fatal("Hook() = nil for registered converter")
		}
		if got := hook("secret"); got != "xxx" {
			t.Errorf("hook output = %v, want xxx", got)
		}
	})

	t.Run("Unregistered", func(t *testing.T) {
		if hook := r.Hook(Member{Converter: "missing"}); hook != nil {
			t.Error("Hook() returned a converter for an unknown name")
		}
	})

	t.Run("NoTag", func(t *testing.T) {
		if hook := r.Hook(Member{}); hook != nil {
			t.Error("Hook() returned a converter for an untagged member")
		}
	})
}

func TestReflector_NonStructTypes(t *testing.T) {
	r := NewReflector()
	include := Include{Properties: true, Fields: true}

	for _, typ := range []reflect.Type{
		reflect.TypeOf(0),
		reflect.TypeOf(""),
		reflect.TypeOf([]int{}),
		reflect.TypeOf(map[string]int{}),
	} {
		if members := r.Members(typ, include); len(members) != 0 {
			t.Errorf("Members(%v) = %v, want none", typ, members)
		}
	}
}

func TestParseTag(t *testing.T) {
	tests := []struct {
		tag           string
		wantIgnored   bool
		wantConverter string
	}{
		{"", false, ""},
		{"-", true, ""},
		{"convert=redact", false, "redact"},
		{"-,convert=redact", true, "redact"},
		{" convert=redact ", false, "redact"},
	}

	for _, tt := range tests {
		t.Run(tt.tag, func(t *testing.T) {
			var m Member
			parseTag(tt.tag, &m)
			if m.Ignored != tt.wantIgnored || m.Converter != tt.wantConverter {
				t.Errorf("parseTag(%q) = ignored=%v converter=%q, want ignored=%v converter=%q",
					tt.tag, m.Ignored, m.Converter, tt.wantIgnored, tt.wantConverter)
			}
		})
	}
}
