package models

import (
	"reflect"
	"sort"
	"testing"
)

func TestOptions_Has(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		flag Options
		want bool
	}{
		{"AllHasProperties", CompareAll, CompareProperties, true},
		{"AllHasFields", CompareAll, CompareFields, true},
		{"AllHasCollections", CompareAll, CompareCollections, true},
		{"AllHasAll", CompareAll, CompareAll, true},
		{"FieldsLacksProperties", CompareFields, CompareProperties, false},
		{"PartialLacksAll", CompareProperties | CompareFields, CompareAll, false},
		{"ZeroLacksEverything", 0, CompareProperties, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.opts.Has(tt.flag); got != tt.want {
				t.Errorf("Options(%d).Has(%d) = %v, want %v", tt.opts, tt.flag, got, tt.want)
			}
		})
	}
}

func TestOptions_String(t *testing.T) {
	tests := []struct {
		opts Options
		want string
	}{
		{CompareAll, "all"},
		{CompareProperties, "properties"},
		{CompareProperties | CompareFields, "properties,fields"},
		{0, "none"},
	}

	for _, tt := range tests {
		if got := tt.opts.String(); got != tt.want {
			t.Errorf("Options(%d).String() = %s, want %s", tt.opts, got, tt.want)
		}
	}
}

func TestParseOptions(t *testing.T) {
	tests := []struct {
		name    string
		input   []string
		want    Options
		wantErr bool
	}{
		{"All", []string{"all"}, CompareAll, false},
		{"Single", []string{"fields"}, CompareFields, false},
		{"Combined", []string{"properties", "collections"}, CompareProperties | CompareCollections, false},
		{"CaseAndSpace", []string{" Fields ", "ALL"}, CompareAll, false},
		{"EmptyEntry", []string{""}, 0, false},
		{"Invalid", []string{"methods"}, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseOptions(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseOptions(%v) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseOptions(%v) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

func TestIgnoreFilter_Match(t *testing.T) {
	f := NewIgnoreFilter("Name", "Address.City")

	tests := []struct {
		name string
		path string
		want bool
	}{
		{"Name", "Name", true},
		{"Name", "Person.Name", true},
		{"City", "Address.City", true},
		{"City", "City", false},
		{"Age", "Age", false},
		{"City", "Home.Address.City", false},
	}

	for _, tt := range tests {
		if got := f.Match(tt.name, tt.path); got != tt.want {
			t.Errorf("Match(%s, %s) = %v, want %v", tt.name, tt.path, got, tt.want)
		}
	}
}

func TestIgnoreFilter_Empty(t *testing.T) {
	f := NewIgnoreFilter()
	if f.Match("Name", "Name") {
		t.Error("empty filter matched a member")
	}
	if f.Match("", "") {
		t.Error("empty filter matched empty strings")
	}
}

func TestIgnoreFilter_AddEntries(t *testing.T) {
	f := NewIgnoreFilter("a")
	f.Add("b")
	f.Add("") // discarded

	entries := f.Entries()
	sort.Strings(entries)
	if !reflect.DeepEqual(entries, []string{"a", "b"}) {
		t.Errorf("Entries() = %v, want [a b]", entries)
	}
}

func TestDifference_String(t *testing.T) {
	idx := 2
	tests := []struct {
		name string
		diff Difference
		want string
	}{
		{
			"Scalar",
			Difference{Path: "Name", LeftValue: "A", RightValue: "B"},
			"Name: A != B",
		},
		{
			"Indexed",
			Difference{Path: "Tags", ArrayIndex: &idx, LeftValue: "y", RightValue: "z"},
			"Tags[2]: y != z",
		},
		{
			"NilSide",
			Difference{Path: "Address", LeftValue: nil, RightValue: "x"},
			"Address: <nil> != x",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.diff.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDifference_HasIndex(t *testing.T) {
	idx := 0
	with := Difference{ArrayIndex: &idx}
	without := Difference{}

	if !with.HasIndex() {
		t.Error("HasIndex() = false for an indexed difference")
	}
	if without.HasIndex() {
		t.Error("HasIndex() = true for a plain difference")
	}
}

func TestDiffReport_Totals(t *testing.T) {
	report := DiffReport{
		Results: []DocumentResult{
			{Index: 0, Differences: []Difference{{Path: "a"}, {Path: "b"}}},
			{Index: 1},
			{Index: 2, Differences: []Difference{{Path: "c"}}},
		},
	}

	if got := report.TotalDifferences(); got != 3 {
		t.Errorf("TotalDifferences() = %d, want 3", got)
	}
	if report.Failed() {
		t.Error("Failed() = true without errors")
	}

	report.Results[1].Error = "boom"
	if !report.Failed() {
		t.Error("Failed() = false with a document error")
	}
}

func TestDiffStatus_ExitCode(t *testing.T) {
	tests := []struct {
		status DiffStatus
		want   int
	}{
		{StatusEqual, 0},
		{StatusDifferent, 1},
		{StatusFailed, 2},
		{DiffStatus("bogus"), 2},
	}

	for _, tt := range tests {
		if got := tt.status.ExitCode(); got != tt.want {
			t.Errorf("ExitCode(%s) = %d, want %d", tt.status, got, tt.want)
		}
	}
}

func TestValidationError(t *testing.T) {
	err := &ValidationError{Field: "max_depth", Message: "must not be negative"}
	want := "max_depth: must not be negative"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}
