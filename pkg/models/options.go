package models

import (
	"fmt"
	"strings"
)

// Options selects which member categories participate in a comparison.
// Absence of a flag excludes the category from traversal entirely, not
// just from reporting.
type Options uint8

const (
	// CompareProperties includes getter-style accessor methods
	CompareProperties Options = 1 << iota
	// CompareFields includes exported struct fields
	CompareFields
	// CompareCollections includes slice, array and map contents
	CompareCollections

	// CompareAll includes every member category
	CompareAll = CompareProperties | CompareFields | CompareCollections
)

// Has reports whether all bits of flag are active
func (o Options) Has(flag Options) bool {
	return o&flag == flag
}

// String returns the comma-separated names of the active flags
func (o Options) String() string {
	if o.Has(CompareAll) {
		return "all"
	}
	var names []string
	if o.Has(CompareProperties) {
		names = append(names, "properties")
	}
	if o.Has(CompareFields) {
		names = append(names, "fields")
	}
	if o.Has(CompareCollections) {
		names = append(names, "collections")
	}
	if len(names) == 0 {
		return "none"
	}
	return strings.Join(names, ",")
}

// ParseOptions converts option names into an Options set.
// Valid names are "properties", "fields", "collections" and "all".
func ParseOptions(names []string) (Options, error) {
	var opts Options
	for _, name := range names {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "properties":
			opts |= CompareProperties
		case "fields":
			opts |= CompareFields
		case "collections":
			opts |= CompareCollections
		case "all":
			opts |= CompareAll
		case "":
			continue
		default:
			return 0, fmt.Errorf("invalid compare option: %s (valid: properties, fields, collections, all)", name)
		}
	}
	return opts, nil
}
