package models

// IgnoreFilter is a set of member names and dotted paths excluded from
// comparison. Matching is exact-string: an entry matches a member when
// it equals either the member's simple name or its full dotted path.
// No wildcard or prefix semantics.
type IgnoreFilter map[string]struct{}

// NewIgnoreFilter creates an ignore filter from the given entries
func NewIgnoreFilter(entries ...string) IgnoreFilter {
	f := make(IgnoreFilter, len(entries))
	for _, e := range entries {
		if e != "" {
			f[e] = struct{}{}
		}
	}
	return f
}

// Match reports whether a member with the given simple name or full
// dotted path is excluded
func (f IgnoreFilter) Match(name, path string) bool {
	if len(f) == 0 {
		return false
	}
	if _, ok := f[name]; ok {
		return true
	}
	_, ok := f[path]
	return ok
}

// Add inserts an entry into the filter
func (f IgnoreFilter) Add(entry string) {
	if entry != "" {
		f[entry] = struct{}{}
	}
}

// Entries returns the filter contents as a slice (unordered)
func (f IgnoreFilter) Entries() []string {
	entries := make([]string, 0, len(f))
	for e := range f {
		entries = append(entries, e)
	}
	return entries
}
