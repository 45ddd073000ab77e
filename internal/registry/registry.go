// Package registry maps known fund display names to their six-digit codes.
//
// A Registry is immutable once built and may be shared between goroutines
// without synchronization.
package registry

import (
	"sort"
	"strings"
	"unicode/utf8"
)

// Entry is a single name to code mapping.
type Entry struct {
	Name string `yaml:"name" json:"name"`
	Code string `yaml:"code" json:"code"`
}

// Registry holds fund entries in two orders: insertion order for reverse
// lookups and longest-name-first for substring matching.
type Registry struct {
	entries []Entry
	search  []Entry
	byName  map[string]string
}

// New builds a registry from entries. When a name is repeated the later code
// replaces the earlier one but the name keeps its original insertion position.
func New(entries []Entry) *Registry {
	r := &Registry{byName: make(map[string]string, len(entries))}
	index := make(map[string]int, len(entries))

	for _, e := range entries {
		if e.Name == "" || e.Code == "" {
			continue
		}
		if i, ok := index[e.Name]; ok {
			r.entries[i].Code = e.Code
		} else {
			index[e.Name] = len(r.entries)
			r.entries = append(r.entries, e)
		}
		r.byName[e.Name] = e.Code
	}

	r.search = make([]Entry, len(r.entries))
	copy(r.search, r.entries)
	sort.SliceStable(r.search, func(i, j int) bool {
		return utf8.RuneCountInString(r.search[i].Name) > utf8.RuneCountInString(r.search[j].Name)
	})

	return r
}

// With returns a new registry containing the receiver's entries followed by extra.
func (r *Registry) With(extra []Entry) *Registry {
	all := make([]Entry, 0, len(r.entries)+len(extra))
	all = append(all, r.entries...)
	all = append(all, extra...)
	return New(all)
}

// Lookup returns the first entry, longest name first, whose name occurs in text.
func (r *Registry) Lookup(text string) (Entry, bool) {
	for _, e := range r.search {
		if strings.Contains(text, e.Name) {
			return e, true
		}
	}
	return Entry{}, false
}

// LookupCompact behaves like Lookup but ignores spaces in both the text and the
// registered names, which tolerates OCR or hand-typed names split by blanks.
func (r *Registry) LookupCompact(text string) (Entry, bool) {
	compact := strings.ReplaceAll(text, " ", "")
	for _, e := range r.search {
		if strings.Contains(compact, strings.ReplaceAll(e.Name, " ", "")) {
			return e, true
		}
	}
	return Entry{}, false
}

// Code returns the code registered for an exact name.
func (r *Registry) Code(name string) (string, bool) {
	code, ok := r.byName[name]
	return code, ok
}

// NameForCode returns the first registered name, in insertion order, for code.
func (r *Registry) NameForCode(code string) (string, bool) {
	for _, e := range r.entries {
		if e.Code == code {
			return e.Name, true
		}
	}
	return "", false
}

// Entries returns a copy of the entries in insertion order.
func (r *Registry) Entries() []Entry {
	out := make([]Entry, len(r.entries))
	copy(out, r.entries)
	return out
}

// Len reports the number of distinct names.
func (r *Registry) Len() int {
	return len(r.entries)
}
