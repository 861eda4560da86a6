package form

import (
	"slices"
	"strings"
)

// ListField is an editable list of free-text entries. It always holds at
// least one entry, possibly empty.
type ListField struct {
	items []string
}

func NewListField(initial []string) *ListField {
	l := &ListField{items: []string{""}}
	if len(initial) > 0 {
		l.items = slices.Clone(initial)
	}
	return l
}

// Add appends one empty entry.
func (l *ListField) Add() {
	l.items = append(l.items, "")
}

// Remove deletes entry i, keeping the order of the others. The only
// remaining entry cannot be removed.
func (l *ListField) Remove(i int) error {
	if i < 0 || i >= len(l.items) {
		return ErrIndexOutOfRange
	}
	if len(l.items) == 1 {
		return ErrLastEntry
	}
	l.items = slices.Delete(l.items, i, i+1)
	return nil
}

// Update replaces entry i.
func (l *ListField) Update(i int, v string) error {
	if i < 0 || i >= len(l.items) {
		return ErrIndexOutOfRange
	}
	l.items[i] = v
	return nil
}

func (l *ListField) Len() int { return len(l.items) }

// Items returns a copy of every entry, blanks included.
func (l *ListField) Items() []string {
	return slices.Clone(l.items)
}

// Values returns the non-blank entries, trimmed.
func (l *ListField) Values() []string {
	out := make([]string, 0, len(l.items))
	for _, s := range l.items {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// TagSet is an ordered set of tags.
type TagSet struct {
	tags []string
}

func NewTagSet(initial []string) *TagSet {
	t := &TagSet{}
	for _, s := range initial {
		t.Add(s)
	}
	return t
}

// Add appends tag unless it is blank or already present. It reports whether
// the set changed.
func (t *TagSet) Add(tag string) bool {
	tag = strings.TrimSpace(tag)
	if tag == "" || slices.Contains(t.tags, tag) {
		return false
	}
	t.tags = append(t.tags, tag)
	return true
}

// Remove deletes tag by value and reports whether it was present.
func (t *TagSet) Remove(tag string) bool {
	i := slices.Index(t.tags, strings.TrimSpace(tag))
	if i < 0 {
		return false
	}
	t.tags = slices.Delete(t.tags, i, i+1)
	return true
}

func (t *TagSet) Values() []string {
	return append([]string{}, t.tags...)
}
