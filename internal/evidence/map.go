// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package evidence aggregates per-record evidence into an insertion-ordered
// mapping from entity name to evidence list.
package evidence

import "github.com/pdiddy/repurpose-engine/pkg/types"

// Map is an EvidenceMap: entity name → ordered evidence list. Keys are
// unique and iterate in first-insertion order. An entry exists only
// alongside at least one item. The zero value is ready to use.
type Map struct {
	keys  []string
	items map[string][]types.EvidenceItem
}

// NewMap returns an empty Map.
func NewMap() *Map {
	return &Map{items: make(map[string][]types.EvidenceItem)}
}

// Entry is a key and its evidence, used to build maps from static tables.
type Entry struct {
	Name     string
	Evidence []types.EvidenceItem
}

// FromEntries builds a Map by appending every item of every entry in order.
// Entries with no evidence are skipped.
func FromEntries(entries ...Entry) *Map {
	m := NewMap()
	for _, e := range entries {
		for _, item := range e.Evidence {
			m.Append(e.Name, item)
		}
	}
	return m
}

// Append adds item under key, creating the entry on first use. Existing
// evidence for key is never overwritten.
func (m *Map) Append(key string, item types.EvidenceItem) {
	if m.items == nil {
		m.items = make(map[string][]types.EvidenceItem)
	}
	if _, ok := m.items[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.items[key] = append(m.items[key], item)
}

// Keys returns entity names in first-insertion order.
func (m *Map) Keys() []string {
	if m == nil {
		return nil
	}
	out := make([]string, len(m.keys))
	copy(out, m.keys)
	return out
}

// Items returns the evidence recorded for key, or nil.
func (m *Map) Items(key string) []types.EvidenceItem {
	if m == nil {
		return nil
	}
	return m.items[key]
}

// Len returns the number of entities.
func (m *Map) Len() int {
	if m == nil {
		return 0
	}
	return len(m.keys)
}

// Empty reports whether the map has no entities.
func (m *Map) Empty() bool { return m.Len() == 0 }

// Each calls fn for every entity in insertion order.
func (m *Map) Each(fn func(name string, items []types.EvidenceItem)) {
	if m == nil {
		return
	}
	for _, k := range m.keys {
		fn(k, m.items[k])
	}
}

// CountKind returns the total number of items of the given kind across all entities.
func (m *Map) CountKind(kind types.EvidenceKind) int {
	n := 0
	m.Each(func(_ string, items []types.EvidenceItem) {
		for _, it := range items {
			if it.Kind == kind {
				n++
			}
		}
	})
	return n
}
