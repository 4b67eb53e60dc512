package model

import (
	"sort"
	"sync"
)

// RelationshipManager is the bidirectional adjacency index connecting
// entities: for each (kind, id, related kind) triple it keeps the
// insertion-ordered list of related entities. Associations are always
// recorded in both directions and are idempotent.
type RelationshipManager struct {
	data map[Kind]map[string]map[Kind][]Entity

	// FAQ cross-references allow forward references, so they are
	// staged here and resolved in one pass after all FAQs are loaded.
	deferredFaqs map[string][]string
}

// Global relationship index instance and initialization guard.
var (
	globalRelationships *RelationshipManager
	relationshipsOnce   sync.Once
)

// Relationships returns the singleton relationship index, creating it
// on first access.
func Relationships() *RelationshipManager {
	relationshipsOnce.Do(func() {
		globalRelationships = newRelationshipManager()
	})
	return globalRelationships
}

func newRelationshipManager() *RelationshipManager {
	return &RelationshipManager{
		data:         map[Kind]map[string]map[Kind][]Entity{},
		deferredFaqs: map[string][]string{},
	}
}

// resetRelationships clears the singleton. Called from ResetAll.
func resetRelationships() {
	relationshipsOnce = sync.Once{}
	globalRelationships = nil
}

// Associate records a bidirectional edge between two entities.
// Recording the same pair again has no effect.
func (m *RelationshipManager) Associate(a, b Entity) {
	m.insert(a, b)
	m.insert(b, a)
}

func (m *RelationshipManager) insert(from, to Entity) {
	byID, ok := m.data[from.Kind()]
	if !ok {
		byID = map[string]map[Kind][]Entity{}
		m.data[from.Kind()] = byID
	}
	byKind, ok := byID[from.ID()]
	if !ok {
		byKind = map[Kind][]Entity{}
		byID[from.ID()] = byKind
	}
	for _, existing := range byKind[to.Kind()] {
		if existing.ID() == to.ID() {
			return
		}
	}
	byKind[to.Kind()] = append(byKind[to.Kind()], to)
}

// Related returns the insertion-ordered neighbors of the given kind.
// Unknown sources yield an empty non-nil slice.
func (m *RelationshipManager) Related(a Entity, kind Kind) []Entity {
	out := []Entity{}
	if byID, ok := m.data[a.Kind()]; ok {
		if byKind, ok := byID[a.ID()]; ok {
			out = append(out, byKind[kind]...)
		}
	}
	return out
}

// RelatedSorted returns the neighbors of the given kind ordered by
// sort key when the entities carry one, otherwise by id.
func (m *RelationshipManager) RelatedSorted(a Entity, kind Kind) []Entity {
	out := m.Related(a, kind)
	sort.SliceStable(out, func(i, j int) bool {
		ki, iOK := out[i].(sortKeyed)
		kj, jOK := out[j].(sortKeyed)
		if iOK && jOK {
			return ki.SortKey() < kj.SortKey()
		}
		return out[i].ID() < out[j].ID()
	})
	return out
}

// RelatedByID returns the neighbors of the given kind ordered by id.
func (m *RelationshipManager) RelatedByID(a Entity, kind Kind) []Entity {
	out := m.Related(a, kind)
	sort.SliceStable(out, func(i, j int) bool { return out[i].ID() < out[j].ID() })
	return out
}

// DeferFaqLink stages a symmetric FAQ cross-reference for later
// resolution.
func (m *RelationshipManager) DeferFaqLink(id1, id2 string) {
	m.stageFaq(id1, id2)
	m.stageFaq(id2, id1)
}

func (m *RelationshipManager) stageFaq(from, to string) {
	for _, existing := range m.deferredFaqs[from] {
		if existing == to {
			return
		}
	}
	m.deferredFaqs[from] = append(m.deferredFaqs[from], to)
}

// ResolveFaqLinks applies all staged FAQ cross-references. Called once
// after every FAQ has been constructed. A staged id that never loaded
// is a broken reference.
func (m *RelationshipManager) ResolveFaqLinks() error {
	ids := make([]string, 0, len(m.deferredFaqs))
	for id := range m.deferredFaqs {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		faq1, ok := GetFaq(id)
		if !ok {
			return &MissingReferenceError{Kind: KindFaq, ID: id}
		}
		for _, otherID := range m.deferredFaqs[id] {
			faq2, ok := GetFaq(otherID)
			if !ok {
				return &MissingReferenceError{Kind: KindFaq, ID: otherID, ReferencedFrom: faq1.SrcPath}
			}
			m.Associate(faq1, faq2)
		}
	}
	return nil
}

// HasDeferredLinks reports whether the given FAQ id participates in a
// staged cross-reference.
func (m *RelationshipManager) HasDeferredLinks(id string) bool {
	return len(m.deferredFaqs[id]) > 0
}

// relatedAs narrows a relationship query to a concrete entity type.
func relatedAs[T Entity](m *RelationshipManager, a Entity, kind Kind, sorted bool) []T {
	var neighbors []Entity
	if sorted {
		neighbors = m.RelatedSorted(a, kind)
	} else {
		neighbors = m.Related(a, kind)
	}
	out := make([]T, 0, len(neighbors))
	for _, n := range neighbors {
		if typed, ok := n.(T); ok {
			out = append(out, typed)
		}
	}
	return out
}
