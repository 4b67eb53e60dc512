package model

import "fmt"

// registry is an insertion-ordered id-keyed store for one entity kind.
// Entities register once during load; duplicate ids are a data error.
type registry[T Entity] struct {
	byID  map[string]T
	order []string
}

func newRegistry[T Entity]() *registry[T] {
	return &registry[T]{byID: map[string]T{}}
}

func (r *registry[T]) add(e T) error {
	if _, ok := r.byID[e.ID()]; ok {
		return fmt.Errorf("duplicate %s id %q", e.Kind(), e.ID())
	}
	r.byID[e.ID()] = e
	r.order = append(r.order, e.ID())
	return nil
}

func (r *registry[T]) get(id string) (T, bool) {
	e, ok := r.byID[id]
	return e, ok
}

// all returns entities in insertion order.
func (r *registry[T]) all() []T {
	out := make([]T, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.byID[id])
	}
	return out
}

func (r *registry[T]) len() int { return len(r.byID) }

func (r *registry[T]) reset() {
	r.byID = map[string]T{}
	r.order = nil
}

// Per-kind registries. Populated during the load phase and read-only
// afterwards.
var (
	categories  = newRegistry[*Category]()
	guidelines  = newRegistry[*Guideline]()
	checks      = newRegistry[*Check]()
	checkTools  = newRegistry[*CheckTool]()
	faqs        = newRegistry[*Faq]()
	faqTags     = newRegistry[*FaqTag]()
	wcagScs     = newRegistry[*WcagSc]()
	infoRefs    = newRegistry[*InfoRef]()
	vendorRules = newRegistry[*VendorRule]()
)

// ResetAll clears every entity registry, the vendor rule-set metadata
// and the relationship index, making room for a fresh load. Not safe
// concurrently with readers; used by tests and between watch-mode
// rebuilds.
func ResetAll() {
	categories.reset()
	guidelines.reset()
	checks.reset()
	checkTools.reset()
	faqs.reset()
	faqTags.reset()
	wcagScs.reset()
	infoRefs.reset()
	vendorRules.reset()
	vendorMeta = VendorRuleSetMeta{}
	resetRelationships()
}
