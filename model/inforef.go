package model

import (
	"net/url"
	"regexp"
)

// externalRefPattern matches reference strings that are not internal
// document labels: bare URLs and substitution tokens.
var externalRefPattern = regexp.MustCompile(`^(https?://|\|.+\|)`)

// InfoRef is a reference to supplementary material. Internal refs name
// a document label resolved against the published site; external refs
// carry their own localized text and URL. Instances are interned by
// the URL-encoded form of the reference string, so constructing the
// same reference twice yields the same instance.
type InfoRef struct {
	id       string
	Ref      string
	Internal bool

	// Link payload. External refs receive it at construction; internal
	// refs are hydrated once the site's label table is available.
	Text LangText
	URL  LangText
}

// InternInfoRef returns the canonical instance for the reference
// string, creating and registering it on first use. Payload data, when
// supplied for an external ref, is attached on first creation.
func InternInfoRef(ref string, data *LinkData) *InfoRef {
	id := url.QueryEscape(ref)
	if existing, ok := infoRefs.get(id); ok {
		return existing
	}
	r := &InfoRef{
		id:       id,
		Ref:      ref,
		Internal: !externalRefPattern.MatchString(ref),
	}
	if !r.Internal && data != nil {
		r.Text = data.Text
		r.URL = data.URL
	}
	// The id is derived from the ref, so a duplicate is impossible here.
	_ = infoRefs.add(r)
	return r
}

func (r *InfoRef) Kind() Kind { return KindInfoRef }
func (r *InfoRef) ID() string { return r.id }

// RefString returns the reference in RST form: a :ref: role for
// internal labels, the raw reference otherwise.
func (r *InfoRef) RefString() string {
	if r.Internal {
		return ":ref:`" + r.Ref + "`"
	}
	return r.Ref
}

// LinkData returns the localized link payload, or nil when the ref has
// not been resolved to one.
func (r *InfoRef) LinkData() *LinkData {
	if len(r.Text) == 0 {
		return nil
	}
	return &LinkData{Text: r.Text, URL: r.URL}
}

// SetLink attaches link data to an internal ref once the label table
// from a site build is available. External refs keep their construction
// payload.
func (r *InfoRef) SetLink(data LinkData) {
	if !r.Internal {
		return
	}
	r.Text = data.Text
	r.URL = data.URL
}

// Guidelines returns the guidelines citing this reference, ordered by
// sort key.
func (r *InfoRef) Guidelines() []*Guideline {
	return relatedAs[*Guideline](Relationships(), r, KindGuideline, true)
}

// Faqs returns the FAQ articles citing this reference, ordered by sort
// key.
func (r *InfoRef) Faqs() []*Faq {
	return relatedAs[*Faq](Relationships(), r, KindFaq, true)
}

// AllInternalInfoRefs returns the internal refs in creation order.
func AllInternalInfoRefs() []*InfoRef {
	var out []*InfoRef
	for _, ref := range infoRefs.all() {
		if ref.Internal {
			out = append(out, ref)
		}
	}
	return out
}

// AllExternalInfoRefs returns the external refs in creation order.
func AllExternalInfoRefs() []*InfoRef {
	var out []*InfoRef
	for _, ref := range infoRefs.all() {
		if !ref.Internal {
			out = append(out, ref)
		}
	}
	return out
}

// InfoRefsWithGuidelines returns refs referenced by at least one
// guideline.
func InfoRefsWithGuidelines() []*InfoRef {
	rel := Relationships()
	var out []*InfoRef
	for _, ref := range infoRefs.all() {
		if len(rel.Related(ref, KindGuideline)) > 0 {
			out = append(out, ref)
		}
	}
	return out
}

// InfoRefsWithFaqs returns refs referenced by at least one FAQ.
func InfoRefsWithFaqs() []*InfoRef {
	rel := Relationships()
	var out []*InfoRef
	for _, ref := range infoRefs.all() {
		if len(rel.Related(ref, KindFaq)) > 0 {
			out = append(out, ref)
		}
	}
	return out
}
