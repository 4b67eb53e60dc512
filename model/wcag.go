package model

import "sort"

// WcagScSource is the JSON shape of one success criterion in the
// static map, keyed externally by SC id.
type WcagScSource struct {
	ID            string `json:"id"`
	SortKey       int    `json:"sortKey"`
	Level         string `json:"level"`
	LocalPriority string `json:"localPriority"`
	Ja            struct {
		Title string `json:"title"`
		URL   string `json:"url"`
	} `json:"ja"`
	En struct {
		Title string `json:"title"`
		URL   string `json:"url"`
	} `json:"en"`
}

// WcagSc is one WCAG success criterion with its conformance level and
// the locally assigned priority.
type WcagSc struct {
	id            string
	ScNumber      string
	sortKey       int
	Level         string
	LocalPriority string
	Title         LangText
	URL           LangText
}

// NewWcagSc registers a success criterion under the given id.
func NewWcagSc(id string, src WcagScSource) (*WcagSc, error) {
	sc := &WcagSc{
		id:            id,
		ScNumber:      src.ID,
		sortKey:       src.SortKey,
		Level:         src.Level,
		LocalPriority: src.LocalPriority,
		Title:         LangText{"ja": src.Ja.Title, "en": src.En.Title},
		URL:           LangText{"ja": src.Ja.URL, "en": src.En.URL},
	}
	if err := wcagScs.add(sc); err != nil {
		return nil, err
	}
	return sc, nil
}

func (sc *WcagSc) Kind() Kind   { return KindWcagSc }
func (sc *WcagSc) ID() string   { return sc.id }
func (sc *WcagSc) SortKey() int { return sc.sortKey }

// PriorityDiffers reports whether the local priority departs from the
// WCAG conformance level.
func (sc *WcagSc) PriorityDiffers() bool { return sc.Level != sc.LocalPriority }

// Guidelines returns the guidelines referencing this criterion,
// ordered by sort key.
func (sc *WcagSc) Guidelines() []*Guideline {
	return relatedAs[*Guideline](Relationships(), sc, KindGuideline, true)
}

// TemplateData renders the criterion for templates.
func (sc *WcagSc) TemplateData() map[string]any {
	return map[string]any{
		"sc":          sc.ScNumber,
		"level":       sc.Level,
		"LocalLevel":  sc.LocalPriority,
		"sc_en_title": sc.Title["en"],
		"sc_ja_title": sc.Title["ja"],
		"sc_en_url":   sc.URL["en"],
		"sc_ja_url":   sc.URL["ja"],
	}
}

// GetWcagSc looks up a success criterion by id.
func GetWcagSc(id string) (*WcagSc, bool) { return wcagScs.get(id) }

// AllWcagScs returns all success criteria ordered by sort key.
func AllWcagScs() []*WcagSc {
	out := wcagScs.all()
	sort.SliceStable(out, func(i, j int) bool { return out[i].sortKey < out[j].sortKey })
	return out
}

// PriorityDiffScs returns the criteria whose local priority differs
// from the WCAG level, ordered by sort key.
func PriorityDiffScs() []*WcagSc {
	var out []*WcagSc
	for _, sc := range AllWcagScs() {
		if sc.PriorityDiffers() {
			out = append(out, sc)
		}
	}
	return out
}
