package model

import "regexp"

// VendorRuleSource is the JSON shape of one vendor rule file.
type VendorRuleSource struct {
	ID       string `json:"id"`
	Tags     []string `json:"tags"`
	Metadata struct {
		Help        string `json:"help"`
		Description string `json:"description"`
	} `json:"metadata"`
}

// VendorRuleTranslation is the per-rule Japanese translation from the
// vendor locale blob.
type VendorRuleTranslation struct {
	Help        string `json:"help"`
	Description string `json:"description"`
}

// VendorRuleSetMeta carries the rule-set level metadata established
// when the rule set is loaded.
type VendorRuleSetMeta struct {
	Version      string
	MajorVersion string
	VendorURL    string
	Timestamp    string
}

var vendorMeta VendorRuleSetMeta

// SetVendorRuleSetMeta records the rule-set metadata.
func SetVendorRuleSetMeta(meta VendorRuleSetMeta) { vendorMeta = meta }

// VendorRuleSetMetadata returns the recorded rule-set metadata.
func VendorRuleSetMetadata() VendorRuleSetMeta { return vendorMeta }

var (
	wcagTagPattern = regexp.MustCompile(`^wcag\d{3,}$`)
	scDigits       = regexp.MustCompile(`wcag(\d)(\d)(\d+)`)
)

// tagToSc converts a vendor WCAG tag like "wcag111" into the dotted
// success-criterion number "1.1.1".
func tagToSc(tag string) string {
	return scDigits.ReplaceAllString(tag, "$1.$2.$3")
}

// VendorRule is one rule from the embedded vendor rule set, with its
// vendor-supplied English text and, where available, a Japanese
// translation.
type VendorRule struct {
	id          string
	Translated  bool
	Help        LangText
	Description LangText

	hasWcagSc    bool
	hasGuideline bool
}

// NewVendorRule constructs a rule from its source blob and the locale
// translations, registers it, and associates it with the success
// criteria named by its WCAG tags and transitively with the guidelines
// referencing those criteria. Tags naming unloaded criteria are
// skipped.
func NewVendorRule(src VendorRuleSource, translations map[string]VendorRuleTranslation) (*VendorRule, error) {
	r := &VendorRule{
		id: src.ID,
		Help: LangText{
			"en": src.Metadata.Help,
			"ja": src.Metadata.Help,
		},
		Description: LangText{
			"en": src.Metadata.Description,
			"ja": src.Metadata.Description,
		},
	}
	if t, ok := translations[src.ID]; ok {
		r.Translated = true
		r.Help["ja"] = t.Help
		r.Description["ja"] = t.Description
	}
	if err := vendorRules.add(r); err != nil {
		return nil, err
	}

	rel := Relationships()
	for _, tag := range src.Tags {
		if !wcagTagPattern.MatchString(tag) {
			continue
		}
		sc, ok := GetWcagSc(tagToSc(tag))
		if !ok {
			continue
		}
		rel.Associate(r, sc)
		r.hasWcagSc = true
		for _, gl := range relatedAs[*Guideline](rel, sc, KindGuideline, false) {
			rel.Associate(r, gl)
			r.hasGuideline = true
		}
	}
	return r, nil
}

func (r *VendorRule) Kind() Kind { return KindVendorRule }
func (r *VendorRule) ID() string { return r.id }

// TemplateData renders the rule for the vendor-rule page.
func (r *VendorRule) TemplateData(lang string) map[string]any {
	rel := Relationships()
	data := map[string]any{
		"id":          r.id,
		"help":        map[string]string(r.Help),
		"description": map[string]string(r.Description),
	}
	if r.Translated {
		data["translated"] = true
	}
	if r.hasWcagSc {
		scData := []map[string]any{}
		for _, sc := range relatedAs[*WcagSc](rel, r, KindWcagSc, true) {
			scData = append(scData, sc.TemplateData())
		}
		data["scs"] = scData
	}
	if r.hasGuideline {
		glData := []map[string]string{}
		for _, gl := range relatedAs[*Guideline](rel, r, KindGuideline, true) {
			glData = append(glData, gl.CategoryAndID(lang))
		}
		data["guidelines"] = glData
	}
	return data
}

// AllVendorRules returns every rule ordered by relevance: rules tied
// to guidelines first, then rules tied only to success criteria, then
// the rest; each group ordered by id.
func AllVendorRules() []*VendorRule {
	sorted := sortByID(vendorRules.all())
	var withGuidelines, withSc, rest []*VendorRule
	for _, r := range sorted {
		switch {
		case r.hasGuideline:
			withGuidelines = append(withGuidelines, r)
		case r.hasWcagSc:
			withSc = append(withSc, r)
		default:
			rest = append(rest, r)
		}
	}
	out := append(withGuidelines, withSc...)
	return append(out, rest...)
}
