package model

import (
	"sort"

	"github.com/a11ygl/a11ygl/config"
)

// Severity levels and check targets accepted from check sources.
const (
	SeverityCritical = "critical"
	SeverityMajor    = "major"
	SeverityNormal   = "normal"
	SeverityMinor    = "minor"

	TargetDesign  = "design"
	TargetCode    = "code"
	TargetProduct = "product"
)

// CheckSource is the YAML shape of one check file.
type CheckSource struct {
	ID              string                 `yaml:"id"`
	SortKey         int                    `yaml:"sortKey"`
	Check           LangText               `yaml:"check"`
	Severity        string                 `yaml:"severity"`
	Target          string                 `yaml:"target"`
	Platform        []string               `yaml:"platform"`
	Conditions      []ConditionSource      `yaml:"conditions"`
	Implementations []ImplementationSource `yaml:"implementations"`
	SrcPath         string                 `yaml:"-"`
}

// ImplementationSource is the YAML shape of one implementation entry.
type ImplementationSource struct {
	Title   LangText       `yaml:"title"`
	Methods []MethodSource `yaml:"methods"`
}

// MethodSource is the YAML shape of one implementation method.
type MethodSource struct {
	Platform string   `yaml:"platform"`
	Method   LangText `yaml:"method"`
}

// Check is one atomic accessibility verification task.
type Check struct {
	id              string
	sortKey         int
	CheckText       LangText
	Severity        string
	Target          string
	Platform        []string
	Conditions      []*Condition
	Implementations []*Implementation
	SrcPath         string
}

// NewCheck constructs a check, registers it, and registers each
// procedure in its condition tree as an example of its tool.
func NewCheck(src CheckSource) (*Check, error) {
	for _, existing := range checks.all() {
		if existing.sortKey == src.SortKey {
			return nil, &DuplicateError{
				Kind: KindCheck, Field: "sortKey", Value: src.SortKey,
				Paths: []string{existing.SrcPath, src.SrcPath},
			}
		}
	}
	c := &Check{
		id:        src.ID,
		sortKey:   src.SortKey,
		CheckText: src.Check,
		Severity:  src.Severity,
		Target:    src.Target,
		Platform:  src.Platform,
		SrcPath:   src.SrcPath,
	}
	if err := checks.add(c); err != nil {
		return nil, &DuplicateError{
			Kind: KindCheck, Field: "id", Value: src.ID,
			Paths: []string{checks.byID[src.ID].SrcPath, src.SrcPath},
		}
	}
	for _, condSrc := range src.Conditions {
		c.Conditions = append(c.Conditions, newCondition(condSrc, c))
	}
	for _, implSrc := range src.Implementations {
		c.Implementations = append(c.Implementations, newImplementation(implSrc))
	}
	return c, nil
}

func (c *Check) Kind() Kind   { return KindCheck }
func (c *Check) ID() string   { return c.id }
func (c *Check) SortKey() int { return c.sortKey }

// ConditionPlatforms returns the distinct platforms named by this
// check's conditions, sorted.
func (c *Check) ConditionPlatforms() []string {
	set := map[string]bool{}
	for _, cond := range c.Conditions {
		set[cond.Platform] = true
	}
	platforms := make([]string, 0, len(set))
	for p := range set {
		platforms = append(platforms, p)
	}
	sort.Strings(platforms)
	return platforms
}

// ConditionFor returns the condition applying to the given platform,
// treating "general" conditions as applying everywhere.
func (c *Check) ConditionFor(platform string) *Condition {
	for _, cond := range c.Conditions {
		if cond.Platform == platform || cond.Platform == "general" {
			return cond
		}
	}
	return nil
}

// Guidelines returns the guidelines carrying this check, ordered by
// sort key.
// InfoRefs returns the supplementary references attached to this
// check, in association order.
func (c *Check) InfoRefs() []*InfoRef {
	return relatedAs[*InfoRef](Relationships(), c, KindInfoRef, false)
}

func (c *Check) Guidelines() []*Guideline {
	return relatedAs[*Guideline](Relationships(), c, KindGuideline, true)
}

// TemplateData renders the check for templates. glPlatform, when
// non-empty, restricts condition output to the enclosing guideline's
// platforms.
func (c *Check) TemplateData(lang string, glPlatform []string) map[string]any {
	rel := Relationships()
	data := map[string]any{
		"id":         c.id,
		"check":      c.CheckText.Text(lang),
		"severity":   config.SeverityTag(c.Severity, lang),
		"target":     config.CheckTargetName(c.Target, lang),
		"platform":   joinPlatformItems(c.Platform, lang),
		"guidelines": []map[string]string{},
	}

	if len(c.Conditions) > 0 {
		conds := []map[string]any{}
		for _, cond := range c.Conditions {
			if len(glPlatform) > 0 && cond.Platform != "general" && !contains(glPlatform, cond.Platform) {
				continue
			}
			if cd := cond.TemplateData(lang); len(cd) > 0 {
				conds = append(conds, cd)
			}
		}
		data["conditions"] = conds
	}
	if len(c.Implementations) > 0 {
		impls := []map[string]any{}
		for _, impl := range c.Implementations {
			impls = append(impls, impl.TemplateData(lang))
		}
		data["implementations"] = impls
	}
	if info := relatedAs[*InfoRef](rel, c, KindInfoRef, false); len(info) > 0 {
		refs := make([]string, 0, len(info))
		for _, ref := range info {
			refs = append(refs, ref.RefString())
		}
		data["info_refs"] = refs
	}
	if faqs := relatedAs[*Faq](rel, c, KindFaq, true); len(faqs) > 0 {
		ids := make([]string, 0, len(faqs))
		for _, faq := range faqs {
			ids = append(ids, faq.ID())
		}
		data["faqs"] = ids
	}
	glData := []map[string]string{}
	for _, gl := range c.Guidelines() {
		glData = append(glData, gl.CategoryAndID(lang))
	}
	data["guidelines"] = glData
	return data
}

func contains(items []string, target string) bool {
	for _, item := range items {
		if item == target {
			return true
		}
	}
	return false
}

// GetCheck looks up a check by id.
func GetCheck(id string) (*Check, bool) { return checks.get(id) }

// AllChecks returns all checks ordered by id.
func AllChecks() []*Check { return sortByID(checks.all()) }

// CheckSrcPaths returns every check source path in load order.
func CheckSrcPaths() []string {
	paths := make([]string, 0, checks.len())
	for _, c := range checks.all() {
		paths = append(paths, c.SrcPath)
	}
	return paths
}

// Implementation describes how a check is satisfied on one or more
// platforms.
type Implementation struct {
	Title   LangText
	Methods []*Method
}

// Method is one platform-specific implementation technique.
type Method struct {
	Platform string
	Method   LangText
}

func newImplementation(src ImplementationSource) *Implementation {
	impl := &Implementation{Title: src.Title}
	for _, m := range src.Methods {
		impl.Methods = append(impl.Methods, &Method{Platform: m.Platform, Method: m.Method})
	}
	return impl
}

// TemplateData renders the implementation for templates.
func (i *Implementation) TemplateData(lang string) map[string]any {
	methods := make([]map[string]string, 0, len(i.Methods))
	for _, m := range i.Methods {
		methods = append(methods, map[string]string{
			"platform": config.ImplementationTargetName(m.Platform, lang),
			"method":   m.Method.Text(lang),
		})
	}
	return map[string]any{
		"title":   i.Title.Text(lang),
		"methods": methods,
	}
}

// YouTube is a video reference attached to a procedure.
type YouTube struct {
	ID    string `yaml:"id"`
	Title string `yaml:"title"`
}

// TemplateData renders the video reference for templates.
func (y *YouTube) TemplateData() map[string]string {
	return map[string]string{"id": y.ID, "title": y.Title}
}
