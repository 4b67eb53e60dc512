package sheet

import (
	"strings"

	"github.com/a11ygl/a11ygl/config"
	"github.com/a11ygl/a11ygl/model"
)

// ProcedureEntry is one verification step flattened for sheet output.
type ProcedureEntry struct {
	ID       string
	Platform string
	Tool     string
	Text     model.LangText
	ToolLink model.LinkData
}

// ConditionEntry mirrors a condition tree with resolved platforms and
// the composite sheet target it lands on.
type ConditionEntry struct {
	Type      string
	Platform  string
	Target    string
	Procedure *ProcedureEntry
	Children  []*ConditionEntry
}

// ConditionStatement is the localized prose summary of one top-level
// condition.
type ConditionStatement struct {
	Platform string
	Summary  model.LangText
}

// SubcheckGroup holds the rows extracted from a multi-procedure
// condition on one target.
type SubcheckGroup struct {
	Count int
	Items []*ChecklistItem
}

// ChecklistItem is one sheet row candidate: either a check or an
// extracted subcheck.
type ChecklistItem struct {
	ID         string
	CheckID    string
	SubcheckID string
	SortKey    int
	Target     string
	Platform   []string
	Severity   model.LangText
	Check      model.LangText
	IsSubcheck bool

	Conditions          []*ConditionEntry
	ConditionStatements []ConditionStatement

	Guidelines []model.LinkData
	Info       []model.LinkData

	// Statements and Tools are keyed by column id
	// ({platform}ConditionStatement, {platform}Tools). Plain carries
	// the implementation_* columns.
	Statements map[string]model.LangText
	Tools      map[string][]model.LinkData
	Plain      map[string]model.LangText

	SheetNames []string
	Subchecks  map[string]*SubcheckGroup
}

// plainValue resolves a plain-data column for this item.
func (c *ChecklistItem) plainValue(header, lang string) string {
	switch header {
	case "check":
		return c.Check.Text(lang)
	case "severity":
		return c.Severity.Text(lang)
	}
	if text, ok := c.Statements[header]; ok {
		return text.Text(lang)
	}
	if text, ok := c.Plain[header]; ok {
		return text.Text(lang)
	}
	return ""
}

// linkValue resolves a link column for this item.
func (c *ChecklistItem) linkValue(header string) []model.LinkData {
	switch header {
	case "guidelines":
		return c.Guidelines
	case "info":
		return c.Info
	}
	return c.Tools[header]
}

// BuildSource converts the loaded corpus into checklist items, one
// per check, ordered by id. A platform of "mobile" is replaced by
// "ios" and "android" on the item.
func BuildSource(baseURL string) []*ChecklistItem {
	items := make([]*ChecklistItem, 0, len(model.AllChecks()))
	for _, check := range model.AllChecks() {
		item := &ChecklistItem{
			ID:         check.ID(),
			CheckID:    check.ID(),
			SortKey:    check.SortKey(),
			Target:     check.Target,
			Platform:   expandMobile(check.Platform),
			Check:      check.CheckText,
			Severity:   severityText(check.Severity),
			Statements: map[string]model.LangText{},
			Tools:      map[string][]model.LinkData{},
			Plain:      map[string]model.LangText{},
			Subchecks:  map[string]*SubcheckGroup{},
		}
		for _, gl := range check.Guidelines() {
			item.Guidelines = append(item.Guidelines, gl.LinkData(baseURL))
		}
		for _, ref := range check.InfoRefs() {
			if link := ref.LinkData(); link != nil {
				item.Info = append(item.Info, *link)
			}
		}
		buildConditions(check, item)
		buildImplementations(check, item)
		items = append(items, item)
	}
	return items
}

func severityText(severity string) model.LangText {
	text := model.LangText{}
	for _, lang := range config.AvailableLanguages() {
		text[lang] = config.SeverityTag(severity, lang)
	}
	return text
}

func expandMobile(platforms []string) []string {
	expanded := make([]string, 0, len(platforms)+1)
	for _, p := range platforms {
		if p == "mobile" {
			expanded = append(expanded, "ios", "android")
			continue
		}
		expanded = append(expanded, p)
	}
	return expanded
}

// buildConditions resolves the condition tree per platform and records
// the prose statements.
func buildConditions(check *model.Check, item *ChecklistItem) {
	langs := config.AvailableLanguages()
	for _, cond := range check.Conditions {
		platform := cond.Platform
		if platform == "" && len(check.Platform) > 0 {
			platform = check.Platform[0]
		}
		entry := convertCondition(cond, platform)
		entry.Target = check.Target + capitalize(platform)
		item.Conditions = append(item.Conditions, entry)

		summary := model.LangText{}
		for _, lang := range langs {
			summary[lang] = cond.Summary(lang)
		}
		item.ConditionStatements = append(item.ConditionStatements, ConditionStatement{
			Platform: platform,
			Summary:  summary,
		})
	}
}

func convertCondition(cond *model.Condition, platform string) *ConditionEntry {
	if cond.Platform != "" {
		platform = cond.Platform
	}
	entry := &ConditionEntry{
		Type:     cond.Type,
		Platform: platform,
	}
	if cond.Type == model.ConditionSimple {
		entry.Procedure = convertProcedure(cond.Procedure, platform)
		return entry
	}
	for _, child := range cond.Children {
		entry.Children = append(entry.Children, convertCondition(child, platform))
	}
	return entry
}

func convertProcedure(proc *model.Procedure, platform string) *ProcedureEntry {
	return &ProcedureEntry{
		ID:       proc.ID,
		Platform: platform,
		Tool:     proc.Tool.ID(),
		Text:     proc.Text,
		ToolLink: proc.ToolLink(),
	}
}

// buildImplementations fills the implementation_* columns, one block
// per method with its implementation title.
func buildImplementations(check *model.Check, item *ChecklistItem) {
	for _, impl := range check.Implementations {
		for _, method := range impl.Methods {
			key := "implementation_" + method.Platform
			text, ok := item.Plain[key]
			if !ok {
				text = model.LangText{}
			}
			for lang, title := range impl.Title {
				text[lang] += title + ":\n" + method.Method.Text(lang) + "\n\n"
			}
			item.Plain[key] = text
		}
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
