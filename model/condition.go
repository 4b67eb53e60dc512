package model

import (
	"sort"
	"strings"

	"github.com/a11ygl/a11ygl/config"
)

// Condition node types.
const (
	ConditionSimple = "simple"
	ConditionAnd    = "and"
	ConditionOr     = "or"
)

// ConditionSource is the recursive YAML shape of one condition node.
// Simple nodes carry the procedure fields inline; compound nodes carry
// child conditions.
type ConditionSource struct {
	Type       string            `yaml:"type"`
	Platform   string            `yaml:"platform"`
	ID         string            `yaml:"id"`
	Tool       string            `yaml:"tool"`
	Procedure  LangText          `yaml:"procedure"`
	Note       LangText          `yaml:"note"`
	YouTube    *YouTube          `yaml:"YouTube"`
	Conditions []ConditionSource `yaml:"conditions"`
}

// Condition is one node of a check's boolean condition tree: a simple
// leaf referencing a procedure, or an and/or combination of children.
type Condition struct {
	Type     string
	Platform string

	// Procedure is set for simple nodes, Children for compound ones.
	Procedure *Procedure
	Children  []*Condition
}

func newCondition(src ConditionSource, check *Check) *Condition {
	cond := &Condition{Type: src.Type, Platform: src.Platform}
	if src.Type == ConditionSimple {
		cond.Procedure = newProcedure(src, check)
		return cond
	}
	for _, child := range src.Conditions {
		cond.Children = append(cond.Children, newCondition(child, check))
	}
	return cond
}

// Procedures returns the procedure leaves of this tree in depth-first
// order.
func (c *Condition) Procedures() []*Procedure {
	if c.Type == ConditionSimple {
		return []*Procedure{c.Procedure}
	}
	var procedures []*Procedure
	for _, child := range c.Children {
		procedures = append(procedures, child.Procedures()...)
	}
	return procedures
}

// Summary renders the tree as one localized sentence fragment. Simple
// leaves read "{id}{pass phrase}". Compound nodes join their simple
// children with the and/or separator; when an and/or node holds more
// than one simple child the per-leaf phrase is stripped and a single
// group phrase is appended, plural for and-nodes and singular for
// or-nodes. Compound children are parenthesized and attached with the
// conjunction connector.
func (c *Condition) Summary(lang string) string {
	if c.Type == ConditionSimple {
		return c.Procedure.ID + config.PassSingular(lang)
	}

	var simple, compound []string
	for _, child := range c.Children {
		if child.Type == ConditionSimple {
			simple = append(simple, child.Summary(lang))
		} else {
			compound = append(compound, "("+child.Summary(lang)+")")
		}
	}

	kind := "or"
	if c.Type == ConditionAnd {
		kind = "and"
	}
	separator := config.Separator(kind, lang)
	connector := config.Conjunction(kind, lang)
	singular := config.PassSingular(lang)
	groupPhrase := singular
	if c.Type == ConditionAnd {
		groupPhrase = config.PassPlural(lang)
	}

	if len(simple) > 1 {
		stripped := make([]string, len(simple))
		for i, s := range simple {
			stripped[i] = strings.Replace(s, singular, "", 1)
		}
		group := strings.Join(stripped, separator) + groupPhrase
		if len(compound) == 0 {
			return group
		}
		return group + connector + strings.Join(compound, connector)
	}
	return strings.Join(append(simple, compound...), connector)
}

// TemplateData renders the condition for templates. Conditions without
// a platform produce no output.
func (c *Condition) TemplateData(lang string) map[string]any {
	if c.Platform == "" {
		return map[string]any{}
	}
	data := map[string]any{
		"platform":  config.PlatformName(c.Platform, lang),
		"condition": c.Summary(lang),
	}
	procedures := c.Procedures()
	if len(procedures) > 0 {
		procData := make([]map[string]any, 0, len(procedures))
		for _, proc := range procedures {
			procData = append(procData, proc.TemplateData(lang))
		}
		data["procedures"] = procData
	}
	return data
}

// Procedure is one concrete verification step bound to a check tool.
// Its id doubles as the row reference used by checklist formulas.
type Procedure struct {
	ID   string
	Tool *CheckTool

	// ToolDisplayName preserves the raw tool string when the source
	// named a tool that is not registered.
	ToolDisplayName string

	Text    LangText
	Note    LangText
	YouTube *YouTube
}

func newProcedure(src ConditionSource, check *Check) *Procedure {
	p := &Procedure{
		ID:      src.ID,
		Text:    src.Procedure,
		Note:    src.Note,
		YouTube: src.YouTube,
	}
	tool, ok := GetCheckTool(src.Tool)
	if !ok {
		tool, _ = GetCheckTool(MiscTool)
		p.ToolDisplayName = src.Tool
	}
	p.Tool = tool
	if p.Tool != nil {
		p.Tool.AddExample(&Example{Procedure: p, Check: check})
	}
	return p
}

// DisplayToolName returns the preserved raw tool string for unknown
// tools, otherwise the tool's localized name.
func (p *Procedure) DisplayToolName(lang string) string {
	if p.ToolDisplayName != "" {
		return p.ToolDisplayName
	}
	return p.Tool.Name(lang)
}

// TemplateData renders the procedure for templates.
func (p *Procedure) TemplateData(lang string) map[string]any {
	data := map[string]any{
		"id":                p.ID,
		"tool_display_name": p.DisplayToolName(lang),
		"procedure":         p.Text.Text(lang),
	}
	if len(p.Note) > 0 {
		data["note"] = p.Note.Text(lang)
	}
	if p.YouTube != nil {
		data["YouTube"] = p.YouTube.TemplateData()
	}
	return data
}

// ToolLink returns the localized link into the tool's example page,
// anchored at this procedure.
func (p *Procedure) ToolLink() LinkData {
	link := LinkData{Text: LangText{}, URL: LangText{}}
	for _, lang := range p.Text.Languages() {
		link.Text[lang] = p.DisplayToolName(lang)
		link.URL[lang] = config.ExamplesURL(lang) + p.Tool.ID() + ".html#" + p.ID
	}
	return link
}

// MiscTool is the sentinel tool id that absorbs procedures whose tool
// is not registered.
const MiscTool = "misc"

// CheckTool is a verification tool. Each procedure using the tool is
// collected as an example so the tool's page can list them.
type CheckTool struct {
	id       string
	names    LangText
	examples []*Example
}

// Example records one use of a procedure by a check.
type Example struct {
	Procedure *Procedure
	Check     *Check
}

// NewCheckTool registers a check tool under the given id.
func NewCheckTool(id string, names LangText) (*CheckTool, error) {
	t := &CheckTool{id: id, names: names}
	if err := checkTools.add(t); err != nil {
		return nil, err
	}
	return t, nil
}

func (t *CheckTool) Kind() Kind { return KindCheckTool }
func (t *CheckTool) ID() string { return t.id }

// Name returns the localized tool name.
func (t *CheckTool) Name(lang string) string { return t.names.Text(lang) }

// AddExample records one procedure use for the tool's example page.
func (t *CheckTool) AddExample(e *Example) { t.examples = append(t.examples, e) }

// Dependencies returns the source paths of the checks contributing
// examples, de-duplicated in first-occurrence order.
func (t *CheckTool) Dependencies() []string {
	paths := make([]string, 0, len(t.examples))
	for _, e := range t.examples {
		paths = append(paths, e.Check.SrcPath)
	}
	return uniq(paths)
}

// ExampleTemplateData groups the tool's examples by check, ordered by
// check id, for the tool's example page.
func (t *CheckTool) ExampleTemplateData(lang string) []map[string]any {
	grouped := map[string]map[string]any{}
	var order []string
	for _, e := range t.examples {
		checkID := e.Check.ID()
		entry, ok := grouped[checkID]
		if !ok {
			entry = map[string]any{
				"check_id":   checkID,
				"check_text": e.Check.CheckText.Text(lang),
				"tool":       t.id,
				"procedures": []map[string]any{},
			}
			grouped[checkID] = entry
			order = append(order, checkID)
		}
		entry["procedures"] = append(entry["procedures"].([]map[string]any), e.Procedure.TemplateData(lang))
	}
	sort.Strings(order)
	out := make([]map[string]any, 0, len(order))
	for _, id := range order {
		out = append(out, grouped[id])
	}
	return out
}

// GetCheckTool looks up a tool by id.
func GetCheckTool(id string) (*CheckTool, bool) { return checkTools.get(id) }

// AllCheckTools returns all tools in registration order.
func AllCheckTools() []*CheckTool { return checkTools.all() }
