package sheet

import (
	"log/slog"
	"sort"

	"github.com/a11ygl/a11ygl/model"
)

// CheckInfo summarizes one check for later formatting decisions.
type CheckInfo struct {
	ID                string
	IsSubcheck        bool
	SubchecksByTarget map[string]int
}

// Processor distributes checklist items across target sheets,
// wrapping condition summaries into full statements and extracting
// subcheck rows from multi-procedure conditions.
type Processor struct {
	Info   map[string]*CheckInfo
	logger *slog.Logger
}

// NewProcessor returns a processor that records per-check info as it
// distributes items.
func NewProcessor(logger *slog.Logger) *Processor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Processor{Info: map[string]*CheckInfo{}, logger: logger}
}

// Process assigns each item to its target sheets, ordered by sort
// key. A target-platform pair outside the seven sheet targets is
// skipped with a warning.
func (p *Processor) Process(items []*ChecklistItem) map[string][]*ChecklistItem {
	byTarget := map[string][]*ChecklistItem{}
	for _, target := range TargetIDs {
		byTarget[target] = nil
	}

	sorted := make([]*ChecklistItem, len(items))
	copy(sorted, items)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].SortKey < sorted[j].SortKey
	})

	for _, item := range sorted {
		p.assignSheets(item)
		if p.needsGeneratedData(item.SheetNames) {
			p.buildGeneratedFields(item)
		}
		p.recordInfo(item)
		p.distribute(item, byTarget)
	}
	return byTarget
}

func (p *Processor) assignSheets(item *ChecklistItem) {
	item.SheetNames = item.SheetNames[:0]
	for _, platform := range item.Platform {
		target := item.Target + capitalize(platform)
		if _, ok := targetColumns[target]; !ok {
			p.logger.Warn("no sheet for target-platform pair, skipping",
				"check", item.ID, "target", item.Target, "platform", platform)
			continue
		}
		item.SheetNames = append(item.SheetNames, target)
	}
}

func (p *Processor) needsGeneratedData(sheetNames []string) bool {
	for _, name := range sheetNames {
		if len(targetColumns[name].GeneratedData) > 0 {
			return true
		}
	}
	return false
}

// buildGeneratedFields fills the per-platform statement and tool
// columns, extracting subchecks when a condition spans more than one
// procedure.
func (p *Processor) buildGeneratedFields(item *ChecklistItem) {
	for _, statement := range item.ConditionStatements {
		header := statement.Platform + "ConditionStatement"
		item.Statements[header] = wrapStatement(statement.Summary)
	}

	for _, cond := range item.Conditions {
		procedures := cond.flatten()
		// A check can carry several conditions for the same target;
		// their subcheck rows accumulate into one group.
		group, ok := item.Subchecks[cond.Target]
		if !ok {
			group = &SubcheckGroup{}
			item.Subchecks[cond.Target] = group
		}
		group.Count += len(procedures)

		statementHeader := cond.Platform + "ConditionStatement"
		toolsHeader := cond.Platform + "Tools"
		if len(procedures) == 1 {
			proc := procedures[0]
			item.Statements[statementHeader] = proc.Text
			item.Tools[toolsHeader] = []model.LinkData{proc.ToolLink}
			continue
		}
		for _, proc := range procedures {
			sub := &ChecklistItem{
				ID:         proc.ID,
				SubcheckID: proc.ID,
				Target:     item.Target,
				Platform:   []string{cond.Platform},
				IsSubcheck: true,
				SheetNames: []string{cond.Target},
				Statements: map[string]model.LangText{statementHeader: proc.Text},
				Tools:      map[string][]model.LinkData{toolsHeader: {proc.ToolLink}},
				Plain:      map[string]model.LangText{},
			}
			group.Items = append(group.Items, sub)
		}
	}
}

func (c *ConditionEntry) flatten() []*ProcedureEntry {
	if c.Type == model.ConditionSimple {
		return []*ProcedureEntry{c.Procedure}
	}
	var procs []*ProcedureEntry
	for _, child := range c.Children {
		procs = append(procs, child.flatten()...)
	}
	return procs
}

// wrapStatement turns a condition summary into a full sentence.
func wrapStatement(summary model.LangText) model.LangText {
	wrapped := model.LangText{}
	for lang, text := range summary {
		if lang == "ja" {
			wrapped[lang] = text + "ことを確認する。"
		} else {
			wrapped[lang] = "Verify that " + text + "."
		}
	}
	return wrapped
}

func (p *Processor) recordInfo(item *ChecklistItem) {
	counts := map[string]int{}
	for target, group := range item.Subchecks {
		counts[target] = group.Count
	}
	p.Info[item.ID] = &CheckInfo{
		ID:                item.ID,
		IsSubcheck:        item.IsSubcheck,
		SubchecksByTarget: counts,
	}
}

func (p *Processor) distribute(item *ChecklistItem, byTarget map[string][]*ChecklistItem) {
	for _, name := range item.SheetNames {
		rows, ok := byTarget[name]
		if !ok {
			continue
		}
		rows = append(rows, item)
		if group, ok := item.Subchecks[name]; ok {
			rows = append(rows, group.Items...)
		}
		byTarget[name] = rows
	}
}

// ParentWithSubchecks reports whether the given check id is a parent
// row with more than one subcheck on the target.
func (p *Processor) ParentWithSubchecks(checkID, target string) bool {
	info, ok := p.Info[checkID]
	if !ok || info.IsSubcheck {
		return false
	}
	return info.SubchecksByTarget[target] > 1
}
