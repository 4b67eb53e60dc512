package sheet

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLayout(t *testing.T, target string) *ColumnLayout {
	t.Helper()
	layout, ok := LayoutFor(target)
	require.True(t, ok)
	return layout
}

func simpleCondition(procID string) *ConditionEntry {
	return &ConditionEntry{
		Type:      "simple",
		Procedure: &ProcedureEntry{ID: procID},
	}
}

func TestConditionFormulaSingleProcedure(t *testing.T) {
	f := NewConditionFormatter(testLayout(t, "productWeb"))
	cond := simpleCondition("0001-bct-01")
	rows := map[string]int{"0001-bct-01": 2}

	got := f.ConditionFormula(cond, rows, "ja")
	assert.Equal(t,
		`=IF(COUNTIF($E$2:$E$2,"未チェック")=1,"",IF(TO_TEXT($E$2)="はい","OK","NG"))`,
		got)
}

func TestConditionFormulaEnglishVocabulary(t *testing.T) {
	f := NewConditionFormatter(testLayout(t, "productWeb"))
	cond := simpleCondition("0001-bct-01")
	rows := map[string]int{"0001-bct-01": 2}

	got := f.ConditionFormula(cond, rows, "en")
	assert.Equal(t,
		`=IF(COUNTIF($E$2:$E$2,"UNCHECKED")=1,"",IF(TO_TEXT($E$2)="TRUE","PASS","FAIL"))`,
		got)
}

func TestConditionFormulaAnd(t *testing.T) {
	f := NewConditionFormatter(testLayout(t, "productWeb"))
	cond := &ConditionEntry{
		Type: "and",
		Children: []*ConditionEntry{
			simpleCondition("0005-1"),
			simpleCondition("0005-2"),
		},
	}
	rows := map[string]int{"0005-1": 3, "0005-2": 4}

	got := f.ConditionFormula(cond, rows, "ja")
	assert.Equal(t,
		`=IF(COUNTIF($E$3:$E$4,"未チェック")=2,"",IF(AND(TO_TEXT($E$3)="はい",TO_TEXT($E$4)="はい"),"OK","NG"))`,
		got)
}

func TestConditionFormulaSimpleChildrenBeforeCompound(t *testing.T) {
	f := NewConditionFormatter(testLayout(t, "productWeb"))
	cond := &ConditionEntry{
		Type: "or",
		Children: []*ConditionEntry{
			{
				Type: "and",
				Children: []*ConditionEntry{
					simpleCondition("0009-1"),
					simpleCondition("0009-2"),
				},
			},
			simpleCondition("0009-3"),
		},
	}
	rows := map[string]int{"0009-1": 3, "0009-2": 4, "0009-3": 5}

	got := f.ConditionFormula(cond, rows, "ja")
	assert.Equal(t,
		`=IF(COUNTIF($E$3:$E$5,"未チェック")=3,"",IF(OR(TO_TEXT($E$5)="はい",AND(TO_TEXT($E$3)="はい",TO_TEXT($E$4)="はい")),"OK","NG"))`,
		got)
}

func TestRelevantRowsDeduplicated(t *testing.T) {
	f := NewConditionFormatter(testLayout(t, "productWeb"))
	cond := &ConditionEntry{
		Type: "or",
		Children: []*ConditionEntry{
			simpleCondition("a"),
			simpleCondition("b"),
		},
	}
	rows := f.relevantRows(cond, map[string]int{"a": 7, "b": 7})
	assert.Equal(t, []int{7}, rows)
}
