// Package textproc strips a small RST subset down to plain text:
// :ref: roles become their resolved localized text, :kbd: roles keep
// their inner text, and Japanese output has the whitespace that Sphinx
// would swallow between full-width characters removed. The transform
// is pure and idempotent.
package textproc

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/width"
)

var (
	refPattern = regexp.MustCompile(":ref:`([-a-z0-9]+)`")
	kbdPattern = regexp.MustCompile(":kbd:`([^`]+)`")

	// A bullet item line plus its indented continuation lines.
	bulletBlockPattern = regexp.MustCompile(`(?m)^([ \t]*[*\-+][ \t]+.*(?:\n[ \t]+.*)*)`)
	bulletLinePattern  = regexp.MustCompile(`(?m)^[ \t]*[*\-+][ \t]+`)
)

// Normalizer resolves :ref: roles against a label-to-text table.
type Normalizer struct {
	// Refs maps a label to its localized text, keyed label → lang.
	Refs map[string]map[string]string
}

// Process replaces :ref: and :kbd: roles and, for Japanese, collapses
// inter-character whitespace. Unresolved :ref: roles pass through
// unchanged.
func (n *Normalizer) Process(text, lang string) string {
	text = refPattern.ReplaceAllStringFunc(text, func(match string) string {
		label := refPattern.FindStringSubmatch(match)[1]
		langs, ok := n.Refs[label]
		if !ok {
			return match
		}
		if t, ok := langs[lang]; ok {
			return t
		}
		return langs["ja"]
	})
	text = kbdPattern.ReplaceAllString(text, "$1")
	if lang == "ja" {
		text = NormalizeJapanese(text)
	}
	return text
}

// NormalizeJapanese removes whitespace between two full-width
// characters and between a full-width and a half-width character.
// Whitespace inside bullet items, newlines and the ideographic space
// are left alone.
func NormalizeJapanese(text string) string {
	hasBullets := bulletLinePattern.MatchString(text)

	// Bullet blocks keep their leading indentation, so they are parked
	// behind placeholders while the collapse runs.
	var parked []string
	text = bulletBlockPattern.ReplaceAllStringFunc(text, func(block string) string {
		parked = append(parked, block)
		return fmt.Sprintf("\x00BULLET%d\x00", len(parked)-1)
	})

	text = collapseWhitespace(text)

	for i, block := range parked {
		text = strings.Replace(text, fmt.Sprintf("\x00BULLET%d\x00", i), block, 1)
	}

	if hasBullets {
		return strings.TrimRight(text, " \t\n")
	}
	return strings.TrimSpace(text)
}

// collapseWhitespace drops each whitespace run flanked by at least one
// full-width character, provided the other side is full- or half-width.
func collapseWhitespace(text string) string {
	runes := []rune(text)
	var out []rune
	for i := 0; i < len(runes); {
		r := runes[i]
		if !isCollapsible(r) {
			out = append(out, r)
			i++
			continue
		}
		j := i
		for j < len(runes) && isCollapsible(runes[j]) {
			j++
		}
		var prev, next rune
		if len(out) > 0 {
			prev = out[len(out)-1]
		}
		if j < len(runes) {
			next = runes[j]
		}
		if !shouldCollapse(prev, next) {
			out = append(out, runes[i:j]...)
		}
		i = j
	}
	return string(out)
}

// isCollapsible reports whether the rune is whitespace eligible for
// removal. Newlines and the ideographic space are not.
func isCollapsible(r rune) bool {
	return unicode.IsSpace(r) && r != '\n' && r != '　'
}

func shouldCollapse(prev, next rune) bool {
	if prev == 0 || next == 0 {
		return false
	}
	switch {
	case isFullWidth(prev) && isFullWidth(next):
		return true
	case isFullWidth(prev) && isHalfWidth(next):
		return true
	case isHalfWidth(prev) && isFullWidth(next):
		return true
	}
	return false
}

func isFullWidth(r rune) bool {
	switch width.LookupRune(r).Kind() {
	case width.EastAsianWide, width.EastAsianFullwidth:
		return true
	}
	return false
}

func isHalfWidth(r rune) bool {
	if r <= 0x7F {
		return true
	}
	return width.LookupRune(r).Kind() == width.EastAsianHalfwidth
}
