package layout

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/width"

	"github.com/tsawler/strata/model"
)

// Marker describes the list label found at the start of a line
type Marker struct {
	// Label is the marker as printed in the source text, e.g. "•", "1.", "(a)"
	Label string

	// Style is the numbering style the marker belongs to
	Style model.NumberingStyle

	// Number is the ordinal of numbered markers (1 for "1.", "a)", "i."), 0 for glyphs
	Number int

	// Pattern names the catalog entry that matched. Markers with the same
	// pattern were produced by the same labeling scheme.
	Pattern string
}

// IsGlyph reports whether the marker is a bullet character rather than a number
func (m Marker) IsGlyph() bool {
	return strings.HasPrefix(m.Pattern, "glyph:")
}

type markerPattern struct {
	name      string
	expr      string // label expression, without anchors
	style     model.NumberingStyle
	needSpace bool // label must be followed by whitespace or end of text
	number    func(token string) int
	re        *regexp.Regexp
	label     *regexp.Regexp
}

// MarkerCatalog recognizes bullet glyphs and numbering patterns at the
// start of a line
type MarkerCatalog struct {
	glyphs   map[rune]model.NumberingStyle
	spaced   map[rune]bool
	patterns []*markerPattern
}

// defaultBulletGlyphs are characters recognized as bullets. The ASCII ones
// also occur as ordinary punctuation and require a following space.
const defaultBulletGlyphs = "•◦●○◉◎◆◇■□▪▫▬▭▶▷▸▹►▻◀◁◂◃◄◅▲△▴▵▼▽▾▿" +
	"‣⁃∙※⁎★☆♠♣♥♦♤♧♡♢✦✧❖❍➔➙➛➜➝➞➟➠➡➢➣➤➥➦→↳⇒⇨⇾⬛⬜⬤⭐" +
	"‐‑‒–—―" + "*+-=."

const checkboxGlyphs = "☐☑☒☓✓✔✕✖✗✘"

// DefaultMarkerCatalog returns the standard catalog
func DefaultMarkerCatalog() *MarkerCatalog {
	return NewMarkerCatalog(defaultBulletGlyphs)
}

// NewMarkerCatalog creates a catalog recognizing glyphs as bullets in
// addition to the checkbox glyphs and the numbering patterns
func NewMarkerCatalog(glyphs string) *MarkerCatalog {
	c := &MarkerCatalog{
		glyphs: make(map[rune]model.NumberingStyle),
		spaced: make(map[rune]bool),
	}
	for _, r := range glyphs {
		c.glyphs[r] = model.NumberingBullet
		if r < utf8.RuneSelf {
			c.spaced[r] = true
		}
	}
	for _, r := range checkboxGlyphs {
		c.glyphs[r] = model.NumberingCheckbox
	}

	c.patterns = []*markerPattern{
		{name: "arabic-dot", expr: `\d{1,3}\.`, style: model.NumberingArabic, needSpace: true, number: parseArabic},
		{name: "arabic-paren", expr: `\d{1,3}\)`, style: model.NumberingArabic, needSpace: true, number: parseArabic},
		{name: "arabic-enclosed", expr: `\(\d{1,3}\)`, style: model.NumberingArabic, number: parseArabic},
		{name: "arabic-bracket", expr: `\[\d{1,3}\]`, style: model.NumberingArabic, needSpace: true, number: parseArabic},
		{name: "arabic-circled", expr: `[\x{2460}-\x{2473}\x{2776}-\x{277F}\x{2780}-\x{2793}]`, style: model.NumberingArabic, number: parseCircled},
		{name: "chapter", expr: `제\d+[장조절]`, style: model.NumberingArabic, number: parseArabic},
		{name: "roman-lower", expr: `(?:ii|iii|iv|vi|vii|viii|ix|xi|xii|xiii|xiv|xv)[.)]`, style: model.NumberingLowerRoman, needSpace: true, number: parseRoman},
		{name: "roman-upper", expr: `(?:II|III|IV|VI|VII|VIII|IX|XI|XII|XIII|XIV|XV)[.)]`, style: model.NumberingUpperRoman, needSpace: true, number: parseRoman},
		{name: "roman-numeral", expr: `[\x{2160}-\x{216B}\x{2170}-\x{217B}]`, style: model.NumberingUpperRoman, number: parseRomanNumeral},
		{name: "alpha-lower", expr: `[a-z][.)]`, style: model.NumberingLowerAlpha, needSpace: true, number: parseLetter},
		{name: "alpha-upper", expr: `[A-Z][.)]`, style: model.NumberingUpperAlpha, needSpace: true, number: parseLetter},
		{name: "alpha-enclosed", expr: `\([a-z]\)`, style: model.NumberingLowerAlpha, number: parseLetter},
		{name: "alpha-circled", expr: `[\x{24D0}-\x{24E9}\x{249C}-\x{24B5}]`, style: model.NumberingLowerAlpha, number: parseCircled},
	}
	for _, p := range c.patterns {
		tail := ``
		if p.needSpace {
			tail = `(?:\s|$)`
		}
		p.re = regexp.MustCompile(`^\s*(` + p.expr + `)` + tail)
		p.label = regexp.MustCompile(`^\s*(?:` + p.expr + `)`)
	}
	return c
}

// Detect returns the marker at the start of text, if any. Fullwidth forms
// are folded before matching; the returned label is sliced from the
// original text.
func (c *MarkerCatalog) Detect(text string) (Marker, bool) {
	folded := foldWidth(text)
	trimmed := strings.TrimLeftFunc(folded, unicode.IsSpace)
	if trimmed == "" {
		return Marker{}, false
	}

	first, size := utf8.DecodeRuneInString(trimmed)
	if style, ok := c.glyphs[first]; ok {
		rest := trimmed[size:]
		if !c.spaced[first] || startsWithSpace(rest) {
			lead := len(folded) - len(trimmed)
			return Marker{
				Label:   sliceRunes(text, folded, lead, lead+size),
				Style:   style,
				Pattern: "glyph:" + string(first),
			}, true
		}
	}

	for _, p := range c.patterns {
		loc := p.re.FindStringSubmatchIndex(folded)
		if loc == nil {
			continue
		}
		token := folded[loc[2]:loc[3]]
		return Marker{
			Label:   sliceRunes(text, folded, loc[2], loc[3]),
			Style:   p.style,
			Number:  p.number(token),
			Pattern: p.name,
		}, true
	}
	return Marker{}, false
}

// IsLabeled reports whether text starts with a marker
func (c *MarkerCatalog) IsLabeled(text string) bool {
	_, ok := c.Detect(text)
	return ok
}

// LabelPattern returns the expression matching labels of the same scheme as
// m, anchored at the start of a line
func (c *MarkerCatalog) LabelPattern(m Marker) *regexp.Regexp {
	if m.IsGlyph() {
		return regexp.MustCompile(`^\s*` + regexp.QuoteMeta(strings.TrimPrefix(m.Pattern, "glyph:")))
	}
	for _, p := range c.patterns {
		if p.name == m.Pattern {
			return p.label
		}
	}
	return nil
}

// StripLabel removes the label matched by pattern from the start of text.
// Text is folded before matching, as in Detect.
func StripLabel(pattern *regexp.Regexp, text string) (label, rest string) {
	if pattern == nil {
		return "", text
	}
	folded := foldWidth(text)
	loc := pattern.FindStringIndex(folded)
	if loc == nil {
		return "", text
	}
	label = strings.TrimSpace(sliceRunes(text, folded, 0, loc[1]))
	end := len(sliceRunes(text, folded, 0, loc[1]))
	return label, strings.TrimSpace(text[end:])
}

func startsWithSpace(s string) bool {
	if s == "" {
		return false
	}
	r, _ := utf8.DecodeRuneInString(s)
	return unicode.IsSpace(r)
}

// foldWidth maps fullwidth and halfwidth forms to their narrow equivalents
// rune by rune, so rune positions in the result match the input
func foldWidth(s string) string {
	var sb strings.Builder
	sb.Grow(len(s))
	for _, r := range s {
		if n := width.LookupRune(r).Narrow(); n != 0 {
			r = n
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

// sliceRunes returns the part of original covering the byte range
// [start, end) of folded. Both strings have the same runes count.
func sliceRunes(original, folded string, start, end int) string {
	from := utf8.RuneCountInString(folded[:start])
	to := utf8.RuneCountInString(folded[:end])
	runes := []rune(original)
	if to > len(runes) {
		to = len(runes)
	}
	if from > to {
		return ""
	}
	return string(runes[from:to])
}

func parseArabic(s string) int {
	n := 0
	for _, r := range s {
		if r >= '0' && r <= '9' {
			n = n*10 + int(r-'0')
		}
	}
	return n
}

func parseLetter(s string) int {
	for _, r := range s {
		r = unicode.ToLower(r)
		if r >= 'a' && r <= 'z' {
			return int(r - 'a' + 1)
		}
	}
	return 0
}

func parseCircled(s string) int {
	r, _ := utf8.DecodeRuneInString(s)
	switch {
	case r >= 0x2460 && r <= 0x2473:
		return int(r-0x2460) + 1
	case r >= 0x2776 && r <= 0x277F:
		return int(r-0x2776) + 1
	case r >= 0x2780 && r <= 0x2789:
		return int(r-0x2780) + 1
	case r >= 0x278A && r <= 0x2793:
		return int(r-0x278A) + 1
	case r >= 0x24D0 && r <= 0x24E9:
		return int(r-0x24D0) + 1
	case r >= 0x249C && r <= 0x24B5:
		return int(r-0x249C) + 1
	}
	return 0
}

func parseRomanNumeral(s string) int {
	r, _ := utf8.DecodeRuneInString(s)
	switch {
	case r >= 0x2160 && r <= 0x216B:
		return int(r-0x2160) + 1
	case r >= 0x2170 && r <= 0x217B:
		return int(r-0x2170) + 1
	}
	return 0
}

// parseRoman converts a roman numeral to integer, ignoring trailing punctuation
func parseRoman(s string) int {
	s = strings.ToUpper(strings.TrimRight(s, ".)"))
	values := map[byte]int{
		'I': 1, 'V': 5, 'X': 10, 'L': 50,
		'C': 100, 'D': 500, 'M': 1000,
	}

	result := 0
	prev := 0
	for i := len(s) - 1; i >= 0; i-- {
		val := values[s[i]]
		if val < prev {
			result -= val
		} else {
			result += val
		}
		prev = val
	}
	return result
}
