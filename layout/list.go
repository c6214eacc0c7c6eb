package layout

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/tsawler/strata/model"
)

// ListConfig holds configuration for list assembly
type ListConfig struct {
	// MaxItemGap is the maximum vertical gap between consecutive items of a
	// list, as a multiple of the item font size (default: 2.0)
	MaxItemGap float64

	// MinItems is the minimum number of items for a top-level list without
	// nesting. Shorter runs stay paragraphs. (default: 2)
	MinItems int
}

// DefaultListConfig returns sensible default configuration
func DefaultListConfig() ListConfig {
	return ListConfig{
		MaxItemGap: 2.0,
		MinItems:   2,
	}
}

// ListAssembler regroups labeled paragraphs into nested lists
type ListAssembler struct {
	config ListConfig
	levels *LevelClassifier
}

// NewListAssembler creates a new list assembler with default configuration
func NewListAssembler() *ListAssembler {
	return NewListAssemblerWithConfig(DefaultListConfig(), NewLevelClassifier())
}

// NewListAssemblerWithConfig creates a list assembler with custom configuration
func NewListAssemblerWithConfig(config ListConfig, levels *LevelClassifier) *ListAssembler {
	if levels == nil {
		levels = NewLevelClassifier()
	}
	return &ListAssembler{
		config: config,
		levels: levels,
	}
}

// Assemble walks one page's nodes and wraps runs of labeled paragraphs into
// List nodes. Nesting follows an explicit stack of open levels keyed by the
// items' left edges: a candidate left of the innermost level closes it, a
// candidate inside its alignment band is a sibling, and a candidate to the
// right opens a nested list under the last item. Indented unlabeled
// paragraphs continue the item they fall under. Anything else closes every
// open list.
func (a *ListAssembler) Assemble(nodes []*model.Node) []*model.Node {
	if len(nodes) == 0 {
		return nil
	}

	st := &listState{assembler: a, out: make([]*model.Node, 0, len(nodes))}
	for i := 0; i < len(nodes); i++ {
		n := nodes[i]

		if n.Kind == model.NodeKindLineArt && i+1 < len(nodes) && isBulletOf(n, nodes[i+1]) {
			st.addItem(nodes[i+1], n)
			i++
			continue
		}
		if a.isItem(n) {
			st.addItem(n, nil)
			continue
		}
		if n.Kind == model.NodeKindParagraph && st.continueItem(n) {
			continue
		}

		st.closeAll()
		st.out = append(st.out, n)
	}
	st.closeAll()
	return st.out
}

func (a *ListAssembler) isItem(n *model.Node) bool {
	if n.Kind != model.NodeKindParagraph {
		return false
	}
	first := n.FirstLine()
	if first == nil {
		return false
	}
	return first.Bullet != nil || a.levels.Markers().IsLabeled(first.Value())
}

// isBulletOf reports whether art is the drawn label of paragraph p
func isBulletOf(art, p *model.Node) bool {
	if p.Kind != model.NodeKindParagraph {
		return false
	}
	first := p.FirstLine()
	return first != nil && first.Bullet != nil && model.Fragment(first.Bullet) == art.Fragment
}

// openLevel is one entry of the nesting stack
type openLevel struct {
	info     LevelInfo
	style    model.NumberingStyle
	scheme   string // marker pattern of the items
	last     int    // ordinal of the last item
	items    []*model.Node
	labels   []string
	patterns map[string]*regexp.Regexp
}

type listState struct {
	assembler  *ListAssembler
	stack      []*openLevel
	out        []*model.Node
	lastBottom float64
}

func (st *listState) top() *openLevel {
	return st.stack[len(st.stack)-1]
}

func (st *listState) addItem(para, bullet *model.Node) {
	levels := st.assembler.levels
	info := levels.ForLines(para.Lines)
	box := para.BoundingBox()

	if len(st.stack) > 0 && !st.closeEnough(box, para.MaxFontSize()) {
		st.closeAll()
	}

	for len(st.stack) > 0 {
		top := st.top()
		if top.info.LeftX > info.LeftX+MaxXGapOf(top.info, info) {
			st.pop()
			continue
		}
		break
	}

	var marker Marker
	if bullet == nil {
		marker, _ = levels.Markers().Detect(para.FirstLine().Value())
	}

	var level *openLevel
	switch {
	case len(st.stack) == 0:
		level = st.push(info)
	case closeTo(st.top().info.LeftX, info.LeftX, MaxXGapOf(st.top().info, info)):
		level = st.top()
		if !level.accepts(marker, bullet != nil) {
			st.pop()
			level = st.push(info)
		}
	default:
		level = st.push(info)
	}

	var label string
	if bullet == nil {
		label, _ = StripLabel(level.pattern(levels.Markers(), marker), para.FirstLine().Value())
		if label == "" {
			label = marker.Label
		}
	}
	if len(level.items) == 0 {
		level.style = model.NumberingBullet
		if bullet == nil {
			level.style = marker.Style
		}
		level.scheme = marker.Pattern
		level.last = marker.Number
	} else {
		level.advance(marker)
	}

	children := make([]*model.Node, 0, 2)
	if bullet != nil {
		children = append(children, bullet)
	}
	children = append(children, para)
	item := model.NewListItem(label, children...)
	item.Number = level.last
	level.items = append(level.items, item)
	level.labels = append(level.labels, label)
	st.lastBottom = box.BottomY
}

// accepts reports whether an item labeled m may follow the level's last
// item. Counted levels require the same scheme and the next ordinal; a
// single-letter roman label ("i.", "v.", "x.") also counts as a roman
// numeral next to roman labels, and a level holding only "i." may turn
// roman.
func (l *openLevel) accepts(m Marker, drawn bool) bool {
	if !l.style.IsOrdered() || len(l.items) == 0 {
		return true
	}
	if drawn {
		return false
	}
	if m.Pattern == l.scheme {
		return m.Number == l.last+1
	}
	if romanPair(l.scheme, m.Pattern) && (isRomanScheme(l.scheme) || len(l.items) == 1) {
		return romanValue(m) == romanOrdinal(l.scheme, l.last)+1
	}
	return false
}

// advance records m as the level's last item, switching a letter level to
// roman numbering when the labels turn out to be roman numerals
func (l *openLevel) advance(m Marker) {
	if !l.style.IsOrdered() {
		return
	}
	if m.Pattern != l.scheme && romanPair(l.scheme, m.Pattern) {
		if isRomanScheme(m.Pattern) {
			for _, item := range l.items {
				item.Number = romanLetters[item.Number]
			}
			l.style = m.Style
			l.scheme = m.Pattern
		}
		l.last = romanValue(m)
		return
	}
	l.last = m.Number
}

// romanLetters maps the alphabet positions of i, v and x to their values
var romanLetters = map[int]int{9: 1, 22: 5, 24: 10}

var romanSchemes = map[string]string{
	"alpha-lower": "roman-lower",
	"alpha-upper": "roman-upper",
}

func isRomanScheme(scheme string) bool {
	return scheme == "roman-lower" || scheme == "roman-upper"
}

// romanPair reports whether a and b are the letter and roman schemes of one case
func romanPair(a, b string) bool {
	return romanSchemes[a] == b || romanSchemes[b] == a
}

// romanOrdinal returns the roman value of an ordinal under scheme
func romanOrdinal(scheme string, n int) int {
	if isRomanScheme(scheme) {
		return n
	}
	return romanLetters[n]
}

func romanValue(m Marker) int {
	return romanOrdinal(m.Pattern, m.Number)
}

// pattern returns the label expression of m's scheme, deriving it once per level
func (l *openLevel) pattern(markers *MarkerCatalog, m Marker) *regexp.Regexp {
	if m.Pattern == "" {
		return nil
	}
	if re, ok := l.patterns[m.Pattern]; ok {
		return re
	}
	re := markers.LabelPattern(m)
	l.patterns[m.Pattern] = re
	return re
}

// continueItem attaches an unlabeled paragraph to the innermost open item
// it is indented under, closing deeper levels it has left
func (st *listState) continueItem(n *model.Node) bool {
	if len(st.stack) == 0 {
		return false
	}
	box := n.BoundingBox()
	if !st.closeEnough(box, n.MaxFontSize()) {
		return false
	}

	for len(st.stack) > 0 {
		top := st.top()
		if continues(top.info, box.LeftX) {
			item := top.items[len(top.items)-1]
			item.AppendChild(n)
			st.lastBottom = box.BottomY
			return true
		}
		st.pop()
	}
	return false
}

// continues reports whether a paragraph starting at leftX belongs to the
// body of an item at level: right of a text label, or aligned with the text
// of a drawn bullet
func continues(level LevelInfo, leftX float64) bool {
	if level.IsLineArtBullet() {
		return leftX >= level.LeftX-level.MaxXGap()
	}
	return leftX > level.LeftX+level.MaxXGap()
}

func (st *listState) closeEnough(box model.BBox, fontSize float64) bool {
	if fontSize <= 0 {
		fontSize = box.Height()
	}
	gap := st.lastBottom - box.TopY
	return gap >= -fontSize && gap <= st.assembler.config.MaxItemGap*fontSize
}

func (st *listState) push(info LevelInfo) *openLevel {
	level := &openLevel{info: info, patterns: make(map[string]*regexp.Regexp)}
	st.stack = append(st.stack, level)
	return level
}

// pop closes the innermost level. A nested list joins the last item of its
// parent; a top-level list is emitted.
func (st *listState) pop() {
	level := st.top()
	st.stack = st.stack[:len(st.stack)-1]

	list := model.NewList(level.style, level.items...)
	list.CommonPrefix = commonPrefix(level.labels, level.style)

	if len(st.stack) > 0 {
		parent := st.top()
		parent.items[len(parent.items)-1].AppendChild(list)
		return
	}
	st.emit(list)
}

func (st *listState) emit(list *model.Node) {
	if len(list.Children) >= st.assembler.config.MinItems || hasNestedList(list) {
		st.out = append(st.out, list)
		return
	}
	for _, item := range list.Children {
		st.out = append(st.out, item.Children...)
	}
}

func (st *listState) closeAll() {
	for len(st.stack) > 0 {
		st.pop()
	}
}

func hasNestedList(list *model.Node) bool {
	for _, item := range list.Children {
		for _, c := range item.Children {
			if c.Kind == model.NodeKindList {
				return true
			}
		}
	}
	return false
}

// commonPrefix returns the longest prefix shared by all labels. For
// counted styles the trailing counter characters are not part of it.
func commonPrefix(labels []string, style model.NumberingStyle) string {
	if len(labels) == 0 {
		return ""
	}
	prefix := labels[0]
	for _, l := range labels[1:] {
		for !strings.HasPrefix(l, prefix) {
			_, size := utf8.DecodeLastRuneInString(prefix)
			prefix = prefix[:len(prefix)-size]
		}
	}
	if style.IsOrdered() {
		prefix = strings.TrimRightFunc(prefix, func(r rune) bool {
			return unicode.IsLetter(r) || unicode.IsDigit(r)
		})
	}
	return prefix
}
