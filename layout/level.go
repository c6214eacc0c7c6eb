package layout

import (
	"math"
	"strconv"

	"github.com/tsawler/strata/model"
)

// LevelKind represents the kind of structural unit a LevelInfo describes
type LevelKind int

const (
	LevelKindBlock LevelKind = iota // plain text run, no label
	LevelKindList
	LevelKindTextBullet
	LevelKindLineArtBullet
	LevelKindTable
)

func (k LevelKind) String() string {
	switch k {
	case LevelKindList:
		return "list"
	case LevelKindTextBullet:
		return "text-bullet"
	case LevelKindLineArtBullet:
		return "line-art-bullet"
	case LevelKindTable:
		return "table"
	default:
		return "block"
	}
}

// LevelInfo describes the horizontal footprint and labeling of a structural
// unit. Which fields are meaningful depends on Kind.
type LevelInfo struct {
	Kind LevelKind

	LeftX  float64
	RightX float64

	MaxFontSize   float64
	GapMultiplier float64

	// List
	NumberingStyle model.NumberingStyle
	CommonPrefix   string

	// TextBullet
	Label        string // first character of the labeled line
	LabelPattern string // marker scheme of the label

	// LineArtBullet
	Bullet *model.LineArtFragment
}

// IsList reports whether the level describes a list
func (l LevelInfo) IsList() bool { return l.Kind == LevelKindList }

// IsTextBullet reports whether the level describes a paragraph labeled with text
func (l LevelInfo) IsTextBullet() bool { return l.Kind == LevelKindTextBullet }

// IsLineArtBullet reports whether the level describes a paragraph labeled with a drawn bullet
func (l LevelInfo) IsLineArtBullet() bool { return l.Kind == LevelKindLineArtBullet }

// IsTable reports whether the level describes a table
func (l LevelInfo) IsTable() bool { return l.Kind == LevelKindTable }

// IsBlock reports whether the level describes an unlabeled text run
func (l LevelInfo) IsBlock() bool { return l.Kind == LevelKindBlock }

// IsBulleted reports whether the level carries a text or drawn label
func (l LevelInfo) IsBulleted() bool { return l.IsTextBullet() || l.IsLineArtBullet() }

// MaxXGap returns the alignment slack of the level. Tables have none.
func (l LevelInfo) MaxXGap() float64 {
	if l.IsTable() {
		return 0
	}
	return l.MaxFontSize * l.GapMultiplier
}

// MaxXGapOf returns the larger slack of two levels
func MaxXGapOf(a, b LevelInfo) float64 {
	return math.Max(a.MaxXGap(), b.MaxXGap())
}

// Contains reports whether leftX falls within the level's alignment band
func (l LevelInfo) Contains(leftX float64) bool {
	return math.Abs(leftX-l.LeftX) <= l.MaxXGap()
}

// SameLevel reports whether two units sit at the same structural level:
// lists with the same numbering style and common prefix, text bullets with
// the same label or label scheme, or drawn bullets of the same size, whose
// footprints are compatible. Tables never match anything.
func (l LevelInfo) SameLevel(other LevelInfo) bool {
	if l.IsTable() || other.IsTable() {
		return false
	}

	compatible := false
	switch {
	case l.IsList() && other.IsList():
		compatible = l.NumberingStyle == other.NumberingStyle && l.CommonPrefix == other.CommonPrefix
	case l.IsTextBullet() && other.IsTextBullet():
		if l.Label == other.Label {
			compatible = true
		}
		if l.LabelPattern != "" && l.LabelPattern == other.LabelPattern {
			// chapter markers are one level wherever they sit
			if l.LabelPattern == "chapter" {
				return true
			}
			compatible = true
		}
	case l.IsLineArtBullet() && other.IsLineArtBullet():
		compatible = sameSize(l.Bullet, other.Bullet)
	}
	if !compatible {
		return false
	}
	return l.footprintMatches(other)
}

// footprintMatches accepts horizontally disjoint footprints outright and
// otherwise requires the left or the right edges to agree within the slack
func (l LevelInfo) footprintMatches(other LevelInfo) bool {
	if l.RightX < other.LeftX || other.RightX < l.LeftX {
		return true
	}
	gap := MaxXGapOf(l, other)
	return closeTo(l.LeftX, other.LeftX, gap) || closeTo(l.RightX, other.RightX, gap)
}

func sameSize(a, b *model.LineArtFragment) bool {
	if a == nil || b == nil {
		return false
	}
	const tolerance = 0.5
	return closeTo(a.BBox.Width(), b.BBox.Width(), tolerance) &&
		closeTo(a.BBox.Height(), b.BBox.Height(), tolerance)
}

func closeTo(a, b, tolerance float64) bool {
	return math.Abs(a-b) <= tolerance
}

// LevelConfig holds configuration for level classification
type LevelConfig struct {
	// GapMultiplier scales the largest font size of a unit into its
	// alignment slack (default: 0.3)
	GapMultiplier float64
}

// DefaultLevelConfig returns sensible default configuration
func DefaultLevelConfig() LevelConfig {
	return LevelConfig{
		GapMultiplier: 0.3,
	}
}

// LevelClassifier derives LevelInfo values from nodes and lines
type LevelClassifier struct {
	config  LevelConfig
	markers *MarkerCatalog
}

// NewLevelClassifier creates a classifier with default configuration
func NewLevelClassifier() *LevelClassifier {
	return NewLevelClassifierWithConfig(DefaultLevelConfig(), DefaultMarkerCatalog())
}

// NewLevelClassifierWithConfig creates a classifier with custom configuration
func NewLevelClassifierWithConfig(config LevelConfig, markers *MarkerCatalog) *LevelClassifier {
	if markers == nil {
		markers = DefaultMarkerCatalog()
	}
	return &LevelClassifier{
		config:  config,
		markers: markers,
	}
}

// Markers returns the marker catalog used to recognize labels
func (c *LevelClassifier) Markers() *MarkerCatalog {
	return c.markers
}

// ForLines classifies a text run by its first line: a drawn bullet makes it
// a line-art bullet, a marker a text bullet, anything else a block
func (c *LevelClassifier) ForLines(lines []*model.TextLine) LevelInfo {
	info := LevelInfo{Kind: LevelKindBlock, GapMultiplier: c.config.GapMultiplier}
	if len(lines) == 0 {
		return info
	}

	box := lines[0].BBox()
	for _, l := range lines {
		box = box.Union(l.BBox())
		info.MaxFontSize = math.Max(info.MaxFontSize, l.MaxFontSize())
	}
	first := lines[0]
	info.LeftX = first.LeftX()
	info.RightX = box.RightX

	if first.Bullet != nil {
		info.Kind = LevelKindLineArtBullet
		info.Bullet = first.Bullet
		return info
	}
	if m, ok := c.markers.Detect(first.Value()); ok {
		info.Kind = LevelKindTextBullet
		info.Label = firstRune(m.Label)
		info.LabelPattern = m.Pattern
		if m.IsGlyph() {
			info.LabelPattern = ""
		}
	}
	return info
}

// ForNode classifies a node. ok is false for nodes that have no level,
// such as pictures and line art.
func (c *LevelClassifier) ForNode(n *model.Node) (info LevelInfo, ok bool) {
	switch n.Kind {
	case model.NodeKindTable:
		return LevelInfo{Kind: LevelKindTable, GapMultiplier: c.config.GapMultiplier}, true
	case model.NodeKindList:
		return c.forList(n), true
	}
	if n.IsText() {
		return c.ForLines(n.Lines), true
	}
	return LevelInfo{}, false
}

func (c *LevelClassifier) forList(list *model.Node) LevelInfo {
	info := LevelInfo{
		Kind:           LevelKindList,
		RightX:         list.BoundingBox().RightX,
		MaxFontSize:    list.MaxFontSize(),
		GapMultiplier:  c.config.GapMultiplier,
		NumberingStyle: list.NumberingStyle,
		CommonPrefix:   list.CommonPrefix,
	}
	if len(list.Children) > 0 {
		if line := list.Children[0].FirstLine(); line != nil {
			info.LeftX = line.LeftX()
		}
	}
	return info
}

func firstRune(s string) string {
	for _, r := range s {
		return string(r)
	}
	return ""
}

// levelName formats a 0-based stack depth as a structural level
func levelName(depth int) string {
	return strconv.Itoa(depth + 1)
}
