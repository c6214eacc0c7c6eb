package layout

import (
	"math"

	"github.com/tsawler/strata/model"
)

// ParagraphConfig holds configuration for paragraph assembly
type ParagraphConfig struct {
	// FontSizeRatio is the largest ratio between the font sizes of two
	// consecutive lines that may still share a paragraph (default: 1.2)
	FontSizeRatio float64

	// MaxOverlapRatio is how far, as a fraction of the candidate line's
	// height, a candidate may reach above the paragraph's lower edge
	// (default: 0.5)
	MaxOverlapRatio float64
}

// DefaultParagraphConfig returns sensible default configuration
func DefaultParagraphConfig() ParagraphConfig {
	return ParagraphConfig{
		FontSizeRatio:   1.2,
		MaxOverlapRatio: 0.5,
	}
}

// ParagraphAssembler groups consecutive text lines into paragraphs
type ParagraphAssembler struct {
	config ParagraphConfig
	levels *LevelClassifier
}

// NewParagraphAssembler creates a new paragraph assembler with default configuration
func NewParagraphAssembler() *ParagraphAssembler {
	return NewParagraphAssemblerWithConfig(DefaultParagraphConfig(), NewLevelClassifier())
}

// NewParagraphAssemblerWithConfig creates a paragraph assembler with custom configuration
func NewParagraphAssemblerWithConfig(config ParagraphConfig, levels *LevelClassifier) *ParagraphAssembler {
	if levels == nil {
		levels = NewLevelClassifier()
	}
	return &ParagraphAssembler{
		config: config,
		levels: levels,
	}
}

// Assemble walks one page's segments and accumulates lines into paragraph
// nodes. Non-text segments close the open paragraph and become Picture,
// Table or LineArt leaves; pictures take the next index from rc.
func (a *ParagraphAssembler) Assemble(rc *RunContext, segments []Segment) []*model.Node {
	if len(segments) == 0 {
		return nil
	}

	nodes := make([]*model.Node, 0, len(segments))
	var open *model.Node
	var level LevelInfo

	for _, seg := range segments {
		if !seg.IsLine() {
			open = nil
			n := model.NewMediaNode(seg.Fragment)
			if n.Kind == model.NodeKindPicture {
				n.PictureIndex = rc.NextImageIndex()
			}
			nodes = append(nodes, n)
			continue
		}

		if open != nil && a.absorbs(rc, open, level, seg.Line) {
			open.AppendLine(seg.Line)
			level = a.levels.ForLines(open.Lines)
			continue
		}

		open = model.NewParagraph(seg.Line)
		level = a.levels.ForLines(open.Lines)
		nodes = append(nodes, open)
	}
	return nodes
}

// absorbs decides whether line continues the open paragraph
func (a *ParagraphAssembler) absorbs(rc *RunContext, open *model.Node, level LevelInfo, line *model.TextLine) bool {
	if line.IsWhitespace() {
		return true
	}
	last := open.LastLine()
	if last.IsWhitespace() && len(open.Lines) == 1 {
		return true
	}

	if rc.FindHiddenText() && last.Hidden() != line.Hidden() {
		return false
	}
	if line.Bullet != nil || a.levels.Markers().IsLabeled(line.Value()) {
		return false
	}

	box := open.BoundingBox()
	lineBox := line.BBox()
	gap := box.BottomY - lineBox.TopY
	if gap > level.MaxXGap() || gap < -a.config.MaxOverlapRatio*lineBox.Height() {
		return false
	}
	if box.HorizontalOverlap(lineBox) <= 0 {
		return false
	}
	if !fontSizesCompatible(last.MaxFontSize(), line.MaxFontSize(), a.config.FontSizeRatio) {
		return false
	}

	// wrapped lines of a text bullet hang right of the label; a drawn
	// bullet's lines align with the first line's text
	switch {
	case level.IsTextBullet():
		return lineBox.LeftX > level.LeftX+level.MaxXGap()
	case level.IsLineArtBullet():
		return lineBox.LeftX >= level.LeftX-level.MaxXGap()
	}
	return true
}

func fontSizesCompatible(a, b, ratio float64) bool {
	if a <= 0 || b <= 0 {
		return true
	}
	return math.Max(a, b)/math.Min(a, b) <= ratio
}
