package layout

import (
	"math"

	"github.com/tsawler/strata/model"
)

// Segment is one element of an assembled page: either a text line or a
// non-text fragment passed through untouched. Exactly one field is set.
type Segment struct {
	Line     *model.TextLine
	Fragment model.Fragment
}

// IsLine reports whether the segment holds a text line
func (s Segment) IsLine() bool {
	return s.Line != nil
}

// BoundingBox returns the box of the line or fragment
func (s Segment) BoundingBox() model.BBox {
	if s.Line != nil {
		return s.Line.BBox()
	}
	return s.Fragment.BoundingBox()
}

// LineConfig holds configuration for line assembly
type LineConfig struct {
	// BaselineTolerance is the largest baseline difference, in points, for
	// two text fragments to share a line (default: 1.0)
	BaselineTolerance float64

	// BulletHeightRatio is the largest line-art height, as a fraction of the
	// line height, that may be linked to the line as its bullet (default: 1.0)
	BulletHeightRatio float64
}

// DefaultLineConfig returns sensible default configuration
func DefaultLineConfig() LineConfig {
	return LineConfig{
		BaselineTolerance: 1.0,
		BulletHeightRatio: 1.0,
	}
}

// LineAssembler groups consecutive text fragments into text lines
type LineAssembler struct {
	config LineConfig
}

// NewLineAssembler creates a new line assembler with default configuration
func NewLineAssembler() *LineAssembler {
	return &LineAssembler{
		config: DefaultLineConfig(),
	}
}

// NewLineAssemblerWithConfig creates a line assembler with custom configuration
func NewLineAssemblerWithConfig(config LineConfig) *LineAssembler {
	return &LineAssembler{
		config: config,
	}
}

// Assemble makes a single forward pass over one page's fragments. A text
// fragment extends the open line when its baseline is within tolerance of
// the line's baseline (and, when hidden text is kept apart, its hidden flag
// matches); otherwise it opens a new line. Whitespace-only fragments extend
// any open line. Non-text fragments close the open line and are emitted
// unchanged. Fragment order is never changed.
func (a *LineAssembler) Assemble(rc *RunContext, fragments []model.Fragment) []Segment {
	if len(fragments) == 0 {
		return nil
	}

	segments := make([]Segment, 0, len(fragments))
	var open *model.TextLine

	for _, f := range fragments {
		tf, ok := f.(*model.TextFragment)
		if !ok {
			open = nil
			segments = append(segments, Segment{Fragment: f})
			continue
		}

		if open != nil && a.extends(rc, open, tf) {
			open.Append(tf)
			continue
		}

		open = model.NewTextLine(tf)
		segments = append(segments, Segment{Line: open})
	}

	a.linkBullets(segments)
	return segments
}

// extends decides whether tf continues the open line
func (a *LineAssembler) extends(rc *RunContext, open *model.TextLine, tf *model.TextFragment) bool {
	if tf.IsWhitespace() || open.IsWhitespace() {
		return true
	}
	if rc.FindHiddenText() && open.Hidden() != tf.Hidden {
		return false
	}
	return math.Abs(open.Baseline()-tf.Baseline()) <= a.config.BaselineTolerance
}

// linkBullets records a line-art shape as the bullet of the text line that
// immediately follows it when the shape ends left of the line, sits within
// the line's vertical extent and is shorter than the line
func (a *LineAssembler) linkBullets(segments []Segment) {
	for i := 0; i+1 < len(segments); i++ {
		art, ok := segments[i].Fragment.(*model.LineArtFragment)
		if !ok || !segments[i+1].IsLine() {
			continue
		}
		line := segments[i+1].Line
		if isConnectedBullet(art, line, a.config.BulletHeightRatio) {
			line.Bullet = art
		}
	}
}

func isConnectedBullet(art *model.LineArtFragment, line *model.TextLine, heightRatio float64) bool {
	lineBox := line.BBox()
	artBox := art.BBox
	if artBox.RightX > lineBox.LeftX {
		return false
	}
	if artBox.Height() >= heightRatio*lineBox.Height() {
		return false
	}
	center := artBox.Center().Y
	return center >= lineBox.BottomY && center <= lineBox.TopY
}

// Lines returns only the text lines of segments
func Lines(segments []Segment) []*model.TextLine {
	var lines []*model.TextLine
	for _, s := range segments {
		if s.IsLine() {
			lines = append(lines, s.Line)
		}
	}
	return lines
}

// Flatten returns the fragments of segments in order. Feeding the result
// back into Assemble yields the same grouping.
func Flatten(segments []Segment) []model.Fragment {
	var out []model.Fragment
	for _, s := range segments {
		if s.IsLine() {
			for _, f := range s.Line.Fragments {
				out = append(out, f)
			}
			continue
		}
		out = append(out, s.Fragment)
	}
	return out
}
