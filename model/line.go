package model

import (
	"math"
	"strings"
)

// TextLine is an ordered run of text fragments sharing a baseline. The
// fragments keep their input order; a line never reorders what it holds.
type TextLine struct {
	Fragments []*TextFragment

	// Bullet links a line-art shape drawn as this line's list label. The
	// line does not own it: the shape stays a separate fragment in the
	// sequence and is moved into a list item by the list assembler.
	Bullet *LineArtFragment
}

// NewTextLine creates a line holding the given fragments
func NewTextLine(fragments ...*TextFragment) *TextLine {
	return &TextLine{Fragments: fragments}
}

// Append adds a fragment to the end of the line
func (l *TextLine) Append(f *TextFragment) {
	l.Fragments = append(l.Fragments, f)
}

// Value returns the concatenation of the fragment texts in input order
func (l *TextLine) Value() string {
	var sb strings.Builder
	for _, f := range l.Fragments {
		sb.WriteString(f.Text)
	}
	return sb.String()
}

// BBox returns the union of the fragment boxes
func (l *TextLine) BBox() BBox {
	if len(l.Fragments) == 0 {
		return BBox{}
	}
	result := l.Fragments[0].BBox
	for _, f := range l.Fragments[1:] {
		result = result.Union(f.BBox)
	}
	return result
}

// LeftX returns the left edge of the line
func (l *TextLine) LeftX() float64 { return l.BBox().LeftX }

// RightX returns the right edge of the line
func (l *TextLine) RightX() float64 { return l.BBox().RightX }

// Height returns the vertical extent of the line
func (l *TextLine) Height() float64 { return l.BBox().Height() }

// Baseline returns the baseline of the first visible fragment, falling back
// to the first fragment when the line is only whitespace
func (l *TextLine) Baseline() float64 {
	if f := l.firstVisible(); f != nil {
		return f.Baseline()
	}
	if len(l.Fragments) > 0 {
		return l.Fragments[0].Baseline()
	}
	return 0
}

// MaxFontSize returns the largest font size on the line
func (l *TextLine) MaxFontSize() float64 {
	size := 0.0
	for _, f := range l.Fragments {
		size = math.Max(size, f.FontSize)
	}
	return size
}

// Hidden reports whether every visible fragment of the line is hidden
func (l *TextLine) Hidden() bool {
	seen := false
	for _, f := range l.Fragments {
		if f.IsWhitespace() {
			continue
		}
		if !f.Hidden {
			return false
		}
		seen = true
	}
	return seen
}

// IsWhitespace reports whether the line has no visible characters
func (l *TextLine) IsWhitespace() bool {
	return l.firstVisible() == nil
}

func (l *TextLine) firstVisible() *TextFragment {
	for _, f := range l.Fragments {
		if !f.IsWhitespace() {
			return f
		}
	}
	return nil
}
