package model

import (
	"fmt"
	"strings"
)

// FragmentKind represents the type of an input fragment
type FragmentKind int

const (
	FragmentKindUnknown FragmentKind = iota
	FragmentKindText
	FragmentKindImage
	FragmentKindLineArt
	FragmentKindTable
)

func (k FragmentKind) String() string {
	switch k {
	case FragmentKindText:
		return "Text"
	case FragmentKindImage:
		return "Image"
	case FragmentKindLineArt:
		return "LineArt"
	case FragmentKindTable:
		return "Table"
	default:
		return "Unknown"
	}
}

// Fragment is the interface for all positioned page primitives delivered by
// a decoder. Fragments are always handled by pointer; two fragments are the
// same fragment only if they are the same pointer.
type Fragment interface {
	Kind() FragmentKind
	BoundingBox() BBox
}

// TextFragment represents a positioned run of text
type TextFragment struct {
	Text     string
	FontSize float64
	FontName string
	BBox     BBox
	Hidden   bool // rendered invisibly (render mode 3, clipped, or white-on-white)
}

func (f *TextFragment) Kind() FragmentKind { return FragmentKindText }
func (f *TextFragment) BoundingBox() BBox  { return f.BBox }

// Baseline returns the bottom edge used for line grouping
func (f *TextFragment) Baseline() float64 { return f.BBox.BottomY }

// IsWhitespace reports whether the fragment carries no visible characters
func (f *TextFragment) IsWhitespace() bool {
	return strings.TrimSpace(f.Text) == ""
}

func (f *TextFragment) String() string {
	return fmt.Sprintf("%s@%s", f.Text, f.BBox)
}

// ImageFragment represents a placed raster image
type ImageFragment struct {
	BBox          BBox
	SequenceIndex int    // order of the image in the decoder's stream
	Description   string // alternate text, if the producer supplied one
}

func (f *ImageFragment) Kind() FragmentKind { return FragmentKindImage }
func (f *ImageFragment) BoundingBox() BBox  { return f.BBox }

// LineArtFragment represents a vector shape: a rule, box, or drawn bullet
type LineArtFragment struct {
	BBox BBox
}

func (f *LineArtFragment) Kind() FragmentKind { return FragmentKindLineArt }
func (f *LineArtFragment) BoundingBox() BBox  { return f.BBox }

// ValidateFragment checks that a fragment delivered on page is usable by the
// pipeline. The returned error wraps ErrNilFragment, ErrInvalidBBox or
// ErrPageMismatch.
func ValidateFragment(f Fragment, page int) error {
	if f == nil {
		return ErrNilFragment
	}
	bbox := f.BoundingBox()
	if err := bbox.Validate(); err != nil {
		return err
	}
	if bbox.Page != page {
		return fmt.Errorf("%w: fragment on page %d delivered with page %d", ErrPageMismatch, bbox.Page, page)
	}
	return nil
}
