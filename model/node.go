package model

import (
	"fmt"
	"math"
	"strings"
)

// NodeKind represents the semantic type of a tree node
type NodeKind int

const (
	NodeKindUnknown NodeKind = iota
	NodeKindParagraph
	NodeKindHeading
	NodeKindListItem
	NodeKindList
	NodeKindTable
	NodeKindCaption
	NodeKindPicture
	NodeKindFormula
	NodeKindHeaderFooter
	NodeKindLineArt
)

func (k NodeKind) String() string {
	switch k {
	case NodeKindParagraph:
		return "Paragraph"
	case NodeKindHeading:
		return "Heading"
	case NodeKindListItem:
		return "ListItem"
	case NodeKindList:
		return "List"
	case NodeKindTable:
		return "Table"
	case NodeKindCaption:
		return "Caption"
	case NodeKindPicture:
		return "Picture"
	case NodeKindFormula:
		return "Formula"
	case NodeKindHeaderFooter:
		return "HeaderFooter"
	case NodeKindLineArt:
		return "LineArt"
	default:
		return "Unknown"
	}
}

// NumberingStyle represents how the items of a list are labeled
type NumberingStyle int

const (
	NumberingNone NumberingStyle = iota
	NumberingBullet
	NumberingArabic
	NumberingLowerAlpha
	NumberingUpperAlpha
	NumberingLowerRoman
	NumberingUpperRoman
	NumberingCheckbox
)

func (s NumberingStyle) String() string {
	switch s {
	case NumberingBullet:
		return "bullet"
	case NumberingArabic:
		return "arabic"
	case NumberingLowerAlpha:
		return "lower-alpha"
	case NumberingUpperAlpha:
		return "upper-alpha"
	case NumberingLowerRoman:
		return "lower-roman"
	case NumberingUpperRoman:
		return "upper-roman"
	case NumberingCheckbox:
		return "checkbox"
	default:
		return "none"
	}
}

// IsOrdered reports whether the style counts its items
func (s NumberingStyle) IsOrdered() bool {
	switch s {
	case NumberingArabic, NumberingLowerAlpha, NumberingUpperAlpha,
		NumberingLowerRoman, NumberingUpperRoman:
		return true
	}
	return false
}

// Node is one element of the semantic tree. A node holds exactly one of
// Lines (text-bearing kinds), Fragment (media leaves) or Children (List and
// ListItem); the others are empty.
type Node struct {
	Kind NodeKind
	ID   int64

	Lines    []*TextLine
	Fragment Fragment
	Children []*Node

	// Level is the structural depth ("1", "2", ...) of lists, tables and
	// bulleted paragraphs, empty for other nodes.
	Level string

	HeadingLevel   int            // Heading: 1-6
	NumberingStyle NumberingStyle // List
	CommonPrefix   string         // List: prefix shared by all item labels
	Label          string         // ListItem: marker as printed, "" for drawn bullets
	Number         int            // ListItem: ordinal of counted labels, 0 otherwise
	ContinuesID    int64          // List: ID of the earlier list this one continues
	ContinuedByID  int64          // List: ID of the later list continuing this one
	PictureIndex   int            // Picture: 1-based index within the run
	Description    string         // Picture: alternate text
	LaTeX          string         // Formula
	Header         bool           // HeaderFooter: true for a header, false for a footer
	LinkedID       int64          // Caption: ID of the described node

	bbox BBox
}

// NewTextNode creates a text-bearing node of the given kind
func NewTextNode(kind NodeKind, lines ...*TextLine) *Node {
	n := &Node{Kind: kind, Lines: lines}
	n.updateBBox()
	return n
}

// NewParagraph creates a paragraph node holding lines
func NewParagraph(lines ...*TextLine) *Node {
	return NewTextNode(NodeKindParagraph, lines...)
}

// NewMediaNode wraps a non-text fragment in its leaf node. Images become
// pictures, tables become tables, line art stays line art.
func NewMediaNode(f Fragment) *Node {
	n := &Node{Fragment: f, bbox: f.BoundingBox()}
	switch v := f.(type) {
	case *ImageFragment:
		n.Kind = NodeKindPicture
		n.Description = v.Description
	case *TableFragment:
		n.Kind = NodeKindTable
	case *LineArtFragment:
		n.Kind = NodeKindLineArt
	default:
		n.Kind = NodeKindUnknown
	}
	return n
}

// NewList creates a list node over its items
func NewList(style NumberingStyle, items ...*Node) *Node {
	n := &Node{Kind: NodeKindList, NumberingStyle: style, Children: items}
	n.updateBBox()
	return n
}

// NewListItem creates a list item node. children hold the item body and any
// nested lists, in reading order.
func NewListItem(label string, children ...*Node) *Node {
	n := &Node{Kind: NodeKindListItem, Label: label, Children: children}
	n.updateBBox()
	return n
}

// AppendLine adds a line to a text-bearing node
func (n *Node) AppendLine(line *TextLine) {
	n.Lines = append(n.Lines, line)
	n.updateBBox()
}

// AppendChild adds a child to a List or ListItem node
func (n *Node) AppendChild(child *Node) {
	n.Children = append(n.Children, child)
	n.updateBBox()
}

// Clone returns a shallow copy of the node. The copy shares lines,
// fragment and children with the original.
func (n *Node) Clone() *Node {
	c := *n
	return &c
}

// WithKind returns a copy of the node relabeled as kind
func (n *Node) WithKind(kind NodeKind) *Node {
	c := n.Clone()
	c.Kind = kind
	return c
}

// BoundingBox returns the union of everything the node holds
func (n *Node) BoundingBox() BBox {
	return n.bbox
}

func (n *Node) updateBBox() {
	var boxes []BBox
	for _, l := range n.Lines {
		if len(l.Fragments) > 0 {
			boxes = append(boxes, l.BBox())
		}
	}
	if n.Fragment != nil {
		boxes = append(boxes, n.Fragment.BoundingBox())
	}
	for _, c := range n.Children {
		boxes = append(boxes, c.BoundingBox())
	}
	n.bbox = UnionAll(boxes...)
}

// IsText reports whether the node carries text lines
func (n *Node) IsText() bool {
	return len(n.Lines) > 0
}

// IsMedia reports whether the node wraps a picture, table or line art
func (n *Node) IsMedia() bool {
	return n.Kind == NodeKindPicture || n.Kind == NodeKindTable || n.Kind == NodeKindLineArt
}

// FirstLine returns the first text line of the node, descending into list
// items, or nil
func (n *Node) FirstLine() *TextLine {
	if len(n.Lines) > 0 {
		return n.Lines[0]
	}
	for _, c := range n.Children {
		if l := c.FirstLine(); l != nil {
			return l
		}
	}
	return nil
}

// LastLine returns the last text line of the node, descending into children
func (n *Node) LastLine() *TextLine {
	if len(n.Lines) > 0 {
		return n.Lines[len(n.Lines)-1]
	}
	for i := len(n.Children) - 1; i >= 0; i-- {
		if l := n.Children[i].LastLine(); l != nil {
			return l
		}
	}
	return nil
}

// MaxFontSize returns the largest font size among the node's lines
func (n *Node) MaxFontSize() float64 {
	size := 0.0
	for _, l := range n.Lines {
		size = math.Max(size, l.MaxFontSize())
	}
	for _, c := range n.Children {
		size = math.Max(size, c.MaxFontSize())
	}
	return size
}

// Text returns the node text with lines joined by a space
func (n *Node) Text() string {
	return n.TextWithSeparator(" ")
}

// TextWithSeparator returns the node text with lines joined by sep. List
// and ListItem children are joined by newlines.
func (n *Node) TextWithSeparator(sep string) string {
	if len(n.Lines) > 0 {
		parts := make([]string, 0, len(n.Lines))
		for _, l := range n.Lines {
			parts = append(parts, strings.TrimSpace(l.Value()))
		}
		return strings.Join(parts, sep)
	}
	if t, ok := n.Fragment.(*TableFragment); ok {
		return strings.TrimRight(t.GetText(), "\n")
	}
	var parts []string
	for _, c := range n.Children {
		if c.Kind == NodeKindLineArt {
			continue
		}
		if s := c.TextWithSeparator(sep); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, "\n")
}

// ItemText returns a list item's text with its label removed
func (n *Node) ItemText() string {
	text := n.Text()
	if n.Kind != NodeKindListItem || n.Label == "" {
		return text
	}
	return strings.TrimSpace(strings.TrimPrefix(text, n.Label))
}

// Walk calls fn for the node and its descendants in depth-first order. A
// false return from fn skips the node's children.
func (n *Node) Walk(fn func(*Node) bool) {
	if !fn(n) {
		return
	}
	for _, c := range n.Children {
		c.Walk(fn)
	}
}

func (n *Node) String() string {
	return fmt.Sprintf("%s#%d%s", n.Kind, n.ID, n.bbox)
}

// Leaves returns every fragment owned by nodes, depth-first and left to
// right. Line bullets are links, not ownership, and are not reported.
func Leaves(nodes []*Node) []Fragment {
	var out []Fragment
	for _, n := range nodes {
		out = appendLeaves(out, n)
	}
	return out
}

func appendLeaves(out []Fragment, n *Node) []Fragment {
	for _, l := range n.Lines {
		for _, f := range l.Fragments {
			out = append(out, f)
		}
	}
	if n.Fragment != nil {
		out = append(out, n.Fragment)
	}
	for _, c := range n.Children {
		out = appendLeaves(out, c)
	}
	return out
}

// VerifyConservation checks that nodes own every fragment of input exactly
// once and in input order. The returned error wraps ErrConservation.
func VerifyConservation(input []Fragment, nodes []*Node) error {
	leaves := Leaves(nodes)
	n := len(input)
	if len(leaves) < n {
		n = len(leaves)
	}
	for i := 0; i < n; i++ {
		if leaves[i] != input[i] {
			return fmt.Errorf("%w: position %d holds %s fragment at %s, want %s fragment at %s",
				ErrConservation, i, leaves[i].Kind(), leaves[i].BoundingBox(),
				input[i].Kind(), input[i].BoundingBox())
		}
	}
	if len(leaves) != len(input) {
		return fmt.Errorf("%w: tree holds %d fragments, input has %d",
			ErrConservation, len(leaves), len(input))
	}
	return nil
}
