package model

import (
	"fmt"
	"strings"
)

// Document is the result of one recognition run
type Document struct {
	Pages []*Page

	// ContentID is the next content id the run would have assigned
	ContentID int64

	// ImageIndex is the number of pictures indexed during the run
	ImageIndex int

	// Run settings the tree was built with
	KeepLineBreaks bool
	EmbedImages    bool   // renderers inline image data
	ImageFormat    string // extension of persisted image files
}

// Page holds the semantic nodes of a single page in reading order
type Page struct {
	Index int // 0-based page index
	Nodes []*Node
}

// NewDocument creates a new empty document
func NewDocument() *Document {
	return &Document{
		Pages: make([]*Page, 0),
	}
}

// AddPage appends a page holding nodes and returns it
func (d *Document) AddPage(nodes []*Node) *Page {
	page := &Page{Index: len(d.Pages), Nodes: nodes}
	d.Pages = append(d.Pages, page)
	return page
}

// LineSeparator returns the string placed between the lines of a paragraph
func (d *Document) LineSeparator() string {
	if d.KeepLineBreaks {
		return "\n"
	}
	return " "
}

// ImageFileName returns the file name of the picture with the given index
func (d *Document) ImageFileName(index int) string {
	return ImageFileName(index, d.ImageFormat)
}

// ImageFileName names the file of picture index in format ("png" when empty)
func ImageFileName(index int, format string) string {
	if format == "" {
		format = "png"
	}
	return fmt.Sprintf("imageFile%d.%s", index, format)
}

// Number returns the 1-indexed page number
func (p *Page) Number() int {
	return p.Index + 1
}

// GetPage returns a page by number (1-indexed)
func (d *Document) GetPage(number int) *Page {
	if number < 1 || number > len(d.Pages) {
		return nil
	}
	return d.Pages[number-1]
}

// PageCount returns the total number of pages
func (d *Document) PageCount() int {
	return len(d.Pages)
}

// Leaves returns every fragment of the document in reading order
func (d *Document) Leaves() []Fragment {
	var out []Fragment
	for _, page := range d.Pages {
		out = append(out, Leaves(page.Nodes)...)
	}
	return out
}

// Walk visits every node of every page depth-first
func (d *Document) Walk(fn func(*Node) bool) {
	for _, page := range d.Pages {
		for _, n := range page.Nodes {
			n.Walk(fn)
		}
	}
}

// NodesOfKind returns all nodes of the given kind in reading order
func (d *Document) NodesOfKind(kind NodeKind) []*Node {
	var nodes []*Node
	d.Walk(func(n *Node) bool {
		if n.Kind == kind {
			nodes = append(nodes, n)
		}
		return true
	})
	return nodes
}

// Headings returns all headings across all pages
func (d *Document) Headings() []*Node {
	return d.NodesOfKind(NodeKindHeading)
}

// Lists returns all top-level and nested lists across all pages
func (d *Document) Lists() []*Node {
	return d.NodesOfKind(NodeKindList)
}

// ExtractText returns the text of all top-level nodes, one per line, with
// the lines inside a node joined by sep. Headers and footers are skipped.
func (d *Document) ExtractText(sep string) string {
	var sb strings.Builder
	for _, page := range d.Pages {
		for _, n := range page.Nodes {
			if n.Kind == NodeKindHeaderFooter {
				continue
			}
			if s := n.TextWithSeparator(sep); s != "" {
				sb.WriteString(s)
				sb.WriteString("\n")
			}
		}
	}
	return sb.String()
}
