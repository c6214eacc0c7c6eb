package strata

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/tsawler/strata/layout"
	"github.com/tsawler/strata/model"
	"github.com/tsawler/strata/pdfsource"
)

// Extractor provides a fluent interface for building the semantic tree of a
// document. Each configuration method returns a new Extractor instance,
// making it safe for concurrent use and allowing method chaining.
type Extractor struct {
	// Source: a PDF file or pre-decoded pages
	filename string
	source   [][]model.Fragment

	// Configuration
	config  layout.AnalyzerConfig
	options ExtractOptions
}

func defaultConfig() layout.AnalyzerConfig {
	return layout.DefaultAnalyzerConfig()
}

// clone creates a shallow copy of the Extractor with a deep copy of options.
// This ensures immutability - each chain method returns a new instance.
func (e *Extractor) clone() *Extractor {
	return &Extractor{
		filename: e.filename,
		source:   e.source,
		config:   e.config,
		options:  e.options.clone(),
	}
}

// ============================================================================
// Configuration methods
// ============================================================================

// Pages specifies which pages to analyze (1-indexed). Other pages are kept
// as empty pages in the result. Multiple calls are cumulative.
//
// Example:
//
//	doc, err := strata.Open("doc.pdf").Pages(1, 3, 5).Tree()
func (e *Extractor) Pages(pages ...int) *Extractor {
	newExt := e.clone()
	newExt.options.pages = append(newExt.options.pages, pages...)
	return newExt
}

// PageRange specifies a range of pages to analyze (1-indexed, inclusive).
//
// Example:
//
//	doc, err := strata.Open("doc.pdf").PageRange(5, 10).Tree()
func (e *Extractor) PageRange(start, end int) *Extractor {
	newExt := e.clone()
	for i := start; i <= end; i++ {
		newExt.options.pages = append(newExt.options.pages, i)
	}
	return newExt
}

// ExcludeHeadersFooters drops detected running headers and footers from
// Text output.
func (e *Extractor) ExcludeHeadersFooters() *Extractor {
	newExt := e.clone()
	newExt.options.excludeHeadersFooters = true
	return newExt
}

// KeepLineBreaks joins the lines of a paragraph with newlines instead of
// spaces in Text output.
func (e *Extractor) KeepLineBreaks() *Extractor {
	newExt := e.clone()
	newExt.options.keepLineBreaks = true
	return newExt
}

// FindHiddenText keeps invisible text in lines and paragraphs of its own
// instead of merging it with visible text.
func (e *Extractor) FindHiddenText() *Extractor {
	newExt := e.clone()
	newExt.options.findHiddenText = true
	return newExt
}

// EmbedImages asks renderers to inline images in the given format
// ("png" when empty).
func (e *Extractor) EmbedImages(format string) *Extractor {
	newExt := e.clone()
	newExt.options.embedImages = true
	if format != "" {
		newExt.options.imageFormat = format
	}
	return newExt
}

// WithConfig replaces the layout configuration. A logger set with
// WithLogger is kept when config has none.
func (e *Extractor) WithConfig(config layout.AnalyzerConfig) *Extractor {
	newExt := e.clone()
	if config.Logger == nil {
		config.Logger = e.config.Logger
	}
	newExt.config = config
	return newExt
}

// WithLogger sets the logger receiving pipeline diagnostics.
func (e *Extractor) WithLogger(logger logrus.FieldLogger) *Extractor {
	newExt := e.clone()
	newExt.config.Logger = logger
	return newExt
}

// ============================================================================
// Terminal operations
// ============================================================================

// PageCount returns the number of pages of the source.
func (e *Extractor) PageCount() (int, error) {
	if e.source != nil || e.filename == "" {
		return len(e.source), nil
	}
	doc, err := pdfsource.Open(e.filename)
	if err != nil {
		return 0, fmt.Errorf("failed to open PDF: %w", err)
	}
	defer doc.Close()
	return doc.PageCount(), nil
}

// Fragments returns the decoded fragments of every page. Unselected pages
// are empty.
func (e *Extractor) Fragments() ([][]model.Fragment, error) {
	if e.source != nil {
		return e.selectSource()
	}
	if e.filename == "" {
		return nil, fmt.Errorf("no filename specified")
	}

	doc, err := pdfsource.Open(e.filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF: %w", err)
	}
	defer doc.Close()

	indices, err := e.resolvePages(doc.PageCount())
	if err != nil {
		return nil, err
	}
	pages := make([][]model.Fragment, doc.PageCount())
	for _, i := range indices {
		fragments, err := doc.Page(i)
		if err != nil {
			return nil, err
		}
		pages[i] = fragments
	}
	return pages, nil
}

// Tree builds the semantic tree of the selected pages.
//
// Example:
//
//	doc, err := strata.Open("doc.pdf").Tree()
func (e *Extractor) Tree() (*model.Document, error) {
	return e.TreeContext(context.Background())
}

// TreeContext is Tree with cancellation.
func (e *Extractor) TreeContext(ctx context.Context) (*model.Document, error) {
	pages, err := e.Fragments()
	if err != nil {
		return nil, err
	}
	analyzer := layout.NewAnalyzerWithConfig(e.config)
	return analyzer.BuildContext(ctx, pages, e.options.runOptions())
}

// Text returns the text of the document, one top-level node per line.
//
// Example:
//
//	text, err := strata.Open("doc.pdf").ExcludeHeadersFooters().Text()
func (e *Extractor) Text() (string, error) {
	doc, err := e.Tree()
	if err != nil {
		return "", err
	}

	sep := doc.LineSeparator()
	var sb strings.Builder
	for _, page := range doc.Pages {
		for _, n := range page.Nodes {
			if n.Kind == model.NodeKindHeaderFooter && e.options.excludeHeadersFooters {
				continue
			}
			if s := n.TextWithSeparator(sep); s != "" {
				sb.WriteString(s)
				sb.WriteString("\n")
			}
		}
	}
	return sb.String(), nil
}

// Outline returns an indented outline of the tree, one section per page.
func (e *Extractor) Outline() (string, error) {
	doc, err := e.Tree()
	if err != nil {
		return "", err
	}
	return FormatDocument(doc), nil
}

// FormatDocument renders the outline of every page of doc
func FormatDocument(doc *model.Document) string {
	var sb strings.Builder
	for _, page := range doc.Pages {
		fmt.Fprintf(&sb, "page %d\n", page.Number())
		sb.WriteString(model.FormatOutline(page.Nodes))
	}
	return sb.String()
}

// ============================================================================
// Internal helpers
// ============================================================================

// resolvePages converts 1-indexed page numbers to 0-indexed and validates them.
// If no pages specified, returns all pages.
func (e *Extractor) resolvePages(pageCount int) ([]int, error) {
	// If no pages specified, use all pages
	if len(e.options.pages) == 0 {
		pageIndices := make([]int, pageCount)
		for i := 0; i < pageCount; i++ {
			pageIndices[i] = i
		}
		return pageIndices, nil
	}

	// Convert 1-indexed to 0-indexed and validate
	seen := make(map[int]bool)
	var pageIndices []int
	for _, p := range e.options.pages {
		if p < 1 || p > pageCount {
			return nil, fmt.Errorf("page %d out of range (1-%d)", p, pageCount)
		}
		zeroIndexed := p - 1
		if !seen[zeroIndexed] {
			seen[zeroIndexed] = true
			pageIndices = append(pageIndices, zeroIndexed)
		}
	}

	// Sort pages in order
	sort.Ints(pageIndices)
	return pageIndices, nil
}

// selectSource applies the page selection to pre-decoded pages
func (e *Extractor) selectSource() ([][]model.Fragment, error) {
	indices, err := e.resolvePages(len(e.source))
	if err != nil {
		return nil, err
	}
	pages := make([][]model.Fragment, len(e.source))
	for _, i := range indices {
		pages[i] = e.source[i]
	}
	return pages, nil
}
