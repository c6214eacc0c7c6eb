package layout

import (
	"math"
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/tsawler/strata/model"
)

// RegionType indicates whether a region is a header or footer
type RegionType int

const (
	Header RegionType = iota
	Footer
)

func (r RegionType) String() string {
	if r == Header {
		return "header"
	}
	return "footer"
}

// HeaderFooterConfig holds configuration for header/footer detection
type HeaderFooterConfig struct {
	// PositionTolerance is the maximum Y difference for text to be considered same position
	// Default: 5 points
	PositionTolerance float64

	// MinPages is the minimum number of consecutive pages a text must repeat
	// on to be considered a header/footer
	// Default: 2
	MinPages int

	// PageNumbers when true, a lone page-number paragraph at the top or bottom
	// of a page is a header/footer even if it does not repeat
	// Default: true
	PageNumbers bool
}

// DefaultHeaderFooterConfig returns sensible default configuration
func DefaultHeaderFooterConfig() HeaderFooterConfig {
	return HeaderFooterConfig{
		PositionTolerance: 5.0,
		MinPages:          2,
		PageNumbers:       true,
	}
}

// HeaderFooterDetector identifies running headers and footers across pages
type HeaderFooterDetector struct {
	config HeaderFooterConfig
}

// NewHeaderFooterDetector creates a new header/footer detector with default configuration
func NewHeaderFooterDetector() *HeaderFooterDetector {
	return &HeaderFooterDetector{
		config: DefaultHeaderFooterConfig(),
	}
}

// NewHeaderFooterDetectorWithConfig creates a header/footer detector with custom configuration
func NewHeaderFooterDetectorWithConfig(config HeaderFooterConfig) *HeaderFooterDetector {
	return &HeaderFooterDetector{
		config: config,
	}
}

// candidate is the first or last paragraph of a page
type candidate struct {
	page  int
	index int
	key   string
	node  *model.Node
}

// Detect returns new page sequences in which repeated first and last
// paragraphs are replaced by HeaderFooter nodes
func (d *HeaderFooterDetector) Detect(pages [][]*model.Node) [][]*model.Node {
	out := make([][]*model.Node, len(pages))
	for p, nodes := range pages {
		out[p] = append([]*model.Node(nil), nodes...)
	}

	for _, region := range []RegionType{Header, Footer} {
		candidates := d.extractCandidates(pages, region)
		for _, c := range d.findRepeating(candidates) {
			hf := c.node.WithKind(model.NodeKindHeaderFooter)
			hf.Header = region == Header
			out[c.page][c.index] = hf
		}
	}
	return out
}

func (d *HeaderFooterDetector) extractCandidates(pages [][]*model.Node, region RegionType) []candidate {
	var candidates []candidate
	for p, nodes := range pages {
		if len(nodes) == 0 {
			continue
		}
		index := 0
		if region == Footer {
			index = len(nodes) - 1
			// a single node is a header candidate only
			if index == 0 {
				continue
			}
		}
		n := nodes[index]
		if n.Kind != model.NodeKindParagraph {
			continue
		}
		candidates = append(candidates, candidate{
			page:  p,
			index: index,
			key:   normalizeForComparison(n.Text()),
			node:  n,
		})
	}
	return candidates
}

// findRepeating returns the candidates that belong to a run of at least
// MinPages consecutive candidates with equal text at a consistent height,
// plus page numbers
func (d *HeaderFooterDetector) findRepeating(candidates []candidate) []candidate {
	var result []candidate
	for start := 0; start < len(candidates); {
		end := start + 1
		for end < len(candidates) &&
			candidates[end].key == candidates[start].key &&
			candidates[end].page == candidates[end-1].page+1 &&
			d.samePosition(candidates[start], candidates[end]) {
			end++
		}

		run := candidates[start:end]
		if len(run) >= d.config.MinPages || (d.config.PageNumbers && isPageNumberPattern(run[0].key)) {
			result = append(result, run...)
		}
		start = end
	}
	return result
}

func (d *HeaderFooterDetector) samePosition(a, b candidate) bool {
	return math.Abs(a.node.BoundingBox().BottomY-b.node.BoundingBox().BottomY) <= d.config.PositionTolerance
}

var digitRun = regexp.MustCompile(`\d+`)

// normalizeForComparison folds compatibility forms, case and spacing and
// replaces digit runs with "#", so "Page 3" and "Page 4" compare equal
func normalizeForComparison(text string) string {
	text = norm.NFKC.String(text)
	text = strings.ToLower(strings.Join(strings.Fields(text), " "))
	return digitRun.ReplaceAllString(text, "#")
}

// isPageNumberPattern checks if normalized text looks like a page number
func isPageNumberPattern(normalizedText string) bool {
	patterns := []string{
		"#",           // Just a number
		"page #",      // "Page 1"
		"- # -",       // "- 1 -"
		"# of #",      // "1 of 10"
		"page # of #", // "Page 1 of 10"
		"#/#",         // "1/10"
		"# / #",       // "1 / 10"
		"p. #",        // "p. 1"
		"p.#",         // "p.1"
		"pg #",        // "pg 1"
		"pg. #",       // "pg. 1"
	}

	trimmed := strings.TrimSpace(normalizedText)
	for _, pattern := range patterns {
		if trimmed == pattern {
			return true
		}
	}
	return false
}
