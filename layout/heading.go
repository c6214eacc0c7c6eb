package layout

import (
	"math"
	"regexp"
	"sort"
	"strings"

	"github.com/tsawler/strata/model"
)

// DocumentStats are document-wide text measurements shared by classifiers
type DocumentStats struct {
	// BodyFontSize is the most common font size, weighted by line count
	BodyFontSize float64
}

// HeadingClassifier decides how likely a paragraph is to be a heading.
// Implementations must be deterministic.
type HeadingClassifier interface {
	HeadingScore(n *model.Node, stats DocumentStats) float64
}

// HeadingConfig holds configuration for heading detection
type HeadingConfig struct {
	// MaxHeadingLines is the maximum number of lines for a heading
	// Default: 3
	MaxHeadingLines int

	// MinConfidence is the minimum score to consider something a heading
	// Default: 0.5
	MinConfidence float64

	// MaxLevels caps the number of distinct heading levels (default: 6)
	MaxLevels int

	// BoldIndicatesHeading when true, bold text is more likely a heading
	// Default: true
	BoldIndicatesHeading bool

	// AllCapsIndicatesHeading when true, ALL CAPS text is more likely a heading
	// Default: true
	AllCapsIndicatesHeading bool

	// NumberedPatterns are regex patterns for numbered headings
	// Default: "Chapter 1", "1.1", "1.1.1", etc.
	NumberedPatterns []*regexp.Regexp
}

// DefaultHeadingConfig returns sensible default configuration
func DefaultHeadingConfig() HeadingConfig {
	return HeadingConfig{
		MaxHeadingLines:         3,
		MinConfidence:           0.5,
		MaxLevels:               6,
		BoldIndicatesHeading:    true,
		AllCapsIndicatesHeading: true,
		NumberedPatterns: []*regexp.Regexp{
			regexp.MustCompile(`^(?i)(chapter|section|part)\s+\d+`),
			regexp.MustCompile(`^\d+\.\s`),
			regexp.MustCompile(`^\d+\.\d+\s`),
			regexp.MustCompile(`^\d+\.\d+\.\d+\s`),
		},
	}
}

// FontSizeHeadingClassifier scores paragraphs by font size relative to the
// body text, weight, capitalization, numbering and length
type FontSizeHeadingClassifier struct {
	config HeadingConfig
}

// NewFontSizeHeadingClassifier creates the default heading classifier
func NewFontSizeHeadingClassifier(config HeadingConfig) *FontSizeHeadingClassifier {
	return &FontSizeHeadingClassifier{config: config}
}

// HeadingScore returns a confidence between 0 and 1
func (c *FontSizeHeadingClassifier) HeadingScore(n *model.Node, stats DocumentStats) float64 {
	if len(n.Lines) == 0 || len(n.Lines) > c.config.MaxHeadingLines {
		return 0
	}
	text := n.Text()
	if strings.TrimSpace(text) == "" {
		return 0
	}

	confidence := 0.0

	// Font size is the strongest indicator
	if stats.BodyFontSize > 0 {
		fontRatio := n.MaxFontSize() / stats.BodyFontSize
		if fontRatio >= 1.5 {
			confidence += 0.5
		} else if fontRatio >= 1.2 {
			confidence += 0.35
		} else if fontRatio >= 1.1 {
			confidence += 0.2
		} else if fontRatio >= 1.05 {
			confidence += 0.1
		} else if fontRatio < 0.95 {
			return 0
		}
	}

	if c.config.BoldIndicatesHeading && isBold(n) {
		confidence += 0.2
	}
	if c.config.AllCapsIndicatesHeading && isAllCaps(text) {
		confidence += 0.15
	}
	for _, pattern := range c.config.NumberedPatterns {
		if pattern.MatchString(strings.TrimSpace(text)) {
			confidence += 0.2
			break
		}
	}

	// Short text (headings are typically short)
	wordCount := len(strings.Fields(text))
	if wordCount <= 10 {
		confidence += 0.1
	} else if wordCount <= 20 {
		confidence += 0.05
	}

	if len(n.Lines) == 1 {
		confidence += 0.1
	} else if len(n.Lines) <= 2 {
		confidence += 0.05
	}

	return math.Min(confidence, 1.0)
}

func isBold(n *model.Node) bool {
	for _, line := range n.Lines {
		for _, frag := range line.Fragments {
			if frag.IsWhitespace() {
				continue
			}
			fontLower := strings.ToLower(frag.FontName)
			if !(strings.Contains(fontLower, "bold") ||
				strings.Contains(fontLower, "black") ||
				strings.Contains(fontLower, "heavy")) {
				return false
			}
		}
	}
	return true
}

// isAllCaps checks if text is in all capital letters
func isAllCaps(text string) bool {
	upperCount := 0
	lowerCount := 0
	for _, r := range text {
		if r >= 'A' && r <= 'Z' {
			upperCount++
		} else if r >= 'a' && r <= 'z' {
			lowerCount++
		}
	}
	if upperCount+lowerCount < 3 {
		return false
	}
	return float64(upperCount)/float64(upperCount+lowerCount) > 0.9
}

// HeadingDetector relabels heading paragraphs across a whole document
type HeadingDetector struct {
	config     HeadingConfig
	classifier HeadingClassifier
}

// NewHeadingDetector creates a new heading detector with default configuration
func NewHeadingDetector() *HeadingDetector {
	return NewHeadingDetectorWithConfig(DefaultHeadingConfig(), nil)
}

// NewHeadingDetectorWithConfig creates a heading detector with custom
// configuration. A nil classifier selects FontSizeHeadingClassifier.
func NewHeadingDetectorWithConfig(config HeadingConfig, classifier HeadingClassifier) *HeadingDetector {
	if classifier == nil {
		classifier = NewFontSizeHeadingClassifier(config)
	}
	return &HeadingDetector{
		config:     config,
		classifier: classifier,
	}
}

// Detect returns new page sequences in which top-level paragraphs scoring at
// least MinConfidence are replaced by Heading nodes. Levels are ranked over
// the whole document: the largest heading font size is level 1.
func (d *HeadingDetector) Detect(pages [][]*model.Node) [][]*model.Node {
	stats := CollectStats(pages)

	type candidate struct {
		page, index int
		size        float64
	}
	var candidates []candidate
	for p, nodes := range pages {
		for i, n := range nodes {
			if n.Kind != model.NodeKindParagraph {
				continue
			}
			if d.classifier.HeadingScore(n, stats) >= d.config.MinConfidence {
				candidates = append(candidates, candidate{page: p, index: i, size: bucketFontSize(n.MaxFontSize())})
			}
		}
	}

	out := make([][]*model.Node, len(pages))
	for p, nodes := range pages {
		out[p] = append([]*model.Node(nil), nodes...)
	}
	if len(candidates) == 0 {
		return out
	}

	var sizes []float64
	seen := make(map[float64]bool)
	for _, c := range candidates {
		if !seen[c.size] {
			seen[c.size] = true
			sizes = append(sizes, c.size)
		}
	}
	sort.Sort(sort.Reverse(sort.Float64Slice(sizes)))
	rank := make(map[float64]int, len(sizes))
	for i, s := range sizes {
		level := i + 1
		if d.config.MaxLevels > 0 && level > d.config.MaxLevels {
			level = d.config.MaxLevels
		}
		rank[s] = level
	}

	for _, c := range candidates {
		h := out[c.page][c.index].WithKind(model.NodeKindHeading)
		h.HeadingLevel = rank[c.size]
		out[c.page][c.index] = h
	}
	return out
}

// CollectStats measures the body font size over every paragraph, including
// those inside lists
func CollectStats(pages [][]*model.Node) DocumentStats {
	counts := make(map[float64]int)
	for _, nodes := range pages {
		for _, n := range nodes {
			n.Walk(func(c *model.Node) bool {
				if c.Kind == model.NodeKindParagraph {
					for _, l := range c.Lines {
						counts[bucketFontSize(l.MaxFontSize())]++
					}
				}
				return true
			})
		}
	}

	best, bestCount := 0.0, 0
	for size, count := range counts {
		if count > bestCount || (count == bestCount && size < best) {
			best, bestCount = size, count
		}
	}
	return DocumentStats{BodyFontSize: best}
}

// bucketFontSize rounds a size to the nearest half point
func bucketFontSize(size float64) float64 {
	return math.Round(size*2) / 2
}
