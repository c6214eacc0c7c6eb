package layout

import (
	"strings"

	"github.com/tsawler/strata/model"
)

// CaptionConfig holds configuration for caption association
type CaptionConfig struct {
	// MaxGapRatio is the largest vertical gap between a media node and its
	// caption, as a multiple of the caption's font size (default: 1.5)
	MaxGapRatio float64

	// RequireKeyword when true, only paragraphs starting with one of
	// Keywords can become captions
	// Default: false
	RequireKeyword bool

	// Keywords are the caption lead words checked when RequireKeyword is set
	Keywords []string
}

// DefaultCaptionConfig returns sensible default configuration
func DefaultCaptionConfig() CaptionConfig {
	return CaptionConfig{
		MaxGapRatio:    1.5,
		RequireKeyword: false,
		Keywords:       []string{"figure", "fig.", "table", "tab.", "chart", "image", "diagram", "photo", "그림", "표"},
	}
}

// CaptionAssociator relabels the paragraph describing a picture, table or
// line art node
type CaptionAssociator struct {
	config CaptionConfig
}

// NewCaptionAssociator creates a new caption associator with default configuration
func NewCaptionAssociator() *CaptionAssociator {
	return &CaptionAssociator{
		config: DefaultCaptionConfig(),
	}
}

// NewCaptionAssociatorWithConfig creates a caption associator with custom configuration
func NewCaptionAssociatorWithConfig(config CaptionConfig) *CaptionAssociator {
	return &CaptionAssociator{
		config: config,
	}
}

// Associate returns a new sequence in which, for each picture, table or
// line art node, the nearest eligible paragraph before or after it is
// replaced by a Caption node linked to that node's ID. The smaller gap wins
// and a tie goes to the following paragraph. Pictures and tables choose
// first and look past line art; line art only takes an adjacent paragraph
// nobody claimed, and drawn bullets never take one. Each node takes at most
// one caption and each paragraph captions at most one node.
func (c *CaptionAssociator) Associate(nodes []*model.Node) []*model.Node {
	out := append([]*model.Node(nil), nodes...)
	claimed := make(map[int]bool)

	for i, n := range nodes {
		if n.Kind == model.NodeKindPicture || n.Kind == model.NodeKindTable {
			c.attach(nodes, out, claimed, i, true)
		}
	}

	bullets := drawnBullets(nodes)
	for i, n := range nodes {
		if n.Kind == model.NodeKindLineArt && !bullets[n.Fragment] {
			c.attach(nodes, out, claimed, i, false)
		}
	}
	return out
}

// attach captions nodes[i] with its best unclaimed neighbor, if any
func (c *CaptionAssociator) attach(nodes, out []*model.Node, claimed map[int]bool, i int, skipArt bool) {
	target := nodes[i]
	best, bestGap := -1, 0.0
	if prev := c.neighbor(nodes, i, -1, skipArt); prev >= 0 && !claimed[prev] {
		if gap, ok := c.eligible(nodes[prev], target); ok {
			best, bestGap = prev, gap
		}
	}
	if next := c.neighbor(nodes, i, 1, skipArt); next >= 0 && !claimed[next] {
		if gap, ok := c.eligible(nodes[next], target); ok && (best < 0 || gap <= bestGap) {
			best = next
		}
	}
	if best < 0 {
		return
	}

	claimed[best] = true
	caption := nodes[best].WithKind(model.NodeKindCaption)
	caption.LinkedID = target.ID
	out[best] = caption
}

// neighbor returns the index of the closest paragraph in direction dir, or
// -1 when another kind of node is in the way. Line art in between is
// skipped when skipArt is set.
func (c *CaptionAssociator) neighbor(nodes []*model.Node, i, dir int, skipArt bool) int {
	for j := i + dir; j >= 0 && j < len(nodes); j += dir {
		switch nodes[j].Kind {
		case model.NodeKindLineArt:
			if skipArt {
				continue
			}
			return -1
		case model.NodeKindParagraph:
			return j
		default:
			return -1
		}
	}
	return -1
}

// drawnBullets collects the line art linked as a bullet by any line
func drawnBullets(nodes []*model.Node) map[model.Fragment]bool {
	bullets := make(map[model.Fragment]bool)
	for _, n := range nodes {
		n.Walk(func(c *model.Node) bool {
			for _, l := range c.Lines {
				if l.Bullet != nil {
					bullets[l.Bullet] = true
				}
			}
			return true
		})
	}
	return bullets
}

// eligible reports the gap between p and media and whether p may caption it
func (c *CaptionAssociator) eligible(p, media *model.Node) (float64, bool) {
	if first := p.FirstLine(); first == nil || first.IsWhitespace() {
		return 0, false
	}
	gap := p.BoundingBox().VerticalGap(media.BoundingBox())
	size := p.MaxFontSize()
	if size <= 0 {
		size = p.FirstLine().Height()
	}
	if gap > c.config.MaxGapRatio*size {
		return 0, false
	}
	if c.config.RequireKeyword && !c.hasKeyword(p.Text()) {
		return 0, false
	}
	return gap, true
}

func (c *CaptionAssociator) hasKeyword(text string) bool {
	lower := strings.ToLower(strings.TrimSpace(text))
	for _, k := range c.config.Keywords {
		if strings.HasPrefix(lower, strings.ToLower(k)) {
			return true
		}
	}
	return false
}
