package pdfsource

import (
	"math"
	"sort"
	"strings"

	rpdf "rsc.io/pdf"

	"github.com/tsawler/strata/model"
)

// fragments converts the content of one page into fragments in reading
// order
func (c Config) fragments(page int, content rpdf.Content) []model.Fragment {
	runs := c.mergeGlyphs(page, content.Text)
	arts := lineArt(page, content.Rect)
	return interleave(runs, arts)
}

// mergeGlyphs joins consecutive glyphs with the same font, size and
// baseline into text runs. Gaps wider than WordGap become spaces; gaps wider
// than RunBreak, backward steps and style changes start a new run.
func (c Config) mergeGlyphs(page int, glyphs []rpdf.Text) []*model.TextFragment {
	var runs []*model.TextFragment
	var sb strings.Builder
	var cur *model.TextFragment

	flush := func() {
		if cur == nil {
			return
		}
		cur.Text = sb.String()
		if cur.Text != "" {
			runs = append(runs, cur)
		}
		cur = nil
		sb.Reset()
	}

	for _, g := range glyphs {
		if g.S == "" {
			continue
		}
		right := g.X + g.W

		if cur != nil && c.continues(cur, g) {
			if g.X-cur.BBox.RightX > c.WordGap*g.FontSize && !strings.HasSuffix(sb.String(), " ") && !strings.HasPrefix(g.S, " ") {
				sb.WriteString(" ")
			}
			sb.WriteString(g.S)
			cur.BBox.RightX = math.Max(cur.BBox.RightX, right)
			continue
		}

		flush()
		cur = &model.TextFragment{
			FontSize: g.FontSize,
			FontName: g.Font,
			BBox:     model.NewBBox(page, g.X, g.Y, math.Max(right, g.X), g.Y+g.FontSize),
		}
		sb.WriteString(g.S)
	}
	flush()
	return runs
}

func (c Config) continues(cur *model.TextFragment, g rpdf.Text) bool {
	if g.Font != cur.FontName || g.FontSize != cur.FontSize {
		return false
	}
	if math.Abs(g.Y-cur.BBox.BottomY) > c.BaselineTolerance {
		return false
	}
	gap := g.X - cur.BBox.RightX
	return gap >= -c.WordGap*g.FontSize && gap <= c.RunBreak*g.FontSize
}

// lineArt converts rectangles into line art, normalizing their corners
func lineArt(page int, rects []rpdf.Rect) []*model.LineArtFragment {
	arts := make([]*model.LineArtFragment, 0, len(rects))
	for _, r := range rects {
		lo := model.Point{X: r.Min.X, Y: r.Min.Y}
		hi := model.Point{X: r.Max.X, Y: r.Max.Y}
		arts = append(arts, &model.LineArtFragment{BBox: model.NewBBoxFromPoints(page, lo, hi)})
	}
	return arts
}

// interleave places each piece of line art before the first text run whose
// baseline lies below the art's center, keeping the runs in stream order.
// Art below every run ends the page.
func interleave(runs []*model.TextFragment, arts []*model.LineArtFragment) []model.Fragment {
	sort.SliceStable(arts, func(i, j int) bool {
		ci, cj := arts[i].BBox.Center(), arts[j].BBox.Center()
		if ci.Y != cj.Y {
			return ci.Y > cj.Y
		}
		return ci.X < cj.X
	})

	out := make([]model.Fragment, 0, len(runs)+len(arts))
	next := 0
	for _, run := range runs {
		for next < len(arts) && arts[next].BBox.Center().Y > run.Baseline() {
			out = append(out, arts[next])
			next++
		}
		out = append(out, run)
	}
	for ; next < len(arts); next++ {
		out = append(out, arts[next])
	}
	return out
}
