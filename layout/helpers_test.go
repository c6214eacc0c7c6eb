package layout

import (
	"github.com/tsawler/strata/model"
)

// makeText creates a text fragment on page 0 whose font size equals its height
func makeText(s string, left, bottom, right, top float64) *model.TextFragment {
	return &model.TextFragment{
		Text:     s,
		FontSize: top - bottom,
		BBox:     model.NewBBox(0, left, bottom, right, top),
	}
}

func makeImage(left, bottom, right, top float64) *model.ImageFragment {
	return &model.ImageFragment{BBox: model.NewBBox(0, left, bottom, right, top)}
}

func makeLineArt(left, bottom, right, top float64) *model.LineArtFragment {
	return &model.LineArtFragment{BBox: model.NewBBox(0, left, bottom, right, top)}
}

// makeParagraph creates a one-line paragraph node
func makeParagraph(s string, left, bottom, right, top float64) *model.Node {
	return model.NewParagraph(model.NewTextLine(makeText(s, left, bottom, right, top)))
}

func fragments(fs ...model.Fragment) []model.Fragment {
	return fs
}

func newRunContext() *RunContext {
	return NewRunContext(RunOptions{})
}

func kinds(nodes []*model.Node) []model.NodeKind {
	out := make([]model.NodeKind, len(nodes))
	for i, n := range nodes {
		out[i] = n.Kind
	}
	return out
}

func sameKinds(got []*model.Node, want ...model.NodeKind) bool {
	if len(got) != len(want) {
		return false
	}
	for i, n := range got {
		if n.Kind != want[i] {
			return false
		}
	}
	return true
}
