package layout

import (
	"testing"

	"github.com/tsawler/strata/model"
)

func pageWith(header, footer string, footerBottom float64) []*model.Node {
	nodes := []*model.Node{}
	if header != "" {
		nodes = append(nodes, makeParagraph(header, 10, 780, 200, 790))
	}
	nodes = append(nodes, bodyParagraph(700, 3))
	if footer != "" {
		nodes = append(nodes, makeParagraph(footer, 10, footerBottom, 200, footerBottom+10))
	}
	return nodes
}

func TestHeaderFooterDetectorRepeated(t *testing.T) {
	pages := [][]*model.Node{
		pageWith("Annual Report", "Page 1", 20),
		pageWith("Annual Report", "Page 2", 20),
		pageWith("Annual Report", "Page 3", 21),
	}

	out := NewHeaderFooterDetector().Detect(pages)
	for p, nodes := range out {
		if !sameKinds(nodes, model.NodeKindHeaderFooter, model.NodeKindParagraph, model.NodeKindHeaderFooter) {
			t.Errorf("page %d kinds = %v", p, kinds(nodes))
			continue
		}
		if !nodes[0].Header {
			t.Errorf("page %d: first node should be a header", p)
		}
		if nodes[2].Header {
			t.Errorf("page %d: last node should be a footer", p)
		}
	}
	if pages[0][0].Kind != model.NodeKindParagraph {
		t.Error("input node was modified")
	}
}

func TestHeaderFooterDetectorNotRepeated(t *testing.T) {
	pages := [][]*model.Node{
		pageWith("Chapter One", "", 0),
		pageWith("Something else", "", 0),
	}
	out := NewHeaderFooterDetector().Detect(pages)
	for p, nodes := range out {
		if nodes[0].Kind != model.NodeKindParagraph {
			t.Errorf("page %d: unique first paragraph became %s", p, nodes[0].Kind)
		}
	}
}

func TestHeaderFooterDetectorPosition(t *testing.T) {
	pages := [][]*model.Node{
		pageWith("", "Confidential", 20),
		pageWith("", "Confidential", 300),
	}
	out := NewHeaderFooterDetector().Detect(pages)
	if out[0][1].Kind != model.NodeKindParagraph || out[1][1].Kind != model.NodeKindParagraph {
		t.Error("text at different heights should not be a footer")
	}
}

func TestHeaderFooterDetectorLonePageNumber(t *testing.T) {
	pages := [][]*model.Node{pageWith("", "- 7 -", 20)}

	out := NewHeaderFooterDetector().Detect(pages)
	if out[0][1].Kind != model.NodeKindHeaderFooter {
		t.Errorf("page number = %s, want HeaderFooter", out[0][1].Kind)
	}

	config := DefaultHeaderFooterConfig()
	config.PageNumbers = false
	out = NewHeaderFooterDetectorWithConfig(config).Detect(pages)
	if out[0][1].Kind != model.NodeKindParagraph {
		t.Errorf("page number with PageNumbers off = %s, want Paragraph", out[0][1].Kind)
	}
}

func TestNormalizeForComparison(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Page 12", "page #"},
		{"  Annual   Report ", "annual report"},
		{"ＲＥＰＯＲＴ ２０２４", "report #"},
	}
	for _, tt := range tests {
		if got := normalizeForComparison(tt.in); got != tt.want {
			t.Errorf("normalizeForComparison(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}

	if !isPageNumberPattern("page # of #") {
		t.Error("page # of # should be a page number")
	}
	if isPageNumberPattern("chapter #") {
		t.Error("chapter # should not be a page number")
	}
}
