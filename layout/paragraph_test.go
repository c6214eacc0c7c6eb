package layout

import (
	"testing"

	"github.com/tsawler/strata/model"
)

func lineSegment(frags ...*model.TextFragment) Segment {
	return Segment{Line: model.NewTextLine(frags...)}
}

func TestParagraphAssemblerEmpty(t *testing.T) {
	a := NewParagraphAssembler()
	if nodes := a.Assemble(newRunContext(), nil); len(nodes) != 0 {
		t.Errorf("Assemble(nil) = %d nodes, want 0", len(nodes))
	}
}

func TestParagraphAssemblerMergesStackedLines(t *testing.T) {
	a := NewParagraphAssembler()
	segments := []Segment{
		lineSegment(makeText("first line", 10, 30, 100, 40)),
		lineSegment(makeText("second line", 10, 20, 100, 30)),
		lineSegment(makeText("third line", 10, 10, 90, 20)),
	}

	nodes := a.Assemble(newRunContext(), segments)
	if len(nodes) != 1 {
		t.Fatalf("got %d nodes, want 1", len(nodes))
	}
	p := nodes[0]
	if p.Kind != model.NodeKindParagraph {
		t.Errorf("Kind = %s, want Paragraph", p.Kind)
	}
	if len(p.Lines) != 3 {
		t.Fatalf("got %d lines, want 3", len(p.Lines))
	}
	for i, seg := range segments {
		if p.Lines[i] != seg.Line {
			t.Errorf("line %d out of order", i)
		}
	}
	if p.Text() != "first line second line third line" {
		t.Errorf("Text() = %q", p.Text())
	}
}

func TestParagraphAssemblerSplits(t *testing.T) {
	tests := []struct {
		name   string
		second *model.TextFragment
	}{
		{"vertical gap", makeText("far below", 10, 0, 100, 10)},
		{"labeled line", makeText("• item", 10, 20, 100, 30)},
		{"no horizontal overlap", makeText("beside", 200, 20, 300, 30)},
		{"font size jump", makeText("Big", 10, 10, 100, 30)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := NewParagraphAssembler()
			nodes := a.Assemble(newRunContext(), []Segment{
				lineSegment(makeText("opening line", 10, 30, 100, 40)),
				lineSegment(tt.second),
			})
			if len(nodes) != 2 {
				t.Errorf("got %d nodes, want 2", len(nodes))
			}
		})
	}
}

func TestParagraphAssemblerTextBulletHangingIndent(t *testing.T) {
	a := NewParagraphAssembler()

	nodes := a.Assemble(newRunContext(), []Segment{
		lineSegment(makeText("• item text", 10, 30, 100, 40)),
		lineSegment(makeText("wrapped", 20, 20, 100, 30)),
	})
	if len(nodes) != 1 {
		t.Errorf("indented continuation: got %d nodes, want 1", len(nodes))
	}

	nodes = a.Assemble(newRunContext(), []Segment{
		lineSegment(makeText("• item text", 10, 30, 100, 40)),
		lineSegment(makeText("flush left", 10, 20, 100, 30)),
	})
	if len(nodes) != 2 {
		t.Errorf("flush continuation: got %d nodes, want 2", len(nodes))
	}
}

func TestParagraphAssemblerWhitespaceLineAbsorbed(t *testing.T) {
	a := NewParagraphAssembler()
	nodes := a.Assemble(newRunContext(), []Segment{
		lineSegment(makeText("text", 10, 30, 100, 40)),
		lineSegment(makeText(" ", 500, 500, 505, 510)),
	})
	if len(nodes) != 1 || len(nodes[0].Lines) != 2 {
		t.Errorf("whitespace line should join the open paragraph, got %d nodes", len(nodes))
	}
}

func TestParagraphAssemblerMedia(t *testing.T) {
	a := NewParagraphAssembler()
	img1 := makeImage(10, 50, 100, 100)
	img2 := makeImage(10, 0, 100, 40)
	art := makeLineArt(0, 45, 200, 46)

	rc := newRunContext()
	nodes := a.Assemble(rc, []Segment{
		lineSegment(makeText("above", 10, 110, 100, 120)),
		{Fragment: img1},
		{Fragment: art},
		{Fragment: img2},
		lineSegment(makeText("below", 10, 100, 100, 110)),
	})

	want := []model.NodeKind{
		model.NodeKindParagraph, model.NodeKindPicture, model.NodeKindLineArt,
		model.NodeKindPicture, model.NodeKindParagraph,
	}
	if !sameKinds(nodes, want...) {
		t.Fatalf("kinds = %v, want %v", kinds(nodes), want)
	}
	if nodes[1].PictureIndex != 1 || nodes[3].PictureIndex != 2 {
		t.Errorf("picture indices = %d, %d, want 1, 2", nodes[1].PictureIndex, nodes[3].PictureIndex)
	}
	if rc.ImageIndex() != 2 {
		t.Errorf("ImageIndex() = %d, want 2", rc.ImageIndex())
	}
}

func TestParagraphAssemblerHiddenText(t *testing.T) {
	visible := makeText("visible", 10, 30, 100, 40)
	hidden := makeText("hidden", 10, 20, 100, 30)
	hidden.Hidden = true

	segments := []Segment{lineSegment(visible), lineSegment(hidden)}

	nodes := NewParagraphAssembler().Assemble(NewRunContext(RunOptions{FindHiddenText: true}), segments)
	if len(nodes) != 2 {
		t.Errorf("FindHiddenText: got %d nodes, want 2", len(nodes))
	}

	nodes = NewParagraphAssembler().Assemble(newRunContext(), segments)
	if len(nodes) != 1 {
		t.Errorf("default: got %d nodes, want 1", len(nodes))
	}
}

func TestParagraphAssemblerAfterLineAssembler(t *testing.T) {
	rc := newRunContext()
	segments := NewLineAssembler().Assemble(rc, fragments(
		makeText("test", 10, 30, 20, 40),
		makeText("test", 20, 30, 30, 40),
		makeText("test", 10, 20, 20, 30),
	))
	nodes := NewParagraphAssembler().Assemble(rc, segments)
	if len(nodes) != 1 {
		t.Fatalf("got %d nodes, want 1", len(nodes))
	}
	if got := nodes[0].TextWithSeparator("\n"); got != "testtest\ntest" {
		t.Errorf("text = %q", got)
	}
}
