package layout

import (
	"testing"

	"github.com/tsawler/strata/model"
)

func TestLineAssemblerEmpty(t *testing.T) {
	if got := NewLineAssembler().Assemble(newRunContext(), nil); len(got) != 0 {
		t.Errorf("Assemble(nil) returned %d segments, want 0", len(got))
	}
}

func TestLineAssemblerSharedBaseline(t *testing.T) {
	a := makeText("test", 10, 30, 20, 40)
	b := makeText("test", 20, 30, 30, 40)
	c := makeText("test", 10, 20, 20, 30)

	segments := NewLineAssembler().Assemble(newRunContext(), fragments(a, b, c))
	if len(segments) != 2 {
		t.Fatalf("got %d segments, want 2", len(segments))
	}

	first := segments[0].Line
	if first == nil {
		t.Fatal("first segment is not a line")
	}
	if got := first.Value(); got != "testtest" {
		t.Errorf("first line value = %q, want %q", got, "testtest")
	}
	if got := first.BBox(); got != model.NewBBox(0, 10, 30, 30, 40) {
		t.Errorf("first line bbox = %s, want (10,30,30,40)", got)
	}

	second := segments[1].Line
	if second == nil || second.Value() != "test" {
		t.Fatalf("second segment = %+v, want line \"test\"", segments[1])
	}
	if second.Fragments[0] != c {
		t.Error("second line does not hold the third fragment")
	}
}

func TestLineAssemblerBaselineTolerance(t *testing.T) {
	a := makeText("x", 0, 30, 10, 40)
	b := makeText("y", 10, 30.8, 20, 40.8)
	c := makeText("z", 20, 32, 30, 42)

	segments := NewLineAssembler().Assemble(newRunContext(), fragments(a, b, c))
	if len(segments) != 2 {
		t.Fatalf("got %d segments, want 2", len(segments))
	}
	if got := segments[0].Line.Value(); got != "xy" {
		t.Errorf("first line = %q, want %q", got, "xy")
	}
}

func TestLineAssemblerNonTextClosesLine(t *testing.T) {
	a := makeText("left", 0, 30, 20, 40)
	img := makeImage(20, 30, 30, 40)
	b := makeText("right", 30, 30, 50, 40)

	segments := NewLineAssembler().Assemble(newRunContext(), fragments(a, img, b))
	if len(segments) != 3 {
		t.Fatalf("got %d segments, want 3", len(segments))
	}
	if segments[1].IsLine() || segments[1].Fragment != model.Fragment(img) {
		t.Error("image was not passed through unchanged")
	}
	if !segments[2].IsLine() || segments[2].Line.Fragments[0] != b {
		t.Error("text after the image did not open a new line")
	}
}

func TestLineAssemblerTableClosesLine(t *testing.T) {
	table := model.NewTableFragment(model.NewBBox(0, 0, 0, 100, 20), 1, 1)
	a := makeText("before", 0, 30, 20, 40)
	b := makeText("after", 20, 30, 40, 40)

	segments := NewLineAssembler().Assemble(newRunContext(), fragments(a, table, b))
	if len(Lines(segments)) != 2 {
		t.Errorf("got %d lines, want 2", len(Lines(segments)))
	}
}

func TestLineAssemblerHiddenText(t *testing.T) {
	visible := makeText("seen", 0, 30, 20, 40)
	hidden := makeText("unseen", 20, 30, 40, 40)
	hidden.Hidden = true

	apart := NewLineAssembler().Assemble(NewRunContext(RunOptions{FindHiddenText: true}), fragments(visible, hidden))
	if len(apart) != 2 {
		t.Errorf("with FindHiddenText got %d lines, want 2", len(apart))
	}

	together := NewLineAssembler().Assemble(NewRunContext(RunOptions{}), fragments(visible, hidden))
	if len(together) != 1 {
		t.Errorf("without FindHiddenText got %d lines, want 1", len(together))
	}
}

func TestLineAssemblerWhitespaceJoinsOpenLine(t *testing.T) {
	a := makeText("word", 0, 30, 20, 40)
	space := makeText(" ", 20, 0, 22, 2)
	b := makeText("next", 22, 30, 40, 40)

	segments := NewLineAssembler().Assemble(newRunContext(), fragments(a, space, b))
	if len(segments) != 1 {
		t.Fatalf("got %d segments, want 1", len(segments))
	}
	if got := segments[0].Line.Value(); got != "word next" {
		t.Errorf("line = %q, want %q", got, "word next")
	}
}

func TestLineAssemblerIdempotent(t *testing.T) {
	input := fragments(
		makeText("a", 0, 50, 10, 60),
		makeText("b", 10, 50, 20, 60),
		makeLineArt(0, 44, 4, 46),
		makeText("c", 10, 40, 20, 50),
		makeText(" ", 20, 40, 22, 50),
		makeText("d", 22, 40.5, 30, 50.5),
		makeImage(0, 0, 30, 30),
		makeText("e", 0, 20, 10, 30),
	)

	assembler := NewLineAssembler()
	first := assembler.Assemble(newRunContext(), input)
	second := assembler.Assemble(newRunContext(), Flatten(first))

	if len(first) != len(second) {
		t.Fatalf("re-assembly produced %d segments, want %d", len(second), len(first))
	}
	for i := range first {
		if first[i].IsLine() != second[i].IsLine() {
			t.Fatalf("segment %d changed kind", i)
		}
		if !first[i].IsLine() {
			continue
		}
		if len(first[i].Line.Fragments) != len(second[i].Line.Fragments) {
			t.Errorf("segment %d holds %d fragments after re-assembly, want %d",
				i, len(second[i].Line.Fragments), len(first[i].Line.Fragments))
		}
	}
}

func TestLineAssemblerLinksBullet(t *testing.T) {
	bullet := makeLineArt(0, 33, 4, 37)
	item := makeText("item", 10, 30, 50, 40)

	segments := NewLineAssembler().Assemble(newRunContext(), fragments(bullet, item))
	if len(segments) != 2 {
		t.Fatalf("got %d segments, want 2", len(segments))
	}
	if segments[1].Line.Bullet != bullet {
		t.Error("line-art bullet was not linked to the following line")
	}
	if segments[0].Fragment != model.Fragment(bullet) {
		t.Error("bullet must stay in the sequence")
	}
}

func TestLineAssemblerRejectsBulletCandidates(t *testing.T) {
	tests := []struct {
		name string
		art  *model.LineArtFragment
	}{
		{"right of text", makeLineArt(60, 33, 64, 37)},
		{"taller than line", makeLineArt(0, 20, 4, 50)},
		{"below line", makeLineArt(0, 0, 4, 4)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item := makeText("item", 10, 30, 50, 40)
			segments := NewLineAssembler().Assemble(newRunContext(), fragments(tt.art, item))
			if segments[1].Line.Bullet != nil {
				t.Error("line art should not be linked as a bullet")
			}
		})
	}
}
