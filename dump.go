package strata

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/tsawler/strata/model"
)

// ErrUnknownFragment is returned for a fragment dump entry of unknown kind
var ErrUnknownFragment = errors.New("strata: unknown fragment kind")

// fragmentRecord is the JSON form of one fragment. BBox is
// [left, bottom, right, top]; the page is implied by position.
type fragmentRecord struct {
	Kind        string     `json:"kind"`
	BBox        [4]float64 `json:"bbox"`
	Text        string     `json:"text,omitempty"`
	FontSize    float64    `json:"font_size,omitempty"`
	FontName    string     `json:"font_name,omitempty"`
	Hidden      bool       `json:"hidden,omitempty"`
	Description string     `json:"description,omitempty"`
	Rows        [][]string `json:"rows,omitempty"`
}

type fragmentDump struct {
	Pages [][]fragmentRecord `json:"pages"`
}

// OpenJSON returns an Extractor over a fragment dump written by WriteFragments
func OpenJSON(filename string) (*Extractor, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	pages, err := ReadFragments(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return FromPages(pages), nil
}

// ReadFragments decodes a fragment dump
func ReadFragments(r io.Reader) ([][]model.Fragment, error) {
	var dump fragmentDump
	if err := json.NewDecoder(r).Decode(&dump); err != nil {
		return nil, fmt.Errorf("failed to decode fragments: %w", err)
	}

	pages := make([][]model.Fragment, len(dump.Pages))
	for p, records := range dump.Pages {
		pages[p] = make([]model.Fragment, 0, len(records))
		for i, rec := range records {
			f, err := rec.fragment(p)
			if err != nil {
				return nil, fmt.Errorf("page %d fragment %d: %w", p, i, err)
			}
			pages[p] = append(pages[p], f)
		}
	}
	return pages, nil
}

// WriteFragments encodes pages as a fragment dump
func WriteFragments(w io.Writer, pages [][]model.Fragment) error {
	dump := fragmentDump{Pages: make([][]fragmentRecord, len(pages))}
	for p, fragments := range pages {
		dump.Pages[p] = make([]fragmentRecord, 0, len(fragments))
		for i, f := range fragments {
			rec, err := recordOf(f)
			if err != nil {
				return fmt.Errorf("page %d fragment %d: %w", p, i, err)
			}
			dump.Pages[p] = append(dump.Pages[p], rec)
		}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(dump)
}

func (rec fragmentRecord) fragment(page int) (model.Fragment, error) {
	bbox := model.NewBBox(page, rec.BBox[0], rec.BBox[1], rec.BBox[2], rec.BBox[3])
	switch rec.Kind {
	case "text":
		return &model.TextFragment{
			Text:     rec.Text,
			FontSize: rec.FontSize,
			FontName: rec.FontName,
			BBox:     bbox,
			Hidden:   rec.Hidden,
		}, nil
	case "image":
		return &model.ImageFragment{BBox: bbox, Description: rec.Description}, nil
	case "line_art":
		return &model.LineArtFragment{BBox: bbox}, nil
	case "table":
		cols := 0
		for _, row := range rec.Rows {
			cols = max(cols, len(row))
		}
		table := model.NewTableFragment(bbox, len(rec.Rows), cols)
		for r, row := range rec.Rows {
			for c, text := range row {
				if err := table.SetCell(r, c, model.Cell{Text: text, RowSpan: 1, ColSpan: 1}); err != nil {
					return nil, err
				}
			}
		}
		return table, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownFragment, rec.Kind)
}

func recordOf(f model.Fragment) (fragmentRecord, error) {
	if f == nil {
		return fragmentRecord{}, model.ErrNilFragment
	}
	b := f.BoundingBox()
	rec := fragmentRecord{BBox: [4]float64{b.LeftX, b.BottomY, b.RightX, b.TopY}}
	switch v := f.(type) {
	case *model.TextFragment:
		rec.Kind = "text"
		rec.Text = v.Text
		rec.FontSize = v.FontSize
		rec.FontName = v.FontName
		rec.Hidden = v.Hidden
	case *model.ImageFragment:
		rec.Kind = "image"
		rec.Description = v.Description
	case *model.LineArtFragment:
		rec.Kind = "line_art"
	case *model.TableFragment:
		rec.Kind = "table"
		rec.Rows = make([][]string, v.RowCount())
		for r := range rec.Rows {
			rec.Rows[r] = make([]string, v.ColCount())
			for c := range rec.Rows[r] {
				if cell := v.GetCell(r, c); cell != nil {
					rec.Rows[r][c] = cell.Text
				}
			}
		}
	default:
		return fragmentRecord{}, fmt.Errorf("%w: %s", ErrUnknownFragment, f.Kind())
	}
	return rec, nil
}
