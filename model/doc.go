// Package model provides the data structures of the recognition pipeline:
// the positioned fragments a decoder delivers and the semantic tree built
// from them.
//
// # Fragments
//
// All page primitives implement the [Fragment] interface. The concrete
// types are:
//
//   - [TextFragment] - a positioned run of text with font size and hidden flag
//   - [ImageFragment] - a placed image
//   - [LineArtFragment] - a vector shape such as a rule or a drawn bullet
//   - [TableFragment] - a table whose grid was resolved upstream
//
// Fragments are handled by pointer. The pipeline never copies or mutates
// them; a tree node owns a fragment by holding the same pointer.
//
// # Semantic Tree
//
// A [Node] is a paragraph, heading, list, list item, caption, picture,
// table, formula, header/footer or line-art node. Text-bearing nodes hold
// [TextLine] values, media leaves hold their fragment, and lists hold
// children:
//
//	doc, err := builder.Build(pages, layout.RunOptions{})
//	for _, n := range doc.Pages[0].Nodes {
//		fmt.Println(n.Kind, n.Text())
//	}
//
// # Conservation
//
// [Leaves] flattens a tree back into its fragments and [VerifyConservation]
// checks that a tree owns every input fragment exactly once, in input order.
//
// # Geometry
//
// [BBox] is an edge-based box (left, bottom, right, top) in PDF coordinates
// with union, intersection, overlap and gap calculations.
package model
