// Package layout builds the semantic tree of a document from positioned
// page fragments, using geometry alone.
//
// # Tree Building
//
// The [Analyzer] runs every stage over a document:
//
//	analyzer := layout.NewAnalyzer()
//	doc, err := analyzer.Build(pages, layout.RunOptions{KeepLineBreaks: true})
//
// Each Build call creates a fresh [RunContext] holding the content id
// counter, the picture index and the run settings, so one Analyzer can serve
// concurrent runs.
//
// # Stages
//
// Stages consume one sequence and produce a new one, in this order:
//
//   - [LineAssembler] - groups fragments sharing a baseline into text lines
//   - [ParagraphAssembler] - accumulates aligned, closely spaced lines into paragraphs
//   - [HeaderFooterDetector] - marks repeated first and last paragraphs across pages
//   - [ListAssembler] - nests labeled paragraphs into lists with a level stack
//   - [HeadingDetector] - relabels headings and ranks their levels document-wide
//   - [CaptionAssociator] - attaches the nearest paragraph to a picture or table
//   - [LevelAssigner] - gives lists, tables and bulleted paragraphs a structural depth
//
// No stage reorders fragments: flattening the finished tree yields the
// input fragments in input order, which the analyzer verifies by default.
//
// # Levels
//
// [LevelInfo] summarizes the horizontal footprint of a unit (list, text
// bullet, drawn bullet, table or plain block). Its alignment slack is the
// unit's largest font size times LevelConfig.GapMultiplier.
//
// # Configuration
//
// Each stage can be configured independently:
//
//	config := layout.DefaultAnalyzerConfig()
//	config.LevelConfig.GapMultiplier = 0.4
//	config.CaptionConfig.RequireKeyword = true
//	analyzer := layout.NewAnalyzerWithConfig(config)
package layout
