// Package markdown extracts fenced tbl code blocks from Markdown
// documents, so table collections can live inside documentation files.
package markdown

import (
	"bytes"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"
)

// Language is the fence info string that marks a code block as table
// source.
const Language = "tbl"

// Block is one fenced code block of table source. StartLine is the
// 1-based line of the first content line, for remapping diagnostics
// back onto the enclosing document.
type Block struct {
	Content   string `json:"content"`
	StartLine int    `json:"start_line"`
}

// Extractor pulls tbl blocks out of Markdown content.
type Extractor struct {
	md goldmark.Markdown
}

// NewExtractor builds an extractor. GFM is enabled so documents using
// tables or strikethrough around the fenced blocks still parse.
func NewExtractor() *Extractor {
	return &Extractor{
		md: goldmark.New(goldmark.WithExtensions(extension.GFM)),
	}
}

// Extract returns every tbl fenced block in document order. Blocks with
// any other language, and indented code blocks, are ignored.
func (e *Extractor) Extract(content []byte) []Block {
	reader := text.NewReader(content)
	doc := e.md.Parser().Parse(reader)

	var blocks []Block
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		fenced, ok := n.(*ast.FencedCodeBlock)
		if !ok {
			return ast.WalkContinue, nil
		}
		if string(fenced.Language(content)) != Language {
			return ast.WalkSkipChildren, nil
		}

		blocks = append(blocks, Block{
			Content:   blockContent(fenced, content),
			StartLine: blockStartLine(fenced, content),
		})
		return ast.WalkSkipChildren, nil
	})
	return blocks
}

// Join concatenates block contents into one table source, separated by
// newlines so tables from different blocks stay distinct declarations.
func Join(blocks []Block) string {
	parts := make([]string, 0, len(blocks))
	for _, block := range blocks {
		parts = append(parts, strings.TrimRight(block.Content, "\n"))
	}
	return strings.Join(parts, "\n")
}

// JoinPreservingLines concatenates block contents padded with blank
// lines so that line N of the joined source is line N of the enclosing
// document. Diagnostics produced from the joined source then point at
// the document directly. Blank lines are ignored by the table grammar,
// so the padding does not change what the source means.
func JoinPreservingLines(blocks []Block) string {
	var buf strings.Builder
	line := 1
	for _, block := range blocks {
		for line < block.StartLine {
			buf.WriteByte('\n')
			line++
		}
		content := strings.TrimRight(block.Content, "\n")
		if content == "" {
			continue
		}
		buf.WriteString(content)
		buf.WriteByte('\n')
		line += strings.Count(content, "\n") + 1
	}
	return buf.String()
}

func blockContent(fenced *ast.FencedCodeBlock, content []byte) string {
	var buf bytes.Buffer
	lines := fenced.Lines()
	for i := 0; i < lines.Len(); i++ {
		segment := lines.At(i)
		buf.Write(segment.Value(content))
	}
	return buf.String()
}

// blockStartLine locates the first content line. An empty block has no
// line segments, so the opening fence's info string anchors it instead.
func blockStartLine(fenced *ast.FencedCodeBlock, content []byte) int {
	lines := fenced.Lines()
	if lines.Len() > 0 {
		return lineOf(content, lines.At(0).Start)
	}
	if fenced.Info != nil {
		return lineOf(content, fenced.Info.Segment.Start) + 1
	}
	return 1
}

func lineOf(content []byte, offset int) int {
	if offset > len(content) {
		offset = len(content)
	}
	return bytes.Count(content[:offset], []byte{'\n'}) + 1
}
