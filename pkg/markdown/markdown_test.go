package markdown_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gotbl/pkg/collection"
	"github.com/yaklabco/gotbl/pkg/markdown"
)

const document = "# Random Tables\n" +
	"\n" +
	"Colors for the generator:\n" +
	"\n" +
	"```tbl\n" +
	"#color\n" +
	"1.0: red\n" +
	"2.0: blue\n" +
	"```\n" +
	"\n" +
	"Some Go code that must be ignored:\n" +
	"\n" +
	"```go\n" +
	"fmt.Println(\"not tables\")\n" +
	"```\n" +
	"\n" +
	"```tbl\n" +
	"#shape\n" +
	"1.0: circle\n" +
	"```\n"

func TestExtract(t *testing.T) {
	blocks := markdown.NewExtractor().Extract([]byte(document))

	require.Len(t, blocks, 2)

	assert.Equal(t, "#color\n1.0: red\n2.0: blue\n", blocks[0].Content)
	assert.Equal(t, 6, blocks[0].StartLine)

	assert.Equal(t, "#shape\n1.0: circle\n", blocks[1].Content)
	assert.Equal(t, 18, blocks[1].StartLine)
}

func TestExtractIgnoresOtherLanguages(t *testing.T) {
	content := "```go\nfunc main() {}\n```\n\n```\nplain fence\n```\n"

	blocks := markdown.NewExtractor().Extract([]byte(content))
	assert.Empty(t, blocks)
}

func TestExtractEmptyBlock(t *testing.T) {
	content := "intro\n\n```tbl\n```\n"

	blocks := markdown.NewExtractor().Extract([]byte(content))

	require.Len(t, blocks, 1)
	assert.Equal(t, "", blocks[0].Content)
	assert.Equal(t, 4, blocks[0].StartLine)
}

func TestExtractNoBlocks(t *testing.T) {
	blocks := markdown.NewExtractor().Extract([]byte("just prose, no fences"))
	assert.Empty(t, blocks)
}

func TestJoin(t *testing.T) {
	blocks := []markdown.Block{
		{Content: "#color\n1.0: red\n", StartLine: 3},
		{Content: "#shape\n1.0: circle\n", StartLine: 9},
	}

	joined := markdown.Join(blocks)
	assert.Equal(t, "#color\n1.0: red\n#shape\n1.0: circle", joined)
}

func TestJoinPreservingLines(t *testing.T) {
	blocks := markdown.NewExtractor().Extract([]byte(document))
	source := markdown.JoinPreservingLines(blocks)

	// Line N of the joined source is line N of the document.
	lines := strings.Split(source, "\n")
	require.Greater(t, len(lines), 18)
	assert.Equal(t, "#color", lines[5])
	assert.Equal(t, "1.0: red", lines[6])
	assert.Equal(t, "2.0: blue", lines[7])
	assert.Equal(t, "#shape", lines[17])
	assert.Equal(t, "1.0: circle", lines[18])
}

func TestJoinedBlocksCompile(t *testing.T) {
	blocks := markdown.NewExtractor().Extract([]byte(document))

	for name, join := range map[string]func([]markdown.Block) string{
		"compact":         markdown.Join,
		"line preserving": markdown.JoinPreservingLines,
	} {
		t.Run(name, func(t *testing.T) {
			c, err := collection.NewSeeded(join(blocks), 1)
			require.NoError(t, err)
			assert.Equal(t, []string{"color", "shape"}, c.TableIDs())
		})
	}
}
