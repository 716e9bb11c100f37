package check

import (
	"context"

	"github.com/yaklabco/gotbl/pkg/analysis"
	"github.com/yaklabco/gotbl/pkg/ast"
	"github.com/yaklabco/gotbl/pkg/collection"
	"github.com/yaklabco/gotbl/pkg/diag"
	"github.com/yaklabco/gotbl/pkg/lexer"
)

// Context provides everything a check needs about the file under check.
//
// The context.Context lives in the Ctx field rather than a Run parameter
// so the Check interface stays a single method; a Context exists for one
// file's check pass only.
type Context struct {
	// Ctx is the context for cancellation.
	Ctx context.Context

	// Path is the path of the file being checked, empty for anonymous
	// sources.
	Path string

	// Source is the raw TBL text.
	Source string

	// Program is the parsed source, nil when parsing failed.
	Program *ast.Program

	// Collection is the compiled program, nil when construction failed.
	Collection *collection.Collection

	// ConstructErr is the parse or construction failure, nil on success.
	ConstructErr error

	collector *diag.Collector
	report    *analysis.Report
	sites     []ExpressionSite
	scanned   bool
}

// NewContext creates a Context for one source and its compilation
// outcome. Program and coll may be nil when the corresponding stage
// failed.
func NewContext(
	ctx context.Context,
	path string,
	source string,
	program *ast.Program,
	coll *collection.Collection,
	constructErr error,
) *Context {
	return &Context{
		Ctx:          ctx,
		Path:         path,
		Source:       source,
		Program:      program,
		Collection:   coll,
		ConstructErr: constructErr,
	}
}

// Cancelled returns true if the context has been cancelled.
func (c *Context) Cancelled() bool {
	select {
	case <-c.Ctx.Done():
		return true
	default:
		return false
	}
}

// Collector returns a diagnostic builder for the source, shared between
// checks.
func (c *Context) Collector() *diag.Collector {
	if c.collector == nil {
		c.collector = diag.NewCollector(c.Source)
	}
	return c.collector
}

// Analysis returns the statistics report with the reference graph,
// computed once and shared between checks. Nil when the source did not
// parse.
func (c *Context) Analysis() *analysis.Report {
	if c.Program == nil {
		return nil
	}
	if c.report == nil {
		c.report = analysis.Analyze(c.Source, c.Program, analysis.Options{
			IncludeGraph: true,
			SortBy:       analysis.SortByDeclaration,
		})
	}
	return c.report
}

// ExpressionSites returns the source location of every braced expression,
// computed once and shared between checks. Content items carry no spans,
// so the sites are recovered from the token stream. Nil when the source
// did not parse.
func (c *Context) ExpressionSites() []ExpressionSite {
	if c.Program == nil {
		return nil
	}
	if !c.scanned {
		c.scanned = true
		tokens, err := lexer.Tokenize(c.Source)
		if err == nil {
			c.sites = scanExpressionSites(tokens)
		}
	}
	return c.sites
}

// DeclarationSpan returns the span of the '#id' header of the first
// declaration of the given table, and whether the table is declared.
func (c *Context) DeclarationSpan(tableID string) (ast.Span, bool) {
	if c.Program == nil {
		return ast.Span{}, false
	}
	for _, node := range c.Program.Tables {
		if node.Value.Metadata.ID == tableID {
			return headerSpan(node), true
		}
	}
	return ast.Span{}, false
}

// headerSpan narrows a table node's span to its '#id' header.
func headerSpan(node ast.Node[ast.Table]) ast.Span {
	start := node.Span.Start
	return ast.NewSpan(start, start+1+len(node.Value.Metadata.ID))
}

// ExpressionSite is the source location of one braced expression,
// together with the reference it makes.
type ExpressionSite struct {
	// Kind discriminates what the expression is.
	Kind ast.ExpressionKind

	// TableID is the referenced table, for table and external references.
	TableID string

	// Publisher and Collection identify the foreign collection, for
	// external references.
	Publisher  string
	Collection string

	// Span covers the expression from '{' through '}'.
	Span ast.Span
}

// scanExpressionSites walks a token stream and records each braced
// expression group. The stream must come from a source that parsed; the
// shapes inside braces are then known to be well formed.
func scanExpressionSites(tokens []lexer.Token) []ExpressionSite {
	var sites []ExpressionSite

	for i := 0; i < len(tokens); i++ {
		if tokens[i].Type != lexer.TokenLeftBrace {
			continue
		}

		site := ExpressionSite{Span: tokens[i].Span}
		j := i + 1
		switch tokenAt(tokens, j).Type {
		case lexer.TokenHash:
			site.Kind = ast.ExprTableReference
			site.TableID = tokenAt(tokens, j+1).Text
		case lexer.TokenAt:
			site.Kind = ast.ExprExternalTableReference
			site.Publisher = tokenAt(tokens, j+1).Text
			site.Collection = tokenAt(tokens, j+3).Text
			site.TableID = tokenAt(tokens, j+5).Text
		case lexer.TokenDiceRoll:
			site.Kind = ast.ExprDiceRoll
		default:
			continue
		}

		// Extend the span to the closing '}'.
		for ; j < len(tokens); j++ {
			t := tokens[j]
			if t.Type == lexer.TokenRightBrace {
				site.Span.End = t.Span.End
				sites = append(sites, site)
				break
			}
			if t.Type == lexer.TokenNewline || t.Type == lexer.TokenEOF {
				break
			}
		}
		i = j
	}

	return sites
}

func tokenAt(tokens []lexer.Token, idx int) lexer.Token {
	if idx >= len(tokens) {
		return lexer.Token{Type: lexer.TokenEOF}
	}
	return tokens[idx]
}
