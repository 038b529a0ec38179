package parser

import (
	"fmt"

	"github.com/sunshine-lang/sunc/internal/ast"
	"github.com/sunshine-lang/sunc/internal/diag"
	"github.com/sunshine-lang/sunc/internal/itempath"
	"github.com/sunshine-lang/sunc/internal/itemtable"
	"github.com/sunshine-lang/sunc/internal/lexer"
	"github.com/sunshine-lang/sunc/internal/source"
	"github.com/sunshine-lang/sunc/internal/token"
)

// pendingFile is one entry of the LIFO worklist of not-yet-parsed
// loadable modules, per spec.md §5: "pending files form a LIFO worklist
// to guarantee deterministic completion."
type pendingFile struct {
	path  itempath.Absolute
	scope []string
}

// Parser drives the recursive-descent grammar over a crate's files,
// inserting every declared item into a single shared itemtable.Table as
// it goes.
type Parser struct {
	stream TokenStream

	reporter  *diag.Reporter
	sourceMap *source.Map
	table     *itemtable.Table
	crate     string

	scope   []string // current module's segments, relative to the crate root
	pending []pendingFile
}

// NewParser creates a Parser that will insert declarations into table and
// report diagnostics through reporter. srcMap may be nil if loadable
// submodules are not expected to be followed (e.g. in unit tests that
// feed a single in-memory snippet).
func NewParser(reporter *diag.Reporter, table *itemtable.Table, srcMap *source.Map, crate string) *Parser {
	return &Parser{reporter: reporter, sourceMap: srcMap, table: table, crate: crate}
}

// currentScope returns the absolute path of the module currently being
// parsed.
func (p *Parser) currentScope() itempath.Absolute {
	return itempath.NewAbsolute(p.crate, p.scope...)
}

// ParseCrate parses the crate's root file text and then drains the
// pending-loadable-module worklist, per spec.md §4.4's "Top-level parsing
// yields a synthetic module named from the crate's root" and §5's
// file-processing order. Returns the root's Crate AST node (submodule
// ASTs are discarded after their items are registered in the table,
// matching the spec's item-table-centric design — only the root crate
// value is returned to the caller).
func (p *Parser) ParseCrate(rootText string) *ast.Crate {
	root := p.parseFileItems(rootText, token.SourceID(1), "<root>")
	crate := ast.NewCrate(token.Position{Line: 1, Col: 1}, p.crate, root)

	for len(p.pending) > 0 {
		n := len(p.pending) - 1
		entry := p.pending[n]
		p.pending = p.pending[:n]

		if p.sourceMap == nil {
			continue
		}
		file, err := p.sourceMap.Insert(entry.path)
		if err != nil {
			p.reporter.ReportErr(err.(diag.CompilerError), token.Span{}, entry.path.String())
			continue
		}
		text, err := file.Read()
		if err != nil {
			if ce, ok := err.(diag.CompilerError); ok {
				p.reporter.ReportErr(ce, token.Span{}, file.Path())
			}
			continue
		}
		p.scope = entry.scope
		p.parseFileItems(text, token.SourceID(len(p.pending)+2), file.Path())
		p.scope = nil
	}

	return crate
}

// parseFileItems lexes text and parses a flat item* sequence under the
// parser's current scope, inserting each item into the shared table.
func (p *Parser) parseFileItems(text string, src token.SourceID, path string) []ast.Item {
	lx := lexer.New(text, p.reporter, path, src)
	p.stream = NewTokenStream(lx)

	items := []ast.Item{}
	for !p.stream.IsEOF() {
		item := p.ParseItem()
		if item == nil {
			if p.stream.IsEOF() {
				break
			}
			p.stream.Next()
			continue
		}
		items = append(items, item)
		p.table.TryInsert(p.currentScope(), item)
		if mod, ok := item.(*ast.Module); ok && mod.Kind == ast.Loadable {
			childScope := append(append([]string{}, p.scope...), mod.Name)
			p.pending = append(p.pending, pendingFile{
				path:  p.currentScope().Join(mod.Name),
				scope: childScope,
			})
		}
	}
	return items
}

// error reports a parse diagnostic at tok's position through the shared
// Reporter, so the CLI's final summary (spec.md §7) sees every parser
// error alongside lexer/HIR ones.
func (p *Parser) error(msg string, tok token.Token) {
	p.reporter.Error(msg, token.Span{Start: tok.Pos(), End: tok.Pos()}, "")
}

// recover skips tokens until one of syncs, or a block/statement
// terminator, is found — a recovery point per spec.md §7: "Recovery
// points are statement and item boundaries."
func (p *Parser) recover(syncs ...string) {
	for !p.stream.IsEOF() {
		tok := p.stream.Peek()
		for _, s := range syncs {
			if tok.IsPunct(s) {
				return
			}
		}
		if tok.IsPunct(";") || tok.IsPunct("}") {
			p.stream.Next()
			return
		}
		p.stream.Next()
	}
}

// expectPunct consumes and returns the next token if it is punctuation
// equal to lit; otherwise reports an "expected ..., got ..." diagnostic
// and returns the offending token without consuming it.
func (p *Parser) expectPunct(lit string) token.Token {
	tok := p.stream.Peek()
	if tok.IsPunct(lit) {
		return p.stream.Next()
	}
	p.error(fmt.Sprintf("expected %q, got %s", lit, tok.String()), tok)
	return tok
}

func (p *Parser) expectIdentifier(desc string) (string, token.Token) {
	tok := p.stream.Peek()
	if tok.Kind == token.IdentifierTok {
		p.stream.Next()
		return tok.Identifier, tok
	}
	p.error(fmt.Sprintf("expected %s, got %s", desc, tok.String()), tok)
	return "", tok
}
