package parser

import (
	"github.com/sunshine-lang/sunc/internal/ast"
	"github.com/sunshine-lang/sunc/internal/diag"
	"github.com/sunshine-lang/sunc/internal/token"
)

// ParseItem parses one `fn` | `struct` | `mod` declaration, per spec.md
// §4.4. An optional leading `pub` keyword marks it exported.
func (p *Parser) ParseItem() ast.Item {
	pos := p.stream.Peek().Pos()
	vis := ast.Private
	if p.stream.Peek().IsKeyword(token.Pub) {
		p.stream.Next()
		vis = ast.Public
	}

	tok := p.stream.Peek()
	switch {
	case tok.IsKeyword(token.Fn):
		return p.parseFunction(pos, vis)
	case tok.IsKeyword(token.Struct):
		return p.parseStruct(pos, vis)
	case tok.IsKeyword(token.Mod):
		return p.parseModule(pos, vis)
	default:
		p.error(diag.ExpectedItem{Got: tok.String()}.Error(), tok)
		p.recover()
		return nil
	}
}

func (p *Parser) parseFunction(pos token.Position, vis ast.Visibility) *ast.Function {
	p.stream.Next() // 'fn'
	name, _ := p.expectIdentifier("function name")
	p.expectPunct("(")

	var params []*ast.Param
	for !p.stream.Peek().IsPunct(")") && !p.stream.IsEOF() {
		ppos := p.stream.Peek().Pos()
		pname, _ := p.expectIdentifier("parameter name")
		p.expectPunct(":")
		ptype := p.ParseType()
		params = append(params, ast.NewParam(ppos, pname, ptype))
		if p.stream.Peek().IsPunct(",") {
			p.stream.Next()
			continue
		}
		break
	}
	p.expectPunct(")")

	var ret ast.Type
	if p.stream.Peek().IsPunct("->") {
		p.stream.Next()
		ret = p.ParseType()
	}

	body := p.ParseBlock()
	return ast.NewFunction(pos, vis, name, params, ret, body)
}

func (p *Parser) parseStruct(pos token.Position, vis ast.Visibility) *ast.Struct {
	p.stream.Next() // 'struct'
	name, _ := p.expectIdentifier("struct name")
	p.expectPunct("{")

	var fields []*ast.Field
	for !p.stream.Peek().IsPunct("}") && !p.stream.IsEOF() {
		fields = append(fields, p.ParseField())
		if p.stream.Peek().IsPunct(",") {
			p.stream.Next()
			continue
		}
		break
	}
	p.expectPunct("}")
	return ast.NewStruct(pos, vis, name, fields)
}

// ParseField parses one `NAME : TYPE` struct member.
func (p *Parser) ParseField() *ast.Field {
	pos := p.stream.Peek().Pos()
	name, _ := p.expectIdentifier("field name")
	p.expectPunct(":")
	typ := p.ParseType()
	return ast.NewField(pos, name, typ)
}

func (p *Parser) parseModule(pos token.Position, vis ast.Visibility) *ast.Module {
	p.stream.Next() // 'mod'
	name, _ := p.expectIdentifier("module name")

	if p.stream.Peek().IsPunct(";") {
		p.stream.Next()
		return ast.NewModule(pos, vis, name, ast.Loadable, nil)
	}

	p.expectPunct("{")
	p.scope = append(p.scope, name)
	var items []ast.Item
	for !p.stream.Peek().IsPunct("}") && !p.stream.IsEOF() {
		item := p.ParseItem()
		if item == nil {
			continue
		}
		items = append(items, item)
		p.registerItem(item)
	}
	p.scope = p.scope[:len(p.scope)-1]
	p.expectPunct("}")
	return ast.NewModule(pos, vis, name, ast.Inline, items)
}

// ParseType parses a bare type name, the only type-expression form this
// language stage supports.
func (p *Parser) ParseType() ast.Type {
	name, tok := p.expectIdentifier("type name")
	return ast.NewPathType(tok.Pos(), name)
}

// ParseBlock parses `{ stmt* tail? }`, applying spec.md §4.4's
// block-vs-statement semicolon rules.
func (p *Parser) ParseBlock() *ast.Block {
	pos := p.stream.Peek().Pos()
	p.expectPunct("{")

	var stmts []ast.Stmt
	for {
		tok := p.stream.Peek()

		if tok.IsPunct("}") {
			p.stream.Next()
			return ast.NewBlock(pos, stmts, nil)
		}
		if p.stream.IsEOF() {
			p.error(diag.UnexpectedEOF{}.Error(), tok)
			return ast.NewBlock(pos, stmts, nil)
		}

		if tok.IsKeyword(token.Pub) || tok.IsKeyword(token.Fn) || tok.IsKeyword(token.Struct) || tok.IsKeyword(token.Mod) {
			item := p.ParseItem()
			if item == nil {
				continue
			}
			p.registerItem(item)
			stmts = append(stmts, ast.NewItemStmt(item.Pos(), item))
			continue
		}
		if tok.IsKeyword(token.Let) {
			stmts = append(stmts, p.parseLetStmt())
			continue
		}
		if tok.IsKeyword(token.Return) {
			stmts = append(stmts, p.parseReturnStmt())
			continue
		}
		if tok.IsKeyword(token.Break) {
			stmts = append(stmts, p.parseBreakStmt())
			continue
		}

		node := p.ParseOperatorExpr()
		if node == nil {
			p.recover(";", "}")
			continue
		}
		if assign, ok := node.(*ast.Assignment); ok {
			stmts = append(stmts, assign)
			p.expectPunct(";")
			continue
		}
		expr := node.(ast.Expr)

		if p.stream.Peek().IsPunct("}") {
			p.stream.Next()
			return ast.NewBlock(pos, stmts, expr)
		}
		if _, isBlock := expr.(ast.BlockExpr); isBlock {
			if p.stream.Peek().IsPunct(";") {
				p.stream.Next()
			}
			stmts = append(stmts, ast.NewExprStmt(expr.Pos(), expr))
			continue
		}
		p.expectPunct(";")
		stmts = append(stmts, ast.NewExprStmt(expr.Pos(), expr))
	}
}

func (p *Parser) parseLetStmt() *ast.LetStmt {
	pos := p.stream.Peek().Pos()
	p.stream.Next() // 'let'
	name, _ := p.expectIdentifier("variable name")

	var typ ast.Type
	if p.stream.Peek().IsPunct(":") {
		p.stream.Next()
		typ = p.ParseType()
	}

	var value ast.Expr
	if p.stream.Peek().IsPunct("=") {
		p.stream.Next()
		node := p.ParseOperatorExpr()
		if assign, ok := node.(*ast.Assignment); ok {
			p.error(diag.AssignmentInExpressionPosition{}.Error(), p.stream.Peek())
			value = assign.Value
		} else if node != nil {
			value = node.(ast.Expr)
		}
	}

	p.expectPunct(";")
	return ast.NewLetStmt(pos, name, typ, value)
}

func (p *Parser) parseReturnStmt() *ast.ReturnStmt {
	pos := p.stream.Peek().Pos()
	p.stream.Next() // 'return'

	var value ast.Expr
	if !p.stream.Peek().IsPunct(";") {
		node := p.ParseOperatorExpr()
		if assign, ok := node.(*ast.Assignment); ok {
			p.error(diag.AssignmentInExpressionPosition{}.Error(), p.stream.Peek())
			value = assign.Value
		} else if node != nil {
			value = node.(ast.Expr)
		}
	}
	p.expectPunct(";")
	return ast.NewReturnStmt(pos, value)
}

func (p *Parser) parseBreakStmt() *ast.BreakStmt {
	pos := p.stream.Peek().Pos()
	p.stream.Next() // 'break'
	p.expectPunct(";")
	return ast.NewBreakStmt(pos)
}

// parseOperand implements spec.md §4.4's parse_operand: blocks, if/while/
// for, boolean/number/string literals, and identifiers (plain variables,
// `a::b::c` paths, and calls).
func (p *Parser) parseOperand() ast.Expr {
	tok := p.stream.Peek()

	switch {
	case tok.IsPunct("{"):
		return p.ParseBlock()
	case tok.IsKeyword(token.If):
		return p.parseIfExpr()
	case tok.IsKeyword(token.While):
		return p.parseWhileExpr()
	case tok.IsKeyword(token.For):
		return p.parseForExpr()
	case tok.IsKeyword(token.True):
		p.stream.Next()
		return ast.NewBoolLiteral(tok.Pos(), true)
	case tok.IsKeyword(token.False):
		p.stream.Next()
		return ast.NewBoolLiteral(tok.Pos(), false)
	case tok.Kind == token.NumberTok:
		p.stream.Next()
		return ast.NewNumberLiteral(tok.Pos(), tok.Num)
	case tok.Kind == token.StringTok:
		p.stream.Next()
		return ast.NewStringLiteral(tok.Pos(), tok.Str)
	case tok.Kind == token.IdentifierTok:
		return p.parseIdentifierOperand()
	case tok.IsKeyword(token.Else):
		p.error(diag.ElseWithoutIf{}.Error(), tok)
		p.stream.Next()
		return nil
	case tok.Kind == token.KeywordTok:
		p.error(diag.KeywordNotAllowed{Keyword: tok.Key.String()}.Error(), tok)
		p.stream.Next()
		return nil
	default:
		p.error(diag.ExpectedExpression{Got: tok.String()}.Error(), tok)
		return nil
	}
}

func (p *Parser) parseIdentifierOperand() ast.Expr {
	pos := p.stream.Peek().Pos()
	first, _ := p.expectIdentifier("identifier")
	path := []string{first}
	for p.stream.Peek().IsPunct("::") {
		p.stream.Next()
		seg, _ := p.expectIdentifier("path segment")
		path = append(path, seg)
	}

	if p.stream.Peek().IsPunct("(") {
		args := p.parseCallArgs()
		return ast.NewFnCall(pos, path, args)
	}

	if len(path) > 1 {
		p.error(diag.PathMisuse{Detail: "multi-segment path used as a value, not a call"}.Error(), p.stream.Peek())
		return nil
	}
	return ast.NewVar(pos, first)
}

func (p *Parser) parseCallArgs() []ast.Expr {
	p.expectPunct("(")
	var args []ast.Expr
	for !p.stream.Peek().IsPunct(")") && !p.stream.IsEOF() {
		node := p.ParseOperatorExpr()
		if assign, ok := node.(*ast.Assignment); ok {
			p.error(diag.AssignmentInExpressionPosition{}.Error(), p.stream.Peek())
			args = append(args, assign.Value)
		} else if node != nil {
			args = append(args, node.(ast.Expr))
		}
		if p.stream.Peek().IsPunct(",") {
			p.stream.Next()
			continue
		}
		break
	}
	p.expectPunct(")")
	return args
}

func (p *Parser) parseIfExpr() *ast.If {
	pos := p.stream.Peek().Pos()
	p.stream.Next() // 'if'
	cond := p.parseConditionExpr()
	body := p.ParseBlock()

	var elseBody ast.Expr
	if p.stream.Peek().IsKeyword(token.Else) {
		p.stream.Next()
		if p.stream.Peek().IsKeyword(token.If) {
			elseBody = p.parseIfExpr()
		} else {
			elseBody = p.ParseBlock()
		}
	}
	return ast.NewIf(pos, cond, body, elseBody)
}

func (p *Parser) parseWhileExpr() *ast.While {
	pos := p.stream.Peek().Pos()
	p.stream.Next() // 'while'
	cond := p.parseConditionExpr()
	body := p.ParseBlock()
	return ast.NewWhile(pos, cond, body)
}

func (p *Parser) parseForExpr() *ast.For {
	pos := p.stream.Peek().Pos()
	p.stream.Next() // 'for'
	name, _ := p.expectIdentifier("loop variable")
	if !p.stream.Peek().IsKeyword(token.In) {
		p.error(diag.TokenMismatch{Expected: "'in'", Got: p.stream.Peek().String()}.Error(), p.stream.Peek())
	} else {
		p.stream.Next()
	}
	iter := p.parseConditionExpr()
	body := p.ParseBlock()
	return ast.NewFor(pos, name, iter, body)
}

// parseConditionExpr parses the condition/iterable slot of if/while/for:
// an expression that must not itself be an assignment.
func (p *Parser) parseConditionExpr() ast.Expr {
	node := p.ParseOperatorExpr()
	if assign, ok := node.(*ast.Assignment); ok {
		p.error(diag.AssignmentInExpressionPosition{}.Error(), p.stream.Peek())
		return assign.Value
	}
	if node == nil {
		return nil
	}
	return node.(ast.Expr)
}

// registerItem inserts item into the shared table at the current scope and,
// for a loadable `mod NAME;`, enqueues it on the pending worklist, per
// spec.md §5.
func (p *Parser) registerItem(item ast.Item) {
	p.table.TryInsert(p.currentScope(), item)
	if mod, ok := item.(*ast.Module); ok && mod.Kind == ast.Loadable {
		childScope := append(append([]string{}, p.scope...), mod.Name)
		p.pending = append(p.pending, pendingFile{
			path:  p.currentScope().Join(mod.Name),
			scope: childScope,
		})
	}
}
