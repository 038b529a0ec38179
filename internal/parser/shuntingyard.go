package parser

import (
	"github.com/sunshine-lang/sunc/internal/ast"
	"github.com/sunshine-lang/sunc/internal/diag"
	"github.com/sunshine-lang/sunc/internal/lexer"
	"github.com/sunshine-lang/sunc/internal/token"
)

// infixKind tags one element of the flat infix sequence built by
// parseInfix, per spec.md §4.3: "a sequence of Operand | UnaryOp |
// BinaryOp | '(' | ')'".
type infixKind int

const (
	kOperand infixKind = iota
	kUnary
	kBinary
	kLParen
	kRParen
)

type infixItem struct {
	kind     infixKind
	operand  ast.Expr
	op       string
	priority int
	pos      token.Position
}

// assignInfo is the "pending assignment" recorded by assignment
// detection in parseInfix.
type assignInfo struct {
	assignee string
	operator string
	pos      token.Position
}

// ParseOperatorExpr parses one infix expression and converts it through
// postfix to a tree, per spec.md §4.3. The return value is either an
// ast.Expr or, if the infix pass detected a leading bare-identifier
// assignment, an *ast.Assignment — callers distinguish via a type switch.
func (p *Parser) ParseOperatorExpr() ast.Node {
	items, assign, ok := p.parseInfix()
	if !ok {
		return nil
	}
	postfix := toPostfix(items)
	tree := postfixToTree(postfix)
	if tree == nil {
		return nil
	}
	if assign != nil {
		return ast.NewAssignment(assign.pos, assign.assignee, assign.operator, tree)
	}
	return tree
}

// parseInfix implements the state machine of spec.md §4.3: the
// last-emitted category decides whether a binary operator/')'/assignment
// or a unary operator/'('/operand is expected next.
func (p *Parser) parseInfix() ([]infixItem, *assignInfo, bool) {
	var items []infixItem
	depth := 0
	expectOperand := true // true: expect unary/'('/operand. false: expect binary/')'/assign-or-stop.

	for {
		tok := p.stream.Peek()

		if !expectOperand {
			if tok.IsPunct(")") && depth > 0 {
				p.stream.Next()
				items = append(items, infixItem{kind: kRParen})
				depth--
				continue
			}
			if tok.Kind == token.PunctuationTok {
				if props, ok := lexer.Punctuation[tok.Punct]; ok && props.IsBinary {
					p.stream.Next()
					items = append(items, infixItem{kind: kBinary, op: tok.Punct, priority: props.BinaryPriority, pos: tok.Pos()})
					expectOperand = true
					continue
				}
				if props, ok := lexer.Punctuation[tok.Punct]; ok && props.IsAssign && len(items) == 1 && items[0].kind == kOperand {
					if v, isVar := items[0].operand.(*ast.Var); isVar {
						p.stream.Next()
						rhsItems, rhsAssign, ok := p.parseInfix()
						if !ok {
							return nil, nil, false
						}
						if rhsAssign != nil {
							p.error(diag.ChainedAssignment{}.Error(), tok)
							return nil, nil, false
						}
						return rhsItems, &assignInfo{assignee: v.Name, operator: tok.Punct, pos: items[0].pos}, true
					}
					p.error(diag.InvalidAssignee{}.Error(), tok)
					return nil, nil, false
				}
			}
			break // stop without consuming: binary/')' not found
		}

		// expectOperand == true: unary op, '(', or operand.
		if tok.IsPunct("(") {
			p.stream.Next()
			items = append(items, infixItem{kind: kLParen})
			depth++
			continue
		}
		if tok.Kind == token.PunctuationTok {
			if props, ok := lexer.Punctuation[tok.Punct]; ok && props.IsUnary {
				p.stream.Next()
				items = append(items, infixItem{kind: kUnary, op: tok.Punct, pos: tok.Pos()})
				continue
			}
		}

		operand := p.parseOperand()
		if operand == nil {
			return nil, nil, false
		}
		items = append(items, infixItem{kind: kOperand, operand: operand, pos: operand.Pos()})
		expectOperand = false
	}

	if depth > 0 {
		p.error(diag.UnclosedParenthesis{}.Error(), p.stream.Peek())
		return nil, nil, false
	}
	if len(items) == 0 || items[0].kind == kBinary {
		p.error(diag.ExpectedExpression{Got: p.stream.Peek().String()}.Error(), p.stream.Peek())
		return nil, nil, false
	}
	return items, nil, true
}

// toPostfix is the shunting-yard reduction of spec.md §4.3. Per spec.md
// §9's pinned resolution (matching original_source's shunting_yard.rs
// pop loop), a unary operator on the stack binds tighter than any binary
// operator and is popped unconditionally — only a lower-priority Binary
// or a '(' marker stops the pop loop — so unary wraps only its single
// immediate operand instead of swallowing the rest of the expression.
func toPostfix(items []infixItem) []infixItem {
	var output []infixItem
	var stack []infixItem

	popWhileHigherOrEqual := func(priority int) {
		for len(stack) > 0 {
			top := stack[len(stack)-1]
			if top.kind == kBinary && top.priority < priority {
				return
			}
			if top.kind != kUnary && top.kind != kBinary {
				return // lparen marker: stop
			}
			output = append(output, top)
			stack = stack[:len(stack)-1]
		}
	}

	for _, it := range items {
		switch it.kind {
		case kOperand:
			output = append(output, it)
		case kUnary:
			stack = append(stack, it)
		case kBinary:
			popWhileHigherOrEqual(it.priority)
			stack = append(stack, it)
		case kLParen:
			stack = append(stack, it)
		case kRParen:
			for len(stack) > 0 && stack[len(stack)-1].kind != kLParen {
				output = append(output, stack[len(stack)-1])
				stack = stack[:len(stack)-1]
			}
			if len(stack) > 0 {
				stack = stack[:len(stack)-1] // discard the '(' marker itself
			}
		}
	}
	for len(stack) > 0 {
		output = append(output, stack[len(stack)-1])
		stack = stack[:len(stack)-1]
	}
	return output
}

// postfixToTree builds the expression tree from postfix notation. This
// processes postfix forward while treating a growing slice as a stack,
// which is equivalent to spec.md §4.3's "pop entries from the back" but
// reads more naturally in Go.
func postfixToTree(postfix []infixItem) ast.Expr {
	var stack []ast.Expr
	for _, it := range postfix {
		switch it.kind {
		case kOperand:
			stack = append(stack, it.operand)
		case kUnary:
			if len(stack) == 0 {
				return nil
			}
			v := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			stack = append(stack, ast.NewUnary(it.pos, it.op, v))
		case kBinary:
			if len(stack) < 2 {
				return nil
			}
			right := stack[len(stack)-1]
			left := stack[len(stack)-2]
			stack = stack[:len(stack)-2]
			stack = append(stack, ast.NewBinary(left.Pos(), it.op, left, right))
		}
	}
	if len(stack) != 1 {
		if len(stack) == 0 {
			return nil
		}
		return stack[len(stack)-1]
	}
	return stack[0]
}
