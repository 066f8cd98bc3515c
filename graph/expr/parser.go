package expr

import (
	"fmt"
	"strconv"
	"unicode"
	"unicode/utf8"
)

type tokenKind uint8

const (
	tokEOF tokenKind = iota
	tokIllegal
	tokNumber
	tokIdent
	tokPlus
	tokMinus
	tokStar
	tokSlash
	tokCaret
	tokLParen
	tokRParen
	tokComma
)

type token struct {
	kind tokenKind
	text string
	num  float64
}

type lexer struct {
	s string
	i int

	// pending holds tokens produced by a rewrite, returned before scanning resumes.
	pending []token
}

func (l *lexer) next() token {
	if len(l.pending) > 0 {
		tok := l.pending[0]
		l.pending = l.pending[1:]
		return tok
	}
	for l.i < len(l.s) {
		r, size := utf8.DecodeRuneInString(l.s[l.i:])
		if !unicode.IsSpace(r) {
			break
		}
		l.i += size
	}
	if l.i >= len(l.s) {
		return token{kind: tokEOF}
	}

	switch l.s[l.i] {
	case '+':
		l.i++
		return token{kind: tokPlus, text: "+"}
	case '-':
		l.i++
		return token{kind: tokMinus, text: "-"}
	case '*':
		l.i++
		return token{kind: tokStar, text: "*"}
	case '/':
		l.i++
		return token{kind: tokSlash, text: "/"}
	case '^':
		l.i++
		return token{kind: tokCaret, text: "^"}
	case '(', '[':
		l.i++
		return token{kind: tokLParen, text: "("}
	case ')', ']':
		l.i++
		return token{kind: tokRParen, text: ")"}
	case ',':
		l.i++
		return token{kind: tokComma, text: ","}
	}

	ch, size := utf8.DecodeRuneInString(l.s[l.i:])
	if isIdentStart(ch) {
		start := l.i
		l.i += size
		for l.i < len(l.s) {
			r, n := utf8.DecodeRuneInString(l.s[l.i:])
			if !isIdentContinue(r) {
				break
			}
			l.i += n
		}
		txt := l.s[start:l.i]
		if exp, ok := powerSuffix(txt); ok {
			l.pending = append(l.pending,
				token{kind: tokCaret, text: "^"},
				token{kind: tokNumber, text: exp, num: mustFloat(exp)},
			)
			return token{kind: tokIdent, text: Var}
		}
		return token{kind: tokIdent, text: txt}
	}
	if ch == '.' || isDigit(l.s[l.i]) {
		start := l.i
		l.i = scanNumber(l.s, l.i)
		txt := l.s[start:l.i]
		f, err := strconv.ParseFloat(txt, 64)
		if err != nil {
			return token{kind: tokIllegal, text: txt}
		}
		return token{kind: tokNumber, text: txt, num: f}
	}

	l.i += size
	return token{kind: tokIllegal, text: l.s[l.i-size : l.i]}
}

// powerSuffix recognises x followed only by digits ("x2", "x10"), which is read as x^digits.
func powerSuffix(ident string) (string, bool) {
	if len(ident) < 2 || ident[:1] != Var {
		return "", false
	}
	for i := 1; i < len(ident); i++ {
		if !isDigit(ident[i]) {
			return "", false
		}
	}
	return ident[1:], true
}

func mustFloat(s string) float64 {
	f, _ := strconv.ParseFloat(s, 64)
	return f
}

func scanNumber(s string, i int) int {
	start := i
	for i < len(s) && isDigit(s[i]) {
		i++
	}
	if i < len(s) && s[i] == '.' {
		i++
		for i < len(s) && isDigit(s[i]) {
			i++
		}
	}
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		j := i + 1
		if j < len(s) && (s[j] == '+' || s[j] == '-') {
			j++
		}
		k := j
		for k < len(s) && isDigit(s[k]) {
			k++
		}
		// A bare "e" after a number is the constant, as in "2e".
		if k > j {
			i = k
		}
	}
	if i == start {
		return start + 1
	}
	return i
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

func isIdentStart(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func isIdentContinue(r rune) bool {
	return isIdentStart(r) || unicode.IsDigit(r)
}

type parser struct {
	l   lexer
	cur token
}

func parse(s string) (node, error) {
	p := &parser{l: lexer{s: s}}
	p.next()
	if p.cur.kind == tokEOF {
		return nil, ErrEmpty
	}
	n, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if p.cur.kind != tokEOF {
		return nil, fmt.Errorf("%w: unexpected %q", ErrParse, p.cur.text)
	}
	return n, nil
}

func (p *parser) next() { p.cur = p.l.next() }

func (p *parser) parseExpr() (node, error) {
	return p.parseSum()
}

func (p *parser) parseSum() (node, error) {
	left, err := p.parseProduct()
	if err != nil {
		return nil, err
	}
	for p.cur.kind == tokPlus || p.cur.kind == tokMinus {
		op := p.cur.text[0]
		p.next()
		right, err := p.parseProduct()
		if err != nil {
			return nil, err
		}
		left = nodeBinary{op: op, left: left, right: right}
	}
	return left, nil
}

func (p *parser) parseProduct() (node, error) {
	left, err := p.parseImplicit()
	if err != nil {
		return nil, err
	}
	for p.cur.kind == tokStar || p.cur.kind == tokSlash {
		op := p.cur.text[0]
		p.next()
		right, err := p.parseImplicit()
		if err != nil {
			return nil, err
		}
		left = nodeBinary{op: op, left: left, right: right}
	}
	return left, nil
}

// parseImplicit handles multiplication by adjacency ("2x", "(x+1)(x-1)", "x sin(x)").
// It binds tighter than explicit * and /, so "1/2x" is 1/(2x).
func (p *parser) parseImplicit() (node, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for p.cur.kind == tokIdent || p.cur.kind == tokLParen {
		right, err := p.parsePower()
		if err != nil {
			return nil, err
		}
		left = nodeBinary{op: '*', left: left, right: right}
	}
	return left, nil
}

func (p *parser) parseUnary() (node, error) {
	if p.cur.kind == tokPlus || p.cur.kind == tokMinus {
		op := p.cur.text[0]
		p.next()
		x, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return nodeUnary{op: op, x: x}, nil
	}
	return p.parsePower()
}

func (p *parser) parsePower() (node, error) {
	left, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	if p.cur.kind == tokCaret {
		p.next()
		// The exponent may carry its own sign: 2^-x.
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return nodeBinary{op: '^', left: left, right: right}, nil
	}
	return left, nil
}

func (p *parser) parsePrimary() (node, error) {
	switch p.cur.kind {
	case tokNumber:
		v := p.cur.num
		p.next()
		return nodeNumber{v: v}, nil
	case tokIdent:
		name := p.cur.text
		p.next()
		if b, ok := builtins[name]; ok {
			return p.parseCall(name, b)
		}
		if name == Var {
			return nodeIdent{name: name}, nil
		}
		if v, ok := constants[name]; ok {
			return nodeNumber{v: v, name: name}, nil
		}
		if p.cur.kind == tokLParen {
			return nil, fmt.Errorf("%w %q", ErrUnknownFunc, name)
		}
		return nil, fmt.Errorf("%w %q", ErrUnknownVar, name)
	case tokLParen:
		p.next()
		ex, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if p.cur.kind != tokRParen {
			return nil, fmt.Errorf("%w: expected ')'", ErrParse)
		}
		p.next()
		return ex, nil
	case tokEOF:
		return nil, fmt.Errorf("%w: unexpected end of input", ErrParse)
	default:
		return nil, fmt.Errorf("%w: unexpected %q", ErrParse, p.cur.text)
	}
}

func (p *parser) parseCall(name string, b builtin) (node, error) {
	if p.cur.kind != tokLParen {
		return nil, fmt.Errorf("%w: %s needs an argument list", ErrParse, name)
	}
	p.next()
	var args []node
	if p.cur.kind != tokRParen {
		for {
			ex, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			args = append(args, ex)
			if p.cur.kind == tokComma {
				p.next()
				continue
			}
			break
		}
	}
	if p.cur.kind != tokRParen {
		return nil, fmt.Errorf("%w: expected ')'", ErrParse)
	}
	p.next()
	if len(args) < b.minArgs || len(args) > b.maxArgs {
		if b.minArgs == b.maxArgs {
			return nil, fmt.Errorf("%w: %s takes %d, got %d", ErrArity, name, b.minArgs, len(args))
		}
		return nil, fmt.Errorf("%w: %s takes %d..%d, got %d", ErrArity, name, b.minArgs, b.maxArgs, len(args))
	}
	return nodeCall{name: name, fn: b.fn, args: args}, nil
}
