// Copyright 2014 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Reading of content-stream tokens and operations from a decoded payload.

package pdftree

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// An Operation is one content-stream operation: an operator keyword and
// the operands that preceded it, in source order.
type Operation struct {
	Operator string
	Operands []Value
}

// String formats the operation in source syntax, operator first:
// "Tf(/F1 12)".
func (op Operation) String() string {
	if len(op.Operands) == 0 {
		return op.Operator
	}
	var sb strings.Builder
	sb.WriteString(op.Operator)
	sb.WriteString("(")
	for i, arg := range op.Operands {
		if i > 0 {
			sb.WriteString(" ")
		}
		sb.WriteString(arg.String())
	}
	sb.WriteString(")")
	return sb.String()
}

// Operations reads a decoded content stream and returns its operations in
// order. Content streams use the same token syntax as the rest of a PDF
// file but have no indirect objects: every operand is direct, and a bare
// keyword ends one operation.
//
// Operations read up to the first syntax error are returned along with
// the error, so a truncated stream still yields its usable prefix.
func Operations(r io.Reader) (ops []Operation, err error) {
	b := newBuffer(r)
	defer func() {
		if e := recover(); e != nil {
			err = fmt.Errorf("malformed content stream: %v", e)
		}
	}()

	var stack []Value
	for {
		tok := b.readToken()
		if tok == io.EOF {
			break
		}
		if kw, ok := tok.(keyword); ok {
			switch kw {
			case "<<":
				stack = append(stack, Value{b.readDict()})
				continue
			case "[":
				stack = append(stack, Value{b.readArray()})
				continue
			case "null":
				stack = append(stack, Value{})
				continue
			case "]", ">>", "{", "}":
				b.errorf("unexpected %q outside container", kw)
			case "ID":
				// Inline image data runs uninterpreted until EI.
				b.skipInlineImage()
				ops = append(ops, Operation{Operator: "ID", Operands: stack})
				stack = nil
				continue
			}
			ops = append(ops, Operation{Operator: string(kw), Operands: stack})
			stack = nil
			continue
		}
		stack = append(stack, tokenValue(tok))
	}
	if len(stack) > 0 {
		return ops, fmt.Errorf("malformed content stream: %d trailing operands without an operator", len(stack))
	}
	return ops, nil
}

// A token is a content-stream token, one of the following Go types:
//
//	bool, a boolean
//	int64, an integer
//	float64, a real
//	literal, a literal string
//	hexLiteral, a hexadecimal string
//	Name, a name without the leading slash
//	keyword, an operator or structural keyword
type token any

// A keyword is a bare keyword token. Delimiters used in higher-level
// syntax, such as "<<", ">>", "[", "]", "{", "}", are also treated as
// keywords.
type keyword string

type (
	literal    string
	hexLiteral string
)

func tokenValue(tok token) Value {
	switch t := tok.(type) {
	case bool:
		return Value{t}
	case int64:
		return Value{t}
	case float64:
		return Value{t}
	case literal:
		return Value{String{Raw: string(t)}}
	case hexLiteral:
		return Value{String{Raw: string(t), Hex: true}}
	case Name:
		return Value{t}
	}
	return Value{}
}

// A buffer holds buffered input bytes from the content stream.
type buffer struct {
	r      io.Reader // source of data
	buf    []byte    // buffered data
	pos    int       // read index in buf
	offset int64     // offset at end of buf; aka offset of next read
	tmp    []byte    // scratch space for accumulating token
	unread []token   // queue of read but then unread tokens
	eof    bool
}

func newBuffer(r io.Reader) *buffer {
	return &buffer{
		r:   r,
		buf: make([]byte, 0, 4096),
	}
}

func (b *buffer) readByte() byte {
	if b.pos >= len(b.buf) {
		b.reload()
		if b.pos >= len(b.buf) {
			return '\n'
		}
	}
	c := b.buf[b.pos]
	b.pos++
	return c
}

func (b *buffer) errorf(format string, args ...any) {
	panic(fmt.Errorf(format, args...))
}

func (b *buffer) reload() bool {
	n := cap(b.buf) - int(b.offset%int64(cap(b.buf)))
	n, err := b.r.Read(b.buf[:n])
	if n == 0 && err != nil {
		b.buf = b.buf[:0]
		b.pos = 0
		if err == io.EOF {
			b.eof = true
			return false
		}
		b.errorf("reading at offset %d: %v", b.offset, err)
		return false
	}
	b.offset += int64(n)
	b.buf = b.buf[:n]
	b.pos = 0
	return true
}

func (b *buffer) unreadByte() {
	if b.pos > 0 {
		b.pos--
	}
}

func (b *buffer) unreadToken(t token) {
	b.unread = append(b.unread, t)
}

func (b *buffer) readToken() token {
	if n := len(b.unread); n > 0 {
		t := b.unread[n-1]
		b.unread = b.unread[:n-1]
		return t
	}

	// Find first non-space, non-comment byte.
	c := b.readByte()
	for {
		if isSpace(c) {
			if b.eof {
				return io.EOF
			}
			c = b.readByte()
		} else if c == '%' {
			for c != '\r' && c != '\n' {
				c = b.readByte()
			}
		} else {
			break
		}
	}

	switch c {
	case '<':
		if b.readByte() == '<' {
			return keyword("<<")
		}
		b.unreadByte()
		return b.readHexString()

	case '(':
		return b.readLiteralString()

	case '[', ']', '{', '}':
		return keyword(string(c))

	case '/':
		return b.readName()

	case '>':
		if b.readByte() == '>' {
			return keyword(">>")
		}
		b.unreadByte()
		fallthrough

	default:
		if isDelim(c) {
			b.errorf("unexpected delimiter %#q", rune(c))
			return nil
		}
		b.unreadByte()
		return b.readKeyword()
	}
}

func (b *buffer) readHexString() token {
	tmp := b.tmp[:0]
	for {
	Loop:
		c := b.readByte()
		if c == '>' {
			break
		}
		if isSpace(c) {
			goto Loop
		}
	Loop2:
		c2 := b.readByte()
		if isSpace(c2) {
			goto Loop2
		}
		x := unhex(c)<<4 | unhex(c2)
		if x < 0 {
			b.errorf("malformed hex string %c %c", c, c2)
			break
		}
		tmp = append(tmp, byte(x))
	}
	b.tmp = tmp
	return hexLiteral(tmp)
}

func unhex(b byte) int {
	switch {
	case '0' <= b && b <= '9':
		return int(b) - '0'
	case 'a' <= b && b <= 'f':
		return int(b) - 'a' + 10
	case 'A' <= b && b <= 'F':
		return int(b) - 'A' + 10
	}
	return -1
}

func (b *buffer) readLiteralString() token {
	tmp := b.tmp[:0]
	depth := 1
Loop:
	for !b.eof {
		c := b.readByte()
		switch c {
		default:
			tmp = append(tmp, c)
		case '(':
			depth++
			tmp = append(tmp, c)
		case ')':
			if depth--; depth == 0 {
				break Loop
			}
			tmp = append(tmp, c)
		case '\\':
			switch c = b.readByte(); c {
			default:
				b.errorf("invalid escape sequence \\%c", c)
				tmp = append(tmp, '\\', c)
			case 'n':
				tmp = append(tmp, '\n')
			case 'r':
				tmp = append(tmp, '\r')
			case 'b':
				tmp = append(tmp, '\b')
			case 't':
				tmp = append(tmp, '\t')
			case 'f':
				tmp = append(tmp, '\f')
			case '(', ')', '\\':
				tmp = append(tmp, c)
			case '\r':
				if b.readByte() != '\n' {
					b.unreadByte()
				}
				fallthrough
			case '\n':
				// no append
			case '0', '1', '2', '3', '4', '5', '6', '7':
				x := int(c - '0')
				for i := 0; i < 2; i++ {
					c = b.readByte()
					if c < '0' || c > '7' {
						b.unreadByte()
						break
					}
					x = x*8 + int(c-'0')
				}
				if x > 255 {
					b.errorf("invalid octal escape \\%03o", x)
				}
				tmp = append(tmp, byte(x))
			}
		}
	}
	b.tmp = tmp
	return literal(tmp)
}

func (b *buffer) readName() token {
	tmp := b.tmp[:0]
	for {
		c := b.readByte()
		if isDelim(c) || isSpace(c) {
			b.unreadByte()
			break
		}
		if c == '#' {
			x := unhex(b.readByte())<<4 | unhex(b.readByte())
			if x < 0 {
				b.errorf("malformed name")
			}
			tmp = append(tmp, byte(x))
			continue
		}
		tmp = append(tmp, c)
	}
	b.tmp = tmp
	return Name(tmp)
}

func (b *buffer) readKeyword() token {
	tmp := b.tmp[:0]
	for {
		c := b.readByte()
		if isDelim(c) || isSpace(c) {
			b.unreadByte()
			break
		}
		tmp = append(tmp, c)
	}
	b.tmp = tmp
	s := string(tmp)
	switch {
	case s == "true":
		return true
	case s == "false":
		return false
	case isInteger(s):
		x, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			b.errorf("invalid integer %s", s)
		}
		return x
	case isReal(s):
		x, err := strconv.ParseFloat(s, 64)
		if err != nil {
			b.errorf("invalid real %s", s)
		}
		return x
	}
	return keyword(s)
}

func isInteger(s string) bool {
	if len(s) > 0 && (s[0] == '+' || s[0] == '-') {
		s = s[1:]
	}
	if len(s) == 0 {
		return false
	}
	for _, c := range s {
		if c < '0' || '9' < c {
			return false
		}
	}
	return true
}

func isReal(s string) bool {
	if len(s) > 0 && (s[0] == '+' || s[0] == '-') {
		s = s[1:]
	}
	if len(s) == 0 {
		return false
	}
	ndot := 0
	for _, c := range s {
		if c == '.' {
			ndot++
			continue
		}
		if c < '0' || '9' < c {
			return false
		}
	}
	return ndot == 1
}

// readObject reads one direct object after its introducing token has
// been pushed back. Indirect references never occur inside content
// streams, so a bare keyword here is an error.
func (b *buffer) readObject() Value {
	tok := b.readToken()
	if kw, ok := tok.(keyword); ok {
		switch kw {
		case "null":
			return Value{}
		case "<<":
			return Value{b.readDict()}
		case "[":
			return Value{b.readArray()}
		}
		b.errorf("unexpected keyword %q parsing object", kw)
		return Value{}
	}
	if tok == io.EOF {
		b.errorf("unexpected EOF parsing object")
	}
	return tokenValue(tok)
}

func (b *buffer) readArray() Array {
	var x Array
	for {
		tok := b.readToken()
		if tok == io.EOF {
			b.errorf("stream ended with open array")
		}
		if tok == nil || tok == keyword("]") {
			break
		}
		b.unreadToken(tok)
		x = append(x, b.readObject())
	}
	return x
}

func (b *buffer) readDict() Dict {
	var x Dict
	for {
		tok := b.readToken()
		if tok == io.EOF {
			b.errorf("stream ended with open dict")
		}
		if tok == nil || tok == keyword(">>") {
			break
		}
		n, ok := tok.(Name)
		if !ok {
			b.errorf("unexpected non-name key %#v parsing dictionary", tok)
			continue
		}
		x = append(x, DictEntry{Key: n, Value: b.readObject()})
	}
	return x
}

// skipInlineImage discards the raw bytes between the ID and EI operators
// of an inline image. The image data is binary and cannot be tokenized;
// the EI keyword after whitespace marks its end.
func (b *buffer) skipInlineImage() {
	c := b.readByte() // single whitespace byte after ID
	for !b.eof {
		if !isSpace(c) {
			c = b.readByte()
			continue
		}
		c = b.readByte()
		if c != 'E' {
			continue
		}
		c = b.readByte()
		if c != 'I' {
			continue
		}
		c = b.readByte()
		if isSpace(c) || b.eof {
			b.unreadByte()
			return
		}
	}
}

func isSpace(b byte) bool {
	switch b {
	case '\x00', '\t', '\n', '\f', '\r', ' ':
		return true
	}
	return false
}

func isDelim(b byte) bool {
	switch b {
	case '<', '>', '(', ')', '[', ']', '{', '}', '/', '%':
		return true
	}
	return false
}
