// Package reader implements the recursive-descent s-expression reader
// described by the funlisp grammar: atoms (integers, strings, symbols),
// lists (proper and dotted), and the three quote shorthands.
package reader

import (
	"strconv"
	"strings"

	"github.com/cwbudde/funlisp/internal/lisp"
)

// Reader parses one byte string. It is stateless between calls to Read: all
// position tracking is via the explicit offset parameter and return value,
// matching the "(value, next-offset) pair" contract.
type Reader struct {
	ctx   *lisp.Context
	input string
}

// New returns a reader over input, allocating values through ctx.
func New(ctx *lisp.Context, input string) *Reader {
	return &Reader{ctx: ctx, input: input}
}

func isSpace(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '\r', '\v', '\f':
		return true
	}
	return false
}

func isDelimiter(b byte) bool {
	switch b {
	case '(', ')', '.', '\'', '`', ',', ';', '"':
		return true
	}
	return isSpace(b)
}

// lineAt returns the 1-based line number containing offset, by counting
// newlines in the prefix.
func (r *Reader) lineAt(offset int) int {
	if offset > len(r.input) {
		offset = len(r.input)
	}
	return 1 + strings.Count(r.input[:offset], "\n")
}

func (r *Reader) errAt(offset int, kind lisp.ErrorKind, msg string) error {
	return r.ctx.SetErrorLine(kind, r.lineAt(offset), msg)
}

// skipTrivia advances past whitespace and line comments (`;` to end of
// line), returning the first offset at which meaningful input resumes.
func (r *Reader) skipTrivia(offset int) int {
	for offset < len(r.input) {
		c := r.input[offset]
		switch {
		case isSpace(c):
			offset++
		case c == ';':
			for offset < len(r.input) && r.input[offset] != '\n' {
				offset++
			}
		default:
			return offset
		}
	}
	return offset
}

// Read consumes one complete datum starting at offset and returns it along
// with the offset of the first byte after it.
func (r *Reader) Read(offset int) (lisp.Value, int, error) {
	offset = r.skipTrivia(offset)
	if offset >= len(r.input) {
		return nil, offset, r.errAt(offset, lisp.ErrEndOfInput, "unexpected end of input")
	}

	switch c := r.input[offset]; c {
	case '(':
		return r.readList(offset)
	case ')':
		return nil, offset, r.errAt(offset, lisp.ErrSyntax, "unexpected ')'")
	case '"':
		return r.readString(offset)
	case '\'':
		return r.readQuoted(offset, "quote")
	case '`':
		return r.readQuoted(offset, "quasiquote")
	case ',':
		return r.readQuoted(offset, "unquote")
	default:
		return r.readAtom(offset)
	}
}

func (r *Reader) readQuoted(offset int, wrapper string) (lisp.Value, int, error) {
	inner, next, err := r.Read(offset + 1)
	if err != nil {
		return nil, next, err
	}
	sym := r.ctx.NewSymbol(wrapper)
	body := r.ctx.NewCell(inner, r.ctx.Nil())
	return r.ctx.NewCell(sym, body), next, nil
}

func (r *Reader) readList(offset int) (lisp.Value, int, error) {
	start := offset
	offset = r.skipTrivia(offset + 1) // consume '('
	var items []lisp.Value
	var tail lisp.Value = r.ctx.Nil()

	for {
		if offset >= len(r.input) {
			return nil, offset, r.errAt(start, lisp.ErrEndOfInput, "unterminated list")
		}
		if r.input[offset] == ')' {
			offset++
			break
		}
		if r.input[offset] == '.' && offset+1 < len(r.input) && isDelimiter(r.input[offset+1]) {
			var err error
			tail, offset, err = r.Read(offset + 1)
			if err != nil {
				return nil, offset, err
			}
			offset = r.skipTrivia(offset)
			if offset >= len(r.input) || r.input[offset] != ')' {
				return nil, offset, r.errAt(offset, lisp.ErrSyntax, "malformed dotted list")
			}
			offset++
			break
		}
		item, next, err := r.Read(offset)
		if err != nil {
			return nil, next, err
		}
		items = append(items, item)
		offset = r.skipTrivia(next)
	}

	result := tail
	for i := len(items) - 1; i >= 0; i-- {
		result = r.ctx.NewCell(items[i], result)
	}
	return result, offset, nil
}

func (r *Reader) readString(offset int) (lisp.Value, int, error) {
	start := offset
	offset++ // consume opening quote
	var b strings.Builder
	for {
		if offset >= len(r.input) {
			return nil, offset, r.errAt(start, lisp.ErrEndOfInput, "unterminated string")
		}
		c := r.input[offset]
		if c == '"' {
			offset++
			break
		}
		if c == '\\' {
			offset++
			if offset >= len(r.input) {
				return nil, offset, r.errAt(start, lisp.ErrEndOfInput, "unterminated string escape")
			}
			switch r.input[offset] {
			case 'a':
				b.WriteByte('\a')
			case 'b':
				b.WriteByte('\b')
			case 'f':
				b.WriteByte('\f')
			case 'n':
				b.WriteByte('\n')
			case 't':
				b.WriteByte('\t')
			case 'v':
				b.WriteByte('\v')
			default:
				b.WriteByte(r.input[offset])
			}
			offset++
			continue
		}
		b.WriteByte(c)
		offset++
	}
	return r.ctx.NewString(b.String(), true), offset, nil
}

func (r *Reader) readAtom(offset int) (lisp.Value, int, error) {
	start := offset
	for offset < len(r.input) && !isDelimiter(r.input[offset]) {
		offset++
	}
	text := r.input[start:offset]
	if text == "" {
		return nil, offset, r.errAt(start, lisp.ErrSyntax, "unexpected character '"+string(r.input[start])+"'")
	}
	if looksLikeInteger(text) {
		n, err := strconv.ParseInt(text, 10, 64)
		if err != nil {
			return nil, offset, r.errAt(start, lisp.ErrSyntax, "malformed integer: "+text)
		}
		return r.ctx.NewInteger(n), offset, nil
	}
	return r.ctx.NewSymbol(text), offset, nil
}

// looksLikeInteger reports whether text is an optional sign followed by one
// or more digits; anything else (including a bare sign) is a symbol.
func looksLikeInteger(text string) bool {
	i := 0
	if text[i] == '+' || text[i] == '-' {
		i++
	}
	if i == len(text) {
		return false
	}
	for ; i < len(text); i++ {
		if text[i] < '0' || text[i] > '9' {
			return false
		}
	}
	return true
}

// ReadProgn parses the entire input and wraps the top-level expressions in
// `(progn ...)`, enabling a whole file to be evaluated as a single
// expression.
func (r *Reader) ReadProgn() (lisp.Value, error) {
	var forms []lisp.Value
	offset := 0
	for {
		offset = r.skipTrivia(offset)
		if offset >= len(r.input) {
			break
		}
		v, next, err := r.Read(offset)
		if err != nil {
			return nil, err
		}
		forms = append(forms, v)
		offset = next
	}
	prognSym := r.ctx.NewSymbol("progn")
	return r.ctx.NewCell(prognSym, lisp.SliceToList(r.ctx, forms)), nil
}
