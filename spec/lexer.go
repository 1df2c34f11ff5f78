package spec

import (
	"fmt"
	"io"
	"strings"
	"sync"

	mlcompiler "github.com/nihei9/maleeni/compiler"
	mldriver "github.com/nihei9/maleeni/driver"
	mlspec "github.com/nihei9/maleeni/spec"
	verr "github.com/nihei9/earlook/error"
)

type tokenKind string

const (
	tokenKindDirective = tokenKind("directive")
	tokenKindSymbols   = tokenKind("symbols")
	tokenKindColon     = tokenKind(":")
	tokenKindOr        = tokenKind("|")
	tokenKindSemicolon = tokenKind(";")
	tokenKindNewline   = tokenKind("newline")
	tokenKindEOF       = tokenKind("eof")
	tokenKindInvalid   = tokenKind("invalid")
)

type Position struct {
	Row int
	Col int
}

func newPosition(row, col int) Position {
	return Position{
		Row: row,
		Col: col,
	}
}

type token struct {
	kind tokenKind
	text string
	pos  Position
}

func newSymbolToken(kind tokenKind, pos Position) *token {
	return &token{
		kind: kind,
		pos:  pos,
	}
}

func newDirectiveToken(name string, pos Position) *token {
	return &token{
		kind: tokenKindDirective,
		text: name,
		pos:  pos,
	}
}

func newSymbolsToken(text string, pos Position) *token {
	return &token{
		kind: tokenKindSymbols,
		text: text,
		pos:  pos,
	}
}

func newEOFToken() *token {
	return &token{
		kind: tokenKindEOF,
	}
}

func newInvalidToken(text string, pos Position) *token {
	return &token{
		kind: tokenKindInvalid,
		text: text,
		pos:  pos,
	}
}

// lexSpec describes the tokens of a grammar definition:
//
//	# A comment runs to the end of a line.
//	%start E
//	E : T | E+T ;
//	Q : 'a|b' | ;
//
// Every code point of a symbol run is one symbol. A quoted run may contain delimiters; two single quotes stand for
// one single quote.
var lexSpec = &mlspec.LexSpec{
	Name: "earlook",
	Entries: []*mlspec.LexEntry{
		{
			Kind:    "white_space",
			Pattern: `[\u{0009}\u{0020}]+`,
		},
		{
			Kind:    "newline",
			Pattern: `\u{000A}|\u{000D}\u{000A}|\u{000D}`,
		},
		{
			Kind:    "line_comment",
			Pattern: `#[^\u{000A}\u{000D}]*`,
		},
		{
			Kind:    "directive",
			Pattern: `%[A-Za-z_][0-9A-Za-z_]*`,
		},
		{
			Kind:    "colon",
			Pattern: `:`,
		},
		{
			Kind:    "or",
			Pattern: `\|`,
		},
		{
			Kind:    "semicolon",
			Pattern: `;`,
		},
		{
			Kind:    "quoted_symbols",
			Pattern: `'([^'\u{000A}\u{000D}]|'')*'`,
		},
		{
			Kind:    "symbols",
			Pattern: `[^\u{0009}\u{000A}\u{000D}\u{0020}:|;'%#]+`,
		},
	},
}

var (
	compiledLexSpec    *mlspec.CompiledLexSpec
	compiledLexSpecErr error
	compileLexSpecOnce sync.Once
)

func compileLexSpec() (*mlspec.CompiledLexSpec, error) {
	compileLexSpecOnce.Do(func() {
		clspec, err, cErrs := mlcompiler.Compile(lexSpec, mlcompiler.CompressionLevel(mlcompiler.CompressionLevelMax))
		if err != nil {
			if len(cErrs) > 0 {
				var b strings.Builder
				writeCompileError(&b, cErrs[0])
				for _, cerr := range cErrs[1:] {
					fmt.Fprintf(&b, "\n")
					writeCompileError(&b, cerr)
				}
				compiledLexSpecErr = fmt.Errorf("cannot compile the lexical specification: %v", b.String())
				return
			}
			compiledLexSpecErr = err
			return
		}
		compiledLexSpec = clspec
	})
	return compiledLexSpec, compiledLexSpecErr
}

func writeCompileError(w io.Writer, cErr *mlcompiler.CompileError) {
	if cErr.Fragment {
		fmt.Fprintf(w, "fragment ")
	}
	fmt.Fprintf(w, "%v: %v", cErr.Kind, cErr.Cause)
	if cErr.Detail != "" {
		fmt.Fprintf(w, ": %v", cErr.Detail)
	}
}

type lexer struct {
	s   *mlspec.CompiledLexSpec
	d   *mldriver.Lexer
	buf *token
}

func newLexer(src io.Reader) (*lexer, error) {
	s, err := compileLexSpec()
	if err != nil {
		return nil, err
	}
	d, err := mldriver.NewLexer(mldriver.NewLexSpec(s), src)
	if err != nil {
		return nil, err
	}
	return &lexer{
		s: s,
		d: d,
	}, nil
}

// next returns the next token. Consecutive newlines are folded into one newline token.
func (l *lexer) next() (*token, error) {
	if l.buf != nil {
		tok := l.buf
		l.buf = nil
		return tok, nil
	}

	var newline *token
	for {
		tok, err := l.lexAndSkipWSs()
		if err != nil {
			return nil, err
		}
		if tok.kind == tokenKindNewline {
			newline = tok
			continue
		}

		if newline != nil {
			l.buf = tok
			return newline, nil
		}
		return tok, nil
	}
}

func (l *lexer) lexAndSkipWSs() (*token, error) {
	var tok *mldriver.Token
	var kind string
	for {
		var err error
		tok, err = l.d.Next()
		if err != nil {
			return nil, err
		}
		if tok.Invalid {
			return newInvalidToken(string(tok.Lexeme), newPosition(tok.Row+1, tok.Col+1)), nil
		}
		if tok.EOF {
			return newEOFToken(), nil
		}
		kind = l.s.KindNames[tok.KindID].String()
		switch kind {
		case "white_space":
			continue
		case "line_comment":
			continue
		}

		break
	}

	pos := newPosition(tok.Row+1, tok.Col+1)
	text := string(tok.Lexeme)
	switch kind {
	case "newline":
		return newSymbolToken(tokenKindNewline, pos), nil
	case "directive":
		// Remove '%' character.
		return newDirectiveToken(text[1:], pos), nil
	case "colon":
		return newSymbolToken(tokenKindColon, pos), nil
	case "or":
		return newSymbolToken(tokenKindOr, pos), nil
	case "semicolon":
		return newSymbolToken(tokenKindSemicolon, pos), nil
	case "quoted_symbols":
		// Remove the enclosing quotes and fold the doubled quotes.
		syms := strings.ReplaceAll(text[1:len(text)-1], `''`, `'`)
		if syms == "" {
			return nil, &verr.SpecError{
				Cause: synErrEmptyQuote,
				Row:   pos.Row,
				Col:   pos.Col,
			}
		}
		return newSymbolsToken(syms, pos), nil
	case "symbols":
		return newSymbolsToken(text, pos), nil
	default:
		return newInvalidToken(text, pos), nil
	}
}
