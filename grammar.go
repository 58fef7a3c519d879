package quaver

import (
	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
	"github.com/pkg/errors"
)

// The grammar, in participle terms:
//
//	patch = [ sep ] [ line { sep [ line ] } ] .
//	line  = [ ident ":" ] elem { ">>" elem } .
//	elem  = "&" ident | ident "(" [ arg { "," arg } ] ")" { "&" ident } .
//	arg   = atom { atom } .
//
// Lines are separated by newlines or ';'; blank lines and comments between
// them collapse into one separator. An atom is a (possibly typed) number, an
// identifier, a \symbol or a note step such as _60.

// PatchTree is the parse tree of one compilation unit.
type PatchTree struct {
	Lines []*LineTree `parser:"Newline? ( @@ ( Newline @@? )* )?"`
}

// LineTree is one line of patch text.
type LineTree struct {
	Pos   lexer.Position
	Ref   string      `parser:"( @Ident ':' )?"`
	Chain []*ElemTree `parser:"@@ ( '>>' @@ )*"`
}

// ElemTree is either a unit constructor call or a reference to a named node
// that the chain continues into.
type ElemTree struct {
	Pos  lexer.Position
	Ref  string    `parser:"  '&' @Ident"`
	Call *CallTree `parser:"| @@"`
}

// CallTree is a unit constructor with its arguments and any &name
// modulation sources.
type CallTree struct {
	Pos  lexer.Position
	Name string     `parser:"@Ident '('"`
	Args []*ArgTree `parser:"( @@ ( ',' @@ )* )? ')'"`
	Mods []string   `parser:"( '&' @Ident )*"`
}

// ArgTree is one argument; most arguments have a single atom, note
// sequences have several.
type ArgTree struct {
	Pos   lexer.Position
	Atoms []string `parser:"@( Step | Number | Ident | Symbol )+"`
}

var patchLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Newline", Pattern: `([ \t\r]*(//[^\n]*)?[\n;])+`},
	{Name: "Comment", Pattern: `//[^\n]*`},
	{Name: "Whitespace", Pattern: `[ \t\r]+`},
	{Name: "Step", Pattern: `[0-9]*_[0-9_]*`},
	{Name: "Number", Pattern: `[-+]?(\d*\.)?\d+([eE][-+]?\d+)?(/(\d*\.)?\d+)?(khz|hz|ms|s|db)?`},
	{Name: "Symbol", Pattern: `\\[A-Za-z0-9_.]+`},
	{Name: "Ident", Pattern: `~?[A-Za-z][A-Za-z0-9_]*|~`},
	{Name: "Punct", Pattern: `>>|[():,&]`},
})

var patchParser = participle.MustBuild[PatchTree](
	participle.Lexer(patchLexer),
	participle.Elide("Whitespace", "Comment"),
	participle.UseLookahead(2),
)

// ErrParse is the cause of every syntax error.
var ErrParse = errors.New("parse error")

// Parse recognises patch text.
func Parse(code string) (*PatchTree, error) {
	tree, err := patchParser.ParseString("", code)
	if err != nil {
		return nil, errors.Wrap(ErrParse, err.Error())
	}
	return tree, nil
}
