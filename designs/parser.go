package designs

import (
	"fmt"
	"io"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

var (
	cfgLexer = lexer.MustStateful(lexer.Rules{
		"Root": {
			{Name: "Comment", Pattern: `#[^\n]*`},
			{Name: "SampleStart", Pattern: `sample[ \t]*\r?\n`, Action: lexer.Push("Sample")},
			{Name: "Keyword", Pattern: `(?:BOX|END|shapes|padding)\b`},
			{Name: "String", Pattern: `"(?:\\.|[^"\\])*"`},
			{Name: "Number", Pattern: `\d+`},
			{Name: "Ident", Pattern: `[A-Za-z_][A-Za-z0-9_.-]*`},
			{Name: "Punct", Pattern: `[(),{}]`},
			{Name: "Newline", Pattern: `\r?\n`},
			{Name: "Whitespace", Pattern: `[ \t]+`},
			{Name: "Symbol", Pattern: `[^\s"(),{}#A-Za-z0-9_]+`},
		},
		"Sample": {
			{Name: "SampleEnd", Pattern: `[ \t]*ends[ \t]*(?:\r?\n|$)`, Action: lexer.Pop()},
			{Name: "SampleLine", Pattern: `[^\n]*\n`},
		},
	})

	cfgParser = participle.MustBuild[configFile](
		participle.Lexer(cfgLexer),
		participle.Elide("Comment", "Whitespace"),
	)
)

// configFile is the root of a boxes-config file.
type configFile struct {
	Items []*topItem `parser:"( Newline | @@ )*"`
}

type topItem struct {
	Box   *boxDecl `parser:"  @@"`
	Entry *entry   `parser:"| @@"`
}

type boxDecl struct {
	Pos   lexer.Position `parser:"" json:"-"`
	Names []string   `parser:"'BOX' @Ident ( ',' @Ident )*"`
	Items []*boxItem `parser:"( Newline | @@ )*"`
	End   string     `parser:"'END' @Ident"`
}

type boxItem struct {
	Sample  *sampleBlock  `parser:"  @@"`
	Shapes  *shapesBlock  `parser:"| @@"`
	Padding *paddingBlock `parser:"| @@"`
	Entry   *entry        `parser:"| @@"`
}

type sampleBlock struct {
	Lines []rawLine `parser:"SampleStart @SampleLine* SampleEnd"`
}

type shapesBlock struct {
	Shapes []*shapeDecl `parser:"'shapes' Newline* '{' ( Newline | @@ )* '}'"`
}

type shapeDecl struct {
	Name  string      `parser:"@Ident Newline*"`
	Lines []cfgString `parser:"'(' Newline* @String Newline* ( ',' Newline* @String Newline* )* ')'"`
}

type paddingBlock struct {
	Entries []*padEntry `parser:"'padding' Newline* '{' ( Newline | @@ )* '}'"`
}

type padEntry struct {
	Area  string `parser:"@Ident"`
	Value int    `parser:"@Number"`
}

// entry is any other keyword line (author, tags, elastic, replace, ...).
// Its arguments are kept but not interpreted.
type entry struct {
	Key  string   `parser:"@Ident"`
	Args []string `parser:"( @String | @Number | @Ident | @Symbol | @'(' | @')' | @',' )*"`
}

// rawLine is one sample line without its line terminator.
type rawLine string

// Capture implements participle.Capture.
func (l *rawLine) Capture(values []string) error {
	*l = rawLine(strings.TrimRight(strings.Join(values, ""), "\r\n"))
	return nil
}

// cfgString is a quoted boxes-config string. A backslash makes the next
// character literal.
type cfgString string

// Capture implements participle.Capture.
func (s *cfgString) Capture(values []string) error {
	if len(values) == 0 {
		return fmt.Errorf("string capture requires value")
	}
	raw := values[0]
	if len(raw) < 2 || raw[0] != '"' || raw[len(raw)-1] != '"' {
		return fmt.Errorf("malformed string %s", raw)
	}
	raw = raw[1 : len(raw)-1]
	var b strings.Builder
	escaped := false
	for _, r := range raw {
		if r == '\\' && !escaped {
			escaped = true
			continue
		}
		escaped = false
		b.WriteRune(r)
	}
	*s = cfgString(b.String())
	return nil
}

func parse(name string, r io.Reader) (*configFile, error) {
	return cfgParser.Parse(name, r)
}
