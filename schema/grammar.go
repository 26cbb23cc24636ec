package schema

import (
	"errors"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

/*
Participle grammar for schema files:

	file       := (import | definition)*
	import     := "import" string_literal
	definition := opcode? "readonly"? (enum_def|struct_def|message_def|union_def)
	opcode     := "[" "opcode" "(" (number|string_literal) ")" "]"
	enum_def   := "enum" ident "{" (deprecated? ident "=" number ";")* "}"
	struct_def := "struct" ident "{" (type ident ";")* "}"
	message_def:= "message" ident "{" (deprecated? number "->" type ident ";")* "}"
	union_def  := "union" ident "{" (number "->" definition)* "}"
	type       := ("map" "[" type "," type "]" | "array" "[" type "]" | ident) ("[" "]")*
	deprecated := "[" "deprecated" ("(" string_literal ")")? "]"

Numbers are captured as identifier tokens and interpreted in transform.go,
along with primitive names. The AST does not leave the schema package.
*/

////////////////////////////////////////////////////////////////////////////////

// nolint:gochecknoglobals
var fileParser = participle.MustBuild[astFile](
	participle.Lexer(lexerDefinition{}),
	participle.UseLookahead(1000),
)

type astFile struct {
	Entries []*astEntry `parser:"@@*"`
}

type astEntry struct {
	Pos        lexer.Position
	Import     *string        `parser:"  'import' @String"`
	Definition *astDefinition `parser:"| @@"`
}

type astDefinition struct {
	Pos      lexer.Position
	Opcode   *astOpcode  `parser:"@@?"`
	Readonly bool        `parser:"@'readonly'?"`
	Enum     *astEnum    `parser:"( @@"`
	Struct   *astStruct  `parser:"| @@"`
	Message  *astMessage `parser:"| @@"`
	Union    *astUnion   `parser:"| @@ )"`
}

type astOpcode struct {
	Pos     lexer.Position
	Number  *string `parser:"'[' 'opcode' '(' ( @Ident"`
	Literal *string `parser:"| @String ) ')' ']'"`
}

type astDeprecated struct {
	Keyword string  `parser:"'[' @'deprecated'"`
	Reason  *string `parser:"( '(' @String ')' )? ']'"`
}

type astEnum struct {
	Name   string          `parser:"'enum' @Ident '{'"`
	Values []*astEnumValue `parser:"@@* '}'"`
}

type astEnumValue struct {
	Pos        lexer.Position
	Deprecated *astDeprecated `parser:"@@?"`
	Name       string         `parser:"@Ident '='"`
	Value      string         `parser:"@Ident ';'"`
}

type astStruct struct {
	Name   string            `parser:"'struct' @Ident '{'"`
	Fields []*astStructField `parser:"@@* '}'"`
}

type astStructField struct {
	Pos  lexer.Position
	Type *astType `parser:"@@"`
	Name string   `parser:"@Ident ';'"`
}

type astMessage struct {
	Name   string             `parser:"'message' @Ident '{'"`
	Fields []*astMessageField `parser:"@@* '}'"`
}

type astMessageField struct {
	Pos        lexer.Position
	Deprecated *astDeprecated `parser:"@@?"`
	Index      string         `parser:"@Ident '-' '>'"`
	Type       *astType       `parser:"@@"`
	Name       string         `parser:"@Ident ';'"`
}

type astUnion struct {
	Name     string        `parser:"'union' @Ident '{'"`
	Variants []*astVariant `parser:"@@* '}'"`
}

type astVariant struct {
	Pos        lexer.Position
	Index      string         `parser:"@Ident '-' '>'"`
	Definition *astDefinition `parser:"@@"`
}

type astType struct {
	Pos   lexer.Position
	Map   *astMapType `parser:"(   @@"`
	Array *astType    `parser:"  | 'array' '[' @@ ']'"`
	Name  string      `parser:"  | @Ident )"`
	Dims  []string    `parser:"( @'[' ']' )*"`
}

type astMapType struct {
	Key   *astType `parser:"'map' '[' @@ ','"`
	Value *astType `parser:"@@ ']'"`
}

// parseAST parses one schema file into its AST.
func parseAST(filename string, src []byte) (*astFile, error) {
	ast, err := fileParser.ParseBytes(filename, src)
	if err != nil {
		return nil, syntaxError(filename, err)
	}
	return ast, nil
}

func syntaxError(filename string, err error) error {
	var serr *Error
	if errors.As(err, &serr) {
		return serr
	}
	var perr participle.Error
	if errors.As(err, &perr) {
		return &Error{Pos: toPosition(perr.Position()), Err: ErrSyntax, Detail: perr.Message()}
	}
	return &Error{Pos: Position{File: filename}, Err: ErrSyntax, Detail: err.Error()}
}
