package dsl

import (
	"fmt"
	"io"
	"strconv"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

var (
	dslLexer = lexer.MustSimple([]lexer.SimpleRule{
		{Name: "Whitespace", Pattern: `[ \t\r]+`},
		{Name: "Newline", Pattern: `\n+`},
		{Name: "BlockComment", Pattern: `/\*[^*]*\*+(?:[^/*][^*]*\*+)*/`},
		{Name: "LineComment", Pattern: `//[^\n]*`},
		{Name: "Color", Pattern: `#[0-9A-Fa-f]{6}\b`},
		{Name: "HashComment", Pattern: `#[^\n]*`},
		{Name: "Number", Pattern: `-?(?:\d+\.\d+|\d+)`},
		{Name: "String", Pattern: `"(?:\\.|[^"])*"`},
		{Name: "Ident", Pattern: `[A-Za-z_][A-Za-z0-9_.-]*`},
		{Name: "Symbol", Pattern: `[][,:;]`},
		{Name: "LBrace", Pattern: `{`},
		{Name: "RBrace", Pattern: `}`},
	})

	batchParser = participle.MustBuild[Batch](
		participle.Lexer(dslLexer),
		participle.Elide("Whitespace", "LineComment", "BlockComment", "HashComment"),
	)
)

// Batch 为批量文件的 AST 根节点：共享样式、变量以及待生成的码。
type Batch struct {
	Pos      lexer.Position `parser:"" json:"-"`
	Name     string         `parser:"Newline* 'batch' @Ident"`
	Version  string         `parser:"@(Ident | Number)?"`
	Sections []*Section     `parser:"'{' Newline* ( @@ Newline* )* '}' Newline*"`
}

// Section 为 batch 体内的一条顶层语句。
type Section struct {
	Style *StyleSection `parser:"  @@"`
	Vars  *VarsSection  `parser:"| @@"`
	Code  *CodeSection  `parser:"| @@"`
}

// Kind 返回段落类型名称。
func (s *Section) Kind() string {
	switch {
	case s == nil:
		return "unknown"
	case s.Style != nil:
		return "style"
	case s.Vars != nil:
		return "vars"
	case s.Code != nil:
		return "code"
	default:
		return "unknown"
	}
}

// StyleSection 保存所有码共享的样式赋值。
type StyleSection struct {
	Block *Block `parser:"'style' @@"`
}

// VarsSection 声明可供 ${...} 占位符引用的值。
type VarsSection struct {
	Block *Block `parser:"'vars' @@"`
}

// CodeSection 声明一个码：可选 id、内容以及可选的单码覆盖项。
type CodeSection struct {
	Pos       lexer.Position `parser:"" json:"-"`
	ID        string         `parser:"'code' @Ident?"`
	Content   StringLiteral  `parser:"@String"`
	Overrides *Block         `parser:"@@?"`
}

// Block 为花括号包裹的赋值列表。
type Block struct {
	Entries []*Assignment `parser:"'{' Newline* ( @@ ( ';' | Newline )* )* '}'"`
}

// Assignment 使用冒号语法 (key: value)。
type Assignment struct {
	Pos   lexer.Position `parser:"" json:"-"`
	Key   string         `parser:"@Ident"`
	Value *Value         `parser:"':' Newline* @@"`
}

// Value 表示通用属性值。
type Value struct {
	String *StringLiteral `parser:"  @String"`
	Number *float64       `parser:"| @Number"`
	Color  *string        `parser:"| @Color"`
	Bool   *Boolean       `parser:"| @('true' | 'false')"`
	Ident  *string        `parser:"| @Ident"`
	Array  *ArrayValue    `parser:"| @@"`
	Object *InlineObject  `parser:"| @@"`
}

// ArrayValue 捕获 `[ ... ]` 表达式。
type ArrayValue struct {
	Values []*Value `parser:"'[' Newline* ( @@ ( (',' | ';' | Newline+) Newline* @@ )* )? Newline* ']'"`
}

// InlineObject 捕获 `{ key: value }` 内联对象。
type InlineObject struct {
	Entries []*Assignment `parser:"'{' Newline* ( @@ Newline* ( (';' | ',' | Newline+) Newline* @@ Newline* )* )? Newline* '}'"`
}

// StringLiteral 在捕获时去除 Go 风格字符串的引号。
type StringLiteral string

// Capture 实现 participle.Capture。
func (s *StringLiteral) Capture(values []string) error {
	if len(values) == 0 {
		return fmt.Errorf("字符串字面量缺少值")
	}
	val, err := strconv.Unquote(values[0])
	if err != nil {
		return err
	}
	*s = StringLiteral(val)
	return nil
}

// Boolean 捕获 true/false 关键字。
type Boolean bool

// Capture 实现 participle.Capture。
func (b *Boolean) Capture(values []string) error {
	*b = len(values) > 0 && values[0] == "true"
	return nil
}

// Parse 从 io.Reader 解析 DSL 内容，name 用于错误定位，可为空。
func Parse(name string, r io.Reader) (*Batch, error) {
	return batchParser.Parse(name, r)
}

// ParseString 从字符串解析 DSL 内容。
func ParseString(input string) (*Batch, error) {
	return batchParser.ParseString("", input)
}
