package internal

import (
	"bytes"
	"fmt"
	"github.com/xiaobogaga/jackc/util"
	"strconv"
)

// A simple Tokenizer for jack.

// Jack language has those elements:
// * KeyWord: class, constructor, function, method, field, static, var, int, char, boolean, void, true,
// 			false, null, this, let, do, if, else, while, return.
// * Symbol: {, }, (, ), [, ], ., ,, ;, +, -, *, /, &, |, <, >, =, ~.
// * Constant: integer (0..65535), string ("xxx", no escapes)
// * Identifier: letters, digits, underscore, not starting with a digit.
// * Comment: /**/, //.

type TokenType int

const (
	ClassTP              TokenType = iota // class
	ConstructorTP                         // constructor
	FunctionTP                            // function
	MethodTP                              // method
	FieldTP                               // field
	StaticTP                              // static
	VarTP                                 // var
	IntTP                                 // int
	CharTP                                // char
	BooleanTP                             // boolean
	VoidTP                                // void
	TrueTP                                // true
	FalseTP                               // false
	NullTP                                // null
	ThisTP                                // this
	LetTP                                 // let
	DoTP                                  // do
	IfTP                                  // if
	ElseTP                                // else
	WhileTP                               // while
	ReturnTP                              // return
	LeftBraceTP                           // {
	RightBraceTP                          // }
	LeftParentThesesTP                    // (
	RightParentThesesTP                   // )
	LeftSquareBracketTP                   // [
	RightSquareBracketTP                  // ]
	DotTP                                 // .
	CommaTP                               // ,
	SemiColonTP                           // ;
	AddTP                                 // +
	MinusTP                               // -
	MultiplyTP                            // *
	DivideTP                              // /
	AndTP                                 // &
	OrTP                                  // |
	LessTP                                // <
	GreaterTP                             // >
	EqualTP                               // =
	BooleanNegativeTP                     // ~
	IntegerTP                             // 1010
	StringTP                              // "xxx"
	IdentifierTP                          // varA
)

// keyWordTokenTPMap is the mapping from identifier to the corresponding TokenTP.
var keyWordTokenTPMap = map[string]TokenType{
	"class":       ClassTP,
	"constructor": ConstructorTP,
	"function":    FunctionTP,
	"method":      MethodTP,
	"field":       FieldTP,
	"static":      StaticTP,
	"var":         VarTP,
	"int":         IntTP,
	"char":        CharTP,
	"boolean":     BooleanTP,
	"void":        VoidTP,
	"true":        TrueTP,
	"false":       FalseTP,
	"null":        NullTP,
	"this":        ThisTP,
	"let":         LetTP,
	"do":          DoTP,
	"if":          IfTP,
	"else":        ElseTP,
	"while":       WhileTP,
	"return":      ReturnTP,
}

// simpleSymbolTokenTPMap is the mapping from symbol character to the corresponding TokenTP.
var simpleSymbolTokenTPMap = map[byte]TokenType{
	'{': LeftBraceTP,
	'}': RightBraceTP,
	'(': LeftParentThesesTP,
	')': RightParentThesesTP,
	'[': LeftSquareBracketTP,
	']': RightSquareBracketTP,
	'.': DotTP,
	',': CommaTP,
	';': SemiColonTP,
	'+': AddTP,
	'-': MinusTP,
	'*': MultiplyTP,
	'/': DivideTP,
	'&': AndTP,
	'|': OrTP,
	'<': LessTP,
	'>': GreaterTP,
	'=': EqualTP,
	'~': BooleanNegativeTP,
}

func (tp TokenType) IsKeyword() bool {
	return tp >= ClassTP && tp <= ReturnTP
}

func (tp TokenType) IsSymbol() bool {
	return tp >= LeftBraceTP && tp <= BooleanNegativeTP
}

// Token is a view into the source buffer: content is src[startPos:endPos]. For string
// constants the quotes are outside of that range.
type Token struct {
	tp       TokenType
	src      []byte
	startPos int
	endPos   int
	value    uint16
}

func (t *Token) Type() TokenType {
	return t.tp
}

// Content returns the raw bytes of the token without copying them.
func (t *Token) Content() []byte {
	return t.src[t.startPos:t.endPos]
}

func (t *Token) Text() string {
	return string(t.Content())
}

// IntValue is only meaningful for IntegerTP tokens.
func (t *Token) IntValue() uint16 {
	return t.value
}

// Is reports whether the token is exactly the keyword or symbol tp.
func (t *Token) Is(tp TokenType) bool {
	return t != nil && t.tp == tp
}

func (t *Token) String() string {
	switch {
	case t.tp.IsKeyword():
		return fmt.Sprintf("Keyword(%s)", t.Content())
	case t.tp.IsSymbol():
		return fmt.Sprintf("Symbol('%s')", t.Content())
	case t.tp == IntegerTP:
		return fmt.Sprintf("IntConstant(%d)", t.value)
	case t.tp == StringTP:
		return fmt.Sprintf("StringConstant(%q)", t.Content())
	}
	return fmt.Sprintf("Ident(%q)", t.Content())
}

// Tokenizer produces tokens lazily from src. Next and Peek run the same scan, Peek
// just does not store the position it ends at.
type Tokenizer struct {
	src        []byte
	currentPos int
}

func NewTokenizer(src []byte) *Tokenizer {
	return &Tokenizer{src: src}
}

// Next consumes and returns the next token. A nil token with a nil error means the
// input is exhausted.
func (tokenizer *Tokenizer) Next() (*Token, error) {
	token, pos, err := tokenizer.scan(tokenizer.currentPos)
	if err != nil {
		return nil, err
	}
	tokenizer.currentPos = pos
	return token, nil
}

// Peek returns what Next would return without advancing.
func (tokenizer *Tokenizer) Peek() (*Token, error) {
	token, _, err := tokenizer.scan(tokenizer.currentPos)
	return token, err
}

// Peek2 returns the token after the next one without advancing.
func (tokenizer *Tokenizer) Peek2() (*Token, error) {
	token, pos, err := tokenizer.scan(tokenizer.currentPos)
	if err != nil || token == nil {
		return nil, err
	}
	token, _, err = tokenizer.scan(pos)
	return token, err
}

// Line returns the 1-based line of the consumed position.
func (tokenizer *Tokenizer) Line() int {
	return tokenizer.LineAt(tokenizer.currentPos)
}

// LineAt counts the newlines before pos.
func (tokenizer *Tokenizer) LineAt(pos int) int {
	if pos > len(tokenizer.src) {
		pos = len(tokenizer.src)
	}
	return bytes.Count(tokenizer.src[:pos], []byte{'\n'}) + 1
}

// Pos returns the byte offset of the consumed position.
func (tokenizer *Tokenizer) Pos() int {
	return tokenizer.currentPos
}

// scan reads one token starting at pos and returns the token and the position right after it.
func (tokenizer *Tokenizer) scan(pos int) (*Token, int, error) {
	pos, err := tokenizer.skipSpaceAndComments(pos)
	if err != nil {
		return nil, pos, err
	}
	if !tokenizer.hasRemainCharacters(pos) {
		return nil, pos, nil
	}
	c := tokenizer.src[pos]
	switch {
	case c == '"':
		return tokenizer.tokenString(pos)
	case util.IsNumber(c):
		return tokenizer.tokenNumber(pos)
	case util.IsSymbol(c):
		return tokenizer.tokenSimpleSymbol(pos)
	default:
		return tokenizer.toKeywordOrIdentifier(pos)
	}
}

func (tokenizer *Tokenizer) hasRemainCharacters(pos int) bool {
	return pos < len(tokenizer.src)
}

// skipSpaceAndComments alternates between skipping whitespace, // comments and /* */ comments
// until pos is at the start of a real token or at the end of input.
func (tokenizer *Tokenizer) skipSpaceAndComments(pos int) (int, error) {
	src := tokenizer.src
	for {
		for pos < len(src) && util.IsSpace(src[pos]) {
			pos++
		}
		if pos+1 >= len(src) || src[pos] != '/' {
			return pos, nil
		}
		switch src[pos+1] {
		case '/':
			pos += 2
			for pos < len(src) && src[pos] != '\n' {
				pos++
			}
		case '*':
			start := pos
			pos += 2
			for {
				if pos+1 >= len(src) {
					return start, tokenizer.makeError(start, "unterminated comment")
				}
				if src[pos] == '*' && src[pos+1] == '/' {
					pos += 2
					break
				}
				pos++
			}
		default:
			return pos, nil
		}
	}
}

func (tokenizer *Tokenizer) tokenString(pos int) (*Token, int, error) {
	// Looking forward to find a closing quote.
	end := pos + 1
	for end < len(tokenizer.src) && tokenizer.src[end] != '"' {
		end++
	}
	if end >= len(tokenizer.src) {
		return nil, pos, tokenizer.makeError(pos, "unterminated string")
	}
	return tokenizer.makeToken(StringTP, pos+1, end), end + 1, nil
}

func (tokenizer *Tokenizer) tokenNumber(pos int) (*Token, int, error) {
	end := pos
	for end < len(tokenizer.src) && util.IsNumber(tokenizer.src[end]) {
		end++
	}
	value, err := strconv.ParseUint(string(tokenizer.src[pos:end]), 10, 16)
	if err != nil {
		return nil, pos, tokenizer.makeError(pos, fmt.Sprintf("integer %s out of range", tokenizer.src[pos:end]))
	}
	token := tokenizer.makeToken(IntegerTP, pos, end)
	token.value = uint16(value)
	return token, end, nil
}

func (tokenizer *Tokenizer) tokenSimpleSymbol(pos int) (*Token, int, error) {
	return tokenizer.makeToken(simpleSymbolTokenTPMap[tokenizer.src[pos]], pos, pos+1), pos + 1, nil
}

func (tokenizer *Tokenizer) toKeywordOrIdentifier(pos int) (*Token, int, error) {
	// Look forward for a maximal run of characters which are neither space nor symbol.
	end := pos
	for end < len(tokenizer.src) && !util.IsSpace(tokenizer.src[end]) && !util.IsSymbol(tokenizer.src[end]) {
		end++
	}
	word := tokenizer.src[pos:end]
	if keyWordTP, isKeyWord := keyWordTokenTPMap[string(word)]; isKeyWord {
		return tokenizer.makeToken(keyWordTP, pos, end), end, nil
	}
	if !util.IsLetterOrUnderscore(word[0]) {
		return nil, pos, tokenizer.makeError(pos, fmt.Sprintf("unexpected character %q", word[0]))
	}
	for i, c := range word {
		if !util.IsLetterOrUnderscoreOrNumber(c) {
			return nil, pos, tokenizer.makeError(pos+i, fmt.Sprintf("unexpected character %q", c))
		}
	}
	return tokenizer.makeToken(IdentifierTP, pos, end), end, nil
}

func (tokenizer *Tokenizer) makeToken(tp TokenType, startPos, endPos int) *Token {
	return &Token{tp: tp, src: tokenizer.src, startPos: startPos, endPos: endPos}
}

func (tokenizer *Tokenizer) makeError(pos int, msg string) error {
	return &LexError{Pos: pos, Msg: msg}
}
