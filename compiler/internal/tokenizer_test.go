package internal

import (
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"strings"
	"testing"
)

func tokenStrings(t *testing.T, src string) []string {
	tokenizer := NewTokenizer([]byte(src))
	var ret []string
	for {
		token, err := tokenizer.Next()
		require.Nil(t, err)
		if token == nil {
			return ret
		}
		ret = append(ret, token.String())
	}
}

func TestTokenizer_Next(t *testing.T) {
	testData := []struct {
		src            string
		expectedTokens []string
	}{
		{src: "", expectedTokens: nil},
		{src: "  \t\r\n\f ", expectedTokens: nil},
		{src: "class Main {", expectedTokens: []string{"Keyword(class)", "Ident(\"Main\")", "Symbol('{')"}},
		{src: "let x[3]=-y;", expectedTokens: []string{
			"Keyword(let)", "Ident(\"x\")", "Symbol('[')", "IntConstant(3)", "Symbol(']')", "Symbol('=')",
			"Symbol('-')", "Ident(\"y\")", "Symbol(';')",
		}},
		{src: `"hello world"`, expectedTokens: []string{"StringConstant(\"hello world\")"}},
		// No escapes, a backslash is just a character.
		{src: `"a\n"`, expectedTokens: []string{"StringConstant(\"a\\\\n\")"}},
		{src: `""`, expectedTokens: []string{"StringConstant(\"\")"}},
		{src: "a/b", expectedTokens: []string{"Ident(\"a\")", "Symbol('/')", "Ident(\"b\")"}},
		{src: "a/**/b", expectedTokens: []string{"Ident(\"a\")", "Ident(\"b\")"}},
		{src: "a // comment\nb", expectedTokens: []string{"Ident(\"a\")", "Ident(\"b\")"}},
		{src: "/** doc */ /* x */ // y\n", expectedTokens: nil},
		{src: "_a1 classy do_", expectedTokens: []string{"Ident(\"_a1\")", "Ident(\"classy\")", "Ident(\"do_\")"}},
		{src: "12abc", expectedTokens: []string{"IntConstant(12)", "Ident(\"abc\")"}},
		{src: "0 007", expectedTokens: []string{"IntConstant(0)", "IntConstant(7)"}},
		{src: "~a&b|c<d>e", expectedTokens: []string{
			"Symbol('~')", "Ident(\"a\")", "Symbol('&')", "Ident(\"b\")", "Symbol('|')", "Ident(\"c\")",
			"Symbol('<')", "Ident(\"d\")", "Symbol('>')", "Ident(\"e\")",
		}},
	}
	for _, data := range testData {
		assert.Equal(t, data.expectedTokens, tokenStrings(t, data.src), data.src)
	}
}

func TestTokenizer_Keywords(t *testing.T) {
	for keyword, tp := range keyWordTokenTPMap {
		tokenizer := NewTokenizer([]byte(keyword))
		token, err := tokenizer.Next()
		assert.Nil(t, err)
		assert.Equal(t, tp, token.Type())
		assert.True(t, token.Type().IsKeyword())
	}
}

func TestTokenizer_PeekAgreesWithNext(t *testing.T) {
	src := `class Main { /* c */ function void main() { // x
		do Output.printString("hi"); let a[1] = 32767; return; } }`
	tokenizer := NewTokenizer([]byte(src))
	for {
		pos := tokenizer.Pos()
		peeked, err := tokenizer.Peek()
		require.Nil(t, err)
		peekedAgain, err := tokenizer.Peek()
		require.Nil(t, err)
		assert.Equal(t, pos, tokenizer.Pos())
		next, err := tokenizer.Next()
		require.Nil(t, err)
		assert.Equal(t, peeked, next)
		assert.Equal(t, peekedAgain, next)
		if next == nil {
			break
		}
		assert.Greater(t, tokenizer.Pos(), pos)
	}
}

func TestTokenizer_Peek2(t *testing.T) {
	tokenizer := NewTokenizer([]byte("a . b"))
	second, err := tokenizer.Peek2()
	assert.Nil(t, err)
	assert.True(t, second.Is(DotTP))
	assert.Equal(t, 0, tokenizer.Pos())
	first, err := tokenizer.Next()
	assert.Nil(t, err)
	assert.Equal(t, "a", first.Text())

	tokenizer = NewTokenizer([]byte("a"))
	second, err = tokenizer.Peek2()
	assert.Nil(t, err)
	assert.Nil(t, second)
	assert.False(t, second.Is(DotTP))
}

func TestTokenizer_TriviaDoesNotChangeTokens(t *testing.T) {
	tokens := []string{"class", "Foo", "{", "method", "int", "f", "(", ")", "{", "return", "1", "+", "\"s t\"", ";", "}", "}"}
	separators := []string{" ", "\n\t", "/* block */", "// line\n", " /** a\n b */\r\n// c\n "}
	expected := tokenStrings(t, strings.Join(tokens, " "))
	for _, separator := range separators {
		assert.Equal(t, expected, tokenStrings(t, strings.Join(tokens, separator)), separator)
	}
}

func TestTokenizer_Errors(t *testing.T) {
	testData := []struct {
		src         string
		expectedPos int
	}{
		{src: `let s = "abc`, expectedPos: 8},
		{src: "a /* never closed", expectedPos: 2},
		{src: "/*/", expectedPos: 0},
		{src: "65536", expectedPos: 0},
		{src: "x 99999999999999999999", expectedPos: 2},
		{src: "a@b", expectedPos: 1},
		{src: "#", expectedPos: 0},
		{src: "a$", expectedPos: 1},
	}
	for _, data := range testData {
		tokenizer := NewTokenizer([]byte(data.src))
		var err error
		for err == nil {
			var token *Token
			token, err = tokenizer.Next()
			if token == nil && err == nil {
				break
			}
		}
		lexErr, ok := err.(*LexError)
		if assert.True(t, ok, data.src) {
			assert.Equal(t, data.expectedPos, lexErr.Pos, data.src)
		}
	}
}

// The lexer accepts the whole unsigned 16-bit range, including values above 32767 which the
// language itself doesn't define.
func TestTokenizer_IntegerRange(t *testing.T) {
	testData := []struct {
		src      string
		expected uint16
	}{
		{src: "0", expected: 0},
		{src: "32767", expected: 32767},
		{src: "32768", expected: 32768},
		{src: "65535", expected: 65535},
	}
	for _, data := range testData {
		token, err := NewTokenizer([]byte(data.src)).Next()
		assert.Nil(t, err)
		assert.Equal(t, IntegerTP, token.Type())
		assert.Equal(t, data.expected, token.IntValue())
	}
}

func TestTokenizer_TokensShareSource(t *testing.T) {
	src := []byte(`x "str"`)
	tokenizer := NewTokenizer(src)
	ident, err := tokenizer.Next()
	assert.Nil(t, err)
	str, err := tokenizer.Next()
	assert.Nil(t, err)
	assert.Same(t, &src[0], &ident.Content()[0])
	assert.Same(t, &src[3], &str.Content()[0])
	assert.Equal(t, "str", str.Text())
}

func TestTokenizer_Line(t *testing.T) {
	tokenizer := NewTokenizer([]byte("a\nb\n\n c"))
	assert.Equal(t, 1, tokenizer.Line())
	expectedLines := []int{1, 2, 4}
	for _, expectedLine := range expectedLines {
		_, err := tokenizer.Next()
		assert.Nil(t, err)
		assert.Equal(t, expectedLine, tokenizer.Line())
	}
	assert.Equal(t, 4, tokenizer.LineAt(100))
}
