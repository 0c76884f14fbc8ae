package internal

import (
	"bytes"
	"github.com/stretchr/testify/assert"
	"testing"
)

func TestDumpTokens(t *testing.T) {
	var out bytes.Buffer
	err := DumpTokens([]byte(`if (x < 0) { let s = "a&b"; } // done`), &out)
	assert.Nil(t, err)
	expected := `<tokens>
 <keyword> if </keyword>
 <symbol> ( </symbol>
 <identifier> x </identifier>
 <symbol> &lt; </symbol>
 <integerConstant> 0 </integerConstant>
 <symbol> ) </symbol>
 <symbol> { </symbol>
 <keyword> let </keyword>
 <identifier> s </identifier>
 <symbol> = </symbol>
 <stringConstant> a&amp;b </stringConstant>
 <symbol> ; </symbol>
 <symbol> } </symbol>
</tokens>
`
	assert.Equal(t, expected, out.String())
}

func TestDumpTokens_Empty(t *testing.T) {
	var out bytes.Buffer
	assert.Nil(t, DumpTokens([]byte("/* nothing */"), &out))
	assert.Equal(t, "<tokens></tokens>\n", out.String())
}

func TestDumpTokens_Error(t *testing.T) {
	var out bytes.Buffer
	err := DumpTokens([]byte("let\n\"open"), &out)
	compileErr, ok := err.(*CompileError)
	if assert.True(t, ok) {
		assert.Equal(t, 2, compileErr.Line)
		assert.Equal(t, "line 2: LexError: unterminated string", compileErr.Error())
	}
	assert.Empty(t, out.String())
}
