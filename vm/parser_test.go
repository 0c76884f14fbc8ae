package vm

import (
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"strings"
	"testing"
)

func TestParser_Push(t *testing.T) {
	lines := []string{
		"push argument 1",
		"push local 2",
		"push static 1",
		"push constant 32767",
		"push this 1",
		"push that 0",
		"push pointer 1",
		"push temp 7",
		"PUSH LOCAL 3",
	}
	parser := NewParser()
	for _, l := range lines {
		command, err := parser.ParseLine([]byte(l))
		assert.Nil(t, err, l)
		require.NotNil(t, command, l)
		assert.Equal(t, PushCommandTP, command.Type)
	}
}

func TestParser_Pop(t *testing.T) {
	lines := []string{
		"pop argument 1",
		"pop local 2",
		"pop static 1",
		"pop this 1",
		"pop that 0",
		"pop pointer 1",
		"pop temp 0",
	}
	parser := NewParser()
	for _, l := range lines {
		command, err := parser.ParseLine([]byte(l))
		assert.Nil(t, err, l)
		require.NotNil(t, command, l)
		assert.Equal(t, PopCommandTP, command.Type)
		assert.Equal(t, l, command.String())
	}
}

func TestParser_Arithmetic_Commands(t *testing.T) {
	lines := []string{"add", "sub", "neg", "eq", "gt", "lt", "and", "or", "not"}
	parser := NewParser()
	for _, l := range lines {
		command, err := parser.ParseLine([]byte(l))
		assert.Nil(t, err)
		require.NotNil(t, command)
		assert.Equal(t, ArithmeticCommandTP, command.Type)
		assert.True(t, command.Op.Valid())
		assert.Equal(t, l, command.String())
	}
}

func TestParser_FunctionCallReturn(t *testing.T) {
	testData := []struct {
		line   string
		expect Command
	}{
		{line: "function Main.main 10", expect: Command{Type: FunctionCommandTP, Name: "Main.main", Count: 10}},
		{line: "call Math.multiply 2", expect: Command{Type: CallCommandTP, Name: "Math.multiply", Count: 2}},
		{line: "return", expect: Command{Type: ReturnCommandTP}},
	}
	parser := NewParser()
	for _, data := range testData {
		command, err := parser.ParseLine([]byte(data.line))
		assert.Nil(t, err)
		require.NotNil(t, command)
		assert.Equal(t, data.expect, *command)
	}
}

func TestParser_Label_IfGoto_Goto(t *testing.T) {
	testData := []struct {
		line   string
		expect Command
	}{
		{line: "label WHILE_EXP_0", expect: Command{Type: LabelCommandTP, Name: "WHILE_EXP_0"}},
		{line: "if-goto IF_ELSE_1", expect: Command{Type: IfGotoCommandTP, Name: "IF_ELSE_1"}},
		{line: "goto IF_END_1 // trailing comment", expect: Command{Type: GotoCommandTP, Name: "IF_END_1"}},
	}
	parser := NewParser()
	for _, data := range testData {
		command, err := parser.ParseLine([]byte(data.line))
		assert.Nil(t, err)
		require.NotNil(t, command)
		assert.Equal(t, data.expect, *command)
	}
}

func TestParser_SkipBlankAndComment(t *testing.T) {
	parser := NewParser()
	for _, l := range []string{"", "   ", "// only a comment", "\t//x"} {
		command, err := parser.ParseLine([]byte(l))
		assert.Nil(t, err)
		assert.Nil(t, command)
	}
}

func TestParser_Errors(t *testing.T) {
	lines := []string{
		"push",
		"push heap 1",
		"push local",
		"push local -1",
		"push local x",
		"pop constant 0",
		"add 1",
		"label 1abc",
		"goto",
		"function Main.main",
		"call Main.main two",
		"return 0",
		"jump somewhere",
	}
	parser := NewParser()
	for _, l := range lines {
		command, err := parser.ParseLine([]byte(l))
		assert.NotNil(t, err, l)
		assert.Nil(t, command, l)
	}
}

func TestParse_Reader(t *testing.T) {
	text := "function Main.main 0\npush constant 1\npush constant 2\nadd\n\ncall Output.printInt 1\npop temp 0\npush constant 0\nreturn"
	commands, err := Parse(strings.NewReader(text))
	assert.Nil(t, err)
	assert.Len(t, commands, 8)
	assert.Equal(t, Command{Type: ReturnCommandTP}, commands[7])
	assert.Equal(t, strings.ReplaceAll(text, "\n\n", "\n")+"\n", Lines(commands))
}

func TestParse_ReportsLine(t *testing.T) {
	_, err := Parse(strings.NewReader("push constant 1\npop constant 1\n"))
	require.NotNil(t, err)
	assert.Contains(t, err.Error(), "line 2")
}
