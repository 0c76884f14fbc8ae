package vm

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
)

// A reader for vm code. It checks that every line is one of the commands listed in
// command.go and builds the corresponding Command. Keywords are case insensitive,
// names and labels are not.

type keyWordTP int

const (
	pushKeyWordTP keyWordTP = iota
	popKeyWordTP
	arithmeticKeyWordTP
	labelKeyWordTP
	ifGotoKeyWordTP
	gotoKeyWordTP
	functionKeyWordTP
	callKeyWordTP
	returnKeyWordTP
	commentKeyWordTP
)

var keyWordsMap = map[string]keyWordTP{
	"PUSH":     pushKeyWordTP,
	"POP":      popKeyWordTP,
	"ADD":      arithmeticKeyWordTP,
	"SUB":      arithmeticKeyWordTP,
	"NEG":      arithmeticKeyWordTP,
	"EQ":       arithmeticKeyWordTP,
	"GT":       arithmeticKeyWordTP,
	"LT":       arithmeticKeyWordTP,
	"AND":      arithmeticKeyWordTP,
	"OR":       arithmeticKeyWordTP,
	"NOT":      arithmeticKeyWordTP,
	"LABEL":    labelKeyWordTP,
	"IF-GOTO":  ifGotoKeyWordTP,
	"GOTO":     gotoKeyWordTP,
	"FUNCTION": functionKeyWordTP,
	"CALL":     callKeyWordTP,
	"RETURN":   returnKeyWordTP,
}

var labelFormat = regexp.MustCompile("^[a-zA-Z_.:][0-9a-zA-Z_.$:]*$")

type Parser struct {
	lineCounter int
}

func NewParser() *Parser {
	return &Parser{}
}

// Parse reads every line of rd. Blank lines and // comments are skipped.
func (parser *Parser) Parse(rd io.Reader) ([]Command, error) {
	reader := bufio.NewReader(rd)
	var commands []Command
	parser.lineCounter = 0
	for {
		line, err := reader.ReadBytes('\n')
		if err != nil && err != io.EOF {
			return nil, err
		}
		parser.lineCounter++
		command, parseErr := parser.ParseLine(line)
		if parseErr != nil {
			return nil, parseErr
		}
		if command != nil {
			commands = append(commands, *command)
		}
		if err == io.EOF {
			return commands, nil
		}
	}
}

// ParseLine parses a single line. It returns a nil command for blank and comment lines.
func (parser *Parser) ParseLine(line []byte) (*Command, error) {
	token, line := parser.getNextToken(line)
	if len(token) == 0 {
		return nil, nil
	}
	if strings.HasPrefix(token, "//") {
		return nil, nil
	}
	keyWordTP, exist := keyWordsMap[strings.ToUpper(token)]
	if !exist {
		return nil, parser.makeError(token)
	}
	var (
		command *Command
		err     error
	)
	switch keyWordTP {
	case pushKeyWordTP:
		command, line, err = parser.parseMemoryAccess(PushCommandTP, line)
	case popKeyWordTP:
		command, line, err = parser.parseMemoryAccess(PopCommandTP, line)
	case arithmeticKeyWordTP:
		command = &Command{Type: ArithmeticCommandTP, Op: Arithmetic(strings.ToLower(token))}
	case labelKeyWordTP:
		command, line, err = parser.parseFlow(LabelCommandTP, line)
	case ifGotoKeyWordTP:
		command, line, err = parser.parseFlow(IfGotoCommandTP, line)
	case gotoKeyWordTP:
		command, line, err = parser.parseFlow(GotoCommandTP, line)
	case functionKeyWordTP:
		command, line, err = parser.parseFunctionOrCall(FunctionCommandTP, line)
	case callKeyWordTP:
		command, line, err = parser.parseFunctionOrCall(CallCommandTP, line)
	case returnKeyWordTP:
		command = &Command{Type: ReturnCommandTP}
	default:
		err = parser.makeError(token)
	}
	if err != nil {
		return nil, err
	}
	err = parser.parseRemainContent(line)
	if err != nil {
		return nil, err
	}
	return command, nil
}

// getNextToken returns the next whitespace separated word of line and the remaining content.
func (parser *Parser) getNextToken(line []byte) (string, []byte) {
	line = bytes.TrimSpace(line)
	for i := 0; i < len(line); i++ {
		c := line[i]
		if c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f' || c == '\v' {
			return string(line[:i]), line[i:]
		}
	}
	return string(line), nil
}

func (parser *Parser) parseMemoryAccess(tp CommandType, line []byte) (*Command, []byte, error) {
	token, line := parser.getNextToken(line)
	segment := Segment(strings.ToLower(token))
	if !segment.Valid() {
		return nil, nil, parser.makeError(token)
	}
	// Nothing can be stored into the constant segment.
	if tp == PopCommandTP && segment == ConstantSegment {
		return nil, nil, parser.makeError(token)
	}
	index, line, err := parser.getIntegerValue(line)
	if err != nil {
		return nil, nil, err
	}
	return &Command{Type: tp, Segment: segment, Index: index}, line, nil
}

func (parser *Parser) parseFlow(tp CommandType, line []byte) (*Command, []byte, error) {
	line, label, err := parser.parseLabelName(line)
	if err != nil {
		return nil, nil, err
	}
	return &Command{Type: tp, Name: label}, line, nil
}

func (parser *Parser) parseFunctionOrCall(tp CommandType, line []byte) (*Command, []byte, error) {
	line, name, err := parser.parseLabelName(line)
	if err != nil {
		return nil, nil, err
	}
	count, line, err := parser.getIntegerValue(line)
	if err != nil {
		return nil, nil, err
	}
	return &Command{Type: tp, Name: name, Count: count}, line, nil
}

func (parser *Parser) getIntegerValue(line []byte) (int, []byte, error) {
	token, line := parser.getNextToken(line)
	if len(token) == 0 {
		return -1, nil, parser.makeError(token)
	}
	ret, err := strconv.Atoi(token)
	if err != nil || ret < 0 {
		return -1, nil, parser.makeError(token)
	}
	return ret, line, nil
}

func (parser *Parser) parseLabelName(line []byte) ([]byte, string, error) {
	token, line := parser.getNextToken(line)
	if len(token) == 0 {
		return nil, "", parser.makeError(token)
	}
	if !labelFormat.MatchString(token) {
		return nil, "", parser.makeError(token)
	}
	return line, token, nil
}

func (parser *Parser) parseRemainContent(line []byte) (err error) {
	remain := bytes.TrimSpace(line)
	if len(remain) == 0 {
		return nil
	}
	// Ignore comment
	if len(remain) >= 2 && remain[0] == '/' && remain[1] == '/' {
		return nil
	}
	return parser.makeError(string(remain))
}

func (parser *Parser) makeError(near string) error {
	return errors.New(fmt.Sprintf("SyntaxError: syntax error near %q at line %d", near, parser.lineCounter))
}

// Parse is a shortcut for NewParser().Parse(rd).
func Parse(rd io.Reader) ([]Command, error) {
	return NewParser().Parse(rd)
}
