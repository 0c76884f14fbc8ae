package internal

import (
	"fmt"
)

// LexError is raised by the tokenizer. Pos is the byte offset where the bad input starts.
type LexError struct {
	Pos int
	Msg string
}

func (err *LexError) Error() string {
	return "LexError: " + err.Msg
}

// ParseError is raised when the next token doesn't fit the current production.
// A nil Token means the input ended too early.
type ParseError struct {
	Token *Token
}

func (err *ParseError) Error() string {
	if err.Token == nil {
		return "ParseError: unexpected end of input"
	}
	return fmt.Sprintf("ParseError: unexpected token: %s", err.Token)
}

func (err *ParseError) UnexpectedEnd() bool {
	return err.Token == nil
}

type SemanticError struct {
	Msg string
}

func (err *SemanticError) Error() string {
	return "SemanticError: " + err.Msg
}

// CompileError ties an error from one compilation unit to its file and line.
type CompileError struct {
	Filename string
	Line     int
	Err      error
}

func (err *CompileError) Error() string {
	if err.Filename == "" {
		return fmt.Sprintf("line %d: %v", err.Line, err.Err)
	}
	return fmt.Sprintf("%s:%d: %v", err.Filename, err.Line, err.Err)
}

func (err *CompileError) Unwrap() error {
	return err.Err
}
