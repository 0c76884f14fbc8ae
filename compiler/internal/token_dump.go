package internal

import (
	"encoding/xml"
	"fmt"
	"io"
)

type tokensWrapper struct {
	XMLName xml.Name `xml:"tokens"`
	Tokens  []*Token
}

// xmlName is the element name a token gets in the token dump.
func (tp TokenType) xmlName() string {
	switch {
	case tp.IsKeyword():
		return "keyword"
	case tp.IsSymbol():
		return "symbol"
	case tp == IntegerTP:
		return "integerConstant"
	case tp == StringTP:
		return "stringConstant"
	}
	return "identifier"
}

func (t *Token) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	start.Name.Local = t.tp.xmlName()
	return e.EncodeElement(fmt.Sprintf(" %s ", t.Content()), start)
}

// DumpTokens writes every token of src as xml, in the `<tokens>` layout of the jack analyzer.
func DumpTokens(src []byte, out io.Writer) error {
	tokenizer := NewTokenizer(src)
	wrapper := tokensWrapper{}
	for {
		token, err := tokenizer.Next()
		if err != nil {
			line := 0
			if lexErr, ok := err.(*LexError); ok {
				line = tokenizer.LineAt(lexErr.Pos)
			}
			return &CompileError{Line: line, Err: err}
		}
		if token == nil {
			break
		}
		wrapper.Tokens = append(wrapper.Tokens, token)
	}
	encoder := xml.NewEncoder(out)
	encoder.Indent("", " ")
	err := encoder.Encode(wrapper)
	if err != nil {
		return err
	}
	_, err = io.WriteString(out, "\n")
	return err
}
