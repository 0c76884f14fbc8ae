package internal

import (
	"fmt"
	"github.com/xiaobogaga/jackc/vm"
	"io"
)

// Parser compiles one class. Every production checks and consumes its tokens and emits
// vm code through the generator while it goes, there is no syntax tree.
type Parser struct {
	tokenizer *Tokenizer
	generator *CodeGenerator
	// returnsVoid is set for the subroutine being compiled.
	returnsVoid bool
}

func NewParser(src []byte, out io.Writer) *Parser {
	return &Parser{
		tokenizer: NewTokenizer(src),
		generator: NewCodeGenerator(out),
	}
}

func (parser *Parser) ClassName() string {
	return parser.generator.className
}

// Parse compiles the whole input, which must be exactly one class.
func (parser *Parser) Parse() error {
	err := parser.parseClass()
	if err != nil {
		return err
	}
	token, err := parser.tokenizer.Next()
	if err != nil {
		return err
	}
	if token != nil {
		return parser.makeError(token)
	}
	return parser.generator.writer.Err()
}

// class := 'class' className '{' classVarDec* subroutineDec* '}'
func (parser *Parser) parseClass() error {
	_, err := parser.expectToken(ClassTP)
	if err != nil {
		return err
	}
	classNameToken, err := parser.expectToken(IdentifierTP)
	if err != nil {
		return err
	}
	parser.generator.startClass(classNameToken.Text())
	_, err = parser.expectToken(LeftBraceTP)
	if err != nil {
		return err
	}
	for {
		match, err := parser.matchToken(StaticTP, FieldTP)
		if err != nil {
			return err
		}
		if !match {
			break
		}
		err = parser.parseClassVarDec()
		if err != nil {
			return err
		}
	}
	for {
		match, err := parser.matchToken(ConstructorTP, FunctionTP, MethodTP)
		if err != nil {
			return err
		}
		if !match {
			break
		}
		err = parser.parseSubroutineDec()
		if err != nil {
			return err
		}
	}
	_, err = parser.expectToken(RightBraceTP)
	return err
}

// classVarDec := ('static'|'field') type varName (',' varName)* ';'
func (parser *Parser) parseClassVarDec() error {
	token, err := parser.next()
	if err != nil {
		return err
	}
	kind := FieldSymbolKind
	if token.tp == StaticTP {
		kind = StaticSymbolKind
	}
	return parser.parseVarNames(kind)
}

// varDec := 'var' type varName (',' varName)* ';'
func (parser *Parser) parseVarDec() error {
	_, err := parser.expectToken(VarTP)
	if err != nil {
		return err
	}
	return parser.parseVarNames(LocalSymbolKind)
}

// parseVarNames reads `type varName (',' varName)* ';'` and defines every name as kind.
func (parser *Parser) parseVarNames(kind SymbolKind) error {
	varType, err := parser.parseVariableType()
	if err != nil {
		return err
	}
	for {
		varNameToken, err := parser.expectToken(IdentifierTP)
		if err != nil {
			return err
		}
		parser.generator.symbolTable.Define(varNameToken.Text(), varType, kind)
		match, err := parser.matchToken(CommaTP)
		if err != nil {
			return err
		}
		if !match {
			break
		}
		parser.stepForward()
	}
	_, err = parser.expectToken(SemiColonTP)
	return err
}

// type := 'int' | 'char' | 'boolean' | className
func (parser *Parser) parseVariableType() (v VariableType, err error) {
	token, err := parser.next()
	if err != nil {
		return
	}
	switch token.tp {
	case IntTP:
		v.TP = IntVariableType
	case CharTP:
		v.TP = CharVariableType
	case BooleanTP:
		v.TP = BooleanVariableType
	case IdentifierTP:
		v.TP, v.Name = ClassVariableType, token.Text()
	default:
		err = parser.makeError(token)
	}
	return
}

// subroutineDec := ('constructor'|'function'|'method') ('void'|type) subroutineName
//                  '(' parameterList ')' subroutineBody
func (parser *Parser) parseSubroutineDec() error {
	subroutineKindToken, err := parser.next()
	if err != nil {
		return err
	}
	parser.generator.startSubroutine()
	if subroutineKindToken.tp == MethodTP {
		parser.generator.symbolTable.Define("this",
			VariableType{TP: ClassVariableType, Name: parser.generator.className}, ArgumentSymbolKind)
	}
	parser.returnsVoid, err = parser.parseReturnType()
	if err != nil {
		return err
	}
	nameToken, err := parser.expectToken(IdentifierTP)
	if err != nil {
		return err
	}
	_, err = parser.expectToken(LeftParentThesesTP)
	if err != nil {
		return err
	}
	err = parser.parseParameterList()
	if err != nil {
		return err
	}
	_, err = parser.expectToken(RightParentThesesTP)
	if err != nil {
		return err
	}
	return parser.parseSubroutineBody(subroutineKindToken.tp, nameToken.Text())
}

func (parser *Parser) parseReturnType() (bool, error) {
	match, err := parser.matchToken(VoidTP)
	if err != nil {
		return false, err
	}
	if match {
		parser.stepForward()
		return true, nil
	}
	_, err = parser.parseVariableType()
	return false, err
}

// parameterList := (type varName (',' type varName)*)?
func (parser *Parser) parseParameterList() error {
	match, err := parser.matchToken(RightParentThesesTP)
	if err != nil || match {
		return err
	}
	for {
		paramType, err := parser.parseVariableType()
		if err != nil {
			return err
		}
		paramNameToken, err := parser.expectToken(IdentifierTP)
		if err != nil {
			return err
		}
		parser.generator.symbolTable.Define(paramNameToken.Text(), paramType, ArgumentSymbolKind)
		match, err = parser.matchToken(CommaTP)
		if err != nil {
			return err
		}
		if !match {
			return nil
		}
		parser.stepForward()
	}
}

// subroutineBody := '{' varDec* statements '}'
// The function line can only be written once all locals are known.
func (parser *Parser) parseSubroutineBody(subroutineKind TokenType, name string) error {
	_, err := parser.expectToken(LeftBraceTP)
	if err != nil {
		return err
	}
	for {
		match, err := parser.matchToken(VarTP)
		if err != nil {
			return err
		}
		if !match {
			break
		}
		err = parser.parseVarDec()
		if err != nil {
			return err
		}
	}
	parser.generator.functionHeader(subroutineKind, name)
	err = parser.parseStatements()
	if err != nil {
		return err
	}
	_, err = parser.expectToken(RightBraceTP)
	return err
}

// statements := (letStatement | ifStatement | whileStatement | doStatement | returnStatement)*
func (parser *Parser) parseStatements() error {
	for {
		token, err := parser.tokenizer.Peek()
		if err != nil {
			return err
		}
		if token == nil {
			return nil
		}
		switch token.tp {
		case LetTP:
			err = parser.parseLetStatement()
		case IfTP:
			err = parser.parseIfStatement()
		case WhileTP:
			err = parser.parseWhileStatement()
		case DoTP:
			err = parser.parseDoStatement()
		case ReturnTP:
			err = parser.parseReturnStatement()
		default:
			return nil
		}
		if err != nil {
			return err
		}
	}
}

// letStatement := 'let' varName ('[' expression ']')? '=' expression ';'
func (parser *Parser) parseLetStatement() error {
	_, err := parser.expectToken(LetTP)
	if err != nil {
		return err
	}
	varNameToken, err := parser.expectToken(IdentifierTP)
	if err != nil {
		return err
	}
	symbol, err := parser.generator.lookUp(varNameToken.Text())
	if err != nil {
		return err
	}
	isArray, err := parser.matchToken(LeftSquareBracketTP)
	if err != nil {
		return err
	}
	if isArray {
		err = parser.parseArrayIndex(symbol)
		if err != nil {
			return err
		}
	}
	_, err = parser.expectToken(EqualTP)
	if err != nil {
		return err
	}
	err = parser.parseExpression()
	if err != nil {
		return err
	}
	_, err = parser.expectToken(SemiColonTP)
	if err != nil {
		return err
	}
	if isArray {
		parser.generator.arrayStore()
	} else {
		parser.generator.popVariable(symbol)
	}
	return nil
}

// parseArrayIndex reads '[' expression ']' and leaves the element address on the stack.
func (parser *Parser) parseArrayIndex(base *Symbol) error {
	_, err := parser.expectToken(LeftSquareBracketTP)
	if err != nil {
		return err
	}
	err = parser.parseExpression()
	if err != nil {
		return err
	}
	_, err = parser.expectToken(RightSquareBracketTP)
	if err != nil {
		return err
	}
	parser.generator.arrayAddress(base)
	return nil
}

// ifStatement := 'if' '(' expression ')' '{' statements '}' ('else' '{' statements '}')?
func (parser *Parser) parseIfStatement() error {
	labelIndex := parser.generator.nextLabelIndex()
	elseLabel := fmt.Sprintf("IF_ELSE_%d", labelIndex)
	endLabel := fmt.Sprintf("IF_END_%d", labelIndex)
	err := parser.expectTokens(IfTP, LeftParentThesesTP)
	if err != nil {
		return err
	}
	err = parser.parseExpression()
	if err != nil {
		return err
	}
	err = parser.expectTokens(RightParentThesesTP)
	if err != nil {
		return err
	}
	writer := parser.generator.writer
	writer.WriteArithmetic(vm.Not)
	writer.WriteIf(elseLabel)
	err = parser.parseBlock()
	if err != nil {
		return err
	}
	writer.WriteGoto(endLabel)
	writer.WriteLabel(elseLabel)
	hasElse, err := parser.matchToken(ElseTP)
	if err != nil {
		return err
	}
	if hasElse {
		parser.stepForward()
		err = parser.parseBlock()
		if err != nil {
			return err
		}
	}
	writer.WriteLabel(endLabel)
	return nil
}

// whileStatement := 'while' '(' expression ')' '{' statements '}'
func (parser *Parser) parseWhileStatement() error {
	labelIndex := parser.generator.nextLabelIndex()
	topLabel := fmt.Sprintf("WHILE_EXP_%d", labelIndex)
	endLabel := fmt.Sprintf("WHILE_END_%d", labelIndex)
	err := parser.expectTokens(WhileTP, LeftParentThesesTP)
	if err != nil {
		return err
	}
	writer := parser.generator.writer
	writer.WriteLabel(topLabel)
	err = parser.parseExpression()
	if err != nil {
		return err
	}
	err = parser.expectTokens(RightParentThesesTP)
	if err != nil {
		return err
	}
	writer.WriteArithmetic(vm.Not)
	writer.WriteIf(endLabel)
	err = parser.parseBlock()
	if err != nil {
		return err
	}
	writer.WriteGoto(topLabel)
	writer.WriteLabel(endLabel)
	return nil
}

// parseBlock reads '{' statements '}'.
func (parser *Parser) parseBlock() error {
	_, err := parser.expectToken(LeftBraceTP)
	if err != nil {
		return err
	}
	err = parser.parseStatements()
	if err != nil {
		return err
	}
	_, err = parser.expectToken(RightBraceTP)
	return err
}

// doStatement := 'do' subroutineCall ';'
func (parser *Parser) parseDoStatement() error {
	_, err := parser.expectToken(DoTP)
	if err != nil {
		return err
	}
	err = parser.parseSubroutineCall()
	if err != nil {
		return err
	}
	_, err = parser.expectToken(SemiColonTP)
	if err != nil {
		return err
	}
	parser.generator.discardReturnValue()
	return nil
}

// returnStatement := 'return' expression? ';'
// A bare return still pushes 0, every call must leave exactly one value behind.
func (parser *Parser) parseReturnStatement() error {
	_, err := parser.expectToken(ReturnTP)
	if err != nil {
		return err
	}
	match, err := parser.matchToken(SemiColonTP)
	if err != nil {
		return err
	}
	if match {
		parser.stepForward()
		parser.generator.pushConstant(0)
		parser.generator.writer.WriteReturn()
		return nil
	}
	if parser.returnsVoid {
		return &SemanticError{Msg: "void subroutine cannot return a value"}
	}
	err = parser.parseExpression()
	if err != nil {
		return err
	}
	_, err = parser.expectToken(SemiColonTP)
	if err != nil {
		return err
	}
	parser.generator.writer.WriteReturn()
	return nil
}

// expression := term (op term)*
// All operators have the same precedence and group to the left.
func (parser *Parser) parseExpression() error {
	err := parser.parseTerm()
	if err != nil {
		return err
	}
	for {
		token, err := parser.tokenizer.Peek()
		if err != nil {
			return err
		}
		if !isBinaryOp(token) {
			return nil
		}
		parser.stepForward()
		err = parser.parseTerm()
		if err != nil {
			return err
		}
		parser.generator.binaryOp(token.tp)
	}
}

func isBinaryOp(token *Token) bool {
	if token == nil {
		return false
	}
	switch token.tp {
	case AddTP, MinusTP, MultiplyTP, DivideTP, AndTP, OrTP, LessTP, GreaterTP, EqualTP:
		return true
	}
	return false
}

// term := integerConstant | stringConstant | keywordConstant | varName | varName '[' expression ']'
//         | subroutineCall | '(' expression ')' | unaryOp term
func (parser *Parser) parseTerm() error {
	token, err := parser.tokenizer.Peek()
	if err != nil {
		return err
	}
	if token == nil {
		return parser.makeError(nil)
	}
	switch token.tp {
	case IntegerTP:
		parser.stepForward()
		parser.generator.pushConstant(int(token.IntValue()))
	case StringTP:
		parser.stepForward()
		parser.generator.stringConstant(token.Content())
	case TrueTP, FalseTP, NullTP, ThisTP:
		parser.stepForward()
		parser.generator.keywordConstant(token.tp)
	case LeftParentThesesTP:
		parser.stepForward()
		err = parser.parseExpression()
		if err != nil {
			return err
		}
		_, err = parser.expectToken(RightParentThesesTP)
		return err
	case MinusTP, BooleanNegativeTP:
		parser.stepForward()
		err = parser.parseTerm()
		if err != nil {
			return err
		}
		parser.generator.unaryOp(token.tp)
	case IdentifierTP:
		return parser.parseIdentifierTerm()
	default:
		return parser.makeError(token)
	}
	return nil
}

// parseIdentifierTerm looks at the token after the identifier to tell a variable, an array
// element and a subroutine call apart.
func (parser *Parser) parseIdentifierTerm() error {
	afterIdentifier, err := parser.tokenizer.Peek2()
	if err != nil {
		return err
	}
	if afterIdentifier.Is(LeftParentThesesTP) || afterIdentifier.Is(DotTP) {
		return parser.parseSubroutineCall()
	}
	varNameToken, err := parser.next()
	if err != nil {
		return err
	}
	symbol, err := parser.generator.lookUp(varNameToken.Text())
	if err != nil {
		return err
	}
	if afterIdentifier.Is(LeftSquareBracketTP) {
		err = parser.parseArrayIndex(symbol)
		if err != nil {
			return err
		}
		parser.generator.arrayRead()
		return nil
	}
	parser.generator.pushVariable(symbol)
	return nil
}

// subroutineCall := subroutineName '(' expressionList ')'
//                 | (className | varName) '.' subroutineName '(' expressionList ')'
func (parser *Parser) parseSubroutineCall() error {
	nameToken, err := parser.expectToken(IdentifierTP)
	if err != nil {
		return err
	}
	name := nameToken.Text()
	qualified, err := parser.matchToken(DotTP)
	if err != nil {
		return err
	}
	if !qualified {
		// A call on the current object.
		parser.generator.pushThis()
		nArgs, err := parser.parseExpressionList()
		if err != nil {
			return err
		}
		parser.generator.writer.WriteCall(parser.generator.className+"."+name, nArgs+1)
		return nil
	}
	parser.stepForward()
	subroutineNameToken, err := parser.expectToken(IdentifierTP)
	if err != nil {
		return err
	}
	subroutineName := subroutineNameToken.Text()
	receiver, isVariable := parser.generator.symbolTable.LookUp(name)
	if !isVariable {
		// name is a class, no receiver is passed.
		nArgs, err := parser.parseExpressionList()
		if err != nil {
			return err
		}
		parser.generator.writer.WriteCall(name+"."+subroutineName, nArgs)
		return nil
	}
	if receiver.Type.IsPrimitive() {
		return &SemanticError{Msg: fmt.Sprintf("cannot call method %s on %q of type %s", subroutineName, name, receiver.Type)}
	}
	parser.generator.pushVariable(receiver)
	nArgs, err := parser.parseExpressionList()
	if err != nil {
		return err
	}
	parser.generator.writer.WriteCall(receiver.Type.Name+"."+subroutineName, nArgs+1)
	return nil
}

// parseExpressionList reads '(' expressionList ')' and returns how many expressions it pushed.
func (parser *Parser) parseExpressionList() (int, error) {
	_, err := parser.expectToken(LeftParentThesesTP)
	if err != nil {
		return 0, err
	}
	match, err := parser.matchToken(RightParentThesesTP)
	if err != nil {
		return 0, err
	}
	if match {
		parser.stepForward()
		return 0, nil
	}
	count := 0
	for {
		err = parser.parseExpression()
		if err != nil {
			return 0, err
		}
		count++
		match, err = parser.matchToken(CommaTP)
		if err != nil {
			return 0, err
		}
		if !match {
			break
		}
		parser.stepForward()
	}
	_, err = parser.expectToken(RightParentThesesTP)
	if err != nil {
		return 0, err
	}
	return count, nil
}

// next consumes a token, running out of input is an error here.
func (parser *Parser) next() (*Token, error) {
	token, err := parser.tokenizer.Next()
	if err != nil {
		return nil, err
	}
	if token == nil {
		return nil, parser.makeError(nil)
	}
	return token, nil
}

// stepForward consumes a token already seen by a successful Peek.
func (parser *Parser) stepForward() {
	_, _ = parser.tokenizer.Next()
}

// matchToken reports whether the next token is one of tps without consuming it.
func (parser *Parser) matchToken(tps ...TokenType) (bool, error) {
	token, err := parser.tokenizer.Peek()
	if err != nil || token == nil {
		return false, err
	}
	for _, tp := range tps {
		if token.tp == tp {
			return true, nil
		}
	}
	return false, nil
}

func (parser *Parser) expectToken(expectedTokenTp TokenType) (*Token, error) {
	token, err := parser.next()
	if err != nil {
		return nil, err
	}
	if token.tp != expectedTokenTp {
		return nil, parser.makeError(token)
	}
	return token, nil
}

func (parser *Parser) expectTokens(expectedTokenTPs ...TokenType) error {
	for _, tokenType := range expectedTokenTPs {
		_, err := parser.expectToken(tokenType)
		if err != nil {
			return err
		}
	}
	return nil
}

// makeError builds the parse error for token, nil meaning the input has ended.
func (parser *Parser) makeError(token *Token) error {
	return &ParseError{Token: token}
}

// errorLine is the 1-based line the error was found on.
func (parser *Parser) errorLine(err error) int {
	switch e := err.(type) {
	case *LexError:
		return parser.tokenizer.LineAt(e.Pos)
	case *ParseError:
		if e.Token != nil {
			return parser.tokenizer.LineAt(e.Token.startPos)
		}
	}
	return parser.tokenizer.Line()
}
