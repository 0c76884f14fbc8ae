package internal

import (
	"fmt"
	"github.com/xiaobogaga/jackc/vm"
	"io"
)

// CodeGenerator holds what one compilation unit needs while emitting: the class being
// compiled, its symbols, the label counter and the output.
type CodeGenerator struct {
	writer      *vm.Writer
	className   string
	symbolTable *SymbolTable
	// labelIndex is never reset inside a unit, so labels are unique in the whole class.
	labelIndex int
}

func NewCodeGenerator(out io.Writer) *CodeGenerator {
	return &CodeGenerator{
		writer:      vm.NewWriter(out),
		symbolTable: NewSymbolTable(),
	}
}

func (generator *CodeGenerator) startClass(className string) {
	generator.className = className
	generator.symbolTable.ResetClass()
}

func (generator *CodeGenerator) startSubroutine() {
	generator.symbolTable.ResetSubroutine()
}

// nextLabelIndex allocates the number shared by all labels of one if or while statement.
func (generator *CodeGenerator) nextLabelIndex() int {
	index := generator.labelIndex
	generator.labelIndex++
	return index
}

func (generator *CodeGenerator) lookUp(name string) (*Symbol, error) {
	symbol, ok := generator.symbolTable.LookUp(name)
	if !ok {
		return nil, &SemanticError{Msg: fmt.Sprintf("undeclared identifier %q", name)}
	}
	return symbol, nil
}

func (generator *CodeGenerator) pushVariable(symbol *Symbol) {
	generator.writer.WritePush(symbol.Kind.Segment(), symbol.Index)
}

func (generator *CodeGenerator) popVariable(symbol *Symbol) {
	generator.writer.WritePop(symbol.Kind.Segment(), symbol.Index)
}

func (generator *CodeGenerator) pushConstant(value int) {
	generator.writer.WritePush(vm.ConstantSegment, value)
}

func (generator *CodeGenerator) pushThis() {
	generator.writer.WritePush(vm.PointerSegment, 0)
}

// functionHeader writes `function Class.name nLocals` and the prologue setting up `this`.
func (generator *CodeGenerator) functionHeader(subroutineKind TokenType, name string) {
	generator.writer.WriteFunction(generator.className+"."+name, generator.symbolTable.Count(LocalSymbolKind))
	switch subroutineKind {
	case MethodTP:
		generator.writer.WritePush(vm.ArgumentSegment, 0)
		generator.writer.WritePop(vm.PointerSegment, 0)
	case ConstructorTP:
		generator.pushConstant(generator.symbolTable.Count(FieldSymbolKind))
		generator.writer.WriteCall("Memory.alloc", 1)
		generator.writer.WritePop(vm.PointerSegment, 0)
	}
}

// stringConstant builds a new String object holding content, leaving it on the stack.
func (generator *CodeGenerator) stringConstant(content []byte) {
	generator.pushConstant(len(content) + 1)
	generator.writer.WriteCall("String.new", 1)
	for _, c := range content {
		generator.pushConstant(int(c))
		generator.writer.WriteCall("String.appendChar", 2)
	}
}

func (generator *CodeGenerator) keywordConstant(keyword TokenType) {
	switch keyword {
	case TrueTP:
		generator.pushConstant(1)
		generator.writer.WriteArithmetic(vm.Neg)
	case FalseTP, NullTP:
		generator.pushConstant(0)
	case ThisTP:
		generator.pushThis()
	}
}

func (generator *CodeGenerator) binaryOp(op TokenType) {
	switch op {
	case AddTP:
		generator.writer.WriteArithmetic(vm.Add)
	case MinusTP:
		generator.writer.WriteArithmetic(vm.Sub)
	case MultiplyTP:
		generator.writer.WriteCall("Math.multiply", 2)
	case DivideTP:
		generator.writer.WriteCall("Math.divide", 2)
	case AndTP:
		generator.writer.WriteArithmetic(vm.And)
	case OrTP:
		generator.writer.WriteArithmetic(vm.Or)
	case LessTP:
		generator.writer.WriteArithmetic(vm.Lt)
	case GreaterTP:
		generator.writer.WriteArithmetic(vm.Gt)
	case EqualTP:
		generator.writer.WriteArithmetic(vm.Eq)
	}
}

func (generator *CodeGenerator) unaryOp(op TokenType) {
	if op == MinusTP {
		generator.writer.WriteArithmetic(vm.Neg)
		return
	}
	generator.writer.WriteArithmetic(vm.Not)
}

// arrayAddress expects the index on top of the stack and replaces it with base+index.
func (generator *CodeGenerator) arrayAddress(base *Symbol) {
	generator.pushVariable(base)
	generator.writer.WriteArithmetic(vm.Add)
}

// arrayRead expects an element address on top of the stack and replaces it with the element.
func (generator *CodeGenerator) arrayRead() {
	generator.writer.WritePop(vm.PointerSegment, 1)
	generator.writer.WritePush(vm.ThatSegment, 0)
}

// arrayStore expects the element address and then the value on the stack.
func (generator *CodeGenerator) arrayStore() {
	generator.writer.WritePop(vm.TempSegment, 0)
	generator.writer.WritePop(vm.PointerSegment, 1)
	generator.writer.WritePush(vm.TempSegment, 0)
	generator.writer.WritePop(vm.ThatSegment, 0)
}

func (generator *CodeGenerator) discardReturnValue() {
	generator.writer.WritePop(vm.TempSegment, 0)
}
