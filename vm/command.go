package vm

import (
	"fmt"
	"strings"

	"golang.org/x/exp/slices"
)

// The vm language has four kinds of commands:
// * Arithmetic commands: add, sub, neg, eq, gt, lt, and, or, not.
// * Memory access commands: push segment index, pop segment index.
// * Program flow commands: label name, goto name, if-goto name.
// * Function calling commands: function name nLocals, call name nArgs, return.

type CommandType int

const (
	PushCommandTP CommandType = iota
	PopCommandTP
	ArithmeticCommandTP
	LabelCommandTP
	GotoCommandTP
	IfGotoCommandTP
	FunctionCommandTP
	CallCommandTP
	ReturnCommandTP
)

type Segment string

const (
	ConstantSegment Segment = "constant"
	ArgumentSegment Segment = "argument"
	LocalSegment    Segment = "local"
	StaticSegment   Segment = "static"
	ThisSegment     Segment = "this"
	ThatSegment     Segment = "that"
	PointerSegment  Segment = "pointer"
	TempSegment     Segment = "temp"
)

var segments = []Segment{
	ConstantSegment, ArgumentSegment, LocalSegment, StaticSegment,
	ThisSegment, ThatSegment, PointerSegment, TempSegment,
}

func (s Segment) Valid() bool {
	return slices.Contains(segments, s)
}

type Arithmetic string

const (
	Add Arithmetic = "add"
	Sub Arithmetic = "sub"
	Neg Arithmetic = "neg"
	Eq  Arithmetic = "eq"
	Gt  Arithmetic = "gt"
	Lt  Arithmetic = "lt"
	And Arithmetic = "and"
	Or  Arithmetic = "or"
	Not Arithmetic = "not"
)

var arithmetics = []Arithmetic{Add, Sub, Neg, Eq, Gt, Lt, And, Or, Not}

func (a Arithmetic) Valid() bool {
	return slices.Contains(arithmetics, a)
}

// Command is one parsed line of vm code. Only the fields relevant to Type are set:
// Segment and Index for push/pop, Op for arithmetic, Name for label/goto/if-goto,
// Name and Count for function/call.
type Command struct {
	Type    CommandType
	Segment Segment
	Index   int
	Op      Arithmetic
	Name    string
	Count   int
}

func (command Command) String() string {
	switch command.Type {
	case PushCommandTP:
		return fmt.Sprintf("push %s %d", command.Segment, command.Index)
	case PopCommandTP:
		return fmt.Sprintf("pop %s %d", command.Segment, command.Index)
	case ArithmeticCommandTP:
		return string(command.Op)
	case LabelCommandTP:
		return "label " + command.Name
	case GotoCommandTP:
		return "goto " + command.Name
	case IfGotoCommandTP:
		return "if-goto " + command.Name
	case FunctionCommandTP:
		return fmt.Sprintf("function %s %d", command.Name, command.Count)
	case CallCommandTP:
		return fmt.Sprintf("call %s %d", command.Name, command.Count)
	case ReturnCommandTP:
		return "return"
	}
	return ""
}

// Lines renders commands back to vm text, one command per line.
func Lines(commands []Command) string {
	builder := strings.Builder{}
	for _, command := range commands {
		builder.WriteString(command.String())
		builder.WriteByte('\n')
	}
	return builder.String()
}
