package internal

import (
	"fmt"
	"github.com/xiaobogaga/jackc/vm"
)

type VariableTypeTP int

const (
	IntVariableType VariableTypeTP = iota
	CharVariableType
	BooleanVariableType
	ClassVariableType
)

// VariableType is the declared type of a variable. Name is only set for ClassVariableType.
type VariableType struct {
	TP   VariableTypeTP
	Name string
}

func (variableType VariableType) IsPrimitive() bool {
	return variableType.TP != ClassVariableType
}

func (variableType VariableType) String() string {
	switch variableType.TP {
	case IntVariableType:
		return "int"
	case CharVariableType:
		return "char"
	case BooleanVariableType:
		return "boolean"
	}
	return variableType.Name
}

type SymbolKind int

const (
	FieldSymbolKind SymbolKind = iota
	StaticSymbolKind
	ArgumentSymbolKind
	LocalSymbolKind
)

func (kind SymbolKind) String() string {
	return [...]string{"field", "static", "argument", "local"}[kind]
}

// Segment is where variables of this kind live in the vm.
func (kind SymbolKind) Segment() vm.Segment {
	switch kind {
	case FieldSymbolKind:
		return vm.ThisSegment
	case StaticSymbolKind:
		return vm.StaticSegment
	case ArgumentSymbolKind:
		return vm.ArgumentSegment
	}
	return vm.LocalSegment
}

func (kind SymbolKind) isClassLevel() bool {
	return kind == FieldSymbolKind || kind == StaticSymbolKind
}

type Symbol struct {
	Type  VariableType
	Kind  SymbolKind
	Index int
}

func (symbol *Symbol) String() string {
	return fmt.Sprintf("%s %s %d", symbol.Kind, symbol.Type, symbol.Index)
}

// SymbolTable has two scopes. Fields and statics live in the class scope for the whole
// class, arguments and locals in the subroutine scope which is cleared per subroutine.
type SymbolTable struct {
	classScope      map[string]*Symbol
	subroutineScope map[string]*Symbol
	counters        [4]int
}

func NewSymbolTable() *SymbolTable {
	return &SymbolTable{
		classScope:      map[string]*Symbol{},
		subroutineScope: map[string]*Symbol{},
	}
}

// Define adds name to the scope of kind and gives it the next index of that kind.
// A name already in that scope is overwritten.
func (table *SymbolTable) Define(name string, variableType VariableType, kind SymbolKind) *Symbol {
	symbol := &Symbol{Type: variableType, Kind: kind, Index: table.counters[kind]}
	table.counters[kind]++
	if kind.isClassLevel() {
		table.classScope[name] = symbol
	} else {
		table.subroutineScope[name] = symbol
	}
	return symbol
}

// LookUp searches the subroutine scope first, then the class scope.
func (table *SymbolTable) LookUp(name string) (*Symbol, bool) {
	if symbol, ok := table.subroutineScope[name]; ok {
		return symbol, true
	}
	symbol, ok := table.classScope[name]
	return symbol, ok
}

func (table *SymbolTable) Count(kind SymbolKind) int {
	return table.counters[kind]
}

func (table *SymbolTable) ResetClass() {
	table.classScope = map[string]*Symbol{}
	table.counters[FieldSymbolKind] = 0
	table.counters[StaticSymbolKind] = 0
	table.ResetSubroutine()
}

func (table *SymbolTable) ResetSubroutine() {
	table.subroutineScope = map[string]*Symbol{}
	table.counters[ArgumentSymbolKind] = 0
	table.counters[LocalSymbolKind] = 0
}
