package vm

import (
	"io"
	"strconv"
)

// Writer emits vm commands as text, one per line, in the order they are written.
// The first write error is kept and every later write becomes a no-op, so callers
// only need to check Err once they are done.
type Writer struct {
	out   io.Writer
	err   error
	lines int
}

func NewWriter(out io.Writer) *Writer {
	return &Writer{out: out}
}

func (w *Writer) writeOutput(output string) {
	if w.err != nil {
		return
	}
	_, w.err = io.WriteString(w.out, output+"\n")
	if w.err == nil {
		w.lines++
	}
}

func (w *Writer) WritePush(segment Segment, index int) {
	w.writeOutput("push " + string(segment) + " " + strconv.Itoa(index))
}

func (w *Writer) WritePop(segment Segment, index int) {
	w.writeOutput("pop " + string(segment) + " " + strconv.Itoa(index))
}

func (w *Writer) WriteArithmetic(op Arithmetic) {
	w.writeOutput(string(op))
}

func (w *Writer) WriteLabel(label string) {
	w.writeOutput("label " + label)
}

func (w *Writer) WriteGoto(label string) {
	w.writeOutput("goto " + label)
}

func (w *Writer) WriteIf(label string) {
	w.writeOutput("if-goto " + label)
}

func (w *Writer) WriteCall(name string, nArgs int) {
	w.writeOutput("call " + name + " " + strconv.Itoa(nArgs))
}

func (w *Writer) WriteFunction(name string, nLocals int) {
	w.writeOutput("function " + name + " " + strconv.Itoa(nLocals))
}

func (w *Writer) WriteReturn() {
	w.writeOutput("return")
}

// Lines returns how many commands were written successfully.
func (w *Writer) Lines() int {
	return w.lines
}

func (w *Writer) Err() error {
	return w.err
}
