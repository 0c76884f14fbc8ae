package main

import (
	"errors"
	"fmt"
	"github.com/fatih/color"
	"github.com/xiaobogaga/jackc/compiler/internal"
	"strings"
)

// makeMessage renders a failed file in the form:
//
// error: <error>
//   --> <filename>:<line number>
//    |
//  3 | <offending line of source code>
//
// The source line is left out when src is nil or the line is unknown.
func makeMessage(filename string, err error, src []byte, withColor bool) string {
	color.NoColor = !withColor
	redBold := color.New(color.FgRed, color.Bold).SprintFunc()
	blue := color.New(color.FgBlue).SprintFunc()

	line := 0
	var compileErr *internal.CompileError
	if errors.As(err, &compileErr) {
		line, err = compileErr.Line, compileErr.Err
	}
	lineNum := fmt.Sprintf("%d", line)
	margin := strings.Repeat(" ", len(lineNum))

	lines := []string{redBold(fmt.Sprintf("error: %v", err))}
	if line == 0 {
		lines = append(lines, fmt.Sprintf(" %s %s", blue("-->"), filename))
		return strings.Join(lines, "\n")
	}
	lines = append(lines, fmt.Sprintf(" %s%s %s:%d", margin, blue("-->"), filename, line))
	sourceLines := strings.Split(string(src), "\n")
	if src == nil || line > len(sourceLines) {
		return strings.Join(lines, "\n")
	}
	lines = append(lines, blue(fmt.Sprintf(" %s |", margin)))
	lines = append(lines, fmt.Sprintf("%s %s", blue(lineNum+" |"), strings.TrimRight(sourceLines[line-1], "\r")))
	return strings.Join(lines, "\n")
}
