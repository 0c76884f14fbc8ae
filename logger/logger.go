package logger

import (
	"fmt"
	"io"
	"os"
	"sync"
)

var (
	mu      sync.Mutex
	verbose = false
	out     io.Writer = os.Stderr
)

// Toggle turns progress output on or off.
func Toggle(flag bool) {
	mu.Lock()
	defer mu.Unlock()
	verbose = flag
}

// SetOutput redirects progress output, mostly for tests.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	out = w
}

func Printf(format string, values ...any) {
	mu.Lock()
	defer mu.Unlock()
	if !verbose {
		return
	}
	fmt.Fprintf(out, format, values...)
}

func Println(values ...any) {
	mu.Lock()
	defer mu.Unlock()
	if !verbose {
		return
	}
	fmt.Fprintln(out, values...)
}
